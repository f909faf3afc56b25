package org

import "errors"

var (
	// ErrOrgNotFound is returned when an organization is not found
	ErrOrgNotFound = errors.New("organization not found")

	// ErrOrgAlreadyExists is returned when an organization with the same slug already exists
	ErrOrgAlreadyExists = errors.New("organization with this slug already exists")
)
