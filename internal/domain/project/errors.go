package project

import "errors"

var (
	// ErrProjectNotFound is returned when a project is not found
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectAlreadyExists is returned when a project with the same name already exists in an organization
	ErrProjectAlreadyExists = errors.New("project with this name already exists")

	// ErrProjectDisabled is returned when an operation targets a disabled project
	ErrProjectDisabled = errors.New("project is disabled")

	// ErrUnauthorized is returned when an organization tries to access a project it does not own
	ErrUnauthorized = errors.New("unauthorized to access this project")
)
