package deployment

import "errors"

var (
	// ErrDeploymentNotFound is returned when a deployment is not found
	ErrDeploymentNotFound = errors.New("deployment not found")

	// ErrInvalidTransition is returned on an illegal status transition
	ErrInvalidTransition = errors.New("invalid deployment status transition")
)
