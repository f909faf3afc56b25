package project

import "context"

// EnvironmentVariableRepository defines the persistence interface for environment variables
type EnvironmentVariableRepository interface {
	// Save persists an environment variable (create or update by project+key)
	Save(ctx context.Context, envVar *EnvironmentVariable) error

	// FindByProjectID retrieves all environment variables for a project
	FindByProjectID(ctx context.Context, projectID ProjectID) ([]*EnvironmentVariable, error)

	// ReplaceForProject atomically replaces a project's variable set
	ReplaceForProject(ctx context.Context, projectID ProjectID, envVars []*EnvironmentVariable) error

	// DeleteByProjectID removes all environment variables for a project
	DeleteByProjectID(ctx context.Context, projectID ProjectID) error
}
