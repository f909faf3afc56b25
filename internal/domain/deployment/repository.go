package deployment

import (
	"context"

	"launchpad-core/internal/domain/project"
)

// DeploymentRepository defines the persistence interface for deployments
type DeploymentRepository interface {
	// Save persists a deployment (create or update)
	Save(ctx context.Context, dep *Deployment) error

	// FindByID retrieves a deployment by its ID
	FindByID(ctx context.Context, id DeploymentID) (*Deployment, error)

	// FindByProjectID retrieves deployments for a project, newest first
	FindByProjectID(ctx context.Context, projectID project.ProjectID, limit, offset int32) ([]*Deployment, error)
}
