package project

import (
	"context"

	"launchpad-core/internal/domain/org"
)

// ProjectRepository defines the persistence interface for projects
type ProjectRepository interface {
	// Save persists a project (create or update)
	Save(ctx context.Context, proj *Project) error

	// FindByID retrieves a project by its ID
	FindByID(ctx context.Context, id ProjectID) (*Project, error)

	// FindByOrgID retrieves all projects for an organization with pagination
	FindByOrgID(ctx context.Context, orgID org.OrgID, limit, offset int32) ([]*Project, error)

	// CountByOrgID counts projects for an organization
	CountByOrgID(ctx context.Context, orgID org.OrgID) (int64, error)

	// ExistsByName checks whether an organization already has a project with the name
	ExistsByName(ctx context.Context, orgID org.OrgID, name Name) (bool, error)

	// Delete removes a project
	Delete(ctx context.Context, id ProjectID) error
}
