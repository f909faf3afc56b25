package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"launchpad-core/internal/database"
	"launchpad-core/internal/domain/org"
	"launchpad-core/internal/domain/project"
)

// ProjectRepositoryImpl implements the domain project.ProjectRepository interface
type ProjectRepositoryImpl struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository implementation
func NewProjectRepository(db *database.DB) project.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

const projectColumns = `id, org_id, name, branch, build_command, start_command, auto_deploy, enabled, created_at, updated_at`

// Save persists a project (create or update)
func (r *ProjectRepositoryImpl) Save(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, org_id, name, branch, build_command, start_command, auto_deploy, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE
		SET branch = EXCLUDED.branch,
		    build_command = EXCLUDED.build_command,
		    start_command = EXCLUDED.start_command,
		    auto_deploy = EXCLUDED.auto_deploy,
		    enabled = EXCLUDED.enabled,
		    updated_at = EXCLUDED.updated_at`

	buildCmd := sql.NullString{
		String: proj.BuildCommand().String(),
		Valid:  !proj.BuildCommand().IsEmpty(),
	}

	_, err := r.db.GetConnection().ExecContext(ctx, query,
		proj.ID().UUID(),
		proj.OrgID().UUID(),
		proj.Name().String(),
		proj.Branch().String(),
		buildCmd,
		proj.StartCommand().String(),
		proj.AutoDeploy(),
		proj.Enabled(),
		proj.CreatedAt(),
		proj.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	return nil
}

// FindByID retrieves a project by its ID
func (r *ProjectRepositoryImpl) FindByID(ctx context.Context, id project.ProjectID) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	proj, err := r.scanProject(r.db.GetConnection().QueryRowContext(ctx, query, id.UUID()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, project.ErrProjectNotFound
		}
		return nil, err
	}

	return proj, nil
}

// FindByOrgID retrieves all projects for an organization with pagination
func (r *ProjectRepositoryImpl) FindByOrgID(ctx context.Context, orgID org.OrgID, limit, offset int32) ([]*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE org_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.GetConnection().QueryContext(ctx, query, orgID.UUID(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	defer rows.Close()

	var projects []*project.Project
	for rows.Next() {
		proj, err := r.scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to convert project: %w", err)
		}
		projects = append(projects, proj)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// CountByOrgID counts projects for an organization
func (r *ProjectRepositoryImpl) CountByOrgID(ctx context.Context, orgID org.OrgID) (int64, error) {
	query := `SELECT COUNT(*) FROM projects WHERE org_id = $1`

	var count int64
	if err := r.db.GetConnection().QueryRowContext(ctx, query, orgID.UUID()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}

	return count, nil
}

// ExistsByName checks whether an organization already has a project with the name
func (r *ProjectRepositoryImpl) ExistsByName(ctx context.Context, orgID org.OrgID, name project.Name) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM projects WHERE org_id = $1 AND name = $2)`

	var exists bool
	if err := r.db.GetConnection().QueryRowContext(ctx, query, orgID.UUID(), name.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}

	return exists, nil
}

// Delete removes a project
func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id project.ProjectID) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := r.db.GetConnection().ExecContext(ctx, query, id.UUID())
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return project.ErrProjectNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *ProjectRepositoryImpl) scanProject(row rowScanner) (*project.Project, error) {
	var (
		id, orgID, name, branch, startCommand string
		buildCommand                          sql.NullString
		autoDeploy, enabled                   bool
		createdAt, updatedAt                  time.Time
	)

	if err := row.Scan(&id, &orgID, &name, &branch, &buildCommand, &startCommand, &autoDeploy, &enabled, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	oid, err := org.ParseOrgID(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid org ID in row: %w", err)
	}

	return project.Reconstitute(id, oid, name, branch, buildCommand.String, startCommand, autoDeploy, enabled, createdAt, updatedAt)
}
