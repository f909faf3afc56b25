package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"launchpad-core/internal/database"
	"launchpad-core/internal/domain/deployment"
	"launchpad-core/internal/domain/project"
)

// DeploymentRepositoryImpl implements the domain deployment.DeploymentRepository interface
type DeploymentRepositoryImpl struct {
	db *database.DB
}

// NewDeploymentRepository creates a new deployment repository implementation
func NewDeploymentRepository(db *database.DB) deployment.DeploymentRepository {
	return &DeploymentRepositoryImpl{db: db}
}

// Save persists a deployment (create or update)
func (r *DeploymentRepositoryImpl) Save(ctx context.Context, dep *deployment.Deployment) error {
	query := `
		INSERT INTO deployments (id, project_id, branch, trigger, status, status_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status,
		    status_note = EXCLUDED.status_note,
		    updated_at = EXCLUDED.updated_at`

	_, err := r.db.GetConnection().ExecContext(ctx, query,
		dep.ID().UUID(),
		dep.ProjectID().UUID(),
		dep.Branch(),
		dep.Trigger().String(),
		dep.Status().String(),
		dep.StatusNote(),
		dep.CreatedAt(),
		dep.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save deployment: %w", err)
	}

	return nil
}

// FindByID retrieves a deployment by its ID
func (r *DeploymentRepositoryImpl) FindByID(ctx context.Context, id deployment.DeploymentID) (*deployment.Deployment, error) {
	query := `
		SELECT id, project_id, branch, trigger, status, status_note, created_at, updated_at
		FROM deployments WHERE id = $1`

	dep, err := r.scanDeployment(r.db.GetConnection().QueryRowContext(ctx, query, id.UUID()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, deployment.ErrDeploymentNotFound
		}
		return nil, err
	}

	return dep, nil
}

// FindByProjectID retrieves deployments for a project, newest first
func (r *DeploymentRepositoryImpl) FindByProjectID(ctx context.Context, projectID project.ProjectID, limit, offset int32) ([]*deployment.Deployment, error) {
	query := `
		SELECT id, project_id, branch, trigger, status, status_note, created_at, updated_at
		FROM deployments
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.GetConnection().QueryContext(ctx, query, projectID.UUID(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get deployments: %w", err)
	}
	defer rows.Close()

	var deployments []*deployment.Deployment
	for rows.Next() {
		dep, err := r.scanDeployment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to convert deployment: %w", err)
		}
		deployments = append(deployments, dep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deployments: %w", err)
	}

	return deployments, nil
}

func (r *DeploymentRepositoryImpl) scanDeployment(row rowScanner) (*deployment.Deployment, error) {
	var (
		id, projectID, branch, trigger, status, statusNote string
		createdAt, updatedAt                               time.Time
	)

	if err := row.Scan(&id, &projectID, &branch, &trigger, &status, &statusNote, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	pid, err := project.ParseProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID in row: %w", err)
	}

	return deployment.Reconstitute(id, pid, branch, trigger, status, statusNote, createdAt, updatedAt)
}
