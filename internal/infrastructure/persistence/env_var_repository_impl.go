package persistence

import (
	"context"
	"fmt"
	"time"

	"launchpad-core/internal/database"
	"launchpad-core/internal/domain/project"
)

// EnvVarRepositoryImpl implements the domain project.EnvironmentVariableRepository interface
type EnvVarRepositoryImpl struct {
	db *database.DB
}

// NewEnvVarRepository creates a new environment variable repository implementation
func NewEnvVarRepository(db *database.DB) project.EnvironmentVariableRepository {
	return &EnvVarRepositoryImpl{db: db}
}

// Save persists an environment variable (create or update by project+key)
func (r *EnvVarRepositoryImpl) Save(ctx context.Context, envVar *project.EnvironmentVariable) error {
	query := `
		INSERT INTO project_env_vars (id, project_id, key, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (project_id, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	_, err := r.db.GetConnection().ExecContext(ctx, query,
		envVar.ID().UUID(),
		envVar.ProjectID().UUID(),
		envVar.Key().String(),
		envVar.Value().EncryptedValue(),
		envVar.CreatedAt(),
		envVar.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save environment variable: %w", err)
	}

	return nil
}

// FindByProjectID retrieves all environment variables for a project
func (r *EnvVarRepositoryImpl) FindByProjectID(ctx context.Context, projectID project.ProjectID) ([]*project.EnvironmentVariable, error) {
	query := `
		SELECT id, key, value, created_at, updated_at
		FROM project_env_vars
		WHERE project_id = $1
		ORDER BY key`

	rows, err := r.db.GetConnection().QueryContext(ctx, query, projectID.UUID())
	if err != nil {
		return nil, fmt.Errorf("failed to get environment variables: %w", err)
	}
	defer rows.Close()

	var envVars []*project.EnvironmentVariable
	for rows.Next() {
		var (
			id, key, value       string
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &key, &value, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan environment variable: %w", err)
		}

		envVar, err := project.ReconstituteEnvVar(id, projectID, key, value, createdAt, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to convert environment variable: %w", err)
		}
		envVars = append(envVars, envVar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate environment variables: %w", err)
	}

	return envVars, nil
}

// ReplaceForProject atomically replaces a project's variable set
func (r *EnvVarRepositoryImpl) ReplaceForProject(ctx context.Context, projectID project.ProjectID, envVars []*project.EnvironmentVariable) error {
	tx, err := r.db.GetConnection().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_env_vars WHERE project_id = $1`, projectID.UUID()); err != nil {
		return fmt.Errorf("failed to clear environment variables: %w", err)
	}

	insert := `
		INSERT INTO project_env_vars (id, project_id, key, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, envVar := range envVars {
		if _, err := tx.ExecContext(ctx, insert,
			envVar.ID().UUID(),
			envVar.ProjectID().UUID(),
			envVar.Key().String(),
			envVar.Value().EncryptedValue(),
			envVar.CreatedAt(),
			envVar.UpdatedAt(),
		); err != nil {
			return fmt.Errorf("failed to insert environment variable %s: %w", envVar.Key().String(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit environment variables: %w", err)
	}

	return nil
}

// DeleteByProjectID removes all environment variables for a project
func (r *EnvVarRepositoryImpl) DeleteByProjectID(ctx context.Context, projectID project.ProjectID) error {
	query := `DELETE FROM project_env_vars WHERE project_id = $1`

	if _, err := r.db.GetConnection().ExecContext(ctx, query, projectID.UUID()); err != nil {
		return fmt.Errorf("failed to delete environment variables: %w", err)
	}

	return nil
}
