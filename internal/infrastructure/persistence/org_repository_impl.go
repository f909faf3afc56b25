package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"launchpad-core/internal/database"
	"launchpad-core/internal/domain/org"
)

// OrgRepositoryImpl implements the domain org.OrganizationRepository interface
type OrgRepositoryImpl struct {
	db *database.DB
}

// NewOrgRepository creates a new organization repository implementation
func NewOrgRepository(db *database.DB) org.OrganizationRepository {
	return &OrgRepositoryImpl{db: db}
}

// Save persists an organization (create or update)
func (r *OrgRepositoryImpl) Save(ctx context.Context, organization *org.Organization) error {
	query := `
		INSERT INTO organizations (id, slug, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET slug = EXCLUDED.slug, name = EXCLUDED.name, updated_at = EXCLUDED.updated_at`

	_, err := r.db.GetConnection().ExecContext(ctx, query,
		organization.ID().UUID(),
		organization.Slug().String(),
		organization.Name().String(),
		organization.CreatedAt(),
		organization.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save organization: %w", err)
	}

	return nil
}

// FindByID retrieves an organization by its ID
func (r *OrgRepositoryImpl) FindByID(ctx context.Context, id org.OrgID) (*org.Organization, error) {
	query := `SELECT id, slug, name, created_at, updated_at FROM organizations WHERE id = $1`

	return r.scanOne(r.db.GetConnection().QueryRowContext(ctx, query, id.UUID()))
}

// FindBySlug retrieves an organization by its URL slug
func (r *OrgRepositoryImpl) FindBySlug(ctx context.Context, slug org.Slug) (*org.Organization, error) {
	query := `SELECT id, slug, name, created_at, updated_at FROM organizations WHERE slug = $1`

	return r.scanOne(r.db.GetConnection().QueryRowContext(ctx, query, slug.String()))
}

// Delete removes an organization
func (r *OrgRepositoryImpl) Delete(ctx context.Context, id org.OrgID) error {
	query := `DELETE FROM organizations WHERE id = $1`

	result, err := r.db.GetConnection().ExecContext(ctx, query, id.UUID())
	if err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return org.ErrOrgNotFound
	}

	return nil
}

func (r *OrgRepositoryImpl) scanOne(row *sql.Row) (*org.Organization, error) {
	var (
		id, slug, name       string
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &slug, &name, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, org.ErrOrgNotFound
		}
		return nil, fmt.Errorf("failed to scan organization: %w", err)
	}

	return org.Reconstitute(id, slug, name, createdAt, updatedAt)
}
