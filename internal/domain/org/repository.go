package org

import "context"

// OrganizationRepository defines the persistence interface for organizations
type OrganizationRepository interface {
	// Save persists an organization (create or update)
	Save(ctx context.Context, organization *Organization) error

	// FindByID retrieves an organization by its ID
	FindByID(ctx context.Context, id OrgID) (*Organization, error)

	// FindBySlug retrieves an organization by its URL slug
	FindBySlug(ctx context.Context, slug Slug) (*Organization, error)

	// Delete removes an organization
	Delete(ctx context.Context, id OrgID) error
}
