package org

import (
	"fmt"
	"time"
)

// Organization is a domain entity owning a set of deployable projects
type Organization struct {
	id        OrgID
	slug      Slug
	name      Name
	createdAt time.Time
	updatedAt time.Time
}

// NewOrganization creates a new Organization entity
func NewOrganization(slug, name string) (*Organization, error) {
	s, err := NewSlug(slug)
	if err != nil {
		return nil, fmt.Errorf("invalid slug: %w", err)
	}

	n, err := NewName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid name: %w", err)
	}

	now := time.Now()
	return &Organization{
		id:        NewOrgID(),
		slug:      s,
		name:      n,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstitute recreates an Organization entity from persistence
func Reconstitute(id, slug, name string, createdAt, updatedAt time.Time) (*Organization, error) {
	orgID, err := ParseOrgID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid org ID: %w", err)
	}

	s, err := NewSlug(slug)
	if err != nil {
		return nil, fmt.Errorf("invalid slug: %w", err)
	}

	n, err := NewName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid name: %w", err)
	}

	return &Organization{
		id:        orgID,
		slug:      s,
		name:      n,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// Getters

func (o *Organization) ID() OrgID {
	return o.id
}

func (o *Organization) Slug() Slug {
	return o.slug
}

func (o *Organization) Name() Name {
	return o.name
}

func (o *Organization) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Organization) UpdatedAt() time.Time {
	return o.updatedAt
}

// String returns string representation (for debugging)
func (o *Organization) String() string {
	return fmt.Sprintf("Organization{id: %s, slug: %s}", o.id.String(), o.slug.String())
}
