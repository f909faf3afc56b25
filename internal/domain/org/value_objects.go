package org

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// OrgID is a value object for organization ID
type OrgID struct {
	value uuid.UUID
}

func NewOrgID() OrgID {
	return OrgID{value: uuid.New()}
}

func ParseOrgID(id string) (OrgID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return OrgID{}, fmt.Errorf("invalid org ID format: %w", err)
	}
	return OrgID{value: uid}, nil
}

func (id OrgID) String() string {
	return id.value.String()
}

func (id OrgID) UUID() uuid.UUID {
	return id.value
}

func (id OrgID) Equals(other OrgID) bool {
	return id.value == other.value
}

// Slug is a value object for the organization's URL slug
type Slug struct {
	value string
}

func NewSlug(slug string) (Slug, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	if slug == "" {
		return Slug{}, fmt.Errorf("slug cannot be empty")
	}

	if len(slug) > 63 {
		return Slug{}, fmt.Errorf("slug too long (max 63 characters)")
	}

	for i, c := range slug {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-' && i > 0 && i < len(slug)-1:
		default:
			return Slug{}, fmt.Errorf("slug must contain only lowercase letters, digits and inner hyphens")
		}
	}

	return Slug{value: slug}, nil
}

func (s Slug) String() string {
	return s.value
}

// Name is a value object for the organization's display name
type Name struct {
	value string
}

func NewName(name string) (Name, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return Name{}, fmt.Errorf("name cannot be empty")
	}

	if len(name) > 100 {
		return Name{}, fmt.Errorf("name too long (max 100 characters)")
	}

	return Name{value: name}, nil
}

func (n Name) String() string {
	return n.value
}
