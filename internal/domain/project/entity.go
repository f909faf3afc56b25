package project

import (
	"fmt"
	"time"

	"launchpad-core/internal/domain/org"
)

// Project is a domain entity representing a deployable project
type Project struct {
	id           ProjectID
	orgID        org.OrgID
	name         Name
	branch       Branch
	buildCommand Command
	startCommand Command
	autoDeploy   bool
	enabled      bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewProject creates a new Project entity
func NewProject(
	orgID org.OrgID,
	name, branch, buildCommand, startCommand string,
	autoDeploy bool,
) (*Project, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid name: %w", err)
	}

	b, err := NewBranch(branch)
	if err != nil {
		return nil, fmt.Errorf("invalid branch: %w", err)
	}

	// Build command is optional
	buildCmd := NewOptionalCommand(buildCommand)

	startCmd, err := NewCommand(startCommand)
	if err != nil {
		return nil, fmt.Errorf("invalid start command: %w", err)
	}

	now := time.Now()
	return &Project{
		id:           NewProjectID(),
		orgID:        orgID,
		name:         n,
		branch:       b,
		buildCommand: buildCmd,
		startCommand: startCmd,
		autoDeploy:   autoDeploy,
		enabled:      true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstitute recreates a Project entity from persistence
func Reconstitute(
	id string,
	orgID org.OrgID,
	name, branch, buildCommand, startCommand string,
	autoDeploy, enabled bool,
	createdAt, updatedAt time.Time,
) (*Project, error) {
	projectID, err := ParseProjectID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID: %w", err)
	}

	n, err := NewName(name)
	if err != nil {
		return nil, fmt.Errorf("invalid name: %w", err)
	}

	b, err := NewBranch(branch)
	if err != nil {
		return nil, fmt.Errorf("invalid branch: %w", err)
	}

	buildCmd := NewOptionalCommand(buildCommand)

	startCmd, err := NewCommand(startCommand)
	if err != nil {
		return nil, fmt.Errorf("invalid start command: %w", err)
	}

	return &Project{
		id:           projectID,
		orgID:        orgID,
		name:         n,
		branch:       b,
		buildCommand: buildCmd,
		startCommand: startCmd,
		autoDeploy:   autoDeploy,
		enabled:      enabled,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

// UpdateSettings applies a validated settings change to the project
func (p *Project) UpdateSettings(branch, buildCommand, startCommand string, autoDeploy bool) error {
	if !p.enabled {
		return ErrProjectDisabled
	}

	b, err := NewBranch(branch)
	if err != nil {
		return fmt.Errorf("invalid branch: %w", err)
	}

	buildCmd := NewOptionalCommand(buildCommand)

	startCmd, err := NewCommand(startCommand)
	if err != nil {
		return fmt.Errorf("invalid start command: %w", err)
	}

	p.branch = b
	p.buildCommand = buildCmd
	p.startCommand = startCmd
	p.autoDeploy = autoDeploy
	p.updatedAt = time.Now()

	return nil
}

// Disable marks the project as non-deployable
func (p *Project) Disable() {
	p.enabled = false
	p.updatedAt = time.Now()
}

// BelongsToOrg checks if the project belongs to the specified organization
func (p *Project) BelongsToOrg(orgID org.OrgID) bool {
	return p.orgID.Equals(orgID)
}

// Getters

func (p *Project) ID() ProjectID {
	return p.id
}

func (p *Project) OrgID() org.OrgID {
	return p.orgID
}

func (p *Project) Name() Name {
	return p.name
}

func (p *Project) Branch() Branch {
	return p.branch
}

func (p *Project) BuildCommand() Command {
	return p.buildCommand
}

func (p *Project) StartCommand() Command {
	return p.startCommand
}

func (p *Project) AutoDeploy() bool {
	return p.autoDeploy
}

func (p *Project) Enabled() bool {
	return p.enabled
}

func (p *Project) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Project) UpdatedAt() time.Time {
	return p.updatedAt
}

// String returns string representation (for debugging)
func (p *Project) String() string {
	return fmt.Sprintf("Project{id: %s, orgID: %s, name: %s, branch: %s}",
		p.id.String(), p.orgID.String(), p.name.String(), p.branch.String())
}
