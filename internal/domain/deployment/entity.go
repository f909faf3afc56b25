package deployment

import (
	"fmt"
	"time"

	"launchpad-core/internal/domain/project"
)

// Deployment is a domain entity representing one deploy of a project
type Deployment struct {
	id         DeploymentID
	projectID  project.ProjectID
	branch     string
	trigger    Trigger
	status     Status
	statusNote string
	createdAt  time.Time
	updatedAt  time.Time
}

// NewDeployment creates a new queued deployment
func NewDeployment(projectID project.ProjectID, branch string, trigger Trigger) (*Deployment, error) {
	if branch == "" {
		return nil, fmt.Errorf("branch cannot be empty")
	}

	now := time.Now()
	return &Deployment{
		id:        NewDeploymentID(),
		projectID: projectID,
		branch:    branch,
		trigger:   trigger,
		status:    StatusQueued,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstitute recreates a Deployment entity from persistence
func Reconstitute(
	id string,
	projectID project.ProjectID,
	branch, trigger, status, statusNote string,
	createdAt, updatedAt time.Time,
) (*Deployment, error) {
	deploymentID, err := ParseDeploymentID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid deployment ID: %w", err)
	}

	trg, err := ParseTrigger(trigger)
	if err != nil {
		return nil, err
	}

	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	return &Deployment{
		id:         deploymentID,
		projectID:  projectID,
		branch:     branch,
		trigger:    trg,
		status:     st,
		statusNote: statusNote,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}, nil
}

// MarkBuilding transitions the deployment to building
func (d *Deployment) MarkBuilding() error {
	if d.status != StatusQueued {
		return fmt.Errorf("%w: cannot start building from %s", ErrInvalidTransition, d.status)
	}
	d.status = StatusBuilding
	d.updatedAt = time.Now()
	return nil
}

// MarkRunning transitions the deployment to running
func (d *Deployment) MarkRunning() error {
	if d.status != StatusBuilding {
		return fmt.Errorf("%w: cannot start running from %s", ErrInvalidTransition, d.status)
	}
	d.status = StatusRunning
	d.updatedAt = time.Now()
	return nil
}

// MarkFailed transitions the deployment to failed with a reason
func (d *Deployment) MarkFailed(reason string) {
	d.status = StatusFailed
	d.statusNote = reason
	d.updatedAt = time.Now()
}

// Getters

func (d *Deployment) ID() DeploymentID {
	return d.id
}

func (d *Deployment) ProjectID() project.ProjectID {
	return d.projectID
}

func (d *Deployment) Branch() string {
	return d.branch
}

func (d *Deployment) Trigger() Trigger {
	return d.trigger
}

func (d *Deployment) Status() Status {
	return d.status
}

func (d *Deployment) StatusNote() string {
	return d.statusNote
}

func (d *Deployment) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Deployment) UpdatedAt() time.Time {
	return d.updatedAt
}
