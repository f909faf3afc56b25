package project

import (
	"launchpad-core/internal/domain/events"
)

// Event types
const (
	EventTypeProjectCreated         = "project.created"
	EventTypeProjectSettingsUpdated = "project.settings_updated"
	EventTypeProjectDisabled        = "project.disabled"
)

// ProjectCreated is raised when a new project is created
type ProjectCreated struct {
	events.BaseEvent
	ProjectID string
	OrgID     string
	Name      string
}

func NewProjectCreated(projectID, orgID, name string) *ProjectCreated {
	return &ProjectCreated{
		BaseEvent: events.NewBaseEvent(EventTypeProjectCreated, projectID),
		ProjectID: projectID,
		OrgID:     orgID,
		Name:      name,
	}
}

// ProjectSettingsUpdated is raised when a project's settings are saved
type ProjectSettingsUpdated struct {
	events.BaseEvent
	ProjectID  string
	OrgID      string
	Branch     string
	AutoDeploy bool
	// DeploymentID is set when the settings change queued a deployment
	DeploymentID string
}

func NewProjectSettingsUpdated(projectID, orgID, branch string, autoDeploy bool, deploymentID string) *ProjectSettingsUpdated {
	return &ProjectSettingsUpdated{
		BaseEvent:    events.NewBaseEvent(EventTypeProjectSettingsUpdated, projectID),
		ProjectID:    projectID,
		OrgID:        orgID,
		Branch:       branch,
		AutoDeploy:   autoDeploy,
		DeploymentID: deploymentID,
	}
}

// ProjectDisabled is raised when a project is disabled and removed
type ProjectDisabled struct {
	events.BaseEvent
	ProjectID string
	OrgID     string
	Name      string
}

func NewProjectDisabled(projectID, orgID, name string) *ProjectDisabled {
	return &ProjectDisabled{
		BaseEvent: events.NewBaseEvent(EventTypeProjectDisabled, projectID),
		ProjectID: projectID,
		OrgID:     orgID,
		Name:      name,
	}
}
