package deployment

import (
	"fmt"

	"github.com/google/uuid"
)

// DeploymentID is a value object for deployment ID
type DeploymentID struct {
	value uuid.UUID
}

func NewDeploymentID() DeploymentID {
	return DeploymentID{value: uuid.New()}
}

func ParseDeploymentID(id string) (DeploymentID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return DeploymentID{}, fmt.Errorf("invalid deployment ID format: %w", err)
	}
	return DeploymentID{value: uid}, nil
}

func (id DeploymentID) String() string {
	return id.value.String()
}

func (id DeploymentID) UUID() uuid.UUID {
	return id.value
}

// Status represents the deployment lifecycle state
type Status string

const (
	StatusQueued   Status = "queued"
	StatusBuilding Status = "building"
	StatusRunning  Status = "running"
	StatusFailed   Status = "failed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusQueued, StatusBuilding, StatusRunning, StatusFailed:
		return Status(s), nil
	}
	return "", fmt.Errorf("invalid deployment status: %q", s)
}

func (s Status) String() string {
	return string(s)
}

// Trigger records what caused a deployment
type Trigger string

const (
	TriggerSettingsChange Trigger = "settings_change"
	TriggerPush           Trigger = "push"
	TriggerManual         Trigger = "manual"
)

func ParseTrigger(s string) (Trigger, error) {
	switch Trigger(s) {
	case TriggerSettingsChange, TriggerPush, TriggerManual:
		return Trigger(s), nil
	}
	return "", fmt.Errorf("invalid deployment trigger: %q", s)
}

func (t Trigger) String() string {
	return string(t)
}
