package dto

import "launchpad-core/internal/application/form"

// SettingsSavedResponse is returned when settings were saved without
// triggering a deployment
type SettingsSavedResponse struct {
	Status       string `json:"status"`
	IsDeploying  bool   `json:"is_deploying"`
	DeploymentID string `json:"deployment_id,omitempty"`
}

// ValidationErrorResponse carries field-level validation errors for the
// rendering layer to annotate inputs with
type ValidationErrorResponse struct {
	Errors []form.FieldError `json:"errors"`
}

// SettingsResult is the orchestrator's outcome of a settings save
type SettingsResult struct {
	ProjectName  string
	IsDeploying  bool
	DeploymentID string
}

// SettingsResponse is the project's current settings as shown on the
// settings page, with environment variable values masked
type SettingsResponse struct {
	ProjectID    string           `json:"project_id"`
	ProjectName  string           `json:"project_name"`
	Branch       string           `json:"branch"`
	BuildCommand string           `json:"build_command,omitempty"`
	StartCommand string           `json:"start_command"`
	AutoDeploy   bool             `json:"auto_deploy"`
	EnvVars      []EnvVarResponse `json:"env_vars"`
}

// EnvVarResponse represents an environment variable with its value masked
type EnvVarResponse struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Value     string `json:"value"` // masked
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
