package dto

// DeploymentResponse represents a deployment in API responses
type DeploymentResponse struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	Branch     string `json:"branch"`
	Trigger    string `json:"trigger"`
	Status     string `json:"status"`
	StatusNote string `json:"status_note,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// DeploymentListResponse represents a list of deployments for a project
type DeploymentListResponse struct {
	Deployments []*DeploymentResponse `json:"deployments"`
	Pagination  PaginationResponse    `json:"pagination"`
}
