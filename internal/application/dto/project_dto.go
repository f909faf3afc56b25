package dto

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	Name         string `json:"name" binding:"required"`
	Branch       string `json:"branch" binding:"required"`
	BuildCommand string `json:"build_command"` // Optional
	StartCommand string `json:"start_command" binding:"required"`
	AutoDeploy   bool   `json:"auto_deploy"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	ID           string `json:"id"`
	OrgID        string `json:"org_id"`
	Name         string `json:"name"`
	Branch       string `json:"branch"`
	BuildCommand string `json:"build_command"`
	StartCommand string `json:"start_command"`
	AutoDeploy   bool   `json:"auto_deploy"`
	Enabled      bool   `json:"enabled"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects   []*ProjectResponse `json:"projects"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse carries pagination metadata
type PaginationResponse struct {
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// DisabledProjectResponse describes a project that was disabled and removed
type DisabledProjectResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
