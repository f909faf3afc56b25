package service

import (
	"context"
	"fmt"
	"time"

	"launchpad-core/internal/application/dto"
	"launchpad-core/internal/domain/deployment"
	"launchpad-core/internal/domain/org"
	"launchpad-core/internal/domain/project"
)

// DeploymentService handles deployment-related use cases
type DeploymentService struct {
	deploymentRepo deployment.DeploymentRepository
	projectRepo    project.ProjectRepository
}

// NewDeploymentService creates a new deployment service
func NewDeploymentService(
	deploymentRepo deployment.DeploymentRepository,
	projectRepo project.ProjectRepository,
) *DeploymentService {
	return &DeploymentService{
		deploymentRepo: deploymentRepo,
		projectRepo:    projectRepo,
	}
}

// GetProjectDeployments retrieves deployments for a project, newest first
func (s *DeploymentService) GetProjectDeployments(ctx context.Context, orgID, projectID string, page, limit int32) (*dto.DeploymentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	oid, err := org.ParseOrgID(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid org ID: %w", err)
	}

	pid, err := project.ParseProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID: %w", err)
	}

	proj, err := s.projectRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	if !proj.BelongsToOrg(oid) {
		return nil, project.ErrUnauthorized
	}

	offset := (page - 1) * limit

	deployments, err := s.deploymentRepo.FindByProjectID(ctx, pid, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deployments: %w", err)
	}

	responses := make([]*dto.DeploymentResponse, len(deployments))
	for i, dep := range deployments {
		responses[i] = s.toDTO(dep)
	}

	return &dto.DeploymentListResponse{
		Deployments: responses,
		Pagination: dto.PaginationResponse{
			Page:  page,
			Limit: limit,
		},
	}, nil
}

// GetDeployment retrieves a deployment by its ID
func (s *DeploymentService) GetDeployment(ctx context.Context, deploymentID string) (*dto.DeploymentResponse, error) {
	did, err := deployment.ParseDeploymentID(deploymentID)
	if err != nil {
		return nil, fmt.Errorf("invalid deployment ID: %w", err)
	}

	dep, err := s.deploymentRepo.FindByID(ctx, did)
	if err != nil {
		return nil, err
	}

	return s.toDTO(dep), nil
}

func (s *DeploymentService) toDTO(dep *deployment.Deployment) *dto.DeploymentResponse {
	return &dto.DeploymentResponse{
		ID:         dep.ID().String(),
		ProjectID:  dep.ProjectID().String(),
		Branch:     dep.Branch(),
		Trigger:    dep.Trigger().String(),
		Status:     dep.Status().String(),
		StatusNote: dep.StatusNote(),
		CreatedAt:  dep.CreatedAt().Format(time.RFC3339),
		UpdatedAt:  dep.UpdatedAt().Format(time.RFC3339),
	}
}
