package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"launchpad-core/internal/application/dto"
	"launchpad-core/internal/domain/events"
	"launchpad-core/internal/domain/org"
	"launchpad-core/internal/domain/project"
)

// ProjectService handles project-related use cases
type ProjectService struct {
	projectRepo project.ProjectRepository
	envVarRepo  project.EnvironmentVariableRepository
	orgRepo     org.OrganizationRepository
	dispatcher  *events.Dispatcher
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo project.ProjectRepository,
	envVarRepo project.EnvironmentVariableRepository,
	orgRepo org.OrganizationRepository,
	dispatcher *events.Dispatcher,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		envVarRepo:  envVarRepo,
		orgRepo:     orgRepo,
		dispatcher:  dispatcher,
	}
}

// ResolveOrg resolves an organization by its URL slug
func (s *ProjectService) ResolveOrg(ctx context.Context, slug string) (*org.Organization, error) {
	sl, err := org.NewSlug(slug)
	if err != nil {
		return nil, fmt.Errorf("invalid org slug: %w", err)
	}
	return s.orgRepo.FindBySlug(ctx, sl)
}

// CreateProject creates a new project for an organization
func (s *ProjectService) CreateProject(ctx context.Context, orgID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	oid, err := org.ParseOrgID(orgID)
	if err != nil {
		return nil, fmt.Errorf("invalid org ID: %w", err)
	}

	name, err := project.NewName(req.Name)
	if err != nil {
		return nil, fmt.Errorf("invalid project name: %w", err)
	}

	exists, err := s.projectRepo.ExistsByName(ctx, oid, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check project existence: %w", err)
	}
	if exists {
		return nil, project.ErrProjectAlreadyExists
	}

	proj, err := project.NewProject(oid, req.Name, req.Branch, req.BuildCommand, req.StartCommand, req.AutoDeploy)
	if err != nil {
		return nil, fmt.Errorf("failed to create project entity: %w", err)
	}

	if err := s.projectRepo.Save(ctx, proj); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	event := project.NewProjectCreated(proj.ID().String(), proj.OrgID().String(), proj.Name().String())
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		log.Printf("project created event dispatch failed for project %s: %v", proj.ID().String(), err)
	}

	return s.toDTO(proj), nil
}

// GetProject retrieves a project by its ID, scoped to an organization
func (s *ProjectService) GetProject(ctx context.Context, orgID, projectID string) (*dto.ProjectResponse, error) {
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

	return s.toDTO(proj), nil
}

// GetOrgProjects retrieves all projects for an organization with pagination
func (s *ProjectService) GetOrgProjects(ctx context.Context, orgID string, page, limit int32) (*dto.ProjectListResponse, error) {
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

	offset := (page - 1) * limit

	projects, err := s.projectRepo.FindByOrgID(ctx, oid, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	total, err := s.projectRepo.CountByOrgID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	projectResponses := make([]*dto.ProjectResponse, len(projects))
	for i, proj := range projects {
		projectResponses[i] = s.toDTO(proj)
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &dto.ProjectListResponse{
		Projects: projectResponses,
		Pagination: dto.PaginationResponse{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// DisableProject disables a project, removes its record and environment
// variables, and returns the removed project's metadata for the confirmation
// message. One-way; the presentation layer is responsible for asking the user
// first.
func (s *ProjectService) DisableProject(ctx context.Context, orgID, projectID string) (*dto.DisabledProjectResponse, error) {
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

	proj.Disable()

	if err := s.envVarRepo.DeleteByProjectID(ctx, pid); err != nil {
		return nil, fmt.Errorf("failed to delete environment variables: %w", err)
	}

	if err := s.projectRepo.Delete(ctx, pid); err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}

	event := project.NewProjectDisabled(proj.ID().String(), proj.OrgID().String(), proj.Name().String())
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		log.Printf("project disabled event dispatch failed for project %s: %v", proj.ID().String(), err)
	}

	return &dto.DisabledProjectResponse{
		ID:   proj.ID().String(),
		Name: proj.Name().String(),
	}, nil
}

func (s *ProjectService) toDTO(proj *project.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:           proj.ID().String(),
		OrgID:        proj.OrgID().String(),
		Name:         proj.Name().String(),
		Branch:       proj.Branch().String(),
		BuildCommand: proj.BuildCommand().String(),
		StartCommand: proj.StartCommand().String(),
		AutoDeploy:   proj.AutoDeploy(),
		Enabled:      proj.Enabled(),
		CreatedAt:    proj.CreatedAt().Format(time.RFC3339),
		UpdatedAt:    proj.UpdatedAt().Format(time.RFC3339),
	}
}
