package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"launchpad-core/internal/application/dto"
	"launchpad-core/internal/application/form"
	"launchpad-core/internal/domain/deployment"
	"launchpad-core/internal/domain/events"
	"launchpad-core/internal/domain/org"
	"launchpad-core/internal/domain/project"
)

// Encryptor encrypts environment variable values before persistence and
// decrypts them when the settings page needs a masked preview
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SettingsService applies validated settings changes to a project
type SettingsService struct {
	projectRepo    project.ProjectRepository
	envVarRepo     project.EnvironmentVariableRepository
	deploymentRepo deployment.DeploymentRepository
	encryptor      Encryptor
	dispatcher     *events.Dispatcher
}

// NewSettingsService creates a new settings service
func NewSettingsService(
	projectRepo project.ProjectRepository,
	envVarRepo project.EnvironmentVariableRepository,
	deploymentRepo deployment.DeploymentRepository,
	encryptor Encryptor,
	dispatcher *events.Dispatcher,
) *SettingsService {
	return &SettingsService{
		projectRepo:    projectRepo,
		envVarRepo:     envVarRepo,
		deploymentRepo: deploymentRepo,
		encryptor:      encryptor,
		dispatcher:     dispatcher,
	}
}

// UpdateSettings persists a validated settings payload for a project and
// reports whether the change queued a deployment. The caller turns the
// IsDeploying flag into the user-facing response; this service never writes
// HTTP concerns.
func (s *SettingsService) UpdateSettings(
	ctx context.Context,
	orgID, projectID string,
	payload *form.SettingsPayload,
) (*dto.SettingsResult, error) {
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

	if err := proj.UpdateSettings(payload.Branch, payload.BuildCommand, payload.StartCommand, payload.AutoDeploy); err != nil {
		return nil, fmt.Errorf("failed to apply settings: %w", err)
	}

	// Reshaper output is already deduplicated; encrypt values before storage
	envVars := make([]*project.EnvironmentVariable, 0, len(payload.EnvVars))
	for _, pair := range payload.EnvVars {
		encrypted, err := s.encryptor.Encrypt(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt value for %s: %w", pair.Name, err)
		}
		envVar, err := project.NewEnvironmentVariable(pid, pair.Name, encrypted)
		if err != nil {
			return nil, fmt.Errorf("failed to create environment variable: %w", err)
		}
		envVars = append(envVars, envVar)
	}

	if err := s.envVarRepo.ReplaceForProject(ctx, pid, envVars); err != nil {
		return nil, fmt.Errorf("failed to replace environment variables: %w", err)
	}

	if err := s.projectRepo.Save(ctx, proj); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	result := &dto.SettingsResult{ProjectName: proj.Name().String()}

	if proj.AutoDeploy() {
		dep, err := deployment.NewDeployment(pid, proj.Branch().String(), deployment.TriggerSettingsChange)
		if err != nil {
			return nil, fmt.Errorf("failed to create deployment entity: %w", err)
		}
		if err := s.deploymentRepo.Save(ctx, dep); err != nil {
			return nil, fmt.Errorf("failed to queue deployment: %w", err)
		}
		result.IsDeploying = true
		result.DeploymentID = dep.ID().String()
	}

	event := project.NewProjectSettingsUpdated(
		proj.ID().String(),
		proj.OrgID().String(),
		proj.Branch().String(),
		proj.AutoDeploy(),
		result.DeploymentID,
	)
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		// The settings are saved; a failing subscriber must not fail the request
		log.Printf("settings updated event dispatch failed for project %s: %v", proj.ID().String(), err)
	}

	return result, nil
}

// GetSettings loads a project's current settings for the settings page.
// Environment variable values are decrypted and then masked; the plaintext
// never leaves this service.
func (s *SettingsService) GetSettings(ctx context.Context, orgID, projectID string) (*dto.SettingsResponse, error) {
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

	envVars, err := s.envVarRepo.FindByProjectID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch environment variables: %w", err)
	}

	envVarResponses := make([]dto.EnvVarResponse, 0, len(envVars))
	for _, envVar := range envVars {
		plaintext, err := s.encryptor.Decrypt(envVar.Value().EncryptedValue())
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt value for %s: %w", envVar.Key().String(), err)
		}
		envVarResponses = append(envVarResponses, dto.EnvVarResponse{
			ID:        envVar.ID().String(),
			Key:       envVar.Key().String(),
			Value:     project.NewEnvVarValue(plaintext).Masked(),
			CreatedAt: envVar.CreatedAt().Format(time.RFC3339),
			UpdatedAt: envVar.UpdatedAt().Format(time.RFC3339),
		})
	}

	return &dto.SettingsResponse{
		ProjectID:    proj.ID().String(),
		ProjectName:  proj.Name().String(),
		Branch:       proj.Branch().String(),
		BuildCommand: proj.BuildCommand().String(),
		StartCommand: proj.StartCommand().String(),
		AutoDeploy:   proj.AutoDeploy(),
		EnvVars:      envVarResponses,
	}, nil
}
