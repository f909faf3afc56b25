package builder

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"launchpad-core/internal/domain/deployment"
	"launchpad-core/internal/domain/events"
	"launchpad-core/internal/domain/project"
)

// Decryptor decrypts environment variable values for container injection
type Decryptor interface {
	Decrypt(ciphertext string) (string, error)
}

// DeployTrigger runs queued deployments when a settings change asks for one.
// It subscribes to project.settings_updated and drives the Docker build and
// container swap for the affected project.
type DeployTrigger struct {
	dockerClient   *DockerClient
	projectRepo    project.ProjectRepository
	envVarRepo     project.EnvironmentVariableRepository
	deploymentRepo deployment.DeploymentRepository
	decryptor      Decryptor
	registry       string
	workDir        string
}

// NewDeployTrigger creates a new deploy trigger
func NewDeployTrigger(
	projectRepo project.ProjectRepository,
	envVarRepo project.EnvironmentVariableRepository,
	deploymentRepo deployment.DeploymentRepository,
	decryptor Decryptor,
	registry, workDir string,
) (*DeployTrigger, error) {
	dockerClient, err := NewDockerClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return &DeployTrigger{
		dockerClient:   dockerClient,
		projectRepo:    projectRepo,
		envVarRepo:     envVarRepo,
		deploymentRepo: deploymentRepo,
		decryptor:      decryptor,
		registry:       registry,
		workDir:        workDir,
	}, nil
}

// Register subscribes the trigger to settings-updated events
func (t *DeployTrigger) Register(dispatcher *events.Dispatcher) {
	dispatcher.Register(project.EventTypeProjectSettingsUpdated, t.HandleSettingsUpdated)
}

// HandleSettingsUpdated runs the deployment queued by a settings change, if any
func (t *DeployTrigger) HandleSettingsUpdated(ctx context.Context, event events.DomainEvent) error {
	updated, ok := event.(*project.ProjectSettingsUpdated)
	if !ok {
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	if updated.DeploymentID == "" {
		// Settings saved without auto-deploy; nothing to run
		return nil
	}

	return t.Run(ctx, updated.DeploymentID)
}

// Run executes a queued deployment end to end
func (t *DeployTrigger) Run(ctx context.Context, deploymentID string) error {
	did, err := deployment.ParseDeploymentID(deploymentID)
	if err != nil {
		return fmt.Errorf("invalid deployment ID: %w", err)
	}

	dep, err := t.deploymentRepo.FindByID(ctx, did)
	if err != nil {
		return err
	}

	proj, err := t.projectRepo.FindByID(ctx, dep.ProjectID())
	if err != nil {
		return err
	}

	if err := dep.MarkBuilding(); err != nil {
		return err
	}
	if err := t.deploymentRepo.Save(ctx, dep); err != nil {
		return fmt.Errorf("failed to save deployment: %w", err)
	}

	if err := t.deploy(ctx, proj, dep); err != nil {
		dep.MarkFailed(err.Error())
		if saveErr := t.deploymentRepo.Save(ctx, dep); saveErr != nil {
			log.Printf("failed to record deployment failure for %s: %v", dep.ID().String(), saveErr)
		}
		return err
	}

	if err := dep.MarkRunning(); err != nil {
		return err
	}
	if err := t.deploymentRepo.Save(ctx, dep); err != nil {
		return fmt.Errorf("failed to save deployment: %w", err)
	}

	log.Printf("deployment %s for project %s is running", dep.ID().String(), proj.Name().String())
	return nil
}

func (t *DeployTrigger) deploy(ctx context.Context, proj *project.Project, dep *deployment.Deployment) error {
	env, err := t.containerEnv(ctx, proj.ID())
	if err != nil {
		return err
	}

	buildCmd := proj.BuildCommand().String()
	startCmd := proj.StartCommand().String()
	branch := dep.Branch()

	tag := fmt.Sprintf("%s/%s:%s", t.registry, proj.Name().String(), dep.ID().String())

	// The build agent checks the project's branch out under workDir before
	// the deployment is queued
	err = t.dockerClient.BuildImage(ctx, BuildImageOptions{
		ContextPath: filepath.Join(t.workDir, proj.ID().String()),
		Tag:         tag,
		BuildArgs: map[string]*string{
			"BUILD_COMMAND": &buildCmd,
			"START_COMMAND": &startCmd,
			"BRANCH":        &branch,
		},
	})
	if err != nil {
		return err
	}

	containerName := fmt.Sprintf("launchpad-%s", proj.ID().String())
	if _, err := t.dockerClient.RecreateContainer(ctx, containerName, tag, env); err != nil {
		return err
	}

	return nil
}

func (t *DeployTrigger) containerEnv(ctx context.Context, projectID project.ProjectID) ([]string, error) {
	envVars, err := t.envVarRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	env := make([]string, 0, len(envVars))
	for _, envVar := range envVars {
		value, err := t.decryptor.Decrypt(envVar.Value().EncryptedValue())
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt %s: %w", envVar.Key().String(), err)
		}
		env = append(env, fmt.Sprintf("%s=%s", envVar.Key().String(), value))
	}

	return env, nil
}
