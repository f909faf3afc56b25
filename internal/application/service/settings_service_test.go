package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"launchpad-core/internal/application/form"
	"launchpad-core/internal/application/service"
	"launchpad-core/internal/domain/deployment"
	"launchpad-core/internal/domain/events"
	"launchpad-core/internal/domain/org"
	"launchpad-core/internal/domain/project"
)

// Mock implementations

type mockProjectRepo struct {
	projects    map[string]*project.Project
	nameIndex   map[string]bool
	deleted     []string
	shouldError bool
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{
		projects:  make(map[string]*project.Project),
		nameIndex: make(map[string]bool),
	}
}

func (m *mockProjectRepo) add(proj *project.Project) {
	m.projects[proj.ID().String()] = proj
	m.nameIndex[proj.OrgID().String()+"/"+proj.Name().String()] = true
}

func (m *mockProjectRepo) Save(ctx context.Context, proj *project.Project) error {
	if m.shouldError {
		return errors.New("repository error")
	}
	m.add(proj)
	return nil
}

func (m *mockProjectRepo) FindByID(ctx context.Context, id project.ProjectID) (*project.Project, error) {
	if m.shouldError {
		return nil, errors.New("repository error")
	}
	proj, ok := m.projects[id.String()]
	if !ok {
		return nil, project.ErrProjectNotFound
	}
	return proj, nil
}

func (m *mockProjectRepo) FindByOrgID(ctx context.Context, orgID org.OrgID, limit, offset int32) ([]*project.Project, error) {
	var result []*project.Project
	for _, proj := range m.projects {
		if proj.BelongsToOrg(orgID) {
			result = append(result, proj)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) CountByOrgID(ctx context.Context, orgID org.OrgID) (int64, error) {
	projs, _ := m.FindByOrgID(ctx, orgID, 0, 0)
	return int64(len(projs)), nil
}

func (m *mockProjectRepo) ExistsByName(ctx context.Context, orgID org.OrgID, name project.Name) (bool, error) {
	return m.nameIndex[orgID.String()+"/"+name.String()], nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, id project.ProjectID) error {
	if _, ok := m.projects[id.String()]; !ok {
		return project.ErrProjectNotFound
	}
	delete(m.projects, id.String())
	m.deleted = append(m.deleted, id.String())
	return nil
}

type mockEnvVarRepo struct {
	replaced       map[string][]*project.EnvironmentVariable
	deletedProject []string
	shouldError    bool
}

func newMockEnvVarRepo() *mockEnvVarRepo {
	return &mockEnvVarRepo{replaced: make(map[string][]*project.EnvironmentVariable)}
}

func (m *mockEnvVarRepo) Save(ctx context.Context, envVar *project.EnvironmentVariable) error {
	return nil
}

func (m *mockEnvVarRepo) FindByProjectID(ctx context.Context, projectID project.ProjectID) ([]*project.EnvironmentVariable, error) {
	return m.replaced[projectID.String()], nil
}

func (m *mockEnvVarRepo) ReplaceForProject(ctx context.Context, projectID project.ProjectID, envVars []*project.EnvironmentVariable) error {
	if m.shouldError {
		return errors.New("repository error")
	}
	m.replaced[projectID.String()] = envVars
	return nil
}

func (m *mockEnvVarRepo) DeleteByProjectID(ctx context.Context, projectID project.ProjectID) error {
	m.deletedProject = append(m.deletedProject, projectID.String())
	return nil
}

type mockDeploymentRepo struct {
	saved       []*deployment.Deployment
	shouldError bool
}

func (m *mockDeploymentRepo) Save(ctx context.Context, dep *deployment.Deployment) error {
	if m.shouldError {
		return errors.New("repository error")
	}
	m.saved = append(m.saved, dep)
	return nil
}

func (m *mockDeploymentRepo) FindByID(ctx context.Context, id deployment.DeploymentID) (*deployment.Deployment, error) {
	for _, dep := range m.saved {
		if dep.ID().String() == id.String() {
			return dep, nil
		}
	}
	return nil, deployment.ErrDeploymentNotFound
}

func (m *mockDeploymentRepo) FindByProjectID(ctx context.Context, projectID project.ProjectID, limit, offset int32) ([]*deployment.Deployment, error) {
	return m.saved, nil
}

type mockEncryptor struct{}

func (mockEncryptor) Encrypt(plaintext string) (string, error) {
	return "enc:" + plaintext, nil
}

func (mockEncryptor) Decrypt(ciphertext string) (string, error) {
	return strings.TrimPrefix(ciphertext, "enc:"), nil
}

func payloadFor(autoDeploy bool) *form.SettingsPayload {
	return &form.SettingsPayload{
		Branch:       "release",
		BuildCommand: "make build",
		StartCommand: "make run",
		AutoDeploy:   autoDeploy,
		EnvVars:      []form.EnvVarPair{{Name: "FOO", Value: "bar"}, {Name: "TOKEN", Value: "s3cret"}},
	}
}

func newTestProject(t *testing.T, orgID org.OrgID, autoDeploy bool) *project.Project {
	t.Helper()
	proj, err := project.NewProject(orgID, "shop-api", "main", "npm install", "npm start", autoDeploy)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return proj
}

func TestUpdateSettingsTriggersDeploy(t *testing.T) {
	orgID := org.NewOrgID()
	projectRepo := newMockProjectRepo()
	envVarRepo := newMockEnvVarRepo()
	deploymentRepo := &mockDeploymentRepo{}
	dispatcher := events.NewDispatcher()

	var (
		mu       sync.Mutex
		received *project.ProjectSettingsUpdated
	)
	dispatcher.Register(project.EventTypeProjectSettingsUpdated, func(ctx context.Context, event events.DomainEvent) error {
		mu.Lock()
		defer mu.Unlock()
		received = event.(*project.ProjectSettingsUpdated)
		return nil
	})

	proj := newTestProject(t, orgID, false)
	projectRepo.add(proj)

	svc := service.NewSettingsService(projectRepo, envVarRepo, deploymentRepo, mockEncryptor{}, dispatcher)

	result, err := svc.UpdateSettings(context.Background(), orgID.String(), proj.ID().String(), payloadFor(true))
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}

	if !result.IsDeploying {
		t.Error("IsDeploying = false, want true")
	}
	if result.DeploymentID == "" {
		t.Error("DeploymentID is empty")
	}
	if result.ProjectName != "shop-api" {
		t.Errorf("ProjectName = %q, want shop-api", result.ProjectName)
	}

	if proj.Branch().String() != "release" {
		t.Errorf("branch = %q, want release", proj.Branch().String())
	}
	if !proj.AutoDeploy() {
		t.Error("auto deploy flag not applied")
	}

	if len(deploymentRepo.saved) != 1 {
		t.Fatalf("deployments saved = %d, want 1", len(deploymentRepo.saved))
	}
	dep := deploymentRepo.saved[0]
	if dep.Trigger() != deployment.TriggerSettingsChange {
		t.Errorf("trigger = %s, want %s", dep.Trigger(), deployment.TriggerSettingsChange)
	}
	if dep.Branch() != "release" {
		t.Errorf("deployment branch = %q, want release", dep.Branch())
	}

	envVars := envVarRepo.replaced[proj.ID().String()]
	if len(envVars) != 2 {
		t.Fatalf("env vars replaced = %d, want 2", len(envVars))
	}
	for _, envVar := range envVars {
		if !strings.HasPrefix(envVar.Value().EncryptedValue(), "enc:") {
			t.Errorf("value for %s stored unencrypted", envVar.Key().String())
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if received == nil {
		t.Fatal("settings updated event not dispatched")
	}
	if received.DeploymentID != result.DeploymentID {
		t.Errorf("event DeploymentID = %q, want %q", received.DeploymentID, result.DeploymentID)
	}
}

func TestUpdateSettingsWithoutAutoDeploy(t *testing.T) {
	orgID := org.NewOrgID()
	projectRepo := newMockProjectRepo()
	envVarRepo := newMockEnvVarRepo()
	deploymentRepo := &mockDeploymentRepo{}

	proj := newTestProject(t, orgID, true)
	projectRepo.add(proj)

	svc := service.NewSettingsService(projectRepo, envVarRepo, deploymentRepo, mockEncryptor{}, events.NewDispatcher())

	result, err := svc.UpdateSettings(context.Background(), orgID.String(), proj.ID().String(), payloadFor(false))
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}

	if result.IsDeploying {
		t.Error("IsDeploying = true, want false")
	}
	if result.DeploymentID != "" {
		t.Errorf("DeploymentID = %q, want empty", result.DeploymentID)
	}
	if len(deploymentRepo.saved) != 0 {
		t.Errorf("deployments saved = %d, want 0", len(deploymentRepo.saved))
	}
}

func TestUpdateSettingsProjectNotFound(t *testing.T) {
	svc := service.NewSettingsService(newMockProjectRepo(), newMockEnvVarRepo(), &mockDeploymentRepo{}, mockEncryptor{}, events.NewDispatcher())

	_, err := svc.UpdateSettings(context.Background(), org.NewOrgID().String(), project.NewProjectID().String(), payloadFor(false))
	if !errors.Is(err, project.ErrProjectNotFound) {
		t.Errorf("error = %v, want ErrProjectNotFound", err)
	}
}

func TestUpdateSettingsWrongOrg(t *testing.T) {
	projectRepo := newMockProjectRepo()
	proj := newTestProject(t, org.NewOrgID(), false)
	projectRepo.add(proj)

	svc := service.NewSettingsService(projectRepo, newMockEnvVarRepo(), &mockDeploymentRepo{}, mockEncryptor{}, events.NewDispatcher())

	_, err := svc.UpdateSettings(context.Background(), org.NewOrgID().String(), proj.ID().String(), payloadFor(false))
	if !errors.Is(err, project.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestGetSettingsMasksEnvVarValues(t *testing.T) {
	orgID := org.NewOrgID()
	projectRepo := newMockProjectRepo()
	envVarRepo := newMockEnvVarRepo()

	proj := newTestProject(t, orgID, false)
	projectRepo.add(proj)

	svc := service.NewSettingsService(projectRepo, envVarRepo, &mockDeploymentRepo{}, mockEncryptor{}, events.NewDispatcher())

	if _, err := svc.UpdateSettings(context.Background(), orgID.String(), proj.ID().String(), payloadFor(false)); err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}

	settings, err := svc.GetSettings(context.Background(), orgID.String(), proj.ID().String())
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}

	if settings.ProjectName != "shop-api" {
		t.Errorf("ProjectName = %q, want shop-api", settings.ProjectName)
	}
	if settings.Branch != "release" {
		t.Errorf("Branch = %q, want release", settings.Branch)
	}
	if len(settings.EnvVars) != 2 {
		t.Fatalf("env vars = %d, want 2", len(settings.EnvVars))
	}

	masked := make(map[string]string, len(settings.EnvVars))
	for _, envVar := range settings.EnvVars {
		masked[envVar.Key] = envVar.Value
	}
	if masked["FOO"] != "b*******r" {
		t.Errorf("FOO value = %q, want b*******r", masked["FOO"])
	}
	if masked["TOKEN"] != "s*******t" {
		t.Errorf("TOKEN value = %q, want s*******t", masked["TOKEN"])
	}
	for key, value := range masked {
		if value == "bar" || value == "s3cret" || strings.HasPrefix(value, "enc:") {
			t.Errorf("value for %s exposed as %q", key, value)
		}
	}
}

func TestGetSettingsWrongOrg(t *testing.T) {
	projectRepo := newMockProjectRepo()
	proj := newTestProject(t, org.NewOrgID(), false)
	projectRepo.add(proj)

	svc := service.NewSettingsService(projectRepo, newMockEnvVarRepo(), &mockDeploymentRepo{}, mockEncryptor{}, events.NewDispatcher())

	_, err := svc.GetSettings(context.Background(), org.NewOrgID().String(), proj.ID().String())
	if !errors.Is(err, project.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestUpdateSettingsEnvVarPersistenceFailure(t *testing.T) {
	orgID := org.NewOrgID()
	projectRepo := newMockProjectRepo()
	envVarRepo := newMockEnvVarRepo()
	envVarRepo.shouldError = true

	proj := newTestProject(t, orgID, false)
	projectRepo.add(proj)

	svc := service.NewSettingsService(projectRepo, envVarRepo, &mockDeploymentRepo{}, mockEncryptor{}, events.NewDispatcher())

	if _, err := svc.UpdateSettings(context.Background(), orgID.String(), proj.ID().String(), payloadFor(false)); err == nil {
		t.Error("UpdateSettings() succeeded despite repository failure")
	}
}
