package service_test

import (
	"context"
	"errors"
	"testing"

	"launchpad-core/internal/application/dto"
	"launchpad-core/internal/application/service"
	"launchpad-core/internal/domain/events"
	"launchpad-core/internal/domain/org"
	"launchpad-core/internal/domain/project"
)

type mockOrgRepo struct {
	orgs map[string]*org.Organization
}

func newMockOrgRepo() *mockOrgRepo {
	return &mockOrgRepo{orgs: make(map[string]*org.Organization)}
}

func (m *mockOrgRepo) Save(ctx context.Context, organization *org.Organization) error {
	m.orgs[organization.Slug().String()] = organization
	return nil
}

func (m *mockOrgRepo) FindByID(ctx context.Context, id org.OrgID) (*org.Organization, error) {
	for _, organization := range m.orgs {
		if organization.ID().Equals(id) {
			return organization, nil
		}
	}
	return nil, org.ErrOrgNotFound
}

func (m *mockOrgRepo) FindBySlug(ctx context.Context, slug org.Slug) (*org.Organization, error) {
	organization, ok := m.orgs[slug.String()]
	if !ok {
		return nil, org.ErrOrgNotFound
	}
	return organization, nil
}

func (m *mockOrgRepo) Delete(ctx context.Context, id org.OrgID) error {
	return nil
}

func newProjectService(projectRepo *mockProjectRepo, envVarRepo *mockEnvVarRepo, orgRepo *mockOrgRepo) *service.ProjectService {
	return service.NewProjectService(projectRepo, envVarRepo, orgRepo, events.NewDispatcher())
}

func TestDisableProject(t *testing.T) {
	orgID := org.NewOrgID()
	projectRepo := newMockProjectRepo()
	envVarRepo := newMockEnvVarRepo()

	proj := newTestProject(t, orgID, false)
	projectRepo.add(proj)

	svc := newProjectService(projectRepo, envVarRepo, newMockOrgRepo())

	removed, err := svc.DisableProject(context.Background(), orgID.String(), proj.ID().String())
	if err != nil {
		t.Fatalf("DisableProject() error = %v", err)
	}

	if removed.Name != "shop-api" {
		t.Errorf("Name = %q, want shop-api", removed.Name)
	}
	if removed.ID != proj.ID().String() {
		t.Errorf("ID = %q, want %q", removed.ID, proj.ID().String())
	}

	if len(projectRepo.deleted) != 1 || projectRepo.deleted[0] != proj.ID().String() {
		t.Errorf("deleted projects = %v, want [%s]", projectRepo.deleted, proj.ID().String())
	}
	if len(envVarRepo.deletedProject) != 1 || envVarRepo.deletedProject[0] != proj.ID().String() {
		t.Errorf("env vars not deleted for project, got %v", envVarRepo.deletedProject)
	}
	if proj.Enabled() {
		t.Error("project still enabled after disable")
	}
}

func TestDisableProjectNotFound(t *testing.T) {
	svc := newProjectService(newMockProjectRepo(), newMockEnvVarRepo(), newMockOrgRepo())

	_, err := svc.DisableProject(context.Background(), org.NewOrgID().String(), project.NewProjectID().String())
	if !errors.Is(err, project.ErrProjectNotFound) {
		t.Errorf("error = %v, want ErrProjectNotFound", err)
	}
}

func TestDisableProjectWrongOrg(t *testing.T) {
	projectRepo := newMockProjectRepo()
	proj := newTestProject(t, org.NewOrgID(), false)
	projectRepo.add(proj)

	svc := newProjectService(projectRepo, newMockEnvVarRepo(), newMockOrgRepo())

	_, err := svc.DisableProject(context.Background(), org.NewOrgID().String(), proj.ID().String())
	if !errors.Is(err, project.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestCreateProjectDuplicateName(t *testing.T) {
	orgID := org.NewOrgID()
	projectRepo := newMockProjectRepo()
	proj := newTestProject(t, orgID, false)
	projectRepo.add(proj)

	svc := newProjectService(projectRepo, newMockEnvVarRepo(), newMockOrgRepo())

	_, err := svc.CreateProject(context.Background(), orgID.String(), &dto.CreateProjectRequest{
		Name:         "shop-api",
		Branch:       "main",
		StartCommand: "npm start",
	})
	if !errors.Is(err, project.ErrProjectAlreadyExists) {
		t.Errorf("error = %v, want ErrProjectAlreadyExists", err)
	}
}

func TestResolveOrg(t *testing.T) {
	orgRepo := newMockOrgRepo()
	organization, err := org.NewOrganization("acme", "Acme")
	if err != nil {
		t.Fatalf("failed to create org: %v", err)
	}
	if err := orgRepo.Save(context.Background(), organization); err != nil {
		t.Fatalf("failed to save org: %v", err)
	}

	svc := newProjectService(newMockProjectRepo(), newMockEnvVarRepo(), orgRepo)

	got, err := svc.ResolveOrg(context.Background(), "acme")
	if err != nil {
		t.Fatalf("ResolveOrg() error = %v", err)
	}
	if got.Slug().String() != "acme" {
		t.Errorf("slug = %q, want acme", got.Slug().String())
	}

	if _, err := svc.ResolveOrg(context.Background(), "ghost"); !errors.Is(err, org.ErrOrgNotFound) {
		t.Errorf("error = %v, want ErrOrgNotFound", err)
	}
}
