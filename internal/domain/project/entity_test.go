package project_test

import (
	"errors"
	"testing"

	"launchpad-core/internal/domain/org"
	"launchpad-core/internal/domain/project"
)

func newProject(t *testing.T) *project.Project {
	t.Helper()
	proj, err := project.NewProject(org.NewOrgID(), "shop-api", "main", "npm install", "npm start", false)
	if err != nil {
		t.Fatalf("NewProject() error = %v", err)
	}
	return proj
}

func TestNewProjectDefaults(t *testing.T) {
	proj := newProject(t)

	if !proj.Enabled() {
		t.Error("new project not enabled")
	}
	if proj.AutoDeploy() {
		t.Error("auto deploy on without being requested")
	}
	if proj.ID().String() == "" {
		t.Error("project has no ID")
	}
}

func TestNewProjectOptionalBuildCommand(t *testing.T) {
	proj, err := project.NewProject(org.NewOrgID(), "shop-api", "main", "", "npm start", false)
	if err != nil {
		t.Fatalf("NewProject() error = %v", err)
	}
	if !proj.BuildCommand().IsEmpty() {
		t.Errorf("BuildCommand = %q, want empty", proj.BuildCommand().String())
	}
}

func TestNewProjectRequiresStartCommand(t *testing.T) {
	if _, err := project.NewProject(org.NewOrgID(), "shop-api", "main", "", "", false); err == nil {
		t.Error("NewProject() accepted empty start command")
	}
}

func TestUpdateSettings(t *testing.T) {
	proj := newProject(t)

	if err := proj.UpdateSettings("release", "make build", "make run", true); err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}

	if proj.Branch().String() != "release" {
		t.Errorf("Branch = %q, want release", proj.Branch().String())
	}
	if proj.BuildCommand().String() != "make build" {
		t.Errorf("BuildCommand = %q, want make build", proj.BuildCommand().String())
	}
	if proj.StartCommand().String() != "make run" {
		t.Errorf("StartCommand = %q, want make run", proj.StartCommand().String())
	}
	if !proj.AutoDeploy() {
		t.Error("AutoDeploy not applied")
	}
}

func TestUpdateSettingsInvalidBranch(t *testing.T) {
	proj := newProject(t)

	if err := proj.UpdateSettings("bad branch", "", "npm start", false); err == nil {
		t.Error("UpdateSettings() accepted invalid branch")
	}
	if proj.Branch().String() != "main" {
		t.Errorf("branch changed to %q after failed update", proj.Branch().String())
	}
}

func TestUpdateSettingsOnDisabledProject(t *testing.T) {
	proj := newProject(t)
	proj.Disable()

	err := proj.UpdateSettings("release", "", "npm start", false)
	if !errors.Is(err, project.ErrProjectDisabled) {
		t.Errorf("error = %v, want ErrProjectDisabled", err)
	}
}

func TestBelongsToOrg(t *testing.T) {
	orgID := org.NewOrgID()
	proj, err := project.NewProject(orgID, "shop-api", "main", "", "npm start", false)
	if err != nil {
		t.Fatalf("NewProject() error = %v", err)
	}

	if !proj.BelongsToOrg(orgID) {
		t.Error("BelongsToOrg() = false for owning org")
	}
	if proj.BelongsToOrg(org.NewOrgID()) {
		t.Error("BelongsToOrg() = true for other org")
	}
}
