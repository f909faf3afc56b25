package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"launchpad-core/internal/application/dto"
	"launchpad-core/internal/application/form"
	"launchpad-core/internal/domain/org"
	"launchpad-core/internal/domain/project"
	"launchpad-core/internal/presentation/flash"

	"github.com/gin-gonic/gin"
)

// Discriminator values of the settings form's action field
const (
	actionSave    = "save"
	actionDestroy = "destroy"
)

// SettingsUpdater persists a validated settings change and reports whether
// it queued a deployment
type SettingsUpdater interface {
	UpdateSettings(ctx context.Context, orgID, projectID string, payload *form.SettingsPayload) (*dto.SettingsResult, error)
}

// SettingsReader loads a project's current settings with environment
// variable values already masked
type SettingsReader interface {
	GetSettings(ctx context.Context, orgID, projectID string) (*dto.SettingsResponse, error)
}

// ProjectDisabler disables a project and returns its metadata for the
// confirmation message
type ProjectDisabler interface {
	DisableProject(ctx context.Context, orgID, projectID string) (*dto.DisabledProjectResponse, error)
}

// OrgResolver resolves the org slug from the settings path
type OrgResolver interface {
	ResolveOrg(ctx context.Context, slug string) (*org.Organization, error)
}

// SettingsHandler handles the project settings page
type SettingsHandler struct {
	updater   SettingsUpdater
	reader    SettingsReader
	disabler  ProjectDisabler
	orgs      OrgResolver
	validator *form.SettingsValidator
	flash     *flash.Encoder
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(
	updater SettingsUpdater,
	reader SettingsReader,
	disabler ProjectDisabler,
	orgs OrgResolver,
	validator *form.SettingsValidator,
	flashEncoder *flash.Encoder,
) *SettingsHandler {
	return &SettingsHandler{
		updater:   updater,
		reader:    reader,
		disabler:  disabler,
		orgs:      orgs,
		validator: validator,
		flash:     flashEncoder,
	}
}

// GetSettings handles GET /orgs/:slug/projects/:id/settings
// @Summary Get project settings
// @Description Returns the project's current settings with environment variable values masked
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Organization slug"
// @Param id path string true "Project ID"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orgs/{slug}/projects/{id}/settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	projectID := c.Param("id")
	if _, err := project.ParseProjectID(projectID); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid project ID",
		})
		return
	}

	organization, ok := h.resolveOrg(c)
	if !ok {
		return
	}

	settings, err := h.reader.GetSettings(c.Request.Context(), organization.ID().String(), projectID)
	if err != nil {
		h.serviceError(c, err, "Failed to fetch settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// SubmitSettings handles POST /orgs/:slug/projects/:id/settings
// @Summary Submit project settings form
// @Description Saves project settings or disables the project, depending on the action field
// @Tags Settings
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Organization slug"
// @Param id path string true "Project ID"
// @Param action formData string true "save or destroy"
// @Param autoDeploy formData string false "yes or no"
// @Param branch formData string false "Git branch"
// @Param buildCommand formData string false "Build command"
// @Param startCommand formData string false "Start command"
// @Success 200 {object} dto.SettingsSavedResponse
// @Success 303 "Redirect to the project list or deployments view"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} dto.ValidationErrorResponse
// @Router /orgs/{slug}/projects/{id}/settings [post]
func (h *SettingsHandler) SubmitSettings(c *gin.Context) {
	// Path parameters fail fast, before any business logic runs
	projectID := c.Param("id")
	if _, err := project.ParseProjectID(projectID); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid project ID",
		})
		return
	}

	organization, ok := h.resolveOrg(c)
	if !ok {
		return
	}

	// DELETE is an unambiguous destroy; otherwise the action field decides
	action := actionDestroy
	if c.Request.Method != http.MethodDelete {
		action = c.PostForm("action")
	}

	switch action {
	case actionDestroy:
		h.destroy(c, organization, projectID)
	case actionSave:
		h.save(c, organization, projectID)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: fmt.Sprintf("Unknown action %q", action),
		})
	}
}

// destroy disables the project and redirects to the org's project list with
// a confirmation flash. The update path is never touched.
func (h *SettingsHandler) destroy(c *gin.Context, organization *org.Organization, projectID string) {
	removed, err := h.disabler.DisableProject(c.Request.Context(), organization.ID().String(), projectID)
	if err != nil {
		h.serviceError(c, err, "Failed to remove project")
		return
	}

	if err := h.flash.Set(c, flash.KindSuccess, fmt.Sprintf("Project %s has been removed", removed.Name)); err != nil {
		c.Error(err)
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/orgs/%s/projects", organization.Slug().String()))
}

// save reshapes and validates the form, then hands the payload to the update
// orchestrator. Validation failures end the request with field errors; the
// orchestrator is only reached with a valid payload.
func (h *SettingsHandler) save(c *gin.Context, organization *org.Organization, projectID string) {
	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Malformed form body",
		})
		return
	}

	reshaped, fieldErrs := form.Reshape(c.Request.PostForm)
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Errors: fieldErrs})
		return
	}

	result := h.validator.Validate(reshaped.Scalars, reshaped.EnvVars)
	if !result.OK() {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Errors: result.Errors()})
		return
	}

	outcome, err := h.updater.UpdateSettings(c.Request.Context(), organization.ID().String(), projectID, result.Payload())
	if err != nil {
		h.serviceError(c, err, "Failed to save settings")
		return
	}

	if outcome.IsDeploying {
		if err := h.flash.Set(c, flash.KindSuccess, fmt.Sprintf("Settings for %s saved, deployment started", outcome.ProjectName)); err != nil {
			c.Error(err)
		}
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/orgs/%s/projects/%s/deployments", organization.Slug().String(), projectID))
		return
	}

	if err := h.flash.Set(c, flash.KindSuccess, fmt.Sprintf("Settings for %s saved", outcome.ProjectName)); err != nil {
		c.Error(err)
	}
	c.JSON(http.StatusOK, dto.SettingsSavedResponse{
		Status:      "saved",
		IsDeploying: false,
	})
}

func (h *SettingsHandler) resolveOrg(c *gin.Context) (*org.Organization, bool) {
	organization, err := h.orgs.ResolveOrg(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, org.ErrOrgNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Organization not found",
			})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid organization",
			Details: err.Error(),
		})
		return nil, false
	}
	return organization, true
}

func (h *SettingsHandler) serviceError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "Project not found",
		})
	case errors.Is(err, project.ErrUnauthorized):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "Project does not belong to this organization",
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: message,
			Details: err.Error(),
		})
	}
}
