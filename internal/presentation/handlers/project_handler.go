package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"launchpad-core/internal/application/dto"
	"launchpad-core/internal/application/service"
	"launchpad-core/internal/domain/org"
	"launchpad-core/internal/domain/project"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProject handles POST /orgs/:slug/projects
// @Summary Create a new project
// @Description Creates a new project in an organization
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Organization slug"
// @Param project body dto.CreateProjectRequest true "Project data"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /orgs/{slug}/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	organization, ok := h.resolveOrg(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	response, err := h.projectService.CreateProject(c.Request.Context(), organization.ID().String(), &req)
	if err != nil {
		if errors.Is(err, project.ErrProjectAlreadyExists) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "project_exists",
				Message: "A project with this name already exists",
			})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "creation_failed",
			Message: "Failed to create project",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetProject handles GET /orgs/:slug/projects/:id
// @Summary Get a project by ID
// @Description Returns a single project by its ID
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Organization slug"
// @Param id path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orgs/{slug}/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	organization, ok := h.resolveOrg(c)
	if !ok {
		return
	}

	response, err := h.projectService.GetProject(c.Request.Context(), organization.ID().String(), c.Param("id"))
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListProjects handles GET /orgs/:slug/projects
// @Summary List organization projects
// @Description Returns all projects for an organization with pagination
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Organization slug"
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.ProjectListResponse
// @Failure 404 {object} ErrorResponse
// @Router /orgs/{slug}/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	organization, ok := h.resolveOrg(c)
	if !ok {
		return
	}

	page := int32(1)
	limit := int32(20)

	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		page = int32(p)
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil && l > 0 && l <= 100 {
		limit = int32(l)
	}

	response, err := h.projectService.GetOrgProjects(c.Request.Context(), organization.ID().String(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "fetch_failed",
			Message: "Failed to fetch projects",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProjectHandler) resolveOrg(c *gin.Context) (*org.Organization, bool) {
	organization, err := h.projectService.ResolveOrg(c.Request.Context(), c.Param("slug"))
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

func (h *ProjectHandler) serviceError(c *gin.Context, err error) {
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
			Message: "Failed to fetch project",
			Details: err.Error(),
		})
	}
}
