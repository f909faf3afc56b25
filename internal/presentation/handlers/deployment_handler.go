package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"launchpad-core/internal/application/service"
	"launchpad-core/internal/domain/deployment"
	"launchpad-core/internal/domain/org"
	"launchpad-core/internal/domain/project"

	"github.com/gin-gonic/gin"
)

// DeploymentHandler handles deployment-related HTTP requests
type DeploymentHandler struct {
	deploymentService *service.DeploymentService
	projectService    *service.ProjectService
}

// NewDeploymentHandler creates a new deployment handler
func NewDeploymentHandler(deploymentService *service.DeploymentService, projectService *service.ProjectService) *DeploymentHandler {
	return &DeploymentHandler{
		deploymentService: deploymentService,
		projectService:    projectService,
	}
}

// ListProjectDeployments handles GET /orgs/:slug/projects/:id/deployments
// @Summary List project deployments
// @Description Returns deployments for a project, newest first
// @Tags Deployments
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Organization slug"
// @Param id path string true "Project ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} dto.DeploymentListResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /orgs/{slug}/projects/{id}/deployments [get]
func (h *DeploymentHandler) ListProjectDeployments(c *gin.Context) {
	organization, err := h.projectService.ResolveOrg(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, org.ErrOrgNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Organization not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid organization",
			Details: err.Error(),
		})
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

	response, err := h.deploymentService.GetProjectDeployments(c.Request.Context(), organization.ID().String(), c.Param("id"), page, limit)
	if err != nil {
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
				Error:   "fetch_failed",
				Message: "Failed to fetch deployments",
				Details: err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetDeployment handles GET /deployments/:id
// @Summary Get a deployment by ID
// @Description Returns a single deployment by its ID
// @Tags Deployments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Deployment ID"
// @Success 200 {object} dto.DeploymentResponse
// @Failure 404 {object} ErrorResponse
// @Router /deployments/{id} [get]
func (h *DeploymentHandler) GetDeployment(c *gin.Context) {
	response, err := h.deploymentService.GetDeployment(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, deployment.ErrDeploymentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "not_found",
				Message: "Deployment not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "fetch_failed",
			Message: "Failed to fetch deployment",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
