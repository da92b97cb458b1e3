package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hourglass/timesheet/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Create handles project creation
func (h *ProjectHandler) Create(c *gin.Context) {
	var input services.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	project, err := h.projectService.CreateProject(input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// CreateBulk creates several projects with per-entry failure reporting
func (h *ProjectHandler) CreateBulk(c *gin.Context) {
	var input struct {
		Projects []services.ProjectInput `json:"projects" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || len(input.Projects) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Projects array is required and must not be empty"})
		return
	}

	result := h.projectService.CreateProjectsBulk(input.Projects)

	status := http.StatusCreated
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

// ListActive returns active projects (the employee dropdown)
func (h *ProjectHandler) ListActive(c *gin.Context) {
	projects, err := h.projectService.GetActiveProjects()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// ListAll returns every project (manager view)
func (h *ProjectHandler) ListAll(c *gin.Context) {
	projects, err := h.projectService.GetAllProjects()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetByID returns a single project
func (h *ProjectHandler) GetByID(c *gin.Context) {
	project, err := h.projectService.GetProjectByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Update modifies a project
func (h *ProjectHandler) Update(c *gin.Context) {
	var input services.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	project, err := h.projectService.UpdateProject(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete removes a project
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectService.DeleteProject(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
