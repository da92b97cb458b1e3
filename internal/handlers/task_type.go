package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hourglass/timesheet/internal/services"
)

type TaskTypeHandler struct {
	taskTypeService *services.TaskTypeService
}

func NewTaskTypeHandler(taskTypeService *services.TaskTypeService) *TaskTypeHandler {
	return &TaskTypeHandler{
		taskTypeService: taskTypeService,
	}
}

// Create adds a new task type to the dropdown data
func (h *TaskTypeHandler) Create(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task type name is required"})
		return
	}

	taskType, err := h.taskTypeService.CreateTaskType(input.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskType)
}

// List returns all task types
func (h *TaskTypeHandler) List(c *gin.Context) {
	taskTypes, err := h.taskTypeService.ListTaskTypes()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskTypes)
}
