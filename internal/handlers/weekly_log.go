package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hourglass/timesheet/internal/middleware"
	"github.com/hourglass/timesheet/internal/models"
	"github.com/hourglass/timesheet/internal/services"
)

type WeeklyLogHandler struct {
	logService    *services.WeeklyLogService
	exportService *services.ExportService
}

func NewWeeklyLogHandler(logService *services.WeeklyLogService, exportService *services.ExportService) *WeeklyLogHandler {
	return &WeeklyLogHandler{
		logService:    logService,
		exportService: exportService,
	}
}

// Upsert creates or overwrites the log for one five-field tuple
func (h *WeeklyLogHandler) Upsert(c *gin.Context) {
	var input services.UpsertLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// Employees write their own timesheet only.
	if !middleware.IsManager(c) && input.UserID != middleware.CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot write another user's timesheet"})
		return
	}

	log, err := h.logService.Upsert(input, false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Weekly log upserted successfully",
		"log":     log,
	})
}

// UpsertBulk processes a batch of entries with per-entry failure reporting
func (h *WeeklyLogHandler) UpsertBulk(c *gin.Context) {
	var input struct {
		Entries []services.UpsertLogInput `json:"entries" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Entries array is required"})
		return
	}

	if !middleware.IsManager(c) {
		callerID := middleware.CurrentUserID(c)
		for _, entry := range input.Entries {
			if entry.UserID != callerID {
				c.JSON(http.StatusForbidden, gin.H{"error": "Cannot write another user's timesheet"})
				return
			}
		}
	}

	result := h.logService.UpsertBulk(input.Entries)

	c.JSON(http.StatusOK, gin.H{
		"message": "Bulk upsert completed",
		"result":  result,
	})
}

// LogsForUser lists a user's logs, optionally narrowed by year/week
func (h *WeeklyLogHandler) LogsForUser(c *gin.Context) {
	userID := c.Param("userId")

	if !middleware.IsManager(c) && userID != middleware.CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot read another user's timesheet"})
		return
	}

	isoYear, ok := optionalIntQuery(c, "iso_year")
	if !ok {
		return
	}
	weekNumber, ok := optionalIntQuery(c, "week_number")
	if !ok {
		return
	}

	logs, err := h.logService.LogsForUser(userID, isoYear, weekNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// CurrentWeekLogs lists a user's logs for the week containing now
func (h *WeeklyLogHandler) CurrentWeekLogs(c *gin.Context) {
	userID := c.Param("userId")

	if !middleware.IsManager(c) && userID != middleware.CurrentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot read another user's timesheet"})
		return
	}

	logs, err := h.logService.CurrentWeekLogs(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// AllLogs lists logs across all users (manager view)
func (h *WeeklyLogHandler) AllLogs(c *gin.Context) {
	isoYear, ok := optionalIntQuery(c, "iso_year")
	if !ok {
		return
	}
	weekNumber, ok := optionalIntQuery(c, "week_number")
	if !ok {
		return
	}

	logs, err := h.logService.AllLogs(isoYear, weekNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, logs)
}

// Delete removes a log owned by the caller (or any log, for managers)
func (h *WeeklyLogHandler) Delete(c *gin.Context) {
	logID := c.Param("id")

	err := h.logService.Delete(logID, middleware.CurrentUserID(c), middleware.IsManager(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Weekly log deleted successfully"})
}

// Export streams the admin timesheet view as an .xlsx workbook
func (h *WeeklyLogHandler) Export(c *gin.Context) {
	isoYear, ok := optionalIntQuery(c, "iso_year")
	if !ok {
		return
	}
	weekNumber, ok := optionalIntQuery(c, "week_number")
	if !ok {
		return
	}

	file, err := h.exportService.ExportLogs(isoYear, weekNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="`+services.ExportFileName(isoYear, weekNumber)+`"`)

	if err := file.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}

// optionalIntQuery parses an optional integer query parameter. On a
// malformed value it writes a 400 response and reports false.
func optionalIntQuery(c *gin.Context, name string) (*int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, &models.ValidationError{Field: name, Message: name + " must be an integer"})
		return nil, false
	}
	return &value, true
}
