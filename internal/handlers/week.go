package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hourglass/timesheet/internal/models"
	"github.com/hourglass/timesheet/internal/services"
)

type WeekHandler struct {
	weekService *services.WeekService
}

func NewWeekHandler(weekService *services.WeekService) *WeekHandler {
	return &WeekHandler{
		weekService: weekService,
	}
}

// CurrentWeek resolves the ISO week containing the present moment
func (h *WeekHandler) CurrentWeek(c *gin.Context) {
	week, err := h.weekService.CurrentWeek()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, week)
}

// CurrentMonthWeeks lists the weeks overlapping the current calendar month
func (h *WeekHandler) CurrentMonthWeeks(c *gin.Context) {
	weeks, err := h.weekService.WeeksForCurrentMonth()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, weeks)
}

// WeeksInRange lists the weeks overlapping [start, end] (YYYY-MM-DD)
func (h *WeekHandler) WeeksInRange(c *gin.Context) {
	start, err := time.ParseInLocation("2006-01-02", c.Query("start"), time.UTC)
	if err != nil {
		respondError(c, &models.ValidationError{Field: "start", Message: "start must be a YYYY-MM-DD date"})
		return
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end"), time.UTC)
	if err != nil {
		respondError(c, &models.ValidationError{Field: "end", Message: "end must be a YYYY-MM-DD date"})
		return
	}

	weeks, err := h.weekService.WeeksInRange(start, end.AddDate(0, 0, 1).Add(-time.Millisecond))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, weeks)
}
