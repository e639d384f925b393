package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Expediente do médico fica sob /users/:id/working-hours e usa o mesmo TeamService.

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	LunchStart string `json:"lunchStart"`
	LunchEnd   string `json:"lunchEnd"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *UsersHandler) GetWorkingHours(c *gin.Context) {
	hours, err := h.team.WorkingHours(c.Request.Context(), middleware.ClinicID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_working_hours")
		return
	}

	c.JSON(http.StatusOK, hours)
}

func (h *UsersHandler) UpdateWorkingHours(c *gin.Context) {
	var req WorkingHoursUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	days := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, models.WorkingHours{
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	hours, err := h.team.ReplaceWorkingHours(
		c.Request.Context(),
		middleware.ClinicID(c),
		middleware.UserID(c),
		middleware.UserRole(c),
		c.Param("id"),
		days,
	)
	if err != nil {
		httperr.Respond(c, err, "failed_to_save_working_hours")
		return
	}

	c.JSON(http.StatusOK, hours)
}
