package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// PORTAS
////////////////////////////////////////////////////////

type ClinicPageFinder interface {
	Execute(ctx context.Context, slug string) (*booking.ClinicPage, error)
}

type PublicAvailabilityFinder interface {
	Execute(ctx context.Context, slug, doctorID, date string) ([]domain.TimeSlot, error)
}

type PublicBooker interface {
	Execute(ctx context.Context, slug string, in booking.Input) (*booking.View, error)
}

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	page         ClinicPageFinder
	availability PublicAvailabilityFinder
	book         PublicBooker
}

func NewPublicHandler(
	page ClinicPageFinder,
	availability PublicAvailabilityFinder,
	book PublicBooker,
) *PublicHandler {
	return &PublicHandler{
		page:         page,
		availability: availability,
		book:         book,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	DoctorID        string    `json:"doctorId" binding:"required"`
	Name            string    `json:"name" binding:"required"`
	Phone           string    `json:"phone" binding:"required"`
	Email           string    `json:"email"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
	Reason          string    `json:"reason"`
}

////////////////////////////////////////////////////////
// CLINIC PAGE
////////////////////////////////////////////////////////

func (h *PublicHandler) GetClinic(c *gin.Context) {
	page, err := h.page.Execute(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_clinic")
		return
	}

	c.JSON(http.StatusOK, page)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), c.Param("slug"), c.Param("doctorId"), date)
	if err != nil {
		httperr.Respond(c, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (PUBLIC → REUSA O CREATE INTERNO)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.book.Execute(c.Request.Context(), c.Param("slug"), booking.Input{
		DoctorID:        req.DoctorID,
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		AppointmentDate: req.AppointmentDate,
		Reason:          req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_book_appointment")
		return
	}

	c.JSON(http.StatusCreated, view)
}
