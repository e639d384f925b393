package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// PORTAS (casos de uso)
// ======================================================

type AppointmentLister interface {
	Execute(ctx context.Context, clinicID string, f ucAppointment.ListFilter) (*ucAppointment.ListResult, error)
}

type AppointmentGetter interface {
	Execute(ctx context.Context, clinicID, id string) (*models.Appointment, error)
}

type AppointmentCreator interface {
	Execute(ctx context.Context, clinicID string, in ucAppointment.CreateInput) (*models.Appointment, error)
}

type AppointmentUpdater interface {
	Execute(ctx context.Context, clinicID, id string, in ucAppointment.UpdateInput) (*models.Appointment, error)
}

type AppointmentStatusChanger interface {
	Execute(ctx context.Context, clinicID, id, target string, role models.Role) (*models.Appointment, error)
}

type AppointmentDeleter interface {
	Execute(ctx context.Context, clinicID, id string) error
}

type DoctorAvailability interface {
	Execute(ctx context.Context, clinicID, doctorID, date string) ([]domain.TimeSlot, error)
}

type AppointmentUseCases struct {
	List         AppointmentLister
	Get          AppointmentGetter
	Create       AppointmentCreator
	Update       AppointmentUpdater
	ChangeStatus AppointmentStatusChanger
	Delete       AppointmentDeleter
	Availability DoctorAvailability
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	uc AppointmentUseCases
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	DoctorID        string    `json:"doctorId" binding:"required"`
	PatientID       string    `json:"patientId" binding:"required"`
	AppointmentDate time.Time `json:"appointmentDate" binding:"required"`
	Duration        *int      `json:"duration"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes"`
}

type UpdateAppointmentRequest struct {
	DoctorID        *string    `json:"doctorId"`
	PatientID       *string    `json:"patientId"`
	AppointmentDate *time.Time `json:"appointmentDate"`
	Duration        *int       `json:"duration"`
	Reason          *string    `json:"reason"`
	Notes           *string    `json:"notes"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	res, err := h.uc.List.Execute(c.Request.Context(), middleware.ClinicID(c), ucAppointment.ListFilter{
		DoctorID:  c.Query("doctorId"),
		PatientID: c.Query("patientId"),
		Status:    c.Query("status"),
		Date:      c.Query("date"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.uc.Get.Execute(c.Request.Context(), middleware.ClinicID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), middleware.ClinicID(c), ucAppointment.CreateInput{
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		AppointmentDate: req.AppointmentDate,
		Duration:        req.Duration,
		Reason:          req.Reason,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Update.Execute(c.Request.Context(), middleware.ClinicID(c), c.Param("id"), ucAppointment.UpdateInput{
		DoctorID:        req.DoctorID,
		PatientID:       req.PatientID,
		AppointmentDate: req.AppointmentDate,
		Duration:        req.Duration,
		Reason:          req.Reason,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_appointment")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.ChangeStatus.Execute(
		c.Request.Context(),
		middleware.ClinicID(c),
		c.Param("id"),
		req.Status,
		middleware.UserRole(c),
	)
	if err != nil {
		httperr.Respond(c, err, "failed_to_change_status")
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete.Execute(c.Request.Context(), middleware.ClinicID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err, "failed_to_delete_appointment")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// AVAILABILITY (painel interno)
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	slots, err := h.uc.Availability.Execute(c.Request.Context(), middleware.ClinicID(c), c.Param("id"), date)
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_availability")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date,
		"slots": slots,
	})
}
