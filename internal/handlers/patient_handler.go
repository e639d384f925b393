package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucPatient "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/patient"
)

type PatientDirectory interface {
	List(ctx context.Context, clinicID, search string, page, limit int) (*ucPatient.ListResult, error)
	Get(ctx context.Context, clinicID, id string) (*models.Patient, error)
	FindByPhone(ctx context.Context, clinicID, phone string) (*models.Patient, error)
	Create(ctx context.Context, clinicID string, in ucPatient.CreateInput) (*models.Patient, error)
	Update(ctx context.Context, clinicID, id string, in ucPatient.UpdateInput) (*models.Patient, error)
	Delete(ctx context.Context, clinicID, id string) error
}

type PatientHandler struct {
	patients PatientDirectory
}

func NewPatientHandler(patients PatientDirectory) *PatientHandler {
	return &PatientHandler{patients: patients}
}

type CreatePatientRequest struct {
	Name        string     `json:"name" binding:"required"`
	Phone       string     `json:"phone" binding:"required"`
	Email       string     `json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Gender      string     `json:"gender"`
	Notes       string     `json:"notes"`
}

type UpdatePatientRequest struct {
	Name        *string    `json:"name"`
	Phone       *string    `json:"phone"`
	Email       *string    `json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Gender      *string    `json:"gender"`
	Notes       *string    `json:"notes"`
}

// ======================================================
// LIST (busca por nome, telefone ou e-mail)
// ======================================================
func (h *PatientHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	res, err := h.patients.List(c.Request.Context(), middleware.ClinicID(c), c.Query("query"), page, limit)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_patients")
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PatientHandler) Get(c *gin.Context) {
	p, err := h.patients.Get(c.Request.Context(), middleware.ClinicID(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_patient")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PatientHandler) FindByPhone(c *gin.Context) {
	p, err := h.patients.FindByPhone(c.Request.Context(), middleware.ClinicID(c), c.Param("phone"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_find_patient")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patients.Create(c.Request.Context(), middleware.ClinicID(c), ucPatient.CreateInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_patient")
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *PatientHandler) Update(c *gin.Context) {
	var req UpdatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patients.Update(c.Request.Context(), middleware.ClinicID(c), c.Param("id"), ucPatient.UpdateInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_patient")
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	if err := h.patients.Delete(c.Request.Context(), middleware.ClinicID(c), c.Param("id")); err != nil {
		httperr.Respond(c, err, "failed_to_delete_patient")
		return
	}
	c.Status(http.StatusNoContent)
}
