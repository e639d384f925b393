package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	staffDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucStaff "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/staff"
)

type AccountService interface {
	Register(ctx context.Context, in ucStaff.RegisterInput) (*ucStaff.Session, error)
	Login(ctx context.Context, email, password string) (*ucStaff.Session, error)
	Me(ctx context.Context, clinicID, userID string) (*models.User, *models.Clinic, error)
}

type AuthHandler struct {
	accounts AccountService
}

func NewAuthHandler(accounts AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// --------- Requests ---------

type RegisterRequest struct {
	ClinicName    string `json:"clinicName" binding:"required"`
	ClinicSlug    string `json:"clinicSlug" binding:"required"`
	ClinicPhone   string `json:"clinicPhone"`
	ClinicAddress string `json:"clinicAddress"`
	Timezone      string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.accounts.Register(c.Request.Context(), ucStaff.RegisterInput{
		ClinicName:    req.ClinicName,
		ClinicSlug:    req.ClinicSlug,
		ClinicPhone:   req.ClinicPhone,
		ClinicAddress: req.ClinicAddress,
		Timezone:      req.Timezone,
		Profile: staffDomain.Profile{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
		},
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_register")
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err, "failed_to_login")
		return
	}

	c.JSON(http.StatusOK, session)
}
