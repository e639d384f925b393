package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	staffDomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/staff"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type TeamService interface {
	List(ctx context.Context, clinicID, role string) ([]models.User, error)
	ListDoctors(ctx context.Context, clinicID string) ([]models.User, error)
	Create(ctx context.Context, clinicID string, in staffDomain.CreateInput) (*models.User, error)
	UpdateStatus(ctx context.Context, clinicID, actorID, id, status string) (*models.User, error)
	WorkingHours(ctx context.Context, clinicID, doctorID string) ([]models.WorkingHours, error)
	ReplaceWorkingHours(ctx context.Context, clinicID, actorID string, actorRole models.Role, doctorID string, days []models.WorkingHours) ([]models.WorkingHours, error)
}

type UsersHandler struct {
	team TeamService
}

func NewUsersHandler(team TeamService) *UsersHandler {
	return &UsersHandler{team: team}
}

// CreateUserRequest: specialization só é usada (e exigida) para DOCTOR.
type CreateUserRequest struct {
	Role           string `json:"role" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *UsersHandler) List(c *gin.Context) {
	users, err := h.team.List(c.Request.Context(), middleware.ClinicID(c), c.Query("role"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UsersHandler) ListDoctors(c *gin.Context) {
	docs, err := h.team.ListDoctors(c.Request.Context(), middleware.ClinicID(c))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_doctors")
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *UsersHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	in, err := staffDomain.NewCreateInput(req.Role, staffDomain.Profile{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}, req.Specialization)
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_user")
		return
	}

	u, err := h.team.Create(c.Request.Context(), middleware.ClinicID(c), in)
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_user")
		return
	}

	c.JSON(http.StatusCreated, u)
}

func (h *UsersHandler) UpdateStatus(c *gin.Context) {
	var req UpdateUserStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.team.UpdateStatus(
		c.Request.Context(),
		middleware.ClinicID(c),
		middleware.UserID(c),
		c.Param("id"),
		req.Status,
	)
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_user_status")
		return
	}

	c.JSON(http.StatusOK, u)
}
