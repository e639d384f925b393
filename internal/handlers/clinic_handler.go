package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucClinic "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/clinic"
)

type ClinicSettings interface {
	Get(ctx context.Context, clinicID string) (*models.Clinic, error)
	Update(ctx context.Context, clinicID string, in ucClinic.UpdateInput) (*models.Clinic, error)
	UploadLogo(ctx context.Context, clinicID string, r io.Reader) (*models.Clinic, error)
}

type ClinicHandler struct {
	settings ClinicSettings
}

func NewClinicHandler(settings ClinicSettings) *ClinicHandler {
	return &ClinicHandler{settings: settings}
}

type UpdateClinicRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	Timezone *string `json:"timezone"`
}

func (h *ClinicHandler) GetMeClinic(c *gin.Context) {
	clinic, err := h.settings.Get(c.Request.Context(), middleware.ClinicID(c))
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_clinic")
		return
	}

	c.JSON(http.StatusOK, clinic)
}

func (h *ClinicHandler) UpdateMeClinic(c *gin.Context) {
	var req UpdateClinicRequest
	if !bindJSON(c, &req) {
		return
	}

	clinic, err := h.settings.Update(c.Request.Context(), middleware.ClinicID(c), ucClinic.UpdateInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Address:  req.Address,
		Timezone: req.Timezone,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_clinic")
		return
	}

	c.JSON(http.StatusOK, clinic)
}

// UploadLogo recebe multipart/form-data com o campo "logo".
func (h *ClinicHandler) UploadLogo(c *gin.Context) {
	fh, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_logo", "Envie a imagem no campo 'logo'.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_logo", "Não foi possível ler a imagem enviada.")
		return
	}
	defer f.Close()

	clinic, err := h.settings.UploadLogo(c.Request.Context(), middleware.ClinicID(c), f)
	if err != nil {
		httperr.Respond(c, err, "failed_to_upload_logo")
		return
	}

	c.JSON(http.StatusOK, clinic)
}
