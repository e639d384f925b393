package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
)

type MeHandler struct {
	accounts AccountService
}

func NewMeHandler(accounts AccountService) *MeHandler {
	return &MeHandler{accounts: accounts}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, clinic, err := h.accounts.Me(c.Request.Context(), middleware.ClinicID(c), middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_me")
		return
	}

	c.JSON(http.StatusOK, dto.NewMe(user, clinic))
}
