package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AuditTrail interface {
	List(ctx context.Context, clinicID string, q audit.ListQuery) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	trail AuditTrail
}

func NewAuditLogsHandler(trail AuditTrail) *AuditLogsHandler {
	return &AuditLogsHandler{trail: trail}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit := ucAppointment.NormalizePage(pageParams(c))

	// --------------------------------------------------
	// Query sempre protegida pela clínica do token
	// --------------------------------------------------

	logs, total, err := h.trail.List(c.Request.Context(), middleware.ClinicID(c), audit.ListQuery{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		httperr.Respond(c, err, "audit_list_failed")
		return
	}

	httpresp.Page(c, dto.NewAuditLogs(logs), total, page, limit)
}
