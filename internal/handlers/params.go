package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// queryInt lê um inteiro opcional da query string; inválido vira 0.
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func pageParams(c *gin.Context) (page, limit int) {
	return queryInt(c, "page"), queryInt(c, "limit")
}

// bindJSON responde 400 quando o corpo não passa no binding do gin.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return false
	}
	return true
}
