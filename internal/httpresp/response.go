package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type PageResponse[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Page responde uma listagem paginada; data nil vira [].
func Page[T any](c *gin.Context, data []T, total int64, page, limit int) {
	if data == nil {
		data = []T{}
	}

	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}

	c.JSON(http.StatusOK, PageResponse[T]{
		Data: data,
		Meta: Meta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: pages,
		},
	})
}
