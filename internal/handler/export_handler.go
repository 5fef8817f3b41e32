package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/office-space-api/internal/service"
	"github.com/noah-isme/office-space-api/pkg/response"
)

type exportService interface {
	Roster(ctx context.Context, format string) (*service.ExportResult, error)
}

// ExportHandler serves downloadable occupancy rosters.
type ExportHandler struct {
	service exportService
}

// NewExportHandler builds a new handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Roster godoc
// @Summary Download the occupancy roster
// @Tags Offices
// @Produce text/csv,application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /offices/export [get]
func (h *ExportHandler) Roster(c *gin.Context) {
	result, err := h.service.Roster(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
