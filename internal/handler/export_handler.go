package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/audition-directory-api/internal/service"
	"github.com/noah-isme/audition-directory-api/pkg/response"
)

type exportService interface {
	Generate(ctx context.Context, format string, today *time.Time) (*service.ExportResult, error)
}

// ExportHandler serves directory downloads.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Upcoming godoc
// @Summary Download companies with upcoming auditions
// @Tags Directory
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param today query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /companies/export [get]
func (h *ExportHandler) Upcoming(c *gin.Context) {
	today, err := todayFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.Generate(c.Request.Context(), c.DefaultQuery("format", service.ExportFormatCSV), today)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
