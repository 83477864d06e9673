package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/audition-directory-api/internal/dto"
	"github.com/noah-isme/audition-directory-api/internal/middleware"
	"github.com/noah-isme/audition-directory-api/internal/models"
	appErrors "github.com/noah-isme/audition-directory-api/pkg/errors"
	"github.com/noah-isme/audition-directory-api/pkg/response"
)

type directoryService interface {
	List(ctx context.Context, req dto.CompanyListRequest) ([]dto.CompanyView, *models.Pagination, bool, error)
	GetCompany(ctx context.Context, id string, today *time.Time) (*dto.CompanyView, error)
	GetAudition(ctx context.Context, id string, today *time.Time) (*dto.AuditionView, error)
	Evaluate(ctx context.Context, req dto.EvaluateAuditionRequest) (*dto.EvaluateAuditionResponse, error)
}

// DirectoryHandler exposes company and audition endpoints.
type DirectoryHandler struct {
	service directoryService
}

// NewDirectoryHandler constructs the handler.
func NewDirectoryHandler(service directoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// ListCompanies godoc
// @Summary List companies with audition status and rank
// @Tags Directory
// @Produce json
// @Param today query string false "Reference date (YYYY-MM-DD). Defaults to today in the directory timezone"
// @Param sort query string false "upcoming (default) or name"
// @Param upcoming query bool false "Only companies with an upcoming audition"
// @Param search query string false "Search by company name"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /companies [get]
func (h *DirectoryHandler) ListCompanies(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	today, err := todayFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.CompanyListRequest{
		Today:  today,
		Sort:   strings.ToLower(strings.TrimSpace(c.Query("sort"))),
		Search: strings.TrimSpace(c.Query("search")),
	}
	if req.UpcomingOnly, err = boolQuery(c, "upcoming"); err != nil {
		response.Error(c, err)
		return
	}
	if req.Page, err = intQuery(c, "page"); err != nil {
		response.Error(c, err)
		return
	}
	if req.PageSize, err = intQuery(c, "page_size"); err != nil {
		response.Error(c, err)
		return
	}

	start := time.Now()
	companies, pagination, cacheHit, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, companies, pagination, meta)
}

// GetCompany godoc
// @Summary Get company detail
// @Tags Directory
// @Produce json
// @Param id path string true "Company ID"
// @Param today query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /companies/{id} [get]
func (h *DirectoryHandler) GetCompany(c *gin.Context) {
	today, err := todayFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	company, err := h.service.GetCompany(c.Request.Context(), c.Param("id"), today)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, company, nil)
}

// GetAudition godoc
// @Summary Get audition with status and rank key
// @Tags Auditions
// @Produce json
// @Param id path string true "Audition ID"
// @Param today query string false "Reference date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auditions/{id} [get]
func (h *DirectoryHandler) GetAudition(c *gin.Context) {
	today, err := todayFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.service.GetAudition(c.Request.Context(), c.Param("id"), today)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// EvaluateAudition godoc
// @Summary Classify and rank an ad-hoc audition
// @Tags Auditions
// @Accept json
// @Produce json
// @Param payload body dto.EvaluateAuditionRequest true "Raw audition fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auditions/evaluate [post]
func (h *DirectoryHandler) EvaluateAudition(c *gin.Context) {
	var req dto.EvaluateAuditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Evaluate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
