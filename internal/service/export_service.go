package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/audition-directory-api/internal/audition"
	"github.com/noah-isme/audition-directory-api/internal/dto"
	"github.com/noah-isme/audition-directory-api/internal/models"
	appErrors "github.com/noah-isme/audition-directory-api/pkg/errors"
	"github.com/noah-isme/audition-directory-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"Company", "Next audition", "Status", "Tier", "Key date"}

type directoryRanker interface {
	Today(pinned *time.Time) time.Time
	Ranked(ctx context.Context, req dto.CompanyListRequest, today time.Time) ([]audition.Ranked, bool, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Enabled bool
	Title   string
}

// ExportResult is a rendered export ready to be served.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the upcoming-audition listing as CSV or PDF.
type ExportService struct {
	directory directoryRanker
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(directory directoryRanker, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Title == "" {
		cfg.Title = "Upcoming auditions"
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{directory: directory, csv: csv, pdf: pdf, logger: logger, cfg: cfg}
}

// Generate renders companies that have an upcoming audition, in rank order.
func (s *ExportService) Generate(ctx context.Context, format string, pinned *time.Time) (*ExportResult, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrDisabled, "exports are disabled")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %s", format))
	}

	today := s.directory.Today(pinned)
	ranked, _, err := s.directory.Ranked(ctx, dto.CompanyListRequest{Sort: dto.SortUpcoming, UpcomingOnly: true}, today)
	if err != nil {
		return nil, err
	}
	dataset := buildUpcomingDataset(ranked, today)

	var payload []byte
	contentType := "text/csv"
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		contentType = "application/pdf"
		payload, err = s.pdf.Render(dataset, fmt.Sprintf("%s (%s)", s.cfg.Title, today.Format(dateLayout)))
	}
	if err != nil {
		s.logger.Error("render export", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("upcoming_auditions_%s.%s", today.Format("20060102"), format),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

func buildUpcomingDataset(ranked []audition.Ranked, today time.Time) export.Dataset {
	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(ranked))}
	for _, r := range ranked {
		if !r.HasKey {
			continue
		}
		next, ok := leadingAudition(r.Company.Auditions, r.Key, today)
		row := map[string]string{
			"Company":  r.Company.Name,
			"Tier":     fmt.Sprintf("%d", r.Key.Tier),
			"Key date": r.Key.At.Format(dateLayout),
		}
		if ok {
			row["Next audition"] = next.Title
			if status, has := audition.Classify(next, today); has {
				row["Status"] = status.Label
			}
		}
		dataset.Rows = append(dataset.Rows, row)
	}
	return dataset
}

// leadingAudition finds the audition whose key equals the company key.
func leadingAudition(auditions []models.Audition, key audition.Key, today time.Time) (models.Audition, bool) {
	for _, a := range auditions {
		if k, ok := audition.RankKey(a, today); ok && k.Compare(key) == 0 {
			return a, true
		}
	}
	return models.Audition{}, false
}
