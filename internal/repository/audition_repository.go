package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"

	"github.com/noah-isme/audition-directory-api/internal/models"
)

const auditionColumns = `id, company_id, title, deadline_mode, deadline_date, audition_schedule_mode, audition_date,
schedule_entries, schedule_note, created_at, updated_at`

// AuditionRepository reads auditions from Postgres.
type AuditionRepository struct {
	db *sqlx.DB
}

// NewAuditionRepository constructs an audition repository.
func NewAuditionRepository(db *sqlx.DB) *AuditionRepository {
	return &AuditionRepository{db: db}
}

// auditionRow mirrors the stored shape, including legacy rows without mode columns.
type auditionRow struct {
	ID                   string             `db:"id"`
	CompanyID            string             `db:"company_id"`
	Title                string             `db:"title"`
	DeadlineMode         *string            `db:"deadline_mode"`
	DeadlineDate         *time.Time         `db:"deadline_date"`
	AuditionScheduleMode *string            `db:"audition_schedule_mode"`
	AuditionDate         *time.Time         `db:"audition_date"`
	ScheduleEntries      types.NullJSONText `db:"schedule_entries"`
	ScheduleNote         *string            `db:"schedule_note"`
	CreatedAt            time.Time          `db:"created_at"`
	UpdatedAt            time.Time          `db:"updated_at"`
}

type scheduleEntryRow struct {
	Label string  `json:"label"`
	Date  *string `json:"date"`
}

func (r auditionRow) toModel() models.Audition {
	var entries []models.ScheduleEntry
	if r.ScheduleEntries.Valid {
		entries = decodeScheduleEntries(r.ScheduleEntries.JSONText)
	}
	return models.Audition{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		Title:     r.Title,
		Deadline:  models.NewDeadline(r.DeadlineMode, r.DeadlineDate),
		Schedule:  models.NewSchedule(r.AuditionScheduleMode, r.AuditionDate, entries, r.ScheduleNote),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// decodeScheduleEntries parses the JSONB entry list. Unparsable payloads yield
// no entries and unparsable entry dates are dropped, keeping the label.
func decodeScheduleEntries(raw types.JSONText) []models.ScheduleEntry {
	var rows []scheduleEntryRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}
	entries := make([]models.ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		entry := models.ScheduleEntry{Label: row.Label}
		if row.Date != nil {
			entry.Date = models.ParseDate(*row.Date)
		}
		entries = append(entries, entry)
	}
	return entries
}

// ListByCompanyIDs returns auditions owned by the given companies.
func (r *AuditionRepository) ListByCompanyIDs(ctx context.Context, companyIDs []string) ([]models.Audition, error) {
	if len(companyIDs) == 0 {
		return []models.Audition{}, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM auditions WHERE company_id = ANY($1) ORDER BY company_id, created_at ASC, id ASC`, auditionColumns)
	var rows []auditionRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(companyIDs)); err != nil {
		return nil, fmt.Errorf("list auditions: %w", err)
	}
	auditions := make([]models.Audition, len(rows))
	for i, row := range rows {
		auditions[i] = row.toModel()
	}
	return auditions, nil
}

// GetByID fetches an audition.
func (r *AuditionRepository) GetByID(ctx context.Context, id string) (*models.Audition, error) {
	query := fmt.Sprintf(`SELECT %s FROM auditions WHERE id = $1`, auditionColumns)
	var row auditionRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	audition := row.toModel()
	return &audition, nil
}
