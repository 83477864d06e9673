package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/audition-directory-api/internal/models"
)

// CompanyRepository reads companies from Postgres.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository constructs a company repository.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// List returns every company matching the filter ordered by name. Auditions are not loaded.
func (r *CompanyRepository) List(ctx context.Context, filter models.CompanyFilter) ([]models.Company, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+search+"%")
	}
	if len(filter.IDs) > 0 {
		where = append(where, fmt.Sprintf("id = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(filter.IDs))
	}

	query := fmt.Sprintf(`SELECT id, name, description, website, created_at, updated_at
FROM companies WHERE %s ORDER BY name ASC, id ASC`, strings.Join(where, " AND "))
	var companies []models.Company
	if err := r.db.SelectContext(ctx, &companies, query, args...); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// GetByID fetches a company without its auditions.
func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*models.Company, error) {
	const query = `SELECT id, name, description, website, created_at, updated_at FROM companies WHERE id = $1`
	var company models.Company
	if err := r.db.GetContext(ctx, &company, query, id); err != nil {
		return nil, err
	}
	return &company, nil
}
