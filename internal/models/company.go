package models

import "time"

// Company is a directory entry that may publish auditions.
type Company struct {
	ID          string     `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description,omitempty"`
	Website     *string    `db:"website" json:"website,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	Auditions   []Audition `db:"-" json:"auditions"`
}

// CompanyFilter narrows down companies loaded from the store.
type CompanyFilter struct {
	Search string
	IDs    []string
}

// Pagination describes page metadata in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
