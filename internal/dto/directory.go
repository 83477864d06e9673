package dto

import (
	"time"

	"github.com/noah-isme/audition-directory-api/internal/audition"
)

// CompanyListRequest captures the directory listing query.
type CompanyListRequest struct {
	Today        *time.Time
	Sort         string `validate:"omitempty,oneof=upcoming name"`
	UpcomingOnly bool
	Search       string `validate:"max=100"`
	Page         int    `validate:"gte=0"`
	PageSize     int    `validate:"gte=0,lte=200"`
}

// Sort orders supported by the directory listing.
const (
	SortUpcoming = "upcoming"
	SortName     = "name"
)

// RankView exposes a rank key both as tier/date and as its single-integer encoding.
type RankView struct {
	Tier int    `json:"tier"`
	Date string `json:"date"`
	Key  int64  `json:"key"`
}

// ScheduleEntryView is one dated or undated audition session.
type ScheduleEntryView struct {
	Label string  `json:"label"`
	Date  *string `json:"date"`
}

// AuditionView is an audition with its derived status and rank.
type AuditionView struct {
	ID                   string              `json:"id,omitempty"`
	CompanyID            string              `json:"company_id,omitempty"`
	Title                string              `json:"title,omitempty"`
	DeadlineMode         string              `json:"deadline_mode,omitempty"`
	DeadlineDate         *string             `json:"deadline_date,omitempty"`
	AuditionScheduleMode string              `json:"audition_schedule_mode,omitempty"`
	AuditionDate         *string             `json:"audition_date,omitempty"`
	ScheduleEntries      []ScheduleEntryView `json:"schedule_entries,omitempty"`
	ScheduleNote         *string             `json:"schedule_note,omitempty"`
	Status               *audition.Status    `json:"status"`
	RankKey              *int64              `json:"rank_key"`
	Rank                 *RankView           `json:"rank"`
}

// CompanyView is a directory entry with its auditions and company-level rank.
type CompanyView struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Website     *string        `json:"website,omitempty"`
	RankKey     *int64         `json:"rank_key"`
	Rank        *RankView      `json:"rank"`
	Auditions   []AuditionView `json:"auditions"`
}

// AuditionInput is an audition in its raw stored shape: loosely typed mode
// strings and YYYY-MM-DD dates.
type AuditionInput struct {
	ID                   string               `json:"id"`
	Title                string               `json:"title"`
	DeadlineMode         string               `json:"deadline_mode" validate:"omitempty,deadline_mode"`
	DeadlineDate         string               `json:"deadline_date" validate:"omitempty,datetime=2006-01-02"`
	AuditionScheduleMode string               `json:"audition_schedule_mode" validate:"omitempty,schedule_mode"`
	AuditionDate         string               `json:"audition_date" validate:"omitempty,datetime=2006-01-02"`
	ScheduleEntries      []ScheduleEntryInput `json:"schedule_entries" validate:"omitempty,max=50,dive"`
	ScheduleNote         string               `json:"schedule_note" validate:"max=500"`
}

// ScheduleEntryInput is one raw schedule entry.
type ScheduleEntryInput struct {
	Label string `json:"label" validate:"max=200"`
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// CompanyInput is a company with raw auditions, as read by the CLI.
type CompanyInput struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Auditions []AuditionInput `json:"auditions" validate:"dive"`
}

// EvaluateAuditionRequest classifies and ranks an ad-hoc audition.
type EvaluateAuditionRequest struct {
	AuditionInput
	Today string `json:"today" validate:"omitempty,datetime=2006-01-02"`
}

// EvaluateAuditionResponse echoes the reference date used for the evaluation.
type EvaluateAuditionResponse struct {
	Today    string       `json:"today"`
	Audition AuditionView `json:"audition"`
}
