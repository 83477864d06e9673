package models

import (
	"strings"
	"time"
)

// DeadlineMode describes how an audition's application deadline is expressed.
// The zero value means the record carries no deadline information.
type DeadlineMode string

const (
	DeadlineModeNone       DeadlineMode = ""
	DeadlineModeFixedDate  DeadlineMode = "FIXED_DATE"
	DeadlineModeAsap       DeadlineMode = "ASAP"
	DeadlineModeAlwaysOpen DeadlineMode = "ALWAYS_OPEN"
)

// ScheduleMode describes how the audition sessions themselves are scheduled.
// The zero value means the record carries no schedule information.
type ScheduleMode string

const (
	ScheduleModeNone         ScheduleMode = ""
	ScheduleModeSingleDate   ScheduleMode = "SINGLE_DATE"
	ScheduleModeVariousDates ScheduleMode = "VARIOUS_DATES"
	ScheduleModeToBeArranged ScheduleMode = "TO_BE_ARRANGED"
)

// Deadline is the normalized application deadline. Date is only set for DeadlineModeFixedDate.
type Deadline struct {
	Mode DeadlineMode `json:"mode,omitempty"`
	Date time.Time    `json:"date,omitempty"`
}

// Schedule is the normalized audition schedule. Date is only set for ScheduleModeSingleDate,
// Entries only for ScheduleModeVariousDates and Note only for ScheduleModeToBeArranged.
type Schedule struct {
	Mode    ScheduleMode    `json:"mode,omitempty"`
	Date    time.Time       `json:"date,omitempty"`
	Entries []ScheduleEntry `json:"entries,omitempty"`
	Note    string          `json:"note,omitempty"`
}

// ScheduleEntry is one labelled session of a VARIOUS_DATES schedule.
type ScheduleEntry struct {
	Label string     `json:"label"`
	Date  *time.Time `json:"date,omitempty"`
}

// Audition is a casting event published by a company.
type Audition struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Title     string    `json:"title"`
	Deadline  Deadline  `json:"deadline"`
	Schedule  Schedule  `json:"schedule"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParseDeadlineMode maps a stored mode string onto a DeadlineMode. Matching ignores case,
// underscores and dashes so "FIXED_DATE", "fixed_date" and "fixedDate" are equivalent.
// Unknown values yield DeadlineModeNone.
func ParseDeadlineMode(raw string) DeadlineMode {
	switch foldMode(raw) {
	case "FIXEDDATE":
		return DeadlineModeFixedDate
	case "ASAP":
		return DeadlineModeAsap
	case "ALWAYSOPEN":
		return DeadlineModeAlwaysOpen
	default:
		return DeadlineModeNone
	}
}

// ParseScheduleMode maps a stored schedule mode string onto a ScheduleMode.
func ParseScheduleMode(raw string) ScheduleMode {
	switch foldMode(raw) {
	case "SINGLEDATE":
		return ScheduleModeSingleDate
	case "VARIOUSDATES":
		return ScheduleModeVariousDates
	case "TOBEARRANGED":
		return ScheduleModeToBeArranged
	default:
		return ScheduleModeNone
	}
}

// NewDeadline normalizes the raw deadline columns, applying the legacy fallback:
// a missing mode with a date is a fixed date, a fixed date without a date is no deadline.
func NewDeadline(mode *string, date *time.Time) Deadline {
	parsed := DeadlineModeNone
	if mode != nil {
		parsed = ParseDeadlineMode(*mode)
	}
	if parsed == DeadlineModeNone && date != nil {
		parsed = DeadlineModeFixedDate
	}
	switch parsed {
	case DeadlineModeFixedDate:
		if date == nil {
			return Deadline{}
		}
		return Deadline{Mode: parsed, Date: *date}
	case DeadlineModeAsap, DeadlineModeAlwaysOpen:
		return Deadline{Mode: parsed}
	default:
		return Deadline{}
	}
}

// NewSchedule normalizes the raw schedule columns with the same legacy fallback as NewDeadline.
func NewSchedule(mode *string, date *time.Time, entries []ScheduleEntry, note *string) Schedule {
	parsed := ScheduleModeNone
	if mode != nil {
		parsed = ParseScheduleMode(*mode)
	}
	if parsed == ScheduleModeNone && date != nil {
		parsed = ScheduleModeSingleDate
	}
	switch parsed {
	case ScheduleModeSingleDate:
		if date == nil {
			return Schedule{}
		}
		return Schedule{Mode: parsed, Date: *date}
	case ScheduleModeVariousDates:
		return Schedule{Mode: parsed, Entries: entries}
	case ScheduleModeToBeArranged:
		s := Schedule{Mode: parsed}
		if note != nil {
			s.Note = strings.TrimSpace(*note)
		}
		return s
	default:
		return Schedule{}
	}
}

// ParseDate reads a calendar date written as YYYY-MM-DD or RFC 3339.
// Malformed input yields nil so it is treated as an absent date.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return &parsed
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed
	}
	return nil
}

func foldMode(raw string) string {
	replacer := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToUpper(replacer.Replace(strings.TrimSpace(raw)))
}
