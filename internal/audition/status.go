// Package audition derives display status and upcoming ranking for auditions.
//
// Everything here is a pure function of its inputs. Callers pass the reference
// date explicitly and should use the same value for Classify and RankKey within
// one rendering pass.
package audition

import (
	"time"

	"github.com/noah-isme/audition-directory-api/internal/models"
)

// Category is the user-facing status bucket of a single audition.
type Category string

const (
	CategoryOpenCall     Category = "OPEN_CALL"
	CategoryPostDeadline Category = "POST_DEADLINE"
	CategoryClosed       Category = "CLOSED"
	CategoryPastAudition Category = "PAST_AUDITION"
)

// Status is a classified category together with its label and presentation hints.
// Foreground and Background are opaque tokens for the presentation layer.
type Status struct {
	Category   Category `json:"category"`
	Label      string   `json:"label"`
	Foreground string   `json:"foreground"`
	Background string   `json:"background"`
}

var statuses = map[Category]Status{
	CategoryOpenCall:     {Category: CategoryOpenCall, Label: "Open call", Foreground: "green-800", Background: "green-100"},
	CategoryPostDeadline: {Category: CategoryPostDeadline, Label: "Deadline passed", Foreground: "amber-800", Background: "amber-100"},
	CategoryClosed:       {Category: CategoryClosed, Label: "Closed", Foreground: "gray-700", Background: "gray-200"},
	CategoryPastAudition: {Category: CategoryPastAudition, Label: "Audition passed", Foreground: "slate-600", Background: "slate-100"},
}

// StatusFor returns the Status carried by a category.
func StatusFor(category Category) Status {
	return statuses[category]
}

// Classify returns the display status of a for the given reference date.
// The boolean is false when the record has nothing worth displaying.
func Classify(a models.Audition, today time.Time) (Status, bool) {
	category, ok := classify(newFacts(a, DateOf(today)))
	if !ok {
		return Status{}, false
	}
	return StatusFor(category), true
}

func classify(f facts) (Category, bool) {
	if !f.deadlinePassed {
		switch {
		case f.hasFutureAudition || f.toBeArranged:
			return CategoryOpenCall, true
		case f.allAuditionsPast:
			// Open deadline but every dated session is over; nothing to apply for.
			return CategoryPastAudition, true
		case f.hasDeadline:
			return CategoryOpenCall, true
		default:
			return "", false
		}
	}

	switch {
	case f.hasFutureAudition:
		return CategoryPostDeadline, true
	case f.toBeArranged:
		return CategoryClosed, true
	default:
		return CategoryPastAudition, true
	}
}
