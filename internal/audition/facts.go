package audition

import (
	"time"

	"github.com/noah-isme/audition-directory-api/internal/models"
)

// DateOf reduces t to its calendar date, returned as UTC midnight of t's
// wall-clock year, month and day. Two instants on the same local day map to
// the same value, so same-day dates never count as past.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// facts are the derived booleans both the classifier and the ranker branch on.
type facts struct {
	today time.Time

	deadlineMode   models.DeadlineMode
	hasDeadline    bool
	deadline       time.Time
	deadlinePassed bool

	toBeArranged      bool
	hasFutureAudition bool
	earliestFuture    time.Time
	allAuditionsPast  bool
}

func newFacts(a models.Audition, today time.Time) facts {
	f := facts{today: today, deadlineMode: a.Deadline.Mode}

	switch a.Deadline.Mode {
	case models.DeadlineModeFixedDate:
		f.hasDeadline = true
		f.deadline = DateOf(a.Deadline.Date)
		f.deadlinePassed = f.deadline.Before(today)
	case models.DeadlineModeAsap, models.DeadlineModeAlwaysOpen:
		f.hasDeadline = true
	}

	switch a.Schedule.Mode {
	case models.ScheduleModeSingleDate:
		date := DateOf(a.Schedule.Date)
		if date.Before(today) {
			f.allAuditionsPast = true
		} else {
			f.hasFutureAudition = true
			f.earliestFuture = date
		}
	case models.ScheduleModeVariousDates:
		dated := 0
		for _, entry := range a.Schedule.Entries {
			if entry.Date == nil {
				continue
			}
			dated++
			date := DateOf(*entry.Date)
			if date.Before(today) {
				continue
			}
			if !f.hasFutureAudition || date.Before(f.earliestFuture) {
				f.earliestFuture = date
			}
			f.hasFutureAudition = true
		}
		f.allAuditionsPast = dated > 0 && !f.hasFutureAudition
	case models.ScheduleModeToBeArranged:
		f.toBeArranged = true
	}

	return f
}
