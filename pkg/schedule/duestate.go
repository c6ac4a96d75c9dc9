package schedule

import (
	"fmt"
	"time"
)

// DueState classifies a pending due date relative to today. It drives badge
// styling only; any Pending expense may be confirmed regardless of state.
type DueState int

const (
	Overdue DueState = iota
	DueToday
	DueSoon
	Future
)

func (s DueState) String() string {
	switch s {
	case Overdue:
		return "overdue"
	case DueToday:
		return "due_today"
	case DueSoon:
		return "due_soon"
	}
	return "future"
}

// Classify labels due relative to today. Both arguments are compared by
// calendar date, ignoring the time of day.
func Classify(due, today time.Time) DueState {
	switch days := DaysUntil(due, today); {
	case days < 0:
		return Overdue
	case days == 0:
		return DueToday
	case days <= DueSoonWindowDays:
		return DueSoon
	}
	return Future
}

// DaysUntil returns the whole calendar days from today until due; negative
// when due is in the past.
func DaysUntil(due, today time.Time) int {
	return int(dateOnly(due).Sub(dateOnly(today)).Hours() / 24)
}

// Label renders the human-readable due-in text served alongside each
// pending expense.
func Label(due, today time.Time) string {
	switch days := DaysUntil(due, today); {
	case days < -1:
		return fmt.Sprintf("Overdue by %d days", -days)
	case days == -1:
		return "Overdue by 1 day"
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due in 1 day"
	default:
		return fmt.Sprintf("Due in %d days", days)
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
