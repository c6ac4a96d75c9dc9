// Package schedule computes renewal dates for recurring expenses and
// classifies pending due dates relative to today.
package schedule

import (
	"time"

	"github.com/mystoredigital/inversion-budget-app/models"
)

// DueSoonWindowDays is the inclusive number of days ahead of today within
// which a pending expense counts as due soon rather than merely future.
const DueSoonWindowDays = 7

// NextDueDate returns the next occurrence for an expense due on due with the
// given frequency. The second return value is false for one-off expenses and
// unknown frequencies.
//
// Month and year additions are calendar-correct: the day of month is
// preserved, clamped to the last valid day of the target month (Jan 31 plus
// one month is Feb 29 in a leap year, never Mar 2).
func NextDueDate(due time.Time, frequency string) (time.Time, bool) {
	switch frequency {
	case models.FreqMonthly:
		return addMonths(due, 1), true
	case models.FreqBimonthly:
		return addMonths(due, 2), true
	case models.FreqQuarterly:
		return addMonths(due, 3), true
	case models.FreqSemiannual:
		return addMonths(due, 6), true
	case models.FreqAnnual:
		return addMonths(due, 12), true
	}
	return time.Time{}, false
}

// Renewal builds the Pending follow-up row for a just-paid expense. The next
// date is anchored on the expense's original due date, or today when the
// expense had none. Returns false when the frequency does not recur.
func Renewal(e models.Expense, today time.Time) (models.Expense, bool) {
	due := today
	if e.Date != nil {
		due = *e.Date
	}
	next, ok := NextDueDate(due, e.Frequency)
	if !ok {
		return models.Expense{}, false
	}
	return models.Expense{
		UserID:     e.UserID,
		Name:       e.Name,
		Category:   e.Category,
		Status:     models.StatusPending,
		Date:       &next,
		Amount:     e.Amount,
		Currency:   e.Currency,
		BudgetType: e.BudgetType,
		Frequency:  e.Frequency,
		Account:    e.Account,
		Payer:      e.Payer,
	}, true
}

// addMonths performs clamped calendar addition. time.AddDate normalizes
// overflow days into the next month, which is wrong for due dates.
func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	anchor = anchor.AddDate(0, months, 0)
	if last := daysIn(anchor.Year(), anchor.Month()); day > last {
		day = last
	}
	h, m, s := t.Clock()
	return time.Date(anchor.Year(), anchor.Month(), day, h, m, s, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
