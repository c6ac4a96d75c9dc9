package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mystoredigital/inversion-budget-app/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDateOffsets(t *testing.T) {
	cases := []struct {
		name      string
		due       time.Time
		frequency string
		want      time.Time
	}{
		{"monthly", date(2024, time.March, 15), models.FreqMonthly, date(2024, time.April, 15)},
		{"bimonthly", date(2024, time.March, 15), models.FreqBimonthly, date(2024, time.May, 15)},
		{"quarterly", date(2024, time.March, 15), models.FreqQuarterly, date(2024, time.June, 15)},
		{"semiannual", date(2024, time.March, 15), models.FreqSemiannual, date(2024, time.September, 15)},
		{"annual", date(2024, time.March, 15), models.FreqAnnual, date(2025, time.March, 15)},
		{"monthly clamps into leap february", date(2024, time.January, 31), models.FreqMonthly, date(2024, time.February, 29)},
		{"monthly clamps into plain february", date(2025, time.January, 31), models.FreqMonthly, date(2025, time.February, 28)},
		{"bimonthly keeps month-end day when valid", date(2024, time.August, 31), models.FreqBimonthly, date(2024, time.October, 31)},
		{"quarterly clamps to thirty-day month", date(2024, time.January, 31), models.FreqQuarterly, date(2024, time.April, 30)},
		{"annual clamps leap day", date(2024, time.February, 29), models.FreqAnnual, date(2025, time.February, 28)},
		{"semiannual across year boundary", date(2024, time.October, 10), models.FreqSemiannual, date(2025, time.April, 10)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextDueDate(tc.due, tc.frequency)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextDueDateDoesNotRecur(t *testing.T) {
	_, ok := NextDueDate(date(2024, time.January, 31), models.FreqOnce)
	assert.False(t, ok)

	_, ok = NextDueDate(date(2024, time.January, 31), "Weekly")
	assert.False(t, ok)
}

func TestRenewalCopiesFields(t *testing.T) {
	due := date(2024, time.January, 31)
	original := models.Expense{
		UserID:     7,
		Name:       "Netflix",
		Category:   "Entertainment",
		Status:     models.StatusPaid,
		Date:       &due,
		Amount:     44900,
		Currency:   models.CurrencyCOP,
		BudgetType: models.BudgetSubscriptions,
		Frequency:  models.FreqMonthly,
		Account:    "Bancolombia",
		Payer:      "Dani",
		Comment:    "shared plan",
	}

	next, ok := Renewal(original, date(2024, time.January, 30))
	require.True(t, ok)

	assert.Equal(t, models.StatusPending, next.Status)
	require.NotNil(t, next.Date)
	assert.Equal(t, date(2024, time.February, 29), *next.Date)
	assert.Equal(t, original.UserID, next.UserID)
	assert.Equal(t, original.Name, next.Name)
	assert.Equal(t, original.Category, next.Category)
	assert.Equal(t, original.Amount, next.Amount)
	assert.Equal(t, original.Currency, next.Currency)
	assert.Equal(t, original.BudgetType, next.BudgetType)
	assert.Equal(t, original.Frequency, next.Frequency)
	assert.Equal(t, original.Account, next.Account)
	assert.Equal(t, original.Payer, next.Payer)
	// comments describe a single payment and do not carry over
	assert.Empty(t, next.Comment)
	assert.Zero(t, next.ID)
}

func TestRenewalAnchorsOnTodayWithoutDueKnown(t *testing.T) {
	original := models.Expense{
		UserID:    7,
		Name:      "Gym",
		Frequency: models.FreqQuarterly,
	}

	next, ok := Renewal(original, date(2024, time.June, 5))
	require.True(t, ok)
	require.NotNil(t, next.Date)
	assert.Equal(t, date(2024, time.September, 5), *next.Date)
}

func TestRenewalSkipsOneOffExpenses(t *testing.T) {
	due := date(2024, time.March, 1)
	_, ok := Renewal(models.Expense{Name: "Deposit", Frequency: models.FreqOnce, Date: &due}, date(2024, time.March, 1))
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	today := date(2024, time.June, 10)
	cases := []struct {
		name string
		due  time.Time
		want DueState
	}{
		{"long past", date(2024, time.May, 1), Overdue},
		{"yesterday", date(2024, time.June, 9), Overdue},
		{"today", date(2024, time.June, 10), DueToday},
		{"tomorrow", date(2024, time.June, 11), DueSoon},
		{"window edge", date(2024, time.June, 17), DueSoon},
		{"past window", date(2024, time.June, 18), Future},
		{"far out", date(2024, time.December, 25), Future},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.due, today))
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2024, time.June, 10, 23, 50, 0, 0, time.UTC)
	due := time.Date(2024, time.June, 10, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, DueToday, Classify(due, today))
}

func TestLabel(t *testing.T) {
	today := date(2024, time.June, 10)
	assert.Equal(t, "Overdue by 9 days", Label(date(2024, time.June, 1), today))
	assert.Equal(t, "Overdue by 1 day", Label(date(2024, time.June, 9), today))
	assert.Equal(t, "Due today", Label(date(2024, time.June, 10), today))
	assert.Equal(t, "Due in 1 day", Label(date(2024, time.June, 11), today))
	assert.Equal(t, "Due in 15 days", Label(date(2024, time.June, 25), today))
}
