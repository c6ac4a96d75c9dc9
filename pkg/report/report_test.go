package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mystoredigital/inversion-budget-app/models"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleExpenses() []models.Expense {
	return []models.Expense{
		{ID: 1, Name: "Rent", Category: "Home", Status: models.StatusPending, Date: datePtr(2024, time.June, 1), Amount: 1800000, Currency: models.CurrencyCOP, BudgetType: models.BudgetPersonal, Frequency: models.FreqMonthly},
		{ID: 2, Name: "Netflix", Category: "Entertainment", Status: models.StatusPaid, Date: datePtr(2024, time.June, 5), Amount: 44900, Currency: models.CurrencyCOP, BudgetType: models.BudgetSubscriptions, Frequency: models.FreqMonthly},
		{ID: 3, Name: "Adobe", Category: "Business", Status: models.StatusPending, Date: datePtr(2024, time.June, 20), Amount: 59.99, Currency: models.CurrencyUSD, BudgetType: models.BudgetSubscriptions, Frequency: models.FreqAnnual},
		{ID: 4, Name: "Hosting", Category: "Services", Status: models.StatusPaid, Date: datePtr(2024, time.July, 2), Amount: 12.5, Currency: models.CurrencyUSD, BudgetType: models.BudgetBusiness, Frequency: models.FreqMonthly},
		{ID: 5, Name: "Groceries", Category: "Food", Status: models.StatusPaid, Amount: 350000, Currency: models.CurrencyCOP, BudgetType: models.BudgetPersonal, Frequency: models.FreqOnce},
	}
}

func TestSummarizeKeepsCurrenciesApart(t *testing.T) {
	totals := Summarize(sampleExpenses())

	assert.Equal(t, 1800000.0, totals.PendingCOP)
	assert.Equal(t, 59.99, totals.PendingUSD)
	assert.Equal(t, 394900.0, totals.PaidCOP)
	assert.Equal(t, 12.5, totals.PaidUSD)
	assert.Equal(t, 2194900.0, totals.TotalCOP)
	assert.Equal(t, 72.49, totals.TotalUSD)
	assert.Equal(t, 5, totals.Count)
	assert.Equal(t, 2, totals.PendingCount)
	assert.Equal(t, 3, totals.PaidCount)
}

func TestSummarizeDefaultsBlankCurrencyToCOP(t *testing.T) {
	totals := Summarize([]models.Expense{{Status: models.StatusPending, Amount: 100}})
	assert.Equal(t, 100.0, totals.PendingCOP)
	assert.Zero(t, totals.PendingUSD)
}

// Every grouping must partition the input: no row duplicated or dropped, and
// per-currency group totals summing to the ungrouped total.
func assertPartition(t *testing.T, input []models.Expense, groupItems [][]models.Expense, groupTotals []Totals) {
	t.Helper()

	seen := map[uint]int{}
	count := 0
	var cop, usd float64
	for i, items := range groupItems {
		for _, e := range items {
			seen[e.ID]++
			count++
		}
		cop += groupTotals[i].TotalCOP
		usd += groupTotals[i].TotalUSD
	}
	require.Equal(t, len(input), count)
	for id, n := range seen {
		assert.Equalf(t, 1, n, "expense %d appears %d times", id, n)
	}
	whole := Summarize(input)
	assert.InDelta(t, whole.TotalCOP, cop, 1e-9)
	assert.InDelta(t, whole.TotalUSD, usd, 1e-9)
}

func TestByCategoryPartitionsInput(t *testing.T) {
	input := sampleExpenses()
	groups := ByCategory(input)

	var items [][]models.Expense
	var totals []Totals
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		items = append(items, g.Items)
		totals = append(totals, g.Totals)
		names = append(names, g.Category)
	}
	assertPartition(t, input, items, totals)
	assert.IsIncreasing(t, names)
}

func TestByMonthGroupsChronologicallyWithUndatedLast(t *testing.T) {
	input := sampleExpenses()
	groups := ByMonth(input)

	require.Len(t, groups, 3)
	assert.Equal(t, "2024-06", groups[0].Month)
	assert.Equal(t, "2024-07", groups[1].Month)
	assert.Equal(t, UndatedKey, groups[2].Month)
	assert.Len(t, groups[0].Items, 3)

	var items [][]models.Expense
	var totals []Totals
	for _, g := range groups {
		items = append(items, g.Items)
		totals = append(totals, g.Totals)
	}
	assertPartition(t, input, items, totals)
}

func TestByBudgetTypeSplitsSubscriptionsByFrequency(t *testing.T) {
	input := sampleExpenses()
	groups := ByBudgetType(input)

	require.Len(t, groups, 3)
	assert.Equal(t, models.BudgetPersonal, groups[0].BudgetType)
	assert.Equal(t, models.BudgetSubscriptions, groups[1].BudgetType)
	assert.Equal(t, models.BudgetBusiness, groups[2].BudgetType)

	assert.Nil(t, groups[0].Frequencies)
	assert.Nil(t, groups[2].Frequencies)

	subs := groups[1]
	require.Len(t, subs.Frequencies, 2)
	assert.Equal(t, models.FreqMonthly, subs.Frequencies[0].Frequency)
	assert.Equal(t, models.FreqAnnual, subs.Frequencies[1].Frequency)
	assert.Equal(t, 44900.0, subs.Frequencies[0].Totals.TotalCOP)
	assert.Equal(t, 59.99, subs.Frequencies[1].Totals.TotalUSD)

	var items [][]models.Expense
	var totals []Totals
	for _, g := range groups {
		items = append(items, g.Items)
		totals = append(totals, g.Totals)
	}
	assertPartition(t, input, items, totals)
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(2024, time.February)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestWriteCSV(t *testing.T) {
	input := sampleExpenses()
	var buf bytes.Buffer
	today := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, WriteCSV(&buf, input, today))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(input)+1)
	assert.Equal(t, CSVHeader, records[0])

	// Rent: pending, due 2024-06-01, COP with no decimals
	assert.Equal(t, []string{"1", "Rent", "Home", "Personal", "2024-06-01", "", "Overdue by 9 days", "1800000", "COP", "Pending", ""}, records[1])
	// Adobe: USD keeps cents
	assert.Equal(t, "59.99", records[3][7])
	assert.Equal(t, "Due in 10 days", records[3][6])
	// Paid rows carry no due_in label; undated rows no date
	assert.Equal(t, "", records[2][6])
	assert.Equal(t, "", records[5][4])
}

func TestWriteCSVQuotesEmbeddedCommas(t *testing.T) {
	input := []models.Expense{{
		ID: 9, Name: `Water, power "and" gas`, Category: "Home",
		Status: models.StatusPaid, Amount: 90000, Currency: models.CurrencyCOP,
		BudgetType: models.BudgetPersonal, Frequency: models.FreqMonthly,
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, input, time.Now()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `Water, power "and" gas`, records[1][1])
}

func TestBackupFilename(t *testing.T) {
	today := time.Date(2024, time.June, 10, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "Finance_Backup_2024-06-10.csv", BackupFilename(today))
}
