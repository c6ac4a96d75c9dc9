// Package report provides the read-side reducers behind the dashboard,
// grouped views and the CSV backup. All functions are pure over the slice
// they are given; source records are never mutated.
package report

import (
	"sort"
	"time"

	"github.com/mystoredigital/inversion-budget-app/models"
)

// Totals holds per-currency subtotals for a set of expenses. COP and USD are
// independent accumulations; nothing here converts between currencies.
type Totals struct {
	PendingCOP   float64 `json:"pending_cop"`
	PendingUSD   float64 `json:"pending_usd"`
	PaidCOP      float64 `json:"paid_cop"`
	PaidUSD      float64 `json:"paid_usd"`
	TotalCOP     float64 `json:"total_cop"`
	TotalUSD     float64 `json:"total_usd"`
	Count        int     `json:"count"`
	PendingCount int     `json:"pending_count"`
	PaidCount    int     `json:"paid_count"`
}

// Summarize accumulates currency-split totals over expenses.
func Summarize(expenses []models.Expense) Totals {
	var t Totals
	for _, e := range expenses {
		t.Count++
		cop := currencyOf(e) == models.CurrencyCOP
		if e.Status == models.StatusPaid {
			t.PaidCount++
			if cop {
				t.PaidCOP += e.Amount
			} else {
				t.PaidUSD += e.Amount
			}
		} else {
			t.PendingCount++
			if cop {
				t.PendingCOP += e.Amount
			} else {
				t.PendingUSD += e.Amount
			}
		}
	}
	t.TotalCOP = t.PendingCOP + t.PaidCOP
	t.TotalUSD = t.PendingUSD + t.PaidUSD
	return t
}

// CategoryGroup is one category folder with its rows and subtotals.
type CategoryGroup struct {
	Category string           `json:"category"`
	Items    []models.Expense `json:"items"`
	Totals   Totals           `json:"totals"`
}

// ByCategory partitions expenses into per-category groups, sorted by
// category name for stable output.
func ByCategory(expenses []models.Expense) []CategoryGroup {
	buckets := map[string][]models.Expense{}
	for _, e := range expenses {
		buckets[e.Category] = append(buckets[e.Category], e)
	}
	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]CategoryGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, CategoryGroup{
			Category: name,
			Items:    buckets[name],
			Totals:   Summarize(buckets[name]),
		})
	}
	return groups
}

// UndatedKey labels the group of expenses without a date in ByMonth.
const UndatedKey = "Undated"

// MonthGroup is one calendar month (keyed YYYY-MM) with its rows and
// subtotals. Expenses without a date fall into the UndatedKey group.
type MonthGroup struct {
	Month  string           `json:"month"`
	Items  []models.Expense `json:"items"`
	Totals Totals           `json:"totals"`
}

// ByMonth partitions expenses by the calendar month of their date,
// chronologically ordered with the undated group last.
func ByMonth(expenses []models.Expense) []MonthGroup {
	buckets := map[string][]models.Expense{}
	for _, e := range expenses {
		key := UndatedKey
		if e.Date != nil {
			key = e.Date.Format("2006-01")
		}
		buckets[key] = append(buckets[key], e)
	}
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		if key != UndatedKey {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if _, ok := buckets[UndatedKey]; ok {
		keys = append(keys, UndatedKey)
	}

	groups := make([]MonthGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, MonthGroup{
			Month:  key,
			Items:  buckets[key],
			Totals: Summarize(buckets[key]),
		})
	}
	return groups
}

// FrequencyGroup is a second-level grouping under the Subscriptions budget.
type FrequencyGroup struct {
	Frequency string           `json:"frequency"`
	Items     []models.Expense `json:"items"`
	Totals    Totals           `json:"totals"`
}

// BudgetGroup is one budget type with its rows and subtotals. Frequencies is
// populated only for the Subscriptions budget.
type BudgetGroup struct {
	BudgetType  string           `json:"budget_type"`
	Items       []models.Expense `json:"items"`
	Totals      Totals           `json:"totals"`
	Frequencies []FrequencyGroup `json:"frequencies,omitempty"`
}

// ByBudgetType partitions expenses by budget type in the fixed
// Personal/Subscriptions/Business order, splitting the Subscriptions group
// further by recurrence frequency.
func ByBudgetType(expenses []models.Expense) []BudgetGroup {
	buckets := map[string][]models.Expense{}
	for _, e := range expenses {
		bt := e.BudgetType
		if bt == "" {
			bt = models.BudgetPersonal
		}
		buckets[bt] = append(buckets[bt], e)
	}

	order := []string{models.BudgetPersonal, models.BudgetSubscriptions, models.BudgetBusiness}
	groups := make([]BudgetGroup, 0, len(order))
	for _, bt := range order {
		items, ok := buckets[bt]
		if !ok {
			continue
		}
		group := BudgetGroup{BudgetType: bt, Items: items, Totals: Summarize(items)}
		if bt == models.BudgetSubscriptions {
			group.Frequencies = byFrequency(items)
		}
		groups = append(groups, group)
	}
	return groups
}

func byFrequency(expenses []models.Expense) []FrequencyGroup {
	buckets := map[string][]models.Expense{}
	for _, e := range expenses {
		buckets[e.Frequency] = append(buckets[e.Frequency], e)
	}
	groups := make([]FrequencyGroup, 0, len(buckets))
	for _, freq := range models.Frequencies {
		items, ok := buckets[freq]
		if !ok {
			continue
		}
		groups = append(groups, FrequencyGroup{
			Frequency: freq,
			Items:     items,
			Totals:    Summarize(items),
		})
	}
	return groups
}

// MonthWindow returns the inclusive start and exclusive end of the given
// month, for selecting the dashboard's month/year window.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func currencyOf(e models.Expense) string {
	if e.Currency == "" {
		return models.CurrencyCOP
	}
	return e.Currency
}
