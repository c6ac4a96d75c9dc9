package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mystoredigital/inversion-budget-app/models"
	"github.com/mystoredigital/inversion-budget-app/pkg/schedule"
)

// CSVHeader is the fixed backup column order. Changing it breaks downstream
// imports of previously exported files.
var CSVHeader = []string{
	"id", "name", "category", "budget_type", "date", "account",
	"due_in", "amount", "currency", "status", "comment",
}

// WriteCSV writes the backup file: the fixed header followed by one row per
// expense. The due_in column carries the classifier label for pending dated
// rows and is empty otherwise.
func WriteCSV(w io.Writer, expenses []models.Expense, today time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range expenses {
		dateStr := ""
		dueIn := ""
		if e.Date != nil {
			dateStr = e.Date.Format("2006-01-02")
			if e.Status == models.StatusPending {
				dueIn = schedule.Label(*e.Date, today)
			}
		}
		row := []string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.Name,
			e.Category,
			e.BudgetType,
			dateStr,
			e.Account,
			dueIn,
			FormatAmount(e.Amount, currencyOf(e)),
			currencyOf(e),
			e.Status,
			e.Comment,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// BackupFilename stamps the export date into the download name.
func BackupFilename(today time.Time) string {
	return "Finance_Backup_" + today.Format("2006-01-02") + ".csv"
}

// FormatAmount renders an amount with the currency's conventional precision:
// whole pesos for COP, cents for USD.
func FormatAmount(amount float64, currency string) string {
	decimals := 2
	if currency == models.CurrencyCOP {
		decimals = 0
	}
	return strconv.FormatFloat(amount, 'f', decimals, 64)
}
