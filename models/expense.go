package models

import "time"

// Payment statuses.
const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"
)

// Supported currencies. Amounts in different currencies are tracked as
// independent sums and never converted.
const (
	CurrencyCOP = "COP"
	CurrencyUSD = "USD"
)

// Budget types.
const (
	BudgetPersonal      = "Personal"
	BudgetSubscriptions = "Subscriptions"
	BudgetBusiness      = "Business"
)

// Recurrence frequencies.
const (
	FreqOnce       = "Once"
	FreqMonthly    = "Monthly"
	FreqBimonthly  = "Bimonthly"
	FreqQuarterly  = "Quarterly"
	FreqSemiannual = "Semiannual"
	FreqAnnual     = "Annual"
)

// Categories is the closed set of expense categories.
var Categories = []string{
	"Home", "Food", "Entertainment", "Health", "Services",
	"Credits", "Credit Card", "School", "Business", "Car",
}

// Frequencies in display order, monthly-like first, one-off last.
var Frequencies = []string{
	FreqMonthly, FreqBimonthly, FreqQuarterly, FreqSemiannual, FreqAnnual, FreqOnce,
}

// Expense represents one financial obligation or transaction belonging to a user.
type Expense struct {
	ID         uint `gorm:"primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	UserID     uint       `gorm:"index;not null"`
	Name       string     `gorm:"size:255;not null"`
	Category   string     `gorm:"size:64;not null"`
	Status     string     `gorm:"size:32;not null;default:Pending"`
	Date       *time.Time `gorm:"index"` // due date while Pending, payment date once Paid
	Amount     float64    `gorm:"not null"`
	Currency   string     `gorm:"size:8;not null;default:COP"`
	BudgetType string     `gorm:"size:32;not null;default:Personal"`
	Frequency  string     `gorm:"size:32;not null;default:Once"`
	Account    string     `gorm:"size:255"`
	Payer      string     `gorm:"size:255"`
	Comment    string     `gorm:"size:512"`
}

// ValidStatus reports whether s is one of the payment statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusPaid
}

// ValidCurrency reports whether c is a supported currency.
func ValidCurrency(c string) bool {
	return c == CurrencyCOP || c == CurrencyUSD
}

// ValidBudgetType reports whether b is one of the budget types.
func ValidBudgetType(b string) bool {
	return b == BudgetPersonal || b == BudgetSubscriptions || b == BudgetBusiness
}

// ValidFrequency reports whether f is one of the recurrence frequencies.
func ValidFrequency(f string) bool {
	for _, known := range Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

// ValidCategory reports whether c is in the closed category set.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
