package main

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/mystoredigital/inversion-budget-app/models"
	"github.com/mystoredigital/inversion-budget-app/pkg/report"
	"github.com/mystoredigital/inversion-budget-app/pkg/schedule"
	"github.com/mystoredigital/inversion-budget-app/pkg/webhook"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// expenseView is the API shape of an expense row: the stored fields plus the
// derived due_in label.
type expenseView struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Status     string    `json:"status"`
	Date       *string   `json:"date"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	BudgetType string    `json:"budget_type"`
	Frequency  string    `json:"frequency"`
	Account    string    `json:"account"`
	Payer      string    `json:"payer"`
	Comment    string    `json:"comment"`
	DueIn      string    `json:"due_in,omitempty"`
	DueState   string    `json:"due_state,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func viewOf(e models.Expense, today time.Time) expenseView {
	v := expenseView{
		ID:         e.ID,
		Name:       e.Name,
		Category:   e.Category,
		Status:     e.Status,
		Amount:     e.Amount,
		Currency:   e.Currency,
		BudgetType: e.BudgetType,
		Frequency:  e.Frequency,
		Account:    e.Account,
		Payer:      e.Payer,
		Comment:    e.Comment,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.Date != nil {
		ds := e.Date.Format(dateLayout)
		v.Date = &ds
		if e.Status == models.StatusPending {
			v.DueIn = schedule.Label(*e.Date, today)
			v.DueState = schedule.Classify(*e.Date, today).String()
		}
	}
	return v
}

func viewsOf(expenses []models.Expense, today time.Time) []expenseView {
	views := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, viewOf(e, today))
	}
	return views
}

type expenseRequest struct {
	Name       string  `json:"name" binding:"required"`
	Category   string  `json:"category" binding:"required"`
	Status     string  `json:"status"`
	Date       string  `json:"date"` // YYYY-MM-DD, optional
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	BudgetType string  `json:"budget_type"`
	Frequency  string  `json:"frequency"`
	Account    string  `json:"account"`
	Payer      string  `json:"payer"`
	Comment    string  `json:"comment"`
}

// apply validates the request and copies it onto e, filling enum defaults
// for omitted fields.
func (req *expenseRequest) apply(e *models.Expense) (string, bool) {
	if req.Status == "" {
		req.Status = models.StatusPending
	}
	if req.Currency == "" {
		req.Currency = models.CurrencyCOP
	}
	if req.BudgetType == "" {
		req.BudgetType = models.BudgetPersonal
	}
	if req.Frequency == "" {
		req.Frequency = models.FreqOnce
	}
	switch {
	case req.Amount < 0:
		return "amount must not be negative", false
	case !models.ValidCategory(req.Category):
		return "unknown category", false
	case !models.ValidStatus(req.Status):
		return "unknown status", false
	case !models.ValidCurrency(req.Currency):
		return "unknown currency", false
	case !models.ValidBudgetType(req.BudgetType):
		return "unknown budget type", false
	case !models.ValidFrequency(req.Frequency):
		return "unknown frequency", false
	}
	var date *time.Time
	if req.Date != "" {
		t, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return "invalid date, expected YYYY-MM-DD", false
		}
		date = &t
	}
	e.Name = req.Name
	e.Category = req.Category
	e.Status = req.Status
	e.Date = date
	e.Amount = req.Amount
	e.Currency = req.Currency
	e.BudgetType = req.BudgetType
	e.Frequency = req.Frequency
	e.Account = req.Account
	e.Payer = req.Payer
	e.Comment = req.Comment
	return "", true
}

func createExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	expense := models.Expense{UserID: user.ID}
	if msg, ok := req.apply(&expense); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if err := db.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	invalidateSummaryCache(user.ID)
	view := viewOf(expense, time.Now())
	notifySyncWebhook(user.ID, expense, view)
	c.JSON(http.StatusOK, view)
}

func listExpensesHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Model(&models.Expense{}).Where("user_id = ?", user.ID)
	start, end, windowed, err := windowFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if windowed {
		q = q.Where("date >= ? AND date < ?", start, end)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	var items []models.Expense
	if err := q.Order("date asc, id asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, viewsOf(items, time.Now()))
}

func getExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	expense, ok := findUserExpense(c, user.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, viewOf(expense, time.Now()))
}

func updateExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	expense, ok := findUserExpense(c, user.ID)
	if !ok {
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg, ok := req.apply(&expense); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if err := db.Save(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	invalidateSummaryCache(user.ID)
	view := viewOf(expense, time.Now())
	notifySyncWebhook(user.ID, expense, view)
	c.JSON(http.StatusOK, view)
}

func deleteExpenseHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	expense, ok := findUserExpense(c, user.ID)
	if !ok {
		return
	}
	if err := db.Delete(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	invalidateSummaryCache(user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}

// exportExpensesHandler streams the CSV backup of every expense the user owns.
func exportExpensesHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var items []models.Expense
	if err := db.Where("user_id = ?", user.ID).Order("date asc, id asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	now := time.Now()
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+report.BackupFilename(now)+`"`)
	if err := report.WriteCSV(c.Writer, items, now); err != nil {
		log.Printf("csv export for user %d: %v", user.ID, err)
	}
}

// findUserExpense loads the :id expense scoped to the user, writing the
// error response itself when the lookup fails.
func findUserExpense(c *gin.Context, userID uint) (models.Expense, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return models.Expense{}, false
	}
	var expense models.Expense
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return models.Expense{}, false
	}
	return expense, true
}

// windowFromQuery parses the month/year selection. Month defaults to the
// whole year when only year is given; malformed values are rejected.
func windowFromQuery(c *gin.Context) (time.Time, time.Time, bool, error) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" && monthStr == "" {
		return time.Time{}, time.Time{}, false, nil
	}
	year := time.Now().Year()
	if yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("invalid year %q", yearStr)
		}
		year = y
	}
	if monthStr == "" {
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0), true, nil
	}
	m, err := strconv.Atoi(monthStr)
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, time.Time{}, false, fmt.Errorf("invalid month %q", monthStr)
	}
	start, end := report.MonthWindow(year, time.Month(m))
	return start, end, true, nil
}

// notifySyncWebhook forwards the persisted row to the user's sync webhook
// (or the default) when the expense has a date. Failures are logged only;
// the write that triggered the notification stands.
func notifySyncWebhook(userID uint, e models.Expense, payload any) {
	if e.Date == nil {
		return
	}
	url := webhook.DefaultSyncURL
	if s, err := loadSettings(userID); err == nil && s.WebhookSync != "" {
		url = s.WebhookSync
	}
	if err := notifier.Notify(url, payload); err != nil {
		log.Printf("sync webhook for expense %d: %v", e.ID, err)
	}
}
