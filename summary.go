package main

import (
	"net/http"
	"time"

	"github.com/mystoredigital/inversion-budget-app/models"
	"github.com/mystoredigital/inversion-budget-app/pkg/report"
	"github.com/mystoredigital/inversion-budget-app/pkg/schedule"

	"github.com/gin-gonic/gin"
)

// fetchWindow loads the user's expenses for the selected month/year window
// (current month when unspecified), plus the window bounds for cache keys.
func fetchWindow(c *gin.Context, userID uint) ([]models.Expense, time.Time, time.Time, bool) {
	start, end, ok, err := windowFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, time.Time{}, time.Time{}, false
	}
	if !ok {
		now := time.Now()
		start, end = report.MonthWindow(now.Year(), now.Month())
	}
	var items []models.Expense
	if err := db.Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("date asc, id asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return nil, time.Time{}, time.Time{}, false
	}
	return items, start, end, true
}

type dashboardSummary struct {
	Totals        report.Totals `json:"totals"`
	OverdueCount  int           `json:"overdue_count"`
	UpcomingCount int           `json:"upcoming_count"`
}

// summaryHandler backs the dashboard cards: currency-split totals plus the
// overdue/upcoming split of the pending rows.
func summaryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	items, start, end, ok := fetchWindow(c, user.ID)
	if !ok {
		return
	}
	key := summaryCacheKey(user.ID, "totals", start, end)
	var cached dashboardSummary
	if cacheGet(key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	summary := dashboardSummary{Totals: report.Summarize(items)}
	today := time.Now()
	for _, e := range items {
		if e.Status != models.StatusPending || e.Date == nil {
			continue
		}
		switch schedule.Classify(*e.Date, today) {
		case schedule.Overdue, schedule.DueToday:
			summary.OverdueCount++
		default:
			summary.UpcomingCount++
		}
	}
	cacheSet(key, summary)
	c.JSON(http.StatusOK, summary)
}

func summaryByCategoryHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	items, start, end, ok := fetchWindow(c, user.ID)
	if !ok {
		return
	}
	key := summaryCacheKey(user.ID, "categories", start, end)
	var cached []report.CategoryGroup
	if cacheGet(key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}
	groups := report.ByCategory(items)
	cacheSet(key, groups)
	c.JSON(http.StatusOK, groups)
}

func summaryByMonthHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	items, start, end, ok := fetchWindow(c, user.ID)
	if !ok {
		return
	}
	key := summaryCacheKey(user.ID, "months", start, end)
	var cached []report.MonthGroup
	if cacheGet(key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}
	groups := report.ByMonth(items)
	cacheSet(key, groups)
	c.JSON(http.StatusOK, groups)
}

func summaryByBudgetHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	items, start, end, ok := fetchWindow(c, user.ID)
	if !ok {
		return
	}
	key := summaryCacheKey(user.ID, "budgets", start, end)
	var cached []report.BudgetGroup
	if cacheGet(key, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}
	groups := report.ByBudgetType(items)
	cacheSet(key, groups)
	c.JSON(http.StatusOK, groups)
}
