package main

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/mystoredigital/inversion-budget-app/models"
	"github.com/mystoredigital/inversion-budget-app/pkg/schedule"

	"github.com/gin-gonic/gin"
)

// confirming tracks expense ids with a confirmation in flight so a
// double-submitted request cannot run the flow twice concurrently.
var confirming sync.Map

// confirmPaymentHandler marks a pending expense as paid. Multipart form:
// optional "file" payment proof, optional "payment_date" (YYYY-MM-DD,
// defaults to today).
//
// The steps run strictly in order: proof upload, file-metadata insert,
// status update, sync webhook, renewal insert. A failure before the status
// update aborts the confirmation; the webhook and the renewal are
// best-effort and never undo the update.
func confirmPaymentHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	expense, ok := findUserExpense(c, user.ID)
	if !ok {
		return
	}
	if expense.Status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "expense is not pending"})
		return
	}
	if _, inFlight := confirming.LoadOrStore(expense.ID, struct{}{}); inFlight {
		c.JSON(http.StatusConflict, gin.H{"error": "confirmation already in progress"})
		return
	}
	defer confirming.Delete(expense.ID)

	now := time.Now()
	paymentDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if v := c.PostForm("payment_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment_date, expected YYYY-MM-DD"})
			return
		}
		paymentDate = t
	}

	// 1. Store the proof, if one was sent.
	if fh, err := c.FormFile("file"); err == nil {
		src, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
			return
		}
		saved, err := fileStore.Save(user.ID, expense.ID, fh.Filename, src)
		src.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store proof"})
			return
		}
		record := models.ExpenseFile{
			ExpenseID: expense.ID,
			UserID:    user.ID,
			Bucket:    "proofs",
			Path:      saved.Path,
			Filename:  fh.Filename,
			MimeType:  fh.Header.Get("Content-Type"),
			Size:      saved.Size,
		}
		if err := db.Create(&record).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record proof"})
			return
		}
	}

	// 2. Flip the status and set the actual payment date, keeping the
	// original due date for the renewal computation.
	originalDate := expense.Date
	expense.Status = models.StatusPaid
	expense.Date = &paymentDate
	if err := db.Save(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
		return
	}
	invalidateSummaryCache(user.ID)
	view := viewOf(expense, now)

	// 3. Sync webhook, only when the user configured one.
	if s, err := loadSettings(user.ID); err == nil && s.WebhookSync != "" {
		if err := notifier.Notify(s.WebhookSync, view); err != nil {
			log.Printf("sync webhook for expense %d: %v", expense.ID, err)
		}
	}

	// 4. Auto-renew recurring expenses.
	snapshot := expense
	snapshot.Date = originalDate
	renewalCreated, warning := createRenewal(snapshot, now)

	resp := gin.H{"expense": view, "renewal_created": renewalCreated}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}

// createRenewal inserts the next occurrence of a recurring expense unless a
// pending row with the same name and date already exists. Persistence errors
// are returned as a warning string; the confirmed payment stands either way.
func createRenewal(e models.Expense, today time.Time) (bool, string) {
	next, ok := schedule.Renewal(e, today)
	if !ok {
		return false, ""
	}
	var existing models.Expense
	err := db.Where("user_id = ? AND name = ? AND date = ? AND status = ?",
		next.UserID, next.Name, next.Date, models.StatusPending).First(&existing).Error
	if err == nil {
		return false, "" // duplicate guard: renewal already scheduled
	}
	if err := db.Create(&next).Error; err != nil {
		log.Printf("renewal for %q: %v", e.Name, err)
		return false, "payment confirmed but scheduling the next occurrence failed"
	}
	invalidateSummaryCache(e.UserID)
	return true, ""
}
