package main

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/mystoredigital/inversion-budget-app/models"
	"github.com/mystoredigital/inversion-budget-app/pkg/schedule"

	"github.com/gin-gonic/gin"
)

type fileView struct {
	ID        uint      `json:"id"`
	ExpenseID uint      `json:"expense_id"`
	Bucket    string    `json:"bucket"`
	Path      string    `json:"path"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// listFilesHandler returns attachment metadata, optionally filtered to one
// expense.
func listFilesHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	q := db.Model(&models.ExpenseFile{}).Where("user_id = ?", user.ID)
	if v := c.Query("expense_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense_id"})
			return
		}
		q = q.Where("expense_id = ?", id)
	}
	var records []models.ExpenseFile
	if err := q.Order("id desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	views := make([]fileView, 0, len(records))
	for _, f := range records {
		views = append(views, fileView{
			ID: f.ID, ExpenseID: f.ExpenseID, Bucket: f.Bucket, Path: f.Path,
			Filename: f.Filename, MimeType: f.MimeType, Size: f.Size, CreatedAt: f.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, views)
}

// downloadFileHandler streams the stored proof blob.
func downloadFileHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}
	var record models.ExpenseFile
	if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&record).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	rc, err := fileStore.Open(record.Path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stored blob missing"})
		return
	}
	defer rc.Close()

	mime := record.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	c.Header("Content-Type", mime)
	c.Header("Content-Disposition", `attachment; filename="`+record.Filename+`"`)
	if record.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(record.Size, 10))
	}
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		log.Printf("stream file %d: %v", record.ID, err)
	}
}

// dispatchRemindersHandler POSTs the user's overdue and due-today pending
// expenses to their reminders webhook. Delivery is best-effort: a failed
// POST is logged and reported via the delivered flag, never as an error
// status.
func dispatchRemindersHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	settings, err := loadSettings(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	if settings.WebhookReminders == "" {
		c.JSON(http.StatusOK, gin.H{"dispatched": 0, "delivered": false, "message": "no reminders webhook configured"})
		return
	}
	var items []models.Expense
	if err := db.Where("user_id = ? AND status = ? AND date IS NOT NULL", user.ID, models.StatusPending).
		Order("date asc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	today := time.Now()
	due := make([]expenseView, 0)
	for _, e := range items {
		switch schedule.Classify(*e.Date, today) {
		case schedule.Overdue, schedule.DueToday:
			due = append(due, viewOf(e, today))
		}
	}
	if len(due) == 0 {
		c.JSON(http.StatusOK, gin.H{"dispatched": 0, "delivered": false})
		return
	}
	delivered := true
	if err := notifier.Notify(settings.WebhookReminders, due); err != nil {
		log.Printf("reminders webhook for user %d: %v", user.ID, err)
		delivered = false
	}
	c.JSON(http.StatusOK, gin.H{"dispatched": len(due), "delivered": delivered})
}
