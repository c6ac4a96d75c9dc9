package main

import (
	"errors"
	"net/http"

	"github.com/mystoredigital/inversion-budget-app/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadSettings returns the user's settings row, creating it with defaults on
// first access.
func loadSettings(userID uint) (models.UserSettings, error) {
	var s models.UserSettings
	err := db.Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = models.UserSettings{UserID: userID, Theme: models.ThemeLight}
		if cerr := db.Create(&s).Error; cerr != nil {
			return models.UserSettings{}, cerr
		}
		return s, nil
	}
	return s, err
}

type settingsView struct {
	Theme            string `json:"theme"`
	WebhookReminders string `json:"webhook_reminders"`
	WebhookSync      string `json:"webhook_sync"`
}

func settingsViewOf(s models.UserSettings) settingsView {
	return settingsView{
		Theme:            s.Theme,
		WebhookReminders: s.WebhookReminders,
		WebhookSync:      s.WebhookSync,
	}
}

func getSettingsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	s, err := loadSettings(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, settingsViewOf(s))
}

// updateSettingsHandler merges the provided fields into the stored row;
// omitted fields keep their value.
func updateSettingsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Theme            *string `json:"theme"`
		WebhookReminders *string `json:"webhook_reminders"`
		WebhookSync      *string `json:"webhook_sync"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := loadSettings(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	if req.Theme != nil {
		if !models.ValidTheme(*req.Theme) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown theme"})
			return
		}
		s.Theme = *req.Theme
	}
	if req.WebhookReminders != nil {
		s.WebhookReminders = *req.WebhookReminders
	}
	if req.WebhookSync != nil {
		s.WebhookSync = *req.WebhookSync
	}
	if err := db.Save(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, settingsViewOf(s))
}
