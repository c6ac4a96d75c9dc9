package models

import "time"

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UserSettings is the one-per-user preference record. It is created lazily
// with defaults on first access and mutated via partial merge, never deleted.
type UserSettings struct {
	ID               uint `gorm:"primaryKey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	UserID           uint   `gorm:"uniqueIndex;not null"`
	Theme            string `gorm:"size:16;not null;default:light"`
	WebhookReminders string `gorm:"size:512"` // payment-reminder notifications
	WebhookSync      string `gorm:"size:512"` // cross-system sync on expense writes
}

// ValidTheme reports whether t is a known theme choice.
func ValidTheme(t string) bool {
	return t == ThemeLight || t == ThemeDark
}
