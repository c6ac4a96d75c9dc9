package models

import (
	"time"
)

// User model. Every expense, attachment and settings row belongs to exactly
// one user; handlers always filter by the authenticated identity.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time `gorm:"index"`
	Username       string     `gorm:"size:255;not null;unique"`
	HashedPassword []byte     `gorm:"not null"`
	Expenses       []Expense
	Settings       *UserSettings `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
