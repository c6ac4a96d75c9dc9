package models

import "time"

// ExpenseFile is a payment-proof attachment linked to exactly one Expense.
// Rows are created during payment confirmation, never updated, and removed
// only through the cascading delete of their parent expense.
type ExpenseFile struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	ExpenseID uint    `gorm:"index;not null"`
	Expense   Expense `gorm:"foreignKey:ExpenseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint    `gorm:"index;not null"`
	Bucket    string  `gorm:"size:64;not null"`
	Path      string  `gorm:"size:512;not null"` // storage key relative to the bucket root
	Filename  string  `gorm:"size:255"`
	MimeType  string  `gorm:"size:128"`
	Size      int64
}
