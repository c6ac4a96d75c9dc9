package main

import (
	"log"
	"os"
	"strings"

	"github.com/mystoredigital/inversion-budget-app/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	if err := openDB(postgres.Open(dsn)); err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
}

// openDB connects through the given dialector and migrates the schema.
// Tests inject a sqlite dialector here.
func openDB(dialector gorm.Dialector) error {
	var err error
	db, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any permission errors will be logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Expense{}); err != nil {
			log.Printf("migration warning (expenses): %v", err)
		}
		if err := db.AutoMigrate(&models.ExpenseFile{}); err != nil {
			log.Printf("migration warning (expense_files): %v", err)
		}
		if err := db.AutoMigrate(&models.UserSettings{}); err != nil {
			log.Printf("migration warning (user_settings): %v", err)
		}
		if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
			log.Printf("migration warning (refresh_tokens): %v", err)
		}
	}
	ensureUploadBase()
	return nil
}

// ensureUploadBase creates the base directory for attachment blobs.
func ensureUploadBase() {
	base := uploadBaseDir()
	if err := os.MkdirAll(base, 0755); err != nil {
		log.Printf("failed to create upload base dir %s: %v", base, err)
	}
}

// uploadBaseDir returns the base directory for attachments (configurable via UPLOAD_BASE env)
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}
