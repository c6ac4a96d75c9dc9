package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mystoredigital/inversion-budget-app/pkg/files"
	"github.com/mystoredigital/inversion-budget-app/pkg/webhook"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

// external collaborators, swapped for fakes in tests
var (
	notifier  webhook.Notifier
	fileStore files.Store
)

func main() {
	// Load ./.env if present before reading vars; existing env wins.
	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	// Support a lightweight migrate command: `./inversion-budget-app migrate`
	// It runs AutoMigrate then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration completed")
		return
	}

	initDB()

	if err := initRedis(); err != nil {
		log.Printf("Warning: failed to initialize Redis: %v", err)
		log.Println("Continuing without summary cache...")
	}

	notifier = webhook.NewHTTPNotifier()
	store, err := files.NewDiskStore(uploadBaseDir())
	if err != nil {
		log.Fatalf("attachment store: %v", err)
	}
	fileStore = store

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	setupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
