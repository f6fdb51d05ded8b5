package main

import (
	"fmt"
	"log"
	"os"

	"checkup/pkg/photostore"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

func main() {
	// Auto-load ./.env if present before reading vars; existing env wins.
	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	// Support a lightweight migrate command: `./checkup_app migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		fmt.Println("migration and seeding completed")
		return
	}

	initDB()

	store, err := photostore.New(photostore.LoadConfig())
	if err != nil {
		log.Fatalf("photo store init failed: %v", err)
	}
	notifier := newWebhookNotifier()

	r := gin.Default()

	setupRoutes(r, store, notifier)

	r.Run(":8081")
}
