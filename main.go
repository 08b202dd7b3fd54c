package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"mahber-backend/config"
	"mahber-backend/routes"
	"mahber-backend/services"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	if err := config.Migrate(config.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "10000"
	}

	mailer := services.NewMailService()

	followups := services.NewFollowupService(config.DB, mailer, mailer.OrgEmail())
	followups.StartScheduler()

	r := routes.SetupRouter(config.DB, mailer)

	log.Println("Mahber API listening on port " + port)
	r.Run(":" + port)
}
