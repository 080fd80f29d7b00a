package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/projecto-dev/projecto/db"
	"github.com/projecto-dev/projecto/internal/auth"
	"github.com/projecto-dev/projecto/internal/router"
)

func main() {
	var err error

	err = godotenv.Load()

	if err != nil {
		log.Println("No .env file found, relying on environment")
	}

	if err = auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	if err = db.ConnectDatabase(os.Getenv("DATABASE_URL")); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err = r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
