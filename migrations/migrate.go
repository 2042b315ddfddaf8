package main

import (
	"context"
	"log"
	"os"

	"advisor/src/config"
	"advisor/src/database"

	"github.com/jackc/pgx/v5/stdlib"
)

func main() {
	cfg, err := config.LoadConfig("./settings", os.Getenv("ENV"))
	if err != nil {
		log.Fatalf("Error loading config for environment: %v", err)
	}

	pool, err := database.SetupDB(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(stdlib.OpenDBFromPool(pool), "./migrations"); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Println("Database migration completed successfully")
}
