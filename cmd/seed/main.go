// Command seed fills the database with the default admin and a batch of
// sample students for local development and demos.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/Spok95/attendance-tracker/internal/config"
	"github.com/Spok95/attendance-tracker/internal/db"
)

func main() {
	count := flag.Int("students", 8, "number of sample students to create")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	if err := db.SeedAdmin(ctx, database); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}
	if err := db.SeedStudents(ctx, database, *count); err != nil {
		log.Fatalf("student seed failed: %v", err)
	}
	log.Printf("seeded admin and %d students", *count)
}
