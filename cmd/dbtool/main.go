package main

import (
	"context"
	"database/sql"
	"log"
	"region-path-service/internal/adapters/repositories"
	"region-path-service/internal/config"
	"region-path-service/internal/platform/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/obstacles.json")
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}

	rooms, err := repositories.NewSQLRoomRepository(db).ListRooms(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range rooms {
		log.Printf("room=%s obstacles=%d blocked=%t", r.Room, r.Obstacles, r.Blocked)
	}
}

func initAndSeed(db *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(db); err != nil {
		return err
	}
	log.Println("Schema ready.")

	log.Printf("Seeding obstacles from %s...", seedPath)
	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}
