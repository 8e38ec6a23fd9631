package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"region-path-service/internal/domain"
	"strings"
)

// Initialize the Postgres schema for obstacle storage.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createObstaclesQuery := `
	CREATE TABLE IF NOT EXISTS room_obstacles (
		room TEXT NOT NULL,
		x SMALLINT NOT NULL CHECK (x BETWEEN 0 AND 49),
		y SMALLINT NOT NULL CHECK (y BETWEEN 0 AND 49),
		cost SMALLINT NOT NULL CHECK (cost BETWEEN 0 AND 255),
		PRIMARY KEY (room, x, y)
	);
	`

	createBlockedRoomsQuery := `
	CREATE TABLE IF NOT EXISTS blocked_rooms (
		room TEXT PRIMARY KEY
	);
	`

	statements := []string{
		createObstaclesQuery,
		createBlockedRoomsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ObstacleSeed struct {
	Room string `json:"room"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Cost int    `json:"cost"`
}

type Seed struct {
	Obstacles []ObstacleSeed `json:"obstacles"`
	Blocked   []string       `json:"blocked"`
}

// Populate the database with obstacle data from a JSON file.
// A missing or zero cost marks the tile impassable.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed obstacles: read %q: %w", jsonPath, err)
	}

	var data Seed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed obstacles: parse json: %w", err)
	}

	rows := make([]ObstacleSeed, 0, len(data.Obstacles))
	for i, item := range data.Obstacles {
		room := domain.RoomName(strings.TrimSpace(item.Room))
		if !room.Valid() {
			return fmt.Errorf("seed obstacles: invalid room at index %d: %q", i+1, item.Room)
		}
		if item.X < 0 || item.X >= domain.RoomSize || item.Y < 0 || item.Y >= domain.RoomSize {
			return fmt.Errorf("seed obstacles: tile at index %d outside room: (%d,%d)", i+1, item.X, item.Y)
		}

		cost := item.Cost
		if cost == 0 {
			cost = domain.MaxTileCost
		}
		if cost < 0 || cost > domain.MaxTileCost {
			return fmt.Errorf("seed obstacles: cost at index %d out of range: %d", i+1, item.Cost)
		}
		rows = append(rows, ObstacleSeed{Room: string(room), X: item.X, Y: item.Y, Cost: cost})
	}

	blocked := make([]string, 0, len(data.Blocked))
	for i, name := range data.Blocked {
		room := domain.RoomName(strings.TrimSpace(name))
		if !room.Valid() {
			return fmt.Errorf("seed obstacles: invalid blocked room at index %d: %q", i+1, name)
		}
		blocked = append(blocked, string(room))
	}

	if db == nil {
		return errors.New("seed obstacles: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed obstacles: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
	INSERT INTO room_obstacles (room, x, y, cost)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (room, x, y) DO UPDATE
	SET cost = EXCLUDED.cost;
	`)
	if err != nil {
		return fmt.Errorf("seed obstacles: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range rows {
		if _, err := stmt.Exec(o.Room, o.X, o.Y, o.Cost); err != nil {
			return fmt.Errorf("seed obstacles: insert room=%s x=%d y=%d: %w", o.Room, o.X, o.Y, err)
		}
	}

	for _, room := range blocked {
		if _, err := tx.Exec(`INSERT INTO blocked_rooms (room) VALUES ($1) ON CONFLICT DO NOTHING;`, room); err != nil {
			return fmt.Errorf("seed obstacles: block room=%s: %w", room, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed obstacles: commit tx: %w", err)
	}

	return nil
}
