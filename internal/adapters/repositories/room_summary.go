package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"region-path-service/internal/domain"
)

// Obstacle state stored for one room.
type RoomSummary struct {
	Room      domain.RoomName
	Obstacles int
	Blocked   bool
}

// Postgres-backed listing of stored obstacle data.
type SQLRoomRepository struct{ DB *sql.DB }

func NewSQLRoomRepository(db *sql.DB) *SQLRoomRepository {
	return &SQLRoomRepository{DB: db}
}

// Return every room with obstacles or a block, ordered by name.
func (s *SQLRoomRepository) ListRooms(ctx context.Context) ([]RoomSummary, error) {
	if s.DB == nil {
		return nil, errors.New("sql room repository: DB is nil")
	}

	query := `
	SELECT
		r.room,
		COUNT(o.room),
		EXISTS (SELECT 1 FROM blocked_rooms b WHERE b.room = r.room)
	FROM (
		SELECT room FROM room_obstacles
		UNION
		SELECT room FROM blocked_rooms
	) r
	LEFT JOIN room_obstacles o ON o.room = r.room
	GROUP BY r.room
	ORDER BY r.room;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: query obstacle tables: %w", err)
	}
	defer rows.Close()

	rooms := make([]RoomSummary, 0, 16)
	for rows.Next() {
		var name string
		var r RoomSummary
		if err := rows.Scan(&name, &r.Obstacles, &r.Blocked); err != nil {
			return nil, fmt.Errorf("list rooms: scan row: %w", err)
		}
		r.Room = domain.RoomName(name)
		rooms = append(rooms, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rooms: row iteration: %w", err)
	}

	return rooms, nil
}
