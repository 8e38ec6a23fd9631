package obstacles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"region-path-service/internal/domain"
	"region-path-service/internal/platform/obs"
)

// SQLSource reads room obstacles from Postgres.
// Tables: room_obstacles(room, x, y, cost) and blocked_rooms(room).
type SQLSource struct {
	DB *sql.DB
}

func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{DB: db}
}

// CostMatrix implements ports.ObstacleSource.
func (s *SQLSource) CostMatrix(
	ctx context.Context,
	room domain.RoomName,
) (_ *domain.CostMatrix, _ bool, err error) {
	defer obs.Time(ctx, "obstacles.sql.CostMatrix")(&err)

	if s.DB == nil {
		return nil, false, errors.New("obstacle source: db is nil")
	}
	if !room.Valid() {
		return nil, false, fmt.Errorf("get obstacles: invalid room name %q", room)
	}

	var blocked bool
	err = s.DB.QueryRowContext(ctx, `
	SELECT EXISTS (SELECT 1 FROM blocked_rooms WHERE room = $1);
	`, string(room)).Scan(&blocked)
	if err != nil {
		return nil, false, fmt.Errorf("get obstacles: query blocked_rooms table: %w", err)
	}
	if blocked {
		return nil, true, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT x, y, cost
    FROM room_obstacles
    WHERE room = $1;
	`, string(room))
	if err != nil {
		return nil, false, fmt.Errorf("get obstacles: query room_obstacles table: %w", err)
	}
	defer rows.Close()

	var m *domain.CostMatrix
	for rows.Next() {
		var x, y, cost int
		if err := rows.Scan(&x, &y, &cost); err != nil {
			return nil, false, fmt.Errorf("get obstacles: scan rows: %w", err)
		}
		if x < 0 || x >= domain.RoomSize || y < 0 || y >= domain.RoomSize || cost < 0 || cost > domain.MaxTileCost {
			return nil, false, fmt.Errorf("get obstacles: room=%s invalid row x=%d y=%d cost=%d", room, x, y, cost)
		}
		if m == nil {
			m = domain.NewCostMatrix()
		}
		m.Set(x, y, uint8(cost))
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("get obstacles: row iteration: %w", err)
	}

	return m, false, nil
}
