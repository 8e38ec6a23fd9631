package ports

import (
	"context"
	"region-path-service/internal/domain"
)

// Port: a boundary for retrieving dynamic obstacles of a room as a cost overlay.
type ObstacleSource interface {
	// Return the room's overlay, or blocked=true when the room must not be entered.
	// A nil matrix with blocked=false means no obstacles are known for the room.
	CostMatrix(ctx context.Context, room domain.RoomName) (matrix *domain.CostMatrix, blocked bool, err error)
}
