package ports

import (
	"context"
	"errors"
	"region-path-service/internal/domain"
)

// Returned when a room is not part of the known world.
var ErrUnknownRoom = errors.New("unknown room")

// Contract for static room terrain.
type TerrainProvider interface {
	RoomTerrain(ctx context.Context, room domain.RoomName) (*domain.RoomTerrain, error)
}
