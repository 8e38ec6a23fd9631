package ports

import (
	"context"
	"errors"
	"region-path-service/internal/domain"
)

// Returned when no room-level route exists within the given limits.
var ErrNoRoute = errors.New("no route between rooms")

// Limits applied to room-level routing.
type RouteOptions struct {
	AvoidRooms []domain.RoomName
	// Maximum number of room transitions, 0 for no limit.
	MaxRooms int
}

// Contract for routing between rooms over the room adjacency graph.
type RouteFinder interface {
	// Return the rooms from `from` to `to`, both included.
	FindRoute(ctx context.Context, from, to domain.RoomName, opts RouteOptions) (domain.Route, error)
}
