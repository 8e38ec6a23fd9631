// Package obstacles provides sources of per-room obstacle overlays and the
// bridge that turns a source into a planner room callback.
package obstacles

import (
	"context"
	"fmt"
	"region-path-service/internal/domain"
	"region-path-service/internal/ports"
)

// RoomCallback adapts an obstacle source to the callback the planner consults per room.
// A nil source yields a nil callback.
func RoomCallback(source ports.ObstacleSource) domain.RoomCallback {
	if source == nil {
		return nil
	}
	return func(ctx context.Context, room domain.RoomName) (*domain.CostMatrix, bool, error) {
		m, blocked, err := source.CostMatrix(ctx, room)
		if err != nil {
			return nil, false, fmt.Errorf("obstacles for %s: %w", room, err)
		}
		return m, blocked, nil
	}
}
