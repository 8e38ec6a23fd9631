package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"region-path-service/internal/domain"
	"region-path-service/internal/ports"
	"slices"
)

// Pick the cheapest room-level route from origin to any of targetRooms.
//
// A nil route with a nil error means no restriction is needed because origin
// is already a target room. Among successful routes the strictly shortest one
// wins; equal lengths keep the first target room in input order.
// When every attempt fails the result is ErrRouteUnreachable.
func SelectRoute(
	ctx context.Context,
	origin domain.RoomName,
	targetRooms []domain.RoomName,
	finder ports.RouteFinder,
	limits ports.RouteOptions,
) (domain.Route, error) {
	if slices.Contains(targetRooms, origin) {
		return nil, nil
	}
	if finder == nil {
		return nil, errors.New("select route: route finder is nil")
	}

	var best domain.Route
	seen := make(map[domain.RoomName]struct{}, len(targetRooms))
	for _, room := range targetRooms {
		if _, ok := seen[room]; ok {
			continue
		}
		seen[room] = struct{}{}

		route, err := finder.FindRoute(ctx, origin, room, limits)
		if err != nil {
			if !errors.Is(err, ports.ErrNoRoute) {
				log.Printf("select route: from=%s to=%s err=%v", origin, room, err)
			}
			continue
		}
		if len(route) == 0 {
			continue
		}
		if best == nil || len(route) < len(best) {
			best = route
		}
	}

	if best == nil {
		return nil, fmt.Errorf("select route: from %s to %v: %w", origin, targetRooms, ErrRouteUnreachable)
	}
	return best, nil
}
