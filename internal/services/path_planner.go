package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"region-path-service/internal/domain"
	"region-path-service/internal/platform/obs"
	"region-path-service/internal/ports"
	"slices"
)

// Planner turns an origin, a set of move targets and move options into a
// single search over the tile grid.
//
// It narrows the search to the cheapest room route when the targets lie in
// other rooms, derives terrain costs from the agent's body when one is given,
// and prepares every room's cost overlay before the search sees it.
// A Planner holds no per-call state and is safe for concurrent use.
type Planner struct {
	Search   ports.PathFinder
	Routes   ports.RouteFinder
	Terrain  ports.TerrainProvider
	Defaults domain.MoveOpts
}

func NewPlanner(
	search ports.PathFinder,
	routes ports.RouteFinder,
	terrain ports.TerrainProvider,
	defaults domain.MoveOpts,
) *Planner {
	return &Planner{Search: search, Routes: routes, Terrain: terrain, Defaults: defaults}
}

// Generate a path from origin to the nearest acceptable target.
//
// The path excludes origin and ends inside the reached target's range.
// ErrPathNotFound is returned when the search comes back empty or incomplete.
func (p *Planner) GeneratePath(
	ctx context.Context,
	origin domain.Position,
	targets []domain.MoveTarget,
	opts *domain.MoveOpts,
) (_ []domain.Position, err error) {
	defer obs.Time(ctx, "planner.GeneratePath")(&err)

	if p.Search == nil {
		return nil, errors.New("generate path: path finder is nil")
	}
	if p.Terrain == nil {
		return nil, errors.New("generate path: terrain provider is nil")
	}
	if err := validateRequest(origin, targets); err != nil {
		return nil, fmt.Errorf("generate path: %w: %v", ErrInvalidRequest, err)
	}

	cfg := ResolveMoveOpts(p.Defaults, opts)

	// Body-derived costs take precedence over configured and caller costs.
	if cfg.Composition != nil {
		costs, err := DeriveTerrainCosts(*cfg.Composition, cfg.Costs)
		if err != nil {
			log.Printf("op=planner.GeneratePath origin=%s fallback=terrain_costs err=%v", origin, err)
		}
		cfg.Costs = costs
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generate path: %w: %v", ErrInvalidRequest, err)
	}

	// Limit the search space to the cheapest room route when no target shares the origin room.
	var route domain.Route
	rooms := domain.TargetRooms(targets)
	if p.Routes != nil && !slices.Contains(rooms, origin.Room) {
		route, err = SelectRoute(ctx, origin.Room, rooms, p.Routes, ports.RouteOptions{
			AvoidRooms: cfg.AvoidRooms,
			MaxRooms:   cfg.MaxRooms,
		})
		if err != nil {
			if !errors.Is(err, ErrRouteUnreachable) {
				return nil, fmt.Errorf("generate path: %w", err)
			}
			log.Printf("op=planner.GeneratePath origin=%s fallback=unrestricted err=%v", origin, err)
			route = nil
		}
	}

	goals := make([]ports.Goal, 0, len(targets))
	for _, t := range targets {
		goals = append(goals, ports.Goal{Pos: t.Pos, Range: t.Range})
	}

	// MaxRooms bounds route hops, so a full-length route holds one room more than that.
	result, err := p.Search.Search(ctx, origin, goals, ports.SearchOptions{
		MaxOps:          cfg.OpsBudget(len(route)),
		MaxRooms:        max(cfg.MaxRooms, len(route)),
		PlainCost:       cfg.Costs.Plain,
		SwampCost:       cfg.Costs.Swamp,
		HeuristicWeight: cfg.HeuristicWeight,
		RoomCallback:    p.roomCallback(cfg, route, origin.Room),
	})
	if err != nil {
		return nil, fmt.Errorf("generate path: search from %s: %w", origin, err)
	}

	if len(result.Path) == 0 || result.Incomplete {
		return nil, fmt.Errorf("generate path: from %s after %d ops: %w", origin, result.Ops, ErrPathNotFound)
	}

	return result.Path, nil
}

// Build the per-room hook handed to the search.
// Rooms off the selected route, and avoided rooms other than the origin's, are
// blocked without consulting anything else.
// The caller's matrix is cloned before terrain costs are written into it.
func (p *Planner) roomCallback(cfg MoveConfig, route domain.Route, originRoom domain.RoomName) domain.RoomCallback {
	return func(ctx context.Context, room domain.RoomName) (*domain.CostMatrix, bool, error) {
		if route != nil && !route.Contains(room) {
			return nil, true, nil
		}
		if room != originRoom && slices.Contains(cfg.AvoidRooms, room) {
			return nil, true, nil
		}

		var base *domain.CostMatrix
		if cfg.RoomCallback != nil {
			m, blocked, err := cfg.RoomCallback(ctx, room)
			if err != nil {
				return nil, false, fmt.Errorf("room callback %s: %w", room, err)
			}
			if blocked {
				return nil, true, nil
			}
			base = m
		}

		matrix := domain.NewCostMatrix()
		if base != nil {
			matrix = base.Clone()
		}

		terrain, err := p.Terrain.RoomTerrain(ctx, room)
		if errors.Is(err, ports.ErrUnknownRoom) {
			return nil, true, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("room terrain %s: %w", room, err)
		}

		return MutateCostMatrix(matrix, terrain, cfg.Costs), false, nil
	}
}

func validateRequest(origin domain.Position, targets []domain.MoveTarget) error {
	if err := origin.Validate(); err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	if len(targets) == 0 {
		return errors.New("at least one target is required")
	}
	for i, t := range targets {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("target #%d: %w", i+1, err)
		}
	}
	return nil
}
