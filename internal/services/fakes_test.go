package services

import (
	"context"
	"region-path-service/internal/domain"
	"region-path-service/internal/ports"
)

type fakeRouteFinder struct {
	routes map[domain.RoomName]domain.Route
	errs   map[domain.RoomName]error
	calls  []domain.RoomName
	opts   ports.RouteOptions
}

func (f *fakeRouteFinder) FindRoute(_ context.Context, _, to domain.RoomName, opts ports.RouteOptions) (domain.Route, error) {
	f.calls = append(f.calls, to)
	f.opts = opts
	if err, ok := f.errs[to]; ok {
		return nil, err
	}
	r, ok := f.routes[to]
	if !ok {
		return nil, ports.ErrNoRoute
	}
	return r, nil
}

type hookCall struct {
	matrix  *domain.CostMatrix
	blocked bool
	err     error
}

// Records what the planner hands to the search and runs the room hook for each visit room.
type fakePathFinder struct {
	result ports.SearchResult
	err    error
	visit  []domain.RoomName

	called bool
	origin domain.Position
	goals  []ports.Goal
	opts   ports.SearchOptions
	hooks  map[domain.RoomName]hookCall
}

func (f *fakePathFinder) Search(ctx context.Context, origin domain.Position, goals []ports.Goal, opts ports.SearchOptions) (ports.SearchResult, error) {
	f.called = true
	f.origin = origin
	f.goals = goals
	f.opts = opts
	f.hooks = make(map[domain.RoomName]hookCall, len(f.visit))
	for _, room := range f.visit {
		m, blocked, err := opts.RoomCallback(ctx, room)
		f.hooks[room] = hookCall{matrix: m, blocked: blocked, err: err}
	}
	return f.result, f.err
}

type fakeTerrain map[domain.RoomName]*domain.RoomTerrain

func (f fakeTerrain) RoomTerrain(_ context.Context, room domain.RoomName) (*domain.RoomTerrain, error) {
	t, ok := f[room]
	if !ok {
		return nil, ports.ErrUnknownRoom
	}
	return t, nil
}

func terrainWithRoad(x, y int) *domain.RoomTerrain {
	t := &domain.RoomTerrain{}
	t.Set(x, y, domain.TerrainRoad)
	t.Set(0, 0, domain.TerrainWall)
	return t
}
