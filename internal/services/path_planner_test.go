package services

import (
	"context"
	"errors"
	"region-path-service/internal/domain"
	"region-path-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okResult(path ...domain.Position) ports.SearchResult {
	return ports.SearchResult{Path: path, Ops: len(path)}
}

func TestGeneratePathSameRoomWithBody(t *testing.T) {
	origin := domain.NewPosition("W1N1", 10, 10)
	target := domain.NewPosition("W1N1", 20, 20)
	want := []domain.Position{domain.NewPosition("W1N1", 11, 11), domain.NewPosition("W1N1", 19, 19)}

	routes := &fakeRouteFinder{}
	search := &fakePathFinder{result: okResult(want...), visit: []domain.RoomName{"W1N1", "W2N1"}}
	planner := NewPlanner(search, routes, fakeTerrain{"W1N1": terrainWithRoad(5, 5)}, DefaultMoveOpts())

	opts := &domain.MoveOpts{Composition: &domain.AgentComposition{Body: repeat(seg(domain.Traction), 5)}}
	path, err := planner.GeneratePath(context.Background(), origin, []domain.MoveTarget{{Pos: target, Range: 1}}, opts)
	require.NoError(t, err)
	assert.Equal(t, want, path)

	// Route restriction is skipped when a target shares the origin room.
	assert.Empty(t, routes.calls)
	assert.Equal(t, DefaultMaxOpsPerRoom, search.opts.MaxOps)
	assert.Equal(t, []ports.Goal{{Pos: target, Range: 1}}, search.goals)

	// Pure traction: every terrain costs 1.
	assert.Equal(t, 1, search.opts.PlainCost)
	assert.Equal(t, 1, search.opts.SwampCost)
	assert.Equal(t, uint8(1), search.hooks["W1N1"].matrix.Get(5, 5))
	assert.Equal(t, uint8(domain.MaxTileCost), search.hooks["W1N1"].matrix.Get(0, 0))

	// Unrestricted search still blocks rooms with no known terrain.
	assert.True(t, search.hooks["W2N1"].blocked)
}

func TestGeneratePathIncompleteIsNotFound(t *testing.T) {
	search := &fakePathFinder{result: ports.SearchResult{
		Path:       []domain.Position{domain.NewPosition("W1N1", 11, 10)},
		Incomplete: true,
	}}
	planner := NewPlanner(search, nil, fakeTerrain{}, DefaultMoveOpts())

	path, err := planner.GeneratePath(context.Background(), domain.NewPosition("W1N1", 10, 10),
		[]domain.MoveTarget{{Pos: domain.NewPosition("W1N1", 40, 40)}}, nil)
	require.ErrorIs(t, err, ErrPathNotFound)
	assert.Nil(t, path)
}

func TestGeneratePathEmptyIsNotFound(t *testing.T) {
	planner := NewPlanner(&fakePathFinder{}, nil, fakeTerrain{}, DefaultMoveOpts())

	_, err := planner.GeneratePath(context.Background(), domain.NewPosition("W1N1", 10, 10),
		[]domain.MoveTarget{{Pos: domain.NewPosition("W1N1", 10, 10)}}, nil)
	require.ErrorIs(t, err, ErrPathNotFound)
}

func TestGeneratePathRestrictsToRoute(t *testing.T) {
	routes := &fakeRouteFinder{routes: map[domain.RoomName]domain.Route{
		"W1N1": {"W3N1", "W2N1", "W1N1"},
		"W2N1": {"W3N1", "W2N1"},
	}}
	terrain := fakeTerrain{
		"W3N1": &domain.RoomTerrain{},
		"W2N1": &domain.RoomTerrain{},
		"W1N1": &domain.RoomTerrain{},
		"W3N2": &domain.RoomTerrain{},
	}
	search := &fakePathFinder{
		result: okResult(domain.NewPosition("W2N1", 25, 25)),
		visit:  []domain.RoomName{"W3N1", "W2N1", "W1N1", "W3N2"},
	}
	planner := NewPlanner(search, routes, terrain, DefaultMoveOpts())

	targets := []domain.MoveTarget{
		{Pos: domain.NewPosition("W1N1", 25, 25), Range: 1},
		{Pos: domain.NewPosition("W2N1", 25, 25), Range: 1},
	}
	opts := &domain.MoveOpts{AvoidRooms: []domain.RoomName{"W3N2"}}

	_, err := planner.GeneratePath(context.Background(), domain.NewPosition("W3N1", 25, 25), targets, opts)
	require.NoError(t, err)

	assert.Equal(t, []domain.RoomName{"W3N2"}, routes.opts.AvoidRooms)
	assert.Equal(t, DefaultMaxRooms, routes.opts.MaxRooms)
	assert.Equal(t, 2*DefaultMaxOpsPerRoom, search.opts.MaxOps)

	assert.False(t, search.hooks["W3N1"].blocked)
	assert.False(t, search.hooks["W2N1"].blocked)
	assert.True(t, search.hooks["W1N1"].blocked, "W1N1 is off the selected route")
	assert.True(t, search.hooks["W3N2"].blocked)
}

func TestGeneratePathUnreachableRouteSearchesUnrestricted(t *testing.T) {
	search := &fakePathFinder{
		result: okResult(domain.NewPosition("W1N1", 1, 1)),
		visit:  []domain.RoomName{"W5N5"},
	}
	planner := NewPlanner(search, &fakeRouteFinder{}, fakeTerrain{"W5N5": &domain.RoomTerrain{}}, DefaultMoveOpts())

	_, err := planner.GeneratePath(context.Background(), domain.NewPosition("W3N1", 25, 25),
		[]domain.MoveTarget{{Pos: domain.NewPosition("W1N1", 1, 1)}}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxOpsPerRoom, search.opts.MaxOps)
	assert.False(t, search.hooks["W5N5"].blocked)
}

func TestGeneratePathBlocksAvoidedRooms(t *testing.T) {
	search := &fakePathFinder{
		result: okResult(domain.NewPosition("W1N1", 1, 1)),
		visit:  []domain.RoomName{"W3N1", "W5N5", "W6N6"},
	}
	terrain := fakeTerrain{"W3N1": &domain.RoomTerrain{}, "W5N5": &domain.RoomTerrain{}, "W6N6": &domain.RoomTerrain{}}
	planner := NewPlanner(search, &fakeRouteFinder{}, terrain, DefaultMoveOpts())

	_, err := planner.GeneratePath(context.Background(), domain.NewPosition("W3N1", 25, 25),
		[]domain.MoveTarget{{Pos: domain.NewPosition("W1N1", 1, 1)}},
		&domain.MoveOpts{AvoidRooms: []domain.RoomName{"W3N1", "W5N5"}})
	require.NoError(t, err)
	assert.False(t, search.hooks["W3N1"].blocked, "origin room stays open")
	assert.True(t, search.hooks["W5N5"].blocked)
	assert.False(t, search.hooks["W6N6"].blocked)
}

func TestGeneratePathExplicitBudgetCaps(t *testing.T) {
	search := &fakePathFinder{result: okResult(domain.NewPosition("W1N1", 1, 1))}
	planner := NewPlanner(search, nil, fakeTerrain{}, DefaultMoveOpts())

	_, err := planner.GeneratePath(context.Background(), domain.NewPosition("W1N1", 2, 2),
		[]domain.MoveTarget{{Pos: domain.NewPosition("W1N1", 1, 1)}}, &domain.MoveOpts{MaxOps: domain.Ptr(500)})
	require.NoError(t, err)
	assert.Equal(t, 500, search.opts.MaxOps)
}

func TestGeneratePathCostPrecedence(t *testing.T) {
	origin := domain.NewPosition("W1N1", 2, 2)
	targets := []domain.MoveTarget{{Pos: domain.NewPosition("W1N1", 30, 30)}}
	defaults := DefaultMoveOpts()
	defaults.SwampCost = domain.Ptr(8)

	cases := []struct {
		name      string
		opts      *domain.MoveOpts
		wantPlain int
		wantSwamp int
	}{
		{name: "configured defaults", opts: nil, wantPlain: 2, wantSwamp: 8},
		{name: "caller overrides", opts: &domain.MoveOpts{PlainCost: domain.Ptr(5)}, wantPlain: 5, wantSwamp: 8},
		{
			name: "body overrides caller",
			opts: &domain.MoveOpts{
				PlainCost:   domain.Ptr(5),
				Composition: &domain.AgentComposition{Body: []domain.BodySegment{seg(domain.Other), seg(domain.Traction)}},
			},
			wantPlain: 1, wantSwamp: 5,
		},
		{
			name: "body without traction keeps caller",
			opts: &domain.MoveOpts{
				PlainCost:   domain.Ptr(5),
				Composition: &domain.AgentComposition{Body: []domain.BodySegment{seg(domain.Cargo)}},
			},
			wantPlain: 5, wantSwamp: 8,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			search := &fakePathFinder{result: okResult(domain.NewPosition("W1N1", 3, 3))}
			planner := NewPlanner(search, nil, fakeTerrain{}, defaults)

			_, err := planner.GeneratePath(context.Background(), origin, targets, tc.opts)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPlain, search.opts.PlainCost)
			assert.Equal(t, tc.wantSwamp, search.opts.SwampCost)
		})
	}
}

func TestGeneratePathClonesCallerMatrix(t *testing.T) {
	callerMatrix := domain.NewCostMatrix()
	callerMatrix.Set(9, 9, 40)

	callback := func(_ context.Context, room domain.RoomName) (*domain.CostMatrix, bool, error) {
		switch room {
		case "W1N1":
			return callerMatrix, false, nil
		case "W1N2":
			return nil, true, nil
		case "W2N2":
			return nil, false, errors.New("store offline")
		}
		return nil, false, nil
	}

	terrain := fakeTerrain{
		"W1N1": terrainWithRoad(5, 5),
		"W1N2": &domain.RoomTerrain{},
		"W2N2": &domain.RoomTerrain{},
		"W2N1": terrainWithRoad(7, 7),
	}
	search := &fakePathFinder{
		result: okResult(domain.NewPosition("W1N1", 3, 3)),
		visit:  []domain.RoomName{"W1N1", "W1N2", "W2N2", "W2N1"},
	}
	planner := NewPlanner(search, nil, terrain, DefaultMoveOpts())

	_, err := planner.GeneratePath(context.Background(), domain.NewPosition("W1N1", 2, 2),
		[]domain.MoveTarget{{Pos: domain.NewPosition("W1N1", 30, 30)}},
		&domain.MoveOpts{RoadCost: domain.Ptr(3), RoomCallback: callback})
	require.NoError(t, err)

	got := search.hooks["W1N1"]
	require.NotNil(t, got.matrix)
	assert.NotSame(t, callerMatrix, got.matrix)
	assert.Equal(t, uint8(3), got.matrix.Get(5, 5))
	assert.Equal(t, uint8(40), got.matrix.Get(9, 9))
	assert.Equal(t, uint8(0), callerMatrix.Get(5, 5), "caller matrix must stay untouched")
	assert.Equal(t, uint8(0), callerMatrix.Get(0, 0))

	assert.True(t, search.hooks["W1N2"].blocked)
	assert.Error(t, search.hooks["W2N2"].err)

	// No overlay from the caller: a fresh matrix still receives road costs.
	assert.Equal(t, uint8(3), search.hooks["W2N1"].matrix.Get(7, 7))
}

func TestGeneratePathInvalidRequest(t *testing.T) {
	search := &fakePathFinder{}
	planner := NewPlanner(search, nil, fakeTerrain{}, DefaultMoveOpts())
	origin := domain.NewPosition("W1N1", 2, 2)

	cases := map[string]struct {
		origin  domain.Position
		targets []domain.MoveTarget
		opts    *domain.MoveOpts
	}{
		"no targets":     {origin: origin},
		"bad origin":     {origin: domain.NewPosition("W1N1", 60, 2), targets: []domain.MoveTarget{{Pos: origin}}},
		"negative range": {origin: origin, targets: []domain.MoveTarget{{Pos: origin, Range: -1}}},
		"bad room":       {origin: origin, targets: []domain.MoveTarget{{Pos: domain.NewPosition("nowhere", 1, 1)}}},
		"overflow room":  {origin: domain.NewPosition("W99999999999999999999N1", 1, 1), targets: []domain.MoveTarget{{Pos: origin}}},
		"bad cost":       {origin: origin, targets: []domain.MoveTarget{{Pos: origin}}, opts: &domain.MoveOpts{SwampCost: domain.Ptr(300)}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := planner.GeneratePath(context.Background(), tc.origin, tc.targets, tc.opts)
			require.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
	assert.False(t, search.called)
}

func TestGeneratePathSearchError(t *testing.T) {
	boom := errors.New("boom")
	planner := NewPlanner(&fakePathFinder{err: boom}, nil, fakeTerrain{}, DefaultMoveOpts())

	_, err := planner.GeneratePath(context.Background(), domain.NewPosition("W1N1", 2, 2),
		[]domain.MoveTarget{{Pos: domain.NewPosition("W1N1", 3, 3)}}, nil)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrPathNotFound)
}

func TestGeneratePathSearchRoomCapCoversRoute(t *testing.T) {
	routes := &fakeRouteFinder{routes: map[domain.RoomName]domain.Route{
		"W4N1": {"W1N1", "W2N1", "W3N1", "W4N1"},
	}}
	search := &fakePathFinder{result: okResult(domain.NewPosition("W4N1", 25, 25))}
	planner := NewPlanner(search, routes, fakeTerrain{}, DefaultMoveOpts())

	// Three hops fit a hop budget of three, but the route spans four rooms.
	_, err := planner.GeneratePath(context.Background(), domain.NewPosition("W1N1", 25, 25),
		[]domain.MoveTarget{{Pos: domain.NewPosition("W4N1", 25, 25)}}, &domain.MoveOpts{MaxRooms: domain.Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, routes.opts.MaxRooms)
	assert.Equal(t, 4, search.opts.MaxRooms)

	// Same-room searches keep the configured cap.
	_, err = planner.GeneratePath(context.Background(), domain.NewPosition("W1N1", 25, 25),
		[]domain.MoveTarget{{Pos: domain.NewPosition("W1N1", 30, 30)}}, &domain.MoveOpts{MaxRooms: domain.Ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, search.opts.MaxRooms)
}

func TestGeneratePathRequiresTerrain(t *testing.T) {
	search := &fakePathFinder{result: okResult(domain.NewPosition("W1N1", 3, 3))}
	planner := NewPlanner(search, nil, nil, DefaultMoveOpts())

	_, err := planner.GeneratePath(context.Background(), domain.NewPosition("W1N1", 2, 2),
		[]domain.MoveTarget{{Pos: domain.NewPosition("W1N1", 3, 3)}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terrain provider is nil")
	assert.False(t, search.called)
}
