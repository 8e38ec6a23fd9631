// Package pathfinder implements the tile-level path search used by the planner.
//
// GridSearch runs A* over world tile coordinates. Rooms are RoomSize×RoomSize
// blocks laid edge to edge, so a step off one room's border lands on the
// neighbouring room's border. Tile costs come from each room's cost overlay,
// falling back to terrain: swamp uses SwampCost, plain and road use PlainCost,
// walls are impassable. Only rooms the search can actually enter count
// against MaxRooms.
package pathfinder

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"math"
	"region-path-service/internal/domain"
	"region-path-service/internal/platform/obs"
	"region-path-service/internal/ports"
)

// Ops between context checks.
const cancelCheckInterval = 1024

var directions = [8][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

// GridSearch implements ports.PathFinder.
// It is stateless between calls and safe for concurrent use.
type GridSearch struct {
	Terrain ports.TerrainProvider
}

func NewGridSearch(terrain ports.TerrainProvider) *GridSearch {
	return &GridSearch{Terrain: terrain}
}

type roomState struct {
	blocked bool
	matrix  *domain.CostMatrix
	terrain *domain.RoomTerrain
}

type goal struct {
	x, y int
	rng  int
}

// search holds the mutable state of one Search call.
type search struct {
	ctx     context.Context
	terrain ports.TerrainProvider
	opts    ports.SearchOptions
	goals   []goal
	rooms   map[domain.RoomName]*roomState
	opened  int
	// Heuristic cost of one tile: the cheapest terrain step times the weight.
	tileEstimate float64
}

// Search for the cheapest path from origin to any goal within opts.MaxOps expansions.
func (g *GridSearch) Search(
	ctx context.Context,
	origin domain.Position,
	goals []ports.Goal,
	opts ports.SearchOptions,
) (_ ports.SearchResult, err error) {
	defer obs.Time(ctx, "pathfinder.Search")(&err)

	if len(goals) == 0 {
		return ports.SearchResult{}, errors.New("grid search: at least one goal is required")
	}
	if opts.PlainCost <= 0 || opts.SwampCost <= 0 {
		return ports.SearchResult{}, fmt.Errorf("grid search: terrain costs must be positive (plain=%d, swamp=%d)", opts.PlainCost, opts.SwampCost)
	}
	if opts.HeuristicWeight <= 0 {
		opts.HeuristicWeight = 1
	}

	s := &search{
		ctx:     ctx,
		terrain: g.Terrain,
		opts:    opts,
		goals:   make([]goal, 0, len(goals)),
		rooms:   make(map[domain.RoomName]*roomState),

		tileEstimate: float64(min(opts.PlainCost, opts.SwampCost)) * opts.HeuristicWeight,
	}
	for _, gl := range goals {
		x, y := gl.Pos.WorldXY()
		s.goals = append(s.goals, goal{x: x, y: y, rng: gl.Range})
	}

	ox, oy := origin.WorldXY()
	return s.run(tile{x: ox, y: oy})
}

func (s *search) run(start tile) (ports.SearchResult, error) {
	if _, err := s.room(domain.PositionFromWorld(start.x, start.y).Room); err != nil {
		return ports.SearchResult{}, err
	}

	open := make(priorityQueue, 0, 256)
	heap.Init(&open)

	gScore := map[tile]int{start: 0}
	cameFrom := make(map[tile]tile)
	closed := make(map[tile]bool)

	startH := s.heuristic(start)
	heap.Push(&open, &queueItem{tile: start, g: 0, h: startH, f: startH})

	best, bestH := start, startH
	ops := 0

	for open.Len() > 0 {
		item := heap.Pop(&open).(*queueItem)
		current := item.tile
		if closed[current] || item.g > gScore[current] {
			continue
		}

		if s.reached(current) {
			return ports.SearchResult{
				Path: reconstructPath(cameFrom, current, start),
				Ops:  ops,
				Cost: item.g,
			}, nil
		}

		if ops >= s.opts.MaxOps {
			break
		}
		ops++
		closed[current] = true

		if item.h < bestH || (item.h == bestH && item.g < gScore[best]) {
			best, bestH = current, item.h
		}

		if ops%cancelCheckInterval == 0 {
			if err := s.ctx.Err(); err != nil {
				return ports.SearchResult{}, err
			}
		}

		for _, d := range directions {
			next := tile{x: current.x + d[0], y: current.y + d[1]}
			if closed[next] {
				continue
			}

			cost, ok, err := s.cost(next)
			if err != nil {
				return ports.SearchResult{}, err
			}
			if !ok {
				continue
			}

			tentative := item.g + cost
			if prev, seen := gScore[next]; seen && tentative >= prev {
				continue
			}
			gScore[next] = tentative
			cameFrom[next] = current

			h := s.heuristic(next)
			heap.Push(&open, &queueItem{tile: next, g: tentative, h: h, f: float64(tentative) + h})
		}
	}

	return ports.SearchResult{
		Path:       reconstructPath(cameFrom, best, start),
		Ops:        ops,
		Cost:       gScore[best],
		Incomplete: true,
	}, nil
}

// Cost of stepping onto t; ok=false when t cannot be entered.
func (s *search) cost(t tile) (int, bool, error) {
	pos := domain.PositionFromWorld(t.x, t.y)
	r, err := s.room(pos.Room)
	if err != nil {
		return 0, false, err
	}
	if r.blocked {
		return 0, false, nil
	}

	if v := r.matrix.Get(pos.X, pos.Y); v > 0 {
		if v >= domain.MaxTileCost {
			return 0, false, nil
		}
		return int(v), true, nil
	}

	if r.terrain == nil {
		return s.opts.PlainCost, true, nil
	}
	switch r.terrain.Get(pos.X, pos.Y) {
	case domain.TerrainWall:
		return 0, false, nil
	case domain.TerrainSwamp:
		return s.opts.SwampCost, true, nil
	}
	return s.opts.PlainCost, true, nil
}

// Load a room on first use. The room callback runs at most once per room.
// Blocked and unknown rooms are remembered but do not use up a MaxRooms slot.
func (s *search) room(name domain.RoomName) (*roomState, error) {
	if r, ok := s.rooms[name]; ok {
		return r, nil
	}

	r := &roomState{blocked: true}
	s.rooms[name] = r

	if s.opts.RoomCallback != nil {
		m, blocked, err := s.opts.RoomCallback(s.ctx, name)
		if err != nil {
			return nil, fmt.Errorf("grid search: room callback %s: %w", name, err)
		}
		if blocked {
			return r, nil
		}
		r.matrix = m
	}
	if r.matrix == nil {
		r.matrix = domain.NewCostMatrix()
	}

	if s.terrain != nil {
		t, err := s.terrain.RoomTerrain(s.ctx, name)
		if errors.Is(err, ports.ErrUnknownRoom) {
			return r, nil
		}
		if err != nil {
			return nil, fmt.Errorf("grid search: terrain %s: %w", name, err)
		}
		r.terrain = t
	}

	if s.opts.MaxRooms > 0 && s.opened >= s.opts.MaxRooms {
		return r, nil
	}
	s.opened++
	r.blocked = false
	return r, nil
}

func (s *search) reached(t tile) bool {
	for _, g := range s.goals {
		if chebyshev(t, g) <= g.rng {
			return true
		}
	}
	return false
}

// Tiles left to the nearest goal's range, priced at the cheapest terrain step.
// Road overlays can cost less than that, so paths over roads are not guaranteed optimal.
func (s *search) heuristic(t tile) float64 {
	nearest := math.MaxInt
	for _, g := range s.goals {
		nearest = min(nearest, max(0, chebyshev(t, g)-g.rng))
	}
	return float64(nearest) * s.tileEstimate
}

func chebyshev(t tile, g goal) int {
	dx, dy := t.x-g.x, t.y-g.y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return max(dx, dy)
}

// Path from start (excluded) to current (included).
func reconstructPath(cameFrom map[tile]tile, current, start tile) []domain.Position {
	var rev []tile
	for current != start {
		rev = append(rev, current)
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		current = prev
	}

	path := make([]domain.Position, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, domain.PositionFromWorld(rev[i].x, rev[i].y))
	}
	return path
}
