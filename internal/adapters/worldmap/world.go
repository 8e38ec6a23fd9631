// Package worldmap loads a static world description from YAML and serves its
// room terrain and room-level routing.
package worldmap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"region-path-service/internal/domain"
	"region-path-service/internal/ports"
	"strings"

	"gopkg.in/yaml.v3"
)

// Terrain characters used in room rows.
const (
	plainChar = '.'
	swampChar = '~'
	wallChar  = '#'
	roadChar  = '='
)

// Exit directions, in RoomCoords.Neighbors order.
var exitNames = [4]string{"N", "E", "S", "W"}

type worldFile struct {
	Rooms   map[string]roomFile `yaml:"rooms"`
	Blocked []string            `yaml:"blocked"`
}

type roomFile struct {
	// Traversal weight for room-level routing, defaults to 1.
	Weight float64 `yaml:"weight"`
	// Open exits, any of N/E/S/W. Empty means all four.
	Exits []string `yaml:"exits"`
	// Up to RoomSize rows of up to RoomSize characters. Missing tiles are plain.
	Terrain   []string       `yaml:"terrain"`
	Obstacles []obstacleFile `yaml:"obstacles"`
}

type obstacleFile struct {
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
	Cost int `yaml:"cost"`
}

type room struct {
	coords    domain.RoomCoords
	weight    float64
	exits     [4]bool
	terrain   *domain.RoomTerrain
	obstacles *domain.CostMatrix
}

// World is read-only after load and safe for concurrent use.
type World struct {
	rooms   map[domain.RoomName]*room
	blocked []domain.RoomName
}

// Read and parse a YAML world file.
func LoadWorld(path string) (*World, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load world: read %q: %w", path, err)
	}
	w, err := ParseWorld(b)
	if err != nil {
		return nil, fmt.Errorf("load world %q: %w", path, err)
	}
	return w, nil
}

func ParseWorld(data []byte) (*World, error) {
	var f worldFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse world: decode yaml: %w", err)
	}
	if len(f.Rooms) == 0 {
		return nil, errors.New("parse world: no rooms defined")
	}

	w := &World{rooms: make(map[domain.RoomName]*room, len(f.Rooms))}
	for name, rf := range f.Rooms {
		r, err := parseRoom(domain.RoomName(name), rf)
		if err != nil {
			return nil, fmt.Errorf("parse world: %w", err)
		}
		w.rooms[domain.RoomName(name)] = r
	}

	for _, name := range f.Blocked {
		rn := domain.RoomName(strings.TrimSpace(name))
		if !rn.Valid() {
			return nil, fmt.Errorf("parse world: invalid blocked room %q", name)
		}
		w.blocked = append(w.blocked, rn)
	}
	return w, nil
}

func parseRoom(name domain.RoomName, rf roomFile) (*room, error) {
	coords, err := domain.ParseRoomName(name)
	if err != nil {
		return nil, err
	}

	r := &room{coords: coords, weight: rf.Weight, terrain: &domain.RoomTerrain{}}
	if r.weight == 0 {
		r.weight = 1
	}
	if r.weight < 0 {
		return nil, fmt.Errorf("room %s: weight must be positive, got %v", name, rf.Weight)
	}

	if len(rf.Exits) == 0 {
		r.exits = [4]bool{true, true, true, true}
	}
	for _, e := range rf.Exits {
		i := exitIndex(e)
		if i < 0 {
			return nil, fmt.Errorf("room %s: unknown exit %q", name, e)
		}
		r.exits[i] = true
	}

	if len(rf.Terrain) > domain.RoomSize {
		return nil, fmt.Errorf("room %s: %d terrain rows, max %d", name, len(rf.Terrain), domain.RoomSize)
	}
	for y, row := range rf.Terrain {
		if len(row) > domain.RoomSize {
			return nil, fmt.Errorf("room %s: terrain row %d has %d tiles, max %d", name, y, len(row), domain.RoomSize)
		}
		for x, c := range []byte(row) {
			t, ok := terrainFromChar(c)
			if !ok {
				return nil, fmt.Errorf("room %s: unknown terrain %q at (%d,%d)", name, c, x, y)
			}
			r.terrain.Set(x, y, t)
		}
	}

	if len(rf.Obstacles) > 0 {
		r.obstacles = domain.NewCostMatrix()
	}
	for _, o := range rf.Obstacles {
		if o.X < 0 || o.X >= domain.RoomSize || o.Y < 0 || o.Y >= domain.RoomSize {
			return nil, fmt.Errorf("room %s: obstacle (%d,%d) outside room", name, o.X, o.Y)
		}
		cost := o.Cost
		if cost == 0 {
			cost = domain.MaxTileCost
		}
		if cost < 0 || cost > domain.MaxTileCost {
			return nil, fmt.Errorf("room %s: obstacle cost %d outside [1,%d]", name, o.Cost, domain.MaxTileCost)
		}
		r.obstacles.Set(o.X, o.Y, uint8(cost))
	}
	return r, nil
}

func terrainFromChar(c byte) (domain.Terrain, bool) {
	switch c {
	case plainChar, ' ':
		return domain.TerrainPlain, true
	case swampChar:
		return domain.TerrainSwamp, true
	case wallChar:
		return domain.TerrainWall, true
	case roadChar:
		return domain.TerrainRoad, true
	}
	return 0, false
}

func exitIndex(name string) int {
	for i, e := range exitNames {
		if strings.EqualFold(strings.TrimSpace(name), e) {
			return i
		}
	}
	return -1
}

// RoomTerrain implements ports.TerrainProvider.
// The returned terrain is shared and must not be modified.
func (w *World) RoomTerrain(_ context.Context, name domain.RoomName) (*domain.RoomTerrain, error) {
	r, ok := w.rooms[name]
	if !ok {
		return nil, fmt.Errorf("room terrain %s: %w", name, ports.ErrUnknownRoom)
	}
	return r.terrain, nil
}

// Has reports whether the room is part of the world.
func (w *World) Has(name domain.RoomName) bool {
	_, ok := w.rooms[name]
	return ok
}

// Static obstacle overlays by room. Each matrix is a fresh copy.
func (w *World) Obstacles() map[domain.RoomName]*domain.CostMatrix {
	out := make(map[domain.RoomName]*domain.CostMatrix)
	for name, r := range w.rooms {
		if r.obstacles != nil {
			out[name] = r.obstacles.Clone()
		}
	}
	return out
}

// Rooms listed as blocked in the world file.
func (w *World) Blocked() []domain.RoomName {
	return append([]domain.RoomName(nil), w.blocked...)
}

// Rooms reachable in one step from name through its open exits.
func (w *World) exits(name domain.RoomName) []domain.RoomName {
	r, ok := w.rooms[name]
	if !ok {
		return nil
	}
	var out []domain.RoomName
	for i, c := range r.coords.Neighbors() {
		if !r.exits[i] {
			continue
		}
		if n := c.Name(); w.Has(n) {
			out = append(out, n)
		}
	}
	return out
}
