package domain

import "fmt"

// Highest cost a tile can hold. Tiles at this cost are impassable.
const MaxTileCost = 255

type Terrain uint8

const (
	TerrainPlain Terrain = iota
	TerrainSwamp
	TerrainWall
	TerrainRoad
)

// Per-terrain movement cost multipliers.
type TerrainCosts struct {
	Road  int
	Plain int
	Swamp int
}

func (c TerrainCosts) Validate() error {
	for name, v := range map[string]int{"road": c.Road, "plain": c.Plain, "swamp": c.Swamp} {
		if v <= 0 || v >= MaxTileCost {
			return fmt.Errorf("terrain costs: %s cost %d outside (0,%d)", name, v, MaxTileCost)
		}
	}
	return nil
}

// Static terrain of one room, row-major.
type RoomTerrain struct {
	tiles [RoomSize * RoomSize]Terrain
}

func (t *RoomTerrain) Get(x, y int) Terrain { return t.tiles[y*RoomSize+x] }

func (t *RoomTerrain) Set(x, y int, v Terrain) { t.tiles[y*RoomSize+x] = v }
