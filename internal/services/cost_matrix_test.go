package services

import (
	"region-path-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMutateCostMatrix(t *testing.T) {
	terrain := &domain.RoomTerrain{}
	terrain.Set(1, 1, domain.TerrainRoad)
	terrain.Set(2, 2, domain.TerrainRoad)
	terrain.Set(3, 3, domain.TerrainWall)
	terrain.Set(4, 4, domain.TerrainSwamp)

	m := domain.NewCostMatrix()
	m.Set(2, 2, 30)
	m.Set(5, 5, 7)

	got := MutateCostMatrix(m, terrain, domain.TerrainCosts{Road: 3, Plain: 4, Swamp: 9})

	assert.Same(t, m, got)
	assert.EqualValues(t, 3, got.Get(1, 1), "road takes the road cost")
	assert.EqualValues(t, 30, got.Get(2, 2), "explicit overlay wins over road")
	assert.EqualValues(t, domain.MaxTileCost, got.Get(3, 3), "walls are impassable")
	assert.EqualValues(t, 0, got.Get(4, 4), "swamp is priced by the search")
	assert.EqualValues(t, 0, got.Get(0, 0), "plain is priced by the search")
	assert.EqualValues(t, 7, got.Get(5, 5))
}
