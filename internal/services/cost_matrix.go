package services

import "region-path-service/internal/domain"

// Apply terrain costs to an overlay in place.
//
// Roads without an explicit overlay value get costs.Road and walls become
// impassable. Plain and swamp tiles stay at zero; the search prices them
// with its own plain/swamp costs. Non-zero overlay values are kept.
func MutateCostMatrix(matrix *domain.CostMatrix, terrain *domain.RoomTerrain, costs domain.TerrainCosts) *domain.CostMatrix {
	for y := 0; y < domain.RoomSize; y++ {
		for x := 0; x < domain.RoomSize; x++ {
			switch terrain.Get(x, y) {
			case domain.TerrainWall:
				matrix.Set(x, y, domain.MaxTileCost)
			case domain.TerrainRoad:
				if matrix.Get(x, y) == 0 {
					matrix.Set(x, y, uint8(costs.Road))
				}
			}
		}
	}
	return matrix
}
