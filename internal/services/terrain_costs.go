package services

import (
	"math"
	"region-path-service/internal/domain"
)

// Lower bound on the per-tile cost factor, so an agent without fatigue
// still pays 1 per road tile instead of 0.
const minCostFactor = 0.1

// Derive per-terrain movement costs from an agent's body.
//
// Fatigue comes from loaded cargo and other segments, recovery from traction.
// Costs are the ticks needed to cross a road, plain and swamp tile, reduced by
// their common divisor so they stay well below domain.MaxTileCost
// (the worst body, 1 traction + 49 other, yields 25/49/245).
//
// Without working traction the agent cannot move on its own; defaults are
// returned unchanged together with ErrInapplicableCostModel.
func DeriveTerrainCosts(agent domain.AgentComposition, defaults domain.TerrainCosts) (domain.TerrainCosts, error) {
	remaining := float64(agent.UsedCapacity)

	tractionPower := 0.0
	loadedCargo := 0
	otherParts := 0

	// Iterate right to left: cargo segments are filled in that order.
	for i := len(agent.Body) - 1; i >= 0; i-- {
		seg := agent.Body[i]
		if !seg.Active() {
			continue
		}

		switch seg.Type {
		case domain.Other:
			otherParts++
		case domain.Traction:
			tractionPower += 1 * seg.Multiplier()
		case domain.Cargo:
			// Empty cargo segments generate no fatigue.
			if remaining > 0 {
				loadedCargo++
				remaining -= domain.CargoCapacity * seg.Multiplier()
			}
		}
	}

	if tractionPower == 0 {
		return defaults, ErrInapplicableCostModel
	}

	fatigueFactor := float64(loadedCargo + otherParts)
	recoverFactor := tractionPower * 2
	cost := math.Max(fatigueFactor/recoverFactor, minCostFactor)

	costs, _ := reduceCosts(
		int(math.Ceil(cost)),
		int(math.Ceil(cost*2)),
		int(math.Ceil(cost*10)),
	)
	return costs, nil
}

// Divide road, plain and swamp by their greatest common divisor.
// Returns the reduced costs and the divisor used.
func reduceCosts(road, plain, swamp int) (domain.TerrainCosts, int) {
	norm := gcd(road, plain, swamp)
	if norm <= 1 {
		return domain.TerrainCosts{Road: road, Plain: plain, Swamp: swamp}, 1
	}
	return domain.TerrainCosts{Road: road / norm, Plain: plain / norm, Swamp: swamp / norm}, norm
}

func gcd(values ...int) int {
	result := 0
	for _, v := range values {
		a, b := result, v
		for b != 0 {
			a, b = b, a%b
		}
		result = a
	}
	if result < 0 {
		return -result
	}
	return result
}
