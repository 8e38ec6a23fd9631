package services

import (
	"fmt"
	"region-path-service/internal/domain"
)

// System defaults used when neither configuration nor caller set a value.
const (
	DefaultMaxOps          = 100000
	DefaultMaxOpsPerRoom   = 2000
	DefaultMaxRooms        = 16
	DefaultRoadCost        = 1
	DefaultPlainCost       = 2
	DefaultSwampCost       = 10
	DefaultHeuristicWeight = 1.2
)

// Built-in move options, every field present.
func DefaultMoveOpts() domain.MoveOpts {
	return domain.MoveOpts{
		MaxOps:          domain.Ptr(DefaultMaxOps),
		MaxOpsPerRoom:   domain.Ptr(DefaultMaxOpsPerRoom),
		MaxRooms:        domain.Ptr(DefaultMaxRooms),
		RoadCost:        domain.Ptr(DefaultRoadCost),
		PlainCost:       domain.Ptr(DefaultPlainCost),
		SwampCost:       domain.Ptr(DefaultSwampCost),
		HeuristicWeight: domain.Ptr(DefaultHeuristicWeight),
	}
}

// Fully resolved options for one planning call. Built once, never mutated.
type MoveConfig struct {
	MaxOps          int
	MaxOpsPerRoom   int
	MaxRooms        int
	Costs           domain.TerrainCosts
	HeuristicWeight float64
	AvoidRooms      []domain.RoomName
	RoomCallback    domain.RoomCallback
	Composition     *domain.AgentComposition
}

// Merge field by field: built-in defaults < defaults < opts.
// Terrain costs derived from a body are applied later by the planner.
func ResolveMoveOpts(defaults domain.MoveOpts, opts *domain.MoveOpts) MoveConfig {
	layers := []*domain.MoveOpts{&defaults}
	if opts != nil {
		layers = append(layers, opts)
	}

	cfg := MoveConfig{
		MaxOps:          DefaultMaxOps,
		MaxOpsPerRoom:   DefaultMaxOpsPerRoom,
		MaxRooms:        DefaultMaxRooms,
		Costs:           domain.TerrainCosts{Road: DefaultRoadCost, Plain: DefaultPlainCost, Swamp: DefaultSwampCost},
		HeuristicWeight: DefaultHeuristicWeight,
	}
	for _, o := range layers {
		override(&cfg.MaxOps, o.MaxOps)
		override(&cfg.MaxOpsPerRoom, o.MaxOpsPerRoom)
		override(&cfg.MaxRooms, o.MaxRooms)
		override(&cfg.Costs.Road, o.RoadCost)
		override(&cfg.Costs.Plain, o.PlainCost)
		override(&cfg.Costs.Swamp, o.SwampCost)
		override(&cfg.HeuristicWeight, o.HeuristicWeight)
		if o.AvoidRooms != nil {
			cfg.AvoidRooms = append([]domain.RoomName(nil), o.AvoidRooms...)
		}
		if o.RoomCallback != nil {
			cfg.RoomCallback = o.RoomCallback
		}
		if o.Composition != nil {
			cfg.Composition = o.Composition
		}
	}
	return cfg
}

func (c MoveConfig) Validate() error {
	if c.MaxOps < 0 || c.MaxOpsPerRoom < 0 || c.MaxRooms < 0 {
		return fmt.Errorf("move opts: budgets must not be negative (max_ops=%d, max_ops_per_room=%d, max_rooms=%d)",
			c.MaxOps, c.MaxOpsPerRoom, c.MaxRooms)
	}
	if c.HeuristicWeight <= 0 {
		return fmt.Errorf("move opts: heuristic weight must be positive (got %v)", c.HeuristicWeight)
	}
	if err := c.Costs.Validate(); err != nil {
		return fmt.Errorf("move opts: %w", err)
	}
	return nil
}

// Operation budget for a search restricted to routeRooms rooms.
func (c MoveConfig) OpsBudget(routeRooms int) int {
	return min(c.MaxOps, c.MaxOpsPerRoom*max(1, routeRooms))
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
