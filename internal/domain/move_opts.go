package domain

import "context"

// Yields the cost overlay for a room.
// blocked=true keeps the search out of the room. A nil matrix with blocked=false
// means the callback has nothing for the room.
type RoomCallback func(ctx context.Context, room RoomName) (matrix *CostMatrix, blocked bool, err error)

// Options for a single path planning call.
// A nil field is absent and falls back to the next lower configuration layer.
type MoveOpts struct {
	MaxOps          *int
	MaxOpsPerRoom   *int
	MaxRooms        *int
	RoadCost        *int
	PlainCost       *int
	SwampCost       *int
	HeuristicWeight *float64
	AvoidRooms      []RoomName
	RoomCallback    RoomCallback

	// When set, terrain costs are derived from the agent's body.
	Composition *AgentComposition
}

// Pointer helper for option literals.
func Ptr[T any](v T) *T { return &v }
