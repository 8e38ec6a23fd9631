package ports

import (
	"context"
	"region-path-service/internal/domain"
)

// A search goal: any tile within Range of Pos satisfies it.
type Goal struct {
	Pos   domain.Position
	Range int
}

// Parameters for a single grid search.
type SearchOptions struct {
	// Node expansions allowed before the search gives up.
	MaxOps int
	// Distinct rooms the search may open.
	MaxRooms        int
	PlainCost       int
	SwampCost       int
	HeuristicWeight float64
	// Called at most once per room the search enters.
	RoomCallback domain.RoomCallback
}

// Outcome of a grid search.
// Incomplete is set when no goal was reached; Path then leads to the closest tile found.
type SearchResult struct {
	Path       []domain.Position
	Ops        int
	Cost       int
	Incomplete bool
}

// Contract for the weighted tile search across rooms.
type PathFinder interface {
	// Search for the cheapest path from origin to any goal.
	// The returned path excludes origin and ends on the goal tile.
	Search(ctx context.Context, origin domain.Position, goals []Goal, opts SearchOptions) (SearchResult, error)
}
