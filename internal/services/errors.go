package services

import "errors"

var (
	// The search found no complete path to any target within its budget.
	ErrPathNotFound = errors.New("path not found")

	// No room-level route reaches any target room. Planning continues unrestricted.
	ErrRouteUnreachable = errors.New("no route to any target room")

	// The agent has no working traction. Terrain costs fall back to the configured ones.
	ErrInapplicableCostModel = errors.New("cost model inapplicable: agent has no traction")

	// The planning request itself is malformed.
	ErrInvalidRequest = errors.New("invalid path request")
)
