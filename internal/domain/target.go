package domain

import (
	"errors"
	"fmt"
)

// A destination the agent accepts reaching anywhere within Range tiles of Pos.
// Range 0 means the exact tile.
type MoveTarget struct {
	Pos   Position
	Range int
}

func (t MoveTarget) Validate() error {
	if err := t.Pos.Validate(); err != nil {
		return fmt.Errorf("move target: %w", err)
	}
	if t.Range < 0 {
		return errors.New("move target: range must not be negative")
	}
	return nil
}

// Distinct rooms among targets, in input order.
func TargetRooms(targets []MoveTarget) []RoomName {
	seen := make(map[RoomName]struct{}, len(targets))
	rooms := make([]RoomName, 0, len(targets))
	for _, t := range targets {
		if _, ok := seen[t.Pos.Room]; ok {
			continue
		}
		seen[t.Pos.Room] = struct{}{}
		rooms = append(rooms, t.Pos.Room)
	}
	return rooms
}
