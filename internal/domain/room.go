package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// Width and height of a room in tiles.
const RoomSize = 50

// Identifies a single room (region) of the world, e.g. "W1N1" or "E3S7".
type RoomName string

// Largest room index accepted on either axis. Keeps world tile coordinates far from int overflow.
const maxRoomIndex = 1 << 20

var roomNamePattern = regexp.MustCompile(`^([WE])(\d+)([NS])(\d+)$`)

// Room position on the world grid.
// West and north rooms sit on the negative side: W0 is x=-1, E0 is x=0, N0 is y=-1, S0 is y=0.
type RoomCoords struct {
	X int
	Y int
}

// Parse a room name into its world room coordinates.
func ParseRoomName(name RoomName) (RoomCoords, error) {
	m := roomNamePattern.FindStringSubmatch(string(name))
	if m == nil {
		return RoomCoords{}, fmt.Errorf("parse room name: invalid room name %q", name)
	}

	h, err := parseRoomIndex(m[2])
	if err != nil {
		return RoomCoords{}, fmt.Errorf("parse room name %q: %w", name, err)
	}
	v, err := parseRoomIndex(m[4])
	if err != nil {
		return RoomCoords{}, fmt.Errorf("parse room name %q: %w", name, err)
	}

	c := RoomCoords{X: h, Y: v}
	if m[1] == "W" {
		c.X = -h - 1
	}
	if m[3] == "N" {
		c.Y = -v - 1
	}
	return c, nil
}

func parseRoomIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n > maxRoomIndex {
		return 0, fmt.Errorf("room index %d exceeds %d", n, maxRoomIndex)
	}
	return n, nil
}

// Name returns the room name for world room coordinates.
func (c RoomCoords) Name() RoomName {
	horizontal := fmt.Sprintf("E%d", c.X)
	if c.X < 0 {
		horizontal = fmt.Sprintf("W%d", -c.X-1)
	}
	vertical := fmt.Sprintf("S%d", c.Y)
	if c.Y < 0 {
		vertical = fmt.Sprintf("N%d", -c.Y-1)
	}
	return RoomName(horizontal + vertical)
}

// Rooms sharing an edge with c, in N, E, S, W order.
func (c RoomCoords) Neighbors() []RoomCoords {
	return []RoomCoords{
		{X: c.X, Y: c.Y - 1},
		{X: c.X + 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X - 1, Y: c.Y},
	}
}

// Report whether the name parses as a room name with in-range indices.
func (r RoomName) Valid() bool {
	_, err := ParseRoomName(r)
	return err == nil
}

func (r RoomName) String() string { return string(r) }
