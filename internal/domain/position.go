package domain

import "fmt"

// Immutable tile position inside a room.
type Position struct {
	Room RoomName
	X    int
	Y    int
}

func NewPosition(room RoomName, x, y int) Position {
	return Position{Room: room, X: x, Y: y}
}

// Validate the room name and in-room coordinates.
func (p Position) Validate() error {
	if !p.Room.Valid() {
		return fmt.Errorf("position: invalid room name %q", p.Room)
	}
	if p.X < 0 || p.X >= RoomSize || p.Y < 0 || p.Y >= RoomSize {
		return fmt.Errorf("position: coordinates (%d,%d) outside room %s", p.X, p.Y, p.Room)
	}
	return nil
}

// Global tile coordinates across all rooms.
// The room name must be valid; an invalid one maps to the E0S0 room.
func (p Position) WorldXY() (int, int) {
	c, _ := ParseRoomName(p.Room)
	return c.X*RoomSize + p.X, c.Y*RoomSize + p.Y
}

// Inverse of WorldXY.
func PositionFromWorld(wx, wy int) Position {
	rx, x := floorDiv(wx, RoomSize)
	ry, y := floorDiv(wy, RoomSize)
	return Position{Room: RoomCoords{X: rx, Y: ry}.Name(), X: x, Y: y}
}

// Chebyshev distance in tiles, across room borders.
func (p Position) RangeTo(other Position) int {
	ax, ay := p.WorldXY()
	bx, by := other.WorldXY()
	return max(abs(ax-bx), abs(ay-by))
}

func (p Position) String() string {
	return fmt.Sprintf("[%s %d,%d]", p.Room, p.X, p.Y)
}

func floorDiv(a, b int) (q, r int) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
