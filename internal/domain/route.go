package domain

// Ordered rooms from the origin room to a target room.
// Non-empty, starts at the origin room and never repeats a room.
type Route []RoomName

func (r Route) Contains(room RoomName) bool {
	for _, name := range r {
		if name == room {
			return true
		}
	}
	return false
}

// Number of room transitions along the route.
func (r Route) Hops() int {
	if len(r) == 0 {
		return 0
	}
	return len(r) - 1
}
