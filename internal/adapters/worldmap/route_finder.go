package worldmap

import (
	"container/heap"
	"context"
	"fmt"
	"region-path-service/internal/domain"
	"region-path-service/internal/platform/obs"
	"region-path-service/internal/ports"
)

// RouteFinder implements ports.RouteFinder over the room graph of a World.
// Entering a room costs its weight; avoided and blocked rooms are never entered.
type RouteFinder struct {
	world   *World
	blocked map[domain.RoomName]bool
}

func NewRouteFinder(world *World) *RouteFinder {
	blocked := make(map[domain.RoomName]bool, len(world.blocked))
	for _, name := range world.blocked {
		blocked[name] = true
	}
	return &RouteFinder{world: world, blocked: blocked}
}

type routeNode struct {
	room  domain.RoomName
	cost  float64
	hops  int
	prev  *routeNode
	index int
}

type routeQueue []*routeNode

func (q routeQueue) Len() int { return len(q) }

func (q routeQueue) Less(i, j int) bool {
	if q[i].cost == q[j].cost {
		return q[i].hops < q[j].hops
	}
	return q[i].cost < q[j].cost
}

func (q routeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *routeQueue) Push(x any) {
	n := x.(*routeNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *routeQueue) Pop() any {
	old := *q
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	return n
}

// FindRoute returns the cheapest room sequence from `from` to `to`, both included.
// With opts.MaxRooms > 0 the route has at most that many room transitions.
func (f *RouteFinder) FindRoute(ctx context.Context, from, to domain.RoomName, opts ports.RouteOptions) (_ domain.Route, err error) {
	defer obs.Time(ctx, "worldmap.FindRoute")(&err)

	if !f.world.Has(from) {
		return nil, fmt.Errorf("find route %s->%s: origin: %w", from, to, ports.ErrUnknownRoom)
	}
	if !f.world.Has(to) {
		return nil, fmt.Errorf("find route %s->%s: %w", from, to, ports.ErrNoRoute)
	}
	if from == to {
		return domain.Route{from}, nil
	}

	avoid := make(map[domain.RoomName]bool, len(opts.AvoidRooms))
	for _, name := range opts.AvoidRooms {
		avoid[name] = true
	}
	if avoid[to] || f.blocked[to] {
		return nil, fmt.Errorf("find route %s->%s: target excluded: %w", from, to, ports.ErrNoRoute)
	}

	// States are (room, hops). A room is only worth revisiting when reached with fewer hops
	// than every cheaper visit, since the hop budget may cut the cheaper one short.
	minHops := make(map[domain.RoomName]int)
	q := routeQueue{}
	heap.Push(&q, &routeNode{room: from})

	for q.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n := heap.Pop(&q).(*routeNode)
		if h, seen := minHops[n.room]; seen && h <= n.hops {
			continue
		}
		minHops[n.room] = n.hops

		if n.room == to {
			return n.route(), nil
		}
		if opts.MaxRooms > 0 && n.hops >= opts.MaxRooms {
			continue
		}

		for _, next := range f.world.exits(n.room) {
			if avoid[next] || f.blocked[next] || n.visits(next) {
				continue
			}
			heap.Push(&q, &routeNode{
				room: next,
				cost: n.cost + f.world.rooms[next].weight,
				hops: n.hops + 1,
				prev: n,
			})
		}
	}
	return nil, fmt.Errorf("find route %s->%s: %w", from, to, ports.ErrNoRoute)
}

func (n *routeNode) visits(room domain.RoomName) bool {
	for c := n; c != nil; c = c.prev {
		if c.room == room {
			return true
		}
	}
	return false
}

func (n *routeNode) route() domain.Route {
	r := make(domain.Route, n.hops+1)
	for c := n; c != nil; c = c.prev {
		r[c.hops] = c.room
	}
	return r
}
