package pathfinder

type tile struct{ x, y int }

type queueItem struct {
	tile  tile
	g     int
	f     float64
	h     float64
	index int
}

// Min-heap on f, ties broken towards the goal (lower h).
type priorityQueue []*queueItem

func (q priorityQueue) Len() int { return len(q) }

func (q priorityQueue) Less(i, j int) bool {
	if q[i].f == q[j].f {
		return q[i].h < q[j].h
	}
	return q[i].f < q[j].f
}

func (q priorityQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *priorityQueue) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *priorityQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
