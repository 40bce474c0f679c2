package search

// openItem is an entry of the open set. Entries are never updated in place;
// a cheaper route pushes a new entry and the old one goes stale.
type openItem struct {
	record int
	g      int
	f      float64
	seq    uint64
}

// openSet is a min-heap on f, FIFO among equal f.
type openSet []*openItem

func (h openSet) Len() int { return len(h) }

func (h openSet) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}

func (h openSet) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *openSet) Push(x any) {
	*h = append(*h, x.(*openItem))
}

func (h *openSet) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return item
}
