package routing

import "github.com/DivyaGolakiya/GeoCache-Offline-Navigator/graphs"

// searchState is the per-search scratch record of one node.
type searchState struct {
	node   *graphs.Node
	g      float64
	h      float64
	f      float64
	parent *searchState
	seq    int // order of first insertion into the open set
	index  int // heap position, -1 once popped
	closed bool
}

// openSet orders states by f, then by first insertion. Popping from it picks
// the same node a linear scan over an insertion-ordered list would.
type openSet []*searchState

func (pq openSet) Len() int { return len(pq) }

func (pq openSet) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].seq < pq[j].seq
}

func (pq openSet) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *openSet) Push(x interface{}) {
	item := x.(*searchState)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *openSet) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[0 : n-1]
	return item
}
