package flowdir

// Network is the donor (upslope) graph implied by a receiver assignment.
type Network struct {
	recv []int
	us   [][]int
}

// NewNetwork builds the donor lists from a receiver array; self-receiving
// nodes (sinks) are roots.
func NewNetwork(receiver []int) *Network {
	us := make([][]int, len(receiver))
	for i, r := range receiver {
		if r != i {
			us[r] = append(us[r], i)
		}
	}
	rc := make([]int, len(receiver))
	copy(rc, receiver)
	return &Network{recv: rc, us: us}
}

// Donors returns the nodes draining directly into n.
func (w *Network) Donors(n int) []int { return w.us[n] }

// UnitContributingArea counts the cells draining through n, inclusive.
func (w *Network) UnitContributingArea(n int) int {
	c := 1
	for _, u := range w.us[n] {
		c += w.UnitContributingArea(u)
	}
	return c
}

// ContributingCellMap returns the contributing cell count at every node.
func (w *Network) ContributingCellMap() []int {
	cnt := make([]int, len(w.recv))
	for i := range cnt {
		cnt[i] = 1
	}
	for _, i := range w.DownslopeOrder() {
		if r := w.recv[i]; r != i {
			cnt[r] += cnt[i]
		}
	}
	return cnt
}

// DownslopeOrder returns node ids ordered so that every donor precedes its
// receiver (computational order for accumulation passes).
func (w *Network) DownslopeOrder() []int {
	ord := make([]int, 0, len(w.recv))
	var walk func(int)
	walk = func(i int) {
		for _, u := range w.us[i] {
			walk(u)
		}
		ord = append(ord, i)
	}
	for i, r := range w.recv {
		if r == i {
			walk(i)
		}
	}
	return ord
}
