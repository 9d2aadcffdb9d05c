package mesh

import (
	"fmt"

	"github.com/maseology/goHydro/grid"
)

// node status
const (
	nodeClosed = iota
	nodeBoundary
	nodeInterior
)

// Raster is a uniform rectangular node-link mesh. Nodes are ordered row-major
// from the lower-left corner; south-north links precede west-east links, both
// directed toward the higher node id. Perimeter nodes are open boundaries
// unless closed explicitly.
type Raster struct {
	nr, nc   int
	dx       float64
	stat     []uint8
	from, to []int
	nlinks   [][]int
	active   []int
	nb       *Neighbors
}

// NewRaster builds an nr-row by nc-col raster mesh with cell spacing dx.
// Nodes listed in closed are removed from the flow computation.
func NewRaster(nr, nc int, dx float64, closed ...int) *Raster {
	if nr < 3 || nc < 3 {
		panic("mesh.NewRaster: need at least 3 rows and 3 columns")
	}
	nn := nr * nc
	r := &Raster{
		nr:     nr,
		nc:     nc,
		dx:     dx,
		stat:   make([]uint8, nn),
		nlinks: make([][]int, nn),
	}
	for n := 0; n < nn; n++ {
		if r.onPerimeter(n) {
			r.stat[n] = nodeBoundary
		} else {
			r.stat[n] = nodeInterior
		}
	}
	for _, n := range closed {
		r.stat[n] = nodeClosed
	}

	nl := (nr-1)*nc + nr*(nc-1)
	r.from = make([]int, 0, nl)
	r.to = make([]int, 0, nl)
	addLink := func(f, t int) {
		l := len(r.from)
		r.from = append(r.from, f)
		r.to = append(r.to, t)
		r.nlinks[f] = append(r.nlinks[f], l)
		r.nlinks[t] = append(r.nlinks[t], l)
		if r.stat[f] != nodeClosed && r.stat[t] != nodeClosed &&
			(r.stat[f] == nodeInterior || r.stat[t] == nodeInterior) {
			r.active = append(r.active, l)
		}
	}
	for rr := 0; rr < nr-1; rr++ { // south-north
		for c := 0; c < nc; c++ {
			addLink(rr*nc+c, (rr+1)*nc+c)
		}
	}
	for rr := 0; rr < nr; rr++ { // west-east
		for c := 0; c < nc-1; c++ {
			addLink(rr*nc+c, rr*nc+c+1)
		}
	}

	r.nb = r.buildNeighbors()
	return r
}

// FromGDEF builds a raster mesh from a goHydro grid definition; cells absent
// from the definition's actives are closed.
func FromGDEF(gd *grid.Definition, nr, nc int) (*Raster, error) {
	if nr*nc != gd.Ncells() {
		return nil, fmt.Errorf("mesh.FromGDEF: %d x %d does not match %d cells", nr, nc, gd.Ncells())
	}
	act := make(map[int]bool, len(gd.Sactives))
	for _, c := range gd.Sactives {
		act[c] = true
	}
	var closed []int
	for n := 0; n < nr*nc; n++ {
		if !act[n] {
			closed = append(closed, n)
		}
	}
	return NewRaster(nr, nc, gd.Cwidth, closed...), nil
}

func (r *Raster) onPerimeter(n int) bool {
	rr, c := n/r.nc, n%r.nc
	return rr == 0 || rr == r.nr-1 || c == 0 || c == r.nc-1
}

// NodeID returns the node id at (row, col), row 0 at the southern edge.
func (r *Raster) NodeID(row, col int) int { return row*r.nc + col }

func (r *Raster) NumNodes() int { return r.nr * r.nc }
func (r *Raster) NumLinks() int { return len(r.from) }

func (r *Raster) NeighborLinks(node int) []int { return r.nlinks[node] }

func (r *Raster) LinkEndpoints(link int) (int, int) { return r.from[link], r.to[link] }

func (r *Raster) ActiveLinks() []int { return r.active }

func (r *Raster) IsInterior(node int) bool { return r.stat[node] == nodeInterior }
func (r *Raster) IsBoundary(node int) bool { return r.stat[node] == nodeBoundary }

func (r *Raster) CharacteristicSpacing() float64 { return r.dx }

func (r *Raster) GradientAtActiveLinks(f []float64) []float64 {
	g := make([]float64, len(r.from))
	for _, l := range r.active {
		g[l] = (f[r.to[l]] - f[r.from[l]]) / r.dx
	}
	return g
}

func (r *Raster) DivergenceAtNodes(q []float64) []float64 {
	d := make([]float64, r.NumNodes())
	for _, l := range r.active {
		d[r.from[l]] += q[l] / r.dx
		d[r.to[l]] -= q[l] / r.dx
	}
	return d
}

func (r *Raster) MaxOfLinkEndpoints(f []float64) []float64 {
	m := make([]float64, len(r.from))
	for _, l := range r.active {
		if f[r.from[l]] > f[r.to[l]] {
			m[l] = f[r.from[l]]
		} else {
			m[l] = f[r.to[l]]
		}
	}
	return m
}

// Structured exposes the cached dense-neighbour structure.
func (r *Raster) Structured() (*Neighbors, bool) { return r.nb, true }

func (r *Raster) buildNeighbors() *Neighbors {
	nb := &Neighbors{DX: r.dx}
	nV := (r.nr - 1) * r.nc
	hlink := func(row, col int) int { return nV + row*(r.nc-1) + col } // from (row,col) eastward
	vlink := func(row, col int) int { return row*r.nc + col }          // from (row,col) northward
	open := func(row, col int) int {
		n := row*r.nc + col
		if r.stat[n] == nodeClosed {
			return -1
		}
		return n
	}
	for n := 0; n < r.NumNodes(); n++ {
		if r.stat[n] != nodeInterior {
			continue
		}
		rr, c := n/r.nc, n%r.nc
		nb.Cells = append(nb.Cells, n)
		nb.Nodes = append(nb.Nodes, [8]int{
			open(rr, c+1), open(rr+1, c), open(rr, c-1), open(rr-1, c), // E N W S
			open(rr+1, c+1), open(rr+1, c-1), open(rr-1, c-1), open(rr-1, c+1), // NE NW SW SE
		})
		nb.Links = append(nb.Links, [4]int{
			hlink(rr, c), vlink(rr, c), hlink(rr, c-1), vlink(rr-1, c),
		})
	}
	return nb
}
