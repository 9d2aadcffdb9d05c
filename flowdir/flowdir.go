// Package flowdir assigns single-direction (steepest-descent) flow over a
// node-link mesh: every node drains to the lower endpoint of its steepest
// downhill link, or to itself where no downhill neighbour exists.
package flowdir

import (
	"errors"
	"fmt"

	"github.com/maseology/lem/mesh"
)

// Undefined marks a node with no receiver link (a sink).
const Undefined = -1

// ErrShape reports input arrays inconsistent with the mesh topology.
var ErrShape = errors.New("flowdir: input array shape mismatch")

// Result holds a per-node receiver assignment. Receiver[n]==n exactly when
// Steepest[n]==0; such nodes make up Sinks (boundary, baselevel, or pits).
type Result struct {
	Receiver     []int
	Steepest     []float64
	ReceiverLink []int
	Sinks        []int
}

func newResult(nn int) *Result {
	r := &Result{
		Receiver:     make([]int, nn),
		Steepest:     make([]float64, nn),
		ReceiverLink: make([]int, nn),
	}
	for i := 0; i < nn; i++ {
		r.Receiver[i] = i
		r.ReceiverLink[i] = Undefined
	}
	return r
}

// Directions assigns receivers from parallel active-link arrays. linkSlope is
// defined positive downhill from fromNode toward toNode. For each link the
// higher endpoint is the candidate donor and the lower the candidate
// receiver; a donor's assignment is overwritten only by a strictly steeper
// slope, so equal steepest slopes keep the earliest-processed link and flat
// links produce no flow. Nodes in baselevel are forced self-receiving after
// the pass. An all-flat elevation field yields every node a sink; that is
// valid output, not an error.
func Directions(z []float64, activeLinks, fromNode, toNode []int, linkSlope []float64, baselevel []int) (*Result, error) {
	na := len(activeLinks)
	if len(fromNode) != na || len(toNode) != na || len(linkSlope) != na {
		return nil, fmt.Errorf("%w: %d active links, from/to/slope %d/%d/%d",
			ErrShape, na, len(fromNode), len(toNode), len(linkSlope))
	}
	nn := len(z)
	r := newResult(nn)
	for i := 0; i < na; i++ {
		f, t := fromNode[i], toNode[i]
		if f < 0 || f >= nn || t < 0 || t >= nn {
			return nil, fmt.Errorf("%w: link %d endpoints (%d,%d) outside %d nodes",
				ErrShape, activeLinks[i], f, t, nn)
		}
		if z[f] > z[t] && linkSlope[i] > r.Steepest[f] {
			r.Receiver[f] = t
			r.Steepest[f] = linkSlope[i]
			r.ReceiverLink[f] = activeLinks[i]
		} else if z[t] > z[f] && -linkSlope[i] > r.Steepest[t] {
			r.Receiver[t] = f
			r.Steepest[t] = -linkSlope[i]
			r.ReceiverLink[t] = activeLinks[i]
		}
	}
	r.setBaselevel(baselevel)
	r.collectSinks()
	return r, nil
}

// FromMesh directs flow over any Topology, taking the dense raster path when
// the mesh advertises one. Both paths produce identical assignments; the
// raster path only avoids rebuilding link arrays per call.
func FromMesh(t mesh.Topology, z []float64, baselevel []int) (*Result, error) {
	if len(z) != t.NumNodes() {
		return nil, fmt.Errorf("%w: %d elevations, %d nodes", ErrShape, len(z), t.NumNodes())
	}
	if s, ok := t.(mesh.Structurer); ok {
		if nb, ok := s.Structured(); ok {
			r := rasterDirections(nb, z, t.NumNodes(), false)
			r.setBaselevel(baselevel)
			r.collectSinks()
			return r, nil
		}
	}
	active := t.ActiveLinks()
	fn, tn, s := make([]int, len(active)), make([]int, len(active)), make([]float64, len(active))
	dx := t.CharacteristicSpacing()
	for i, l := range active {
		f, tt := t.LinkEndpoints(l)
		fn[i], tn[i] = f, tt
		s[i] = (z[f] - z[tt]) / dx
	}
	return Directions(z, active, fn, tn, s, baselevel)
}

func (r *Result) setBaselevel(baselevel []int) {
	for _, n := range baselevel {
		r.Receiver[n] = n
		r.Steepest[n] = 0.
		r.ReceiverLink[n] = Undefined
	}
}

func (r *Result) collectSinks() {
	r.Sinks = r.Sinks[:0]
	for i, v := range r.Receiver {
		if v == i {
			r.Sinks = append(r.Sinks, i)
		}
	}
}
