package flowdir

import (
	"fmt"
	"math"

	"github.com/maseology/lem/mesh"
)

// RasterDirections runs the dense steepest-descent pass over a raster's
// cached neighbour structure, evaluating only the four cell faces. Semantics
// match Directions run over the raster's links.
func RasterDirections(nb *mesh.Neighbors, z []float64, numNodes int) (*Result, error) {
	return rasterResult(nb, z, numNodes, false)
}

// RasterDirectionsD8 extends the dense pass to all eight raster neighbours,
// diagonal distances scaled by sqrt2. Diagonal receivers have no connecting
// link, so their ReceiverLink is Undefined.
func RasterDirectionsD8(nb *mesh.Neighbors, z []float64, numNodes int) (*Result, error) {
	return rasterResult(nb, z, numNodes, true)
}

func rasterResult(nb *mesh.Neighbors, z []float64, numNodes int, diagonals bool) (*Result, error) {
	if numNodes < len(nb.Cells) {
		return nil, fmt.Errorf("%w: %d cells, %d nodes", ErrShape, len(nb.Cells), numNodes)
	}
	for _, n := range nb.Cells {
		if n >= len(z) {
			return nil, fmt.Errorf("%w: %d elevations, cell node %d", ErrShape, len(z), n)
		}
	}
	r := rasterDirections(nb, z, numNodes, diagonals)
	r.collectSinks()
	return r, nil
}

func rasterDirections(nb *mesh.Neighbors, z []float64, numNodes int, diagonals bool) *Result {
	oort := 1. / math.Sqrt2
	r := newResult(numNodes)
	lim := 4
	if diagonals {
		lim = 8
	}
	for k, n := range nb.Cells {
		for j := 0; j < lim; j++ {
			m := nb.Nodes[k][j]
			if m < 0 {
				continue
			}
			s := (z[n] - z[m]) / nb.DX
			if j >= 4 {
				s *= oort
			}
			if s > r.Steepest[n] { // argmax; non-positive maxima leave the node a sink
				r.Steepest[n] = s
				r.Receiver[n] = m
				if j < 4 {
					r.ReceiverLink[n] = nb.Links[k][j]
				} else {
					r.ReceiverLink[n] = Undefined
				}
			}
		}
	}
	return r
}
