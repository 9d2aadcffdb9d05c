package overland

import (
	"fmt"
)

// Trace records depth, unit discharge and shear stress at one study node over
// an Advance call, one sample per accepted time step.
type Trace struct {
	Node int
	Link int // active link toward the steepest bed descent; -1 if none

	Time  []float64
	Depth []float64
	Q     []float64
	Tau   []float64
}

// AdvanceTrace integrates as Advance does while sampling the study node each
// step. The traced link is the one toward the node's steepest downhill bed
// neighbour, fixed at call time. The study node must be interior.
func (s *Solver) AdvanceTrace(rainIntensity, rainDuration, target float64, study int) (*Trace, error) {
	if study < 0 || study >= len(s.h) || !s.mesh.IsInterior(study) {
		return nil, fmt.Errorf("overland: study node %d is not an interior node", study)
	}
	tr := &Trace{Node: study, Link: s.steepestLink(study)}
	tr.append(s) // starting state
	if err := s.advance(rainIntensity, rainDuration, target, tr); err != nil {
		return nil, err
	}
	return tr, nil
}

func (s *Solver) steepestLink(n int) int {
	best, bs := -1, 0.
	for _, l := range s.mesh.NeighborLinks(n) {
		if !s.isActive[l] {
			continue
		}
		f, t := s.mesh.LinkEndpoints(l)
		sl := (s.z[f] - s.z[t]) / s.dx
		if f != n {
			sl = -sl
		}
		if sl > bs {
			bs, best = sl, l
		}
	}
	return best
}

func (tr *Trace) append(s *Solver) {
	tr.Time = append(tr.Time, s.elapsed)
	tr.Depth = append(tr.Depth, s.h[tr.Node])
	if tr.Link >= 0 {
		tr.Q = append(tr.Q, s.q[tr.Link])
	} else {
		tr.Q = append(tr.Q, 0.)
	}
	tr.Tau = append(tr.Tau, s.tau[tr.Node])
}
