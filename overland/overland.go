// Package overland advances shallow-water overland flow by the explicit
// storage-cell scheme of Bates et al. (2010), with the semi-implicit Manning
// friction discharge update and an adaptive, stability-bounded time step.
// ref: Bates, Horritt, Fewtrell, 2010. A simple inertial formulation of the
// shallow water equations for efficient two-dimensional flood inundation
// modelling. Journal of Hydrology 387: 33-45.
package overland

import (
	"errors"
	"fmt"
	"math"

	"github.com/maseology/lem/mesh"
)

const (
	g         = 9.8
	tenThirds = 10. / 3.
	hflowMin  = 1e-6 // effective link depths below this carry no flow
)

var (
	// ErrShape reports fields inconsistent with the mesh topology.
	ErrShape = errors.New("overland: field length does not match mesh")
	// ErrAllDry reports a zero maximum depth, which leaves the Courant bound
	// undefined; initialize with a positive depth floor.
	ErrAllDry = errors.New("overland: all-dry state, stability bound undefined")
)

// Params collects the solver coefficients.
type Params struct {
	ManningsN float64 // Manning's roughness
	HInit     float64 // initial depth floor [m]
	Alpha     float64 // time-step safety factor
	Rho       float64 // water density [kg/m³]
}

// DefaultParams returns the Bates et al. (2010) defaults.
func DefaultParams() Params {
	return Params{ManningsN: 0.04, HInit: 0.001, Alpha: 0.2, Rho: 1000.}
}

// Solver carries the hydraulic state (node depths, link unit discharges, node
// shear stresses, model clock) between calls. Fields are mutated in place by
// Advance; a Solver must not be advanced from two goroutines.
type Solver struct {
	mesh     mesh.Topology
	par      Params
	nsq      float64
	dx       float64
	z        []float64 // bed elevation, read-only
	h        []float64
	q        []float64
	tau      []float64
	elapsed  float64
	interior []int
	active   []int
	isActive []bool
}

// New readies a solver on a mesh with bed elevations z: depths at the HInit
// floor, discharges and stresses zeroed, clock at zero.
func New(t mesh.Topology, z []float64, par Params) (*Solver, error) {
	if len(z) != t.NumNodes() {
		return nil, fmt.Errorf("%w: %d elevations, %d nodes", ErrShape, len(z), t.NumNodes())
	}
	nn := t.NumNodes()
	s := &Solver{
		mesh:   t,
		par:    par,
		nsq:    par.ManningsN * par.ManningsN,
		dx:     t.CharacteristicSpacing(),
		z:      z,
		h:      make([]float64, nn),
		q:      make([]float64, t.NumLinks()),
		tau:    make([]float64, nn),
		active: t.ActiveLinks(),
	}
	s.isActive = make([]bool, t.NumLinks())
	for _, l := range s.active {
		s.isActive[l] = true
	}
	for i := range s.h {
		s.h[i] = par.HInit
	}
	for n := 0; n < nn; n++ {
		if t.IsInterior(n) {
			s.interior = append(s.interior, n)
		}
	}
	return s, nil
}

// Depth returns the node water-depth field [m].
func (s *Solver) Depth() []float64 { return s.h }

// Discharge returns the link unit-discharge field [m²/s], positive from the
// link's from-node toward its to-node.
func (s *Solver) Discharge() []float64 { return s.q }

// ShearStress returns the node shear-stress field [Pa].
func (s *Solver) ShearStress() []float64 { return s.tau }

// Elapsed returns the model clock [s].
func (s *Solver) Elapsed() float64 { return s.elapsed }

// Advance integrates until the model clock reaches target [s]. Rainfall falls
// at rainIntensity [m/s] while the clock is within rainDuration, zero after;
// both are measured on the model clock, so a second call continues the run.
func (s *Solver) Advance(rainIntensity, rainDuration, target float64) error {
	return s.advance(rainIntensity, rainDuration, target, nil)
}

func (s *Solver) advance(p, pdur, target float64, tr *Trace) error {
	nn := s.mesh.NumNodes()
	for s.elapsed < target {
		hmax := 0.
		for _, v := range s.h {
			if v > hmax {
				hmax = v
			}
		}
		if hmax <= 0. {
			return fmt.Errorf("%w (t=%.3f s)", ErrAllDry, s.elapsed)
		}

		// Bates eq 14
		dtStab := s.par.Alpha * s.dx / math.Sqrt(g*hmax)
		dt := math.Min(dtStab, target-s.elapsed)

		w := make([]float64, nn)
		for i := range w {
			w[i] = s.h[i] + s.z[i]
		}
		zmax := s.mesh.MaxOfLinkEndpoints(s.z)
		wmax := s.mesh.MaxOfLinkEndpoints(w)
		ws := s.mesh.GradientAtActiveLinks(w)

		// semi-implicit Manning friction update (Bates eq 11); the stability
		// step, not the clamped step, enters here
		for _, l := range s.active {
			hf := wmax[l] - zmax[l] // effective flow depth at partially wet links
			if hf <= hflowMin {
				s.q[l] = 0.
				continue
			}
			s.q[l] = (s.q[l] - g*hf*dtStab*ws[l]) /
				(1. + g*hf*dtStab*s.nsq*math.Abs(s.q[l])/math.Pow(hf, tenThirds))
		}

		dqds := s.mesh.DivergenceAtNodes(s.q)

		rain := p
		if s.elapsed > pdur {
			rain = 0.
		}

		dhdt := make([]float64, nn)
		for i := range dhdt {
			dhdt[i] = rain - dqds[i]
		}

		// second limiter: no node may drain below zero within the step
		tdrain := math.MaxFloat64
		for i, r := range dhdt {
			if r < 0. {
				if td := -s.h[i] / r; td < tdrain {
					tdrain = td
				}
			}
		}
		if tdrain < math.MaxFloat64 {
			dt = math.Min(dt, s.par.Alpha*tdrain)
		}

		for _, i := range s.interior {
			s.h[i] += dhdt[i] * dt
		}

		// tau = rho g S h on the updated water surface, clipped at zero
		for i := range w {
			w[i] = s.h[i] + s.z[i]
		}
		for _, i := range s.interior {
			t := s.par.Rho * g * s.steepestDescent(w, i) * s.h[i]
			if t < 0. {
				t = 0.
			}
			s.tau[i] = t
		}

		s.elapsed += dt
		if tr != nil {
			tr.append(s)
		}
	}
	return nil
}

// steepestDescent returns the steepest downhill water-surface gradient away
// from node n over its active links; negative where n is a local minimum.
func (s *Solver) steepestDescent(w []float64, n int) float64 {
	ss := math.Inf(-1)
	for _, l := range s.mesh.NeighborLinks(n) {
		if !s.isActive[l] {
			continue
		}
		f, t := s.mesh.LinkEndpoints(l)
		var sl float64
		if f == n {
			sl = (w[f] - w[t]) / s.dx
		} else {
			sl = (w[t] - w[f]) / s.dx
		}
		if sl > ss {
			ss = sl
		}
	}
	if math.IsInf(ss, -1) {
		return 0.
	}
	return ss
}
