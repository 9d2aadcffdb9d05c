// Package forcing supplies rainfall forcing for overland-flow runs.
package forcing

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Storm is a constant-intensity design storm beginning at model time zero.
type Storm struct {
	Intensity float64 // [m/s]
	Duration  float64 // [s]
}

// RateAt returns the rainfall rate at model time t.
func (s Storm) RateAt(t float64) float64 {
	if t <= s.Duration {
		return s.Intensity
	}
	return 0.
}

// Hyetograph is a stepped rainfall series: P[i] falls over [T[i], T[i+1]);
// len(T) = len(P)+1, zero outside the series.
type Hyetograph struct {
	T []float64 // step boundaries [s], ascending
	P []float64 // intensities [m/s]
}

// NewHyetograph validates the step boundaries against the intensities.
func NewHyetograph(t, p []float64) (*Hyetograph, error) {
	if len(t) != len(p)+1 {
		return nil, fmt.Errorf("forcing.NewHyetograph: %d boundaries for %d intensities", len(t), len(p))
	}
	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return nil, fmt.Errorf("forcing.NewHyetograph: boundaries not ascending at %d", i)
		}
	}
	return &Hyetograph{T: t, P: p}, nil
}

// RateAt returns the rainfall rate at model time t.
func (h *Hyetograph) RateAt(t float64) float64 {
	for i := len(h.P) - 1; i >= 0; i-- {
		if t >= h.T[i] {
			if t < h.T[i+1] {
				return h.P[i]
			}
			return 0.
		}
	}
	return 0.
}

// SaveGob persists a built hyetograph.
func (h *Hyetograph) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(h); err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	return nil
}

// LoadGob recovers a hyetograph saved with SaveGob.
func LoadGob(fp string) (*Hyetograph, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var h Hyetograph
	if err := gob.NewDecoder(f).Decode(&h); err != nil {
		return nil, fmt.Errorf(" forcing.LoadGob %v", err)
	}
	return &h, nil
}
