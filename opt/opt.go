// Package opt calibrates overland-flow roughness against an observed outlet
// hydrograph.
package opt

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/montecarlo/smpln"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
)

// Runner evaluates one parameter set, returning the simulated hydrograph on
// the observation timestep.
type Runner func(manningsN, alpha float64) []float64

// FitN calibrates Manning's n alone by Fibonacci search, holding alpha at the
// caller's value. Returns the fitted n and its KGE.
func FitN(obs []float64, run func(manningsN float64) []float64) (float64, float64) {
	of := func(u float64) float64 {
		return 1. - objfunc.KGE(obs, run(Par1(u)))
	}
	u, _ := glbopt.Fibonacci(of)
	n := Par1(u)
	return n, objfunc.KGE(obs, run(n))
}

// Fit2 jointly calibrates (Mannings n, alpha) with the shuffled complex
// evolution solver. Returns the fitted pair and its KGE.
func Fit2(obs []float64, run Runner) (n, alpha, kge float64) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())

	gen := func(u []float64) float64 {
		nn, aa := Par2(u)
		return 1. - objfunc.KGE(obs, run(nn, aa))
	}

	fmt.Println(" optimizing..")
	uFinal, _ := glbopt.SCE(runtime.GOMAXPROCS(0), nDim, rng, gen, true)

	n, alpha = Par2(uFinal)
	kge = objfunc.KGE(obs, run(n, alpha))
	fmt.Printf("\nfinal parameters:\n\tMannings n:\t%v\n\talpha:\t\t%v\n\tKGE:\t\t%.3f\n\n", n, alpha, kge)
	return
}

// Sample runs a Latin-hypercube Monte Carlo over (Mannings n, alpha),
// returning each sample's parameters and objective (1-KGE).
func Sample(nsmpl int, seed int64, obs []float64, run Runner) (par [][]float64, of []float64) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(seed)
	sp := smpln.NewLHC(rng, nsmpl, nDim, false)

	par, of = make([][]float64, nsmpl), make([]float64, nsmpl)
	for k := 0; k < nsmpl; k++ {
		ut := make([]float64, nDim)
		for j := 0; j < nDim; j++ {
			ut[j] = sp.U[j][k]
		}
		n, alpha := Par2(ut)
		par[k] = []float64{n, alpha}
		of[k] = 1. - objfunc.KGE(obs, run(n, alpha))
		fmt.Print(".")
	}
	fmt.Println()
	return
}
