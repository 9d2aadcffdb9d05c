package opt

import "github.com/maseology/mmaths"

// nDim is the joint calibration dimension (Mannings n, alpha).
const nDim = 2

// Par1 maps a unit-interval sample to Manning's n.
func Par1(u float64) float64 {
	return mmaths.LogLinearTransform(.01, 1., u)
}

// Par2 maps unit-interval samples to (Mannings n, alpha).
func Par2(u []float64) (n, alpha float64) {
	n = mmaths.LogLinearTransform(.01, 1., u[0])
	alpha = mmaths.LinearTransform(.05, .7, u[1]) // stability factors beyond ~0.7 rarely remain stable
	return
}
