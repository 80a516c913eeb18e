// Package curve post-processes training curves for reporting.
package curve

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	windowLen  = 11
	kaiserBeta = 2
)

// Smooth returns xs convolved with a normalized Kaiser window (length 11,
// β = 2). The ends are extended by reflection so the output has the same
// length as the input. Inputs shorter than the window are returned as a
// copy.
func Smooth(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) < windowLen {
		copy(out, xs)
		return out
	}

	w := Kaiser(windowLen, kaiserBeta)
	floats.Scale(1/floats.Sum(w), w)

	// Left reflection omits xs[0]; right reflection starts with the last
	// sample itself.
	n := len(xs)
	s := make([]float64, 0, n+2*(windowLen-1))
	for i := windowLen - 1; i > 0; i-- {
		s = append(s, xs[i])
	}
	s = append(s, xs...)
	for i := n - 1; i > n-windowLen; i-- {
		s = append(s, xs[i])
	}

	half := windowLen / 2
	for i := range out {
		k := i + half
		out[i] = floats.Dot(w, s[k:k+windowLen])
	}
	return out
}

// Kaiser returns the m-point Kaiser window with shape parameter beta.
func Kaiser(m int, beta float64) []float64 {
	if m == 1 {
		return []float64{1}
	}
	w := make([]float64, m)
	denom := besselI0(beta)
	for i := range w {
		r := 2*float64(i)/float64(m-1) - 1
		w[i] = besselI0(beta*math.Sqrt(1-r*r)) / denom
	}
	return w
}

// besselI0 is the modified Bessel function of the first kind, order 0,
// summed from its power series.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	q := x * x / 4
	for k := 1; k < 500; k++ {
		term *= q / float64(k*k)
		sum += term
		if term < sum*1e-17 {
			break
		}
	}
	return sum
}
