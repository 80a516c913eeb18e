package curve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backprop-go/backprop/internal/curve"
)

func TestKaiser(t *testing.T) {
	w := curve.Kaiser(11, 2)
	require.Len(t, w, 11)
	assert.InDelta(t, 1.0, w[5], 1e-15)
	for i := 0; i < 5; i++ {
		assert.InDelta(t, w[i], w[10-i], 1e-15, "symmetry at %d", i)
		assert.Less(t, w[i], w[i+1], "rising toward the centre at %d", i)
	}
	// I0(0) / I0(2) at the edges.
	assert.InDelta(t, 1/2.2795853023360673, w[0], 1e-12)

	assert.Equal(t, []float64{1}, curve.Kaiser(1, 2))
}

func TestSmooth_Constant(t *testing.T) {
	xs := make([]float64, 40)
	for i := range xs {
		xs[i] = 2.5
	}
	out := curve.Smooth(xs)
	require.Len(t, out, len(xs))
	assert.InDeltaSlice(t, xs, out, 1e-12)
}

func TestSmooth_ReducesNoise(t *testing.T) {
	xs := make([]float64, 60)
	for i := range xs {
		if i%2 == 0 {
			xs[i] = 1
		} else {
			xs[i] = -1
		}
	}
	out := curve.Smooth(xs)
	require.Len(t, out, len(xs))
	for i := 10; i < 50; i++ {
		assert.Less(t, out[i]*out[i], 0.1, "index %d", i)
	}
}

func TestSmooth_ShortInputCopied(t *testing.T) {
	xs := []float64{3, 1, 2}
	out := curve.Smooth(xs)
	assert.Equal(t, xs, out)
	out[0] = 0
	assert.Equal(t, 3.0, xs[0])
}
