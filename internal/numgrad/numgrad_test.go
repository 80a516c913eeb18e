package numgrad_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backprop-go/backprop/internal/numgrad"
	"github.com/backprop-go/backprop/internal/tensor"
)

func TestGradient_Quadratic(t *testing.T) {
	x := tensor.Must(tensor.FromSlice([]float64{1, -2, 0.5, 3}, tensor.Shape{2, 2}))
	f := func() (float64, error) {
		var s float64
		for _, v := range x.Data() {
			s += v * v
		}
		return s, nil
	}

	g, err := numgrad.Gradient(f, x, numgrad.DefaultStep)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, g.Shape())
	assert.InDeltaSlice(t, []float64{2, -4, 1, 6}, g.Data(), 1e-8)
	assert.Equal(t, []float64{1, -2, 0.5, 3}, x.Data())
}

func TestGradient_CrossTerms(t *testing.T) {
	x := tensor.Must(tensor.FromSlice([]float64{2, 3}, tensor.Shape{2}))
	f := func() (float64, error) {
		d := x.Data()
		return d[0]*d[1] + math.Sin(d[0]), nil
	}

	g, err := numgrad.Gradient(f, x, 1e-5)
	require.NoError(t, err)
	assert.InDelta(t, 3+math.Cos(2), g.Data()[0], 1e-8)
	assert.InDelta(t, 2, g.Data()[1], 1e-8)
}

func TestGradient_Errors(t *testing.T) {
	x := tensor.Must(tensor.FromSlice([]float64{1, 2}, tensor.Shape{2}))
	ok := func() (float64, error) { return 0, nil }

	_, err := numgrad.Gradient(ok, x, 0)
	require.Error(t, err)
	_, err = numgrad.Gradient(ok, x, math.NaN())
	require.Error(t, err)

	boom := errors.New("boom")
	calls := 0
	failing := func() (float64, error) {
		calls++
		if calls > 1 {
			return 0, boom
		}
		return 0, nil
	}
	_, err = numgrad.Gradient(failing, x, 1e-4)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []float64{1, 2}, x.Data())
}

func TestCompare(t *testing.T) {
	a := tensor.Must(tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4}))
	b := tensor.Must(tensor.FromSlice([]float64{1, 2.5, 3, 3}, tensor.Shape{4}))

	mad, err := numgrad.MeanAbsDiff(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 0.375, mad, 1e-15)

	rel, err := numgrad.RelativeError(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/7.0, rel, 1e-15)

	rel, err = numgrad.RelativeError(tensor.Zeros(3), tensor.Zeros(3))
	require.NoError(t, err)
	assert.Zero(t, rel)

	_, err = numgrad.MeanAbsDiff(a, tensor.Zeros(2, 2))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = numgrad.RelativeError(a, tensor.Zeros(5))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}
