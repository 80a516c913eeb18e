package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backprop-go/backprop/internal/tensor"
)

func TestReLU_ZeroIsMasked(t *testing.T) {
	x := tensor.Must(tensor.FromSlice([]float64{-1, 0, 2, math.NaN()}, tensor.Shape{1, 4}))
	out, mask := ReLU(x)

	assert.Equal(t, []float64{0, 0, 2}, out.Data()[:3])
	assert.True(t, math.IsNaN(out.Data()[3]))
	assert.Equal(t, []bool{false, false, true, true}, mask)

	dx, err := ReLUBackward(tensor.Full(1, 1, 4), mask)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1, 1}, dx.Data())
}

func TestSigmoid(t *testing.T) {
	x := tensor.Must(tensor.FromSlice([]float64{0, 2, -2}, tensor.Shape{1, 3}))
	y := Sigmoid(x)

	assert.InDelta(t, 0.5, y.At(0, 0), 1e-15)
	assert.InDelta(t, 1/(1+math.Exp(-2)), y.At(0, 1), 1e-15)
	assert.InDelta(t, 1, y.At(0, 1)+y.At(0, 2), 1e-15)

	dx, err := SigmoidBackward(tensor.Full(2, 1, 3), y)
	require.NoError(t, err)
	assert.InDelta(t, 2*0.25, dx.At(0, 0), 1e-15)

	_, err = SigmoidBackward(tensor.Zeros(3, 1), y)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestSoftmaxRows(t *testing.T) {
	x := tensor.Must(tensor.FromSlice([]float64{2, 1, 0, 1000, 1000, 1000}, tensor.Shape{2, 3}))
	y, err := SoftmaxRows(x)
	require.NoError(t, err)

	e := []float64{math.Exp(2), math.Exp(1), 1}
	sum := e[0] + e[1] + e[2]
	assert.InDeltaSlice(t, []float64{e[0] / sum, e[1] / sum, e[2] / sum}, y.Row(0), 1e-15)

	// Large logits do not overflow.
	assert.InDeltaSlice(t, []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, y.Row(1), 1e-15)

	// Input untouched.
	assert.Equal(t, 2.0, x.At(0, 0))
}

func TestSoftmaxRows_NaNPropagates(t *testing.T) {
	x := tensor.Must(tensor.FromSlice([]float64{1, math.NaN(), 0, 1, 2, 3}, tensor.Shape{2, 3}))
	y, err := SoftmaxRows(x)
	require.NoError(t, err)

	for _, v := range y.Row(0) {
		assert.True(t, math.IsNaN(v))
	}
	for _, v := range y.Row(1) {
		assert.False(t, math.IsNaN(v))
	}
}
