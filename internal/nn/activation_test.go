package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backprop-go/backprop/internal/nn"
	"github.com/backprop-go/backprop/internal/tensor"
)

// TestReLU_Boundary checks that an input of exactly zero produces a zero
// output and a zero gradient.
func TestReLU_Boundary(t *testing.T) {
	relu := nn.NewReLU()
	x := mustSlice(t, []float64{-2, 0, 3}, 1, 3)

	y, err := relu.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 3}, y.Data())

	dx, err := relu.Backward(tensor.Full(5, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 5}, dx.Data())

	_, err = relu.Backward(tensor.Full(5, 3, 1))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestSigmoidLayer(t *testing.T) {
	s := nn.NewSigmoid()
	y, err := s.Forward(mustSlice(t, []float64{0, math.Log(3)}, 1, 2))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.75}, y.Data(), 1e-15)

	dx, err := s.Backward(tensor.Full(1, 1, 2))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.25, 0.1875}, dx.Data(), 1e-15)
}

func TestParseActivation(t *testing.T) {
	a, err := nn.ParseActivation(" Sigmoid ")
	require.NoError(t, err)
	assert.Equal(t, nn.ActivationSigmoid, a)
	assert.Equal(t, "sigmoid", a.String())

	var zero nn.Activation
	assert.Equal(t, nn.ActivationReLU, zero)

	_, err = nn.ParseActivation("tanh")
	require.ErrorIs(t, err, nn.ErrInvalidConfig)

	_, err = nn.NewActivation(nn.Activation(7))
	require.ErrorIs(t, err, nn.ErrInvalidConfig)
}
