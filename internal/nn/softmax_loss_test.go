package nn_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backprop-go/backprop/internal/nn"
	"github.com/backprop-go/backprop/internal/tensor"
)

// TestSoftmaxWithLoss_Known checks logits [[2,1,0]] with target class 0
// against an independent computation.
func TestSoftmaxWithLoss_Known(t *testing.T) {
	e := []float64{math.Exp(2), math.Exp(1), math.Exp(0)}
	sum := e[0] + e[1] + e[2]
	probs := []float64{e[0] / sum, e[1] / sum, e[2] / sum}

	targets := map[string]nn.Target{
		"indices": nn.ClassIndices(0),
		"one-hot": nn.OneHot(mustSlice(t, []float64{1, 0, 0}, 1, 3)),
	}
	for name, target := range targets {
		t.Run(name, func(t *testing.T) {
			layer := nn.NewSoftmaxWithLoss()
			loss, err := layer.Forward(mustSlice(t, []float64{2, 1, 0}, 1, 3), target)
			require.NoError(t, err)
			assert.InDelta(t, -math.Log(probs[0]), loss, 1e-6)

			y, err := layer.Probs()
			require.NoError(t, err)
			assert.InDeltaSlice(t, probs, y.Data(), 1e-15)

			dx, err := layer.Backward(1)
			require.NoError(t, err)
			assert.InDeltaSlice(t, []float64{probs[0] - 1, probs[1], probs[2]}, dx.Data(), 1e-15)
		})
	}
}

func TestSoftmaxWithLoss_MeanOverBatch(t *testing.T) {
	layer := nn.NewSoftmaxWithLoss()
	logits := mustSlice(t, []float64{0, 0, 5, 5}, 2, 2)

	loss, err := layer.Forward(logits, nn.ClassIndices(1, 0))
	require.NoError(t, err)
	assert.InDelta(t, -math.Log(0.5+1e-7), loss, 1e-12)

	dx, err := layer.Backward(2)
	require.NoError(t, err)
	// 2 * (y - onehot) / 2
	assert.InDeltaSlice(t, []float64{0.5, -0.5, -0.5, 0.5}, dx.Data(), 1e-15)
}

func TestSoftmaxWithLoss_Errors(t *testing.T) {
	layer := nn.NewSoftmaxWithLoss()

	_, err := layer.Forward(tensor.Zeros(3), nn.ClassIndices(0))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = layer.Forward(tensor.Zeros(2, 3), nn.ClassIndices(0))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = layer.Forward(tensor.Zeros(1, 3), nn.ClassIndices(3))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	// A failed forward leaves the layer unpopulated.
	_, err = layer.Backward(1)
	require.ErrorIs(t, err, nn.ErrInvalidState)
}

func TestSoftmaxWithLoss_NaNPassesThrough(t *testing.T) {
	layer := nn.NewSoftmaxWithLoss()
	loss, err := layer.Forward(mustSlice(t, []float64{math.NaN(), 0}, 1, 2), nn.ClassIndices(1))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(loss))
}
