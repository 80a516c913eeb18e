package nn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backprop-go/backprop/nn"
	"github.com/backprop-go/backprop/optim"
	"github.com/backprop-go/backprop/tensor"
)

// TestPublicTrainingLoop drives a caller-written loop through the public
// packages only.
func TestPublicTrainingLoop(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	net, err := nn.NewMultiLayerNet(nn.Config{
		InputSize:   3,
		HiddenSizes: []int{8},
		OutputSize:  2,
		Activation:  nn.ActivationSigmoid,
		WeightInit:  nn.Xavier(),
		Rand:        rng,
	})
	require.NoError(t, err)

	x := tensor.Randn(rng, 16, 3)
	labels := make([]int, 16)
	for i := range labels {
		if x.At(i, 0)+x.At(i, 1) > 0 {
			labels[i] = 1
		}
	}
	target := nn.ClassIndices(labels...)

	opt, err := optim.New("momentum", 0.1)
	require.NoError(t, err)

	before, err := net.Loss(x, target)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		grads, err := net.Gradient(x, target)
		require.NoError(t, err)
		require.NoError(t, opt.Update(net.Params(), grads))
	}
	after, err := net.Loss(x, target)
	require.NoError(t, err)
	assert.Less(t, after, before)
}

func TestPublicErrors(t *testing.T) {
	_, err := nn.NewReLU().Backward(tensor.Zeros(1, 1))
	require.ErrorIs(t, err, nn.ErrInvalidState)

	_, err = nn.NewMultiLayerNet(nn.Config{})
	require.ErrorIs(t, err, nn.ErrInvalidConfig)

	_, err = optim.New("nope", 0)
	require.ErrorIs(t, err, optim.ErrUnknownOptimizer)
}
