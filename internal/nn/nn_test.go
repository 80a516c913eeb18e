package nn_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backprop-go/backprop/internal/nn"
	"github.com/backprop-go/backprop/internal/tensor"
)

func mustSlice(t *testing.T, data []float64, shape ...int) *tensor.Dense {
	t.Helper()
	x, err := tensor.FromSlice(data, tensor.Shape(shape))
	require.NoError(t, err)
	return x
}

// TestAffine_ForwardBackward checks y = xW + b and its three gradients
// against hand-computed values.
func TestAffine_ForwardBackward(t *testing.T) {
	w := mustSlice(t, []float64{1, 2, 3, 4, 5, 6}, 3, 2)
	b := mustSlice(t, []float64{0.5, -0.5}, 2)
	layer, err := nn.NewAffine(w, b)
	require.NoError(t, err)
	assert.Equal(t, 3, layer.InFeatures())
	assert.Equal(t, 2, layer.OutFeatures())
	assert.Equal(t, nn.KindAffine, layer.Kind())

	x := mustSlice(t, []float64{1, 0, -1, 2, 1, 0}, 2, 3)
	y, err := layer.Forward(x)
	require.NoError(t, err)
	// [1,0,-1]·W = [1-5, 2-6] = [-4,-4]; [2,1,0]·W = [5, 8]
	assert.Equal(t, []float64{-3.5, -4.5, 5.5, 7.5}, y.Data())

	dout := mustSlice(t, []float64{1, 0, 0, 1}, 2, 2)
	dx, err := layer.Backward(dout)
	require.NoError(t, err)
	// dX = dout @ Wᵀ
	assert.Equal(t, []float64{1, 3, 5, 2, 4, 6}, dx.Data())

	dW, db, err := layer.Grads()
	require.NoError(t, err)
	// dW = xᵀ @ dout
	assert.Equal(t, []float64{1, 2, 0, 1, -1, 0}, dW.Data())
	assert.Equal(t, []float64{1, 1}, db.Data())
}

func TestAffine_FlattensHigherRank(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	layer, err := nn.NewAffine(tensor.Randn(rng, 12, 4), tensor.Zeros(4))
	require.NoError(t, err)

	x := tensor.Randn(rng, 2, 3, 2, 2)
	y, err := layer.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 4}, y.Shape())

	dx, err := layer.Backward(tensor.Full(1, 2, 4))
	require.NoError(t, err)
	if diff := cmp.Diff(x.Shape(), dx.Shape()); diff != "" {
		t.Errorf("input gradient shape (-want +got):\n%s", diff)
	}
}

func TestAffine_ShapeErrors(t *testing.T) {
	_, err := nn.NewAffine(tensor.Zeros(3), tensor.Zeros(3))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = nn.NewAffine(tensor.Zeros(3, 2), tensor.Zeros(3))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	layer, err := nn.NewAffine(tensor.Zeros(3, 2), tensor.Zeros(2))
	require.NoError(t, err)

	_, err = layer.Forward(tensor.Zeros(4, 5))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	_, err = layer.Forward(tensor.Zeros(4, 3))
	require.NoError(t, err)
	_, err = layer.Backward(tensor.Zeros(4, 3))
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestLayers_BackwardBeforeForward(t *testing.T) {
	affine, err := nn.NewAffine(tensor.Zeros(2, 2), tensor.Zeros(2))
	require.NoError(t, err)

	for _, layer := range []nn.Layer{affine, nn.NewReLU(), nn.NewSigmoid()} {
		t.Run(layer.Kind().String(), func(t *testing.T) {
			_, err := layer.Backward(tensor.Zeros(1, 2))
			require.ErrorIs(t, err, nn.ErrInvalidState)
		})
	}

	_, _, err = affine.Grads()
	require.ErrorIs(t, err, nn.ErrInvalidState)

	_, err = nn.NewSoftmaxWithLoss().Backward(1)
	require.ErrorIs(t, err, nn.ErrInvalidState)
}

// TestAffine_ForwardResetsGrads makes sure gradients of an earlier batch
// are not served after a new forward pass.
func TestAffine_ForwardResetsGrads(t *testing.T) {
	layer, err := nn.NewAffine(tensor.Full(1, 2, 2), tensor.Zeros(2))
	require.NoError(t, err)

	_, err = layer.Forward(tensor.Full(1, 1, 2))
	require.NoError(t, err)
	_, err = layer.Backward(tensor.Full(1, 1, 2))
	require.NoError(t, err)
	_, _, err = layer.Grads()
	require.NoError(t, err)

	_, err = layer.Forward(tensor.Full(2, 1, 2))
	require.NoError(t, err)
	_, _, err = layer.Grads()
	require.ErrorIs(t, err, nn.ErrInvalidState)
}

func TestSequential_BackwardReverseOrder(t *testing.T) {
	w1 := mustSlice(t, []float64{1, -1}, 1, 2)
	w2 := mustSlice(t, []float64{2, 3}, 2, 1)
	a1, err := nn.NewAffine(w1, tensor.Zeros(2))
	require.NoError(t, err)
	a2, err := nn.NewAffine(w2, tensor.Zeros(1))
	require.NoError(t, err)

	chain := nn.NewSequential(a1, nn.NewReLU(), a2)
	assert.Equal(t, 3, chain.Len())
	assert.Equal(t, nn.KindReLU, chain.Layer(1).Kind())
	assert.Len(t, chain.Affines(), 2)

	// h = relu([x, -x]) ; y = 2*h0 + 3*h1. For x = 2: y = 4, dy/dx = 2.
	y, err := chain.Forward(mustSlice(t, []float64{2}, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, y.Data())

	dx, err := chain.Backward(mustSlice(t, []float64{1}, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, dx.Data())

	assert.Panics(t, func() { chain.Layer(3) })
}

func TestTensorMap_Order(t *testing.T) {
	m := nn.NewTensorMap()
	for _, k := range []string{"W1", "b1", "W2", "b2"} {
		m.Set(k, tensor.Zeros(1))
	}
	m.Set("W1", tensor.Zeros(2))

	assert.Equal(t, []string{"W1", "b1", "W2", "b2"}, m.Keys())
	assert.Equal(t, 4, m.Len())
	w1, ok := m.Get("W1")
	require.True(t, ok)
	assert.Equal(t, tensor.Shape{2}, w1.Shape())

	_, ok = m.Get("W3")
	assert.False(t, ok)

	var zero nn.TensorMap
	assert.Equal(t, 0, zero.Len())
	assert.Empty(t, zero.Keys())

	zero.Set("b1", tensor.Zeros(3))
	assert.Equal(t, []string{"b1"}, zero.Keys())
	b1, ok := zero.Get("b1")
	require.True(t, ok)
	assert.Equal(t, tensor.Shape{3}, b1.Shape())
}

func TestCheckCompatible(t *testing.T) {
	params := nn.NewTensorMap()
	params.Set("W1", tensor.Zeros(2, 3))
	params.Set("b1", tensor.Zeros(3))

	grads := nn.NewTensorMap()
	grads.Set("W1", tensor.Zeros(2, 3))
	grads.Set("b1", tensor.Zeros(3))
	require.NoError(t, nn.CheckCompatible(params, grads))

	grads.Set("b1", tensor.Zeros(4))
	require.ErrorIs(t, nn.CheckCompatible(params, grads), tensor.ErrShapeMismatch)

	other := nn.NewTensorMap()
	other.Set("W1", tensor.Zeros(2, 3))
	other.Set("c1", tensor.Zeros(3))
	require.ErrorIs(t, nn.CheckCompatible(params, other), tensor.ErrShapeMismatch)

	short := nn.NewTensorMap()
	short.Set("W1", tensor.Zeros(2, 3))
	require.ErrorIs(t, nn.CheckCompatible(params, short), tensor.ErrShapeMismatch)
}

func TestTarget_Resolve(t *testing.T) {
	idx, err := nn.ClassIndices(2, 0).Resolve(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, idx)

	oneHot := nn.OneHot(mustSlice(t, []float64{0, 0, 1, 1, 0, 0}, 2, 3))
	assert.True(t, oneHot.IsOneHot())
	assert.Equal(t, 2, oneHot.Len())
	idx, err = oneHot.Resolve(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, idx)

	_, err = nn.ClassIndices(3).Resolve(1, 3)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = nn.ClassIndices(0, 1).Resolve(3, 3)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)
	_, err = oneHot.Resolve(2, 4)
	require.ErrorIs(t, err, tensor.ErrShapeMismatch)

	sub, err := oneHot.Subset([]int{1, 1, 0})
	require.NoError(t, err)
	idx, err = sub.Resolve(3, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 2}, idx)
}

func TestWeightInit(t *testing.T) {
	cases := []struct {
		token string
		fanIn int
		want  float64
	}{
		{"relu", 8, 0.5},
		{"He", 8, 0.5},
		{"sigmoid", 4, 0.5},
		{"XAVIER", 16, 0.25},
		{"0.01", 1000, 0.01},
		{"0", 10, 0},
		{"-0.5", 10, -0.5},
	}
	for _, tc := range cases {
		wi, err := nn.ParseWeightInit(tc.token)
		require.NoError(t, err, tc.token)
		assert.InDelta(t, tc.want, wi.Scale(tc.fanIn), 1e-15, tc.token)
	}

	var zero nn.WeightInit
	assert.Equal(t, "he", zero.String())
	assert.Equal(t, "xavier", nn.Xavier().String())
	assert.Equal(t, "0.01", nn.StdDev(0.01).String())

	for _, bad := range []string{"", "tanh", "NaN", "inf", "-Inf"} {
		_, err := nn.ParseWeightInit(bad)
		require.ErrorIs(t, err, nn.ErrInvalidConfig, bad)
	}
}
