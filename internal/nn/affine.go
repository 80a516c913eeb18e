package nn

import (
	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/backend/cpu"
	"github.com/backprop-go/backprop/internal/tensor"
)

// Affine implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [in_features, out_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Inputs of rank > 2 are flattened to [batch_size, prod(rest)] and the
// input gradient is reshaped back, so a 4-D activation can feed an Affine.
//
// The layer exclusively owns W and b. Optimizers update them in place
// through the view returned by MultiLayerNet.Params.
type Affine struct {
	weight *tensor.Dense // [in_features, out_features]
	bias   *tensor.Dense // [out_features]

	input cache[affineInput]
	grads cache[affineGrads]
}

type affineInput struct {
	x     *tensor.Dense // 2-D view of the forward input
	shape tensor.Shape  // original input shape
}

type affineGrads struct {
	dW, db *tensor.Dense
}

// NewAffine creates an Affine layer that takes ownership of weight and bias.
//
// weight must be 2-D [in, out] and bias must hold exactly out elements.
func NewAffine(weight, bias *tensor.Dense) (*Affine, error) {
	if weight.Dims() != 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "affine: weight must be 2-D [in,out], got %v", weight.Shape())
	}
	if bias.Dims() != 1 || bias.Dim(0) != weight.Dim(1) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "affine: bias %v does not match weight %v",
			bias.Shape(), weight.Shape())
	}
	return &Affine{weight: weight, bias: bias}, nil
}

// Kind implements Layer.
func (a *Affine) Kind() Kind { return KindAffine }

func (a *Affine) sealed() {}

// Forward computes x @ W + b and caches x.
func (a *Affine) Forward(x *tensor.Dense) (*tensor.Dense, error) {
	if x.Dims() < 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "affine: expected input [batch, features...], got %v", x.Shape())
	}

	x2 := x
	if x.Dims() > 2 {
		var err error
		if x2, err = x.Reshape(x.Dim(0), -1); err != nil {
			return nil, errors.Wrap(err, "affine: flatten input")
		}
	}
	if x2.Dim(1) != a.weight.Dim(0) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "affine: input has %d features, weight expects %d",
			x2.Dim(1), a.weight.Dim(0))
	}

	xw, err := cpu.MatMul(x2, a.weight)
	if err != nil {
		return nil, errors.Wrap(err, "affine forward")
	}
	out, err := cpu.AddRowVector(xw, a.bias)
	if err != nil {
		return nil, errors.Wrap(err, "affine forward")
	}

	a.input.set(affineInput{x: x2, shape: x.Shape().Clone()})
	a.grads = cache[affineGrads]{}
	return out, nil
}

// Backward returns dX = dout @ Wᵀ and records dW = xᵀ @ dout and
// db = column-sum(dout) for retrieval through Grads.
func (a *Affine) Backward(dout *tensor.Dense) (*tensor.Dense, error) {
	in, err := a.input.get(KindAffine, noForward)
	if err != nil {
		return nil, err
	}
	want := tensor.Shape{in.x.Dim(0), a.weight.Dim(1)}
	if !dout.Shape().Equal(want) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "affine backward: gradient %v, want %v", dout.Shape(), want)
	}

	dx, err := cpu.MatMulTransB(dout, a.weight)
	if err != nil {
		return nil, errors.Wrap(err, "affine backward")
	}
	dW, err := cpu.MatMulTransA(in.x, dout)
	if err != nil {
		return nil, errors.Wrap(err, "affine backward")
	}
	db, err := cpu.SumColumns(dout)
	if err != nil {
		return nil, errors.Wrap(err, "affine backward")
	}
	a.grads.set(affineGrads{dW: dW, db: db})

	if len(in.shape) > 2 {
		return dx.Reshape(in.shape...)
	}
	return dx, nil
}

// Grads returns dW and db from the most recent Backward.
func (a *Affine) Grads() (dW, db *tensor.Dense, err error) {
	g, err := a.grads.get(KindAffine, "gradients read before backward")
	if err != nil {
		return nil, nil, err
	}
	return g.dW, g.db, nil
}

// Weight returns the weight tensor [in_features, out_features].
func (a *Affine) Weight() *tensor.Dense {
	return a.weight
}

// Bias returns the bias tensor [out_features].
func (a *Affine) Bias() *tensor.Dense {
	return a.bias
}

// InFeatures returns the number of input features.
func (a *Affine) InFeatures() int {
	return a.weight.Dim(0)
}

// OutFeatures returns the number of output features.
func (a *Affine) OutFeatures() int {
	return a.weight.Dim(1)
}
