package nn

import (
	"math"

	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/backend/cpu"
	"github.com/backprop-go/backprop/internal/tensor"
)

// crossEntropyDelta keeps log away from log(0) for a probability that
// underflowed to zero. It does not mask NaN.
const crossEntropyDelta = 1e-7

// SoftmaxWithLoss is the terminal layer: softmax followed by mean
// cross-entropy against a Target.
//
// Mathematical Formulation:
//
//	y    = Softmax(logits)                       (row-wise, max-subtracted)
//	Loss = -Σ_i log(y[i, t_i] + 1e-7) / N
//
// Gradient (Backward):
//
//	∂L/∂logits = (y - onehot(t)) / N
//
// The gradient is the closed form of the combined softmax + cross-entropy
// derivative; softmax is never differentiated on its own.
type SoftmaxWithLoss struct {
	state cache[softmaxState]
}

type softmaxState struct {
	probs  *tensor.Dense // y, [N, K]
	labels []int         // resolved class per row
}

// NewSoftmaxWithLoss creates the terminal loss layer.
func NewSoftmaxWithLoss() *SoftmaxWithLoss {
	return &SoftmaxWithLoss{}
}

// Kind reports KindSoftmaxWithLoss.
func (s *SoftmaxWithLoss) Kind() Kind { return KindSoftmaxWithLoss }

// Forward computes the mean cross-entropy loss of logits [N, K] against t
// and caches the probabilities and resolved labels.
func (s *SoftmaxWithLoss) Forward(logits *tensor.Dense, t Target) (float64, error) {
	if logits.Dims() != 2 {
		return 0, errors.Wrapf(tensor.ErrShapeMismatch, "softmax loss: logits must be 2-D [batch, classes], got %v",
			logits.Shape())
	}
	n, k := logits.Dim(0), logits.Dim(1)

	labels, err := t.Resolve(n, k)
	if err != nil {
		return 0, errors.Wrap(err, "softmax loss")
	}
	y, err := cpu.SoftmaxRows(logits)
	if err != nil {
		return 0, errors.Wrap(err, "softmax loss")
	}

	var sum float64
	for i, c := range labels {
		sum += math.Log(y.At(i, c) + crossEntropyDelta)
	}

	s.state.set(softmaxState{probs: y, labels: labels})
	return -sum / float64(n), nil
}

// Backward returns dout * (y - onehot(t)) / N. The root of the backward
// pass calls it with dout = 1.
func (s *SoftmaxWithLoss) Backward(dout float64) (*tensor.Dense, error) {
	st, err := s.state.get(KindSoftmaxWithLoss, noForward)
	if err != nil {
		return nil, err
	}

	dx := st.probs.Clone()
	for i, c := range st.labels {
		dx.Row(i)[c] -= 1
	}
	scale := dout / float64(dx.Dim(0))
	data := dx.Data()
	for i := range data {
		data[i] *= scale
	}
	return dx, nil
}

// Probs returns the softmax probabilities of the most recent Forward.
func (s *SoftmaxWithLoss) Probs() (*tensor.Dense, error) {
	st, err := s.state.get(KindSoftmaxWithLoss, "probabilities read before forward")
	if err != nil {
		return nil, err
	}
	return st.probs, nil
}
