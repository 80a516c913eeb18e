// Package dataset supplies in-memory training data to the training loop:
// MNIST loading, a synthetic spiral problem, shuffling and mini-batch
// sampling.
package dataset

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/nn"
	"github.com/backprop-go/backprop/internal/tensor"
)

// Set is a labelled dataset. X has the sample axis first, either
// [N, features] or [N, C, H, W]; Labels holds one class index per sample.
type Set struct {
	X       *tensor.Dense
	Labels  []int
	Classes int
}

// NewSet validates x against labels and wraps them.
func NewSet(x *tensor.Dense, labels []int, classes int) (*Set, error) {
	if x.Dims() < 2 {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "dataset: inputs must have a sample axis and features, got %v", x.Shape())
	}
	if x.Dim(0) != len(labels) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "dataset: %d samples but %d labels", x.Dim(0), len(labels))
	}
	for i, l := range labels {
		if l < 0 || l >= classes {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch, "dataset: label %d of sample %d out of range [0, %d)", l, i, classes)
		}
	}
	return &Set{X: x, Labels: labels, Classes: classes}, nil
}

// Len returns the number of samples.
func (s *Set) Len() int {
	return len(s.Labels)
}

// Target returns the labels as class indices, or as a one-hot matrix when
// oneHot is set.
func (s *Set) Target(oneHot bool) (nn.Target, error) {
	if !oneHot {
		return nn.ClassIndices(s.Labels...), nil
	}
	t, err := ToOneHot(s.Labels, s.Classes)
	if err != nil {
		return nn.Target{}, err
	}
	return nn.OneHot(t), nil
}

// Batch returns the samples at rows, in order.
func (s *Set) Batch(rows []int) (*Set, error) {
	x, err := Gather(s.X, rows)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(rows))
	for i, r := range rows {
		labels[i] = s.Labels[r]
	}
	return &Set{X: x, Labels: labels, Classes: s.Classes}, nil
}

// Head returns the first n samples, or all of them if n exceeds Len.
func (s *Set) Head(n int) (*Set, error) {
	if n < 0 {
		return nil, errors.Wrapf(tensor.ErrInvalidShape, "dataset: head of %d samples", n)
	}
	if n > s.Len() {
		n = s.Len()
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return s.Batch(rows)
}

// Shuffle returns a copy of s with its samples in random order.
func (s *Set) Shuffle(rng *rand.Rand) (*Set, error) {
	return s.Batch(rng.Perm(s.Len()))
}

// Gather copies the sub-tensors x[rows[0]], x[rows[1]], … along the first
// axis into a new tensor. Works for any rank ≥ 1.
func Gather(x *tensor.Dense, rows []int) (*tensor.Dense, error) {
	if x.Dims() < 1 {
		return nil, errors.Wrap(tensor.ErrShapeMismatch, "gather: scalar tensor")
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(tensor.ErrInvalidShape, "gather: no rows selected")
	}

	n := x.Dim(0)
	stride := x.NumElements() / n
	shape := x.Shape().Clone()
	shape[0] = len(rows)

	out, err := tensor.New(shape)
	if err != nil {
		return nil, err
	}
	src, dst := x.Data(), out.Data()
	for i, r := range rows {
		if r < 0 || r >= n {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch, "gather: row %d out of range [0, %d)", r, n)
		}
		copy(dst[i*stride:(i+1)*stride], src[r*stride:(r+1)*stride])
	}
	return out, nil
}

// SampleBatch draws size row indices uniformly from [0, n) with
// replacement.
func SampleBatch(rng *rand.Rand, n, size int) []int {
	rows := make([]int, size)
	for i := range rows {
		rows[i] = rng.Intn(n)
	}
	return rows
}

// ToOneHot encodes class indices as an [N, classes] indicator matrix.
func ToOneHot(labels []int, classes int) (*tensor.Dense, error) {
	t, err := tensor.New(tensor.Shape{len(labels), classes})
	if err != nil {
		return nil, errors.Wrap(err, "one-hot")
	}
	for i, l := range labels {
		if l < 0 || l >= classes {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch, "one-hot: label %d out of range [0, %d)", l, classes)
		}
		t.Row(i)[l] = 1
	}
	return t, nil
}
