package nn

import (
	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/backend/cpu"
	"github.com/backprop-go/backprop/internal/tensor"
)

// Target holds the supervision labels for a batch.
//
// The representation is chosen explicitly by the caller: ClassIndices for
// one integer class per sample, OneHot for an [N, K] indicator matrix.
// The zero value is an empty index target.
type Target struct {
	indices []int
	oneHot  *tensor.Dense
}

// ClassIndices creates a target from one class index per sample.
func ClassIndices(indices ...int) Target {
	return Target{indices: indices}
}

// OneHot creates a target from an [N, K] one-hot matrix.
// Each row resolves to the index of its largest entry.
func OneHot(t *tensor.Dense) Target {
	return Target{oneHot: t}
}

// IsOneHot reports whether the target was built with OneHot.
func (t Target) IsOneHot() bool {
	return t.oneHot != nil
}

// Len returns the number of samples in the target.
func (t Target) Len() int {
	if t.oneHot != nil {
		if t.oneHot.Dims() == 0 {
			return 0
		}
		return t.oneHot.Dim(0)
	}
	return len(t.indices)
}

// Resolve returns one class index per sample, validated against a batch of
// n samples over k classes.
func (t Target) Resolve(n, k int) ([]int, error) {
	if t.oneHot != nil {
		want := tensor.Shape{n, k}
		if !t.oneHot.Shape().Equal(want) {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch, "one-hot target %v, want %v", t.oneHot.Shape(), want)
		}
		return cpu.ArgmaxRows(t.oneHot)
	}

	if len(t.indices) != n {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "target has %d labels for a batch of %d", len(t.indices), n)
	}
	for i, c := range t.indices {
		if c < 0 || c >= k {
			return nil, errors.Wrapf(tensor.ErrShapeMismatch, "target %d: class %d out of range [0, %d)", i, c, k)
		}
	}
	out := make([]int, n)
	copy(out, t.indices)
	return out, nil
}

// Subset returns the target restricted to the given sample indices, in
// order. Used for mini-batch sampling.
func (t Target) Subset(rows []int) (Target, error) {
	if t.oneHot == nil {
		out := make([]int, len(rows))
		for i, r := range rows {
			if r < 0 || r >= len(t.indices) {
				return Target{}, errors.Wrapf(tensor.ErrShapeMismatch, "row %d out of range [0, %d)", r, len(t.indices))
			}
			out[i] = t.indices[r]
		}
		return ClassIndices(out...), nil
	}

	if t.oneHot.Dims() != 2 {
		return Target{}, errors.Wrapf(tensor.ErrShapeMismatch, "one-hot target must be 2-D, got %v", t.oneHot.Shape())
	}
	k := t.oneHot.Dim(1)
	sub, err := tensor.New(tensor.Shape{len(rows), k})
	if err != nil {
		return Target{}, err
	}
	for i, r := range rows {
		if r < 0 || r >= t.oneHot.Dim(0) {
			return Target{}, errors.Wrapf(tensor.ErrShapeMismatch, "row %d out of range [0, %d)", r, t.oneHot.Dim(0))
		}
		copy(sub.Row(i), t.oneHot.Row(r))
	}
	return OneHot(sub), nil
}
