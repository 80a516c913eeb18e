// Package tensor provides the n-dimensional float64 array that flows
// between layers.
//
// A Dense tensor has a fixed shape for its whole lifetime. Reshape never
// mutates the receiver; it returns a new Dense that views the same storage.
// Two layouts are used throughout the module:
//   - 2-D (batch, features) for dense layers
//   - 4-D (batch, channels, height, width) for windowed transforms
package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Dense is a row-major n-dimensional array of float64 values.
type Dense struct {
	shape  Shape
	stride []int
	data   []float64
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Dense{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		data:   make([]float64, shape.NumElements()),
	}, nil
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	if shape.NumElements() != len(data) {
		return nil, errors.Wrapf(ErrInvalidShape, "shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}

	t, err := New(shape)
	if err != nil {
		return nil, err
	}
	copy(t.data, data)

	return t, nil
}

// Shape returns the tensor's shape.
//
// The returned slice must not be modified.
func (t *Dense) Shape() Shape {
	return t.shape
}

// Dims returns the number of dimensions.
func (t *Dense) Dims() int {
	return len(t.shape)
}

// Dim returns the size of dimension i.
func (t *Dense) Dim(i int) int {
	return t.shape[i]
}

// NumElements returns the total number of elements.
func (t *Dense) NumElements() int {
	return len(t.data)
}

// Data returns the underlying storage in row-major order.
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Dense) Data() []float64 {
	return t.data
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Dense) At(indices ...int) float64 {
	return t.data[t.offset(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Dense) Set(value float64, indices ...int) {
	t.data[t.offset(indices)] = value
}

func (t *Dense) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(t.shape), len(indices)))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i]))
		}
		offset += idx * t.stride[i]
	}
	return offset
}

// Row returns row i of a 2-D tensor as a slice of the underlying storage.
func (t *Dense) Row(i int) []float64 {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("Row: expected 2-D tensor, got shape %v", t.shape))
	}
	cols := t.shape[1]
	return t.data[i*cols : (i+1)*cols]
}

// Reshape returns a view of the tensor with a new shape.
//
// The view shares storage with t. A single dimension may be -1, in which
// case it is inferred from the element count.
func (t *Dense) Reshape(dims ...int) (*Dense, error) {
	shape := Shape(dims).Clone()

	infer := -1
	known := 1
	for i, d := range shape {
		if d == -1 {
			if infer >= 0 {
				return nil, errors.Wrapf(ErrInvalidShape, "reshape %v: only one dimension can be -1", dims)
			}
			infer = i
			continue
		}
		known *= d
	}
	if infer >= 0 && known > 0 {
		shape[infer] = len(t.data) / known
	}

	if err := shape.Validate(); err != nil {
		return nil, errors.Wrapf(err, "reshape %v to %v", t.shape, dims)
	}
	if shape.NumElements() != len(t.data) {
		return nil, errors.Wrapf(ErrShapeMismatch, "cannot reshape %v (%d elements) to %v",
			t.shape, len(t.data), shape)
	}

	return &Dense{
		shape:  shape,
		stride: shape.ComputeStrides(),
		data:   t.data,
	}, nil
}

// Clone creates a deep copy of the tensor.
func (t *Dense) Clone() *Dense {
	data := make([]float64, len(t.data))
	copy(data, t.data)
	return &Dense{
		shape:  t.shape.Clone(),
		stride: t.shape.ComputeStrides(),
		data:   data,
	}
}

// SameShape reports whether t and other have identical shapes.
func (t *Dense) SameShape(other *Dense) bool {
	return t.shape.Equal(other.shape)
}

// String returns a human-readable representation of the tensor.
func (t *Dense) String() string {
	return fmt.Sprintf("Dense%v", t.shape)
}
