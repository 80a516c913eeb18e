package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix returns a gonum view of a 2-D tensor.
//
// The returned matrix shares storage with t, so writes through either
// are visible in both. Panics if t is not 2-D.
func (t *Dense) Matrix() *mat.Dense {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("Matrix: expected 2-D tensor, got shape %v", t.shape))
	}
	return mat.NewDense(t.shape[0], t.shape[1], t.data)
}

// FromMatrix copies a gonum matrix into a new 2-D tensor.
func FromMatrix(m mat.Matrix) *Dense {
	r, c := m.Dims()
	t := Zeros(r, c)
	dst := mat.NewDense(r, c, t.data)
	dst.Copy(m)
	return t
}
