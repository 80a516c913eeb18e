package cpu

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/backprop-go/backprop/internal/tensor"
)

// MatMul performs matrix multiplication.
// For 2D tensors: (M, K) @ (K, N) -> (M, N).
// The product is computed by gonum's BLAS-backed mat.Dense.Mul.
func MatMul(a, b *tensor.Dense) (*tensor.Dense, error) {
	if err := require2D("matmul", a, b); err != nil {
		return nil, err
	}
	if a.Dim(1) != b.Dim(0) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "matmul: %v @ %v", a.Shape(), b.Shape())
	}
	return mul(a.Matrix(), b.Matrix(), a.Dim(0), b.Dim(1)), nil
}

// MatMulTransA computes aᵀ @ b without materializing the transpose.
// (K, M)ᵀ @ (K, N) -> (M, N).
func MatMulTransA(a, b *tensor.Dense) (*tensor.Dense, error) {
	if err := require2D("matmul transA", a, b); err != nil {
		return nil, err
	}
	if a.Dim(0) != b.Dim(0) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "matmul transA: %vᵀ @ %v", a.Shape(), b.Shape())
	}
	return mul(a.Matrix().T(), b.Matrix(), a.Dim(1), b.Dim(1)), nil
}

// MatMulTransB computes a @ bᵀ without materializing the transpose.
// (M, K) @ (N, K)ᵀ -> (M, N).
func MatMulTransB(a, b *tensor.Dense) (*tensor.Dense, error) {
	if err := require2D("matmul transB", a, b); err != nil {
		return nil, err
	}
	if a.Dim(1) != b.Dim(1) {
		return nil, errors.Wrapf(tensor.ErrShapeMismatch, "matmul transB: %v @ %vᵀ", a.Shape(), b.Shape())
	}
	return mul(a.Matrix(), b.Matrix().T(), a.Dim(0), b.Dim(0)), nil
}

func mul(a, b mat.Matrix, rows, cols int) *tensor.Dense {
	out := tensor.Zeros(rows, cols)
	out.Matrix().Mul(a, b)
	return out
}

func require2D(op string, a, b *tensor.Dense) error {
	if a.Dims() != 2 || b.Dims() != 2 {
		return errors.Wrapf(tensor.ErrShapeMismatch, "%s: only 2D tensors supported, got %v and %v",
			op, a.Shape(), b.Shape())
	}
	return nil
}
