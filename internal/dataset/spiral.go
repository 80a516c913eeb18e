package dataset

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/tensor"
)

// Spiral generates the classic interleaved-arms toy problem: classes arms
// of pointsPerClass 2-D points each, with Gaussian angular noise. It is not
// linearly separable, so a hidden layer is required to fit it.
func Spiral(rng *rand.Rand, pointsPerClass, classes int) (*Set, error) {
	if pointsPerClass < 2 || classes < 2 {
		return nil, errors.Errorf("spiral: need at least 2 points and 2 classes, got %d and %d", pointsPerClass, classes)
	}

	n := pointsPerClass * classes
	x := tensor.Zeros(n, 2)
	labels := make([]int, n)

	for c := 0; c < classes; c++ {
		for i := 0; i < pointsPerClass; i++ {
			rate := float64(i) / float64(pointsPerClass-1)
			radius := rate
			theta := float64(c)*4 + 4*rate + rng.NormFloat64()*0.2

			row := c*pointsPerClass + i
			x.Row(row)[0] = radius * math.Sin(theta)
			x.Row(row)[1] = radius * math.Cos(theta)
			labels[row] = c
		}
	}
	return NewSet(x, labels, classes)
}
