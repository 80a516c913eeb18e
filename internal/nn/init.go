package nn

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/tensor"
)

// WeightInit is the policy that picks the standard deviation of the
// Gaussian draw for an Affine weight matrix. The zero value is He.
type WeightInit struct {
	kind initKind
	std  float64
}

type initKind int

const (
	initHe initKind = iota
	initXavier
	initFixed
)

// He scales by sqrt(2 / fan_in). Suited to ReLU.
func He() WeightInit { return WeightInit{kind: initHe} }

// Xavier scales by sqrt(1 / fan_in). Suited to Sigmoid.
func Xavier() WeightInit { return WeightInit{kind: initXavier} }

// StdDev uses a fixed standard deviation regardless of fan-in.
func StdDev(s float64) WeightInit { return WeightInit{kind: initFixed, std: s} }

// ParseWeightInit maps a token to a policy.
//
// "relu" and "he" select He; "sigmoid" and "xavier" select Xavier
// (case-insensitive). Any other token must parse as a finite number and
// selects StdDev with that value used as is.
func ParseWeightInit(token string) (WeightInit, error) {
	switch t := strings.ToLower(strings.TrimSpace(token)); t {
	case "relu", "he":
		return He(), nil
	case "sigmoid", "xavier":
		return Xavier(), nil
	default:
		s, err := strconv.ParseFloat(t, 64)
		if err != nil || math.IsNaN(s) || math.IsInf(s, 0) {
			return WeightInit{}, errors.Wrapf(ErrInvalidConfig, "weight init %q: want relu, he, sigmoid, xavier or a number", token)
		}
		return StdDev(s), nil
	}
}

// Scale returns the standard deviation for a layer with fanIn inputs.
func (w WeightInit) Scale(fanIn int) float64 {
	switch w.kind {
	case initXavier:
		return math.Sqrt(1.0 / float64(fanIn))
	case initFixed:
		return w.std
	default:
		return math.Sqrt(2.0 / float64(fanIn))
	}
}

// String returns the token that ParseWeightInit accepts for w.
func (w WeightInit) String() string {
	switch w.kind {
	case initXavier:
		return "xavier"
	case initFixed:
		return strconv.FormatFloat(w.std, 'g', -1, 64)
	default:
		return "he"
	}
}

// initWeight draws an [in, out] weight matrix from N(0, scale²).
func (w WeightInit) initWeight(rng *rand.Rand, in, out int) *tensor.Dense {
	t := tensor.Randn(rng, in, out)
	scale := w.Scale(in)
	data := t.Data()
	for i := range data {
		data[i] *= scale
	}
	return t
}
