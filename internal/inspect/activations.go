// Package inspect measures how a weight-initialization policy shapes the
// activations of a deep stack before any training happens.
package inspect

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/backprop-go/backprop/internal/nn"
	"github.com/backprop-go/backprop/internal/tensor"
)

// Config describes the probe stack: Layers hidden layers of Width units,
// fed Samples standard-normal inputs of Width features.
type Config struct {
	Samples    int
	Width      int
	Layers     int
	Activation nn.Activation
	WeightInit nn.WeightInit
	Bins       int // histogram bins over [0, 1] (default 10)
}

// LayerStats summarizes the activations of one layer.
type LayerStats struct {
	Layer     int
	Mean      float64
	StdDev    float64
	Histogram []float64 // counts per bin over [0, 1]; values outside are not counted
}

// Activations forwards random data through a bias-free stack and reports
// the distribution of every layer's output.
func Activations(rng *rand.Rand, cfg Config) ([]LayerStats, error) {
	if cfg.Samples <= 0 || cfg.Width <= 0 || cfg.Layers <= 0 {
		return nil, errors.Wrapf(nn.ErrInvalidConfig, "inspect: samples, width and layers must be positive, got %d, %d, %d",
			cfg.Samples, cfg.Width, cfg.Layers)
	}
	bins := cfg.Bins
	if bins == 0 {
		bins = 10
	}
	if bins < 1 {
		return nil, errors.Wrapf(nn.ErrInvalidConfig, "inspect: histogram needs at least one bin, got %d", bins)
	}

	dividers := make([]float64, bins+1)
	floats.Span(dividers, 0, 1)

	x := tensor.Randn(rng, cfg.Samples, cfg.Width)
	out := make([]LayerStats, 0, cfg.Layers)
	for i := 0; i < cfg.Layers; i++ {
		w := tensor.Randn(rng, cfg.Width, cfg.Width)
		floats.Scale(cfg.WeightInit.Scale(cfg.Width), w.Data())

		affine, err := nn.NewAffine(w, tensor.Zeros(cfg.Width))
		if err != nil {
			return nil, err
		}
		act, err := nn.NewActivation(cfg.Activation)
		if err != nil {
			return nil, err
		}
		if x, err = nn.NewSequential(affine, act).Forward(x); err != nil {
			return nil, errors.Wrapf(err, "inspect: layer %d", i+1)
		}

		out = append(out, summarize(i+1, x.Data(), dividers))
	}
	return out, nil
}

func summarize(layer int, values, dividers []float64) LayerStats {
	mean, std := stat.MeanStdDev(values, nil)

	// stat.Histogram requires sorted data inside [dividers[0], dividers[last]).
	lo, hi := dividers[0], dividers[len(dividers)-1]
	inRange := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= lo && v < hi {
			inRange = append(inRange, v)
		}
	}
	sort.Float64s(inRange)

	return LayerStats{
		Layer:     layer,
		Mean:      mean,
		StdDev:    std,
		Histogram: stat.Histogram(nil, dividers, inRange, nil),
	}
}
