package main

import (
	"math/rand"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/backprop-go/backprop/internal/dataset"
	"github.com/backprop-go/backprop/internal/envconfig"
	"github.com/backprop-go/backprop/internal/nn"
)

// netFlags are the network and data options shared by every command.
type netFlags struct {
	data        string
	mnistDir    string
	spiralSize  int
	hidden      []int
	activation  string
	weightInit  string
	weightDecay float64
	seed        int64
	oneHot      bool
}

func addNetFlags(cmd *cobra.Command, f *netFlags, hidden []int) {
	cmd.Flags().StringVar(&f.data, "data", "spiral", "Dataset: spiral or mnist")
	cmd.Flags().StringVar(&f.mnistDir, "mnist-dir", envconfig.MNISTDir(), "Directory with the gzipped MNIST IDX files")
	cmd.Flags().IntVar(&f.spiralSize, "spiral-points", 100, "Points per class for the spiral dataset")
	cmd.Flags().IntSliceVar(&f.hidden, "hidden", hidden, "Hidden layer widths")
	cmd.Flags().StringVar(&f.activation, "activation", "relu", "Hidden activation: relu or sigmoid")
	cmd.Flags().StringVar(&f.weightInit, "init", "he", "Weight init: he, relu, xavier, sigmoid or a standard deviation")
	cmd.Flags().Float64Var(&f.weightDecay, "weight-decay", 0, "L2 weight decay coefficient")
	cmd.Flags().Int64Var(&f.seed, "seed", envconfig.Seed(), "Random seed (0 seeds from the clock)")
	cmd.Flags().BoolVar(&f.oneHot, "one-hot", false, "Feed targets as one-hot rows instead of class indices")
}

// rng returns a source for this run. Each call with a fixed seed returns
// an identically seeded, independent source.
func (f *netFlags) rng() *rand.Rand {
	seed := f.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		f.seed = seed
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // not security-critical
}

func (f *netFlags) load(rng *rand.Rand) (train, test *dataset.Set, err error) {
	switch strings.ToLower(f.data) {
	case "spiral":
		if train, err = dataset.Spiral(rng, f.spiralSize, 3); err != nil {
			return nil, nil, err
		}
		if test, err = dataset.Spiral(rng, f.spiralSize, 3); err != nil {
			return nil, nil, err
		}
		return train, test, nil
	case "mnist":
		return dataset.LoadMNIST(f.mnistDir, dataset.MNISTOptions{Normalize: true})
	default:
		return nil, nil, errors.Errorf("unknown dataset %q (want spiral or mnist)", f.data)
	}
}

func (f *netFlags) config(inputSize, outputSize int, rng *rand.Rand) (nn.Config, error) {
	act, err := nn.ParseActivation(f.activation)
	if err != nil {
		return nn.Config{}, err
	}
	wi, err := nn.ParseWeightInit(f.weightInit)
	if err != nil {
		return nn.Config{}, err
	}
	return nn.Config{
		InputSize:   inputSize,
		HiddenSizes: f.hidden,
		OutputSize:  outputSize,
		Activation:  act,
		WeightInit:  wi,
		WeightDecay: f.weightDecay,
		Rand:        rng,
	}, nil
}

// features returns the per-sample feature count of s.
func features(s *dataset.Set) int {
	return s.X.NumElements() / s.Len()
}
