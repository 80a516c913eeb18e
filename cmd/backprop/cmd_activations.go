package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/backprop-go/backprop/internal/inspect"
	"github.com/backprop-go/backprop/internal/nn"
)

type activationsFlags struct {
	samples    int
	width      int
	layers     int
	bins       int
	activation string
	weightInit string
	seed       int64
}

func newActivationsCmd() *cobra.Command {
	var f activationsFlags
	cmd := &cobra.Command{
		Use:   "activations",
		Short: "Show how a weight init shapes activations through a deep stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return activationsHandler(cmd, &f)
		},
	}
	cmd.Flags().IntVar(&f.samples, "samples", 1000, "Number of random input samples")
	cmd.Flags().IntVar(&f.width, "width", 100, "Units per layer")
	cmd.Flags().IntVar(&f.layers, "layers", 5, "Number of hidden layers")
	cmd.Flags().IntVar(&f.bins, "bins", 10, "Histogram bins over [0, 1]")
	cmd.Flags().StringVar(&f.activation, "activation", "sigmoid", "Activation: relu or sigmoid")
	cmd.Flags().StringVar(&f.weightInit, "init", "1", "Weight init: he, relu, xavier, sigmoid or a standard deviation")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Random seed (0 seeds from the clock)")
	return cmd
}

func activationsHandler(cmd *cobra.Command, f *activationsFlags) error {
	act, err := nn.ParseActivation(f.activation)
	if err != nil {
		return err
	}
	wi, err := nn.ParseWeightInit(f.weightInit)
	if err != nil {
		return err
	}
	nf := netFlags{seed: f.seed}

	stats, err := inspect.Activations(nf.rng(), inspect.Config{
		Samples:    f.samples,
		Width:      f.width,
		Layers:     f.layers,
		Activation: act,
		WeightInit: wi,
		Bins:       f.bins,
	})
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			strconv.Itoa(s.Layer),
			formatFloat(s.Mean),
			formatFloat(s.StdDev),
			sparkline(s.Histogram),
		})
	}
	renderTable(cmd.OutOrStdout(), []string{"LAYER", "MEAN", "STD", "HISTOGRAM [0,1]"}, rows)
	return nil
}

var sparks = []rune("▁▂▃▄▅▆▇█")

func sparkline(counts []float64) string {
	if len(counts) == 0 {
		return ""
	}
	top := floats.Max(counts)
	var b strings.Builder
	for _, c := range counts {
		i := 0
		if top > 0 {
			i = int(c / top * float64(len(sparks)-1))
		}
		b.WriteRune(sparks[i])
	}
	return b.String()
}
