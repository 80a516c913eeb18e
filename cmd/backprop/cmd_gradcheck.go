package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/backprop-go/backprop/internal/nn"
	"github.com/backprop-go/backprop/internal/numgrad"
	"github.com/backprop-go/backprop/internal/tensor"
)

type gradcheckFlags struct {
	net     netFlags
	samples int
	tol     float64
}

func newGradcheckCmd() *cobra.Command {
	var f gradcheckFlags
	cmd := &cobra.Command{
		Use:   "gradcheck",
		Short: "Compare backpropagated gradients with finite differences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gradcheckHandler(cmd, &f)
		},
	}
	addNetFlags(cmd, &f.net, []int{10})
	cmd.Flags().IntVar(&f.samples, "samples", 3, "Number of samples in the checked batch")
	cmd.Flags().Float64Var(&f.tol, "tol", 1e-4, "Largest accepted mean absolute difference per parameter")
	return cmd
}

func gradcheckHandler(cmd *cobra.Command, f *gradcheckFlags) error {
	rng := f.net.rng()
	trainSet, _, err := f.net.load(rng)
	if err != nil {
		return err
	}
	batch, err := trainSet.Head(f.samples)
	if err != nil {
		return err
	}
	target, err := batch.Target(f.net.oneHot)
	if err != nil {
		return err
	}

	cfg, err := f.net.config(features(batch), batch.Classes, rng)
	if err != nil {
		return err
	}
	net, err := nn.NewMultiLayerNet(cfg)
	if err != nil {
		return err
	}

	numerical, err := net.NumericalGradient(batch.X, target)
	if err != nil {
		return err
	}
	analytic, err := net.Gradient(batch.X, target)
	if err != nil {
		return err
	}

	var (
		rows   [][]string
		failed []string
	)
	for _, key := range analytic.Keys() {
		a, _ := analytic.Get(key)
		n, ok := numerical.Get(key)
		if !ok {
			return errors.Errorf("numerical gradient has no %q", key)
		}
		diff, err := numgrad.MeanAbsDiff(a, n)
		if err != nil {
			return err
		}
		rel, err := numgrad.RelativeError(a, n)
		if err != nil {
			return err
		}
		status := "ok"
		if !(diff <= f.tol) {
			status = "FAIL"
			failed = append(failed, key)
		}
		rows = append(rows, []string{key, shapeString(a), formatFloat(diff), formatFloat(rel), status})
	}
	renderTable(cmd.OutOrStdout(), []string{"PARAM", "SHAPE", "MEAN ABS DIFF", "REL ERROR", "STATUS"}, rows)

	if len(failed) > 0 {
		return errors.Errorf("gradient check failed for %v (tolerance %g)", failed, f.tol)
	}
	return nil
}

func shapeString(t *tensor.Dense) string {
	return t.Shape().String()
}
