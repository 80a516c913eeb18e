package main

import (
	"log/slog"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/backprop-go/backprop/internal/curve"
	"github.com/backprop-go/backprop/internal/dataset"
	"github.com/backprop-go/backprop/internal/nn"
	"github.com/backprop-go/backprop/internal/optim"
	"github.com/backprop-go/backprop/internal/train"
)

type compareFlags struct {
	net        netFlags
	optimizers []string
	iters      int
	batchSize  int
}

func newCompareCmd() *cobra.Command {
	var f compareFlags
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Train one network per optimizer from the same initial weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return compareHandler(cmd, &f)
		},
	}
	addNetFlags(cmd, &f.net, []int{100, 100, 100, 100})
	cmd.Flags().StringSliceVar(&f.optimizers, "optimizers", optim.Names(), "Optimizers to compare")
	cmd.Flags().IntVar(&f.iters, "iters", 2000, "Number of mini-batch updates per optimizer")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", 128, "Samples per mini-batch")
	return cmd
}

type compareResult struct {
	name     string
	final    float64
	trainAcc float64
	testAcc  float64
}

func compareHandler(cmd *cobra.Command, f *compareFlags) error {
	trainSet, testSet, err := f.net.load(f.net.rng())
	if err != nil {
		return err
	}
	trainTarget, err := trainSet.Target(false)
	if err != nil {
		return err
	}
	testTarget, err := testSet.Target(false)
	if err != nil {
		return err
	}

	// Every worker owns its network, optimizer and random source; only the
	// datasets are shared, and they are read-only.
	seed := f.net.seed
	results := make([]compareResult, len(f.optimizers))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, name := range f.optimizers {
		i, name := i, name
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed)) //nolint:gosec // not security-critical
			cfg, err := f.net.config(features(trainSet), trainSet.Classes, rng)
			if err != nil {
				return err
			}
			net, err := nn.NewMultiLayerNet(cfg)
			if err != nil {
				return err
			}
			opt, err := optim.New(name, 0)
			if err != nil {
				return err
			}

			t := &train.Trainer{
				Net:       net,
				Optimizer: opt,
				Train:     trainSet,
				Rand:      rng,
				Logger:    slog.Default().With("optimizer", strings.ToLower(name)),
				Config: train.Config{
					Iters:     f.iters,
					BatchSize: f.batchSize,
					OneHot:    f.net.oneHot,
					EvalEvery: f.iters,
				},
			}
			history, err := t.Run(ctx)
			if err != nil {
				return err
			}
			return finishCompare(&results[i], name, net, history, trainSet, testSet, trainTarget, testTarget)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.name, formatFloat(r.final), formatPercent(r.trainAcc), formatPercent(r.testAcc)})
	}
	renderTable(cmd.OutOrStdout(), []string{"OPTIMIZER", "FINAL LOSS", "TRAIN ACC", "TEST ACC"}, rows)
	return nil
}

func finishCompare(r *compareResult, name string, net *nn.MultiLayerNet, h train.History,
	trainSet, testSet *dataset.Set, trainTarget, testTarget nn.Target,
) error {
	r.name = name
	if smoothed := curve.Smooth(h.Loss); len(smoothed) > 0 {
		r.final = smoothed[len(smoothed)-1]
	}
	var err error
	if r.trainAcc, err = net.Accuracy(trainSet.X, trainTarget); err != nil {
		return err
	}
	r.testAcc, err = net.Accuracy(testSet.X, testTarget)
	return err
}
