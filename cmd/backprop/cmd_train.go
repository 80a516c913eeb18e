package main

import (
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/backprop-go/backprop/internal/curve"
	"github.com/backprop-go/backprop/internal/nn"
	"github.com/backprop-go/backprop/internal/optim"
	"github.com/backprop-go/backprop/internal/train"
)

type trainFlags struct {
	net       netFlags
	optimizer string
	lr        float64
	iters     int
	batchSize int
}

func newTrainCmd() *cobra.Command {
	var f trainFlags
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a network with mini-batch gradient descent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return trainHandler(cmd, &f)
		},
	}
	addNetFlags(cmd, &f.net, []int{50})
	cmd.Flags().StringVar(&f.optimizer, "optimizer", "sgd", "Optimizer name")
	cmd.Flags().Float64Var(&f.lr, "lr", 0.1, "Learning rate (0 keeps the optimizer default)")
	cmd.Flags().IntVar(&f.iters, "iters", 10000, "Number of mini-batch updates")
	cmd.Flags().IntVar(&f.batchSize, "batch-size", 100, "Samples per mini-batch")
	return cmd
}

func trainHandler(cmd *cobra.Command, f *trainFlags) error {
	rng := f.net.rng()
	trainSet, testSet, err := f.net.load(rng)
	if err != nil {
		return err
	}
	cfg, err := f.net.config(features(trainSet), trainSet.Classes, rng)
	if err != nil {
		return err
	}
	net, err := nn.NewMultiLayerNet(cfg)
	if err != nil {
		return err
	}
	opt, err := optim.New(f.optimizer, f.lr)
	if err != nil {
		return err
	}

	slog.Info("training", "data", f.net.data, "samples", trainSet.Len(), "hidden", f.net.hidden,
		"activation", cfg.Activation, "init", cfg.WeightInit, "optimizer", f.optimizer, "lr", opt.GetLR(),
		"seed", f.net.seed)

	t := &train.Trainer{
		Net:       net,
		Optimizer: opt,
		Train:     trainSet,
		Test:      testSet,
		Rand:      rng,
		Config: train.Config{
			Iters:     f.iters,
			BatchSize: f.batchSize,
			OneHot:    f.net.oneHot,
		},
	}
	history, err := t.Run(cmd.Context())
	if err != nil {
		return err
	}

	smoothed := curve.Smooth(history.Loss)
	rows := make([][]string, 0, len(history.Checkpoints))
	for _, cp := range history.Checkpoints {
		rows = append(rows, []string{
			strconv.Itoa(cp.Iter),
			formatFloat(smoothed[cp.Iter]),
			formatPercent(cp.TrainAcc),
			formatPercent(cp.TestAcc),
		})
	}
	renderTable(cmd.OutOrStdout(), []string{"ITER", "LOSS", "TRAIN ACC", "TEST ACC"}, rows)
	return nil
}
