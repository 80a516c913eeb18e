// Package train runs the mini-batch training loop on top of a network, an
// optimizer and a dataset. The network and optimizer packages have no loop
// of their own; this is the caller that drives them.
package train

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/backprop-go/backprop/internal/dataset"
	"github.com/backprop-go/backprop/internal/nn"
	"github.com/backprop-go/backprop/internal/optim"
)

// Config holds the loop settings. Zero values take the defaults noted.
type Config struct {
	Iters     int  // number of mini-batch updates (default: 1000)
	BatchSize int  // samples per update (default: 100)
	OneHot    bool // feed targets as one-hot matrices instead of indices

	// EvalEvery is the number of iterations between accuracy evaluations.
	// Zero evaluates once per epoch, max(train size / batch size, 1).
	EvalEvery int
}

// Trainer couples a network with an optimizer and its data.
type Trainer struct {
	Net       *nn.MultiLayerNet
	Optimizer optim.Optimizer
	Train     *dataset.Set
	Test      *dataset.Set // optional
	Rand      *rand.Rand
	Logger    *slog.Logger // optional, defaults to slog.Default()

	Config Config
}

// Checkpoint is one periodic evaluation.
type Checkpoint struct {
	Iter     int
	TrainAcc float64
	TestAcc  float64 // zero when there is no test set
}

// History records a run: the mini-batch loss after every update, plus
// the periodic checkpoints.
type History struct {
	Loss        []float64
	Checkpoints []Checkpoint
}

func (c Config) validate() error {
	if c.Iters < 0 || c.BatchSize < 0 || c.EvalEvery < 0 {
		return errors.Wrapf(nn.ErrInvalidConfig, "train: iters, batch size and eval interval must not be negative, got %d, %d, %d",
			c.Iters, c.BatchSize, c.EvalEvery)
	}
	return nil
}

func (c Config) withDefaults(trainSize int) Config {
	if c.Iters == 0 {
		c.Iters = 1000
	}
	if c.BatchSize == 0 {
		c.BatchSize = 100
	}
	if c.EvalEvery == 0 {
		c.EvalEvery = max(trainSize/c.BatchSize, 1)
	}
	return c
}

// Run performs the configured number of updates. It stops early with the
// context's error if ctx is cancelled; the history so far is returned
// with it.
func (t *Trainer) Run(ctx context.Context) (History, error) {
	if t.Net == nil || t.Optimizer == nil || t.Train == nil || t.Rand == nil {
		return History{}, errors.New("train: net, optimizer, training set and rand are required")
	}
	log := t.Logger
	if log == nil {
		log = slog.Default()
	}
	if err := t.Config.validate(); err != nil {
		return History{}, err
	}
	cfg := t.Config.withDefaults(t.Train.Len())

	trainTarget, err := t.Train.Target(cfg.OneHot)
	if err != nil {
		return History{}, err
	}
	var testTarget nn.Target
	if t.Test != nil {
		if testTarget, err = t.Test.Target(cfg.OneHot); err != nil {
			return History{}, err
		}
	}

	var h History
	for i := 0; i < cfg.Iters; i++ {
		if err := ctx.Err(); err != nil {
			return h, err
		}

		batch, err := t.Train.Batch(dataset.SampleBatch(t.Rand, t.Train.Len(), cfg.BatchSize))
		if err != nil {
			return h, err
		}
		target, err := batch.Target(cfg.OneHot)
		if err != nil {
			return h, err
		}

		grads, err := t.Net.Gradient(batch.X, target)
		if err != nil {
			return h, errors.Wrapf(err, "iteration %d", i)
		}
		if err := t.Optimizer.Update(t.Net.Params(), grads); err != nil {
			return h, errors.Wrapf(err, "iteration %d", i)
		}

		loss, err := t.Net.Loss(batch.X, target)
		if err != nil {
			return h, errors.Wrapf(err, "iteration %d", i)
		}
		h.Loss = append(h.Loss, loss)
		log.Debug("step", "iter", i, "loss", loss)

		if i%cfg.EvalEvery != 0 {
			continue
		}
		cp := Checkpoint{Iter: i}
		if cp.TrainAcc, err = t.Net.Accuracy(t.Train.X, trainTarget); err != nil {
			return h, err
		}
		if t.Test != nil {
			if cp.TestAcc, err = t.Net.Accuracy(t.Test.X, testTarget); err != nil {
				return h, err
			}
		}
		h.Checkpoints = append(h.Checkpoints, cp)
		log.Info("checkpoint", "iter", i, "loss", loss, "train_acc", cp.TrainAcc, "test_acc", cp.TestAcc)
	}
	return h, nil
}
