// Package trainer drives online gradient descent over a training set: one
// forward/backward cycle per sample, mean squared error per epoch, an
// optional per-epoch loss trace, and early stopping.
//
// Training is synchronous and single-threaded. A call runs to completion (or
// early stop) before returning; samples are visited in caller order with no
// batching, so the weight trajectory is fully determined by the data order
// and the network's initial state.
package trainer

import (
	"errors"
	"fmt"

	"github.com/PavloICSA/Frankenstein-Neural-Web/internal/network"
)

// Defaults match the original trainer: the epoch budget and learning rate it
// always used, and the loss threshold that stops training early.
const (
	DefaultLearningRate = 0.01
	DefaultEpochs       = 300
	DefaultTargetLoss   = 0.001
)

// Configuration errors, detected before the first epoch runs and never
// silently corrected.
var (
	// ErrRowCount reports a training set with no rows.
	ErrRowCount = errors.New("trainer: row count must be at least 1")

	// ErrEpochCount reports a negative epoch budget. Zero means "use the
	// default"; anything below that would skip training entirely and make
	// the returned loss of 0 look like perfect convergence.
	ErrEpochCount = errors.New("trainer: epoch budget must not be negative")
)

// Config holds the training hyperparameters. Zero values fall back to the
// defaults above, so Config{} reproduces the historical behavior.
type Config struct {
	LearningRate float32
	Epochs       int
	TargetLoss   float32
}

func (c Config) withDefaults() Config {
	if c.LearningRate == 0 {
		c.LearningRate = DefaultLearningRate
	}
	if c.Epochs == 0 {
		c.Epochs = DefaultEpochs
	}
	if c.TargetLoss == 0 {
		c.TargetLoss = DefaultTargetLoss
	}
	return c
}

// Train runs up to cfg.Epochs passes over the training set, updating net in
// place, and returns the final epoch's mean squared error.
//
// inputs is row-major with net.Inputs() values per row; targets holds one
// value per row. If history is non-nil, each epoch's loss is written to the
// corresponding index (extra capacity is ignored; a short buffer receives a
// prefix). When early stopping fires, the remaining history slots up to
// cfg.Epochs are back-filled with the final loss so the trace has no gaps.
func Train(net *network.Network, inputs, targets []float32, rows int, cfg Config, history []float32) (float32, error) {
	if rows < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrRowCount, rows)
	}
	width := net.Inputs()
	if len(inputs) != rows*width {
		return 0, fmt.Errorf("trainer: inputs buffer holds %d values, want %d rows x %d",
			len(inputs), rows, width)
	}
	if len(targets) != rows {
		return 0, fmt.Errorf("trainer: targets buffer holds %d values, want %d", len(targets), rows)
	}
	if cfg.Epochs < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrEpochCount, cfg.Epochs)
	}

	cfg = cfg.withDefaults()

	var finalLoss float32
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		var total float32
		for row := 0; row < rows; row++ {
			sample := inputs[row*width : (row+1)*width]
			total += net.TrainSample(sample, targets[row], cfg.LearningRate)
		}
		finalLoss = total / float32(rows)

		if epoch < len(history) {
			history[epoch] = finalLoss
		}

		if finalLoss < cfg.TargetLoss {
			for e := epoch + 1; e < cfg.Epochs && e < len(history); e++ {
				history[e] = finalLoss
			}
			break
		}
	}

	return finalLoss, nil
}
