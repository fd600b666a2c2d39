// Package main provides the Frankenstein Neural Web command line trainer.
//
// It trains the two-layer network on a numeric CSV file (every column but the
// last is an input, the last column is the target) or, with no -data flag, on
// the built-in XOR demo set, then reports the loss trace and the model's
// prediction for every training row.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/PavloICSA/Frankenstein-Neural-Web/ann"
	"github.com/PavloICSA/Frankenstein-Neural-Web/internal/metrics"
	"github.com/PavloICSA/Frankenstein-Neural-Web/internal/trainer"
)

func main() {
	var (
		dataPath   = flag.String("data", "", "numeric CSV file; last column is the target (default: built-in XOR demo)")
		hidden     = flag.Int("hidden", 6, "hidden layer width (2-20)")
		activation = flag.String("activation", "sigmoid", "hidden activation: sigmoid, relu, or tanh")
		epochs     = flag.Int("epochs", 300, "epoch budget (capped at 1000)")
		lr         = flag.Float64("lr", 0.01, "learning rate")
		trace      = flag.Int("trace", 0, "after training, log the loss every N epochs (0 disables)")
	)
	flag.Parse()

	if err := run(*dataPath, *hidden, *activation, *epochs, float32(*lr), *trace); err != nil {
		log.Fatal(err)
	}
}

func run(dataPath string, hidden int, activation string, epochs int, lr float32, trace int) error {
	act, err := ann.ParseActivation(activation)
	if err != nil {
		return err
	}

	inputs, targets, width, err := loadSamples(dataPath)
	if err != nil {
		return err
	}
	rows := len(targets)
	log.Printf("training: rows=%d inputs=%d hidden=%d activation=%s epochs=%d lr=%g",
		rows, width, hidden, act, epochs, lr)

	// TrainV2 rejects a negative budget; the trim below only ever sees a
	// valid one.
	if epochs < 0 {
		return fmt.Errorf("invalid -epochs %d: %w", epochs, ann.ErrEpochCount)
	}
	if epochs == 0 {
		epochs = trainer.DefaultEpochs
	}

	history := make([]float32, ann.MaxEpochs)
	if epochs < len(history) {
		history = history[:epochs]
	}

	cfg := ann.TrainConfig{LearningRate: lr, Epochs: epochs}
	loss, net, err := ann.TrainV2(inputs, targets, rows, width, hidden, act, cfg, history)
	if err != nil {
		return err
	}

	summary := metrics.Summarize(history)
	log.Printf("done: final_loss=%.6f best_loss=%.6f mean_loss=%.6f", float64(loss), summary.Best, summary.Mean)
	if stop := metrics.FirstBelow(history, 0.001); stop >= 0 {
		log.Printf("early stop: loss dropped below 0.001 at epoch %d", stop)
	}
	if trace > 0 {
		for e := 0; e < len(history); e += trace {
			log.Printf("epoch %d: loss=%.6f", e, history[e])
		}
	}

	for row := 0; row < rows; row++ {
		sample := inputs[row*width : (row+1)*width]
		out, err := ann.Predict(net, sample)
		if err != nil {
			return err
		}
		fmt.Printf("row %d: input=%v target=%g predicted=%.4f\n", row, sample, targets[row], out)
	}

	return nil
}

// loadSamples reads the training set. An empty path yields the XOR demo.
func loadSamples(path string) (inputs, targets []float32, width int, err error) {
	if path == "" {
		return []float32{0, 0, 0, 1, 1, 0, 1, 1}, []float32{0, 1, 1, 0}, 2, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, 0, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, 0, fmt.Errorf("%s: no rows", path)
	}

	for rowNum, record := range records {
		if len(record) < 2 {
			return nil, nil, 0, fmt.Errorf("%s row %d: need at least one input column and a target", path, rowNum+1)
		}

		values := make([]float32, len(record))
		ok := true
		for i, field := range record {
			v, convErr := strconv.ParseFloat(field, 32)
			if convErr != nil {
				ok = false
				break
			}
			values[i] = float32(v)
		}
		if !ok {
			if rowNum == 0 {
				continue // header row
			}
			return nil, nil, 0, fmt.Errorf("%s row %d: non-numeric value", path, rowNum+1)
		}

		if width == 0 {
			width = len(values) - 1
		} else if len(values)-1 != width {
			return nil, nil, 0, fmt.Errorf("%s row %d: got %d input columns, want %d", path, rowNum+1, len(values)-1, width)
		}

		inputs = append(inputs, values[:width]...)
		targets = append(targets, values[width])
	}

	if len(targets) == 0 {
		return nil, nil, 0, fmt.Errorf("%s: no numeric rows", path)
	}
	return inputs, targets, width, nil
}
