// Package metrics summarizes loss traces produced by the trainer.
package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a per-epoch loss trace.
type Summary struct {
	Final  float64 // loss of the last recorded epoch
	Best   float64 // lowest loss anywhere in the trace
	Mean   float64 // mean loss across the trace
	Epochs int     // number of recorded epochs
}

// Summarize computes a Summary over trace. An empty trace yields the zero
// Summary.
func Summarize(trace []float32) Summary {
	if len(trace) == 0 {
		return Summary{}
	}

	wide := make([]float64, len(trace))
	for i, v := range trace {
		wide[i] = float64(v)
	}

	return Summary{
		Final:  wide[len(wide)-1],
		Best:   floats.Min(wide),
		Mean:   stat.Mean(wide, nil),
		Epochs: len(wide),
	}
}

// FirstBelow returns the first epoch index whose loss is below target, or -1
// if the trace never gets there.
func FirstBelow(trace []float32, target float32) int {
	for i, v := range trace {
		if v < target {
			return i
		}
	}
	return -1
}
