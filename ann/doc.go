// Copyright 2026 Frankenstein Neural Web. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ann is the public surface of the Frankenstein Neural Web numeric
// core: a small feed-forward network (1-10 inputs, one hidden layer of 2-20
// neurons, one sigmoid output) trained by online gradient descent.
//
// The package exposes the four operations the trainer front end drives:
//
//   - Train: the legacy entry point (6 hidden neurons, sigmoid, defaults)
//   - TrainV2: configurable topology, activation, hyperparameters, and an
//     optional per-epoch loss trace
//   - Predict: one forward pass against a trained network
//   - ExtractWeights: copy the live weights out for visualization
//
// Networks are explicit handles. There is no package-level state: both train
// entry points build and return a fresh *Network, and every later call takes
// the handle it should operate on.
//
// Basic usage:
//
//	inputs := []float32{0, 0, 0, 1, 1, 0, 1, 1} // row-major, 2 per row
//	targets := []float32{0, 1, 1, 0}
//
//	loss, net, err := ann.TrainV2(inputs, targets, 4, 2, 8, ann.Tanh,
//		ann.TrainConfig{LearningRate: 0.5, Epochs: 1000}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	out, err := ann.Predict(net, []float32{1, 0})
//
// Failures are reported as distinct error values, one per violated
// constraint; Code maps them back to the negative sentinel codes the
// original WASM exports returned.
package ann
