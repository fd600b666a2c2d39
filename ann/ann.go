// Copyright 2026 Frankenstein Neural Web. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ann

import (
	"errors"

	"github.com/PavloICSA/Frankenstein-Neural-Web/internal/network"
	"github.com/PavloICSA/Frankenstein-Neural-Web/internal/trainer"
)

// Network is a trained (or trainable) two-layer feed-forward model. Handles
// are not safe for concurrent use; a train or predict call must finish before
// the next one starts.
type Network = network.Network

// Config describes a network topology for New.
type Config = network.Config

// TrainConfig holds training hyperparameters. The zero value reproduces the
// historical behavior: learning rate 0.01, 300 epochs, early stop below 0.001.
type TrainConfig = trainer.Config

// Activation selects the hidden layer's nonlinearity.
type Activation = network.Activation

// Hidden-layer activations, numbered the way the front end has always sent
// them (0/1/2). The output layer is always sigmoid.
const (
	Sigmoid = network.Sigmoid
	ReLU    = network.ReLU
	Tanh    = network.Tanh
)

// Topology limits accepted by the train entry points.
const (
	MinInputs = network.MinInputs
	MaxInputs = network.MaxInputs
	MinHidden = network.MinHidden
	MaxHidden = network.MaxHidden
)

// MaxEpochs caps TrainConfig.Epochs so a caller-allocated loss trace of this
// length is always large enough.
const MaxEpochs = 1000

// ParseActivation maps "sigmoid", "relu", or "tanh" to its Activation.
func ParseActivation(s string) (Activation, error) {
	return network.ParseActivation(s)
}

// The legacy entry point's fixed topology.
const legacyHidden = 6

// Errors, one per violated constraint. Validation always happens before any
// allocation and values are never silently clamped.
var (
	ErrInputCount     = network.ErrInputCount
	ErrHiddenCount    = network.ErrHiddenCount
	ErrActivation     = network.ErrActivation
	ErrRowCount       = trainer.ErrRowCount
	ErrNotInitialized = errors.New("ann: no trained network")
	ErrInputWidth     = network.ErrInputWidth
	ErrEpochCount     = trainer.ErrEpochCount
)

// Code maps an error from this package to the negative sentinel code the
// original WASM exports returned, for callers that still speak that protocol.
// A nil error maps to 0 and an unrecognized error to -1.
func Code(err error) float32 {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrInputCount):
		return -1
	case errors.Is(err, ErrHiddenCount):
		return -2
	case errors.Is(err, ErrActivation):
		return -3
	case errors.Is(err, ErrRowCount):
		return -4
	case errors.Is(err, ErrNotInitialized):
		return -5
	case errors.Is(err, ErrInputWidth):
		return -6
	case errors.Is(err, ErrEpochCount):
		return -7
	default:
		return -1
	}
}

// New builds an initialized, untrained network: Xavier-initialized weights,
// zero biases. Most callers want Train or TrainV2 instead; New exists for
// code that drives training itself.
func New(cfg Config) (*Network, error) {
	return network.New(cfg)
}

// Train is the backward-compatible entry point: 6 hidden neurons, sigmoid
// hidden activation, default hyperparameters, no loss trace. It builds a
// fresh network, trains it, and returns the final mean squared loss together
// with the trained handle.
func Train(inputs, targets []float32, rows, nInputs int) (float32, *Network, error) {
	return TrainV2(inputs, targets, rows, nInputs, legacyHidden, Sigmoid, TrainConfig{}, nil)
}

// TrainV2 builds a network with the requested topology and hidden activation,
// trains it on the row-major sample buffers, and returns the final mean
// squared loss with the trained handle.
//
// cfg.Epochs must not be negative (zero selects the default budget) and is
// capped at MaxEpochs. If history is non-nil it receives one loss value per
// epoch, with early-stopped tails back-filled by the final loss.
//
// Validation covers the fields in the original order (inputs, hidden,
// activation, rows) before anything is allocated, so a call violating
// several constraints reports the same sentinel it always has.
func TrainV2(inputs, targets []float32, rows, nInputs, nHidden int, act Activation, cfg TrainConfig, history []float32) (float32, *Network, error) {
	netCfg := network.Config{
		Inputs:     nInputs,
		Hidden:     nHidden,
		Activation: act,
	}
	if err := netCfg.Validate(); err != nil {
		return 0, nil, err
	}
	if rows < 1 {
		return 0, nil, ErrRowCount
	}
	if cfg.Epochs < 0 {
		return 0, nil, ErrEpochCount
	}
	if cfg.Epochs > MaxEpochs {
		cfg.Epochs = MaxEpochs
	}

	net, err := network.New(netCfg)
	if err != nil {
		return 0, nil, err
	}

	loss, err := trainer.Train(net, inputs, targets, rows, cfg, history)
	if err != nil {
		return 0, nil, err
	}
	return loss, net, nil
}

// Predict runs one forward pass against net and returns the scalar output in
// [0, 1]. A nil handle reports ErrNotInitialized; an input whose width does
// not match the trained topology reports ErrInputWidth.
func Predict(net *Network, input []float32) (float32, error) {
	if net == nil {
		return 0, ErrNotInitialized
	}
	return net.Forward(input)
}

// ExtractWeights copies the live weight buffers into the caller's
// destinations: ihOut must hold Inputs()*Hidden() values and hoOut Hidden()
// values. Nil destinations are skipped. The network is never mutated, so a
// handle can keep training after extraction.
func ExtractWeights(net *Network, ihOut, hoOut []float32) error {
	if net == nil {
		return ErrNotInitialized
	}
	return net.Weights(ihOut, hoOut)
}
