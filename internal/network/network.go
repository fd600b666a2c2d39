// Package network implements the two-layer feed-forward network: owned
// weight/bias/scratch buffers, Xavier initialization, and the hand-derived
// forward and backward passes built on the kernel package.
//
// A Network is an explicit handle. Constructing a new one is the atomic
// "reinitialize": the previous handle keeps its buffers and simply falls out
// of use, so repeated construction can never leak or expose partial state.
// A single handle is not safe for concurrent use.
package network

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/PavloICSA/Frankenstein-Neural-Web/internal/kernel"
)

// Topology limits. The trainer UI offers 1-10 input columns and 2-20 hidden
// neurons; the output layer is a single sigmoid neuron.
const (
	MinInputs = 1
	MaxInputs = 10
	MinHidden = 2
	MaxHidden = 20
)

// Configuration errors, one per violated constraint. Violations are detected
// before any buffer is allocated and are never silently clamped.
var (
	ErrInputCount  = errors.New("network: input count must be between 1 and 10")
	ErrHiddenCount = errors.New("network: hidden neuron count must be between 2 and 20")
	ErrActivation  = errors.New("network: unknown activation")
	ErrOutputCount = errors.New("network: output count must be 1")

	// ErrInputWidth reports an input buffer whose width does not match the
	// network's configured input count.
	ErrInputWidth = errors.New("network: input width does not match network")
)

// Config describes the network topology.
type Config struct {
	Inputs  int
	Hidden  int
	Outputs int // defaults to 1; any other value is rejected

	// Activation applies to the hidden layer only.
	Activation Activation

	// Seed for weight initialization. Zero means time-seeded; tests that
	// need determinism set it explicitly.
	Seed int64
}

// Validate checks every field in the same order the original entry points
// did, so callers that surface the first violation report the historical
// sentinel. Outputs may be zero (meaning "default to 1").
func (c Config) Validate() error {
	if c.Inputs < MinInputs || c.Inputs > MaxInputs {
		return fmt.Errorf("%w: got %d", ErrInputCount, c.Inputs)
	}
	if c.Hidden < MinHidden || c.Hidden > MaxHidden {
		return fmt.Errorf("%w: got %d", ErrHiddenCount, c.Hidden)
	}
	if c.Activation < Sigmoid || c.Activation > Tanh {
		return fmt.Errorf("%w: %d", ErrActivation, int(c.Activation))
	}
	if c.Outputs != 0 && c.Outputs != 1 {
		return fmt.Errorf("%w: got %d", ErrOutputCount, c.Outputs)
	}
	return nil
}

// Network holds the weights, biases, and scratch buffers for one two-layer
// feed-forward model. All buffers are exclusively owned by the handle.
type Network struct {
	inputs     int
	hidden     int
	activation Activation
	ops        activationOps

	weightsIH []float32 // hidden x inputs, row-major by hidden neuron
	weightsHO []float32 // hidden (single output neuron)
	biasH     []float32 // hidden
	biasO     float32

	// Scratch buffers, overwritten every forward/backward cycle. They have
	// no meaning outside a single cycle.
	preHidden   []float32 // pre-activation sums z_h
	hiddenAct   []float32 // post-activation values
	upstream    []float32 // gradient flowing back into the hidden layer
	deltaHidden []float32 // pre-activation gradients
	gradRow     []float32 // per-row input->hidden weight gradients
	gradHO      []float32 // hidden->output weight gradients
	output      float32
}

// New validates cfg, allocates fresh buffers, and initializes weights with
// Xavier/Glorot uniform values. Biases start at zero.
func New(cfg Config) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Outputs = 1

	ops, err := resolveActivation(cfg.Activation)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	n := &Network{
		inputs:      cfg.Inputs,
		hidden:      cfg.Hidden,
		activation:  cfg.Activation,
		ops:         ops,
		weightsIH:   make([]float32, cfg.Inputs*cfg.Hidden),
		weightsHO:   make([]float32, cfg.Hidden),
		biasH:       make([]float32, cfg.Hidden),
		preHidden:   make([]float32, cfg.Hidden),
		hiddenAct:   make([]float32, cfg.Hidden),
		upstream:    make([]float32, cfg.Hidden),
		deltaHidden: make([]float32, cfg.Hidden),
		gradRow:     make([]float32, cfg.Inputs),
		gradHO:      make([]float32, cfg.Hidden),
	}

	xavierFill(rng, n.weightsIH, cfg.Inputs, cfg.Hidden)
	xavierFill(rng, n.weightsHO, cfg.Hidden, cfg.Outputs)

	return n, nil
}

// xavierFill draws each weight uniformly from [-bound, bound] with
// bound = sqrt(6 / (fanIn + fanOut)).
func xavierFill(rng *rand.Rand, w []float32, fanIn, fanOut int) {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	for i := range w {
		w[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}
}

// Inputs returns the configured input width.
func (n *Network) Inputs() int { return n.inputs }

// Hidden returns the configured hidden layer width.
func (n *Network) Hidden() int { return n.hidden }

// Activation returns the hidden layer's activation.
func (n *Network) Activation() Activation { return n.activation }

// Forward runs a single forward pass and returns the scalar output. The only
// side effect is overwriting the network's scratch buffers.
func (n *Network) Forward(input []float32) (float32, error) {
	if len(input) != n.inputs {
		return 0, fmt.Errorf("%w: got %d values, network takes %d",
			ErrInputWidth, len(input), n.inputs)
	}
	n.forward(input)
	return n.output, nil
}

func (n *Network) forward(input []float32) {
	for h := 0; h < n.hidden; h++ {
		row := n.weightsIH[h*n.inputs : (h+1)*n.inputs]
		n.preHidden[h] = kernel.Dot(input, row) + n.biasH[h]
	}

	n.ops.forward(n.preHidden, n.hiddenAct)

	// Output neuron is always sigmoid so the prediction lands in [0, 1].
	z := kernel.Dot(n.hiddenAct, n.weightsHO) + n.biasO
	n.output = kernel.Sigmoid(z)
}

// TrainSample runs one forward/backward cycle for a single sample and updates
// every weight and bias in place. It returns the sample's squared error,
// computed from the pre-update forward pass.
//
// The input length must equal Inputs(); the trainer validates this once per
// call rather than per sample.
func (n *Network) TrainSample(input []float32, target, lr float32) float32 {
	n.forward(input)

	errOut := n.output - target
	deltaO := errOut * kernel.SigmoidDerivative(n.output)

	// Gradient flowing into the hidden layer, using the pre-update
	// hidden->output weights.
	for h := range n.upstream {
		n.upstream[h] = deltaO * n.weightsHO[h]
	}
	n.ops.backward(n.preHidden, n.hiddenAct, n.upstream, n.deltaHidden)

	// Hidden->output layer.
	for h := range n.gradHO {
		n.gradHO[h] = deltaO * n.hiddenAct[h]
	}
	kernel.UpdateWeights(n.weightsHO, n.gradHO, lr)
	n.biasO -= lr * deltaO

	// Input->hidden layer, one weight row per hidden neuron.
	for h := 0; h < n.hidden; h++ {
		row := n.weightsIH[h*n.inputs : (h+1)*n.inputs]
		for i, x := range input {
			n.gradRow[i] = n.deltaHidden[h] * x
		}
		kernel.UpdateWeights(row, n.gradRow, lr)
		n.biasH[h] -= lr * n.deltaHidden[h]
	}

	return errOut * errOut
}

// Weights copies the live weight buffers into the caller's destinations
// without mutating them. A nil destination is skipped; a non-nil destination
// of the wrong size is an error. Used for visualization only.
func (n *Network) Weights(ihOut, hoOut []float32) error {
	if ihOut != nil {
		if len(ihOut) != len(n.weightsIH) {
			return fmt.Errorf("network: input->hidden destination holds %d values, need %d",
				len(ihOut), len(n.weightsIH))
		}
		copy(ihOut, n.weightsIH)
	}
	if hoOut != nil {
		if len(hoOut) != len(n.weightsHO) {
			return fmt.Errorf("network: hidden->output destination holds %d values, need %d",
				len(hoOut), len(n.weightsHO))
		}
		copy(hoOut, n.weightsHO)
	}
	return nil
}
