package network

import (
	"fmt"

	"github.com/PavloICSA/Frankenstein-Neural-Web/internal/kernel"
)

// Activation selects the hidden-layer nonlinearity. The output layer always
// uses sigmoid regardless of this choice, so the prediction stays in [0, 1].
type Activation int

// Hidden-layer activation functions. The numeric values are the wire codes
// the trainer UI has always sent (0/1/2).
const (
	Sigmoid Activation = iota
	ReLU
	Tanh
)

// String returns the lower-case activation name.
func (a Activation) String() string {
	switch a {
	case Sigmoid:
		return "sigmoid"
	case ReLU:
		return "relu"
	case Tanh:
		return "tanh"
	default:
		return fmt.Sprintf("activation(%d)", int(a))
	}
}

// ParseActivation maps an activation name to its enum value.
func ParseActivation(s string) (Activation, error) {
	switch s {
	case "sigmoid":
		return Sigmoid, nil
	case "relu":
		return ReLU, nil
	case "tanh":
		return Tanh, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrActivation, s)
	}
}

// activationOps is an activation resolved into its kernel pair. Resolution
// happens once at construction so the per-sample hot path never switches on
// the activation tag.
//
// forward writes activations for a pre-activation buffer. backward turns the
// upstream gradient into the pre-activation gradient; it receives both the
// pre-activation buffer and the forward output because the kernels disagree
// about which one they want (ReLU masks on the input, tanh and sigmoid reuse
// the output).
type activationOps struct {
	forward  func(pre, act []float32)
	backward func(pre, act, upstream, grad []float32)
}

func resolveActivation(a Activation) (activationOps, error) {
	switch a {
	case Sigmoid:
		return activationOps{
			forward: kernel.SigmoidForward,
			backward: func(_, act, upstream, grad []float32) {
				for i, s := range act {
					grad[i] = upstream[i] * kernel.SigmoidDerivative(s)
				}
			},
		}, nil
	case ReLU:
		return activationOps{
			forward: kernel.ReLUForward,
			backward: func(pre, _, upstream, grad []float32) {
				kernel.ReLUBackward(pre, upstream, grad)
			},
		}, nil
	case Tanh:
		return activationOps{
			forward: kernel.TanhForward,
			backward: func(_, act, upstream, grad []float32) {
				kernel.TanhBackward(act, upstream, grad)
			},
		}, nil
	default:
		return activationOps{}, fmt.Errorf("%w: %d", ErrActivation, int(a))
	}
}
