package kernel

import "github.com/chewxy/math32"

// Saturation bounds for the sigmoid fast paths. Inputs beyond them return
// exactly 0 or 1, which keeps exp away from overflow territory.
const sigmoidClamp = 10.0

// Tanh inputs are clamped to this range before the rational approximation.
const tanhClamp = 5.0

// Sigmoid computes 1 / (1 + e^-x).
//
// Inputs below -10 return exactly 0.0 and inputs above +10 return exactly
// 1.0. The boundary behavior is part of the contract, not just a speed hack:
// downstream derivative math relies on the saturated values being exact.
func Sigmoid(x float32) float32 {
	if x < -sigmoidClamp {
		return 0
	}
	if x > sigmoidClamp {
		return 1
	}
	return 1 / (1 + math32.Exp(-x))
}

// SigmoidDerivative computes s * (1 - s) where s is an already-computed
// Sigmoid output. Passing a raw pre-activation value here is a caller bug.
func SigmoidDerivative(s float32) float32 {
	return s * (1 - s)
}

// SigmoidForward applies Sigmoid elementwise, writing into out.
func SigmoidForward(in, out []float32) {
	for i, x := range in {
		out[i] = Sigmoid(x)
	}
}

// ReLUForward writes max(0, in[i]) into out. The input is never mutated.
func ReLUForward(in, out []float32) {
	for i, x := range in {
		if x > 0 {
			out[i] = x
		} else {
			out[i] = 0
		}
	}
}

// ReLUBackward masks the upstream gradient by the sign of the original
// pre-activation input: grad[i] = upstream[i] if pre[i] > 0, else 0.
//
// Unlike TanhBackward this takes the pre-activation input, not the forward
// output. At pre[i] == 0 the gradient is zeroed.
func ReLUBackward(pre, upstream, grad []float32) {
	for i, x := range pre {
		if x > 0 {
			grad[i] = upstream[i]
		} else {
			grad[i] = 0
		}
	}
}

// TanhForward applies the rational approximation
//
//	tanh(x) ≈ x * (27 + x²) / (27 + 9x²)
//
// after clamping x to [-5, 5]. This is deliberately not the exact
// transcendental: the approximation is exact at 0 and ±√3 and stays within a
// few percent of math.Tanh over the clamp range, which is all the training
// loop needs.
func TanhForward(in, out []float32) {
	for i, x := range in {
		if x < -tanhClamp {
			x = -tanhClamp
		} else if x > tanhClamp {
			x = tanhClamp
		}
		x2 := x * x
		out[i] = x * (27 + x2) / (27 + 9*x2)
	}
}

// TanhBackward computes grad[i] = upstream[i] * (1 - act[i]²), where act is
// the forward-pass output. Contract differs from ReLUBackward, which wants
// the raw input.
func TanhBackward(act, upstream, grad []float32) {
	for i, s := range act {
		grad[i] = upstream[i] * (1 - s*s)
	}
}
