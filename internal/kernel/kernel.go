// Package kernel provides the vectorized float32 primitives the network is
// built from: dot product, activation functions with their derivatives, and
// the in-place gradient-descent weight update.
//
// All kernels are pure and operate on flat []float32 buffers. The unrolled
// multi-accumulator loops are a performance detail, not a contract: a plain
// scalar loop produces the same results within float tolerance, and callers
// must never depend on a particular summation order.
//
// Kernels trust their callers on buffer sizing. They are only invoked by the
// network package, which owns every buffer and guarantees matching lengths.
package kernel

// Dot returns the dot product of a and b, which must have the same length.
//
// Lengths 0 and 1 take an early exit without touching the unrolled path.
// Larger inputs are processed 8 elements at a time across four partial
// accumulators, then 4 at a time, with a scalar loop for the tail.
func Dot(a, b []float32) float32 {
	n := len(a)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return a[0] * b[0]
	}

	var s0, s1, s2, s3 float32
	i := 0

	for ; i+8 <= n; i += 8 {
		s0 += a[i]*b[i] + a[i+4]*b[i+4]
		s1 += a[i+1]*b[i+1] + a[i+5]*b[i+5]
		s2 += a[i+2]*b[i+2] + a[i+6]*b[i+6]
		s3 += a[i+3]*b[i+3] + a[i+7]*b[i+7]
	}

	for ; i+4 <= n; i += 4 {
		s0 += a[i] * b[i]
		s1 += a[i+1] * b[i+1]
		s2 += a[i+2] * b[i+2]
		s3 += a[i+3] * b[i+3]
	}

	sum := (s0 + s1) + (s2 + s3)

	for ; i < n; i++ {
		sum += a[i] * b[i]
	}

	return sum
}

// UpdateWeights applies one gradient-descent step in place:
//
//	weights[i] -= lr * grads[i]
//
// weights and grads must have the same length.
func UpdateWeights(weights, grads []float32, lr float32) {
	n := len(weights)
	i := 0

	for ; i+8 <= n; i += 8 {
		weights[i] -= lr * grads[i]
		weights[i+1] -= lr * grads[i+1]
		weights[i+2] -= lr * grads[i+2]
		weights[i+3] -= lr * grads[i+3]
		weights[i+4] -= lr * grads[i+4]
		weights[i+5] -= lr * grads[i+5]
		weights[i+6] -= lr * grads[i+6]
		weights[i+7] -= lr * grads[i+7]
	}

	for ; i < n; i++ {
		weights[i] -= lr * grads[i]
	}
}
