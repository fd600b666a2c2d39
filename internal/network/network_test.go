package network

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"inputs too small", Config{Inputs: 0, Hidden: 6}, ErrInputCount},
		{"inputs too large", Config{Inputs: 11, Hidden: 6}, ErrInputCount},
		{"hidden too small", Config{Inputs: 2, Hidden: 1}, ErrHiddenCount},
		{"hidden too large", Config{Inputs: 2, Hidden: 21}, ErrHiddenCount},
		{"bad activation", Config{Inputs: 2, Hidden: 6, Activation: Activation(3)}, ErrActivation},
		{"negative activation", Config{Inputs: 2, Hidden: 6, Activation: Activation(-1)}, ErrActivation},
		{"multiple outputs", Config{Inputs: 2, Hidden: 6, Outputs: 2}, ErrOutputCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net, err := New(tt.cfg)
			assert.Nil(t, net)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	net, err := New(Config{Inputs: 2, Hidden: 6, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, net.Inputs())
	assert.Equal(t, 6, net.Hidden())
	assert.Equal(t, Sigmoid, net.Activation())
}

func TestNew_XavierRange(t *testing.T) {
	net, err := New(Config{Inputs: 3, Hidden: 10, Seed: 99})
	require.NoError(t, err)

	boundIH := float32(math.Sqrt(6.0 / float64(3+10)))
	for i, w := range net.weightsIH {
		assert.LessOrEqual(t, w, boundIH, "weightsIH[%d]", i)
		assert.GreaterOrEqual(t, w, -boundIH, "weightsIH[%d]", i)
	}

	boundHO := float32(math.Sqrt(6.0 / float64(10+1)))
	for i, w := range net.weightsHO {
		assert.LessOrEqual(t, w, boundHO, "weightsHO[%d]", i)
		assert.GreaterOrEqual(t, w, -boundHO, "weightsHO[%d]", i)
	}

	for i, b := range net.biasH {
		assert.Zero(t, b, "biasH[%d]", i)
	}
	assert.Zero(t, net.biasO)
}

// Constructing a second network with a different topology must leave every
// buffer sized by the second configuration, never the first.
func TestNew_ReinitializeResizes(t *testing.T) {
	net, err := New(Config{Inputs: 4, Hidden: 4, Seed: 1})
	require.NoError(t, err)
	require.Len(t, net.weightsIH, 16)

	net, err = New(Config{Inputs: 2, Hidden: 12, Seed: 1, Activation: Tanh})
	require.NoError(t, err)

	assert.Len(t, net.weightsIH, 24)
	assert.Len(t, net.weightsHO, 12)
	assert.Len(t, net.biasH, 12)
	assert.Len(t, net.preHidden, 12)
	assert.Len(t, net.hiddenAct, 12)
	assert.Len(t, net.deltaHidden, 12)
	assert.Len(t, net.gradRow, 2)
	assert.Equal(t, Tanh, net.Activation())
}

func TestForward_OutputBounded(t *testing.T) {
	for _, act := range []Activation{Sigmoid, ReLU, Tanh} {
		net, err := New(Config{Inputs: 3, Hidden: 5, Activation: act, Seed: 7})
		require.NoError(t, err)

		out, err := net.Forward([]float32{0.3, -1.5, 2.0})
		require.NoError(t, err)
		assert.Greater(t, out, float32(0), "activation %s", act)
		assert.Less(t, out, float32(1), "activation %s", act)
	}
}

func TestForward_WidthMismatch(t *testing.T) {
	net, err := New(Config{Inputs: 3, Hidden: 5, Seed: 7})
	require.NoError(t, err)

	_, err = net.Forward([]float32{1, 2})
	assert.ErrorIs(t, err, ErrInputWidth)

	_, err = net.Forward([]float32{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrInputWidth)
}

// snapshot copies every trainable parameter.
func snapshot(n *Network) (ih, ho []float32, biasH []float32, biasO float32) {
	ih = append([]float32(nil), n.weightsIH...)
	ho = append([]float32(nil), n.weightsHO...)
	biasH = append([]float32(nil), n.biasH...)
	return ih, ho, biasH, n.biasO
}

// sampleLoss evaluates 0.5 * (forward(input) - target)^2, the quantity whose
// gradient the backward pass descends.
func sampleLoss(t *testing.T, n *Network, input []float32, target float32) float64 {
	t.Helper()
	out, err := n.Forward(input)
	require.NoError(t, err)
	diff := float64(out) - float64(target)
	return 0.5 * diff * diff
}

// The backward pass is hand-derived, so check it against central finite
// differences for the smooth activations. One TrainSample step with learning
// rate lr moves each weight by exactly -lr * gradient, which recovers the
// analytic gradient as (before - after) / lr.
func TestTrainSample_NumericalGradient(t *testing.T) {
	input := []float32{0.6, -0.4, 0.9}
	const target = float32(1.0)
	const lr = float32(0.25)
	const eps = 1e-2

	for _, act := range []Activation{Sigmoid, Tanh} {
		net, err := New(Config{Inputs: 3, Hidden: 4, Activation: act, Seed: 11})
		require.NoError(t, err)

		ihBefore, hoBefore, biasHBefore, biasOBefore := snapshot(net)
		net.TrainSample(input, target, lr)

		// Analytic gradients recovered from the update.
		gradIH := make([]float64, len(ihBefore))
		for i := range gradIH {
			gradIH[i] = float64(ihBefore[i]-net.weightsIH[i]) / float64(lr)
		}
		gradHO := make([]float64, len(hoBefore))
		for i := range gradHO {
			gradHO[i] = float64(hoBefore[i]-net.weightsHO[i]) / float64(lr)
		}
		gradBiasO := float64(biasOBefore-net.biasO) / float64(lr)

		// Fresh identically-initialized network for the numerical probe so
		// the perturbed forward passes see the pre-update weights.
		probe, err := New(Config{Inputs: 3, Hidden: 4, Activation: act, Seed: 11})
		require.NoError(t, err)
		require.Equal(t, ihBefore, probe.weightsIH)
		require.Equal(t, biasHBefore, probe.biasH)

		numGrad := func(w *float32) float64 {
			orig := *w
			*w = orig + eps
			plus := sampleLoss(t, probe, input, target)
			*w = orig - eps
			minus := sampleLoss(t, probe, input, target)
			*w = orig
			return (plus - minus) / (2 * eps)
		}

		for i := range probe.weightsIH {
			assert.InDelta(t, numGrad(&probe.weightsIH[i]), gradIH[i], 2e-3,
				"%s weightsIH[%d]", act, i)
		}
		for i := range probe.weightsHO {
			assert.InDelta(t, numGrad(&probe.weightsHO[i]), gradHO[i], 2e-3,
				"%s weightsHO[%d]", act, i)
		}
		assert.InDelta(t, numGrad(&probe.biasO), gradBiasO, 2e-3, "%s biasO", act)
	}
}

// ReLU has a kink at zero, so instead of finite differences assert that
// repeated single-sample steps monotonically shrink the squared error.
func TestTrainSample_ReLULossDecreases(t *testing.T) {
	net, err := New(Config{Inputs: 2, Hidden: 6, Activation: ReLU, Seed: 3})
	require.NoError(t, err)

	input := []float32{1, 0.5}
	const target = float32(0.9)

	first := net.TrainSample(input, target, 0.5)
	var last float32
	for i := 0; i < 200; i++ {
		last = net.TrainSample(input, target, 0.5)
	}

	assert.Less(t, last, first)
	assert.Less(t, last, float32(0.01))
}

func TestWeights_ExtractionRoundTrip(t *testing.T) {
	net, err := New(Config{Inputs: 2, Hidden: 4, Seed: 5})
	require.NoError(t, err)

	// Train a little so the weights have moved off their initial values.
	for i := 0; i < 50; i++ {
		net.TrainSample([]float32{0, 1}, 1, 0.1)
		net.TrainSample([]float32{1, 1}, 0, 0.1)
	}

	ih := make([]float32, 8)
	ho := make([]float32, 4)
	require.NoError(t, net.Weights(ih, ho))
	assert.Equal(t, net.weightsIH, ih)
	assert.Equal(t, net.weightsHO, ho)

	// Extraction must not mutate the live network.
	ih2 := make([]float32, 8)
	ho2 := make([]float32, 4)
	require.NoError(t, net.Weights(ih2, ho2))
	assert.Equal(t, ih, ih2)
	assert.Equal(t, ho, ho2)
}

func TestWeights_NilAndSizing(t *testing.T) {
	net, err := New(Config{Inputs: 2, Hidden: 4, Seed: 5})
	require.NoError(t, err)

	// Nil destinations are skipped.
	assert.NoError(t, net.Weights(nil, nil))

	ho := make([]float32, 4)
	assert.NoError(t, net.Weights(nil, ho))
	assert.Equal(t, net.weightsHO, ho)

	// Wrong-sized destinations are rejected before any write.
	assert.Error(t, net.Weights(make([]float32, 7), nil))
	assert.Error(t, net.Weights(nil, make([]float32, 3)))
}

func TestActivation_Strings(t *testing.T) {
	assert.Equal(t, "sigmoid", Sigmoid.String())
	assert.Equal(t, "relu", ReLU.String())
	assert.Equal(t, "tanh", Tanh.String())

	for _, name := range []string{"sigmoid", "relu", "tanh"} {
		act, err := ParseActivation(name)
		require.NoError(t, err)
		assert.Equal(t, name, act.String())
	}

	_, err := ParseActivation("softmax")
	assert.ErrorIs(t, err, ErrActivation)
}

// XOR is not linearly separable: a single sigmoid unit trained the same way
// the network's output layer is trained cannot push mean loss anywhere near
// the 0.1 the hidden-layer network reaches.
func TestSingleSigmoidUnit_CannotLearnXOR(t *testing.T) {
	inputs := [][2]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	targets := []float64{0, 1, 1, 0}

	var w1, w2, b float64 = 0.1, -0.1, 0
	sigmoid := func(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

	var loss float64
	for epoch := 0; epoch < 5000; epoch++ {
		loss = 0
		for i, in := range inputs {
			out := sigmoid(w1*in[0] + w2*in[1] + b)
			e := out - targets[i]
			loss += e * e

			delta := e * out * (1 - out)
			w1 -= 0.5 * delta * in[0]
			w2 -= 0.5 * delta * in[1]
			b -= 0.5 * delta
		}
		loss /= 4
	}

	assert.Greater(t, loss, 0.15, "a linear model must not solve XOR")
}
