package nn

import (
	"fmt"
	"math/rand"

	"github.com/MHStadler/addons/internal/tensor"
)

// DefaultSurvivalProbability is the survival probability used when no
// better per-block schedule is available.
const DefaultSurvivalProbability float32 = 0.5

// StochasticDepth randomly drops the residual branch of a residual
// block, as described in "Deep Networks with Stochastic Depth"
// (https://arxiv.org/abs/1603.09382).
//
// The layer is a drop-in replacement for the addition that merges a
// residual branch back into the main network:
//
//	sd, _ := nn.NewStochasticDepth(0.8, backend)
//	out, _ := sd.Forward([]*tensor.Tensor[float32, B]{shortcut, residual}, nn.Train)
//
// In Train mode the output is
//
//	shortcut + b * residual
//
// where b is a Bernoulli variable with P(b == 1) == survivalProbability,
// drawn once per call. In Eval mode the residual activations are
// rescaled by the survival probability instead:
//
//	shortcut + survivalProbability * residual
//
// The survival probability is fixed at construction. The layer mutates
// no instance state per call, so independent inputs can be processed
// concurrently; only the random source is shared.
type StochasticDepth[B tensor.Backend] struct {
	survivalProbability float32
	rng                 *rand.Rand // nil means the shared math/rand source
	backend             B
}

// NewStochasticDepth creates a StochasticDepth layer.
//
// survivalProbability is the probability of the residual branch being
// kept during training and must be in [0, 1]. Bernoulli draws come from
// the shared math/rand source; use NewStochasticDepthWithRand for a
// deterministically seeded layer.
func NewStochasticDepth[B tensor.Backend](survivalProbability float32, backend B) (*StochasticDepth[B], error) {
	if survivalProbability < 0 || survivalProbability > 1 {
		return nil, fmt.Errorf("stochastic depth: survival probability must be in [0, 1], got %v", survivalProbability)
	}

	return &StochasticDepth[B]{
		survivalProbability: survivalProbability,
		backend:             backend,
	}, nil
}

// NewStochasticDepthWithRand creates a StochasticDepth layer drawing
// from an explicit random source. rng must not be nil.
//
// A *rand.Rand is not safe for concurrent use; callers invoking the
// layer from multiple goroutines should prefer NewStochasticDepth,
// whose shared source is locked.
func NewStochasticDepthWithRand[B tensor.Backend](survivalProbability float32, rng *rand.Rand, backend B) (*StochasticDepth[B], error) {
	if rng == nil {
		return nil, fmt.Errorf("stochastic depth: rng must not be nil")
	}

	sd, err := NewStochasticDepth(survivalProbability, backend)
	if err != nil {
		return nil, err
	}
	sd.rng = rng

	return sd, nil
}

// SurvivalProbability returns the configured survival probability.
func (l *StochasticDepth[B]) SurvivalProbability() float32 {
	return l.survivalProbability
}

// Forward merges [shortcut, residual] according to mode.
//
// In Train mode one Bernoulli draw decides whether the residual branch
// contributes; in Eval mode it always contributes, rescaled by the
// survival probability. Output shape equals the shortcut's shape.
func (l *StochasticDepth[B]) Forward(inputs []*tensor.Tensor[float32, B], mode Mode) (*tensor.Tensor[float32, B], error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("stochastic depth: expected exactly two inputs [shortcut, residual], got %d", len(inputs))
	}

	shortcut, residual := inputs[0], inputs[1]

	if mode == Train {
		if !l.survives() {
			// Branch dropped: the shortcut passes through unchanged.
			return shortcut.Clone(), nil
		}
		// Pin the shortcut buffer so the backend's inplace fast path
		// cannot alias the caller's input.
		defer shortcut.Raw().ForceNonUnique()()
		return shortcut.Add(residual), nil
	}

	defer shortcut.Raw().ForceNonUnique()()
	return shortcut.Add(residual.MulScalar(l.survivalProbability)), nil
}

// OutputShape returns the shortcut's shape for a valid two-element
// input.
func (l *StochasticDepth[B]) OutputShape(inputShapes []tensor.Shape) (tensor.Shape, error) {
	if len(inputShapes) != 2 {
		return nil, fmt.Errorf("stochastic depth: expected exactly two input shapes [shortcut, residual], got %d", len(inputShapes))
	}
	return inputShapes[0].Clone(), nil
}

// Parameters returns an empty slice; the gate has no trainable state.
func (l *StochasticDepth[B]) Parameters() []*Parameter[B] {
	return nil
}

// Config exports the layer configuration for round-trip reconstruction.
func (l *StochasticDepth[B]) Config() LayerConfig {
	return LayerConfig{
		Type: LayerTypeStochasticDepth,
		Attrs: map[string]float64{
			attrSurvivalProbability: float64(l.survivalProbability),
		},
	}
}

// survives performs one Bernoulli draw with P(true) == survivalProbability.
func (l *StochasticDepth[B]) survives() bool {
	var u float32
	if l.rng != nil {
		u = l.rng.Float32()
	} else {
		u = rand.Float32() //nolint:gosec // G404: stochastic regularization, not cryptography
	}
	// u is in [0, 1), so p == 1 always survives and p == 0 never does.
	return u < l.survivalProbability
}
