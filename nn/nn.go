// Copyright 2026 The addons authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/MHStadler/addons/internal/nn"
	"github.com/MHStadler/addons/internal/tensor"
)

// Mode selects the execution phase for a Forward call.
type Mode = nn.Mode

// Execution phases.
const (
	// Eval is the deterministic inference phase (zero value).
	Eval Mode = nn.Eval
	// Train is the stochastic training phase.
	Train Mode = nn.Train
)

// MergeModule is the contract for layers merging a [shortcut, residual]
// input pair into one output tensor.
type MergeModule[B tensor.Backend] = nn.MergeModule[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// DefaultSurvivalProbability is the survival probability used when no
// better per-block schedule is available.
const DefaultSurvivalProbability = nn.DefaultSurvivalProbability

// StochasticDepth randomly drops the residual branch of a residual
// block during training and rescales it during inference.
type StochasticDepth[B tensor.Backend] = nn.StochasticDepth[B]

// NewStochasticDepth creates a StochasticDepth layer with the given
// survival probability (must be in [0, 1]).
//
// Example:
//
//	backend := cpu.New()
//	sd, err := nn.NewStochasticDepth(0.8, backend)
func NewStochasticDepth[B tensor.Backend](survivalProbability float32, backend B) (*StochasticDepth[B], error) {
	return nn.NewStochasticDepth(survivalProbability, backend)
}

// NewStochasticDepthWithRand creates a StochasticDepth layer drawing
// from an explicit random source, for deterministic seeding.
func NewStochasticDepthWithRand[B tensor.Backend](survivalProbability float32, rng *rand.Rand, backend B) (*StochasticDepth[B], error) {
	return nn.NewStochasticDepthWithRand(survivalProbability, rng, backend)
}

// Add is the plain residual merge: shortcut + residual.
type Add[B tensor.Backend] = nn.Add[B]

// NewAdd creates an Add merge layer.
func NewAdd[B tensor.Backend](backend B) *Add[B] {
	return nn.NewAdd(backend)
}

// Configuration round-trip

// LayerConfig is the serializable configuration of a merge layer.
type LayerConfig = nn.LayerConfig

// Built-in layer type names.
const (
	LayerTypeStochasticDepth = nn.LayerTypeStochasticDepth
	LayerTypeAdd             = nn.LayerTypeAdd
)

// LayerFactory reconstructs a layer from its exported configuration.
type LayerFactory[B tensor.Backend] = nn.LayerFactory[B]

// Registry maps layer type names to factories.
type Registry[B tensor.Backend] = nn.Registry[B]

// NewRegistry creates a Registry pre-populated with the built-in
// layers.
func NewRegistry[B tensor.Backend]() *Registry[B] {
	return nn.NewRegistry[B]()
}
