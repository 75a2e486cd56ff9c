// Package nn implements the addons neural network layers.
//
// The layers in this package are branch-merge components for residual
// architectures: they combine a shortcut branch and a residual branch
// into one output tensor. The package provides:
//   - MergeModule interface: contract for two-branch merge layers
//   - StochasticDepth: randomly gated residual merge (stochastic depth)
//   - Add: plain residual addition
//   - LayerConfig / Registry: config export and round-trip reconstruction
//
// Layers take an explicit Mode on every call instead of carrying a
// persistent training flag, so the same instance can serve training and
// inference calls concurrently.
package nn

import (
	"github.com/MHStadler/addons/internal/tensor"
)

// MergeModule is the contract for layers that merge a two-branch input.
//
// Inputs are ordered [shortcut, residual]; both tensors must have the
// same shape and the output shape equals the shortcut's shape.
//
// Type parameter B must satisfy the tensor.Backend interface.
type MergeModule[B tensor.Backend] interface {
	// Forward computes the merged output for [shortcut, residual].
	//
	// Returns an error if inputs is not exactly a two-element sequence.
	// A shape mismatch between the two branches surfaces from the
	// backend's broadcast validation.
	Forward(inputs []*tensor.Tensor[float32, B], mode Mode) (*tensor.Tensor[float32, B], error)

	// OutputShape returns the output shape for the given input shapes
	// without running the computation.
	OutputShape(inputShapes []tensor.Shape) (tensor.Shape, error)

	// Parameters returns all trainable parameters of this module.
	// Merge layers are typically parameter-free and return an empty
	// slice.
	Parameters() []*Parameter[B]

	// Config exports the layer configuration for round-trip
	// reconstruction via a Registry.
	Config() LayerConfig
}
