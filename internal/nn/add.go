package nn

import (
	"fmt"

	"github.com/MHStadler/addons/internal/tensor"
)

// Add is the plain residual merge: shortcut + residual, in every mode.
//
// It shares the MergeModule contract with StochasticDepth so the two
// are interchangeable when wiring a residual block.
type Add[B tensor.Backend] struct {
	backend B
}

// NewAdd creates an Add merge layer.
func NewAdd[B tensor.Backend](backend B) *Add[B] {
	return &Add[B]{backend: backend}
}

// Forward returns shortcut + residual. The mode is ignored; addition is
// deterministic in both phases.
func (l *Add[B]) Forward(inputs []*tensor.Tensor[float32, B], _ Mode) (*tensor.Tensor[float32, B], error) {
	if len(inputs) != 2 {
		return nil, fmt.Errorf("add: expected exactly two inputs [shortcut, residual], got %d", len(inputs))
	}

	shortcut, residual := inputs[0], inputs[1]

	// Pin the shortcut buffer so the backend's inplace fast path cannot
	// alias the caller's input.
	defer shortcut.Raw().ForceNonUnique()()
	return shortcut.Add(residual), nil
}

// OutputShape returns the shortcut's shape for a valid two-element
// input.
func (l *Add[B]) OutputShape(inputShapes []tensor.Shape) (tensor.Shape, error) {
	if len(inputShapes) != 2 {
		return nil, fmt.Errorf("add: expected exactly two input shapes [shortcut, residual], got %d", len(inputShapes))
	}
	return inputShapes[0].Clone(), nil
}

// Parameters returns an empty slice; addition has no trainable state.
func (l *Add[B]) Parameters() []*Parameter[B] {
	return nil
}

// Config exports the layer configuration.
func (l *Add[B]) Config() LayerConfig {
	return LayerConfig{Type: LayerTypeAdd}
}
