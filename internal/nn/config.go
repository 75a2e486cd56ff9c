package nn

import (
	"fmt"

	"github.com/MHStadler/addons/internal/tensor"
)

// Built-in layer type names, as they appear in exported configurations.
const (
	LayerTypeStochasticDepth = "StochasticDepth"
	LayerTypeAdd             = "Add"
)

const attrSurvivalProbability = "survival_probability"

// LayerConfig is the serializable configuration of a merge layer.
//
// Type names the layer; Attrs holds its numeric hyperparameters. The
// struct is JSON-stable and round-trips through Registry.FromConfig.
type LayerConfig struct {
	Type  string             `json:"type"`
	Attrs map[string]float64 `json:"attrs,omitempty"`
}

// Attr returns the named attribute, or an error naming the layer type
// when it is missing.
func (c LayerConfig) Attr(name string) (float64, error) {
	v, ok := c.Attrs[name]
	if !ok {
		return 0, fmt.Errorf("layer config %q: missing attribute %q", c.Type, name)
	}
	return v, nil
}

// LayerFactory reconstructs a layer from its exported configuration.
type LayerFactory[B tensor.Backend] func(cfg LayerConfig, backend B) (MergeModule[B], error)

// Registry maps layer type names to factories, for reconstructing
// layers from saved configurations.
//
// A new Registry knows the built-in layers; host frameworks register
// their own merge layers under additional names.
type Registry[B tensor.Backend] struct {
	factories map[string]LayerFactory[B]
}

// NewRegistry creates a Registry pre-populated with the built-in
// layers.
func NewRegistry[B tensor.Backend]() *Registry[B] {
	r := &Registry[B]{
		factories: make(map[string]LayerFactory[B]),
	}

	// Built-ins. Reconstruction goes through the validating
	// constructors, so malformed saved configs are rejected on load.
	r.factories[LayerTypeStochasticDepth] = func(cfg LayerConfig, backend B) (MergeModule[B], error) {
		p, err := cfg.Attr(attrSurvivalProbability)
		if err != nil {
			return nil, err
		}
		return NewStochasticDepth(float32(p), backend)
	}
	r.factories[LayerTypeAdd] = func(_ LayerConfig, backend B) (MergeModule[B], error) {
		return NewAdd(backend), nil
	}

	return r
}

// Register adds a factory under the given type name.
// Registering an already-known name is an error.
func (r *Registry[B]) Register(layerType string, factory LayerFactory[B]) error {
	if layerType == "" {
		return fmt.Errorf("registry: layer type must not be empty")
	}
	if factory == nil {
		return fmt.Errorf("registry: factory for %q must not be nil", layerType)
	}
	if _, exists := r.factories[layerType]; exists {
		return fmt.Errorf("registry: layer type %q already registered", layerType)
	}
	r.factories[layerType] = factory
	return nil
}

// FromConfig reconstructs a layer from its exported configuration.
func (r *Registry[B]) FromConfig(cfg LayerConfig, backend B) (MergeModule[B], error) {
	factory, ok := r.factories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("registry: unknown layer type %q", cfg.Type)
	}
	return factory(cfg, backend)
}
