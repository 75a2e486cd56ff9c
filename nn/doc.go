// Copyright 2026 The addons authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for the addons merge layers.
//
// # Overview
//
// The package exposes branch-merge layers for residual architectures.
// StochasticDepth implements the stochastic residual gate from "Deep
// Networks with Stochastic Depth" (https://arxiv.org/abs/1603.09382);
// Add is the plain residual addition it replaces.
//
// # Basic Usage
//
//	import (
//	    "github.com/MHStadler/addons/backend/cpu"
//	    "github.com/MHStadler/addons/nn"
//	    "github.com/MHStadler/addons/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    shortcut := tensor.Ones[float32](tensor.Shape{3, 3, 1}, backend)
//	    residual := tensor.Randn[float32](tensor.Shape{3, 3, 1}, backend)
//
//	    sd, err := nn.NewStochasticDepth(0.8, backend)
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    // One Bernoulli draw per training call.
//	    out, err := sd.Forward([]*tensor.Tensor[float32, *cpu.Backend]{shortcut, residual}, nn.Train)
//
//	    // Deterministic rescaled merge at inference.
//	    out, err = sd.Forward([]*tensor.Tensor[float32, *cpu.Backend]{shortcut, residual}, nn.Eval)
//	    _, _ = out, err
//	}
//
// # Configuration round-trip
//
// Layers export their configuration via Config; a Registry reconstructs
// them from saved configurations:
//
//	cfg := sd.Config()
//	registry := nn.NewRegistry[*cpu.Backend]()
//	restored, err := registry.FromConfig(cfg, backend)
package nn
