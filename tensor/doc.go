// Copyright 2026 The addons authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API for the addons layers.
//
// # Overview
//
// The package defines type-safe generic tensors over pluggable compute
// backends:
//   - Tensor[T, B]: high-level generic tensor
//   - RawTensor: low-level representation used by backends
//   - Backend: interface for device-specific compute implementations
//   - Shape, DataType, Device: core type definitions
//
// # Basic Usage
//
//	import (
//	    "github.com/MHStadler/addons/backend/cpu"
//	    "github.com/MHStadler/addons/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//	    _ = z
//	}
//
// # Broadcasting
//
// Binary operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float32](tensor.Shape{3, 1}, backend) // (3, 1)
//	b := tensor.Ones[float32](tensor.Shape{3, 4}, backend)  // (3, 4)
//	c := a.Add(b)                                           // (3, 4)
package tensor
