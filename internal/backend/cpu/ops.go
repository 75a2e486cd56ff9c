package cpu

import (
	"github.com/MHStadler/addons/internal/tensor"
)

// binOp identifies an elementwise binary operation for kernel dispatch.
type binOp int

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
)

// binaryInplace performs an inplace binary op (a op= b).
// Requires: a.Shape().Equal(b.Shape()) && a.IsUnique().
func binaryInplace(a, b *tensor.RawTensor, op binOp) {
	switch a.DType() {
	case tensor.Float32:
		inplaceKernel(a.AsFloat32(), b.AsFloat32(), op)
	case tensor.Float64:
		inplaceKernel(a.AsFloat64(), b.AsFloat64(), op)
	case tensor.Int32:
		inplaceKernel(a.AsInt32(), b.AsInt32(), op)
	case tensor.Int64:
		inplaceKernel(a.AsInt64(), b.AsInt64(), op)
	default:
		panic("binaryInplace: unsupported dtype")
	}
}

// binaryVectorized performs result = a op b over equal-shaped operands.
func binaryVectorized(result, a, b *tensor.RawTensor, op binOp) {
	switch a.DType() {
	case tensor.Float32:
		vectorizedKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), op)
	case tensor.Float64:
		vectorizedKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), op)
	case tensor.Int32:
		vectorizedKernel(result.AsInt32(), a.AsInt32(), b.AsInt32(), op)
	case tensor.Int64:
		vectorizedKernel(result.AsInt64(), a.AsInt64(), b.AsInt64(), op)
	default:
		panic("binaryVectorized: unsupported dtype")
	}
}

// binaryBroadcast performs result = a op b with broadcasting.
func binaryBroadcast(result, a, b *tensor.RawTensor, outShape tensor.Shape, op binOp) {
	switch a.DType() {
	case tensor.Float32:
		broadcastKernel(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), a.Shape(), b.Shape(), outShape, op)
	case tensor.Float64:
		broadcastKernel(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), a.Shape(), b.Shape(), outShape, op)
	case tensor.Int32:
		broadcastKernel(result.AsInt32(), a.AsInt32(), b.AsInt32(), a.Shape(), b.Shape(), outShape, op)
	case tensor.Int64:
		broadcastKernel(result.AsInt64(), a.AsInt64(), b.AsInt64(), a.Shape(), b.Shape(), outShape, op)
	default:
		panic("binaryBroadcast: unsupported dtype")
	}
}
