package cpu

import (
	"github.com/MHStadler/addons/internal/tensor"
)

// number covers the dtypes the CPU kernels operate on.
type number interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// inplaceKernel performs a op= b over equal-length slices.
func inplaceKernel[T number](a, b []T, op binOp) {
	switch op {
	case opAdd:
		for i := range a {
			a[i] += b[i]
		}
	case opSub:
		for i := range a {
			a[i] -= b[i]
		}
	case opMul:
		for i := range a {
			a[i] *= b[i]
		}
	case opDiv:
		for i := range a {
			a[i] /= b[i]
		}
	}
}

// vectorizedKernel performs dst = a op b over equal-length slices.
func vectorizedKernel[T number](dst, a, b []T, op binOp) {
	switch op {
	case opAdd:
		for i := range a {
			dst[i] = a[i] + b[i]
		}
	case opSub:
		for i := range a {
			dst[i] = a[i] - b[i]
		}
	case opMul:
		for i := range a {
			dst[i] = a[i] * b[i]
		}
	case opDiv:
		for i := range a {
			dst[i] = a[i] / b[i]
		}
	}
}

// broadcastKernel performs dst = a op b with NumPy-style broadcasting.
// The strided index computation is hoisted out of the per-op loops so the
// hot loop bodies stay branch-free.
func broadcastKernel[T number](dst, a, b []T, aShape, bShape, outShape tensor.Shape, op binOp) {
	outStrides := outShape.ComputeStrides()
	aStrides := computeBroadcastStridesForShape(aShape, outShape)
	bStrides := computeBroadcastStridesForShape(bShape, outShape)

	n := outShape.NumElements()
	switch op {
	case opAdd:
		for i := 0; i < n; i++ {
			dst[i] = a[computeFlatIndex(i, outStrides, aStrides)] + b[computeFlatIndex(i, outStrides, bStrides)]
		}
	case opSub:
		for i := 0; i < n; i++ {
			dst[i] = a[computeFlatIndex(i, outStrides, aStrides)] - b[computeFlatIndex(i, outStrides, bStrides)]
		}
	case opMul:
		for i := 0; i < n; i++ {
			dst[i] = a[computeFlatIndex(i, outStrides, aStrides)] * b[computeFlatIndex(i, outStrides, bStrides)]
		}
	case opDiv:
		for i := 0; i < n; i++ {
			dst[i] = a[computeFlatIndex(i, outStrides, aStrides)] / b[computeFlatIndex(i, outStrides, bStrides)]
		}
	}
}

// scalarKernel performs dst = x op scalar element-wise.
func scalarKernel[T number](dst, x []T, scalar T, op binOp) {
	switch op {
	case opAdd:
		for i := range x {
			dst[i] = x[i] + scalar
		}
	case opSub:
		for i := range x {
			dst[i] = x[i] - scalar
		}
	case opMul:
		for i := range x {
			dst[i] = x[i] * scalar
		}
	case opDiv:
		for i := range x {
			dst[i] = x[i] / scalar
		}
	}
}
