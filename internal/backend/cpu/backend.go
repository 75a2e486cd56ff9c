// Package cpu implements the pure Go CPU backend for the addons tensor types.
package cpu

import (
	"fmt"

	"github.com/MHStadler/addons/internal/tensor"
)

// CPUBackend implements the elementwise tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("add", a, b, opAdd)
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("sub", a, b, opSub)
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("mul", a, b, opMul)
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binaryOp("div", a, b, opDiv)
}

// binaryOp resolves the output shape and picks the execution path:
// inplace when the left operand's buffer is unique and shapes match,
// a vectorized loop for equal shapes, and the strided slow path when
// broadcasting is required.
func (cpu *CPUBackend) binaryOp(name string, a, b *tensor.RawTensor, op binOp) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	if !needsBroadcast && a.Shape().Equal(b.Shape()) {
		if a.IsUnique() {
			// Inplace into a
			binaryInplace(a, b, op)
			return a
		}
		result := newResult(name, outShape, a.DType(), cpu.device)
		binaryVectorized(result, a, b, op)
		return result
	}

	result := newResult(name, outShape, a.DType(), cpu.device)
	binaryBroadcast(result, a, b, outShape, op)
	return result
}

// newResult allocates the output tensor for an op; allocation failures
// inside the backend panic, as in all backend kernels.
func newResult(name string, shape tensor.Shape, dtype tensor.DataType, device tensor.Device) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, dtype, device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}
	return result
}
