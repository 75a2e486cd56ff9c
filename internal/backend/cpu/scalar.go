package cpu

import (
	"fmt"

	"github.com/MHStadler/addons/internal/tensor"
)

// Scalar operations - element-wise operations with a scalar value.
// The scalar must match the tensor's dtype (float32 tensor takes a
// float32 scalar, and so on).

// MulScalar multiplies each element of the tensor by a scalar value.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("mulScalar", x, scalar, opMul)
}

// AddScalar adds a scalar value to each element of the tensor.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("addScalar", x, scalar, opAdd)
}

// SubScalar subtracts a scalar value from each element of the tensor.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("subScalar", x, scalar, opSub)
}

// DivScalar divides each element of the tensor by a scalar value.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return cpu.scalarOp("divScalar", x, scalar, opDiv)
}

func (cpu *CPUBackend) scalarOp(name string, x *tensor.RawTensor, scalar any, op binOp) *tensor.RawTensor {
	result := newResult(name, x.Shape(), x.DType(), cpu.device)

	switch x.DType() {
	case tensor.Float32:
		scalarKernel(result.AsFloat32(), x.AsFloat32(), scalar.(float32), op)
	case tensor.Float64:
		scalarKernel(result.AsFloat64(), x.AsFloat64(), scalar.(float64), op)
	case tensor.Int32:
		scalarKernel(result.AsInt32(), x.AsInt32(), scalar.(int32), op)
	case tensor.Int64:
		scalarKernel(result.AsInt64(), x.AsInt64(), scalar.(int64), op)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %v", name, x.DType()))
	}

	return result
}
