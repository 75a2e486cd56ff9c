package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively for correctness verification.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition with broadcasting.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (m *MockBackend) Sub(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (m *MockBackend) Mul(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (m *MockBackend) Div(a, b *RawTensor) *RawTensor {
	return m.elementWise(a, b, func(x, y float64) float64 { return x / y })
}

// MulScalar multiplies every element by a scalar.
func (m *MockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	return m.scalarWise(x, scalarToFloat64(scalar), func(v, s float64) float64 { return v * s })
}

// AddScalar adds a scalar to every element.
func (m *MockBackend) AddScalar(x *RawTensor, scalar any) *RawTensor {
	return m.scalarWise(x, scalarToFloat64(scalar), func(v, s float64) float64 { return v + s })
}

// SubScalar subtracts a scalar from every element.
func (m *MockBackend) SubScalar(x *RawTensor, scalar any) *RawTensor {
	return m.scalarWise(x, scalarToFloat64(scalar), func(v, s float64) float64 { return v - s })
}

// DivScalar divides every element by a scalar.
func (m *MockBackend) DivScalar(x *RawTensor, scalar any) *RawTensor {
	return m.scalarWise(x, scalarToFloat64(scalar), func(v, s float64) float64 { return v / s })
}

// elementWise performs element-wise operations with broadcasting.
func (m *MockBackend) elementWise(a, b *RawTensor, op func(float64, float64) float64) *RawTensor {
	outShape, _, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(err)
	}

	result, err := NewRaw(outShape, a.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	aData := m.toFloat64Slice(a)
	bData := m.toFloat64Slice(b)
	out := make([]float64, outShape.NumElements())

	for i := range out {
		aIdx := m.broadcastIndex(i, outShape, a.Shape())
		bIdx := m.broadcastIndex(i, outShape, b.Shape())
		out[i] = op(aData[aIdx], bData[bIdx])
	}

	m.fromFloat64Slice(out, result)
	return result
}

// scalarWise performs element-wise scalar operations.
func (m *MockBackend) scalarWise(x *RawTensor, scalar float64, op func(float64, float64) float64) *RawTensor {
	result, err := NewRaw(x.Shape(), x.DType(), m.Device())
	if err != nil {
		panic(err)
	}

	xData := m.toFloat64Slice(x)
	out := make([]float64, len(xData))
	for i := range out {
		out[i] = op(xData[i], scalar)
	}

	m.fromFloat64Slice(out, result)
	return result
}

// toFloat64Slice converts tensor data to float64 for generic processing.
func (m *MockBackend) toFloat64Slice(t *RawTensor) []float64 {
	n := t.NumElements()
	out := make([]float64, n)

	switch t.DType() {
	case Float32:
		for i, v := range t.AsFloat32() {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, t.AsFloat64())
	case Int32:
		for i, v := range t.AsInt32() {
			out[i] = float64(v)
		}
	case Int64:
		for i, v := range t.AsInt64() {
			out[i] = float64(v)
		}
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %v", t.DType()))
	}

	return out
}

// fromFloat64Slice writes float64 data back into t's dtype.
func (m *MockBackend) fromFloat64Slice(src []float64, t *RawTensor) {
	switch t.DType() {
	case Float32:
		dst := t.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
	case Float64:
		copy(t.AsFloat64(), src)
	case Int32:
		dst := t.AsInt32()
		for i, v := range src {
			dst[i] = int32(v)
		}
	case Int64:
		dst := t.AsInt64()
		for i, v := range src {
			dst[i] = int64(v)
		}
	default:
		panic(fmt.Sprintf("mock: unsupported dtype %v", t.DType()))
	}
}

// broadcastIndex maps a flat output index to the flat input index under
// broadcasting.
func (m *MockBackend) broadcastIndex(flatIdx int, outShape, inShape Shape) int {
	outStrides := outShape.ComputeStrides()
	inStrides := inShape.ComputeStrides()

	offset := len(outShape) - len(inShape)
	inIdx := 0

	for dim := 0; dim < len(outShape); dim++ {
		coord := flatIdx / outStrides[dim]
		flatIdx %= outStrides[dim]

		inDim := dim - offset
		if inDim < 0 {
			continue
		}
		if inShape[inDim] == 1 {
			continue
		}
		inIdx += coord * inStrides[inDim]
	}

	return inIdx
}

// scalarToFloat64 widens a typed scalar for the mock's generic loops.
func scalarToFloat64(scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	case int32:
		return float64(s)
	case int64:
		return float64(s)
	default:
		panic(fmt.Sprintf("mock: unsupported scalar type %T", scalar))
	}
}
