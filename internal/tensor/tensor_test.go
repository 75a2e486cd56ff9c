package tensor

import "testing"

// TestFromSlice verifies tensor creation from slices.
func TestFromSlice(t *testing.T) {
	backend := NewMockBackend()

	data := []float32{1, 2, 3, 4, 5, 6}
	tt, err := FromSlice(data, Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	if !tt.Shape().Equal(Shape{2, 3}) {
		t.Errorf("Expected shape [2 3], got %v", tt.Shape())
	}
	if tt.DType() != Float32 {
		t.Errorf("Expected dtype float32, got %v", tt.DType())
	}

	got := tt.Data()
	for i, want := range data {
		if got[i] != want {
			t.Errorf("Element %d: expected %v, got %v", i, want, got[i])
		}
	}
}

// TestFromSlice_WrongLength verifies the element-count validation.
func TestFromSlice_WrongLength(t *testing.T) {
	backend := NewMockBackend()

	_, err := FromSlice([]float32{1, 2, 3}, Shape{2, 3}, backend)
	if err == nil {
		t.Error("Expected error for mismatched data length")
	}
}

// TestFromSlice_CopiesData verifies the slice is copied, not aliased.
func TestFromSlice_CopiesData(t *testing.T) {
	backend := NewMockBackend()

	data := []float32{1, 2}
	tt, err := FromSlice(data, Shape{2}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	data[0] = 99
	if tt.Data()[0] != 1 {
		t.Error("Tensor data aliases the source slice")
	}
}

// TestTensor_AtSet verifies indexed access.
func TestTensor_AtSet(t *testing.T) {
	backend := NewMockBackend()

	tt := Zeros[float32](Shape{3, 4}, backend)
	tt.Set(7.5, 1, 2)

	if got := tt.At(1, 2); got != 7.5 {
		t.Errorf("At(1, 2): expected 7.5, got %v", got)
	}
	if got := tt.At(0, 0); got != 0 {
		t.Errorf("At(0, 0): expected 0, got %v", got)
	}
}

// TestTensor_AtPanics verifies bounds checking.
func TestTensor_AtPanics(t *testing.T) {
	backend := NewMockBackend()
	tt := Zeros[float32](Shape{2, 2}, backend)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for out-of-bounds index")
		}
	}()
	tt.At(2, 0)
}

// TestTensor_Clone verifies that clones share data copy-on-write.
func TestTensor_Clone(t *testing.T) {
	backend := NewMockBackend()

	original, err := FromSlice([]float32{1, 2, 3}, Shape{3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	clone := original.Clone()

	if !clone.Shape().Equal(original.Shape()) {
		t.Errorf("Clone shape %v != original shape %v", clone.Shape(), original.Shape())
	}

	// Cloning shares the buffer, so neither side is unique anymore.
	if original.Raw().IsUnique() {
		t.Error("Original should not be unique after clone")
	}
	if clone.Raw().IsUnique() {
		t.Error("Clone should not be unique")
	}
}

// TestRawTensor_ForceNonUnique verifies buffer pinning.
func TestRawTensor_ForceNonUnique(t *testing.T) {
	backend := NewMockBackend()
	tt := Zeros[float32](Shape{2}, backend)

	if !tt.Raw().IsUnique() {
		t.Fatal("Fresh tensor should be unique")
	}

	restore := tt.Raw().ForceNonUnique()
	if tt.Raw().IsUnique() {
		t.Error("Pinned tensor should not be unique")
	}

	restore()
	if !tt.Raw().IsUnique() {
		t.Error("Tensor should be unique again after restore")
	}
}

// TestNewRaw_InvalidShape verifies shape validation at allocation.
func TestNewRaw_InvalidShape(t *testing.T) {
	if _, err := NewRaw(Shape{2, 0}, Float32, CPU); err == nil {
		t.Error("Expected error for invalid shape")
	}
}

// TestDataType_Size verifies byte sizes.
func TestDataType_Size(t *testing.T) {
	tests := []struct {
		dtype    DataType
		expected int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.expected {
			t.Errorf("%v.Size(): expected %d, got %d", tt.dtype, tt.expected, got)
		}
	}
}
