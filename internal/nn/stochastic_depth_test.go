package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MHStadler/addons/internal/backend/cpu"
	"github.com/MHStadler/addons/internal/tensor"
)

type cpuTensor = tensor.Tensor[float32, *cpu.CPUBackend]

func pair(a, b *cpuTensor) []*cpuTensor {
	return []*cpuTensor{a, b}
}

func fromSlice(t *testing.T, backend *cpu.CPUBackend, data []float32, shape tensor.Shape) *cpuTensor {
	t.Helper()

	tt, err := tensor.FromSlice(data, shape, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	return tt
}

// TestNewStochasticDepth_ValidatesRange verifies the [0, 1] constraint
// on the survival probability.
func TestNewStochasticDepth_ValidatesRange(t *testing.T) {
	backend := cpu.New()

	for _, p := range []float32{0, 0.5, 1} {
		sd, err := NewStochasticDepth(p, backend)
		if err != nil {
			t.Errorf("p=%v: unexpected error: %v", p, err)
			continue
		}
		if sd.SurvivalProbability() != p {
			t.Errorf("p=%v: stored %v", p, sd.SurvivalProbability())
		}
	}

	for _, p := range []float32{-0.1, 1.1, 2} {
		if _, err := NewStochasticDepth(p, backend); err == nil {
			t.Errorf("p=%v: expected out-of-range error", p)
		}
	}
}

// TestNewStochasticDepthWithRand_NilRand verifies the rng contract.
func TestNewStochasticDepthWithRand_NilRand(t *testing.T) {
	backend := cpu.New()

	if _, err := NewStochasticDepthWithRand(0.5, nil, backend); err == nil {
		t.Error("Expected error for nil rng")
	}
}

// TestStochasticDepth_Eval verifies the deterministic rescaled merge:
// shortcut + p * residual, exactly, independent of any randomness.
func TestStochasticDepth_Eval(t *testing.T) {
	backend := cpu.New()

	sd, err := NewStochasticDepth(0.5, backend)
	if err != nil {
		t.Fatalf("NewStochasticDepth failed: %v", err)
	}

	shortcut := fromSlice(t, backend, []float32{1, 2, 3}, tensor.Shape{3})
	residual := fromSlice(t, backend, []float32{4, 6, 8}, tensor.Shape{3})

	// Repeated calls must all produce the identical result.
	for call := 0; call < 5; call++ {
		out, err := sd.Forward(pair(shortcut, residual), Eval)
		if err != nil {
			t.Fatalf("Forward failed: %v", err)
		}

		expected := []float32{3, 5, 7}
		for i, want := range expected {
			if got := out.Data()[i]; got != want {
				t.Errorf("Call %d element %d: expected %v, got %v", call, i, want, got)
			}
		}
	}
}

// TestStochasticDepth_EvalFormula checks eval output against the
// formula for a probability without an exact binary representation.
func TestStochasticDepth_EvalFormula(t *testing.T) {
	backend := cpu.New()

	const p float32 = 0.7
	sd, err := NewStochasticDepth(p, backend)
	if err != nil {
		t.Fatalf("NewStochasticDepth failed: %v", err)
	}

	shortcutData := []float32{1, -2, 0.25, 10}
	residualData := []float32{2, 3, -1, 0.5}
	shortcut := fromSlice(t, backend, shortcutData, tensor.Shape{4})
	residual := fromSlice(t, backend, residualData, tensor.Shape{4})

	out, err := sd.Forward(pair(shortcut, residual), Eval)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}

	for i := range shortcutData {
		want := shortcutData[i] + p*residualData[i]
		if got := out.Data()[i]; got != want {
			t.Errorf("Element %d: expected %v, got %v", i, want, got)
		}
	}
}

// TestStochasticDepth_TrainKeepFrequency draws many gates at p=0.5 and
// checks the keep frequency statistically. Every output must be exactly
// shortcut or exactly shortcut+residual.
func TestStochasticDepth_TrainKeepFrequency(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(7)) //nolint:gosec // G404: deterministic test seed

	sd, err := NewStochasticDepthWithRand(0.5, rng, backend)
	require.NoError(t, err)

	shortcut := fromSlice(t, backend, []float32{1}, tensor.Shape{1})
	residual := fromSlice(t, backend, []float32{2}, tensor.Shape{1})

	const n = 10000
	kept := 0
	for i := 0; i < n; i++ {
		out, err := sd.Forward(pair(shortcut, residual), Train)
		require.NoError(t, err)

		switch got := out.Data()[0]; got {
		case 3:
			kept++
		case 1:
			// dropped
		default:
			t.Fatalf("Draw %d: output %v is neither shortcut nor shortcut+residual", i, got)
		}
	}

	require.InDelta(t, 0.5, float64(kept)/float64(n), 0.05)
}

// TestStochasticDepth_TrainAlwaysKeepsAtOne verifies the p=1 edge case:
// training output always equals shortcut + residual.
func TestStochasticDepth_TrainAlwaysKeepsAtOne(t *testing.T) {
	backend := cpu.New()

	sd, err := NewStochasticDepth(1, backend)
	if err != nil {
		t.Fatalf("NewStochasticDepth failed: %v", err)
	}

	shortcut := fromSlice(t, backend, []float32{1, 2}, tensor.Shape{2})
	residual := fromSlice(t, backend, []float32{10, 20}, tensor.Shape{2})

	for i := 0; i < 200; i++ {
		out, err := sd.Forward(pair(shortcut, residual), Train)
		if err != nil {
			t.Fatalf("Forward failed: %v", err)
		}
		if out.Data()[0] != 11 || out.Data()[1] != 22 {
			t.Fatalf("Draw %d: expected [11 22], got %v", i, out.Data())
		}
	}

	// Inference agrees at p=1.
	out, err := sd.Forward(pair(shortcut, residual), Eval)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if out.Data()[0] != 11 || out.Data()[1] != 22 {
		t.Errorf("Eval at p=1: expected [11 22], got %v", out.Data())
	}
}

// TestStochasticDepth_TrainAlwaysDropsAtZero verifies the p=0 edge
// case: output always equals the shortcut, in both modes.
func TestStochasticDepth_TrainAlwaysDropsAtZero(t *testing.T) {
	backend := cpu.New()

	sd, err := NewStochasticDepth(0, backend)
	if err != nil {
		t.Fatalf("NewStochasticDepth failed: %v", err)
	}

	shortcut := fromSlice(t, backend, []float32{1, 2}, tensor.Shape{2})
	residual := fromSlice(t, backend, []float32{10, 20}, tensor.Shape{2})

	for i := 0; i < 200; i++ {
		out, err := sd.Forward(pair(shortcut, residual), Train)
		if err != nil {
			t.Fatalf("Forward failed: %v", err)
		}
		if out.Data()[0] != 1 || out.Data()[1] != 2 {
			t.Fatalf("Draw %d: expected [1 2], got %v", i, out.Data())
		}
	}

	out, err := sd.Forward(pair(shortcut, residual), Eval)
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if out.Data()[0] != 1 || out.Data()[1] != 2 {
		t.Errorf("Eval at p=0: expected [1 2], got %v", out.Data())
	}
}

// TestStochasticDepth_OutputShapes verifies shape preservation across
// representative input shapes.
func TestStochasticDepth_OutputShapes(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(3)) //nolint:gosec // G404: deterministic test seed

	sd, err := NewStochasticDepthWithRand(0.5, rng, backend)
	if err != nil {
		t.Fatalf("NewStochasticDepthWithRand failed: %v", err)
	}

	shapes := []tensor.Shape{{1}, {3, 3, 1}, {8, 32, 32, 3}}
	for _, shape := range shapes {
		shortcut := tensor.Randn[float32](shape, backend)
		residual := tensor.Randn[float32](shape, backend)

		for _, mode := range []Mode{Train, Eval} {
			out, err := sd.Forward(pair(shortcut, residual), mode)
			if err != nil {
				t.Fatalf("Shape %v mode %v: Forward failed: %v", shape, mode, err)
			}
			if !out.Shape().Equal(shape) {
				t.Errorf("Shape %v mode %v: output shape %v", shape, mode, out.Shape())
			}
		}

		got, err := sd.OutputShape([]tensor.Shape{shape, shape})
		if err != nil {
			t.Fatalf("OutputShape failed: %v", err)
		}
		if !got.Equal(shape) {
			t.Errorf("OutputShape for %v: got %v", shape, got)
		}
	}
}

// TestStochasticDepth_InputCount verifies the two-input contract.
func TestStochasticDepth_InputCount(t *testing.T) {
	backend := cpu.New()

	sd, err := NewStochasticDepth(0.5, backend)
	if err != nil {
		t.Fatalf("NewStochasticDepth failed: %v", err)
	}

	x := fromSlice(t, backend, []float32{1}, tensor.Shape{1})

	for _, inputs := range [][]*cpuTensor{
		nil,
		{x},
		{x, x, x},
	} {
		if _, err := sd.Forward(inputs, Train); err == nil {
			t.Errorf("Expected input-count error for %d inputs", len(inputs))
		}
	}

	for _, shapes := range [][]tensor.Shape{
		nil,
		{{1}},
		{{1}, {1}, {1}},
	} {
		if _, err := sd.OutputShape(shapes); err == nil {
			t.Errorf("Expected input-count error for %d shapes", len(shapes))
		}
	}
}

// TestStochasticDepth_ShapeMismatch verifies that a non-broadcastable
// branch pair surfaces from the underlying tensor op.
func TestStochasticDepth_ShapeMismatch(t *testing.T) {
	backend := cpu.New()

	sd, err := NewStochasticDepth(1, backend)
	if err != nil {
		t.Fatalf("NewStochasticDepth failed: %v", err)
	}

	shortcut := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
	residual := tensor.Zeros[float32](tensor.Shape{2, 4}, backend)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for mismatched branch shapes")
		}
	}()
	_, _ = sd.Forward(pair(shortcut, residual), Train)
}

// TestStochasticDepth_DoesNotMutateInputs verifies the layer has no
// side effects on its inputs.
func TestStochasticDepth_DoesNotMutateInputs(t *testing.T) {
	backend := cpu.New()

	sd, err := NewStochasticDepth(1, backend)
	if err != nil {
		t.Fatalf("NewStochasticDepth failed: %v", err)
	}

	shortcut := fromSlice(t, backend, []float32{1, 2}, tensor.Shape{2})
	residual := fromSlice(t, backend, []float32{10, 20}, tensor.Shape{2})

	for _, mode := range []Mode{Train, Eval} {
		if _, err := sd.Forward(pair(shortcut, residual), mode); err != nil {
			t.Fatalf("Forward failed: %v", err)
		}

		if shortcut.Data()[0] != 1 || shortcut.Data()[1] != 2 {
			t.Errorf("Mode %v: shortcut mutated: %v", mode, shortcut.Data())
		}
		if residual.Data()[0] != 10 || residual.Data()[1] != 20 {
			t.Errorf("Mode %v: residual mutated: %v", mode, residual.Data())
		}
	}
}

// TestStochasticDepth_Parameters verifies the gate is parameter-free.
func TestStochasticDepth_Parameters(t *testing.T) {
	backend := cpu.New()

	sd, err := NewStochasticDepth(0.5, backend)
	if err != nil {
		t.Fatalf("NewStochasticDepth failed: %v", err)
	}

	if params := sd.Parameters(); len(params) != 0 {
		t.Errorf("Expected no parameters, got %d", len(params))
	}
}

// TestMode_String verifies the phase names.
func TestMode_String(t *testing.T) {
	if Eval.String() != "eval" || Train.String() != "train" {
		t.Errorf("Unexpected mode names: %v, %v", Eval, Train)
	}
}
