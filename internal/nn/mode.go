package nn

import "fmt"

// Mode selects the execution phase for a Forward call.
//
// The phase is a per-call argument, not layer state: each call
// re-evaluates it independently and no instance state is mutated.
type Mode int

const (
	// Eval is the deterministic inference phase. It is the zero value,
	// so an unset mode falls on the deterministic branch.
	Eval Mode = iota

	// Train is the stochastic training phase.
	Train
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case Eval:
		return "eval"
	case Train:
		return "train"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}
