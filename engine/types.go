package engine

import (
	"errors"

	"github.com/ianmalcolm/qibo/cmat"
	"github.com/ianmalcolm/qibo/gate"
	"github.com/ianmalcolm/qibo/state"
)

// Sentinel errors for engine construction and application.
var (
	// ErrNilBackend indicates a nil Backend handle.
	ErrNilBackend = errors.New("engine: backend is nil")

	// ErrNilState indicates a nil State.
	ErrNilState = errors.New("engine: state is nil")

	// ErrOperatorShape indicates an operator matrix whose dimension does
	// not match 2^|targets|.
	ErrOperatorShape = errors.New("engine: operator dimension does not match target count")

	// ErrQubitRange indicates a qubit index at or past the state width.
	ErrQubitRange = errors.New("engine: qubit index exceeds state width")

	// ErrFlattenDim indicates a flatten buffer matching neither the vector
	// nor the density dimension of the state.
	ErrFlattenDim = errors.New("engine: flatten buffer matches neither 2^n nor 4^n")
)

// Backend is the numeric contraction engine. Implementations mutate the
// State buffers in place and hold no state of their own beyond tuning
// knobs; one Backend is bound per Executor and never mixed mid-run.
type Backend interface {
	// ApplyUnitary contracts u over the target axes of the state
	// (both sides when the state is a density matrix).
	ApplyUnitary(st *state.State, u *cmat.Dense, targets []int) error

	// ApplyControlled transforms only the subspace where every control
	// qubit is 1 by the target submatrix u, leaving the rest untouched.
	ApplyControlled(st *state.State, u *cmat.Dense, targets, controls []int) error

	// ApplyChannel applies ρ' = Σ Kᵢ ρ Kᵢ†, lifting a vector state first.
	ApplyChannel(st *state.State, terms []gate.KrausTerm) error

	// SetState overwrites the state with the given flat buffer (vector or
	// density length).
	SetState(st *state.State, buf []complex128) error
}

// Option tunes a DenseBackend.
type Option func(*backendOptions)

type backendOptions struct {
	workers int
}

// WithWorkers enables data parallelism across independent output stripes
// of each contraction. n is the goroutine count; panics for n < 1, which
// is a programmer error rather than a runtime condition. Parallelism is
// invisible to the external ordering contract.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("engine: WithWorkers requires n >= 1")
	}
	return func(o *backendOptions) { o.workers = n }
}
