package engine

import (
	"errors"
	"fmt"

	"github.com/ianmalcolm/qibo/fusion"
	"github.com/ianmalcolm/qibo/gate"
	"github.com/ianmalcolm/qibo/state"
)

// ErrNilPlan indicates a nil fusion plan passed to Run.
var ErrNilPlan = errors.New("engine: plan is nil")

// Executor binds one Backend to one State for a synchronous run. Blocks
// apply strictly in fused order; measurement markers are recorded, not
// applied, so the sampler can consume the final state. There is no
// mid-circuit cancellation: a run completes or fails atomically.
type Executor struct {
	backend  Backend
	st       *state.State
	measured []gate.Spec
}

// New binds backend and state. The binding is fixed for the run; backends
// are never mixed mid-run.
func New(backend Backend, st *state.State) (*Executor, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if st == nil {
		return nil, ErrNilState
	}
	return &Executor{backend: backend, st: st}, nil
}

// State returns the state being mutated; after Run it is the final state,
// with the documented index mapping (qubit 0 most significant).
func (e *Executor) State() *state.State { return e.st }

// Measurements returns the measurement markers encountered so far, in
// circuit order, as a copy.
func (e *Executor) Measurements() []gate.Spec {
	out := make([]gate.Spec, len(e.measured))
	copy(out, e.measured)
	return out
}

// Run applies a fusion plan block by block. Fused blocks apply their
// composite matrix over the block's canonical qubit set; standalone
// blocks take the atomic path (selective controlled transform, channel
// accumulation, state overwrite, or marker recording).
func (e *Executor) Run(p *fusion.Plan) error {
	if p == nil {
		return ErrNilPlan
	}
	for i, blk := range p.Blocks() {
		if err := e.applyBlock(blk); err != nil {
			return fmt.Errorf("engine: block %d: %w", i, err)
		}
	}
	return nil
}

// RunGates applies gates one at a time without fusion — the direct
// sequential semantics a fused run must reproduce exactly.
func (e *Executor) RunGates(specs []gate.Spec) error {
	for i, sp := range specs {
		if err := e.Apply(sp); err != nil {
			return fmt.Errorf("engine: gate %d: %w", i, err)
		}
	}
	return nil
}

// Apply applies one atomic operation to the state. Validation precedes
// mutation: a failing Spec leaves the state unchanged.
func (e *Executor) Apply(sp gate.Spec) error {
	if err := sp.Validate(e.st.NumQubits()); err != nil {
		return err
	}
	switch sp.Kind() {
	case gate.KindBarrier:
		return nil
	case gate.KindMeasurement:
		e.measured = append(e.measured, sp)
		return nil
	case gate.KindFlatten:
		return e.backend.SetState(e.st, sp.Amplitudes())
	case gate.KindChannel:
		return e.backend.ApplyChannel(e.st, sp.Kraus())
	}
	u, err := sp.Matrix()
	if err != nil {
		return err
	}
	if sp.Controlled() {
		return e.backend.ApplyControlled(e.st, u, sp.Targets(), sp.Controls())
	}
	return e.backend.ApplyUnitary(e.st, u, sp.Targets())
}

func (e *Executor) applyBlock(b *fusion.Block) error {
	members := b.Members()
	if b.Standalone() {
		return e.Apply(members[0])
	}
	// width check for every member before the composite touches the state
	for _, sp := range members {
		if err := sp.Validate(e.st.NumQubits()); err != nil {
			return err
		}
	}
	u, err := b.Matrix()
	if err != nil {
		return err
	}
	return e.backend.ApplyUnitary(e.st, u, b.Qubits())
}
