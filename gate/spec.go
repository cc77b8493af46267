package gate

import (
	"fmt"
	"sort"

	"github.com/ianmalcolm/qibo/cmat"
)

// Spec is an immutable description of one operation. The zero value is not
// usable; build Specs through the catalog constructors.
type Spec struct {
	kind     Kind
	name     string
	targets  []int
	controls []int
	params   []float64
	nparams  int
	matrix   MatrixFunc
	kraus    []KrausTerm
	register string
	amps     []complex128
	err      error
}

// Kind returns the operation class.
func (s Spec) Kind() Kind { return s.kind }

// Name returns the catalog name of the operation (e.g. "H", "CNOT").
func (s Spec) Name() string { return s.name }

// Targets returns the ordered target qubits. The order fixes the matrix
// convention: the first target is the most significant bit of the matrix
// index. The returned slice is a copy.
func (s Spec) Targets() []int { return copyInts(s.targets) }

// Controls returns the control qubits as a copy.
func (s Spec) Controls() []int { return copyInts(s.controls) }

// Controlled reports whether the Spec carries any control qubits.
func (s Spec) Controlled() bool { return len(s.controls) > 0 }

// Params returns the ordered real parameters as a copy.
func (s Spec) Params() []float64 {
	cp := make([]float64, len(s.params))
	copy(cp, s.params)
	return cp
}

// NumParams returns the parameter arity of the gate.
func (s Spec) NumParams() int { return s.nparams }

// Register returns the measurement register name ("" when unset or
// not a measurement).
func (s Spec) Register() string { return s.register }

// IsChannel reports whether the Spec is a Kraus channel.
func (s Spec) IsChannel() bool { return s.kind == KindChannel }

// Kraus returns the channel's Kraus terms. Qubit slices are copied;
// matrices are shared and must be treated as read-only.
func (s Spec) Kraus() []KrausTerm {
	terms := make([]KrausTerm, len(s.kraus))
	for i, t := range s.kraus {
		terms[i] = KrausTerm{Qubits: copyInts(t.Qubits), Matrix: t.Matrix}
	}
	return terms
}

// Amplitudes returns the flatten buffer as a copy (nil for other kinds).
func (s Spec) Amplitudes() []complex128 {
	if s.amps == nil {
		return nil
	}
	cp := make([]complex128, len(s.amps))
	copy(cp, s.amps)
	return cp
}

// Qubits returns the full qubit span (targets ∪ controls) in ascending order.
func (s Spec) Qubits() []int {
	span := make([]int, 0, len(s.targets)+len(s.controls))
	span = append(span, s.targets...)
	span = append(span, s.controls...)
	sort.Ints(span)
	return span
}

// Matrix computes the target-space matrix from the current parameters via
// the pure matrix function. Returns ErrNoMatrix for non-unitary Specs.
// Control qubits are not embedded here: the engine and the fusion
// compositor handle control projection themselves.
func (s Spec) Matrix() (*cmat.Dense, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.kind != KindUnitary || s.matrix == nil {
		return nil, fmt.Errorf("gate %s: %w", s.name, ErrNoMatrix)
	}
	return s.matrix(s.params), nil
}

// ControlledBy derives a variant applied only when every listed control
// qubit is 1. Channels and markers cannot be controlled; control qubits
// must be fresh (not already targets or controls).
func (s Spec) ControlledBy(controls ...int) (Spec, error) {
	if s.err != nil {
		return Spec{}, s.err
	}
	switch s.kind {
	case KindChannel:
		return Spec{}, fmt.Errorf("gate %s: %w", s.name, ErrChannelControlled)
	case KindMeasurement, KindBarrier, KindFlatten:
		return Spec{}, fmt.Errorf("gate %s: %w", s.name, ErrNotControllable)
	}
	if len(controls) == 0 {
		return Spec{}, fmt.Errorf("gate %s: controls: %w", s.name, ErrNoQubits)
	}
	merged := append(copyInts(s.controls), controls...)
	if err := checkQubits(merged); err != nil {
		return Spec{}, fmt.Errorf("gate %s: controls: %w", s.name, err)
	}
	if err := checkDisjoint(s.targets, merged); err != nil {
		return Spec{}, fmt.Errorf("gate %s: %w", s.name, err)
	}
	out := s
	out.controls = merged
	return out, nil
}

// WithParameters rebinds the gate parameters, returning a fresh Spec whose
// matrix is recomputed lazily from the pure matrix function. The original
// Spec is untouched.
func (s Spec) WithParameters(params ...float64) (Spec, error) {
	if s.err != nil {
		return Spec{}, s.err
	}
	if s.kind != KindUnitary || s.nparams == 0 {
		return Spec{}, fmt.Errorf("gate %s: not parameterized: %w", s.name, ErrParamCount)
	}
	if len(params) != s.nparams {
		return Spec{}, fmt.Errorf("gate %s: got %d params, want %d: %w",
			s.name, len(params), s.nparams, ErrParamCount)
	}
	out := s
	out.params = make([]float64, len(params))
	copy(out.params, params)
	return out, nil
}

// InRegister names the measurement register of an M Spec.
func (s Spec) InRegister(name string) (Spec, error) {
	if s.err != nil {
		return Spec{}, s.err
	}
	if s.kind != KindMeasurement {
		return Spec{}, fmt.Errorf("gate %s: %w", s.name, ErrNotMeasurement)
	}
	out := s
	out.register = name
	return out, nil
}

// Err surfaces any defect recorded at construction time. Planners call
// this before fusing so that a malformed Spec is never discovered
// mid-contraction.
func (s Spec) Err() error { return s.err }

// Validate checks the Spec against a circuit of nqubits qubits: it
// surfaces construction defects and rejects out-of-range qubit indices
// with ErrQubitRange.
func (s Spec) Validate(nqubits int) error {
	if s.err != nil {
		return s.err
	}
	for _, q := range s.Qubits() {
		if q >= nqubits {
			return fmt.Errorf("gate %s: qubit %d on %d-qubit state: %w",
				s.name, q, nqubits, ErrQubitRange)
		}
	}
	if s.kind == KindChannel {
		for _, term := range s.kraus {
			for _, q := range term.Qubits {
				if q >= nqubits {
					return fmt.Errorf("gate %s: kraus qubit %d on %d-qubit state: %w",
						s.name, q, nqubits, ErrQubitRange)
				}
			}
		}
	}
	return nil
}

// String renders a compact description for debugging.
func (s Spec) String() string {
	if len(s.controls) > 0 {
		return fmt.Sprintf("%s%v|c%v", s.name, s.targets, s.controls)
	}
	return fmt.Sprintf("%s%v", s.name, s.targets)
}

// newUnitary assembles a unitary Spec, recording qubit-list defects for
// later surfacing via Err/Validate.
func newUnitary(name string, targets []int, nparams int, params []float64, fn MatrixFunc) Spec {
	s := Spec{
		kind:    KindUnitary,
		name:    name,
		targets: copyInts(targets),
		nparams: nparams,
		matrix:  fn,
	}
	if nparams > 0 {
		s.params = make([]float64, len(params))
		copy(s.params, params)
	}
	s.err = checkQubits(s.targets)
	if s.err != nil {
		s.err = fmt.Errorf("gate %s: %w", name, s.err)
	}
	return s
}

// copyInts returns a fresh copy of an int slice (nil stays nil).
func copyInts(xs []int) []int {
	if xs == nil {
		return nil
	}
	cp := make([]int, len(xs))
	copy(cp, xs)
	return cp
}

// checkQubits rejects negative or duplicate qubit indices.
func checkQubits(qubits []int) error {
	seen := make(map[int]struct{}, len(qubits))
	for _, q := range qubits {
		if q < 0 {
			return ErrNegativeQubit
		}
		if _, dup := seen[q]; dup {
			return ErrDuplicateQubit
		}
		seen[q] = struct{}{}
	}
	return nil
}

// checkDisjoint rejects any qubit present in both lists.
func checkDisjoint(a, b []int) error {
	seen := make(map[int]struct{}, len(a))
	for _, q := range a {
		seen[q] = struct{}{}
	}
	for _, q := range b {
		if _, hit := seen[q]; hit {
			return ErrControlTargetOverlap
		}
	}
	return nil
}
