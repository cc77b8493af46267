package gate

import (
	"errors"

	"github.com/ianmalcolm/qibo/cmat"
)

// Sentinel errors for gate construction and validation.
var (
	// ErrNegativeQubit indicates a qubit index below zero.
	ErrNegativeQubit = errors.New("gate: qubit index must be non-negative")

	// ErrDuplicateQubit indicates a repeated qubit in a target or control list.
	ErrDuplicateQubit = errors.New("gate: duplicate qubit index")

	// ErrControlTargetOverlap indicates that control and target sets intersect.
	ErrControlTargetOverlap = errors.New("gate: control and target qubits overlap")

	// ErrChannelControlled indicates an attempt to add controls to a channel.
	ErrChannelControlled = errors.New("gate: channels cannot be controlled")

	// ErrNotControllable indicates controls on a measurement, barrier or flatten marker.
	ErrNotControllable = errors.New("gate: operation cannot be controlled")

	// ErrKrausShape indicates a Kraus operator whose dimension does not
	// match 2^|qubit subset|.
	ErrKrausShape = errors.New("gate: Kraus operator dimension does not match its qubit subset")

	// ErrBadProbability indicates noise probabilities outside [0,1] or with sum > 1.
	ErrBadProbability = errors.New("gate: noise probabilities must lie in [0,1] and sum to at most 1")

	// ErrEmptyChannel indicates a channel constructed with no Kraus terms.
	ErrEmptyChannel = errors.New("gate: channel requires at least one Kraus term")

	// ErrParamCount indicates a parameter list of the wrong length.
	ErrParamCount = errors.New("gate: wrong number of parameters")

	// ErrNoMatrix indicates that the operation has no single matrix form
	// (channels, measurements, barriers, flatten markers).
	ErrNoMatrix = errors.New("gate: operation has no matrix form")

	// ErrNoQubits indicates an operation constructed without any qubits.
	ErrNoQubits = errors.New("gate: at least one qubit required")

	// ErrNotMeasurement indicates a register name on a non-measurement Spec.
	ErrNotMeasurement = errors.New("gate: register names apply only to measurements")

	// ErrQubitRange indicates a qubit index at or past the declared circuit width.
	ErrQubitRange = errors.New("gate: qubit index exceeds circuit width")

	// ErrBadFlatten indicates a Flatten buffer whose length is not a power of two.
	ErrBadFlatten = errors.New("gate: flatten buffer length must be a power of two")
)

// Kind classifies an operation for the planner and the engine.
type Kind int

const (
	// KindUnitary is a (possibly controlled) unitary gate.
	KindUnitary Kind = iota

	// KindChannel is a probabilistic Kraus channel; density-matrix only.
	KindChannel

	// KindMeasurement marks qubits for Born-rule sampling at run end.
	KindMeasurement

	// KindBarrier is a callback barrier: it carries no operator but splits
	// fusion blocks across every qubit.
	KindBarrier

	// KindFlatten overwrites the running state with a fixed buffer.
	KindFlatten
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindUnitary:
		return "unitary"
	case KindChannel:
		return "channel"
	case KindMeasurement:
		return "measurement"
	case KindBarrier:
		return "barrier"
	case KindFlatten:
		return "flatten"
	default:
		return "unknown"
	}
}

// MatrixFunc builds the target-space matrix of a unitary from its
// parameters. Implementations must be pure: same parameters, same matrix.
type MatrixFunc func(params []float64) *cmat.Dense

// KrausTerm is one operator of a channel's operator-sum representation,
// acting on the given qubit subset (order fixes the matrix convention).
type KrausTerm struct {
	Qubits []int
	Matrix *cmat.Dense
}
