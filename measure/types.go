package measure

import (
	"errors"
	"math/rand/v2"
)

// Sentinel errors for sampler construction and sampling.
var (
	// ErrNoShots indicates a non-positive shot count.
	ErrNoShots = errors.New("measure: shot count must be positive")

	// ErrNilState indicates a nil state passed to Sample.
	ErrNilState = errors.New("measure: state is nil")

	// ErrNoQubits indicates a register without qubits.
	ErrNoQubits = errors.New("measure: at least one qubit required")

	// ErrNegativeQubit indicates a qubit index below zero.
	ErrNegativeQubit = errors.New("measure: qubit index must be non-negative")

	// ErrDuplicateQubit indicates a repeated qubit inside one register.
	ErrDuplicateQubit = errors.New("measure: duplicate qubit in register")

	// ErrOverlappingRegisters indicates simultaneously measured registers
	// sharing a qubit.
	ErrOverlappingRegisters = errors.New("measure: registers must be disjoint")

	// ErrDuplicateRegister indicates two registers with the same name.
	ErrDuplicateRegister = errors.New("measure: duplicate register name")

	// ErrUnknownRegister indicates a lookup of an unregistered name.
	ErrUnknownRegister = errors.New("measure: unknown register")

	// ErrQubitRange indicates a measured qubit at or past the state width.
	ErrQubitRange = errors.New("measure: qubit index exceeds state width")
)

// Register names an ordered qubit subset measured as one unit. The qubit
// order fixes the big-endian decimal view: the first qubit is the most
// significant bit of the register outcome.
type Register struct {
	Name   string
	Qubits []int
}

// Option configures one Sample call.
type Option func(*sampleOptions)

type sampleOptions struct {
	rng *rand.Rand
}

// WithSeed seeds a fresh deterministic generator for this Sample call.
func WithSeed(seed uint64) Option {
	return func(o *sampleOptions) {
		o.rng = rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
	}
}

// WithRand supplies the generator directly. A nil generator keeps the
// default source.
func WithRand(rng *rand.Rand) Option {
	return func(o *sampleOptions) {
		if rng != nil {
			o.rng = rng
		}
	}
}
