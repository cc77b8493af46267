package state

import (
	"errors"
	"fmt"
	"math/cmplx"
)

// Sentinel errors for state construction and representation switches.
var (
	// ErrInvalidQubits indicates a non-positive qubit count.
	ErrInvalidQubits = errors.New("state: number of qubits must be positive")

	// ErrDimensionMismatch indicates a buffer whose length does not match 2^n (or 4^n).
	ErrDimensionMismatch = errors.New("state: buffer has wrong dimension")

	// ErrVectorAfterDensity indicates an attempt to restore a vector
	// representation after the one-way density lift.
	ErrVectorAfterDensity = errors.New("state: cannot return to vector form after density lift")
)

// State is an N-qubit quantum state: either a pure state vector or a
// density matrix, never both. Mutated in place by the engine.
type State struct {
	n   int
	vec []complex128 // length 2^n; nil once lifted
	rho []complex128 // flat 2^n × 2^n row-major; nil while pure
}

// Option configures state construction.
type Option func(*options)

type options struct {
	density bool
}

// WithDensity starts the run directly in density-matrix form.
func WithDensity() Option {
	return func(o *options) { o.density = true }
}

// NewZero returns the |0…0⟩ state on n qubits (or |0…0⟩⟨0…0| with
// WithDensity). Complexity: O(2^n) memory, O(4^n) for density form.
func NewZero(n int, opts ...Option) (*State, error) {
	if n <= 0 {
		return nil, ErrInvalidQubits
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	st := &State{n: n}
	dim := 1 << n
	if o.density {
		st.rho = make([]complex128, dim*dim)
		st.rho[0] = 1
	} else {
		st.vec = make([]complex128, dim)
		st.vec[0] = 1
	}

	return st, nil
}

// NewVector returns a pure state initialized from the given 2^n amplitudes.
// The buffer is copied; it is not normalized here — callers own that.
func NewVector(n int, amps []complex128) (*State, error) {
	if n <= 0 {
		return nil, ErrInvalidQubits
	}
	dim := 1 << n
	if len(amps) != dim {
		return nil, fmt.Errorf("state.NewVector(%d): len=%d, want %d: %w",
			n, len(amps), dim, ErrDimensionMismatch)
	}
	vec := make([]complex128, dim)
	copy(vec, amps)

	return &State{n: n, vec: vec}, nil
}

// NewDensity returns a mixed state initialized from a flat row-major
// 2^n × 2^n density matrix. The buffer is copied.
func NewDensity(n int, rho []complex128) (*State, error) {
	if n <= 0 {
		return nil, ErrInvalidQubits
	}
	dim := 1 << n
	if len(rho) != dim*dim {
		return nil, fmt.Errorf("state.NewDensity(%d): len=%d, want %d: %w",
			n, len(rho), dim*dim, ErrDimensionMismatch)
	}
	cp := make([]complex128, dim*dim)
	copy(cp, rho)

	return &State{n: n, rho: cp}, nil
}

// NumQubits returns the fixed qubit count N.
func (s *State) NumQubits() int { return s.n }

// Dim returns 2^N, the length of the vector representation.
func (s *State) Dim() int { return 1 << s.n }

// IsDensity reports whether the state is in density-matrix form.
func (s *State) IsDensity() bool { return s.rho != nil }

// Vector returns the amplitude buffer (nil in density form). The buffer is
// shared: the engine mutates it in place.
func (s *State) Vector() []complex128 { return s.vec }

// Density returns the flat density-matrix buffer (nil in vector form).
// The buffer is shared: the engine mutates it in place.
func (s *State) Density() []complex128 { return s.rho }

// Lift switches a pure state to its density matrix ρ = ψψ†. A no-op when
// already lifted. The switch is one-directional for the rest of the run.
// Complexity: O(4^n) time and memory.
func (s *State) Lift() {
	if s.rho != nil {
		return
	}
	dim := len(s.vec)
	rho := make([]complex128, dim*dim)
	for i, a := range s.vec {
		if a == 0 {
			continue
		}
		row := i * dim
		for j, b := range s.vec {
			rho[row+j] = a * cmplx.Conj(b)
		}
	}
	s.rho = rho
	s.vec = nil
}

// SetVector replaces the amplitude buffer of a pure state.
// Returns ErrVectorAfterDensity once the state has been lifted.
func (s *State) SetVector(amps []complex128) error {
	if s.rho != nil {
		return ErrVectorAfterDensity
	}
	if len(amps) != len(s.vec) {
		return fmt.Errorf("state.SetVector: len=%d, want %d: %w",
			len(amps), len(s.vec), ErrDimensionMismatch)
	}
	copy(s.vec, amps)

	return nil
}

// SetDensity replaces the state with the given flat density matrix,
// lifting the representation if it was still pure.
func (s *State) SetDensity(rho []complex128) error {
	dim := s.Dim()
	if len(rho) != dim*dim {
		return fmt.Errorf("state.SetDensity: len=%d, want %d: %w",
			len(rho), dim*dim, ErrDimensionMismatch)
	}
	if s.rho == nil {
		s.rho = make([]complex128, dim*dim)
		s.vec = nil
	}
	copy(s.rho, rho)

	return nil
}

// Clone returns an independent deep copy, for parallel shots or
// keep-the-original comparisons.
func (s *State) Clone() *State {
	cp := &State{n: s.n}
	if s.vec != nil {
		cp.vec = make([]complex128, len(s.vec))
		copy(cp.vec, s.vec)
	}
	if s.rho != nil {
		cp.rho = make([]complex128, len(s.rho))
		copy(cp.rho, s.rho)
	}

	return cp
}

// Trace returns Tr(ρ) in density form or ⟨ψ|ψ⟩ in vector form. Both equal
// 1 for a normalized state and are preserved by unitaries and complete
// Kraus sets.
func (s *State) Trace() complex128 {
	if s.rho != nil {
		dim := s.Dim()
		var tr complex128
		for i := 0; i < dim; i++ {
			tr += s.rho[i*dim+i]
		}
		return tr
	}
	var norm complex128
	for _, a := range s.vec {
		norm += a * cmplx.Conj(a)
	}

	return norm
}

// NormSquared returns the squared norm of the representation: ⟨ψ|ψ⟩ in
// vector form, Tr(ρ) in density form. Drift from 1 signals accumulated
// numerical error or an incomplete Kraus set.
func (s *State) NormSquared() float64 {
	return real(s.Trace())
}

// Probability returns the Born probability of basis state idx: |ψ_idx|²
// or ρ[idx,idx].
func (s *State) Probability(idx int) float64 {
	if s.rho != nil {
		return real(s.rho[idx*s.Dim()+idx])
	}
	a := s.vec[idx]

	return real(a)*real(a) + imag(a)*imag(a)
}
