// Package state holds the exponentially sized quantum state a run mutates:
// a pure state vector of 2^N complex amplitudes, or a density matrix of
// 2^N×2^N entries, over a fixed qubit count N.
//
// Index convention
//
//	Qubit 0 is the most significant bit: the basis state with bits
//	b₀b₁…b_{N−1} lives at linear index Σ b_q·2^(N−1−q). The density matrix
//	is stored flat in row-major order with the same convention on both
//	axes. Contraction kernels conceptually reshape either buffer into one
//	size-2 axis per qubit.
//
// Representation switch
//
//	A run starts as a vector (unless constructed with WithDensity) and is
//	lifted to ρ = ψψ† the first time a density-only operator appears.
//	The switch is one-directional: SetVector on a lifted state returns
//	ErrVectorAfterDensity.
//
// Ownership
//
//	A State is uniquely owned by its run and mutated in place; use Clone
//	for independent shots. The package performs no locking — concurrent
//	mutation of one State is a caller bug.
//
// Errors (sentinel)
//
//   - ErrInvalidQubits — non-positive qubit count.
//   - ErrDimensionMismatch — a supplied buffer has the wrong length.
//   - ErrVectorAfterDensity — attempt to go back to a vector after a lift.
package state
