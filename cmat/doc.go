// Package cmat provides dense complex linear algebra primitives for
// quantum operators and state buffers.
//
// What
//
//   - Dense: a row-major complex128 matrix backed by a flat slice, with
//     bounds-checked At/Set accessors and a raw Data view for kernels.
//   - Ops: matrix product (Mul), Kronecker product (Kron), element-wise
//     Add, scalar Scale, conjugate transpose (Dagger), Trace, and an
//     EqualApprox tolerance comparison.
//
// Why
//
//   - Gate matrices, composite fused blocks, and Kraus operators are all
//     small dense complex matrices; one shared type keeps their algebra,
//     validation, and error surface in one place.
//
// Errors (sentinel)
//
//   - ErrInvalidDimensions — requested dimensions are non-positive.
//   - ErrIndexOutOfBounds  — a row/column index is outside valid range.
//   - ErrShapeMismatch     — operand shapes are incompatible for an op.
//
// Complexity
//
//   - At/Set: O(1) · Mul: O(r·c·k) · Kron: O(r₁c₁r₂c₂) · the rest: O(r·c).
//
// All operations are deterministic and allocate fresh result matrices;
// operands are never mutated.
package cmat
