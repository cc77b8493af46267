// Package gate defines immutable descriptions of quantum operations: the
// standard unitary catalog, controlled variants, Kraus channels, and the
// measurement / barrier / state-overwrite markers consumed by the fusion
// planner and the contraction engine.
//
// What
//
//   - Spec: one operation — kind, ordered target qubits (the order fixes
//     the multi-qubit matrix convention: the first target is the most
//     significant bit of the matrix index), control qubits, parameters,
//     and a pure parameters→matrix function or a Kraus operator list.
//   - Catalog: H, X, Y, Z, S, T, I, RX, RY, RZ, U1, CNOT, CZ, CU1, SWAP,
//     FSim, Toffoli, plus NoiseChannel and GeneralChannel for non-unitary
//     evolution, M for measurement registers, Barrier as a fusion barrier,
//     and Flatten to overwrite the running state.
//   - ControlledBy derives a controlled variant; WithParameters rebinds
//     parameters, returning a fresh Spec (matrices are never mutated in
//     place — they are recomputed from the pure matrix function).
//
// Validation
//
//	Everything checkable without the circuit width is checked eagerly:
//	constructors that can fail in interesting ways (ControlledBy,
//	NoiseChannel, GeneralChannel, WithParameters) return an error
//	directly; trivially-bad inputs to simple constructors (negative or
//	duplicate qubits) are recorded inside the Spec and surfaced by
//	Err or Validate before any plan is built or any state is touched.
//	Width-dependent checks (qubit index vs. circuit size) live in
//	Validate(nqubits).
//
// Errors (sentinel)
//
//   - ErrNegativeQubit, ErrDuplicateQubit — malformed qubit lists.
//   - ErrControlTargetOverlap — controls intersect targets.
//   - ErrChannelControlled — a channel may never carry controls.
//   - ErrNotControllable — controls on a marker (measure/barrier/flatten).
//   - ErrKrausShape — Kraus matrix dimension ≠ 2^|qubit subset|.
//   - ErrBadProbability — noise probabilities outside [0,1] or summing past 1.
//   - ErrEmptyChannel — a channel with no Kraus terms.
//   - ErrParamCount — wrong parameter arity for the gate.
//   - ErrNoMatrix — Matrix called on a non-unitary Spec.
//   - ErrQubitRange — a qubit index at or past the circuit width.
//
// Specs are values: accessor methods copy internal slices, so a Spec handed
// to a planner or engine can never be corrupted by the caller.
package gate
