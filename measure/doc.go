// Package measure draws classical outcomes from a State per the Born
// rule, organized into named registers with decimal and binary views and
// frequency tables.
//
// What
//
//   - Sampler: a validated set of disjoint named registers over a qubit
//     subset. Build one directly (New, NewRegisters) or from the
//     measurement markers an executor collected (FromSpecs).
//   - Sample: nshots independent draws. The outcome distribution is
//     |amplitude|² marginalized over unmeasured qubits for a state
//     vector, and the diagonal of the reduced density matrix for a
//     density matrix.
//   - Result: per-shot decimal outcomes (big-endian over each register's
//     qubit order), binary outcome rows, and decimal/binary frequency
//     tables — per register and for the joint measurement. Immutable
//     once recorded.
//
// Correlation
//
//	Registers sampled together share one underlying joint draw per shot,
//	so cross-register correlation is preserved exactly: measuring both
//	halves of a Bell pair gives perfectly matching registers.
//
// Determinism
//
//	Sampling is read-only — the State is never collapsed or projected —
//	and randomness is explicit: inject a seed (WithSeed) or a generator
//	(WithRand) for reproducible draws; otherwise a fresh seed is taken
//	from the process-wide source.
//
// Errors (sentinel)
//
//   - ErrNoShots — non-positive shot count.
//   - ErrNilState — nil state.
//   - ErrNoQubits, ErrNegativeQubit, ErrDuplicateQubit — malformed register.
//   - ErrOverlappingRegisters — simultaneous registers sharing a qubit.
//   - ErrDuplicateRegister — two registers with one name.
//   - ErrUnknownRegister — lookup of a name that was never registered.
//   - ErrQubitRange — a measured qubit past the state width.
//
// Complexity: O(2^n) to reduce the distribution (O(2^n) diagonal walk in
// density form), then O(nshots·log 2^m) for the draws over m measured
// qubits.
package measure
