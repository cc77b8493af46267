// Package engine applies fused or atomic operators to a State in place by
// tensor contraction, and runs whole fusion plans in order.
//
// What
//
//   - Backend: the polymorphic contraction interface — unitary, selective
//     controlled transform, Kraus channel, state overwrite. One
//     implementation per numeric backend; a handle is bound once per
//     Executor and never mixed mid-run. No process-wide default exists.
//   - DenseBackend: the reference implementation over flat complex128
//     buffers, with optional data parallelism across independent output
//     stripes (WithWorkers).
//   - Executor: binds a Backend to a State, validates each block against
//     the circuit width before touching the buffer, applies blocks in
//     fused order, and records measurement markers for the sampler.
//
// Contraction semantics
//
//   - State vector, unitary: the operator matrix contracts the tensor
//     axes of its qubit set; untouched axes pass through.
//   - State vector, controlled: amplitudes whose control bits are all 1
//     are transformed by the target submatrix; every other amplitude is
//     left exactly as is.
//   - Density matrix, unitary U: ρ' = (U⊗I)ρ(U⊗I)†, computed as two
//     independent one-sided contractions — U over the row axes, conj(U)
//     over the column axes.
//   - Channel {(Qᵢ,Kᵢ)}: ρ' = Σᵢ Kᵢ ρ Kᵢ†, accumulated into a zero
//     buffer before replacing ρ. A channel arriving on a vector run
//     lifts ψ→ψψ† first; the run stays density-form thereafter.
//
// Atomicity: validation precedes mutation for every block, so a failing
// block leaves the State unchanged. Only the State buffer is mutated; the
// engine holds no global state.
//
// Complexity: a k-qubit operator on an n-qubit vector costs O(2^n·2^k);
// on a density matrix, O(4^n·2^k) per side. Channels add a factor of the
// Kraus term count.
package engine
