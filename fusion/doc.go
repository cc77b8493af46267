// Package fusion regroups an ordered gate sequence into maximal composite
// blocks bounded by a qubit budget, so the engine pays one tensor
// contraction per block instead of one per gate.
//
// Algorithm Outline (greedy open-block scan)
//
//  1. Track, per qubit, the currently "open" block that last touched it.
//  2. For each gate with qubit span S = targets ∪ controls:
//     – If the gate is a channel, measurement, callback barrier, or spans
//     more than MaxQubits: close every open block on S (a barrier with
//     no qubits closes all of them), emit those blocks, then emit the
//     gate as a standalone block. Nothing stays open on its qubits.
//     – Otherwise gather the open blocks touching S. If the union of
//     their qubit sets with S fits in MaxQubits, merge them into one
//     open block, members in original circuit order, the new gate last.
//     If the union does not fit, emit the gathered blocks and open a
//     fresh block holding just the new gate — keeping it open preserves
//     maximality for later gates on the same qubits.
//  3. At end of input, close the remaining open blocks in order of their
//     first member.
//
// The emitted sequence is semantically equivalent to direct sequential
// application: per qubit, gate order never changes, and no merge crosses
// a shared-qubit dependency or a barrier.
//
// Composite matrices
//
//	Block.Matrix lazily computes the circuit-order product of each
//	member's operator embedded into the block's canonical (ascending)
//	qubit ordering — identity-padded on untouched qubits, with controlled
//	members contributing a block-diagonal projector (identity where
//	controls are 0, the target submatrix where controls are all 1). The
//	result is cached; rebinding parameters through SetParameters
//	invalidates only the affected block's cache, never the block
//	structure.
//
// Complexity
//
//	Planning: O(G·K) for G gates and budget K. A block composite:
//	O(|members| · 8^K). Caches are exclusively owned by their plan;
//	concurrent rebinding and execution must be serialized by the caller.
//
// Errors (sentinel)
//
//   - ErrInvalidMaxQubits — budget below 1.
//   - ErrNoMatrix — composite requested for a channel/marker block.
//   - ErrParamCount — SetParameters length mismatch.
//   - Malformed gate Specs surface their own recorded errors here,
//     before any block is built.
package fusion
