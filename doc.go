// Package qibo is an in-memory quantum circuit simulation core: gate
// descriptions, greedy gate fusion, dense tensor-contraction execution over
// state vectors and density matrices, and Born-rule measurement sampling.
//
// 🚀 What is qibo?
//
//	A pure-Go simulation engine that brings together:
//		• Gate descriptions: unitaries, controlled variants, Kraus channels,
//		  measurement and barrier markers — immutable, validated eagerly
//		• Fusion: regroup a gate sequence into maximal composite blocks
//		  bounded by a qubit budget, cutting the number of contractions
//		• Execution: apply fused or atomic operators to a state vector or
//		  density matrix in place, with exact control-qubit projection and
//		  a one-way vector→density lift for non-unitary channels
//		• Sampling: Born-rule outcome draws over named registers, with
//		  decimal/binary views and frequency tables
//
// ✨ Why choose qibo?
//
//   - Deterministic – no global backend, no hidden randomness; RNGs and
//     compute backends are explicit handles threaded through calls
//   - Rock-solid guarantees – eager validation, algebraic equivalence
//     between fused and direct execution, in-code docs
//   - Pure Go – no cgo, no hidden deps
//   - Extensible – the contraction engine is an interface; bind your own
//     backend per run
//
// Under the hood, everything is organized into focused subpackages:
//
//	cmat/    — dense complex128 matrices (product, Kronecker, dagger)
//	gate/    — gate catalog, channels, measurement/barrier markers
//	state/   — state vector & density matrix representations
//	fusion/  — the greedy fusion planner and composite blocks
//	engine/  — contraction backends and the plan executor
//	measure/ — the Born-rule measurement sampler
//
// Quick example — fuse and run a Bell circuit:
//
//	specs := []gate.Spec{gate.H(0), gate.CNOT(0, 1)}
//	plan, _ := fusion.Fuse(specs)
//	st, _ := state.NewZero(2)
//	ex, _ := engine.New(engine.NewDenseBackend(), st)
//	_ = ex.Run(plan)
//	// st.Vector() is now (|00⟩+|11⟩)/√2
//
// Index convention, shared by every package: qubit 0 is the most significant
// bit, so the linear index of a basis state is Σ bit_q · 2^(N−1−q).
//
// See each subpackage's doc.go for algorithms, complexity and error contracts.
package qibo
