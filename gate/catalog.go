package gate

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/ianmalcolm/qibo/cmat"
)

// fixed builds a dim×dim matrix from literal data. Catalog shapes are
// fixed at compile time, so a failure here is unreachable.
func fixed(dim int, data ...complex128) *cmat.Dense {
	m, err := cmat.NewDenseFromSlice(dim, dim, data)
	if err != nil {
		panic(err)
	}
	return m
}

// H returns the Hadamard gate on qubit q.
func H(q int) Spec {
	return newUnitary("H", []int{q}, 0, nil, func([]float64) *cmat.Dense {
		s := complex(1/math.Sqrt2, 0)
		return fixed(2, s, s, s, -s)
	})
}

// X returns the Pauli-X (bit flip) gate on qubit q.
func X(q int) Spec {
	return newUnitary("X", []int{q}, 0, nil, func([]float64) *cmat.Dense {
		return fixed(2, 0, 1, 1, 0)
	})
}

// Y returns the Pauli-Y gate on qubit q.
func Y(q int) Spec {
	return newUnitary("Y", []int{q}, 0, nil, func([]float64) *cmat.Dense {
		return fixed(2, 0, -1i, 1i, 0)
	})
}

// Z returns the Pauli-Z (phase flip) gate on qubit q.
func Z(q int) Spec {
	return newUnitary("Z", []int{q}, 0, nil, func([]float64) *cmat.Dense {
		return fixed(2, 1, 0, 0, -1)
	})
}

// S returns the phase gate diag(1, i) on qubit q.
func S(q int) Spec {
	return newUnitary("S", []int{q}, 0, nil, func([]float64) *cmat.Dense {
		return fixed(2, 1, 0, 0, 1i)
	})
}

// T returns the π/8 gate diag(1, e^{iπ/4}) on qubit q.
func T(q int) Spec {
	return newUnitary("T", []int{q}, 0, nil, func([]float64) *cmat.Dense {
		return fixed(2, 1, 0, 0, cmplx.Exp(1i*math.Pi/4))
	})
}

// I returns the identity gate on qubit q. Harmless, occasionally useful
// as a placeholder in variational layers.
func I(q int) Spec {
	return newUnitary("I", []int{q}, 0, nil, func([]float64) *cmat.Dense {
		return fixed(2, 1, 0, 0, 1)
	})
}

// RX returns the rotation exp(-iθX/2) on qubit q.
func RX(q int, theta float64) Spec {
	return newUnitary("RX", []int{q}, 1, []float64{theta}, func(p []float64) *cmat.Dense {
		c := complex(math.Cos(p[0]/2), 0)
		s := complex(0, -math.Sin(p[0]/2))
		return fixed(2, c, s, s, c)
	})
}

// RY returns the rotation exp(-iθY/2) on qubit q.
func RY(q int, theta float64) Spec {
	return newUnitary("RY", []int{q}, 1, []float64{theta}, func(p []float64) *cmat.Dense {
		c := complex(math.Cos(p[0]/2), 0)
		s := complex(math.Sin(p[0]/2), 0)
		return fixed(2, c, -s, s, c)
	})
}

// RZ returns the rotation exp(-iθZ/2) on qubit q.
func RZ(q int, theta float64) Spec {
	return newUnitary("RZ", []int{q}, 1, []float64{theta}, func(p []float64) *cmat.Dense {
		return fixed(2, cmplx.Exp(complex(0, -p[0]/2)), 0, 0, cmplx.Exp(complex(0, p[0]/2)))
	})
}

// U1 returns the phase gate diag(1, e^{iθ}) on qubit q.
func U1(q int, theta float64) Spec {
	return newUnitary("U1", []int{q}, 1, []float64{theta}, func(p []float64) *cmat.Dense {
		return fixed(2, 1, 0, 0, cmplx.Exp(complex(0, p[0])))
	})
}

// CNOT returns X on target controlled by control.
func CNOT(control, target int) Spec {
	return controlled("CNOT", X(target), control)
}

// CZ returns Z on target controlled by control.
func CZ(control, target int) Spec {
	return controlled("CZ", Z(target), control)
}

// CU1 returns U1(θ) on target controlled by control.
func CU1(control, target int, theta float64) Spec {
	return controlled("CU1", U1(target, theta), control)
}

// Toffoli returns X on target controlled by two qubits.
func Toffoli(control1, control2, target int) Spec {
	return controlled("TOFFOLI", X(target), control1, control2)
}

// SWAP returns the gate exchanging qubits a and b.
func SWAP(a, b int) Spec {
	return newUnitary("SWAP", []int{a, b}, 0, nil, func([]float64) *cmat.Dense {
		return fixed(4,
			1, 0, 0, 0,
			0, 0, 1, 0,
			0, 1, 0, 0,
			0, 0, 0, 1)
	})
}

// FSim returns the fermionic simulation gate on qubits a and b: an XX+YY
// rotation by theta on the single-excitation subspace and a phase e^{-iφ}
// on |11⟩.
func FSim(a, b int, theta, phi float64) Spec {
	return newUnitary("fSim", []int{a, b}, 2, []float64{theta, phi}, func(p []float64) *cmat.Dense {
		c := complex(math.Cos(p[0]), 0)
		s := complex(0, -math.Sin(p[0]))
		return fixed(4,
			1, 0, 0, 0,
			0, c, s, 0,
			0, s, c, 0,
			0, 0, 0, cmplx.Exp(complex(0, -p[1])))
	})
}

// controlled applies ControlledBy to a base gate and renames it, carrying
// any validation failure inside the returned Spec.
func controlled(name string, base Spec, controls ...int) Spec {
	s, err := base.ControlledBy(controls...)
	if err != nil {
		return Spec{kind: KindUnitary, name: name, err: err}
	}
	s.name = name
	return s
}

// M marks qubits for measurement at run end, in the given order (the order
// fixes the big-endian decimal view of the register). Use InRegister to
// name the register; unnamed registers are auto-named by the sampler.
func M(qubits ...int) Spec {
	s := Spec{kind: KindMeasurement, name: "M", targets: copyInts(qubits)}
	if len(qubits) == 0 {
		s.err = fmt.Errorf("gate M: %w", ErrNoQubits)
		return s
	}
	if err := checkQubits(s.targets); err != nil {
		s.err = fmt.Errorf("gate M: %w", err)
	}
	return s
}

// Barrier returns a callback barrier. It carries no operator: the planner
// closes every open block when it sees one, so observables evaluated at
// the barrier see exactly the prefix state.
func Barrier() Spec {
	return Spec{kind: KindBarrier, name: "BARRIER"}
}

// Flatten overwrites the running state with the given buffer: a 2^n
// vector on a state-vector run, or a flat 2^n×2^n density matrix.
// The buffer is copied.
func Flatten(amps []complex128) Spec {
	s := Spec{kind: KindFlatten, name: "FLATTEN"}
	if len(amps) == 0 || len(amps)&(len(amps)-1) != 0 {
		s.err = fmt.Errorf("gate FLATTEN: len=%d: %w", len(amps), ErrBadFlatten)
		return s
	}
	s.amps = make([]complex128, len(amps))
	copy(s.amps, amps)
	return s
}
