package gate

import (
	"fmt"
	"math"
	"sort"

	"github.com/ianmalcolm/qibo/cmat"
)

// NoiseChannel returns the single-qubit Pauli noise channel on qubit q:
// with probability px, py, pz the state suffers an X, Y or Z flip, and it
// survives untouched with probability 1−px−py−pz. The Kraus set is
// {√(1−px−py−pz)·I, √px·X, √py·Y, √pz·Z} (zero-probability terms omitted),
// which is trace preserving by construction.
func NoiseChannel(q int, px, py, pz float64) (Spec, error) {
	if q < 0 {
		return Spec{}, fmt.Errorf("gate NoiseChannel: qubit %d: %w", q, ErrNegativeQubit)
	}
	for _, p := range []float64{px, py, pz} {
		if p < 0 || p > 1 {
			return Spec{}, fmt.Errorf("gate NoiseChannel: p=%g: %w", p, ErrBadProbability)
		}
	}
	survive := 1 - px - py - pz
	if survive < -1e-12 {
		return Spec{}, fmt.Errorf("gate NoiseChannel: px+py+pz=%g: %w", px+py+pz, ErrBadProbability)
	}
	if survive < 0 {
		survive = 0
	}

	var terms []KrausTerm
	add := func(p float64, m *cmat.Dense) {
		if p > 0 {
			terms = append(terms, KrausTerm{
				Qubits: []int{q},
				Matrix: m.Scale(complex(math.Sqrt(p), 0)),
			})
		}
	}
	add(survive, cmat.Identity(2))
	add(px, fixed(2, 0, 1, 1, 0))
	add(py, fixed(2, 0, -1i, 1i, 0))
	add(pz, fixed(2, 1, 0, 0, -1))
	if len(terms) == 0 {
		return Spec{}, fmt.Errorf("gate NoiseChannel: %w", ErrEmptyChannel)
	}

	return Spec{
		kind:    KindChannel,
		name:    "NoiseChannel",
		targets: []int{q},
		kraus:   terms,
	}, nil
}

// GeneralChannel returns a channel defined by an explicit Kraus list
// ρ' = Σᵢ Kᵢ ρ Kᵢ†. Each term names its own qubit subset (the subset order
// fixes the matrix convention) and its matrix must be square with
// dimension 2^|subset|; a mismatch fails eagerly with ErrKrausShape.
// The channel's targets are the ascending union of all term subsets.
func GeneralChannel(terms []KrausTerm) (Spec, error) {
	if len(terms) == 0 {
		return Spec{}, fmt.Errorf("gate GeneralChannel: %w", ErrEmptyChannel)
	}
	union := make(map[int]struct{})
	cp := make([]KrausTerm, len(terms))
	for i, term := range terms {
		if len(term.Qubits) == 0 {
			return Spec{}, fmt.Errorf("gate GeneralChannel: term %d: %w", i, ErrNoQubits)
		}
		if err := checkQubits(term.Qubits); err != nil {
			return Spec{}, fmt.Errorf("gate GeneralChannel: term %d: %w", i, err)
		}
		dim := 1 << len(term.Qubits)
		if term.Matrix == nil || term.Matrix.Rows() != dim || term.Matrix.Cols() != dim {
			return Spec{}, fmt.Errorf("gate GeneralChannel: term %d on %d qubit(s): %w",
				i, len(term.Qubits), ErrKrausShape)
		}
		cp[i] = KrausTerm{Qubits: copyInts(term.Qubits), Matrix: term.Matrix.Clone()}
		for _, q := range term.Qubits {
			union[q] = struct{}{}
		}
	}
	targets := make([]int, 0, len(union))
	for q := range union {
		targets = append(targets, q)
	}
	sort.Ints(targets)

	return Spec{
		kind:    KindChannel,
		name:    "GeneralChannel",
		targets: targets,
		kraus:   cp,
	}, nil
}
