package measure

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/ianmalcolm/qibo/gate"
	"github.com/ianmalcolm/qibo/state"
)

// Sampler is a validated set of disjoint registers, ready to draw
// Born-rule outcomes from any state wide enough to cover them.
type Sampler struct {
	regs  []Register
	joint []int // concatenated measured qubits, register order preserved
	offs  []int // bit offset of each register inside the joint outcome
}

// New builds a single-register sampler named "register0" over the given
// qubits, in the given order.
func New(qubits ...int) (*Sampler, error) {
	return NewRegisters(Register{Name: "register0", Qubits: qubits})
}

// NewRegisters builds a sampler over disjoint named registers. Registers
// measured together share one joint draw per shot, preserving
// cross-register correlation.
func NewRegisters(regs ...Register) (*Sampler, error) {
	if len(regs) == 0 {
		return nil, ErrNoQubits
	}
	s := &Sampler{regs: make([]Register, len(regs))}
	names := make(map[string]struct{}, len(regs))
	seen := make(map[int]string)
	for i, r := range regs {
		if len(r.Qubits) == 0 {
			return nil, fmt.Errorf("measure: register %q: %w", r.Name, ErrNoQubits)
		}
		if _, dup := names[r.Name]; dup {
			return nil, fmt.Errorf("measure: %q: %w", r.Name, ErrDuplicateRegister)
		}
		names[r.Name] = struct{}{}

		local := make(map[int]struct{}, len(r.Qubits))
		for _, q := range r.Qubits {
			if q < 0 {
				return nil, fmt.Errorf("measure: register %q qubit %d: %w", r.Name, q, ErrNegativeQubit)
			}
			if _, dup := local[q]; dup {
				return nil, fmt.Errorf("measure: register %q qubit %d: %w", r.Name, q, ErrDuplicateQubit)
			}
			local[q] = struct{}{}
			if owner, taken := seen[q]; taken {
				return nil, fmt.Errorf("measure: qubit %d in %q and %q: %w",
					q, owner, r.Name, ErrOverlappingRegisters)
			}
			seen[q] = r.Name
		}

		cp := make([]int, len(r.Qubits))
		copy(cp, r.Qubits)
		s.regs[i] = Register{Name: r.Name, Qubits: cp}
		s.offs = append(s.offs, len(s.joint))
		s.joint = append(s.joint, cp...)
	}

	return s, nil
}

// FromSpecs builds a sampler from the measurement markers of a run, in
// circuit order. Unnamed markers are auto-named register0, register1, …
// by position.
func FromSpecs(specs []gate.Spec) (*Sampler, error) {
	var regs []Register
	for _, sp := range specs {
		if sp.Kind() != gate.KindMeasurement {
			continue
		}
		name := sp.Register()
		if name == "" {
			name = fmt.Sprintf("register%d", len(regs))
		}
		regs = append(regs, Register{Name: name, Qubits: sp.Targets()})
	}
	return NewRegisters(regs...)
}

// Registers returns the register layout as a copy.
func (s *Sampler) Registers() []Register {
	out := make([]Register, len(s.regs))
	for i, r := range s.regs {
		cp := make([]int, len(r.Qubits))
		copy(cp, r.Qubits)
		out[i] = Register{Name: r.Name, Qubits: cp}
	}
	return out
}

// Sample draws nshots independent outcomes from the state, read-only: the
// state is never collapsed. Probabilities follow the Born rule —
// squared amplitude magnitudes marginalized over unmeasured qubits, or
// reduced-density diagonal entries in density form.
func (s *Sampler) Sample(st *state.State, nshots int, opts ...Option) (*Result, error) {
	if st == nil {
		return nil, ErrNilState
	}
	if nshots <= 0 {
		return nil, fmt.Errorf("measure: nshots=%d: %w", nshots, ErrNoShots)
	}
	n := st.NumQubits()
	for _, q := range s.joint {
		if q >= n {
			return nil, fmt.Errorf("measure: qubit %d on %d-qubit state: %w", q, n, ErrQubitRange)
		}
	}
	var o sampleOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	probs := s.distribution(st)
	cum := make([]float64, len(probs))
	var total float64
	for i, p := range probs {
		total += p
		cum[i] = total
	}

	draws := make([]uint64, nshots)
	for i := range draws {
		r := o.rng.Float64() * total
		draws[i] = uint64(sort.SearchFloat64s(cum, r))
	}

	return s.record(draws), nil
}

// distribution reduces the state to outcome probabilities over the joint
// measured qubits, marginalizing the rest.
func (s *Sampler) distribution(st *state.State) []float64 {
	n := st.NumQubits()
	m := len(s.joint)
	probs := make([]float64, 1<<m)
	dim := st.Dim()
	if st.IsDensity() {
		rho := st.Density()
		for i := 0; i < dim; i++ {
			probs[s.project(i, n)] += real(rho[i*dim+i])
		}
		return probs
	}
	for i, a := range st.Vector() {
		probs[s.project(i, n)] += real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

// project extracts the joint outcome bits of basis index i, big-endian in
// measured-qubit order.
func (s *Sampler) project(i, n int) int {
	var out int
	for _, q := range s.joint {
		out = out<<1 | (i>>(n-1-q))&1
	}
	return out
}

// record builds the immutable Result views from the joint draws.
func (s *Sampler) record(draws []uint64) *Result {
	m := len(s.joint)
	res := &Result{
		nshots: len(draws),
		joint:  newRegisterResult(s.joint, len(draws)),
		byName: make(map[string]*RegisterResult, len(s.regs)),
	}
	for i, r := range s.regs {
		rr := newRegisterResult(r.Qubits, len(draws))
		res.byName[r.Name] = rr
		res.names = append(res.names, r.Name)
		width := len(r.Qubits)
		shift := m - s.offs[i] - width
		mask := uint64(1)<<width - 1
		for shot, d := range draws {
			rr.append(shot, d>>shift&mask, width)
		}
	}
	for shot, d := range draws {
		res.joint.append(shot, d, m)
	}
	res.joint.tally()
	for _, rr := range res.byName {
		rr.tally()
	}
	return res
}

// Result holds the immutable sample records of one Sample call.
type Result struct {
	nshots int
	joint  *RegisterResult
	byName map[string]*RegisterResult
	names  []string
}

// NumShots returns the number of draws.
func (r *Result) NumShots() int { return r.nshots }

// Names returns the register names in layout order.
func (r *Result) Names() []string {
	cp := make([]string, len(r.names))
	copy(cp, r.names)
	return cp
}

// Joint returns the combined view over all measured qubits, in register
// concatenation order.
func (r *Result) Joint() *RegisterResult { return r.joint }

// Register returns one register's view.
func (r *Result) Register(name string) (*RegisterResult, error) {
	rr, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("measure: %q: %w", name, ErrUnknownRegister)
	}
	return rr, nil
}

// RegisterResult is the per-register sample record: one decimal and one
// binary row per shot, plus frequency tables. Treat as read-only.
type RegisterResult struct {
	// Qubits is the measured subset in register order.
	Qubits []int

	// Decimal holds one big-endian outcome per shot.
	Decimal []uint64

	// Binary holds one bit row per shot, Binary[shot][j] being the
	// outcome of Qubits[j].
	Binary [][]uint8

	// DecimalFrequencies counts shots per decimal outcome.
	DecimalFrequencies map[uint64]int

	// BinaryFrequencies counts shots per bitstring (e.g. "10").
	BinaryFrequencies map[string]int
}

func newRegisterResult(qubits []int, nshots int) *RegisterResult {
	cp := make([]int, len(qubits))
	copy(cp, qubits)
	return &RegisterResult{
		Qubits:             cp,
		Decimal:            make([]uint64, nshots),
		Binary:             make([][]uint8, nshots),
		DecimalFrequencies: make(map[uint64]int),
		BinaryFrequencies:  make(map[string]int),
	}
}

func (rr *RegisterResult) append(shot int, outcome uint64, width int) {
	rr.Decimal[shot] = outcome
	row := make([]uint8, width)
	for j := 0; j < width; j++ {
		row[j] = uint8(outcome >> (width - 1 - j) & 1)
	}
	rr.Binary[shot] = row
}

func (rr *RegisterResult) tally() {
	var sb strings.Builder
	for shot, d := range rr.Decimal {
		rr.DecimalFrequencies[d]++
		sb.Reset()
		for _, b := range rr.Binary[shot] {
			sb.WriteByte('0' + b)
		}
		rr.BinaryFrequencies[sb.String()]++
	}
}
