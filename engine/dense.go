package engine

import (
	"fmt"
	"math/cmplx"
	"sync"

	"github.com/ianmalcolm/qibo/cmat"
	"github.com/ianmalcolm/qibo/gate"
	"github.com/ianmalcolm/qibo/state"
)

// parallelThreshold is the smallest stripe count worth spawning goroutines
// for; below it the per-goroutine overhead dominates the contraction.
const parallelThreshold = 1 << 8

// DenseBackend is the reference Backend over flat complex128 buffers:
// straightforward index-arithmetic contraction with optional stripe
// parallelism.
type DenseBackend struct {
	workers int
}

// NewDenseBackend builds the dense backend. Sequential by default; see
// WithWorkers.
func NewDenseBackend(opts ...Option) *DenseBackend {
	o := backendOptions{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return &DenseBackend{workers: o.workers}
}

// ApplyUnitary contracts u over the target axes: one pass on a vector,
// row and column passes on a density matrix.
func (b *DenseBackend) ApplyUnitary(st *state.State, u *cmat.Dense, targets []int) error {
	return b.apply(st, u, targets, nil)
}

// ApplyControlled performs the exact selective transform: only amplitudes
// (or density blocks) with every control axis equal to 1 see the target
// submatrix; everything else is untouched.
func (b *DenseBackend) ApplyControlled(st *state.State, u *cmat.Dense, targets, controls []int) error {
	return b.apply(st, u, targets, controls)
}

func (b *DenseBackend) apply(st *state.State, u *cmat.Dense, targets, controls []int) error {
	if err := checkOperator(st, u, targets, controls); err != nil {
		return err
	}
	n := st.NumQubits()
	total := 1 << n
	if !st.IsDensity() {
		k := makeKernel(u.Data(), n, targets, controls, false)
		vec := st.Vector()
		b.parallel(total, func(lo, hi int) { k.run(vec, 0, 1, lo, hi) })
		return nil
	}

	rho := st.Density()
	dim := st.Dim()
	// ρ' = U_e ρ U_e†: U_e over the row axes, conj(U_e) over the column
	// axes, as two independent one-sided contractions
	k := makeKernel(u.Data(), n, targets, controls, false)
	b.parallel(dim, func(lo, hi int) {
		for col := lo; col < hi; col++ {
			k.run(rho, col, dim, 0, total)
		}
	})
	kc := makeKernel(u.Data(), n, targets, controls, true)
	b.parallel(dim, func(lo, hi int) {
		for row := lo; row < hi; row++ {
			kc.run(rho, row*dim, 1, 0, total)
		}
	})

	return nil
}

// ApplyChannel accumulates ρ' = Σᵢ Kᵢ ρ Kᵢ† into a zero buffer and swaps
// it in, lifting a state-vector run to ρ = ψψ† first. Term validation
// happens before the lift so a bad term leaves the state untouched.
func (b *DenseBackend) ApplyChannel(st *state.State, terms []gate.KrausTerm) error {
	if st == nil {
		return ErrNilState
	}
	n := st.NumQubits()
	for i, term := range terms {
		dim := 1 << len(term.Qubits)
		if term.Matrix == nil || term.Matrix.Rows() != dim || term.Matrix.Cols() != dim {
			return fmt.Errorf("engine: kraus term %d: %w", i, ErrOperatorShape)
		}
		for _, q := range term.Qubits {
			if q < 0 || q >= n {
				return fmt.Errorf("engine: kraus term %d qubit %d: %w", i, q, ErrQubitRange)
			}
		}
	}

	st.Lift()
	rho := st.Density()
	dim := st.Dim()
	total := 1 << n
	out := make([]complex128, len(rho))
	tmp := make([]complex128, len(rho))
	for _, term := range terms {
		copy(tmp, rho)
		k := makeKernel(term.Matrix.Data(), n, term.Qubits, nil, false)
		b.parallel(dim, func(lo, hi int) {
			for col := lo; col < hi; col++ {
				k.run(tmp, col, dim, 0, total)
			}
		})
		kc := makeKernel(term.Matrix.Data(), n, term.Qubits, nil, true)
		b.parallel(dim, func(lo, hi int) {
			for row := lo; row < hi; row++ {
				kc.run(tmp, row*dim, 1, 0, total)
			}
		})
		for i := range out {
			out[i] += tmp[i]
		}
	}
	copy(rho, out)

	return nil
}

// SetState overwrites the state with buf: a 2^n vector or a flat 2^n×2^n
// density matrix. A vector buffer on an already-lifted state is lifted
// before the overwrite, so the run never leaves density form.
func (b *DenseBackend) SetState(st *state.State, buf []complex128) error {
	if st == nil {
		return ErrNilState
	}
	dim := st.Dim()
	switch len(buf) {
	case dim:
		if !st.IsDensity() {
			return st.SetVector(buf)
		}
		tmp, err := state.NewVector(st.NumQubits(), buf)
		if err != nil {
			return err
		}
		tmp.Lift()
		return st.SetDensity(tmp.Density())
	case dim * dim:
		return st.SetDensity(buf)
	default:
		return fmt.Errorf("engine: len=%d on %d qubits: %w", len(buf), st.NumQubits(), ErrFlattenDim)
	}
}

// parallel splits [0, total) into at most b.workers contiguous stripes.
// Stripes touch disjoint index groups, so no synchronization beyond the
// final join is needed.
func (b *DenseBackend) parallel(total int, fn func(lo, hi int)) {
	if b.workers <= 1 || total < parallelThreshold {
		fn(0, total)
		return
	}
	chunk := (total + b.workers - 1) / b.workers
	var wg sync.WaitGroup
	for lo := 0; lo < total; lo += chunk {
		hi := min(lo+chunk, total)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// checkOperator validates targets, controls and operator shape against the
// state width before any buffer is touched.
func checkOperator(st *state.State, u *cmat.Dense, targets, controls []int) error {
	if st == nil {
		return ErrNilState
	}
	n := st.NumQubits()
	for _, q := range targets {
		if q < 0 || q >= n {
			return fmt.Errorf("engine: target %d: %w", q, ErrQubitRange)
		}
	}
	for _, q := range controls {
		if q < 0 || q >= n {
			return fmt.Errorf("engine: control %d: %w", q, ErrQubitRange)
		}
	}
	dim := 1 << len(targets)
	if u == nil || u.Rows() != dim || u.Cols() != dim {
		return fmt.Errorf("engine: %d target(s): %w", len(targets), ErrOperatorShape)
	}

	return nil
}

// kernel is one prepared contraction: an operator over fixed target axes
// (and an all-ones control condition) of an n-qubit index space. run may
// be invoked concurrently on disjoint base ranges or disjoint views.
type kernel struct {
	ud     []complex128 // operator data, row-major
	udim   int          // 2^|targets|
	t      int
	tshift []int // bit position of each target axis, in target order
	tmask  int
	cmask  int
	conj   bool // contract with the element-wise conjugate (column side)
}

// makeKernel prepares masks and shifts for the given axes. The first
// target is the most significant bit of the operator index, matching the
// gate matrix convention.
func makeKernel(ud []complex128, n int, targets, controls []int, conj bool) kernel {
	k := kernel{ud: ud, t: len(targets), udim: 1 << len(targets), conj: conj}
	k.tshift = make([]int, k.t)
	for j, q := range targets {
		k.tshift[j] = n - 1 - q
		k.tmask |= 1 << k.tshift[j]
	}
	for _, q := range controls {
		k.cmask |= 1 << (n - 1 - q)
	}
	return k
}

// run contracts the operator into the strided view buf[offset+i*stride]
// for bases in [lo, hi). A base is an index with every target bit clear
// and every control bit set; its group (base plus all target-bit
// combinations) is gathered, transformed, and scattered back. Groups of
// distinct bases are disjoint, which makes stripe parallelism safe.
func (k kernel) run(buf []complex128, offset, stride, lo, hi int) {
	sub := make([]complex128, k.udim)
	idx := make([]int, k.udim)
	for base := lo; base < hi; base++ {
		if base&k.tmask != 0 || base&k.cmask != k.cmask {
			continue
		}
		for j := 0; j < k.udim; j++ {
			off := base
			for jj, sh := range k.tshift {
				if j>>(k.t-1-jj)&1 == 1 {
					off |= 1 << sh
				}
			}
			p := offset + off*stride
			idx[j] = p
			sub[j] = buf[p]
		}
		for r := 0; r < k.udim; r++ {
			var acc complex128
			row := r * k.udim
			for c := 0; c < k.udim; c++ {
				e := k.ud[row+c]
				if k.conj {
					e = cmplx.Conj(e)
				}
				acc += e * sub[c]
			}
			buf[idx[r]] = acc
		}
	}
}
