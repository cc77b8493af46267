package fusion

import (
	"fmt"

	"github.com/ianmalcolm/qibo/cmat"
	"github.com/ianmalcolm/qibo/gate"
)

// member pairs a gate with its position in the original sequence, so
// merged blocks can restore exact circuit order.
type member struct {
	seq  int
	spec gate.Spec
}

// Block is a maximal sub-sequence of gates confined to a bounded qubit
// set, with a lazily computed composite matrix. Blocks are built by Fuse
// and own their matrix cache exclusively.
type Block struct {
	qubits     []int // ascending canonical order
	members    []member
	standalone bool
	mat        *cmat.Dense // composite cache; nil until computed or after invalidation
}

// Qubits returns the block's qubit set in ascending order, as a copy.
func (b *Block) Qubits() []int {
	cp := make([]int, len(b.qubits))
	copy(cp, b.qubits)
	return cp
}

// Members returns the member gates in original circuit order.
func (b *Block) Members() []gate.Spec {
	out := make([]gate.Spec, len(b.members))
	for i, m := range b.members {
		out[i] = m.spec
	}
	return out
}

// Standalone reports whether the block holds a single gate that can never
// merge with neighbors (channel, measurement, barrier, flatten, or a span
// past the fusion budget).
func (b *Block) Standalone() bool { return b.standalone }

// NumParams returns the total number of free parameters across members.
func (b *Block) NumParams() int {
	var n int
	for _, m := range b.members {
		if m.spec.Kind() == gate.KindUnitary {
			n += m.spec.NumParams()
		}
	}
	return n
}

// Matrix returns the composite operator on the block's qubit set: the
// circuit-order product (later gate left-multiplies) of each member
// embedded into the canonical ascending qubit ordering. The result is
// cached until SetParameters invalidates it. Returns ErrNoMatrix when the
// block holds a channel or marker.
// Complexity: O(|members| · 8^|qubits|) on a cache miss, O(1) after.
func (b *Block) Matrix() (*cmat.Dense, error) {
	if b.mat != nil {
		return b.mat, nil
	}
	for _, m := range b.members {
		if m.spec.Kind() != gate.KindUnitary {
			return nil, fmt.Errorf("%s block: %w", m.spec.Kind(), ErrNoMatrix)
		}
	}
	dim := 1 << len(b.qubits)
	acc := cmat.Identity(dim)
	for _, m := range b.members {
		emb, err := embed(m.spec, b.qubits)
		if err != nil {
			return nil, err
		}
		acc, err = emb.Mul(acc)
		if err != nil {
			return nil, err
		}
	}
	b.mat = acc

	return acc, nil
}

// SetParameters rebinds the free parameters of the block's members in
// circuit order and invalidates the composite cache. The flat list must
// supply exactly NumParams values.
func (b *Block) SetParameters(params []float64) error {
	if len(params) != b.NumParams() {
		return fmt.Errorf("block: got %d params, want %d: %w",
			len(params), b.NumParams(), ErrParamCount)
	}
	off := 0
	for i := range b.members {
		sp := b.members[i].spec
		if sp.Kind() != gate.KindUnitary || sp.NumParams() == 0 {
			continue
		}
		np := sp.NumParams()
		rebound, err := sp.WithParameters(params[off : off+np]...)
		if err != nil {
			return fmt.Errorf("block: %w", err)
		}
		b.members[i].spec = rebound
		off += np
	}
	b.mat = nil

	return nil
}

// embed lifts a member's operator into the block's 2^m space, with
// identity padding on untouched qubits and a block-diagonal control
// projector for controlled members.
func embed(sp gate.Spec, qubits []int) (*cmat.Dense, error) {
	u, err := sp.Matrix()
	if err != nil {
		return nil, fmt.Errorf("fusion: embed %s: %w", sp.Name(), err)
	}
	m := len(qubits)
	dim := 1 << m

	// shift amount of each qubit's axis within the block index
	// (ascending qubit order, first qubit most significant)
	shift := make(map[int]int, m)
	for k, q := range qubits {
		shift[q] = m - 1 - k
	}

	targets := sp.Targets()
	t := len(targets)
	tshift := make([]int, t)
	var tmask int
	for j, q := range targets {
		tshift[j] = shift[q]
		tmask |= 1 << shift[q]
	}
	var cmask int
	for _, q := range sp.Controls() {
		cmask |= 1 << shift[q]
	}

	out, err := cmat.NewDense(dim, dim)
	if err != nil {
		return nil, err
	}
	data := out.Data()
	ud := u.Data()
	udim := 1 << t
	for r := 0; r < dim; r++ {
		if cmask != 0 && r&cmask != cmask {
			// controls not all 1: identity row
			data[r*dim+r] = 1
			continue
		}
		var tr int
		for _, sh := range tshift {
			tr = tr<<1 | (r>>sh)&1
		}
		base := r &^ tmask
		// only columns matching r outside the target axes can be nonzero
		for tc := 0; tc < udim; tc++ {
			v := ud[tr*udim+tc]
			if v == 0 {
				continue
			}
			c := base
			for j, sh := range tshift {
				if tc>>(t-1-j)&1 == 1 {
					c |= 1 << sh
				}
			}
			data[r*dim+c] = v
		}
	}

	return out, nil
}
