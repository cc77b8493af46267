package fusion

import (
	"fmt"
	"sort"

	"github.com/ianmalcolm/qibo/gate"
)

// Plan is an ordered sequence of fused and standalone blocks, semantically
// equivalent to direct sequential application of the source gates.
type Plan struct {
	blocks    []*Block
	maxQubits int
}

// Blocks returns the ordered blocks. The slice is shared; block matrix
// caches are owned by the plan, so serialize access across goroutines.
func (p *Plan) Blocks() []*Block { return p.blocks }

// MaxQubits returns the fusion budget the plan was built with.
func (p *Plan) MaxQubits() int { return p.maxQubits }

// NumParams returns the total number of free parameters across all blocks.
func (p *Plan) NumParams() int {
	var n int
	for _, b := range p.blocks {
		n += b.NumParams()
	}
	return n
}

// SetParameters rebinds every free parameter in the plan, in original
// circuit order, and invalidates only the caches of the blocks that
// actually changed. The block structure is never rebuilt.
func (p *Plan) SetParameters(params []float64) error {
	if len(params) != p.NumParams() {
		return fmt.Errorf("plan: got %d params, want %d: %w",
			len(params), p.NumParams(), ErrParamCount)
	}
	// parameterized members across all blocks, in circuit order
	type slot struct {
		block *Block
		idx   int
		seq   int
		np    int
	}
	var slots []slot
	for _, b := range p.blocks {
		for i, m := range b.members {
			if m.spec.Kind() == gate.KindUnitary && m.spec.NumParams() > 0 {
				slots = append(slots, slot{block: b, idx: i, seq: m.seq, np: m.spec.NumParams()})
			}
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].seq < slots[j].seq })

	off := 0
	for _, s := range slots {
		rebound, err := s.block.members[s.idx].spec.WithParameters(params[off : off+s.np]...)
		if err != nil {
			return fmt.Errorf("plan: %w", err)
		}
		s.block.members[s.idx].spec = rebound
		s.block.mat = nil
		off += s.np
	}

	return nil
}

// builder is an open block under construction.
type builder struct {
	qubits  map[int]struct{}
	members []member
	first   int // seq of the first member, for deterministic emission order
}

// Fuse plans the gate sequence into maximal blocks of at most MaxQubits
// qubits. Malformed Specs fail here, before any block is built; the
// returned plan applies gates in an order that preserves every
// shared-qubit dependency of the input.
// Complexity: O(G·K) time for G gates, excluding composite assembly
// (which is lazy).
func Fuse(specs []gate.Spec, opts ...Option) (*Plan, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.MaxQubits < 1 {
		return nil, ErrInvalidMaxQubits
	}

	open := make(map[int]*builder)
	var out []*Block

	// emit converts closed builders to blocks, oldest first.
	emit := func(closed []*builder) {
		sort.Slice(closed, func(i, j int) bool { return closed[i].first < closed[j].first })
		for _, b := range closed {
			out = append(out, finish(b, false))
		}
	}

	// closeOn removes and returns the distinct builders open on any of the
	// given qubits; an empty span closes every open builder (barrier).
	closeOn := func(span []int) []*builder {
		var closed []*builder
		seen := make(map[*builder]struct{})
		collect := func(b *builder) {
			if b == nil {
				return
			}
			if _, dup := seen[b]; dup {
				return
			}
			seen[b] = struct{}{}
			closed = append(closed, b)
		}
		if len(span) == 0 {
			for _, b := range open {
				collect(b)
			}
		} else {
			for _, q := range span {
				collect(open[q])
			}
		}
		for _, b := range closed {
			for q := range b.qubits {
				delete(open, q)
			}
		}
		return closed
	}

	for i, sp := range specs {
		if err := sp.Err(); err != nil {
			return nil, fmt.Errorf("fusion: gate %d: %w", i, err)
		}
		span := sp.Qubits()

		// channels, measurements, barriers, flatten markers, and wide
		// gates can never merge with neighbors
		if sp.Kind() != gate.KindUnitary || len(span) > o.MaxQubits {
			emit(closeOn(span))
			out = append(out, standalone(i, sp, span))
			continue
		}

		closed := closeOn(span)
		union := make(map[int]struct{}, o.MaxQubits)
		for _, q := range span {
			union[q] = struct{}{}
		}
		for _, b := range closed {
			for q := range b.qubits {
				union[q] = struct{}{}
			}
		}

		var nb *builder
		if len(union) <= o.MaxQubits {
			// merge the closed blocks and the new gate into one open block
			nb = &builder{qubits: union, first: i}
			for _, b := range closed {
				nb.members = append(nb.members, b.members...)
				if b.first < nb.first {
					nb.first = b.first
				}
			}
			sort.Slice(nb.members, func(a, c int) bool { return nb.members[a].seq < nb.members[c].seq })
			nb.members = append(nb.members, member{seq: i, spec: sp})
		} else {
			// the union is too wide: emit what was open and start fresh,
			// keeping the new gate open so later gates may still join it
			emit(closed)
			nb = &builder{
				qubits:  make(map[int]struct{}, len(span)),
				first:   i,
				members: []member{{seq: i, spec: sp}},
			}
			for _, q := range span {
				nb.qubits[q] = struct{}{}
			}
		}
		for q := range nb.qubits {
			open[q] = nb
		}
	}

	emit(closeOn(nil))

	return &Plan{blocks: out, maxQubits: o.MaxQubits}, nil
}

// finish converts a builder into an emitted Block.
func finish(b *builder, standalone bool) *Block {
	qs := make([]int, 0, len(b.qubits))
	for q := range b.qubits {
		qs = append(qs, q)
	}
	sort.Ints(qs)
	return &Block{qubits: qs, members: b.members, standalone: standalone}
}

// standalone wraps one unfusable gate in its own emitted block.
func standalone(seq int, sp gate.Spec, span []int) *Block {
	qs := make([]int, len(span))
	copy(qs, span)
	return &Block{qubits: qs, members: []member{{seq: seq, spec: sp}}, standalone: true}
}
