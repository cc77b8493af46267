package cmat

import (
	"fmt"
	"math/cmplx"
)

// opErrorf wraps err with an operation tag, preserving the original error via %w.
func opErrorf(op string, err error) error {
	return fmt.Errorf("cmat.%s: %w", op, err)
}

// Mul returns the matrix product m·other.
// Returns ErrShapeMismatch unless m.Cols() == other.Rows().
// Complexity: O(r·k·c) time, O(r·c) memory.
func (m *Dense) Mul(other *Dense) (*Dense, error) {
	if m.c != other.r {
		return nil, opErrorf("Mul", ErrShapeMismatch)
	}
	out := &Dense{r: m.r, c: other.c, data: make([]complex128, m.r*other.c)}
	var i, j, k int
	for i = 0; i < m.r; i++ {
		for k = 0; k < m.c; k++ {
			a := m.data[i*m.c+k]
			if a == 0 {
				continue // gate matrices are typically sparse
			}
			for j = 0; j < other.c; j++ {
				out.data[i*out.c+j] += a * other.data[k*other.c+j]
			}
		}
	}

	return out, nil
}

// Add returns the element-wise sum m+other.
// Returns ErrShapeMismatch unless shapes are identical.
func (m *Dense) Add(other *Dense) (*Dense, error) {
	if m.r != other.r || m.c != other.c {
		return nil, opErrorf("Add", ErrShapeMismatch)
	}
	out := &Dense{r: m.r, c: m.c, data: make([]complex128, len(m.data))}
	for i := range m.data {
		out.data[i] = m.data[i] + other.data[i]
	}

	return out, nil
}

// Scale returns a copy of m with every element multiplied by s.
func (m *Dense) Scale(s complex128) *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]complex128, len(m.data))}
	for i := range m.data {
		out.data[i] = s * m.data[i]
	}

	return out
}

// Kron returns the Kronecker product m⊗other.
// The result is (m.r·other.r)×(m.c·other.c); operands are not mutated.
// Complexity: O(r₁c₁r₂c₂) time and memory.
func (m *Dense) Kron(other *Dense) *Dense {
	rows, cols := m.r*other.r, m.c*other.c
	out := &Dense{r: rows, c: cols, data: make([]complex128, rows*cols)}
	var i1, j1, i2, j2 int
	for i1 = 0; i1 < m.r; i1++ {
		for j1 = 0; j1 < m.c; j1++ {
			a := m.data[i1*m.c+j1]
			if a == 0 {
				continue
			}
			for i2 = 0; i2 < other.r; i2++ {
				row := (i1*other.r + i2) * cols
				for j2 = 0; j2 < other.c; j2++ {
					out.data[row+j1*other.c+j2] = a * other.data[i2*other.c+j2]
				}
			}
		}
	}

	return out
}

// Dagger returns the conjugate transpose m†.
func (m *Dense) Dagger() *Dense {
	out := &Dense{r: m.c, c: m.r, data: make([]complex128, len(m.data))}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*out.c+i] = cmplx.Conj(m.data[i*m.c+j])
		}
	}

	return out
}

// Trace returns the sum of diagonal elements.
// Returns ErrShapeMismatch for non-square matrices.
func (m *Dense) Trace() (complex128, error) {
	if m.r != m.c {
		return 0, opErrorf("Trace", ErrShapeMismatch)
	}
	var tr complex128
	for i := 0; i < m.r; i++ {
		tr += m.data[i*m.c+i]
	}

	return tr, nil
}

// EqualApprox reports whether m and other have identical shape and every
// element differs by at most eps in modulus.
func (m *Dense) EqualApprox(other *Dense, eps float64) bool {
	if m.r != other.r || m.c != other.c {
		return false
	}
	for i := range m.data {
		if cmplx.Abs(m.data[i]-other.data[i]) > eps {
			return false
		}
	}

	return true
}
