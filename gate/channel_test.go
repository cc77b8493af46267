package gate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianmalcolm/qibo/cmat"
	"github.com/ianmalcolm/qibo/gate"
)

// TestNoiseChannel_KrausSet verifies the survival and flip terms of the
// Pauli noise channel.
func TestNoiseChannel_KrausSet(t *testing.T) {
	ch, err := gate.NoiseChannel(1, 0.3, 0, 0)
	require.NoError(t, err)
	assert.True(t, ch.IsChannel())
	assert.Equal(t, []int{1}, ch.Targets())

	terms := ch.Kraus()
	require.Len(t, terms, 2, "px-only channel has survival + X terms")

	// survival term √0.7·I
	v, err := terms[0].Matrix.At(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(0.7), real(v), 1e-12)

	// flip term √0.3·X
	v, err = terms[1].Matrix.At(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(0.3), real(v), 1e-12)

	// completeness: Σ K†K == I
	sum, err := cmat.NewDense(2, 2)
	require.NoError(t, err)
	for _, term := range terms {
		kk, err := term.Matrix.Dagger().Mul(term.Matrix)
		require.NoError(t, err)
		sum, err = sum.Add(kk)
		require.NoError(t, err)
	}
	assert.True(t, sum.EqualApprox(cmat.Identity(2), 1e-12), "Kraus set must be complete")
}

// TestNoiseChannel_BadProbabilities verifies eager probability validation.
func TestNoiseChannel_BadProbabilities(t *testing.T) {
	_, err := gate.NoiseChannel(0, -0.1, 0, 0)
	assert.ErrorIs(t, err, gate.ErrBadProbability)

	_, err = gate.NoiseChannel(0, 0.6, 0.3, 0.3)
	assert.ErrorIs(t, err, gate.ErrBadProbability, "probabilities summing past 1 must error")

	_, err = gate.NoiseChannel(-1, 0.1, 0, 0)
	assert.ErrorIs(t, err, gate.ErrNegativeQubit)
}

// TestGeneralChannel_TargetUnion verifies that the channel spans the
// ascending union of its term subsets.
func TestGeneralChannel_TargetUnion(t *testing.T) {
	x, err := cmat.NewDenseFromSlice(2, 2, []complex128{0, 1, 1, 0})
	require.NoError(t, err)
	cnot, err := cmat.NewDenseFromSlice(4, 4, []complex128{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	})
	require.NoError(t, err)

	ch, err := gate.GeneralChannel([]gate.KrausTerm{
		{Qubits: []int{1}, Matrix: x.Scale(complex(math.Sqrt(0.4), 0))},
		{Qubits: []int{0, 1}, Matrix: cnot.Scale(complex(math.Sqrt(0.6), 0))},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ch.Targets())
	assert.Len(t, ch.Kraus(), 2)
}

// TestGeneralChannel_KrausShape verifies that a wrongly shaped Kraus
// operator fails at construction, never mid-contraction.
func TestGeneralChannel_KrausShape(t *testing.T) {
	a1, err := cmat.NewDenseFromSlice(2, 2, []complex128{0, 1, 1, 0})
	require.NoError(t, err)

	// 2x2 matrix on a 2-qubit subset needs dimension 4
	_, err = gate.GeneralChannel([]gate.KrausTerm{{Qubits: []int{0, 1}, Matrix: a1}})
	assert.ErrorIs(t, err, gate.ErrKrausShape)

	_, err = gate.GeneralChannel(nil)
	assert.ErrorIs(t, err, gate.ErrEmptyChannel)

	_, err = gate.GeneralChannel([]gate.KrausTerm{{Qubits: nil, Matrix: a1}})
	assert.ErrorIs(t, err, gate.ErrNoQubits)
}
