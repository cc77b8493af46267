package state_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianmalcolm/qibo/state"
)

// TestNewZero verifies the |0…0⟩ initial condition in both representations.
func TestNewZero(t *testing.T) {
	st, err := state.NewZero(2)
	require.NoError(t, err)
	assert.Equal(t, 2, st.NumQubits())
	assert.Equal(t, 4, st.Dim())
	assert.False(t, st.IsDensity())
	assert.Equal(t, complex128(1), st.Vector()[0])
	assert.InDelta(t, 1.0, real(st.Trace()), 1e-12)

	rho, err := state.NewZero(2, state.WithDensity())
	require.NoError(t, err)
	assert.True(t, rho.IsDensity())
	assert.Equal(t, complex128(1), rho.Density()[0])
	assert.InDelta(t, 1.0, real(rho.Trace()), 1e-12)

	_, err = state.NewZero(0)
	assert.ErrorIs(t, err, state.ErrInvalidQubits)
}

// TestNewVector_Dimension verifies the 2^n length check and buffer copy.
func TestNewVector_Dimension(t *testing.T) {
	_, err := state.NewVector(2, []complex128{1, 0, 0})
	assert.ErrorIs(t, err, state.ErrDimensionMismatch)

	amps := []complex128{0, 0, 1, 0}
	st, err := state.NewVector(2, amps)
	require.NoError(t, err)
	amps[2] = 0
	assert.Equal(t, complex128(1), st.Vector()[2], "constructor must copy the buffer")
}

// TestLift verifies ψ→ψψ† and the one-way representation rule.
func TestLift(t *testing.T) {
	s := complex(1/math.Sqrt2, 0)
	st, err := state.NewVector(1, []complex128{s, s})
	require.NoError(t, err)

	st.Lift()
	require.True(t, st.IsDensity())
	assert.Nil(t, st.Vector())
	rho := st.Density()
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 0.5, real(rho[i]), 1e-12, "|+⟩⟨+| is uniform 1/2")
	}
	assert.InDelta(t, 1.0, real(st.Trace()), 1e-12, "lift preserves trace")

	// lift is idempotent and one-directional
	st.Lift()
	assert.True(t, st.IsDensity())
	err = st.SetVector([]complex128{1, 0})
	assert.ErrorIs(t, err, state.ErrVectorAfterDensity)
}

// TestClone verifies deep-copy independence.
func TestClone(t *testing.T) {
	st, err := state.NewZero(1)
	require.NoError(t, err)
	cp := st.Clone()
	cp.Vector()[0] = 0
	cp.Vector()[1] = 1

	assert.Equal(t, complex128(1), st.Vector()[0], "clone mutation must not leak")
	assert.Equal(t, 1.0, st.Probability(0))
	assert.Equal(t, 1.0, cp.Probability(1))
}

// TestSetDensity verifies the in-place overwrite including the lift path.
func TestSetDensity(t *testing.T) {
	st, err := state.NewZero(1)
	require.NoError(t, err)
	require.False(t, st.IsDensity())

	err = st.SetDensity([]complex128{0, 0, 0, 1})
	require.NoError(t, err)
	assert.True(t, st.IsDensity(), "setting a density matrix lifts a pure state")
	assert.Equal(t, 1.0, st.Probability(1))

	err = st.SetDensity([]complex128{1, 0})
	assert.ErrorIs(t, err, state.ErrDimensionMismatch)
}

// TestNormSquared verifies the diagnostic in both representations.
func TestNormSquared(t *testing.T) {
	s := complex(1/math.Sqrt2, 0)
	st, err := state.NewVector(1, []complex128{s, s})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, st.NormSquared(), 1e-12)

	st.Lift()
	assert.InDelta(t, 1.0, st.NormSquared(), 1e-12)

	sub, err := state.NewVector(1, []complex128{s, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, sub.NormSquared(), 1e-12)
}
