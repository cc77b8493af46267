package gate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianmalcolm/qibo/cmat"
	"github.com/ianmalcolm/qibo/gate"
)

const eps = 1e-12

// TestCatalog_Hadamard verifies the H matrix entries.
func TestCatalog_Hadamard(t *testing.T) {
	h := gate.H(0)
	require.NoError(t, h.Err())
	m, err := h.Matrix()
	require.NoError(t, err)

	s := complex(1/math.Sqrt2, 0)
	want, err := cmat.NewDenseFromSlice(2, 2, []complex128{s, s, s, -s})
	require.NoError(t, err)
	assert.True(t, m.EqualApprox(want, eps))
}

// TestCatalog_ControlledGates verifies that CNOT/CZ carry their control
// as a control qubit, not a second target.
func TestCatalog_ControlledGates(t *testing.T) {
	cx := gate.CNOT(0, 1)
	require.NoError(t, cx.Err())
	assert.Equal(t, []int{1}, cx.Targets())
	assert.Equal(t, []int{0}, cx.Controls())
	assert.Equal(t, []int{0, 1}, cx.Qubits())

	tof := gate.Toffoli(0, 1, 2)
	require.NoError(t, tof.Err())
	assert.Equal(t, []int{2}, tof.Targets())
	assert.Equal(t, []int{0, 1}, tof.Controls())

	// target matrix stays 2x2; controls are projected by the engine
	m, err := cx.Matrix()
	require.NoError(t, err)
	assert.Equal(t, 2, m.Rows())
}

// TestControlledBy_OverlapFails verifies eager rejection of controls that
// hit a target or repeat.
func TestControlledBy_OverlapFails(t *testing.T) {
	_, err := gate.X(1).ControlledBy(1)
	assert.ErrorIs(t, err, gate.ErrControlTargetOverlap, "control == target must error")

	_, err = gate.X(1).ControlledBy(0, 0)
	assert.ErrorIs(t, err, gate.ErrDuplicateQubit, "repeated control must error")

	cnot := gate.CNOT(2, 2)
	assert.ErrorIs(t, cnot.Err(), gate.ErrControlTargetOverlap, "self-controlled CNOT must record the defect")
}

// TestControlledBy_ChannelFails verifies that channels can never be controlled.
func TestControlledBy_ChannelFails(t *testing.T) {
	ch, err := gate.NoiseChannel(0, 0.5, 0, 0)
	require.NoError(t, err)
	_, err = ch.ControlledBy(1)
	assert.ErrorIs(t, err, gate.ErrChannelControlled)

	_, err = gate.M(0).ControlledBy(1)
	assert.ErrorIs(t, err, gate.ErrNotControllable, "measurements cannot be controlled")
}

// TestWithParameters_Rebind verifies that rebinding produces a fresh
// matrix and leaves the original Spec untouched.
func TestWithParameters_Rebind(t *testing.T) {
	rx := gate.RX(0, 0.1234)
	m1, err := rx.Matrix()
	require.NoError(t, err)

	rebound, err := rx.WithParameters(0.4321)
	require.NoError(t, err)
	m2, err := rebound.Matrix()
	require.NoError(t, err)
	assert.False(t, m1.EqualApprox(m2, eps), "different angle must give a different matrix")

	// original unchanged
	assert.Equal(t, []float64{0.1234}, rx.Params())
	m1again, err := rx.Matrix()
	require.NoError(t, err)
	assert.True(t, m1.EqualApprox(m1again, eps))

	_, err = rx.WithParameters(0.1, 0.2)
	assert.ErrorIs(t, err, gate.ErrParamCount, "arity mismatch must error")
	_, err = gate.H(0).WithParameters(0.5)
	assert.ErrorIs(t, err, gate.ErrParamCount, "H carries no parameters")
}

// TestValidate_Range verifies the circuit-width consistency check.
func TestValidate_Range(t *testing.T) {
	cz := gate.CZ(0, 3)
	require.NoError(t, cz.Err())
	assert.NoError(t, cz.Validate(4))
	assert.ErrorIs(t, cz.Validate(3), gate.ErrQubitRange, "qubit 3 does not fit a 3-qubit state")
}

// TestM_Validation verifies measurement marker construction.
func TestM_Validation(t *testing.T) {
	m := gate.M(3, 2)
	require.NoError(t, m.Err())
	assert.Equal(t, gate.KindMeasurement, m.Kind())
	assert.Equal(t, []int{3, 2}, m.Targets(), "measurement order must be preserved")

	named, err := m.InRegister("B")
	require.NoError(t, err)
	assert.Equal(t, "B", named.Register())

	assert.Error(t, gate.M().Err(), "measurement without qubits must record a defect")
	_, err = gate.H(0).InRegister("A")
	assert.ErrorIs(t, err, gate.ErrNotMeasurement)
}

// TestFlatten_Validation verifies the power-of-two length check.
func TestFlatten_Validation(t *testing.T) {
	fl := gate.Flatten([]complex128{1, 0, 0, 0})
	assert.NoError(t, fl.Err())
	assert.Equal(t, gate.KindFlatten, fl.Kind())

	assert.ErrorIs(t, gate.Flatten([]complex128{1, 0, 0}).Err(), gate.ErrBadFlatten)
	assert.ErrorIs(t, gate.Flatten(nil).Err(), gate.ErrBadFlatten)
}
