package engine_test

import (
	"fmt"

	"github.com/ianmalcolm/qibo/engine"
	"github.com/ianmalcolm/qibo/fusion"
	"github.com/ianmalcolm/qibo/gate"
	"github.com/ianmalcolm/qibo/state"
)

// Plan a Bell-pair circuit into fused blocks and execute it.
func ExampleExecutor_Run() {
	st, err := state.NewZero(2)
	if err != nil {
		fmt.Println("state failed:", err)
		return
	}
	ex, err := engine.New(engine.NewDenseBackend(), st)
	if err != nil {
		fmt.Println("executor failed:", err)
		return
	}

	plan, err := fusion.Fuse([]gate.Spec{gate.H(0), gate.CNOT(0, 1)})
	if err != nil {
		fmt.Println("fuse failed:", err)
		return
	}
	if err := ex.Run(plan); err != nil {
		fmt.Println("run failed:", err)
		return
	}

	fmt.Printf("P(00)=%.2f P(11)=%.2f\n", st.Probability(0), st.Probability(3))
	// Output:
	// P(00)=0.50 P(11)=0.50
}

// Channels force the state into density form mid-run.
func ExampleExecutor_RunGates() {
	st, err := state.NewZero(1)
	if err != nil {
		fmt.Println("state failed:", err)
		return
	}
	ex, err := engine.New(engine.NewDenseBackend(), st)
	if err != nil {
		fmt.Println("executor failed:", err)
		return
	}

	flip, err := gate.NoiseChannel(0, 0.3, 0, 0)
	if err != nil {
		fmt.Println("channel failed:", err)
		return
	}
	if err := ex.RunGates([]gate.Spec{flip}); err != nil {
		fmt.Println("run failed:", err)
		return
	}

	fmt.Println("density:", st.IsDensity())
	fmt.Printf("P(0)=%.2f P(1)=%.2f\n", st.Probability(0), st.Probability(1))
	// Output:
	// density: true
	// P(0)=0.70 P(1)=0.30
}
