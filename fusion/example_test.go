package fusion_test

import (
	"fmt"
	"strings"

	"github.com/ianmalcolm/qibo/fusion"
	"github.com/ianmalcolm/qibo/gate"
)

// Three two-qubit-confined gates collapse into a single fused block.
func ExampleFuse() {
	plan, err := fusion.Fuse([]gate.Spec{gate.H(0), gate.X(1), gate.CZ(0, 1)})
	if err != nil {
		fmt.Println("fuse failed:", err)
		return
	}

	for _, b := range plan.Blocks() {
		var names []string
		for _, sp := range b.Members() {
			names = append(names, sp.Name())
		}
		fmt.Printf("qubits=%v members=%s\n", b.Qubits(), strings.Join(names, ","))
	}
	// Output:
	// qubits=[0 1] members=H,X,CZ
}

// A wider budget lets an entangling ladder fuse into one three-qubit block.
func ExampleWithMaxQubits() {
	plan, err := fusion.Fuse(
		[]gate.Spec{gate.H(0), gate.CNOT(0, 1), gate.CNOT(1, 2)},
		fusion.WithMaxQubits(3),
	)
	if err != nil {
		fmt.Println("fuse failed:", err)
		return
	}

	fmt.Println("blocks:", len(plan.Blocks()))
	fmt.Println("qubits:", plan.Blocks()[0].Qubits())
	// Output:
	// blocks: 1
	// qubits: [0 1 2]
}
