package fusion

import "errors"

// Sentinel errors for planning and composite assembly.
var (
	// ErrInvalidMaxQubits indicates a fusion budget below one qubit.
	ErrInvalidMaxQubits = errors.New("fusion: max block width must be at least 1")

	// ErrNoMatrix indicates a composite matrix request on a block whose
	// member has no matrix form (channel, measurement, barrier, flatten).
	ErrNoMatrix = errors.New("fusion: block has no composite matrix")

	// ErrParamCount indicates a SetParameters list whose length does not
	// match the number of free parameters.
	ErrParamCount = errors.New("fusion: parameter count does not match parameterized gates")
)

// DefaultMaxQubits is the fusion budget used when WithMaxQubits is not given.
const DefaultMaxQubits = 2

// Option configures the planner via functional arguments.
type Option func(*Options)

// Options holds planner parameters.
type Options struct {
	// MaxQubits is the largest qubit-set size a fused block may reach.
	MaxQubits int
}

// DefaultOptions returns the planner defaults (two-qubit blocks).
func DefaultOptions() Options {
	return Options{MaxQubits: DefaultMaxQubits}
}

// WithMaxQubits sets the fusion budget K. Values below 1 surface as
// ErrInvalidMaxQubits when Fuse is invoked.
func WithMaxQubits(k int) Option {
	return func(o *Options) { o.MaxQubits = k }
}
