package solve

import "fmt"

// Method selects the root-finding algorithm.
type Method int

const (
	// Newton is damped Newton iteration: exact Jacobian and LU solve
	// every step, backtracking line search on the residual norm.
	Newton Method = iota

	// Broyden is the good-Broyden quasi-Newton method: one Jacobian up
	// front, rank-one secant updates afterwards, a fresh Jacobian when
	// progress stalls. Cheaper per iteration, more iterations.
	Broyden
)

// String renders the method name for diagnostics.
func (m Method) String() string {
	switch m {
	case Newton:
		return "newton"
	case Broyden:
		return "broyden"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// Defaults for Options; see the corresponding fields.
const (
	// DefaultTolerance is the relative residual tolerance of the
	// convergence test ‖F(x)‖∞ ≤ tol·(1 + ‖x‖∞).
	DefaultTolerance = 1e-8

	// DefaultMaxIterations bounds outer iterations.
	DefaultMaxIterations = 100

	// DefaultMinStep is the line-search damping floor; below it the
	// search is declared stalled.
	DefaultMinStep = 1e-12
)

// Options configures a Solver. Construct with DefaultOptions and adjust
// via the With* functional options.
type Options struct {
	Method        Method
	Tolerance     float64
	MaxIterations int
	MinStep       float64

	// UseJacobian selects the exact analytic Jacobian (true, default)
	// or central finite differences (false).
	UseJacobian bool
}

// DefaultOptions returns the documented defaults: Newton with the
// analytic Jacobian.
func DefaultOptions() Options {
	return Options{
		Method:        Newton,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		MinStep:       DefaultMinStep,
		UseJacobian:   true,
	}
}

// Option mutates Options during Solver construction.
type Option func(*Options)

// WithMethod selects the root-finding algorithm.
func WithMethod(m Method) Option {
	if m != Newton && m != Broyden {
		panic(fmt.Sprintf("solve: unknown method %d", int(m)))
	}

	return func(o *Options) { o.Method = m }
}

// WithTolerance sets the relative residual tolerance; t must be
// positive (programmer error otherwise).
func WithTolerance(t float64) Option {
	if t <= 0 {
		panic(fmt.Sprintf("solve: tolerance must be positive, got %v", t))
	}

	return func(o *Options) { o.Tolerance = t }
}

// WithMaxIterations bounds the outer iteration count; n must be
// positive (programmer error otherwise).
func WithMaxIterations(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("solve: max iterations must be positive, got %d", n))
	}

	return func(o *Options) { o.MaxIterations = n }
}

// WithoutJacobian switches to central finite-difference Jacobians,
// matching the analytic path within numerical tolerance — useful for
// cross-checking derivatives.
func WithoutJacobian() Option {
	return func(o *Options) { o.UseJacobian = false }
}
