package solve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/isleq/isleq/model"
)

// Solver binds a model's residual and Jacobian evaluators to a nonlinear
// root-finding method. A Solver is cheap to construct and stateless
// across Solve calls.
type Solver struct {
	m    *model.Model
	opts Options
}

// New wraps m in a Solver with the given options applied over
// DefaultOptions.
func New(m *model.Model, opts ...Option) *Solver {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Solver{m: m, opts: cfg}
}

// Result reports one solve attempt. A root is an equilibrium; Converged
// says whether X qualifies under the solver's tolerance. Non-convergence
// is a result, not an error — retrying with another guess or method is
// the caller's decision.
type Result struct {
	// X is the final iterate, converged or not.
	X []float64

	// Converged reports ‖F(X)‖∞ ≤ tol·(1 + ‖X‖∞).
	Converged bool

	// Message is a human-readable termination diagnostic.
	Message string

	// Iterations counts accepted outer steps.
	Iterations int

	// ResidualNorm is ‖F(X)‖∞ at the final iterate.
	ResidualNorm float64
}

// Solve runs the configured method from x0 and returns the outcome.
// Errors indicate contract violations or fatal evaluation failures;
// every algorithmic outcome, including divergence, arrives in Result.
func (s *Solver) Solve(x0 []float64) (Result, error) {
	if s.m == nil {
		return Result{}, ErrNilModel
	}
	if len(x0) != s.m.Size() {
		return Result{}, fmt.Errorf("%w: got %d, want %d", ErrBadGuess, len(x0), s.m.Size())
	}
	switch s.opts.Method {
	case Broyden:
		return s.broyden(x0)
	default:
		return s.newton(x0)
	}
}

// converged applies the scaled residual test.
func (s *Solver) converged(resNorm float64, x []float64) bool {
	return resNorm <= s.opts.Tolerance*(1+floats.Norm(x, math.Inf(1)))
}

// jacobianAt returns the Jacobian at x: analytic by default, central
// finite differences under WithoutJacobian.
func (s *Solver) jacobianAt(x []float64) (*mat.Dense, error) {
	if s.opts.UseJacobian {
		return s.m.Jacobian(x)
	}
	n := s.m.Size()
	dst := mat.NewDense(n, n, nil)
	var inner error
	fd.Jacobian(dst, func(y, xx []float64) {
		r, err := s.m.System(xx)
		if err != nil {
			if inner == nil {
				inner = err
			}
			for i := range y {
				y[i] = math.NaN()
			}

			return
		}
		copy(y, r)
	}, x, &fd.JacobianSettings{Formula: fd.Central})
	if inner != nil {
		return nil, inner
	}

	return dst, nil
}

// lineSearch backtracks from x along step until the residual norm shows
// sufficient decrease. It returns the accepted iterate, its residual and
// norm, and whether any step was accepted. NaN norms (negative prices or
// wages probed by an overlong step) fail the decrease test and shrink
// the step naturally.
func (s *Solver) lineSearch(x, step []float64, resNorm float64) (xNew, rNew []float64, normNew float64, ok bool, err error) {
	n := len(x)
	cand := make([]float64, n)
	for t := 1.0; t >= s.opts.MinStep; t /= 2 {
		floats.AddScaledTo(cand, x, t, step)
		r, sysErr := s.m.System(cand)
		if sysErr != nil {
			return nil, nil, 0, false, sysErr
		}
		norm := floats.Norm(r, math.Inf(1))
		if norm <= (1-1e-4*t)*resNorm {
			return cand, r, norm, true, nil
		}
	}

	return nil, nil, 0, false, nil
}

// newton is damped Newton iteration with an exact (or finite-difference)
// Jacobian and LU-factored step solve.
func (s *Solver) newton(x0 []float64) (Result, error) {
	n := s.m.Size()
	x := append([]float64(nil), x0...)
	r, err := s.m.System(x)
	if err != nil {
		return Result{}, err
	}
	resNorm := floats.Norm(r, math.Inf(1))

	for it := 0; it < s.opts.MaxIterations; it++ {
		if s.converged(resNorm, x) {
			return Result{X: x, Converged: true, Message: "converged", Iterations: it, ResidualNorm: resNorm}, nil
		}
		jac, err := s.jacobianAt(x)
		if err != nil {
			return Result{}, err
		}
		step, solveErr := newtonStep(jac, r, n)
		if solveErr != nil {
			return Result{X: x, Converged: false, Message: "singular jacobian: " + solveErr.Error(), Iterations: it, ResidualNorm: resNorm}, nil
		}
		xNew, rNew, normNew, ok, err := s.lineSearch(x, step, resNorm)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Result{X: x, Converged: false, Message: "line search stalled", Iterations: it, ResidualNorm: resNorm}, nil
		}
		x, r, resNorm = xNew, rNew, normNew
	}
	if s.converged(resNorm, x) {
		return Result{X: x, Converged: true, Message: "converged", Iterations: s.opts.MaxIterations, ResidualNorm: resNorm}, nil
	}

	return Result{X: x, Converged: false, Message: "maximum iterations reached", Iterations: s.opts.MaxIterations, ResidualNorm: resNorm}, nil
}

// broyden is the good-Broyden method: secant rank-one updates of an
// initial Jacobian, with one refresh from the true Jacobian on stall.
func (s *Solver) broyden(x0 []float64) (Result, error) {
	n := s.m.Size()
	x := append([]float64(nil), x0...)
	r, err := s.m.System(x)
	if err != nil {
		return Result{}, err
	}
	resNorm := floats.Norm(r, math.Inf(1))

	b, err := s.jacobianAt(x)
	if err != nil {
		return Result{}, err
	}
	refreshed := false

	for it := 0; it < s.opts.MaxIterations; it++ {
		if s.converged(resNorm, x) {
			return Result{X: x, Converged: true, Message: "converged", Iterations: it, ResidualNorm: resNorm}, nil
		}
		step, solveErr := newtonStep(b, r, n)
		if solveErr != nil {
			if refreshed {
				return Result{X: x, Converged: false, Message: "singular jacobian: " + solveErr.Error(), Iterations: it, ResidualNorm: resNorm}, nil
			}
			refreshed = true
			if b, err = s.jacobianAt(x); err != nil {
				return Result{}, err
			}

			continue
		}
		xNew, rNew, normNew, ok, err := s.lineSearch(x, step, resNorm)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			if refreshed {
				return Result{X: x, Converged: false, Message: "line search stalled", Iterations: it, ResidualNorm: resNorm}, nil
			}
			// Secant drift: rebuild the Jacobian once and retry.
			refreshed = true
			if b, err = s.jacobianAt(x); err != nil {
				return Result{}, err
			}

			continue
		}
		refreshed = false

		// Secant update: B += (Δr − B·Δx)·Δxᵀ / (Δxᵀ·Δx).
		dx := make([]float64, n)
		dr := make([]float64, n)
		floats.SubTo(dx, xNew, x)
		floats.SubTo(dr, rNew, r)
		dxVec := mat.NewVecDense(n, dx)
		bdx := mat.NewVecDense(n, nil)
		bdx.MulVec(b, dxVec)
		u := mat.NewVecDense(n, nil)
		u.SubVec(mat.NewVecDense(n, dr), bdx)
		if dot := mat.Dot(dxVec, dxVec); dot > 0 {
			b.RankOne(b, 1/dot, u, dxVec)
		}

		x, r, resNorm = xNew, rNew, normNew
	}
	if s.converged(resNorm, x) {
		return Result{X: x, Converged: true, Message: "converged", Iterations: s.opts.MaxIterations, ResidualNorm: resNorm}, nil
	}

	return Result{X: x, Converged: false, Message: "maximum iterations reached", Iterations: s.opts.MaxIterations, ResidualNorm: resNorm}, nil
}

// newtonStep solves jac·step = −r by LU factorization.
func newtonStep(jac *mat.Dense, r []float64, n int) ([]float64, error) {
	var lu mat.LU
	lu.Factorize(jac)
	rhs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, -r[i])
	}
	step := mat.NewVecDense(n, nil)
	if err := lu.SolveVecTo(step, false, rhs); err != nil {
		return nil, err
	}

	return step.RawVector().Data, nil
}
