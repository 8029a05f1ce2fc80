package solve

import "errors"

var (
	// ErrNilModel is returned by Solve when the solver was constructed
	// without a model.
	ErrNilModel = errors.New("solve: model is nil")

	// ErrBadGuess is returned when the initial guess does not have the
	// model's 4N−1 unknown-vector length.
	ErrBadGuess = errors.New("solve: initial guess has wrong length")

	// ErrDivergence identifies solver non-convergence. Solve itself
	// reports non-convergence through Result.Converged, not through an
	// error; consumers that must abort on divergence (the hot-start
	// continuation) wrap this sentinel.
	ErrDivergence = errors.New("solve: solver failed to converge")
)
