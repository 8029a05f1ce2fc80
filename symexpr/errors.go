package symexpr

import "errors"

var (
	// ErrCompile reports malformed input to Compile or CompileJacobian:
	// a nil expression, or a variable that belongs to a different Scope.
	// Compilation failures are fatal and must propagate unchanged.
	ErrCompile = errors.New("symexpr: compilation failed")

	// ErrDimension reports an environment or output slice whose length
	// does not match the compiled program's expectations.
	ErrDimension = errors.New("symexpr: dimension mismatch")
)
