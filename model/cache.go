package model

import (
	"sync"

	"github.com/isleq/isleq/equations"
	"github.com/isleq/isleq/symexpr"
)

// artifacts bundles everything derived from a city count: the symbolic
// system plus its compiled residual and Jacobian programs. Artifacts are
// immutable once built and therefore shareable across every Model of the
// same size.
type artifacts struct {
	sys  *equations.System
	prog *symexpr.Program
	jac  *symexpr.JacobianProgram
}

var (
	cacheMu sync.Mutex
	cache   = make(map[int]*artifacts)
)

// compiledFor returns the compiled artifacts for n cities, building them
// on first request. Symbolic differentiation of the O(n) equations with
// O(n) nested sums is O(n²)–O(n³) work, so the result is cached
// process-wide; the mutex both protects the map and guarantees a build
// finishes before any concurrent access observes it. Compilation errors
// are fatal and propagate unchanged.
func compiledFor(n int) (*artifacts, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if a, ok := cache[n]; ok {
		return a, nil
	}
	sys, err := equations.Build(n)
	if err != nil {
		return nil, err
	}
	prog, err := symexpr.Compile(sys.Residuals, sys.Scope)
	if err != nil {
		return nil, err
	}
	jac, err := symexpr.CompileJacobian(sys.Residuals, sys.Unknowns, sys.Scope)
	if err != nil {
		return nil, err
	}
	a := &artifacts{sys: sys, prog: prog, jac: jac}
	cache[n] = a

	return a, nil
}
