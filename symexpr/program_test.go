package symexpr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/isleq/isleq/symexpr"
)

// TestCompile_MatchesTreeEvaluation compiles a mixed expression list and
// checks tape evaluation against the tree-walk oracle.
func TestCompile_MatchesTreeEvaluation(t *testing.T) {
	s := symexpr.NewScope()
	x := s.Var("x")
	y := s.Var("y")
	th := s.Var("theta")

	exprs := []symexpr.Expr{
		symexpr.Add(symexpr.Mul(x, y), symexpr.Const(2)),
		symexpr.Pow(symexpr.Div(x, y), symexpr.Neg(th)),
		symexpr.Mul(symexpr.Pow(symexpr.Exp(x), th), symexpr.Log(y)),
		symexpr.Const(42),
	}
	prog, err := symexpr.Compile(exprs, s)
	require.NoError(t, err)
	require.Equal(t, len(exprs), prog.Len())
	require.Equal(t, s.Len(), prog.EnvLen())

	env := []float64{1.9, 0.6, 3.5}
	dst := make([]float64, len(exprs))
	require.NoError(t, prog.Eval(env, dst))

	for i, e := range exprs {
		assert.InDelta(t, e.Eval(env), dst[i], 1e-12, "tape %d must match tree evaluation", i)
	}
}

// TestCompile_ForeignVariable rejects variables from another scope with
// ErrCompile.
func TestCompile_ForeignVariable(t *testing.T) {
	s1 := symexpr.NewScope()
	s2 := symexpr.NewScope()
	alien := s2.Var("w")

	_, err := symexpr.Compile([]symexpr.Expr{alien}, s1)
	assert.ErrorIs(t, err, symexpr.ErrCompile)
}

// TestCompile_NilExpression rejects nil entries with ErrCompile.
func TestCompile_NilExpression(t *testing.T) {
	s := symexpr.NewScope()

	_, err := symexpr.Compile([]symexpr.Expr{nil}, s)
	assert.ErrorIs(t, err, symexpr.ErrCompile)
}

// TestProgram_EvalDimensionChecks verifies env/dst length validation.
func TestProgram_EvalDimensionChecks(t *testing.T) {
	s := symexpr.NewScope()
	x := s.Var("x")
	prog, err := symexpr.Compile([]symexpr.Expr{x}, s)
	require.NoError(t, err)

	assert.ErrorIs(t, prog.Eval([]float64{1, 2}, make([]float64, 1)), symexpr.ErrDimension)
	assert.ErrorIs(t, prog.Eval([]float64{1}, make([]float64, 2)), symexpr.ErrDimension)
}

// TestCompileJacobian_SmallSystem checks the compiled Jacobian of a 2×2
// system against hand-computed partial derivatives.
func TestCompileJacobian_SmallSystem(t *testing.T) {
	s := symexpr.NewScope()
	x := s.Var("x")
	y := s.Var("y")

	// f0 = x²·y, f1 = x + e^y
	exprs := []symexpr.Expr{
		symexpr.Mul(symexpr.Pow(x, symexpr.Const(2)), y),
		symexpr.Add(x, symexpr.Exp(y)),
	}
	jp, err := symexpr.CompileJacobian(exprs, []*symexpr.Var{x, y}, s)
	require.NoError(t, err)

	rows, cols := jp.Dims()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)

	env := []float64{1.5, 0.4}
	dst := mat.NewDense(2, 2, nil)
	require.NoError(t, jp.Eval(env, dst))

	assert.InDelta(t, 2*env[0]*env[1], dst.At(0, 0), 1e-12)     // ∂f0/∂x
	assert.InDelta(t, env[0]*env[0], dst.At(0, 1), 1e-12)       // ∂f0/∂y
	assert.InDelta(t, 1.0, dst.At(1, 0), 1e-12)                 // ∂f1/∂x
	assert.InDelta(t, math.Exp(env[1]), dst.At(1, 1), 1e-12)    // ∂f1/∂y
}

// TestJacobianProgram_EvalDimensionChecks verifies matrix shape validation.
func TestJacobianProgram_EvalDimensionChecks(t *testing.T) {
	s := symexpr.NewScope()
	x := s.Var("x")
	jp, err := symexpr.CompileJacobian([]symexpr.Expr{x}, []*symexpr.Var{x}, s)
	require.NoError(t, err)

	assert.ErrorIs(t, jp.Eval([]float64{1}, nil), symexpr.ErrDimension)
	assert.ErrorIs(t, jp.Eval([]float64{1}, mat.NewDense(2, 2, nil)), symexpr.ErrDimension)
	assert.ErrorIs(t, jp.Eval([]float64{1, 2}, mat.NewDense(1, 1, nil)), symexpr.ErrDimension)
}
