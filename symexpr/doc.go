// Package symexpr provides the symbolic substrate for equilibrium-system
// construction: immutable expression trees over scoped variables, exact
// analytic differentiation, and compilation into flat numeric programs.
//
// 🚀 What is symexpr?
//
//	A small computer-algebra core purpose-built for assembling and
//	differentiating systems of market-clearing equations:
//	  • Nodes: Const, Var, n-ary Add/Mul, Pow, Log, Exp
//	  • Constructor-level simplification (flattening, constant folding,
//	    identity elimination) keeps derivative trees compact
//	  • Expr.Diff returns the exact derivative — no finite differences
//	  • Compile flattens expression lists into postfix instruction tapes
//	    evaluated without interface dispatch
//
// Variables are created through a Scope, which assigns each name a dense
// index into the evaluation environment ([]float64). Scopes are local to
// one construction pass: building two systems concurrently cannot
// contaminate each other's symbols.
//
// Domain note: simplification rewrites such as (u^a)^b → u^(a·b) assume
// positive bases. Every quantity in the equilibrium system (prices, wages,
// GDP, firm counts, distances) is positive, so the rewrites are exact on
// the intended domain.
//
// Compiled Programs are immutable after Compile and safe for concurrent
// use from multiple goroutines.
//
// Errors: ErrCompile (malformed input to Compile — fatal, propagate),
// ErrDimension (environment/output length mismatch at evaluation).
package symexpr
