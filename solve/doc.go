// Package solve finds equilibria: vectors X* at which every residual of
// a model's market-clearing system vanishes.
//
// 🚀 What does it do?
//
//	Solver wraps a square nonlinear root-finder around a model's
//	residual and Jacobian evaluators:
//	  • Newton — damped Newton with backtracking line search; one exact
//	    analytic Jacobian and one LU factorization per iteration
//	  • Broyden — good-Broyden quasi-Newton; one Jacobian at the start,
//	    rank-one secant updates thereafter, refreshed on stall
//	  • WithoutJacobian() switches both methods to central finite
//	    differences (gonum diff/fd) — slower, but lets callers
//	    cross-check the analytic derivatives
//
// Convergence is declared when ‖F(x)‖∞ ≤ tol·(1 + ‖x‖∞); the relative
// scaling keeps the criterion meaningful whether GDP is measured in
// units or in millions.
//
// Non-convergence — iteration budget exhausted, stalled line search,
// singular Jacobian — is NOT an error: Solve returns Result with
// Converged=false and a diagnostic Message, and performs no retries or
// method escalation. Choosing a better initial guess or another method
// is deliberately the caller's policy (see package guess). Errors are
// reserved for contract violations (nil model, wrong guess length) and
// fatal evaluation failures, which propagate unchanged.
//
// Complexity per Newton iteration: O(s²) Jacobian entries evaluated plus
// an O(s³) LU solve, s = 4N−1.
package solve
