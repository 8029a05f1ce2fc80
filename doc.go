// Package isleq solves spatial general-equilibrium models of trading
// cities: given city populations, pairwise distances and structural
// parameters, it finds the prices, wages, GDP and firm counts that clear
// every market simultaneously.
//
// 🚀 What is isleq?
//
//	A pure-Go library that builds the nonlinear market-clearing system of
//	a monopolistic-competition trade model symbolically, differentiates it
//	exactly, compiles it to fast numeric evaluators, and solves it with
//	Newton-type methods seeded by analytic warm starts:
//	  • symexpr    — symbolic expressions, exact derivatives, compilation
//	  • equations  — equilibrium residual blocks and unknown ordering
//	  • model      — economic state bound to compiled evaluators
//	  • island     — closed-form single-city solution
//	  • solve      — damped Newton / Broyden root-finding
//	  • guess      — islands and hot-start (continuation) initial guesses
//
// ✨ Why choose isleq?
//
//   - Exact analytic Jacobians — no finite-difference cost unless you ask
//   - Warm-start continuation — grow the city count one city at a time
//   - Deterministic compiled evaluators, safe to share across goroutines
//   - Sentinel errors everywhere, matched with errors.Is
//
// A minimal session:
//
//	m, _ := model.New(3, params, distances, population)
//	x0, _ := guess.HotStart{}.Guess(m)
//	res, _ := solve.New(m).Solve(x0)
//	if res.Converged {
//	    blocks, _ := m.Split(res.X)
//	    fmt.Println(blocks.Wages)
//	}
//
// Dive into each package's doc.go for contracts, complexity notes and
// worked examples.
package isleq
