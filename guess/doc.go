// Package guess produces initial vectors for the equilibrium solver.
//
// 🚀 What does it do?
//
//	Root-finding on the market-clearing system is only as good as its
//	starting point; this package encapsulates the two strategies that
//	work in practice:
//	  • Islands — pretend trade is impossible: every city gets its
//	    closed-form autarky equilibrium (package island) and a unit
//	    price level. Cheap, and excellent when trade frictions are high.
//	  • HotStart — continuation in the city count: solve the 1-city
//	    model, append the next city's island values, re-solve, and
//	    repeat until all N cities are in. Each intermediate equilibrium
//	    seeds the next, larger problem.
//
// Both implement Strategy, so solver call sites pick a policy without
// caring how the vector was produced.
//
// HotStart is the one place where solver divergence becomes an error:
// an intermediate prefix that fails to converge leaves nothing to
// continue from, so Guess returns an error wrapping solve.ErrDivergence
// that names the failing city count.
package guess
