// Package equations constructs the symbolic market-clearing system of the
// spatial trade equilibrium for a given city count.
//
// 🚀 What does it build?
//
//	For n cities under monopolistic competition with CES demand and
//	iceberg-style trade costs, Build(n) produces the 4n−1 residual
//	expressions whose root is the equilibrium, together with the matching
//	unknown ordering:
//	  • goods-market clearing, cities 1..n−1 (city 0 dropped — Walras)
//	  • zero total profit, all n cities
//	  • labor-market clearing, all n cities
//	  • resource constraint (GDP = income), all n cities
//	against unknowns P[1..n−1], Y[0..n−1], W[0..n−1], M[0..n−1].
//
// City 0 is the numeraire: its price level is pinned at 1.0 and its
// goods-market equation is redundant by Walras' Law (summed over all
// cities, exports identically equal imports), so dropping it recovers a
// square, generically nonsingular system. The block orders above are a
// positional contract — residual[i] is the equation that pins unknown[i]
// in the Jacobian's diagonal sense — consumed by the solver, not
// cosmetic.
//
// Construction is a pure function of n: each call creates a fresh local
// Scope, so concurrent builds for different n cannot contaminate each
// other. Data (population, elasticities, distances, scalar parameters)
// enters as scoped placeholders bound to concrete values at evaluation
// time through Layout.
//
// Complexity: O(n²) expression nodes (each of O(n) city equations sums
// over O(n) trade partners).
package equations
