// Package island solves the degenerate single-city ("island") economy in
// closed form: with one city there is no trade, the goods market clears
// trivially, and the remaining three equilibrium conditions — zero
// profit, labor-market clearing and the resource constraint — admit an
// explicit algebraic solution.
//
// With the price level pinned at 1 and S = β·L denoting effective labor
// supply, the solution is
//
//	W = (φ·f·(θ−1) / (k·S))^(1/(1−θ)),  k = ((θ−1)·φ/θ)^θ
//	Y = S·W
//	M = S / (θ·f)
//
// exact to floating-point precision. The package exists to seed initial
// guesses cheaply — the islands guess applies it city by city and the
// hot-start continuation uses it as the k=1 anchor — so no numeric
// root-finding is ever needed for the base case.
package island
