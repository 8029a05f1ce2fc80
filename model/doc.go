// Package model binds economic data — city count, structural parameters,
// pairwise distances and populations — to the compiled equilibrium system
// and exposes ready-to-call residual and Jacobian evaluators.
//
// 🚀 What does it own?
//
//	Model is the stateful center of the library:
//	  • validates inputs at the point of mutation (SetN, SetParams fail
//	    fast with ErrInvalidCityCount / ErrInvalidParams)
//	  • lazily builds and caches the symbolic system and its compiled
//	    programs per city count; the cache is process-wide and keyed by
//	    N, so every Model of the same size shares one compilation
//	  • System(x) and Jacobian(x) slice the flat unknown vector into the
//	    P/Y/W/M blocks (city 0's price pinned at 1.0), bind current
//	    population, parameters and distances into the evaluation
//	    environment, and run the compiled programs
//
// The distance matrix and population vector back every prefix N' ≤ N:
// callers growing the city count reuse the same dataset, so SetN only
// revalidates and switches cache keys. Derived quantities
// (EconomicDistance, EffectiveLaborSupply) are recomputed from current
// state on every access and can never go stale.
//
// Precondition: every demand elasticity θ_j must exceed 1, or the markup
// θ/(θ−1) loses economic meaning and the system becomes numerically
// hostile; Validate enforces this.
//
// The per-N artifact cache is guarded by a mutex, so independent Models
// may be driven from separate goroutines; a single Model performs no
// internal locking of its own mutable state.
package model
