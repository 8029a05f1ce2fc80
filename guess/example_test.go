// Package guess_test provides an end-to-end example: seed a two-city
// model with the islands strategy and hand the guess to the solver.
package guess_test

import (
	"fmt"

	"github.com/isleq/isleq/guess"
	"github.com/isleq/isleq/model"
	"github.com/isleq/isleq/solve"
)

// ExampleIslands_Guess solves a two-city economy end to end: build the
// model, seed every city with its autarky equilibrium, then run damped
// Newton with the analytic Jacobian.
func ExampleIslands_Guess() {
	// 1) Two cities, a modest travel time between them.
	distances := [][]float64{
		{0.0, 0.4},
		{0.4, 0.0},
	}
	population := []float64{1.2e6, 0.8e6}
	p := model.Params{F: 1.0, Beta: 1.31, Phi: 1.0 / 1.31, Tau: 0.05, Theta: []float64{10.0}}

	m, err := model.New(2, p, distances, population)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 2) Seed: autarky equilibria plus unit price levels.
	x0, err := guess.Islands{}.Guess(m)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 3) Solve with the defaults (Newton, analytic Jacobian, tol=1e-8).
	res, err := solve.New(m).Solve(x0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 4) Split the equilibrium into named blocks; the numeraire city's
	//    price level is 1 by construction.
	b, err := m.Split(res.X)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("converged=%v (%s)\n", res.Converged, res.Message)
	fmt.Printf("numeraire price=%.0f, unknowns=%d\n", b.Prices[0], len(res.X))
	// Output:
	// converged=true (converged)
	// numeraire price=1, unknowns=7
}
