package guess

import (
	"errors"
	"fmt"

	"github.com/isleq/isleq/island"
	"github.com/isleq/isleq/model"
	"github.com/isleq/isleq/solve"
)

// ErrNilModel is returned when a strategy is asked to seed a nil model.
var ErrNilModel = errors.New("guess: model is nil")

// Strategy produces an initial unknown vector of length 4N−1 for m.
type Strategy interface {
	Guess(m *model.Model) ([]float64, error)
}

// Islands seeds every city with its autarky equilibrium: unit price
// levels and the closed-form single-city solution per city.
type Islands struct{}

// Guess implements Strategy.
func (Islands) Guess(m *model.Model) ([]float64, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	n := m.N()
	pop := m.Population()
	theta := m.Theta()
	p := m.Params()

	x := make([]float64, 0, 4*n-1)
	for h := 1; h < n; h++ {
		x = append(x, 1.0)
	}
	gdp := make([]float64, n)
	wage := make([]float64, n)
	firms := make([]float64, n)
	for i := 0; i < n; i++ {
		sol, err := island.Solve(pop[i], theta[i], p)
		if err != nil {
			return nil, fmt.Errorf("guess: autarky solution for city %d: %w", i, err)
		}
		gdp[i] = sol.GDP
		wage[i] = sol.Wage
		firms[i] = sol.Firms
	}
	x = append(x, gdp...)
	x = append(x, wage...)
	x = append(x, firms...)

	return x, nil
}

// HotStart seeds by continuation in the city count: the equilibrium of
// each k-city prefix, extended with city k's autarky values, seeds the
// (k+1)-city solve. The final N-city vector is returned unsolved — it
// is a guess, and the caller's solver gets the last word.
type HotStart struct {
	// SolverOptions configure the intermediate prefix solves. The
	// method and tolerance there are independent of whatever the caller
	// runs on the returned guess.
	SolverOptions []solve.Option
}

// Guess implements Strategy. An intermediate prefix that fails to
// converge aborts the continuation with an error wrapping
// solve.ErrDivergence and naming the city count that failed.
func (h HotStart) Guess(m *model.Model) ([]float64, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	n := m.N()
	pop := m.Population()
	theta := m.Theta()
	p := m.Params()

	first, err := island.Solve(pop[0], theta[0], p)
	if err != nil {
		return nil, fmt.Errorf("guess: autarky solution for city 0: %w", err)
	}
	x := first.Vector()
	if n == 1 {
		return x, nil
	}

	for k := 2; k <= n; k++ {
		next, err := island.Solve(pop[k-1], theta[k-1], p)
		if err != nil {
			return nil, fmt.Errorf("guess: autarky solution for city %d: %w", k-1, err)
		}
		x = extend(x, k-1, next)

		if k == n {
			break
		}
		sub, err := m.WithN(k)
		if err != nil {
			return nil, err
		}
		res, err := solve.New(sub, h.SolverOptions...).Solve(x)
		if err != nil {
			return nil, fmt.Errorf("guess: continuation at %d cities: %w", k, err)
		}
		if !res.Converged {
			return nil, fmt.Errorf("guess: continuation at %d cities: %w: %s", k, solve.ErrDivergence, res.Message)
		}
		x = res.X
	}

	return x, nil
}

// extend grows a k-city unknown vector to k+1 cities by splicing a unit
// price level and the new city's autarky values into each block, keeping
// the P,Y,W,M ordering intact.
func extend(x []float64, k int, sol island.Solution) []float64 {
	out := make([]float64, 0, len(x)+4)
	out = append(out, x[:k-1]...)
	out = append(out, 1.0)
	out = append(out, x[k-1:2*k-1]...)
	out = append(out, sol.GDP)
	out = append(out, x[2*k-1:3*k-1]...)
	out = append(out, sol.Wage)
	out = append(out, x[3*k-1:]...)
	out = append(out, sol.Firms)

	return out
}
