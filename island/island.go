package island

import (
	"errors"
	"fmt"
	"math"

	"github.com/isleq/isleq/model"
)

// ErrDomain is returned when the closed form is evaluated outside its
// domain: nonpositive population or parameters failing model validation.
var ErrDomain = errors.New("island: inputs outside the closed form's domain")

// Solution is the single-city equilibrium with the price level fixed at 1.
type Solution struct {
	GDP   float64
	Wage  float64
	Firms float64
}

// Vector returns the solution in unknown-block order (Y, W, M), ready to
// be appended to a guess vector.
func (s Solution) Vector() []float64 { return []float64{s.GDP, s.Wage, s.Firms} }

// Solve computes the exact single-city equilibrium for a city with the
// given population and demand elasticity theta, under parameters p (F,
// Beta and Phi are used; Tau is irrelevant at zero distance). population
// and theta are passed separately so callers can pick one city out of a
// larger dataset without reslicing p.Theta.
func Solve(population, theta float64, p model.Params) (Solution, error) {
	q := p
	q.Theta = []float64{theta}
	if err := q.Validate(1); err != nil {
		return Solution{}, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	if math.IsNaN(population) || math.IsInf(population, 0) || population <= 0 {
		return Solution{}, fmt.Errorf("%w: population %v, want a positive finite number", ErrDomain, population)
	}

	// k folds the markup into the demand shifter; see package docs for
	// the derivation record.
	k := math.Pow((theta-1)*p.Phi/theta, theta)
	supply := p.Beta * population

	wage := math.Pow(p.Phi*p.F*(theta-1)/(k*supply), 1/(1-theta))
	gdp := supply * wage
	firms := supply / (theta * p.F)

	return Solution{GDP: gdp, Wage: wage, Firms: firms}, nil
}
