package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/isleq/isleq/equations"
)

// Model binds economic data to the compiled equilibrium system for its
// current city count. The distance matrix and population vector are
// copied on construction and back every prefix N' ≤ their size, so the
// city count may grow and shrink over the model's lifetime without
// reloading data.
type Model struct {
	n          int
	params     Params
	distances  [][]float64 // full backing matrix, row-major rows
	population []float64   // full backing vector
}

// New validates and assembles a model for n cities. distances must be at
// least n×n with finite nonnegative entries and a zero diagonal;
// population must hold at least n finite nonnegative entries; params must
// satisfy Params.Validate. The data slices are deep-copied.
func New(n int, params Params, distances [][]float64, population []float64) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCityCount, n)
	}
	if err := params.Validate(n); err != nil {
		return nil, err
	}
	if err := validateData(n, distances, population); err != nil {
		return nil, err
	}

	d := make([][]float64, len(distances))
	for i, row := range distances {
		d[i] = append([]float64(nil), row...)
	}

	return &Model{
		n:          n,
		params:     params.clone(),
		distances:  d,
		population: append([]float64(nil), population...),
	}, nil
}

func validateData(n int, distances [][]float64, population []float64) error {
	if len(distances) < n {
		return fmt.Errorf("%w: distance matrix has %d rows, want at least %d", ErrInvalidData, len(distances), n)
	}
	for i := 0; i < len(distances); i++ {
		if len(distances[i]) != len(distances) {
			return fmt.Errorf("%w: distance row %d has %d entries, want %d", ErrInvalidData, i, len(distances[i]), len(distances))
		}
		for j, v := range distances[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: distance[%d][%d]=%v", ErrInvalidData, i, j, v)
			}
		}
		if distances[i][i] != 0 {
			return fmt.Errorf("%w: distance[%d][%d]=%v, diagonal must be zero", ErrInvalidData, i, i, distances[i][i])
		}
	}
	if len(population) < n {
		return fmt.Errorf("%w: population has %d entries, want at least %d", ErrInvalidData, len(population), n)
	}
	for i, v := range population {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: population[%d]=%v", ErrInvalidData, i, v)
		}
	}

	return nil
}

// N returns the current city count.
func (m *Model) N() int { return m.n }

// Size returns the unknown-vector length 4N−1.
func (m *Model) Size() int { return 4*m.n - 1 }

// Params returns a copy of the current parameter set.
func (m *Model) Params() Params { return m.params.clone() }

// Population returns a copy of the length-N population prefix.
func (m *Model) Population() []float64 {
	return append([]float64(nil), m.population[:m.n]...)
}

// Theta returns the length-N elasticity vector with broadcast applied.
func (m *Model) Theta() []float64 { return m.params.thetaFor(m.n) }

// SetN switches the model to n cities. Validation happens here, at the
// point of mutation: n must be a positive integer backed by the dataset
// and covered by the current Theta vector. Compiled artifacts for the
// new size are fetched (or built) lazily on next access.
func (m *Model) SetN(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCityCount, n)
	}
	if n > len(m.population) || n > len(m.distances) {
		return fmt.Errorf("%w: %d exceeds dataset of %d cities", ErrInvalidCityCount, n, min2(len(m.population), len(m.distances)))
	}
	if err := m.params.Validate(n); err != nil {
		return err
	}
	m.n = n

	return nil
}

// SetParams replaces the parameter set, validating against the current
// city count before any state changes.
func (m *Model) SetParams(p Params) error {
	if err := p.Validate(m.n); err != nil {
		return err
	}
	m.params = p.clone()

	return nil
}

// WithN returns a derived model over the same backing dataset with city
// count n, leaving the receiver untouched. The continuation guess uses
// this to solve growing prefixes without mutating the caller's model.
func (m *Model) WithN(n int) (*Model, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCityCount, n)
	}
	if n > len(m.population) || n > len(m.distances) {
		return nil, fmt.Errorf("%w: %d exceeds dataset of %d cities", ErrInvalidCityCount, n, min2(len(m.population), len(m.distances)))
	}
	if err := m.params.Validate(n); err != nil {
		return nil, err
	}

	return &Model{
		n:          n,
		params:     m.params,
		distances:  m.distances,
		population: m.population,
	}, nil
}

// EconomicDistance returns exp(d(h,j))^tau over the N-prefix, recomputed
// from current state on every access.
func (m *Model) EconomicDistance() [][]float64 {
	out := make([][]float64, m.n)
	for i := 0; i < m.n; i++ {
		out[i] = make([]float64, m.n)
		for j := 0; j < m.n; j++ {
			out[i][j] = math.Pow(math.Exp(m.distances[i][j]), m.params.Tau)
		}
	}

	return out
}

// EffectiveLaborSupply returns beta·population over the N-prefix,
// recomputed from current state on every access.
func (m *Model) EffectiveLaborSupply() []float64 {
	out := make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		out[i] = m.params.Beta * m.population[i]
	}

	return out
}

// System evaluates the equilibrium residual vector at x, the flat
// unknown vector P[1..N−1],Y,W,M. City 0's price level is bound to 1.0.
func (m *Model) System(x []float64) ([]float64, error) {
	art, err := compiledFor(m.n)
	if err != nil {
		return nil, err
	}
	env, err := m.bind(art.sys.Layout, x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, m.Size())
	if err := art.prog.Eval(env, out); err != nil {
		return nil, err
	}

	return out, nil
}

// Jacobian evaluates the exact analytic Jacobian of the residual vector
// with respect to the unknown ordering at x.
func (m *Model) Jacobian(x []float64) (*mat.Dense, error) {
	art, err := compiledFor(m.n)
	if err != nil {
		return nil, err
	}
	env, err := m.bind(art.sys.Layout, x)
	if err != nil {
		return nil, err
	}
	dst := mat.NewDense(m.Size(), m.Size(), nil)
	if err := art.jac.Eval(env, dst); err != nil {
		return nil, err
	}

	return dst, nil
}

// GoodsMarketExcess evaluates the full undropped goods-market block
// (all N equations, city 0 included) at x. Summed over cities the
// result is identically zero — Walras' Law — which property tests
// verify against the symbolic construction.
func (m *Model) GoodsMarketExcess(x []float64) ([]float64, error) {
	art, err := compiledFor(m.n)
	if err != nil {
		return nil, err
	}
	env, err := m.bind(art.sys.Layout, x)
	if err != nil {
		return nil, err
	}
	out := make([]float64, m.n)
	for h, g := range art.sys.GoodsMarket {
		out[h] = g.Eval(env)
	}

	return out, nil
}

// bind assembles the evaluation environment: unknown blocks from x with
// the numeraire price prepended, then population, elasticities, scalar
// parameters and the distance prefix.
func (m *Model) bind(lay equations.Layout, x []float64) ([]float64, error) {
	n := m.n
	if len(x) != 4*n-1 {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(x), 4*n-1)
	}
	env := make([]float64, lay.Size)
	env[lay.P] = 1.0
	copy(env[lay.P+1:lay.P+n], x[:n-1])
	copy(env[lay.Y:lay.Y+n], x[n-1:2*n-1])
	copy(env[lay.W:lay.W+n], x[2*n-1:3*n-1])
	copy(env[lay.M:lay.M+n], x[3*n-1:])
	copy(env[lay.Pop:lay.Pop+n], m.population[:n])
	copy(env[lay.Theta:lay.Theta+n], m.params.thetaFor(n))
	env[lay.F] = m.params.F
	env[lay.Beta] = m.params.Beta
	env[lay.Phi] = m.params.Phi
	env[lay.Tau] = m.params.Tau
	for i := 0; i < n; i++ {
		copy(env[lay.Dist+i*n:lay.Dist+(i+1)*n], m.distances[i][:n])
	}

	return env, nil
}

// Blocks is a solution vector split into its economic components.
type Blocks struct {
	Prices []float64 // length N, Prices[0] == 1.0 (numeraire)
	GDP    []float64 // length N
	Wages  []float64 // length N
	Firms  []float64 // length N
}

// Split slices a flat solution vector into named blocks, prepending the
// numeraire price level for city 0.
func (m *Model) Split(x []float64) (Blocks, error) {
	n := m.n
	if len(x) != 4*n-1 {
		return Blocks{}, fmt.Errorf("%w: got %d, want %d", ErrDimension, len(x), 4*n-1)
	}
	prices := make([]float64, n)
	prices[0] = 1.0
	copy(prices[1:], x[:n-1])

	return Blocks{
		Prices: prices,
		GDP:    append([]float64(nil), x[n-1:2*n-1]...),
		Wages:  append([]float64(nil), x[2*n-1:3*n-1]...),
		Firms:  append([]float64(nil), x[3*n-1:]...),
	}, nil
}

func min2(a, b int) int {
	if a < b {
		return a
	}

	return b
}
