package equations

import (
	"fmt"

	"github.com/isleq/isleq/symexpr"
)

// Layout records where each data and variable block lives in the
// evaluation environment of a compiled system. Blocks are contiguous:
// P, Y, W, M, Pop and Theta hold N slots each, Dist holds N×N slots in
// row-major order, and F/Beta/Phi/Tau are single scalar slots.
type Layout struct {
	N int

	P     int // price levels, city 0 included (bind 1.0 there)
	Y     int // nominal GDP
	W     int // nominal wages
	M     int // firm counts
	Pop   int // population
	Theta int // demand elasticity per destination city

	F    int // fixed cost
	Beta int // labor-supply scaling
	Phi  int // productivity
	Tau  int // trade-cost exponent

	Dist int // physical distance matrix, row-major N×N

	Size int // total environment length
}

// System is the symbolic equilibrium system for N cities: residual
// expressions paired positionally with unknown variables, plus the full
// (undropped) goods-market block for Walras'-Law verification.
type System struct {
	N int

	// Scope owns every symbol below; compiled programs bind to it.
	Scope *symexpr.Scope

	// Residuals holds the 4N−1 equations in contract order.
	Residuals []symexpr.Expr

	// Unknowns holds the 4N−1 endogenous variables in contract order.
	Unknowns []*symexpr.Var

	// GoodsMarket holds all N goods-market-clearing expressions,
	// including city 0's dropped equation. Summed over cities the block
	// is identically zero (Walras' Law).
	GoodsMarket []symexpr.Expr

	// Layout maps blocks to environment offsets.
	Layout Layout
}

// Build constructs the symbolic system for n cities. It is a pure
// function of n: no numbers are substituted and no state is shared
// between calls. n < 1 returns ErrCityCount.
func Build(n int) (*System, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrCityCount, n)
	}

	s := symexpr.NewScope()
	b := &builder{
		n:     n,
		price: s.Vec("P", n),
		gdp:   s.Vec("Y", n),
		wage:  s.Vec("W", n),
		firms: s.Vec("M", n),
		pop:   s.Vec("pop", n),
		theta: s.Vec("theta", n),
		f:     s.Var("f"),
		beta:  s.Var("beta"),
		phi:   s.Var("phi"),
		tau:   s.Var("tau"),
		dist:  s.Grid("d", n),
	}

	lay := Layout{
		N:     n,
		P:     b.price[0].Index(),
		Y:     b.gdp[0].Index(),
		W:     b.wage[0].Index(),
		M:     b.firms[0].Index(),
		Pop:   b.pop[0].Index(),
		Theta: b.theta[0].Index(),
		F:     b.f.Index(),
		Beta:  b.beta.Index(),
		Phi:   b.phi.Index(),
		Tau:   b.tau.Index(),
		Dist:  b.dist[0][0].Index(),
		Size:  s.Len(),
	}

	// Unknowns: P[1..n−1], then Y, W, M for every city.
	unknowns := make([]*symexpr.Var, 0, 4*n-1)
	unknowns = append(unknowns, b.price[1:]...)
	unknowns = append(unknowns, b.gdp...)
	unknowns = append(unknowns, b.wage...)
	unknowns = append(unknowns, b.firms...)

	// Residuals mirror the unknown blocks; city 0's goods-market
	// equation is dropped by the numeraire normalization.
	residuals := make([]symexpr.Expr, 0, 4*n-1)
	goods := make([]symexpr.Expr, n)
	for h := 0; h < n; h++ {
		goods[h] = b.goodsMarketClearing(h)
	}
	residuals = append(residuals, goods[1:]...)
	for h := 0; h < n; h++ {
		residuals = append(residuals, b.totalProfit(h))
	}
	for h := 0; h < n; h++ {
		residuals = append(residuals, b.laborMarketClearing(h))
	}
	for h := 0; h < n; h++ {
		residuals = append(residuals, b.resourceConstraint(h))
	}

	return &System{
		N:           n,
		Scope:       s,
		Residuals:   residuals,
		Unknowns:    unknowns,
		GoodsMarket: goods,
		Layout:      lay,
	}, nil
}

// builder carries the scoped symbols while the equation blocks are
// assembled. Indices h, j range over cities; h produces, j consumes.
type builder struct {
	n int

	price, gdp, wage, firms, pop, theta []*symexpr.Var
	f, beta, phi, tau                   *symexpr.Var
	dist                                [][]*symexpr.Var
}

// economicDistance is the trade-cost transform exp(d(h,j))^tau.
func (b *builder) economicDistance(h, j int) symexpr.Expr {
	return symexpr.Pow(symexpr.Exp(b.dist[h][j]), b.tau)
}

// laborProductivity of city h when producing for destination j.
func (b *builder) laborProductivity(h, j int) symexpr.Expr {
	return symexpr.Div(b.phi, b.economicDistance(h, j))
}

// marginalCost of production in city h for destination j.
func (b *builder) marginalCost(h, j int) symexpr.Expr {
	return symexpr.Div(b.wage[h], b.laborProductivity(h, j))
}

// markup over marginal cost for goods sold into city j: θ/(θ−1).
func (b *builder) markup(j int) symexpr.Expr {
	return symexpr.Div(b.theta[j], symexpr.Sub(b.theta[j], symexpr.Const(1)))
}

// optimalPrice set by a city-h firm selling into city j.
func (b *builder) optimalPrice(h, j int) symexpr.Expr {
	return symexpr.Mul(b.markup(j), b.marginalCost(h, j))
}

// realGDP of city j.
func (b *builder) realGDP(j int) symexpr.Expr {
	return symexpr.Div(b.gdp[j], b.price[j])
}

// quantityDemanded in city j at the given price: CES demand
// (p/P_j)^(−θ_j) · Y_j/P_j.
func (b *builder) quantityDemanded(price symexpr.Expr, j int) symexpr.Expr {
	rel := symexpr.Div(price, b.price[j])

	return symexpr.Mul(symexpr.Pow(rel, symexpr.Neg(b.theta[j])), b.realGDP(j))
}

func revenue(price, quantity symexpr.Expr) symexpr.Expr {
	return symexpr.Mul(price, quantity)
}

// totalExports of city h: firm count times revenue summed over every
// destination, own market included.
func (b *builder) totalExports(h int) symexpr.Expr {
	terms := make([]symexpr.Expr, b.n)
	for j := 0; j < b.n; j++ {
		p := b.optimalPrice(h, j)
		terms[j] = revenue(p, b.quantityDemanded(p, j))
	}

	return symexpr.Mul(b.firms[h], symexpr.Add(terms...))
}

// totalImports into city h, summed over every origin's firms.
func (b *builder) totalImports(h int) symexpr.Expr {
	terms := make([]symexpr.Expr, b.n)
	for j := 0; j < b.n; j++ {
		p := b.optimalPrice(j, h)
		terms[j] = symexpr.Mul(b.firms[j], revenue(p, b.quantityDemanded(p, h)))
	}

	return symexpr.Add(terms...)
}

// goodsMarketClearing: exports must balance imports for city h.
func (b *builder) goodsMarketClearing(h int) symexpr.Expr {
	return symexpr.Sub(b.totalExports(h), b.totalImports(h))
}

// totalRevenue of a single city-h firm across all destinations.
func (b *builder) totalRevenue(h int) symexpr.Expr {
	terms := make([]symexpr.Expr, b.n)
	for j := 0; j < b.n; j++ {
		p := b.optimalPrice(h, j)
		terms[j] = revenue(p, b.quantityDemanded(p, j))
	}

	return symexpr.Add(terms...)
}

// variableLaborDemand to produce quantity for destination j in city h.
func (b *builder) variableLaborDemand(quantity symexpr.Expr, h, j int) symexpr.Expr {
	return symexpr.Div(quantity, b.laborProductivity(h, j))
}

// totalVariableCost of a single city-h firm.
func (b *builder) totalVariableCost(h int) symexpr.Expr {
	terms := make([]symexpr.Expr, b.n)
	for j := 0; j < b.n; j++ {
		p := b.optimalPrice(h, j)
		q := b.quantityDemanded(p, j)
		terms[j] = symexpr.Mul(b.variableLaborDemand(q, h, j), b.wage[h])
	}

	return symexpr.Add(terms...)
}

// totalProfit of a city-h firm: revenue net of variable and fixed cost.
func (b *builder) totalProfit(h int) symexpr.Expr {
	fixed := symexpr.Mul(b.f, b.wage[h])

	return symexpr.Sub(b.totalRevenue(h), symexpr.Add(b.totalVariableCost(h), fixed))
}

// effectiveLaborSupply of city h: β·pop_h.
func (b *builder) effectiveLaborSupply(h int) symexpr.Expr {
	return symexpr.Mul(b.beta, b.pop[h])
}

// laborMarketClearing: effective supply minus total (variable + fixed)
// labor demand of city h's firms.
func (b *builder) laborMarketClearing(h int) symexpr.Expr {
	terms := make([]symexpr.Expr, b.n)
	for j := 0; j < b.n; j++ {
		p := b.optimalPrice(h, j)
		terms[j] = b.variableLaborDemand(b.quantityDemanded(p, j), h, j)
	}
	variable := symexpr.Mul(b.firms[h], symexpr.Add(terms...))
	fixed := symexpr.Mul(b.firms[h], b.f)

	return symexpr.Sub(b.effectiveLaborSupply(h), symexpr.Add(variable, fixed))
}

// resourceConstraint: nominal GDP equals nominal labor income.
func (b *builder) resourceConstraint(h int) symexpr.Expr {
	return symexpr.Sub(b.gdp[h], symexpr.Mul(b.effectiveLaborSupply(h), b.wage[h]))
}
