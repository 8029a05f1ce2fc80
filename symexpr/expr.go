package symexpr

import (
	"fmt"
	"math"
	"strings"
)

// Expr is an immutable symbolic expression. All constructors normalize
// their result (flatten nested sums/products, fold constants, eliminate
// additive zeros and multiplicative ones), so structurally trivial
// subexpressions never survive construction.
type Expr interface {
	// Diff returns the exact derivative of the expression with respect
	// to v. The result is itself normalized.
	Diff(v *Var) Expr

	// Eval computes the expression's value under env, where env[i] holds
	// the value of the i-th variable of the owning Scope. Tree-walk
	// evaluation; use a compiled Program for hot paths.
	Eval(env []float64) float64

	// String renders the expression for diagnostics.
	String() string
}

// ---------- constants ----------

type num struct{ val float64 }

// Const returns the constant expression v.
func Const(v float64) Expr { return num{val: v} }

func (n num) Diff(*Var) Expr         { return num{val: 0} }
func (n num) Eval([]float64) float64 { return n.val }
func (n num) String() string         { return fmt.Sprintf("%g", n.val) }

// ---------- variables ----------

// Var is a scoped symbolic variable. Obtain one via Scope.Var, Scope.Vec
// or Scope.Grid; the zero value is not usable.
type Var struct {
	name  string
	idx   int
	scope *Scope
}

// Name returns the variable's registered name.
func (v *Var) Name() string { return v.name }

// Index returns the variable's slot in the evaluation environment.
func (v *Var) Index() int { return v.idx }

func (v *Var) Diff(w *Var) Expr {
	if w != nil && v.scope == w.scope && v.idx == w.idx {
		return num{val: 1}
	}

	return num{val: 0}
}

func (v *Var) Eval(env []float64) float64 { return env[v.idx] }
func (v *Var) String() string             { return v.name }

// ---------- sums ----------

type add struct{ terms []Expr }

// Add returns the normalized sum of terms. Nested sums are flattened,
// constants folded, and zeros dropped; an empty sum is Const(0).
func Add(terms ...Expr) Expr {
	flat := make([]Expr, 0, len(terms))
	c := 0.0
	for _, t := range terms {
		switch e := t.(type) {
		case num:
			c += e.val
		case add:
			for _, inner := range e.terms {
				if n, ok := inner.(num); ok {
					c += n.val
				} else {
					flat = append(flat, inner)
				}
			}
		default:
			flat = append(flat, t)
		}
	}
	if c != 0 {
		flat = append(flat, num{val: c})
	}
	switch len(flat) {
	case 0:
		return num{val: 0}
	case 1:
		return flat[0]
	}

	return add{terms: flat}
}

// Sub returns a - b.
func Sub(a, b Expr) Expr { return Add(a, Neg(b)) }

// Neg returns -a.
func Neg(a Expr) Expr { return Mul(num{val: -1}, a) }

func (a add) Diff(v *Var) Expr {
	ds := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		ds[i] = t.Diff(v)
	}

	return Add(ds...)
}

func (a add) Eval(env []float64) float64 {
	s := 0.0
	for _, t := range a.terms {
		s += t.Eval(env)
	}

	return s
}

func (a add) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}

	return "(" + strings.Join(parts, " + ") + ")"
}

// ---------- products ----------

type mul struct{ factors []Expr }

// Mul returns the normalized product of factors. Nested products are
// flattened, constants folded, ones dropped; a zero factor collapses the
// whole product to Const(0); an empty product is Const(1).
func Mul(factors ...Expr) Expr {
	flat := make([]Expr, 0, len(factors))
	c := 1.0
	for _, f := range factors {
		switch e := f.(type) {
		case num:
			c *= e.val
		case mul:
			for _, inner := range e.factors {
				if n, ok := inner.(num); ok {
					c *= n.val
				} else {
					flat = append(flat, inner)
				}
			}
		default:
			flat = append(flat, f)
		}
	}
	if c == 0 {
		return num{val: 0}
	}
	if c != 1 {
		// Constant factor leads for readable String output.
		flat = append([]Expr{num{val: c}}, flat...)
	}
	switch len(flat) {
	case 0:
		return num{val: 1}
	case 1:
		return flat[0]
	}

	return mul{factors: flat}
}

// Div returns a / b, expressed as a * b^(-1).
func Div(a, b Expr) Expr { return Mul(a, Pow(b, num{val: -1})) }

func (m mul) Diff(v *Var) Expr {
	// Product rule: sum over factors of the product with one factor
	// replaced by its derivative.
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		fs := make([]Expr, len(m.factors))
		copy(fs, m.factors)
		fs[i] = m.factors[i].Diff(v)
		terms = append(terms, Mul(fs...))
	}

	return Add(terms...)
}

func (m mul) Eval(env []float64) float64 {
	p := 1.0
	for _, f := range m.factors {
		p *= f.Eval(env)
	}

	return p
}

func (m mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		parts[i] = f.String()
	}

	return "(" + strings.Join(parts, " * ") + ")"
}

// ---------- powers ----------

type pow struct{ base, exp Expr }

// Pow returns base^exp, normalized: x^0 → 1, x^1 → x, constant folding,
// and (u^a)^b → u^(a·b). The merge rewrite assumes a positive base,
// which holds for every quantity in the equilibrium domain.
func Pow(base, exp Expr) Expr {
	if e, ok := exp.(num); ok {
		if e.val == 0 {
			return num{val: 1}
		}
		if e.val == 1 {
			return base
		}
		if b, ok := base.(num); ok {
			return num{val: math.Pow(b.val, e.val)}
		}
	}
	if b, ok := base.(num); ok && b.val == 1 {
		return num{val: 1}
	}
	if p, ok := base.(pow); ok {
		return Pow(p.base, Mul(p.exp, exp))
	}

	return pow{base: base, exp: exp}
}

func (p pow) Diff(v *Var) Expr {
	du := p.base.Diff(v)
	if c, ok := p.exp.(num); ok {
		// d(u^c) = c·u^(c-1)·u'
		return Mul(num{val: c.val}, Pow(p.base, num{val: c.val - 1}), du)
	}
	// General rule: d(u^v) = u^v · (v'·ln u + v·u'/u).
	dv := p.exp.Diff(v)

	return Mul(
		pow{base: p.base, exp: p.exp},
		Add(
			Mul(dv, Log(p.base)),
			Mul(p.exp, du, Pow(p.base, num{val: -1})),
		),
	)
}

func (p pow) Eval(env []float64) float64 {
	return math.Pow(p.base.Eval(env), p.exp.Eval(env))
}

func (p pow) String() string {
	return "(" + p.base.String() + "^" + p.exp.String() + ")"
}

// ---------- logarithms and exponentials ----------

type logE struct{ arg Expr }

// Log returns the natural logarithm of arg, folding constants and
// collapsing Log(Exp(u)) → u.
func Log(arg Expr) Expr {
	if n, ok := arg.(num); ok {
		return num{val: math.Log(n.val)}
	}
	if e, ok := arg.(expE); ok {
		return e.arg
	}

	return logE{arg: arg}
}

func (l logE) Diff(v *Var) Expr {
	return Mul(l.arg.Diff(v), Pow(l.arg, num{val: -1}))
}

func (l logE) Eval(env []float64) float64 { return math.Log(l.arg.Eval(env)) }
func (l logE) String() string             { return "log(" + l.arg.String() + ")" }

type expE struct{ arg Expr }

// Exp returns e^arg, folding constants and collapsing Exp(Log(u)) → u.
func Exp(arg Expr) Expr {
	if n, ok := arg.(num); ok {
		return num{val: math.Exp(n.val)}
	}
	if l, ok := arg.(logE); ok {
		return l.arg
	}

	return expE{arg: arg}
}

func (e expE) Diff(v *Var) Expr {
	return Mul(expE{arg: e.arg}, e.arg.Diff(v))
}

func (e expE) Eval(env []float64) float64 { return math.Exp(e.arg.Eval(env)) }
func (e expE) String() string             { return "exp(" + e.arg.String() + ")" }
