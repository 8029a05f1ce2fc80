package symexpr

import "fmt"

// Scope is an ordered registry of symbolic variables. Each variable owns a
// dense index into the evaluation environment: an env []float64 of length
// Scope.Len() supplies one value per registered variable, in registration
// order.
//
// A Scope is not safe for concurrent registration; build a system under a
// single goroutine, then share the resulting compiled programs freely.
type Scope struct {
	names []string
	index map[string]int
}

// NewScope returns an empty variable registry.
func NewScope() *Scope {
	return &Scope{index: make(map[string]int)}
}

// Var registers name and returns its variable. Registering an existing
// name returns the same environment slot, so repeated lookups are cheap
// and alias-free.
func (s *Scope) Var(name string) *Var {
	if i, ok := s.index[name]; ok {
		return &Var{name: name, idx: i, scope: s}
	}
	i := len(s.names)
	s.names = append(s.names, name)
	s.index[name] = i

	return &Var{name: name, idx: i, scope: s}
}

// Vec registers n variables "name[0]" … "name[n-1]" and returns them in
// index order. The slots are contiguous in the environment.
func (s *Scope) Vec(name string, n int) []*Var {
	vs := make([]*Var, n)
	for i := 0; i < n; i++ {
		vs[i] = s.Var(fmt.Sprintf("%s[%d]", name, i))
	}

	return vs
}

// Grid registers an n×n block of variables "name[i,j]" in row-major order.
func (s *Scope) Grid(name string, n int) [][]*Var {
	g := make([][]*Var, n)
	for i := 0; i < n; i++ {
		g[i] = make([]*Var, n)
		for j := 0; j < n; j++ {
			g[i][j] = s.Var(fmt.Sprintf("%s[%d,%d]", name, i, j))
		}
	}

	return g
}

// Len returns the number of registered variables, i.e. the required
// environment length.
func (s *Scope) Len() int { return len(s.names) }
