package symexpr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// opcode identifies one stack-machine instruction of a compiled tape.
type opcode uint8

const (
	opConst opcode = iota // push val
	opLoad                // push env[n]
	opAdd                 // pop n values, push their sum
	opMul                 // pop n values, push their product
	opPow                 // pop exponent then base, push base^exponent
	opLog                 // pop x, push log(x)
	opExp                 // pop x, push exp(x)
)

type instr struct {
	op  opcode
	n   int
	val float64
}

// Program is a compiled list of expressions sharing one Scope. Each
// expression becomes a postfix instruction tape evaluated on a value
// stack, avoiding interface dispatch on hot paths. A Program is immutable
// after Compile and safe for concurrent use.
type Program struct {
	tapes    [][]instr
	envLen   int
	stackMax int
}

// Compile flattens exprs into a Program bound to scope. Every variable
// appearing in exprs must belong to scope; nil expressions and foreign
// variables yield an ErrCompile-wrapped error.
func Compile(exprs []Expr, scope *Scope) (*Program, error) {
	p := &Program{
		tapes:  make([][]instr, len(exprs)),
		envLen: scope.Len(),
	}
	for i, e := range exprs {
		tape, depth, err := flatten(e, scope)
		if err != nil {
			return nil, fmt.Errorf("%w: expression %d: %v", ErrCompile, i, err)
		}
		p.tapes[i] = tape
		if depth > p.stackMax {
			p.stackMax = depth
		}
	}

	return p, nil
}

// Len returns the number of compiled expressions (output slots).
func (p *Program) Len() int { return len(p.tapes) }

// EnvLen returns the required evaluation-environment length.
func (p *Program) EnvLen() int { return p.envLen }

// Eval runs every tape under env and stores the i-th expression's value
// in dst[i]. len(env) must equal EnvLen and len(dst) must equal Len;
// otherwise ErrDimension is returned. Eval allocates only its private
// value stack and never mutates shared state.
func (p *Program) Eval(env, dst []float64) error {
	if len(env) != p.envLen {
		return fmt.Errorf("%w: env has length %d, want %d", ErrDimension, len(env), p.envLen)
	}
	if len(dst) != len(p.tapes) {
		return fmt.Errorf("%w: dst has length %d, want %d", ErrDimension, len(dst), len(p.tapes))
	}
	stack := make([]float64, p.stackMax)
	for i, tape := range p.tapes {
		dst[i] = run(tape, env, stack)
	}

	return nil
}

// run executes a single tape on the supplied scratch stack.
func run(tape []instr, env, stack []float64) float64 {
	sp := 0
	for _, in := range tape {
		switch in.op {
		case opConst:
			stack[sp] = in.val
			sp++
		case opLoad:
			stack[sp] = env[in.n]
			sp++
		case opAdd:
			s := 0.0
			for k := sp - in.n; k < sp; k++ {
				s += stack[k]
			}
			sp -= in.n
			stack[sp] = s
			sp++
		case opMul:
			pr := 1.0
			for k := sp - in.n; k < sp; k++ {
				pr *= stack[k]
			}
			sp -= in.n
			stack[sp] = pr
			sp++
		case opPow:
			sp--
			e := stack[sp]
			stack[sp-1] = math.Pow(stack[sp-1], e)
		case opLog:
			stack[sp-1] = math.Log(stack[sp-1])
		case opExp:
			stack[sp-1] = math.Exp(stack[sp-1])
		}
	}

	return stack[sp-1]
}

// flatten emits the postfix tape for e and reports the stack depth it
// needs. Depth accounting: a node's operands occupy consecutive slots, so
// the requirement of operand i is i plus operand i's own requirement.
func flatten(e Expr, scope *Scope) ([]instr, int, error) {
	if e == nil {
		return nil, 0, fmt.Errorf("nil expression")
	}
	switch n := e.(type) {
	case num:
		return []instr{{op: opConst, val: n.val}}, 1, nil
	case *Var:
		if n.scope != scope {
			return nil, 0, fmt.Errorf("variable %q belongs to a different scope", n.name)
		}

		return []instr{{op: opLoad, n: n.idx}}, 1, nil
	case add:
		return flattenNary(n.terms, opAdd, scope)
	case mul:
		return flattenNary(n.factors, opMul, scope)
	case pow:
		bt, bd, err := flatten(n.base, scope)
		if err != nil {
			return nil, 0, err
		}
		et, ed, err := flatten(n.exp, scope)
		if err != nil {
			return nil, 0, err
		}
		tape := append(bt, et...)
		tape = append(tape, instr{op: opPow})

		return tape, max2(bd, 1+ed), nil
	case logE:
		return flattenUnary(n.arg, opLog, scope)
	case expE:
		return flattenUnary(n.arg, opExp, scope)
	default:
		return nil, 0, fmt.Errorf("unsupported expression node %T", e)
	}
}

func flattenNary(operands []Expr, op opcode, scope *Scope) ([]instr, int, error) {
	var tape []instr
	depth := 0
	for i, operand := range operands {
		t, d, err := flatten(operand, scope)
		if err != nil {
			return nil, 0, err
		}
		tape = append(tape, t...)
		depth = max2(depth, i+d)
	}
	tape = append(tape, instr{op: op, n: len(operands)})

	return tape, max2(depth, 1), nil
}

func flattenUnary(arg Expr, op opcode, scope *Scope) ([]instr, int, error) {
	t, d, err := flatten(arg, scope)
	if err != nil {
		return nil, 0, err
	}

	return append(t, instr{op: op}), d, nil
}

func max2(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// JacobianProgram is the compiled exact Jacobian of an expression list
// with respect to an ordered variable list: entry (i,j) is ∂exprs[i]/∂wrt[j],
// differentiated symbolically once and evaluated numerically thereafter.
type JacobianProgram struct {
	prog       *Program
	rows, cols int
}

// CompileJacobian differentiates each expression with respect to each
// variable of wrt and compiles the rows×cols entries row-major. The
// symbolic differentiation is the expensive step (O(rows·cols) derivative
// trees); cache the result per system size.
func CompileJacobian(exprs []Expr, wrt []*Var, scope *Scope) (*JacobianProgram, error) {
	entries := make([]Expr, 0, len(exprs)*len(wrt))
	for i, e := range exprs {
		if e == nil {
			return nil, fmt.Errorf("%w: expression %d is nil", ErrCompile, i)
		}
		for _, v := range wrt {
			entries = append(entries, e.Diff(v))
		}
	}
	prog, err := Compile(entries, scope)
	if err != nil {
		return nil, err
	}

	return &JacobianProgram{prog: prog, rows: len(exprs), cols: len(wrt)}, nil
}

// Dims returns the Jacobian's row and column counts.
func (jp *JacobianProgram) Dims() (rows, cols int) { return jp.rows, jp.cols }

// Eval fills dst with the Jacobian evaluated under env. dst must be a
// rows×cols dense matrix; mismatches return ErrDimension.
func (jp *JacobianProgram) Eval(env []float64, dst *mat.Dense) error {
	if dst == nil {
		return fmt.Errorf("%w: nil destination matrix", ErrDimension)
	}
	r, c := dst.Dims()
	if r != jp.rows || c != jp.cols {
		return fmt.Errorf("%w: dst is %d×%d, want %d×%d", ErrDimension, r, c, jp.rows, jp.cols)
	}
	if len(env) != jp.prog.envLen {
		return fmt.Errorf("%w: env has length %d, want %d", ErrDimension, len(env), jp.prog.envLen)
	}
	stack := make([]float64, jp.prog.stackMax)
	for i := 0; i < jp.rows; i++ {
		for j := 0; j < jp.cols; j++ {
			dst.Set(i, j, run(jp.prog.tapes[i*jp.cols+j], env, stack))
		}
	}

	return nil
}
