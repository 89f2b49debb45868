package exec

import (
	"github.com/loopkit/loopc/internal/ir"
)

// Env is the mutable binding environment of one invocation.
type Env map[string]Value

// runStmts executes a statement sequence in order.
func (e *Engine) runStmts(stmts []Stmt, env Env, program string) error {
	for _, s := range stmts {
		if err := e.runStmt(s, env, program); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) runStmt(s Stmt, env Env, program string) error {
	switch v := s.(type) {
	case EvalStmt:
		_, err := e.eval(v.Expr, env, program)
		return err

	case LoopStmt:
		init, err := e.eval(v.Lower, env, program)
		if err != nil {
			return err
		}
		env[v.Var] = init
		for {
			cont, err := e.loopCond(v, env, program)
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
			if err := e.runStmts(v.Body, env, program); err != nil {
				return err
			}
			if _, err := e.eval(v.Step, env, program); err != nil {
				return err
			}
		}

	default:
		return runtimeErrf(ErrCodeUnknownOp, program, "unknown statement form %T", s)
	}
}

// loopCond tests var <= upper. The upper bound is re-evaluated every
// iteration.
func (e *Engine) loopCond(l LoopStmt, env Env, program string) (bool, error) {
	cur, ok := env[l.Var]
	if !ok {
		return false, runtimeErrf(ErrCodeUnboundIdent, program, "loop variable %q unbound", l.Var)
	}
	curInt, ok := cur.(Int)
	if !ok {
		return false, runtimeErrf(ErrCodeTypeMismatch, program, "loop variable %q is not an integer", l.Var)
	}
	upper, err := e.eval(l.Upper, env, program)
	if err != nil {
		return false, err
	}
	upperInt, ok := upper.(Int)
	if !ok {
		return false, runtimeErrf(ErrCodeTypeMismatch, program, "upper bound of %q is not an integer", l.Var)
	}
	return curInt <= upperInt, nil
}

// eval evaluates an expression in an environment. Assignments evaluate
// to their assigned value after storing it.
func (e *Engine) eval(expr ir.Expr, env Env, program string) (Value, error) {
	switch v := expr.(type) {
	case ir.Ident:
		val, ok := env[v.Name]
		if !ok {
			return nil, runtimeErrf(ErrCodeUnboundIdent, program, "identifier %q unbound", v.Name)
		}
		return val, nil

	case ir.Lit:
		return Int(v.Val), nil

	case ir.Call:
		e.mu.RLock()
		fn, ok := e.builtins[v.Callee]
		e.mu.RUnlock()
		if !ok {
			return nil, runtimeErrf(ErrCodeUnknownCallee, program, "no builtin %q", v.Callee)
		}
		args := make([]Value, len(v.Args))
		for i, a := range v.Args {
			val, err := e.eval(a, env, program)
			if err != nil {
				return nil, err
			}
			args[i] = val
		}
		result, err := fn(args)
		if err != nil {
			return nil, runtimeErrf(ErrCodeTypeMismatch, program, "call %s: %v", v.Callee, err)
		}
		return result, nil

	case ir.Assign:
		val, err := e.eval(v.Value, env, program)
		if err != nil {
			return nil, err
		}
		if err := e.assignTo(v.Target, val, env, program); err != nil {
			return nil, err
		}
		return val, nil

	case ir.Op:
		return e.evalOp(v, env, program)

	default:
		return nil, runtimeErrf(ErrCodeUnknownOp, program, "unknown expression form %T", expr)
	}
}

// assignTo stores a value through an assignment target: a bare
// identifier binds in the environment; an index form writes into the
// target vector in place.
func (e *Engine) assignTo(target ir.Expr, val Value, env Env, program string) error {
	switch t := target.(type) {
	case ir.Ident:
		env[t.Name] = val
		return nil

	case ir.Op:
		if t.Tag != "index" || len(t.Args) != 2 {
			return runtimeErrf(ErrCodeTypeMismatch, program, "cannot assign through %q form", t.Tag)
		}
		vec, idx, err := e.evalIndexOperands(t, env, program)
		if err != nil {
			return err
		}
		vec[idx] = val
		return nil

	default:
		return runtimeErrf(ErrCodeTypeMismatch, program, "cannot assign to %T", target)
	}
}

func (e *Engine) evalOp(op ir.Op, env Env, program string) (Value, error) {
	switch op.Tag {
	case "index":
		if len(op.Args) != 2 {
			return nil, runtimeErrf(ErrCodeBadIndex, program, "index expects 2 operands, got %d", len(op.Args))
		}
		vec, idx, err := e.evalIndexOperands(op, env, program)
		if err != nil {
			return nil, err
		}
		return vec[idx], nil

	case "neg":
		if len(op.Args) != 1 {
			return nil, runtimeErrf(ErrCodeUnknownOp, program, "neg expects 1 operand, got %d", len(op.Args))
		}
		n, err := e.evalInt(op.Args[0], env, program)
		if err != nil {
			return nil, err
		}
		return Int(-n), nil

	case "not":
		if len(op.Args) != 1 {
			return nil, runtimeErrf(ErrCodeUnknownOp, program, "not expects 1 operand, got %d", len(op.Args))
		}
		b, err := e.evalBool(op.Args[0], env, program)
		if err != nil {
			return nil, err
		}
		return Bool(!b), nil

	case "add", "sub", "mul", "div", "mod":
		left, right, err := e.evalIntPair(op, env, program)
		if err != nil {
			return nil, err
		}
		switch op.Tag {
		case "add":
			return Int(left + right), nil
		case "sub":
			return Int(left - right), nil
		case "mul":
			return Int(left * right), nil
		case "div":
			if right == 0 {
				return nil, runtimeErrf(ErrCodeDivByZero, program, "division by zero")
			}
			return Int(left / right), nil
		default: // mod
			if right == 0 {
				return nil, runtimeErrf(ErrCodeDivByZero, program, "modulo by zero")
			}
			return Int(left % right), nil
		}

	case "le", "lt", "ge", "gt", "eq", "ne":
		left, right, err := e.evalIntPair(op, env, program)
		if err != nil {
			return nil, err
		}
		switch op.Tag {
		case "le":
			return Bool(left <= right), nil
		case "lt":
			return Bool(left < right), nil
		case "ge":
			return Bool(left >= right), nil
		case "gt":
			return Bool(left > right), nil
		case "eq":
			return Bool(left == right), nil
		default: // ne
			return Bool(left != right), nil
		}

	case "and", "or":
		if len(op.Args) != 2 {
			return nil, runtimeErrf(ErrCodeUnknownOp, program, "%s expects 2 operands, got %d", op.Tag, len(op.Args))
		}
		left, err := e.evalBool(op.Args[0], env, program)
		if err != nil {
			return nil, err
		}
		// Short-circuit: the right operand is only evaluated when it
		// can still change the result.
		if op.Tag == "and" && !left {
			return Bool(false), nil
		}
		if op.Tag == "or" && left {
			return Bool(true), nil
		}
		right, err := e.evalBool(op.Args[1], env, program)
		if err != nil {
			return nil, err
		}
		return Bool(right), nil

	default:
		return nil, runtimeErrf(ErrCodeUnknownOp, program, "unknown op tag %q", op.Tag)
	}
}

// evalIndexOperands evaluates an index form's base and subscript.
// Indexing is zero-based.
func (e *Engine) evalIndexOperands(op ir.Op, env Env, program string) (Vec, int, error) {
	base, err := e.eval(op.Args[0], env, program)
	if err != nil {
		return nil, 0, err
	}
	vec, ok := base.(Vec)
	if !ok {
		return nil, 0, runtimeErrf(ErrCodeTypeMismatch, program, "indexing a non-vector %T", base)
	}
	idxVal, err := e.evalInt(op.Args[1], env, program)
	if err != nil {
		return nil, 0, err
	}
	idx := int(idxVal)
	if idx < 0 || idx >= len(vec) {
		return nil, 0, runtimeErrf(ErrCodeBadIndex, program, "index %d out of range [0, %d)", idx, len(vec))
	}
	return vec, idx, nil
}

func (e *Engine) evalIntPair(op ir.Op, env Env, program string) (int64, int64, error) {
	if len(op.Args) != 2 {
		return 0, 0, runtimeErrf(ErrCodeUnknownOp, program, "%s expects 2 operands, got %d", op.Tag, len(op.Args))
	}
	left, err := e.evalInt(op.Args[0], env, program)
	if err != nil {
		return 0, 0, err
	}
	right, err := e.evalInt(op.Args[1], env, program)
	if err != nil {
		return 0, 0, err
	}
	return left, right, nil
}

func (e *Engine) evalInt(expr ir.Expr, env Env, program string) (int64, error) {
	v, err := e.eval(expr, env, program)
	if err != nil {
		return 0, err
	}
	n, ok := v.(Int)
	if !ok {
		return 0, runtimeErrf(ErrCodeTypeMismatch, program, "expected integer, got %T", v)
	}
	return int64(n), nil
}

func (e *Engine) evalBool(expr ir.Expr, env Env, program string) (bool, error) {
	v, err := e.eval(expr, env, program)
	if err != nil {
		return false, err
	}
	b, ok := v.(Bool)
	if !ok {
		return false, runtimeErrf(ErrCodeTypeMismatch, program, "expected boolean, got %T", v)
	}
	return bool(b), nil
}
