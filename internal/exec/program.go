package exec

import (
	"github.com/loopkit/loopc/internal/ir"
)

// Stmt is a sealed interface over the lowered statement forms the
// engine can execute. Only EvalStmt and LoopStmt implement it.
type Stmt interface {
	stmt()
}

// EvalStmt evaluates one expression for its effect - normally an
// assignment or a call.
type EvalStmt struct {
	Expr ir.Expr
}

func (EvalStmt) stmt() {}

// LoopStmt executes its body while Var's current value is less than or
// equal to Upper. Var is initialized from Lower on entry, and Step is
// evaluated as a statement after each iteration. Upper is re-evaluated
// on every test, so a body that writes the bound variable changes the
// trip count.
type LoopStmt struct {
	Var   string
	Lower ir.Expr
	Upper ir.Expr
	Step  ir.Expr
	Body  []Stmt
}

func (LoopStmt) stmt() {}

// Program is a registered executable: a uniquely named body plus the
// exact named parameters an invocation must supply.
type Program struct {
	Name   string
	Params []string
	Body   []Stmt
}

// StmtToAny encodes a statement as generic maps for canonical JSON.
// Feeds ir.MarshalCanonical; used by the program registry to persist
// the lowered form.
func StmtToAny(s Stmt) any {
	switch v := s.(type) {
	case EvalStmt:
		return map[string]any{"kind": "eval", "expr": ir.ExprToAny(v.Expr)}
	case LoopStmt:
		return map[string]any{
			"kind":  "loop",
			"var":   v.Var,
			"lower": ir.ExprToAny(v.Lower),
			"upper": ir.ExprToAny(v.Upper),
			"step":  ir.ExprToAny(v.Step),
			"body":  StmtsToAny(v.Body),
		}
	default:
		return nil
	}
}

// StmtsToAny encodes an ordered statement sequence.
func StmtsToAny(stmts []Stmt) []any {
	out := make([]any, len(stmts))
	for i, s := range stmts {
		out[i] = StmtToAny(s)
	}
	return out
}
