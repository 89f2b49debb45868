package codegen

import (
	"github.com/loopkit/loopc/internal/exec"
	"github.com/loopkit/loopc/internal/ir"
)

// Lower recursively lowers a schedule into executable statements.
//
//   - a Domain lowers to a loop: initialize its variable to the lower
//     bound, run the lowered body while the variable is <= the upper
//     bound, apply the step after each iteration
//   - an Instruction lowers to its body expression unchanged
//   - a sequence lowers to the concatenation of its elements
func Lower(schedule []ir.Node) []exec.Stmt {
	stmts := make([]exec.Stmt, 0, len(schedule))
	for _, n := range schedule {
		stmts = append(stmts, lowerNode(n))
	}
	return stmts
}

func lowerNode(n ir.Node) exec.Stmt {
	switch v := n.(type) {
	case *ir.Instruction:
		return exec.EvalStmt{Expr: v.Body}
	case *ir.Domain:
		return exec.LoopStmt{
			Var:   v.IName,
			Lower: v.Lower,
			Upper: v.Upper,
			Step:  v.Step,
			Body:  Lower(v.Body),
		}
	default:
		// Node is sealed; nothing else can appear in a schedule.
		return nil
	}
}
