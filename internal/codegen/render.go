package codegen

import (
	"fmt"
	"strings"

	"github.com/loopkit/loopc/internal/exec"
	"github.com/loopkit/loopc/internal/ir"
)

// RenderProgram produces the human-readable listing of a program:
// signature line, then the indented statement tree. Used by the CLI
// and golden tests; execution never touches this form.
func RenderProgram(p *exec.Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s):\n", p.Name, strings.Join(p.Params, ", "))
	renderStmts(&b, p.Body, 1)
	return b.String()
}

// RenderStmts renders a bare statement sequence without a signature,
// for CompileToTree callers.
func RenderStmts(stmts []exec.Stmt) string {
	var b strings.Builder
	renderStmts(&b, stmts, 0)
	return b.String()
}

func renderStmts(b *strings.Builder, stmts []exec.Stmt, depth int) {
	indent := strings.Repeat("    ", depth)
	for _, s := range stmts {
		switch v := s.(type) {
		case exec.EvalStmt:
			fmt.Fprintf(b, "%s%s\n", indent, ir.Render(v.Expr))
		case exec.LoopStmt:
			fmt.Fprintf(b, "%sfor %s = %s; %s <= %s; %s {\n",
				indent, v.Var, ir.Render(v.Lower), v.Var, ir.Render(v.Upper), ir.Render(v.Step))
			renderStmts(b, v.Body, depth+1)
			fmt.Fprintf(b, "%s}\n", indent)
		}
	}
}
