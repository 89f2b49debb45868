package ir

import (
	"fmt"
	"strings"
)

// infixTags maps two-argument Op tags to their surface operator. Tags
// outside this table render as tag(arg, ...) calls.
var infixTags = map[string]string{
	"add": "+",
	"sub": "-",
	"mul": "*",
	"div": "/",
	"mod": "%",
	"le":  "<=",
	"lt":  "<",
	"ge":  ">=",
	"gt":  ">",
	"eq":  "==",
	"ne":  "!=",
	"and": "&&",
	"or":  "||",
}

// Render produces a deterministic, human-readable form of an expression.
// Used by CLI output and golden tests; never used for hashing (that is
// MarshalCanonical's job).
func Render(e Expr) string {
	switch v := e.(type) {
	case Ident:
		return v.Name
	case Lit:
		return fmt.Sprintf("%d", v.Val)
	case Call:
		return v.Callee + "(" + renderList(v.Args) + ")"
	case Assign:
		return Render(v.Target) + " = " + Render(v.Value)
	case Op:
		return renderOp(v)
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func renderOp(op Op) string {
	switch {
	case op.Tag == "index" && len(op.Args) == 2:
		return Render(op.Args[0]) + "[" + Render(op.Args[1]) + "]"
	case op.Tag == "neg" && len(op.Args) == 1:
		return "-" + Render(op.Args[0])
	default:
		if sym, ok := infixTags[op.Tag]; ok && len(op.Args) == 2 {
			return renderOperand(op.Args[0]) + " " + sym + " " + renderOperand(op.Args[1])
		}
		return op.Tag + "(" + renderList(op.Args) + ")"
	}
}

// renderOperand parenthesizes nested infix operations so the rendered
// form is unambiguous without precedence rules.
func renderOperand(e Expr) string {
	if op, ok := e.(Op); ok {
		if _, infix := infixTags[op.Tag]; infix && len(op.Args) == 2 {
			return "(" + Render(e) + ")"
		}
	}
	return Render(e)
}

func renderList(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Render(a)
	}
	return strings.Join(parts, ", ")
}
