package compiler

import (
	"github.com/loopkit/loopc/internal/ir"
)

// Analyze infers the dependency edges a kernel description leaves
// implicit. Two passes, both appending to existing Deps lists and
// Domain bodies in place; pre-existing entries are preserved, never
// cleared, so running Analyze twice on the same instance duplicates
// every inferred edge.
func Analyze(k *ir.Kernel) error {
	if err := InferImplicitOrder(k); err != nil {
		return err
	}
	InferLoopReferences(k)
	return nil
}

// InferImplicitOrder records instruction-to-instruction edges.
//
// For every ordered pair (earlier, later) in the kernel's instruction
// list:
//   - a call body depends on every predecessor unconditionally (any
//     function call is assumed to have unknown side effects on
//     anything prior)
//   - otherwise the later instruction's own assignment target, descended
//     through compound left-hand sides to a bare identifier, is checked
//     against the later instruction's own right-hand side; an occurrence
//     records the edge
//
// NOTE: the non-call check compares an instruction against itself, not
// the earlier instruction's write target against the later one's reads.
// A single self-referencing instruction therefore collects a dependency
// on every instruction preceding it. This mirrors the reference
// semantics exactly; see DESIGN.md before changing it.
//
// O(n^2) over instruction count.
func InferImplicitOrder(k *ir.Kernel) error {
	for j := 1; j < len(k.Instructions); j++ {
		later := k.Instructions[j]

		_, isCall := later.Body.(ir.Call)
		selfRef := false
		if !isCall {
			target, rhs, err := splitBody(later)
			if err != nil {
				return err
			}
			selfRef = ir.ContainsIdent(rhs, target)
		}

		for i := 0; i < j; i++ {
			if isCall || selfRef {
				later.Deps = append(later.Deps, k.Instructions[i].IName)
			}
		}
	}
	return nil
}

// InferLoopReferences records edges between instructions/domains and
// the loops that bound them.
//
// Instruction/domain: a domain's loop variable occurring anywhere in an
// instruction body makes the instruction depend on the domain, and adds
// the instruction to the domain's body.
//
// Domain/domain: for ordered pairs (d1 before d2), d2's loop variable
// occurring in d1's step, lower bound, or upper bound makes d2 depend
// on d1 and adds d2 to d1's body. The direction and the resulting
// containment are preserved from the reference semantics as-is (flagged
// in DESIGN.md).
//
// No dependency is inferred purely from one loop referencing another
// through instructions it contains; that remains a known gap.
func InferLoopReferences(k *ir.Kernel) {
	for _, in := range k.Instructions {
		for _, d := range k.Domains {
			if ir.ContainsIdent(in.Body, d.IName) {
				in.Deps = append(in.Deps, d.IName)
				d.Body = append(d.Body, in)
			}
		}
	}

	for x := 0; x < len(k.Domains); x++ {
		d1 := k.Domains[x]
		for y := x + 1; y < len(k.Domains); y++ {
			d2 := k.Domains[y]
			if ir.ContainsIdent(d1.Step, d2.IName) ||
				ir.ContainsIdent(d1.Lower, d2.IName) ||
				ir.ContainsIdent(d1.Upper, d2.IName) {
				d2.Deps = append(d2.Deps, d1.IName)
				d1.Body = append(d1.Body, d2)
			}
		}
	}
}

// splitBody separates an instruction body into its write target (as a
// bare identifier) and its read expression. A plain assignment splits
// into target and value; any other non-call body serves as its own
// read expression, with the target descended from the body itself.
func splitBody(in *ir.Instruction) (target string, rhs ir.Expr, err error) {
	if asn, ok := in.Body.(ir.Assign); ok {
		target, err = assignTarget(asn.Target, in.IName)
		return target, asn.Value, err
	}
	target, err = assignTarget(in.Body, in.IName)
	return target, in.Body, err
}

// assignTarget descends through compound left-hand sides (indexing and
// other tagged forms) until reaching a bare identifier. The convention
// throughout the IR is that a compound target's first argument is the
// thing being written.
func assignTarget(e ir.Expr, iname string) (string, error) {
	for {
		switch v := e.(type) {
		case ir.Ident:
			return v.Name, nil
		case ir.Assign:
			e = v.Target
		case ir.Op:
			if len(v.Args) == 0 {
				return "", &ShapeError{Code: ErrCodeMalformedTarget, IName: iname,
					Message: "cannot reduce empty " + v.Tag + " form to an identifier"}
			}
			e = v.Args[0]
		case ir.Call:
			if len(v.Args) == 0 {
				return "", &ShapeError{Code: ErrCodeMalformedTarget, IName: iname,
					Message: "cannot reduce zero-argument call to an identifier"}
			}
			e = v.Args[0]
		default:
			return "", &ShapeError{Code: ErrCodeMalformedTarget, IName: iname,
				Message: "left-hand side does not reduce to an identifier"}
		}
	}
}
