package compiler

import (
	"github.com/loopkit/loopc/internal/ir"
)

// ValidateKernel performs structural checks before analysis:
//   - every iname is unique across instructions AND domains (one
//     namespace)
//   - every instruction has a body
//   - every domain has lower, upper, and step expressions
//
// Dangling dependency references are deliberately NOT checked here;
// they surface as an unresolvable-dependency error from BuildDAG, and
// that error is not distinguished from a cycle.
func ValidateKernel(k *ir.Kernel) error {
	seen := make(map[string]bool)

	for _, in := range k.Instructions {
		if in.IName == "" {
			return &ShapeError{Code: ErrCodeBadShape, Message: "instruction with empty iname"}
		}
		if seen[in.IName] {
			return &ShapeError{Code: ErrCodeDuplicateIName, IName: in.IName,
				Message: "iname declared more than once"}
		}
		seen[in.IName] = true
		if in.Body == nil {
			return &ShapeError{Code: ErrCodeBadShape, IName: in.IName,
				Message: "instruction has no body"}
		}
	}

	for _, d := range k.Domains {
		if d.IName == "" {
			return &ShapeError{Code: ErrCodeBadShape, Message: "domain with empty iname"}
		}
		if seen[d.IName] {
			return &ShapeError{Code: ErrCodeDuplicateIName, IName: d.IName,
				Message: "iname declared more than once"}
		}
		seen[d.IName] = true
		if d.Lower == nil || d.Upper == nil || d.Step == nil {
			return &ShapeError{Code: ErrCodeBadShape, IName: d.IName,
				Message: "domain requires lower, upper, and step expressions"}
		}
	}

	return nil
}

// Schedule runs the full pipeline on a kernel: validation, dependency
// inference, DAG construction, topological linearization, and loop
// nesting resolution. The returned order is the tree-shaped program
// ready for lowering.
//
// Schedule mutates the kernel (see the package comment); pass a fresh
// kernel per call.
func Schedule(k *ir.Kernel) ([]ir.Node, error) {
	if err := ValidateKernel(k); err != nil {
		return nil, err
	}
	if err := Analyze(k); err != nil {
		return nil, err
	}
	dag, err := BuildDAG(k)
	if err != nil {
		return nil, err
	}
	flat := dag.Linearize()
	return ResolveNesting(flat, k), nil
}
