package compiler

import (
	"github.com/loopkit/loopc/internal/ir"
)

// ResolveNesting rewrites a flat execution order into a properly
// nested tree of loops and statements.
//
// Domains that share instructions (by iname) are merged: when domain D
// precedes domain E in the flat order and both list a common set of
// instructions, the shared instructions are removed from D's body at
// the position of the first shared one and E itself is inserted there,
// so E's subtree becomes a single nested element of D. An absorbed
// domain is tracked in the nested bookkeeping map and suppressed from
// top-level emission. A domain that shares nothing and was never
// absorbed is emitted standalone. A top-level instruction is emitted
// only when it has no dependencies - anything with a dependency lives
// inside some domain's body already.
//
// The rewrite is destructive on the domains' Body slices, consistent
// with the rest of the pipeline.
func ResolveNesting(flat []ir.Node, k *ir.Kernel) []ir.Node {
	pos := make(map[string]int, len(flat))
	for i, n := range flat {
		pos[n.Name()] = i
	}

	// nested tracks, per domain iname, whether the domain has been
	// absorbed into an outer domain by a merge. Absorbed domains must
	// not be emitted again at the top level.
	nested := make(map[string]bool)

	var result []ir.Node
	for _, n := range flat {
		switch node := n.(type) {
		case *ir.Instruction:
			if len(node.Deps) == 0 {
				result = append(result, node)
			}

		case *ir.Domain:
			outer := node
			for _, inner := range k.Domains {
				if inner == outer {
					continue
				}
				shared := sharedNames(outer.Body, inner.Body)
				if len(shared) == 0 {
					continue
				}
				outerPos, ok1 := pos[outer.IName]
				innerPos, ok2 := pos[inner.IName]
				if ok1 && ok2 && outerPos < innerPos {
					outer.Body = absorb(outer.Body, inner, shared)
					nested[inner.IName] = true
				}
			}
			if !nested[outer.IName] {
				result = append(result, outer)
			}
		}
	}

	return result
}

// sharedNames returns the inames present in both bodies, as a set.
func sharedNames(a, b []ir.Node) map[string]bool {
	inA := make(map[string]bool, len(a))
	for _, n := range a {
		inA[n.Name()] = true
	}
	shared := make(map[string]bool)
	for _, n := range b {
		if inA[n.Name()] {
			shared[n.Name()] = true
		}
	}
	return shared
}

// absorb removes the shared elements from body at the position of the
// first shared element and inserts inner there instead, so the inner
// domain's subtree replaces the raw shared instructions.
func absorb(body []ir.Node, inner *ir.Domain, shared map[string]bool) []ir.Node {
	insertAt := -1
	var out []ir.Node
	for i, n := range body {
		if shared[n.Name()] {
			if insertAt == -1 {
				insertAt = i
				out = append(out, inner)
			}
			continue
		}
		out = append(out, n)
	}
	if insertAt == -1 {
		// No shared element found in this body; nothing to absorb.
		return body
	}
	return out
}
