package compiler

import (
	"sort"

	"github.com/loopkit/loopc/internal/ir"
)

// CollectIdents returns the set of identifiers occurring in an
// expression. A call contributes the identifiers of its arguments
// only - the callee name itself is excluded. An assignment contributes
// both its target and its value.
func CollectIdents(e ir.Expr) map[string]bool {
	acc := make(map[string]bool)
	collectIdents(e, acc)
	return acc
}

func collectIdents(e ir.Expr, acc map[string]bool) {
	if id, ok := e.(ir.Ident); ok {
		acc[id.Name] = true
		return
	}
	for _, sub := range ir.Subexprs(e) {
		collectIdents(sub, acc)
	}
}

// KernelIdents unions CollectIdents over every instruction body and
// every domain's step and bounds, plus each domain's own loop-variable
// identifier.
func KernelIdents(k *ir.Kernel) map[string]bool {
	acc := make(map[string]bool)
	for _, in := range k.Instructions {
		collectIdents(in.Body, acc)
	}
	for _, d := range k.Domains {
		collectIdents(d.Step, acc)
		collectIdents(d.Lower, acc)
		collectIdents(d.Upper, acc)
		acc[d.IName] = true
	}
	return acc
}

// KernelArguments computes the free-variable set of a kernel: every
// identifier it uses, minus identifiers that are plain-identifier
// assignment targets of some instruction, minus all loop variables.
// The result is the exact parameter list the generated program must
// accept, sorted for deterministic program signatures.
//
// NOTE: only a bare Ident target counts as "assigned". An indexed
// target such as out[i] writes through out without binding it, so out
// stays in the argument list - the caller must supply the storage.
func KernelArguments(k *ir.Kernel) []string {
	free := KernelIdents(k)

	for _, in := range k.Instructions {
		if asn, ok := in.Body.(ir.Assign); ok {
			if id, ok := asn.Target.(ir.Ident); ok {
				delete(free, id.Name)
			}
		}
	}
	for _, d := range k.Domains {
		delete(free, d.IName)
	}

	args := make([]string, 0, len(free))
	for name := range free {
		args = append(args, name)
	}
	sort.Strings(args)
	return args
}
