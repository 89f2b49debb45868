// Package testutil provides shared kernel builders for tests.
//
// Builders return a FRESH kernel on every call: the pipeline mutates
// dependency lists and domain bodies in place, so sharing one instance
// between tests would leak inferred edges between them.
package testutil

import (
	"github.com/loopkit/loopc/internal/ir"
)

// CountingStep builds the canonical per-iteration update v = v + 1.
func CountingStep(v string) ir.Expr {
	return ir.Assign{Target: ir.Id(v), Value: ir.Bin("add", ir.Id(v), ir.Num(1))}
}

// CountingDomain builds a loop over v from lower to upper with unit step.
func CountingDomain(v string, lower, upper ir.Expr) *ir.Domain {
	return &ir.Domain{
		IName: v,
		Lower: lower,
		Upper: upper,
		Step:  CountingStep(v),
	}
}

// ScaleKernel builds the classic scaled-copy kernel:
//
//	for i = 1 .. n:
//	    out[i] = in[i] * c
//
// Free variables: c, in, n, and out (indexed target, so out is an
// input the caller must supply storage for).
func ScaleKernel() *ir.Kernel {
	return &ir.Kernel{
		Instructions: []*ir.Instruction{
			{
				IName: "s1",
				Body: ir.Assign{
					Target: ir.Index(ir.Id("out"), ir.Id("i")),
					Value:  ir.Bin("mul", ir.Index(ir.Id("in"), ir.Id("i")), ir.Id("c")),
				},
			},
		},
		Domains: []*ir.Domain{
			CountingDomain("i", ir.Num(1), ir.Id("n")),
		},
	}
}

// ReduceKernel builds a two-instruction kernel where the second
// instruction reads its own write target:
//
//	s1: y = f(a)
//	s2: s = s + y
//
// The self-reference in s2 makes it collect a dependency on s1.
func ReduceKernel() *ir.Kernel {
	return &ir.Kernel{
		Instructions: []*ir.Instruction{
			{
				IName: "s1",
				Body:  ir.Assign{Target: ir.Id("y"), Value: ir.Call{Callee: "f", Args: []ir.Expr{ir.Id("a")}}},
			},
			{
				IName: "s2",
				Body:  ir.Assign{Target: ir.Id("s"), Value: ir.Bin("add", ir.Id("s"), ir.Id("y"))},
			},
		},
	}
}

// SharedLoopKernel builds two domains that both bound one instruction:
//
//	for i = 1 .. n:
//	    for j = 1 .. m:
//	        a[i] = a[i] + b[j]
//
// Neither nesting is pre-declared; both loops discover s1 through its
// loop-variable references, and the nesting resolver merges them.
func SharedLoopKernel() *ir.Kernel {
	return &ir.Kernel{
		Instructions: []*ir.Instruction{
			{
				IName: "s1",
				Body: ir.Assign{
					Target: ir.Index(ir.Id("a"), ir.Id("i")),
					Value:  ir.Bin("add", ir.Index(ir.Id("a"), ir.Id("i")), ir.Index(ir.Id("b"), ir.Id("j"))),
				},
			},
		},
		Domains: []*ir.Domain{
			CountingDomain("i", ir.Num(1), ir.Id("n")),
			CountingDomain("j", ir.Num(1), ir.Id("m")),
		},
	}
}

// CycleKernel builds a kernel with an explicit two-node dependency
// cycle that the DAG builder must reject.
func CycleKernel() *ir.Kernel {
	return &ir.Kernel{
		Instructions: []*ir.Instruction{
			{IName: "x", Body: ir.Assign{Target: ir.Id("p"), Value: ir.Num(1)}, Deps: []string{"y"}},
			{IName: "y", Body: ir.Assign{Target: ir.Id("q"), Value: ir.Num(2)}, Deps: []string{"x"}},
		},
	}
}
