package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopkit/loopc/internal/ir"
	"github.com/loopkit/loopc/internal/testutil"
)

// TestCollectIdents_CallExcludesCallee tests that a call contributes
// only its arguments' identifiers.
func TestCollectIdents_CallExcludesCallee(t *testing.T) {
	ids := CollectIdents(ir.Call{Callee: "f", Args: []ir.Expr{ir.Id("a"), ir.Bin("add", ir.Id("b"), ir.Num(1))}})
	assert.Equal(t, map[string]bool{"a": true, "b": true}, ids)
}

// TestCollectIdents_AssignIncludesBothSides tests that an assignment
// contributes target and value identifiers.
func TestCollectIdents_AssignIncludesBothSides(t *testing.T) {
	ids := CollectIdents(ir.Assign{Target: ir.Index(ir.Id("out"), ir.Id("i")), Value: ir.Id("x")})
	assert.Equal(t, map[string]bool{"out": true, "i": true, "x": true}, ids)
}

// TestCollectIdents_Literal tests that literals contribute nothing.
func TestCollectIdents_Literal(t *testing.T) {
	assert.Empty(t, CollectIdents(ir.Num(5)))
}

// TestKernelArguments_Completeness tests the free-variable rule on the
// scaled-copy kernel: i (loop variable) is excluded, but out is NOT -
// its assignment target is indexed, and only plain-identifier targets
// count as assigned.
func TestKernelArguments_Completeness(t *testing.T) {
	k := testutil.ScaleKernel()
	assert.Equal(t, []string{"c", "in", "n", "out"}, KernelArguments(k))
}

// TestKernelArguments_PlainTargetExcluded tests that an identifier
// assigned with a bare target drops out of the argument list.
func TestKernelArguments_PlainTargetExcluded(t *testing.T) {
	k := &ir.Kernel{
		Instructions: []*ir.Instruction{
			{IName: "s1", Body: ir.Assign{Target: ir.Id("y"), Value: ir.Bin("add", ir.Id("a"), ir.Id("b"))}},
		},
	}
	assert.Equal(t, []string{"a", "b"}, KernelArguments(k))
}

// TestKernelArguments_SelfReadStillExcluded tests that an identifier
// both read and plainly assigned counts as internal, not a parameter.
func TestKernelArguments_SelfReadStillExcluded(t *testing.T) {
	k := &ir.Kernel{
		Instructions: []*ir.Instruction{
			{IName: "s1", Body: ir.Assign{Target: ir.Id("s"), Value: ir.Bin("add", ir.Id("s"), ir.Id("x"))}},
		},
	}
	assert.Equal(t, []string{"x"}, KernelArguments(k))
}

// TestKernelArguments_DomainBounds tests that identifiers in bounds
// and step expressions are collected and the loop variable excluded.
func TestKernelArguments_DomainBounds(t *testing.T) {
	d := &ir.Domain{
		IName: "i",
		Lower: ir.Id("lo"),
		Upper: ir.Id("hi"),
		Step:  ir.Assign{Target: ir.Id("i"), Value: ir.Bin("add", ir.Id("i"), ir.Id("stride"))},
	}
	k := &ir.Kernel{Domains: []*ir.Domain{d}}

	require.NotNil(t, k)
	assert.Equal(t, []string{"hi", "lo", "stride"}, KernelArguments(k))
}
