package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopkit/loopc/internal/ir"
	"github.com/loopkit/loopc/internal/testutil"
)

// TestInferImplicitOrder_SelfReference tests that an instruction whose
// right-hand side reads its own write target collects a dependency on
// every preceding instruction, regardless of their content.
func TestInferImplicitOrder_SelfReference(t *testing.T) {
	k := testutil.ReduceKernel() // s1: y = f(a); s2: s = s + y

	require.NoError(t, InferImplicitOrder(k))

	assert.Equal(t, []string{"s1"}, k.Instructions[1].Deps)
	assert.Empty(t, k.Instructions[0].Deps, "first instruction has no predecessors")
}

// TestInferImplicitOrder_CallConservatism tests that a call body is
// assumed to depend on everything prior.
func TestInferImplicitOrder_CallConservatism(t *testing.T) {
	k := &ir.Kernel{
		Instructions: []*ir.Instruction{
			{IName: "s1", Body: ir.Assign{Target: ir.Id("y"), Value: ir.Bin("add", ir.Id("a"), ir.Id("b"))}},
			{IName: "s2", Body: ir.Call{Callee: "g", Args: []ir.Expr{ir.Id("y")}}},
		},
	}

	require.NoError(t, InferImplicitOrder(k))

	assert.Equal(t, []string{"s1"}, k.Instructions[1].Deps)
}

// TestInferImplicitOrder_NoSelfReference tests that an instruction that
// does not read its own target collects nothing, even when it plainly
// reads the previous instruction's output. The pass checks each
// instruction against itself; cross-instruction write/read matching is
// out of scope (see DESIGN.md).
func TestInferImplicitOrder_NoSelfReference(t *testing.T) {
	k := &ir.Kernel{
		Instructions: []*ir.Instruction{
			{IName: "s1", Body: ir.Assign{Target: ir.Id("y"), Value: ir.Id("a")}},
			{IName: "s2", Body: ir.Assign{Target: ir.Id("z"), Value: ir.Id("y")}},
		},
	}

	require.NoError(t, InferImplicitOrder(k))

	assert.Empty(t, k.Instructions[1].Deps)
}

// TestInferImplicitOrder_EveryPredecessor tests edge accumulation: one
// self-referencing instruction depends on all instructions before it.
func TestInferImplicitOrder_EveryPredecessor(t *testing.T) {
	k := &ir.Kernel{
		Instructions: []*ir.Instruction{
			{IName: "s1", Body: ir.Assign{Target: ir.Id("a"), Value: ir.Num(1)}},
			{IName: "s2", Body: ir.Assign{Target: ir.Id("b"), Value: ir.Num(2)}},
			{IName: "s3", Body: ir.Assign{Target: ir.Id("s"), Value: ir.Bin("add", ir.Id("s"), ir.Num(1))}},
		},
	}

	require.NoError(t, InferImplicitOrder(k))

	assert.Equal(t, []string{"s1", "s2"}, k.Instructions[2].Deps)
}

// TestInferImplicitOrder_MalformedTarget tests the structural error for
// a left-hand side that never reaches a bare identifier.
func TestInferImplicitOrder_MalformedTarget(t *testing.T) {
	k := &ir.Kernel{
		Instructions: []*ir.Instruction{
			{IName: "s1", Body: ir.Assign{Target: ir.Id("a"), Value: ir.Num(1)}},
			{IName: "s2", Body: ir.Assign{Target: ir.Num(3), Value: ir.Num(1)}},
		},
	}

	err := InferImplicitOrder(k)
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
	assert.Contains(t, err.Error(), "MALFORMED_TARGET")
	assert.Contains(t, err.Error(), "s2")
}

// TestInferLoopReferences_Linkage tests instruction/domain linkage: a
// loop variable occurring in an instruction body records the dependency
// and adds the instruction to the domain's body.
func TestInferLoopReferences_Linkage(t *testing.T) {
	k := testutil.ScaleKernel() // s1: out[i] = in[i] * c inside domain i

	InferLoopReferences(k)

	assert.Equal(t, []string{"i"}, k.Instructions[0].Deps)
	require.Len(t, k.Domains[0].Body, 1)
	assert.Equal(t, "s1", k.Domains[0].Body[0].Name())
}

// TestInferLoopReferences_DomainPair tests the domain/domain rule: the
// later domain's loop variable occurring in the earlier domain's bound
// makes the later depend on the earlier, and the earlier contain the
// later. Direction preserved as-is; see DESIGN.md.
func TestInferLoopReferences_DomainPair(t *testing.T) {
	d1 := testutil.CountingDomain("i", ir.Num(1), ir.Id("j")) // upper bound references j
	d2 := testutil.CountingDomain("j", ir.Num(1), ir.Id("n"))
	k := &ir.Kernel{Domains: []*ir.Domain{d1, d2}}

	InferLoopReferences(k)

	assert.Equal(t, []string{"i"}, d2.Deps)
	require.Len(t, d1.Body, 1)
	assert.Equal(t, "j", d1.Body[0].Name())
	assert.Empty(t, d1.Deps)
}

// TestAnalyze_NonIdempotent tests that analyzing the same kernel
// instance twice duplicates every inferred edge. This is documented
// behavior: dependency lists are cumulative, never deduplicated.
func TestAnalyze_NonIdempotent(t *testing.T) {
	k := testutil.ScaleKernel()

	require.NoError(t, Analyze(k))
	require.NoError(t, Analyze(k))

	assert.Equal(t, []string{"i", "i"}, k.Instructions[0].Deps)
	assert.Len(t, k.Domains[0].Body, 2, "domain body accumulates the instruction twice")
}
