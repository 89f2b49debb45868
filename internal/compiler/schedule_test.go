package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopkit/loopc/internal/ir"
	"github.com/loopkit/loopc/internal/testutil"
)

// assertRespectsDeps fails if any node appears before one of its
// dependencies in the order.
func assertRespectsDeps(t *testing.T, order []ir.Node) {
	t.Helper()
	pos := make(map[string]int, len(order))
	for i, n := range order {
		pos[n.Name()] = i
	}
	for _, n := range order {
		for _, dep := range nodeDeps(n) {
			depPos, ok := pos[dep]
			require.True(t, ok, "dependency %q of %q missing from order", dep, n.Name())
			assert.Less(t, depPos, pos[n.Name()],
				"%q must come after its dependency %q", n.Name(), dep)
		}
	}
}

// TestLinearize_RespectsDependencies tests the fundamental scheduling
// property: every node appears after all of its dependencies.
func TestLinearize_RespectsDependencies(t *testing.T) {
	k := testutil.SharedLoopKernel()
	require.NoError(t, Analyze(k))

	dag, err := BuildDAG(k)
	require.NoError(t, err)

	assertRespectsDeps(t, dag.Linearize())
}

// TestLinearize_DeclarationOrder tests that independent nodes keep
// their declaration order.
func TestLinearize_DeclarationOrder(t *testing.T) {
	k := &ir.Kernel{
		Instructions: []*ir.Instruction{
			{IName: "s1", Body: ir.Assign{Target: ir.Id("a"), Value: ir.Num(1)}},
			{IName: "s2", Body: ir.Assign{Target: ir.Id("b"), Value: ir.Num(2)}},
			{IName: "s3", Body: ir.Assign{Target: ir.Id("c"), Value: ir.Num(3)}},
		},
	}

	dag, err := BuildDAG(k)
	require.NoError(t, err)

	order := dag.Linearize()
	var names []string
	for _, n := range order {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"s1", "s2", "s3"}, names)
}

// TestLinearize_DuplicateEdges tests that duplicated dependency edges
// (the second-analysis case) are consumed with multiplicity and still
// produce a complete order.
func TestLinearize_DuplicateEdges(t *testing.T) {
	k := testutil.ScaleKernel()
	require.NoError(t, Analyze(k))
	require.NoError(t, Analyze(k)) // duplicates every edge

	dag, err := BuildDAG(k)
	require.NoError(t, err)

	order := dag.Linearize()
	require.Len(t, order, 2)
	assert.Equal(t, "i", order[0].Name())
	assert.Equal(t, "s1", order[1].Name())
}

// TestLinearize_Levels tests breadth-first emission: an instruction
// two levels down appears after everything in the level above it.
func TestLinearize_Levels(t *testing.T) {
	k := &ir.Kernel{
		Instructions: []*ir.Instruction{
			{IName: "top", Body: ir.Assign{Target: ir.Id("a"), Value: ir.Num(1)}},
			{IName: "mid1", Body: ir.Assign{Target: ir.Id("b"), Value: ir.Num(2)}, Deps: []string{"top"}},
			{IName: "mid2", Body: ir.Assign{Target: ir.Id("c"), Value: ir.Num(3)}, Deps: []string{"top"}},
			{IName: "bottom", Body: ir.Assign{Target: ir.Id("d"), Value: ir.Num(4)}, Deps: []string{"mid1", "mid2"}},
		},
	}

	dag, err := BuildDAG(k)
	require.NoError(t, err)

	order := dag.Linearize()
	var names []string
	for _, n := range order {
		names = append(names, n.Name())
	}
	assert.Equal(t, []string{"top", "mid1", "mid2", "bottom"}, names)
	assertRespectsDeps(t, order)
}
