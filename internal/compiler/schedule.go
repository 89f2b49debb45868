package compiler

import (
	"github.com/loopkit/loopc/internal/ir"
)

// Linearize flattens the DAG into one valid execution order.
//
// Breadth-first from the root, by levels: a node becomes ready exactly
// when all of its parent edges have been consumed, and ready nodes are
// emitted in arena order, which preserves declaration order among
// nodes that become ready together.
//
// Linearize mutates the DAG destructively - edges are consumed as
// nodes are emitted - so the DAG must not be reused afterwards.
func (d *DAG) Linearize() []ir.Node {
	remaining := make([]int, len(d.nodes)) // unconsumed parent edges per node
	for i := range d.nodes {
		remaining[i] = len(d.nodes[i].parents)
	}

	emitted := make([]bool, len(d.nodes))
	emitted[rootIndex] = true

	order := make([]ir.Node, 0, d.Len())
	frontier := []int{rootIndex}

	for len(frontier) > 0 {
		// Consume every edge leaving the current level. An edge that
		// appears twice (duplicated dependency) is consumed twice.
		for _, idx := range frontier {
			for _, child := range d.nodes[idx].children {
				remaining[child]--
			}
			d.nodes[idx].children = nil
		}

		// Collect the newly ready nodes in arena order. Anything at
		// zero that is not yet emitted became ready this level.
		var next []int
		for i := 1; i < len(d.nodes); i++ {
			if !emitted[i] && remaining[i] == 0 {
				emitted[i] = true
				next = append(next, i)
				order = append(order, d.nodes[i].payload)
			}
		}
		frontier = next
	}

	return order
}
