package compiler

import (
	"github.com/loopkit/loopc/internal/ir"
)

// DAG is the explicit dependency graph, stored as an arena of nodes
// addressed by integer index. Children and parents are index lists
// into the arena, so there are no cyclic ownership pointers. Index 0
// is the synthetic root with a nil payload.
//
// A DAG is scheduling-only and ephemeral: Linearize consumes its edges
// destructively, so a DAG is single-use.
type DAG struct {
	nodes []dagNode
	index map[string]int // iname -> arena index
}

type dagNode struct {
	payload  ir.Node // nil for the root
	children []int   // owned edges, multiplicity preserved
	parents  []int   // back-references, multiplicity preserved
}

const rootIndex = 0

// BuildDAG turns an analyzed kernel into a rooted DAG.
//
// Every node with an empty dependency list is attached directly under
// the root, in declaration order, and indexed by iname. The remaining
// nodes are then placed by repeated scan: the first (in declaration
// order) whose every dependency is already indexed is attached as a
// child of each dependency's node - multiple parents are possible, and
// a duplicated dependency entry produces a duplicated edge. If a scan
// places nothing while items remain, the build fails with a
// ScheduleError naming every stuck iname. A cycle and a reference to a
// missing iname are indistinguishable here; both stall the scan.
func BuildDAG(k *ir.Kernel) (*DAG, error) {
	d := &DAG{
		nodes: []dagNode{{}}, // root
		index: make(map[string]int),
	}

	var pending []ir.Node
	for _, n := range k.Nodes() {
		if len(nodeDeps(n)) == 0 {
			idx := d.add(n)
			d.link(rootIndex, idx)
		} else {
			pending = append(pending, n)
		}
	}

	for len(pending) > 0 {
		placed := -1
		for i, n := range pending {
			if d.allIndexed(nodeDeps(n)) {
				placed = i
				idx := d.add(n)
				for _, dep := range nodeDeps(n) {
					d.link(d.index[dep], idx)
				}
				break
			}
		}
		if placed == -1 {
			stuck := make([]string, len(pending))
			for i, n := range pending {
				stuck[i] = n.Name()
			}
			return nil, NewUnresolvedError(stuck)
		}
		pending = append(pending[:placed], pending[placed+1:]...)
	}

	return d, nil
}

// add appends a payload node to the arena and indexes it by iname.
// Arena order is placement order, which the scheduler uses as its
// declaration-order tiebreaker.
func (d *DAG) add(n ir.Node) int {
	idx := len(d.nodes)
	d.nodes = append(d.nodes, dagNode{payload: n})
	d.index[n.Name()] = idx
	return idx
}

// link records a parent -> child edge in both directions.
func (d *DAG) link(parent, child int) {
	d.nodes[parent].children = append(d.nodes[parent].children, child)
	d.nodes[child].parents = append(d.nodes[child].parents, parent)
}

func (d *DAG) allIndexed(deps []string) bool {
	for _, dep := range deps {
		if _, ok := d.index[dep]; !ok {
			return false
		}
	}
	return true
}

// Len returns the number of payload nodes (the root is excluded).
func (d *DAG) Len() int {
	return len(d.nodes) - 1
}

// nodeDeps returns the dependency list of either node kind.
func nodeDeps(n ir.Node) []string {
	switch v := n.(type) {
	case *ir.Instruction:
		return v.Deps
	case *ir.Domain:
		return v.Deps
	default:
		return nil
	}
}
