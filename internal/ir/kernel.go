package ir

// Node is the union of the two schedulable payload kinds: *Instruction
// and *Domain. Both are identified by a unique iname; instructions and
// domains share one namespace.
type Node interface {
	// Name returns the node's iname. For a Domain this is also its
	// loop variable identifier.
	Name() string
	node() // Sealed - only *Instruction and *Domain implement it
}

// Instruction is one atomic computational statement.
//
// Deps is an ORDERED list of iname references, not a set: the dependency
// analyzer appends edges and never deduplicates, so running analysis
// twice on the same instance duplicates every inferred edge. Callers
// that need a fresh compilation must hand the pipeline a fresh kernel.
type Instruction struct {
	IName string
	Body  Expr // normally an Assign or a Call
	Deps  []string
}

func (in *Instruction) Name() string { return in.IName }
func (*Instruction) node()           {}

// Domain is a loop: a loop variable (the iname), bounds, a per-iteration
// step expression, and a body of nodes logically inside the loop.
//
// Body starts possibly non-empty (pre-declared nesting), accumulates
// further entries during dependency inference, and is rewritten in place
// by the nesting resolver. Like Instruction.Deps, it is cumulative
// across repeated analysis runs.
type Domain struct {
	IName string
	Lower Expr
	Upper Expr
	Step  Expr // per-iteration update, e.g. Assign(i, i + 1)
	Body  []Node
	Deps  []string
}

func (d *Domain) Name() string { return d.IName }
func (*Domain) node()          {}

// Kernel is the unit of compilation.
type Kernel struct {
	Instructions []*Instruction
	Domains      []*Domain
}

// Nodes returns all kernel nodes in declaration order: instructions
// first, then domains. This order is the tiebreaker used by the
// scheduler, so it must be deterministic.
func (k *Kernel) Nodes() []Node {
	nodes := make([]Node, 0, len(k.Instructions)+len(k.Domains))
	for _, in := range k.Instructions {
		nodes = append(nodes, in)
	}
	for _, d := range k.Domains {
		nodes = append(nodes, d)
	}
	return nodes
}

// Lookup returns the node with the given iname, or nil.
func (k *Kernel) Lookup(iname string) Node {
	for _, in := range k.Instructions {
		if in.IName == iname {
			return in
		}
	}
	for _, d := range k.Domains {
		if d.IName == iname {
			return d
		}
	}
	return nil
}
