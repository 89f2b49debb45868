// Package compiler implements the scheduling core of loopc.
//
// The pipeline transforms a kernel description into a nested,
// dependency-respecting schedule:
//
//  1. Validate: structural checks (unique inames, well-formed bodies)
//  2. Analyze: infer instruction/instruction and instruction/domain
//     dependency edges (appends to the kernel in place)
//  3. BuildDAG: explicit dependency graph rooted at a synthetic head,
//     stored as an arena of nodes addressed by integer index
//  4. Linearize: breadth-first topological order, destructive on the DAG
//  5. ResolveNesting: merge overlapping loop domains into a nesting tree
//
// CRITICAL: steps 2 and 5 mutate the kernel's dependency lists and
// domain bodies in place. Compiling the same kernel instance twice
// duplicates every inferred edge; callers must supply a fresh kernel
// per compilation. This matches the documented non-idempotence of the
// analyzer and is deliberate, not a bug.
//
// The pipeline is synchronous and single-threaded. There is no
// cancellation: the only abnormal exit is a scheduling or shape error,
// which is fatal for that compilation and never retried internally.
package compiler
