package ir

import (
	"encoding/json"
	"fmt"
)

// ExprFromAny decodes a generic map shape into an Expr.
//
// The wire shape is kind-tagged:
//
//	{kind: "ident", name: "x"}
//	{kind: "lit", val: 3}
//	{kind: "call", callee: "f", args: [...]}
//	{kind: "assign", target: {...}, value: {...}}
//	{kind: "op", tag: "add", args: [...]}
//
// This is the single funnel for every front end (CUE, YAML): loaders
// decode their format into generic maps and hand them here, so kernel
// authors never need an expression parser.
//
// Floats are rejected everywhere, matching the Lit constraint.
func ExprFromAny(v any) (Expr, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expression must be a map, got %T", v)
	}
	kind, ok := m["kind"].(string)
	if !ok {
		return nil, fmt.Errorf("expression missing string \"kind\" field")
	}

	switch kind {
	case "ident":
		name, ok := m["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("ident: missing or empty \"name\"")
		}
		return Ident{Name: name}, nil

	case "lit":
		val, err := intFromAny(m["val"])
		if err != nil {
			return nil, fmt.Errorf("lit: %w", err)
		}
		return Lit{Val: val}, nil

	case "call":
		callee, ok := m["callee"].(string)
		if !ok || callee == "" {
			return nil, fmt.Errorf("call: missing or empty \"callee\"")
		}
		args, err := exprListFromAny(m["args"])
		if err != nil {
			return nil, fmt.Errorf("call %q: %w", callee, err)
		}
		return Call{Callee: callee, Args: args}, nil

	case "assign":
		target, err := ExprFromAny(m["target"])
		if err != nil {
			return nil, fmt.Errorf("assign target: %w", err)
		}
		value, err := ExprFromAny(m["value"])
		if err != nil {
			return nil, fmt.Errorf("assign value: %w", err)
		}
		return Assign{Target: target, Value: value}, nil

	case "op":
		tag, ok := m["tag"].(string)
		if !ok || tag == "" {
			return nil, fmt.Errorf("op: missing or empty \"tag\"")
		}
		args, err := exprListFromAny(m["args"])
		if err != nil {
			return nil, fmt.Errorf("op %q: %w", tag, err)
		}
		return Op{Tag: tag, Args: args}, nil

	default:
		return nil, fmt.Errorf("unknown expression kind %q", kind)
	}
}

// exprListFromAny decodes an ordered list of expressions. A missing
// list is valid (zero-argument call or op).
func exprListFromAny(v any) ([]Expr, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("args must be a list, got %T", v)
	}
	args := make([]Expr, len(raw))
	for i, elem := range raw {
		e, err := ExprFromAny(elem)
		if err != nil {
			return nil, fmt.Errorf("args[%d]: %w", i, err)
		}
		args[i] = e
	}
	return args, nil
}

// intFromAny accepts the integer encodings the supported front ends
// produce. Floats are rejected: there is no float anywhere in the IR.
func intFromAny(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		return int64(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("floats are forbidden in the IR: %s", n)
		}
		return i, nil
	case float64, float32:
		return 0, fmt.Errorf("floats are forbidden in the IR: %v", v)
	case nil:
		return 0, fmt.Errorf("missing integer value")
	default:
		return 0, fmt.Errorf("unsupported integer encoding %T", v)
	}
}

// KernelFromAny decodes a generic map into a Kernel.
//
// Wire shape:
//
//	{
//	  instructions: [{iname: "s1", body: {...}, deps: ["s0"]?}, ...],
//	  domains: [{iname: "i", lower: {...}, upper: {...}, step: {...}, deps: [...]?}, ...],
//	}
//
// Pre-populated deps lists are preserved; the dependency analyzer
// appends to them.
func KernelFromAny(v any) (*Kernel, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("kernel must be a map, got %T", v)
	}

	k := &Kernel{}

	if raw, ok := m["instructions"].([]any); ok {
		for i, elem := range raw {
			in, err := instructionFromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("instructions[%d]: %w", i, err)
			}
			k.Instructions = append(k.Instructions, in)
		}
	}

	if raw, ok := m["domains"].([]any); ok {
		for i, elem := range raw {
			d, err := domainFromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("domains[%d]: %w", i, err)
			}
			k.Domains = append(k.Domains, d)
		}
	}

	return k, nil
}

func instructionFromAny(v any) (*Instruction, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("instruction must be a map, got %T", v)
	}
	iname, ok := m["iname"].(string)
	if !ok || iname == "" {
		return nil, fmt.Errorf("missing or empty \"iname\"")
	}
	body, err := ExprFromAny(m["body"])
	if err != nil {
		return nil, fmt.Errorf("%s: body: %w", iname, err)
	}
	deps, err := depsFromAny(m["deps"])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", iname, err)
	}
	return &Instruction{IName: iname, Body: body, Deps: deps}, nil
}

func domainFromAny(v any) (*Domain, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("domain must be a map, got %T", v)
	}
	iname, ok := m["iname"].(string)
	if !ok || iname == "" {
		return nil, fmt.Errorf("missing or empty \"iname\"")
	}

	d := &Domain{IName: iname}
	var err error
	if d.Lower, err = ExprFromAny(m["lower"]); err != nil {
		return nil, fmt.Errorf("%s: lower: %w", iname, err)
	}
	if d.Upper, err = ExprFromAny(m["upper"]); err != nil {
		return nil, fmt.Errorf("%s: upper: %w", iname, err)
	}
	if d.Step, err = ExprFromAny(m["step"]); err != nil {
		return nil, fmt.Errorf("%s: step: %w", iname, err)
	}
	if d.Deps, err = depsFromAny(m["deps"]); err != nil {
		return nil, fmt.Errorf("%s: %w", iname, err)
	}
	return d, nil
}

func depsFromAny(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("deps must be a list, got %T", v)
	}
	deps := make([]string, len(raw))
	for i, elem := range raw {
		s, ok := elem.(string)
		if !ok {
			return nil, fmt.Errorf("deps[%d]: must be a string, got %T", i, elem)
		}
		deps[i] = s
	}
	return deps, nil
}

// ExprToAny is the encode mirror of ExprFromAny. The output contains
// only strings, int64s, and nested maps/lists, so it feeds directly
// into MarshalCanonical for hashing.
func ExprToAny(e Expr) any {
	switch v := e.(type) {
	case Ident:
		return map[string]any{"kind": "ident", "name": v.Name}
	case Lit:
		return map[string]any{"kind": "lit", "val": v.Val}
	case Call:
		return map[string]any{"kind": "call", "callee": v.Callee, "args": exprListToAny(v.Args)}
	case Assign:
		return map[string]any{"kind": "assign", "target": ExprToAny(v.Target), "value": ExprToAny(v.Value)}
	case Op:
		return map[string]any{"kind": "op", "tag": v.Tag, "args": exprListToAny(v.Args)}
	default:
		return nil
	}
}

func exprListToAny(args []Expr) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = ExprToAny(a)
	}
	return out
}

// KernelToAny encodes a kernel as generic maps for canonical hashing.
// Deps are included: two kernels that differ only in declared
// dependencies are different compilation inputs.
func KernelToAny(k *Kernel) any {
	instructions := make([]any, len(k.Instructions))
	for i, in := range k.Instructions {
		instructions[i] = map[string]any{
			"kind":  "instruction",
			"iname": in.IName,
			"body":  ExprToAny(in.Body),
			"deps":  stringListToAny(in.Deps),
		}
	}
	domains := make([]any, len(k.Domains))
	for i, d := range k.Domains {
		body := make([]any, len(d.Body))
		for j, n := range d.Body {
			body[j] = n.Name() // by reference, bodies are not owned copies
		}
		domains[i] = map[string]any{
			"kind":  "domain",
			"iname": d.IName,
			"lower": ExprToAny(d.Lower),
			"upper": ExprToAny(d.Upper),
			"step":  ExprToAny(d.Step),
			"body":  body,
			"deps":  stringListToAny(d.Deps),
		}
	}
	return map[string]any{
		"instructions": instructions,
		"domains":      domains,
	}
}

func stringListToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
