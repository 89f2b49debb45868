package exec

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Builtin is a host function callable from generated programs.
type Builtin func(args []Value) (Value, error)

// Handle identifies a registered program. The ID is opaque and unique
// per registration; Name and Params are carried for display and
// argument construction.
type Handle struct {
	ID     string
	Name   string
	Params []string
}

// Engine is the program registry and evaluator. One Engine can hold
// many registered programs; registration and lookup are safe for
// concurrent use. Invocation itself is synchronous.
type Engine struct {
	mu       sync.RWMutex
	programs map[string]*Program // handle id -> program
	names    map[string]string   // program name -> handle id
	builtins map[string]Builtin
}

// NewEngine creates an Engine with the default builtin table.
func NewEngine() *Engine {
	e := &Engine{
		programs: make(map[string]*Program),
		names:    make(map[string]string),
		builtins: make(map[string]Builtin),
	}
	registerDefaultBuiltins(e)
	return e
}

// RegisterBuiltin installs a host function under a callee name,
// replacing any previous binding. Generated programs reach host
// functionality exclusively through this table - there is no other
// escape hatch.
func (e *Engine) RegisterBuiltin(name string, fn Builtin) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.builtins[name] = fn
}

// Register installs a program and returns its invocation handle.
// Program names must be unique within an engine; the compiler
// guarantees this by minting uuid-suffixed names, but external callers
// get a structured error rather than a silent overwrite.
func (e *Engine) Register(p *Program) (Handle, error) {
	if p == nil || p.Name == "" {
		return Handle{}, runtimeErrf(ErrCodeDuplicateProgram, "", "program must have a name")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, taken := e.names[p.Name]; taken {
		return Handle{}, runtimeErrf(ErrCodeDuplicateProgram, p.Name, "program name already registered")
	}

	id := uuid.NewString()
	e.programs[id] = p
	e.names[p.Name] = id

	return Handle{ID: id, Name: p.Name, Params: append([]string(nil), p.Params...)}, nil
}

// Lookup resolves a handle ID to its program.
func (e *Engine) Lookup(id string) (*Program, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p, ok := e.programs[id]
	return p, ok
}

// Invoke runs a registered program with named argument values and
// returns the final environment. The argument map must match the
// program's parameter list exactly: every parameter supplied, no
// extras. Vector arguments are shared, not copied, so indexed writes
// are visible to the caller.
func (e *Engine) Invoke(h Handle, args map[string]Value) (Env, error) {
	p, ok := e.Lookup(h.ID)
	if !ok {
		return nil, runtimeErrf(ErrCodeUnknownProgram, h.Name, "no program for handle %s", h.ID)
	}

	if err := checkArgs(p, args); err != nil {
		return nil, err
	}

	env := make(Env, len(args))
	for name, v := range args {
		env[name] = v
	}

	if err := e.runStmts(p.Body, env, p.Name); err != nil {
		return nil, err
	}
	return env, nil
}

// checkArgs validates the argument map against the parameter list.
// Both directions are errors: a missing parameter would surface later
// as a confusing unbound-identifier failure mid-run, and an extra
// argument is almost always a caller typo.
func checkArgs(p *Program, args map[string]Value) error {
	var missing []string
	for _, param := range p.Params {
		if _, ok := args[param]; !ok {
			missing = append(missing, param)
		}
	}
	if len(missing) > 0 {
		return runtimeErrf(ErrCodeBadArgs, p.Name, "missing arguments: %v", missing)
	}

	if len(args) > len(p.Params) {
		known := make(map[string]bool, len(p.Params))
		for _, param := range p.Params {
			known[param] = true
		}
		var extra []string
		for name := range args {
			if !known[name] {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		return runtimeErrf(ErrCodeBadArgs, p.Name, "unknown arguments: %v", extra)
	}

	return nil
}

// registerDefaultBuiltins installs the stock host functions every
// engine carries.
func registerDefaultBuiltins(e *Engine) {
	e.builtins["min"] = func(args []Value) (Value, error) {
		return intFold("min", args, func(a, b int64) int64 {
			if b < a {
				return b
			}
			return a
		})
	}
	e.builtins["max"] = func(args []Value) (Value, error) {
		return intFold("max", args, func(a, b int64) int64 {
			if b > a {
				return b
			}
			return a
		})
	}
	e.builtins["abs"] = func(args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("abs expects 1 argument, got %d", len(args))
		}
		n, ok := args[0].(Int)
		if !ok {
			return nil, fmt.Errorf("abs expects an integer, got %T", args[0])
		}
		if n < 0 {
			return -n, nil
		}
		return n, nil
	}
	e.builtins["len"] = func(args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("len expects 1 argument, got %d", len(args))
		}
		v, ok := args[0].(Vec)
		if !ok {
			return nil, fmt.Errorf("len expects a vector, got %T", args[0])
		}
		return Int(len(v)), nil
	}
}

func intFold(name string, args []Value, fold func(a, b int64) int64) (Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s expects at least 1 argument", name)
	}
	first, ok := args[0].(Int)
	if !ok {
		return nil, fmt.Errorf("%s expects integers, got %T", name, args[0])
	}
	acc := int64(first)
	for _, a := range args[1:] {
		n, ok := a.(Int)
		if !ok {
			return nil, fmt.Errorf("%s expects integers, got %T", name, a)
		}
		acc = fold(acc, int64(n))
	}
	return Int(acc), nil
}
