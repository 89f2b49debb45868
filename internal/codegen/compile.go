package codegen

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/loopkit/loopc/internal/compiler"
	"github.com/loopkit/loopc/internal/exec"
	"github.com/loopkit/loopc/internal/ir"
)

// Compile runs the full pipeline on a kernel and registers the result
// with the engine: schedule, lower, compute the free-variable parameter
// list, wrap everything in a uniquely named program, register. The
// returned handle is immediately invocable with the named arguments it
// carries.
//
// Compile mutates the kernel (dependency inference and nesting are
// destructive); compiling the same instance twice duplicates inferred
// edges and is NOT supported - build a fresh kernel per compilation.
// Either a fully registered program is produced or nothing is; there
// is no partial result.
func Compile(k *ir.Kernel, engine *exec.Engine) (exec.Handle, error) {
	program, err := Construct(k)
	if err != nil {
		return exec.Handle{}, err
	}
	return engine.Register(program)
}

// CompileToTree runs the pipeline and returns the lowered statement
// sequence without registering a callable, for callers that want to
// feed a different backend.
func CompileToTree(k *ir.Kernel) ([]exec.Stmt, error) {
	schedule, err := compiler.Schedule(k)
	if err != nil {
		return nil, err
	}
	return Lower(schedule), nil
}

// Construct builds the complete unregistered program: lowered body,
// free-variable parameter list, and a fresh unique name. Split out of
// Compile so the CLI can render and persist a program it also
// registers.
func Construct(k *ir.Kernel) (*exec.Program, error) {
	schedule, err := compiler.Schedule(k)
	if err != nil {
		return nil, err
	}
	return &exec.Program{
		Name:   freshName(),
		Params: compiler.KernelArguments(k),
		Body:   Lower(schedule),
	}, nil
}

// freshName mints a unique program name. The uuid suffix guarantees
// uniqueness within and across engines without any registry roundtrip.
func freshName() string {
	return fmt.Sprintf("kernel_%s", uuid.NewString()[:8])
}

// CanonicalBody encodes a program body as RFC 8785 canonical JSON,
// the form the registry persists and hashes.
func CanonicalBody(p *exec.Program) ([]byte, error) {
	return ir.MarshalCanonical(map[string]any{
		"params": paramsToAny(p.Params),
		"body":   exec.StmtsToAny(p.Body),
	})
}

func paramsToAny(params []string) []any {
	out := make([]any, len(params))
	for i, p := range params {
		out[i] = p
	}
	return out
}
