package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExprFromAny_Roundtrip tests that ToAny followed by FromAny
// reproduces the original expression for every variant.
func TestExprFromAny_Roundtrip(t *testing.T) {
	exprs := []Expr{
		Id("x"),
		Num(42),
		Call{Callee: "f", Args: []Expr{Id("a"), Num(2)}},
		Assign{Target: Index(Id("out"), Id("i")), Value: Bin("mul", Index(Id("in"), Id("i")), Id("c"))},
		Op{Tag: "neg", Args: []Expr{Id("x")}},
	}

	for _, want := range exprs {
		got, err := ExprFromAny(ExprToAny(want))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

// TestExprFromAny_RejectsFloats tests the no-float constraint.
func TestExprFromAny_RejectsFloats(t *testing.T) {
	_, err := ExprFromAny(map[string]any{"kind": "lit", "val": 1.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")
}

// TestExprFromAny_AcceptsIntEncodings tests the integer encodings the
// YAML and CUE front ends produce.
func TestExprFromAny_AcceptsIntEncodings(t *testing.T) {
	for _, val := range []any{3, int64(3)} {
		e, err := ExprFromAny(map[string]any{"kind": "lit", "val": val})
		require.NoError(t, err)
		assert.Equal(t, Expr(Num(3)), e)
	}
}

// TestExprFromAny_UnknownKind tests rejection of unknown variants.
func TestExprFromAny_UnknownKind(t *testing.T) {
	_, err := ExprFromAny(map[string]any{"kind": "lambda"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown expression kind")
}

// TestExprFromAny_MissingFields tests structural validation.
func TestExprFromAny_MissingFields(t *testing.T) {
	cases := []map[string]any{
		{"kind": "ident"},
		{"kind": "call"},
		{"kind": "op"},
		{"kind": "assign", "value": map[string]any{"kind": "lit", "val": 1}},
		{},
	}
	for _, c := range cases {
		_, err := ExprFromAny(c)
		assert.Error(t, err, "expected error for %v", c)
	}
}

// TestKernelFromAny tests decoding a full kernel description.
func TestKernelFromAny(t *testing.T) {
	raw := map[string]any{
		"instructions": []any{
			map[string]any{
				"iname": "s1",
				"body": map[string]any{
					"kind":   "assign",
					"target": map[string]any{"kind": "ident", "name": "y"},
					"value":  map[string]any{"kind": "lit", "val": 0},
				},
				"deps": []any{"s0"},
			},
		},
		"domains": []any{
			map[string]any{
				"iname": "i",
				"lower": map[string]any{"kind": "lit", "val": 1},
				"upper": map[string]any{"kind": "ident", "name": "n"},
				"step": map[string]any{
					"kind":   "assign",
					"target": map[string]any{"kind": "ident", "name": "i"},
					"value": map[string]any{
						"kind": "op", "tag": "add",
						"args": []any{
							map[string]any{"kind": "ident", "name": "i"},
							map[string]any{"kind": "lit", "val": 1},
						},
					},
				},
			},
		},
	}

	k, err := KernelFromAny(raw)
	require.NoError(t, err)
	require.Len(t, k.Instructions, 1)
	require.Len(t, k.Domains, 1)

	assert.Equal(t, "s1", k.Instructions[0].IName)
	assert.Equal(t, []string{"s0"}, k.Instructions[0].Deps, "pre-declared deps are preserved")
	assert.Equal(t, "i", k.Domains[0].IName)
	assert.Equal(t, Expr(Id("n")), k.Domains[0].Upper)
}

// TestKernelFromAny_BadInstruction tests error context propagation.
func TestKernelFromAny_BadInstruction(t *testing.T) {
	raw := map[string]any{
		"instructions": []any{
			map[string]any{"iname": "s1", "body": map[string]any{"kind": "nope"}},
		},
	}
	_, err := KernelFromAny(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instructions[0]")
	assert.Contains(t, err.Error(), "s1")
}
