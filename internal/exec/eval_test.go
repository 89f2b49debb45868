package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loopkit/loopc/internal/ir"
)

// evalIn is a test helper running one expression in an environment.
func evalIn(t *testing.T, env Env, expr ir.Expr) (Value, error) {
	t.Helper()
	return NewEngine().eval(expr, env, "test")
}

// TestEval_Arithmetic tests the integer op tags.
func TestEval_Arithmetic(t *testing.T) {
	env := Env{"a": Int(7), "b": Int(3)}

	cases := []struct {
		tag  string
		want int64
	}{
		{"add", 10},
		{"sub", 4},
		{"mul", 21},
		{"div", 2},
		{"mod", 1},
	}
	for _, c := range cases {
		got, err := evalIn(t, env, ir.Bin(c.tag, ir.Id("a"), ir.Id("b")))
		require.NoError(t, err, c.tag)
		assert.Equal(t, Value(Int(c.want)), got, c.tag)
	}
}

// TestEval_Comparisons tests the boolean op tags.
func TestEval_Comparisons(t *testing.T) {
	env := Env{"a": Int(2), "b": Int(3)}

	cases := []struct {
		tag  string
		want bool
	}{
		{"le", true}, {"lt", true}, {"ge", false},
		{"gt", false}, {"eq", false}, {"ne", true},
	}
	for _, c := range cases {
		got, err := evalIn(t, env, ir.Bin(c.tag, ir.Id("a"), ir.Id("b")))
		require.NoError(t, err, c.tag)
		assert.Equal(t, Value(Bool(c.want)), got, c.tag)
	}
}

// TestEval_ShortCircuit tests that and/or skip the right operand when
// the result is already decided. The right operand here would fail
// with an unbound identifier if evaluated.
func TestEval_ShortCircuit(t *testing.T) {
	env := Env{"f": Bool(false), "tr": Bool(true)}

	got, err := evalIn(t, env, ir.Bin("and", ir.Id("f"), ir.Id("boom")))
	require.NoError(t, err)
	assert.Equal(t, Value(Bool(false)), got)

	got, err = evalIn(t, env, ir.Bin("or", ir.Id("tr"), ir.Id("boom")))
	require.NoError(t, err)
	assert.Equal(t, Value(Bool(true)), got)
}

// TestEval_DivByZero tests the structured division error.
func TestEval_DivByZero(t *testing.T) {
	_, err := evalIn(t, Env{}, ir.Bin("div", ir.Num(1), ir.Num(0)))
	require.Error(t, err)
	code, ok := IsRuntimeError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeDivByZero, code)
}

// TestEval_UnboundIdent tests the unbound identifier error.
func TestEval_UnboundIdent(t *testing.T) {
	_, err := evalIn(t, Env{}, ir.Id("ghost"))
	require.Error(t, err)
	code, ok := IsRuntimeError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeUnboundIdent, code)
}

// TestEval_UnknownCallee tests the missing-builtin error.
func TestEval_UnknownCallee(t *testing.T) {
	_, err := evalIn(t, Env{}, ir.Call{Callee: "nonesuch"})
	require.Error(t, err)
	code, ok := IsRuntimeError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeUnknownCallee, code)
}

// TestEval_IndexOutOfRange tests bounds checking on reads and writes.
func TestEval_IndexOutOfRange(t *testing.T) {
	env := Env{"v": Ints(1, 2, 3)}

	_, err := evalIn(t, env, ir.Index(ir.Id("v"), ir.Num(3)))
	require.Error(t, err)
	code, ok := IsRuntimeError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeBadIndex, code)

	_, err = evalIn(t, env, ir.Index(ir.Id("v"), ir.Num(-1)))
	require.Error(t, err)
}

// TestEval_AssignPlain tests binding through a bare identifier target.
func TestEval_AssignPlain(t *testing.T) {
	env := Env{}
	got, err := evalIn(t, env, ir.Assign{Target: ir.Id("x"), Value: ir.Num(5)})
	require.NoError(t, err)
	assert.Equal(t, Value(Int(5)), got, "assignment evaluates to its value")
	assert.Equal(t, Value(Int(5)), env["x"])
}

// TestEval_AssignIndexed tests in-place vector mutation.
func TestEval_AssignIndexed(t *testing.T) {
	v := Ints(0, 0, 0)
	env := Env{"v": v}

	_, err := evalIn(t, env, ir.Assign{Target: ir.Index(ir.Id("v"), ir.Num(1)), Value: ir.Num(9)})
	require.NoError(t, err)
	assert.Equal(t, Ints(0, 9, 0), v)
}

// TestRunStmt_LoopAccumulates tests loop execution semantics: init
// from lower, inclusive upper test, step after each iteration.
func TestRunStmt_LoopAccumulates(t *testing.T) {
	e := NewEngine()
	env := Env{"s": Int(0), "n": Int(5)}

	// for i = 1 .. n: s = s + i
	loop := LoopStmt{
		Var:   "i",
		Lower: ir.Num(1),
		Upper: ir.Id("n"),
		Step:  ir.Assign{Target: ir.Id("i"), Value: ir.Bin("add", ir.Id("i"), ir.Num(1))},
		Body: []Stmt{
			EvalStmt{Expr: ir.Assign{Target: ir.Id("s"), Value: ir.Bin("add", ir.Id("s"), ir.Id("i"))}},
		},
	}

	require.NoError(t, e.runStmt(loop, env, "test"))
	assert.Equal(t, Value(Int(15)), env["s"])
	assert.Equal(t, Value(Int(6)), env["i"])
}

// TestRunStmt_EmptyRange tests that a loop whose lower bound exceeds
// its upper bound executes zero iterations.
func TestRunStmt_EmptyRange(t *testing.T) {
	e := NewEngine()
	env := Env{"s": Int(0)}

	loop := LoopStmt{
		Var:   "i",
		Lower: ir.Num(5),
		Upper: ir.Num(1),
		Step:  ir.Assign{Target: ir.Id("i"), Value: ir.Bin("add", ir.Id("i"), ir.Num(1))},
		Body: []Stmt{
			EvalStmt{Expr: ir.Assign{Target: ir.Id("s"), Value: ir.Num(99)}},
		},
	}

	require.NoError(t, e.runStmt(loop, env, "test"))
	assert.Equal(t, Value(Int(0)), env["s"])
	assert.Equal(t, Value(Int(5)), env["i"], "loop variable is still initialized")
}

// TestBuiltins_Defaults tests the stock builtin table.
func TestBuiltins_Defaults(t *testing.T) {
	env := Env{"v": Ints(4, 2, 9)}

	got, err := evalIn(t, env, ir.Call{Callee: "min", Args: []ir.Expr{ir.Num(3), ir.Num(7)}})
	require.NoError(t, err)
	assert.Equal(t, Value(Int(3)), got)

	got, err = evalIn(t, env, ir.Call{Callee: "max", Args: []ir.Expr{ir.Num(3), ir.Num(7)}})
	require.NoError(t, err)
	assert.Equal(t, Value(Int(7)), got)

	got, err = evalIn(t, env, ir.Call{Callee: "abs", Args: []ir.Expr{ir.Num(-4)}})
	require.NoError(t, err)
	assert.Equal(t, Value(Int(4)), got)

	got, err = evalIn(t, env, ir.Call{Callee: "len", Args: []ir.Expr{ir.Id("v")}})
	require.NoError(t, err)
	assert.Equal(t, Value(Int(3)), got)
}
