package exec

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a sealed interface representing runtime values.
// Only Int, Bool, and Vec implement this. NO floats - the IR forbids
// them and the evaluator follows suit.
type Value interface {
	value() // Sealed - only these types implement it
}

// Int is the integer runtime value. Always int64.
type Int int64

func (Int) value() {}

// Bool is the boolean runtime value, produced by comparison ops.
type Bool bool

func (Bool) value() {}

// Vec is mutable vector storage. Programs write through indexed
// assignment targets into the same backing array the caller supplied,
// so results are visible to the caller after Invoke returns.
type Vec []Value

func (Vec) value() {}

// NewVec allocates a zero-filled vector of length n.
func NewVec(n int) Vec {
	v := make(Vec, n)
	for i := range v {
		v[i] = Int(0)
	}
	return v
}

// Ints builds a Vec from int64 elements.
func Ints(xs ...int64) Vec {
	v := make(Vec, len(xs))
	for i, x := range xs {
		v[i] = Int(x)
	}
	return v
}

// ParseValue parses the CLI argument encodings: a decimal integer
// ("42"), a boolean ("true"/"false"), or a comma-separated integer
// vector ("1,2,3"). A single integer is never treated as a vector.
func ParseValue(s string) (Value, error) {
	switch s {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		v := make(Vec, len(parts))
		for i, p := range parts {
			n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("vector element %d: %w", i, err)
			}
			v[i] = Int(n)
		}
		return v, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("not an integer, boolean, or vector: %q", s)
	}
	return Int(n), nil
}

// FormatValue renders a value in the same encoding ParseValue accepts.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case Int:
		return strconv.FormatInt(int64(val), 10)
	case Bool:
		return strconv.FormatBool(bool(val))
	case Vec:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = FormatValue(elem)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("<%T>", v)
	}
}
