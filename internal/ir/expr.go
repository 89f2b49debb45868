package ir

// Expr is a sealed interface representing a symbolic expression.
// Only Ident, Lit, Call, Assign, and Op implement this.
// Expressions are immutable once built; passes that rewrite programs
// build new trees rather than mutating existing ones.
type Expr interface {
	expr() // Sealed - only these types implement it
}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
}

func (Ident) expr() {}

// Lit is an integer literal.
// Always int64, never float64 - floats break deterministic hashing
// and have no place in loop bounds or recurrences.
type Lit struct {
	Val int64
}

func (Lit) expr() {}

// Call is a function application. The callee is a plain name, not an
// expression: loopc has no first-class functions, so indirect calls
// cannot be expressed.
type Call struct {
	Callee string
	Args   []Expr
}

func (Call) expr() {}

// Assign binds the value expression to the target expression.
// The target is normally an Ident or an index Op; anything that cannot
// be descended to a bare Ident is rejected by the dependency analyzer.
type Assign struct {
	Target Expr
	Value  Expr
}

func (Assign) expr() {}

// Op covers every other compound syntactic form under a tag: arithmetic
// ("add", "mul", ...), comparisons ("le", "lt", ...), indexing ("index"),
// and loop-recurrence increments. Args are ordered.
type Op struct {
	Tag  string
	Args []Expr
}

func (Op) expr() {}

// Id constructs an Ident.
func Id(name string) Ident {
	return Ident{Name: name}
}

// Num constructs a Lit.
func Num(v int64) Lit {
	return Lit{Val: v}
}

// Bin constructs a two-argument Op.
// Example: Bin("add", Id("i"), Num(1)) for i + 1.
func Bin(tag string, left, right Expr) Op {
	return Op{Tag: tag, Args: []Expr{left, right}}
}

// Index constructs an "index" Op: base[idx].
func Index(base, idx Expr) Op {
	return Op{Tag: "index", Args: []Expr{base, idx}}
}

// Subexprs returns the ordered direct children of an expression.
// Ident and Lit have none. For Call the callee is a name, not a child.
func Subexprs(e Expr) []Expr {
	switch v := e.(type) {
	case Ident, Lit:
		return nil
	case Call:
		return v.Args
	case Assign:
		return []Expr{v.Target, v.Value}
	case Op:
		return v.Args
	default:
		return nil
	}
}

// ContainsIdent reports whether the identifier name occurs anywhere in
// the expression tree, at any depth.
func ContainsIdent(e Expr, name string) bool {
	if id, ok := e.(Ident); ok {
		return id.Name == name
	}
	for _, sub := range Subexprs(e) {
		if ContainsIdent(sub, name) {
			return true
		}
	}
	return false
}
