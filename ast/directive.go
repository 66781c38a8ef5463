package ast

// Directive is the category for compiler directives. The only variant is
// Pragma.
type Directive interface {
	Node
	directiveNode()
}

// RelOp is the relational operator attached to a Version inside a pragma
// expression.
type RelOp int

const (
	OpEq RelOp = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
)

func (op RelOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	}
	return "?"
}

// Version is a single version literal, optionally qualified by a relational
// operator, e.g. ">=1.2.3" or bare "1.2" (which defaults to Eq).
type Version struct {
	Base
	Major  int
	Minor  *int
	Bugfix *int
	Op     RelOp
}

func (v *Version) Children() []Node { return nil }

// VersionExpr is the boolean expression a pragma's version constraint
// parses to: a literal Version, or a binary And/Or of two sub-expressions.
type VersionExpr interface {
	versionExprNode()
}

func (*Version) versionExprNode() {}

// VersionAnd is the higher-precedence (&&) binary combinator.
type VersionAnd struct {
	Left, Right VersionExpr
}

func (*VersionAnd) versionExprNode() {}

// VersionOr is the lower-precedence (||) binary combinator.
type VersionOr struct {
	Left, Right VersionExpr
}

func (*VersionOr) versionExprNode() {}

// Pragma is the sole Directive variant: `pragma <identifier> <version-expr>;`.
type Pragma struct {
	Base
	VersionExpr VersionExpr
	Value       *Identifier
}

func (*Pragma) directiveNode() {}

func (p *Pragma) Children() []Node { return nil }

// Name returns the pragma's associated identifier name, e.g.
// "language_version".
func (p *Pragma) Name() string {
	if p.Value == nil {
		return ""
	}
	return p.Value.Name
}
