package ast

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// PragmaTokKind tags a single token in a pragma's version-constraint
// expression, as handed to the shunting-yard parser by the builder.
type PragmaTokKind int

const (
	TokVersion PragmaTokKind = iota
	TokAnd
	TokOr
	TokLParen
	TokRParen
)

// PragmaToken is one lexical token of a pragma version expression.
type PragmaToken struct {
	Kind   PragmaTokKind
	Op     RelOp
	Major  int
	Minor  *int
	Bugfix *int
}

// ParseVersionExpr runs the shunting-yard algorithm described for pragma
// version constraints: literals are Version nodes (bare versions default to
// Eq), `&&` binds tighter than `||`, and parentheses override precedence.
func ParseVersionExpr(tokens []PragmaToken) (VersionExpr, error) {
	var output []VersionExpr
	var ops []PragmaTokKind

	precedence := func(k PragmaTokKind) int {
		switch k {
		case TokAnd:
			return 2
		case TokOr:
			return 1
		}
		return 0
	}

	applyOp := func(op PragmaTokKind) error {
		if len(output) < 2 {
			return fmt.Errorf("missing operand for operator")
		}
		right := output[len(output)-1]
		left := output[len(output)-2]
		output = output[:len(output)-2]
		switch op {
		case TokAnd:
			output = append(output, &VersionAnd{Left: left, Right: right})
		case TokOr:
			output = append(output, &VersionOr{Left: left, Right: right})
		default:
			return fmt.Errorf("unexpected operator on stack")
		}
		return nil
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokVersion:
			output = append(output, &Version{
				Major:  tok.Major,
				Minor:  tok.Minor,
				Bugfix: tok.Bugfix,
				Op:     tok.Op,
			})
		case TokLParen:
			ops = append(ops, TokLParen)
		case TokRParen:
			found := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top == TokLParen {
					found = true
					break
				}
				if err := applyOp(top); err != nil {
					return nil, err
				}
			}
			if !found {
				return nil, fmt.Errorf("mismatched parentheses")
			}
		case TokAnd, TokOr:
			for len(ops) > 0 && ops[len(ops)-1] != TokLParen && precedence(ops[len(ops)-1]) >= precedence(tok.Kind) {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if err := applyOp(top); err != nil {
					return nil, err
				}
			}
			ops = append(ops, tok.Kind)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top == TokLParen {
			return nil, fmt.Errorf("mismatched parentheses")
		}
		if err := applyOp(top); err != nil {
			return nil, err
		}
	}

	if len(output) != 1 {
		return nil, fmt.Errorf("trailing tokens in version expression")
	}
	return output[0], nil
}

// PrintVersionExpr renders a VersionExpr to its canonical textual form,
// used by the idempotent parse->print->parse property (P7).
func PrintVersionExpr(e VersionExpr) string {
	switch v := e.(type) {
	case *Version:
		return printVersion(v)
	case *VersionAnd:
		_, leftOr := v.Left.(*VersionOr)
		_, rightVersion := v.Right.(*Version)
		return fmt.Sprintf("%s && %s", printOperand(v.Left, leftOr), printOperand(v.Right, !rightVersion))
	case *VersionOr:
		_, rightOr := v.Right.(*VersionOr)
		return fmt.Sprintf("%s || %s", PrintVersionExpr(v.Left), printOperand(v.Right, rightOr))
	}
	return ""
}

// printOperand prints e, parenthesised when paren is set so that a reparse
// keeps the operand grouped as it is in the tree.
func printOperand(e VersionExpr, paren bool) string {
	if paren {
		return "(" + PrintVersionExpr(e) + ")"
	}
	return PrintVersionExpr(e)
}

func printVersion(v *Version) string {
	var b strings.Builder
	switch v.Op {
	case OpEq:
	case OpNeq:
		b.WriteString("!")
	default:
		b.WriteString(v.Op.String())
	}
	b.WriteString(strconv.Itoa(v.Major))
	if v.Minor != nil {
		b.WriteString(".")
		b.WriteString(strconv.Itoa(*v.Minor))
	}
	if v.Bugfix != nil {
		b.WriteString(".")
		b.WriteString(strconv.Itoa(*v.Bugfix))
	}
	return b.String()
}

// Semver renders a Version as a golang.org/x/mod/semver-compatible string
// ("v<major>.<minor>.<bugfix>", defaulting missing components to 0), so
// callers can use semver.Compare/semver.IsValid to reason about ordering
// independent of this package's own Version representation.
func (v *Version) Semver() string {
	minor := 0
	if v.Minor != nil {
		minor = *v.Minor
	}
	bugfix := 0
	if v.Bugfix != nil {
		bugfix = *v.Bugfix
	}
	s := fmt.Sprintf("v%d.%d.%d", v.Major, minor, bugfix)
	if !semver.IsValid(s) {
		return ""
	}
	return s
}

// Satisfies reports whether the concrete version string `against` (in
// "v1.2.3" form) satisfies this Version's relational constraint.
func (v *Version) Satisfies(against string) bool {
	self := v.Semver()
	if self == "" || !semver.IsValid(against) {
		return false
	}
	cmp := semver.Compare(against, self)
	switch v.Op {
	case OpEq:
		return cmp == 0
	case OpNeq:
		return cmp != 0
	case OpLt:
		return cmp < 0
	case OpLte:
		return cmp <= 0
	case OpGt:
		return cmp > 0
	case OpGte:
		return cmp >= 0
	}
	return false
}
