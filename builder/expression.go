package builder

import (
	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/parser"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/symbols"
)

func (b *Builder) buildExpr(n *parser.Node, parent *ast.ID, scope *symbols.Scope) ast.Expression {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case "nat_literal":
		return b.buildNatLiteral(n, parent)
	case "str_literal":
		return b.buildStrLiteral(n, parent)
	case "bool_literal":
		return b.buildBoolLiteral(n, parent)
	case "identifier":
		return b.buildIdentifierRef(n, parent, scope)
	case "conditional_expr":
		return b.buildConditional(n, parent, scope)
	case "binary_expr":
		return b.buildBinary(n, parent, scope)
	case "unary_expr":
		return b.buildUnary(n, parent, scope)
	case "cast_expr":
		return b.buildCast(n, parent, scope)
	case "disclose_expr":
		return b.buildDisclose(n, parent, scope)
	case "index_access_expr":
		return b.buildIndexAccess(n, parent, scope)
	case "member_access_expr":
		return b.buildMemberAccess(n, parent, scope)
	case "call_expr":
		return b.buildFunctionCall(n, parent, scope)
	case "map_expr":
		return b.buildMap(n, parent, scope)
	case "fold_expr":
		return b.buildFold(n, parent, scope)
	case "struct_term":
		return b.buildStructExpr(n, parent, scope)
	case "sequence_expr", "array_literal":
		return b.buildSequence(n, parent, scope)
	case "default_expr":
		return b.buildDefault(n, parent)
	}
	return nil
}

func (b *Builder) buildConditional(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Conditional {
	base, id := b.base(n)
	c := &ast.Conditional{Base: base}
	pid := idPtr(id)
	b.emit(c, parent)
	c.Condition = b.buildExpr(n.ChildByFieldName("condition"), pid, scope)
	c.Then = b.buildExpr(n.ChildByFieldName("then"), pid, scope)
	c.Else = b.buildExpr(n.ChildByFieldName("else"), pid, scope)
	return c
}

var binOps = map[string]ast.BinOp{
	"+": ast.OpAdd, "-": ast.OpSub, "*": ast.OpMul, "/": ast.OpDiv, "%": ast.OpMod,
	"**": ast.OpPow, "==": ast.OpEqEq, "!=": ast.OpNeqEq, "<": ast.OpLess,
	"<=": ast.OpLessEq, ">": ast.OpGreater, ">=": ast.OpGreaterEq,
	"&&": ast.OpAnd, "||": ast.OpOr, "&": ast.OpBitAnd, "|": ast.OpBitOr,
	"^": ast.OpBitXor, "<<": ast.OpShl, ">>": ast.OpShr,
}

func (b *Builder) buildBinary(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Binary {
	base, id := b.base(n)
	bin := &ast.Binary{Base: base}
	pid := idPtr(id)
	b.emit(bin, parent)
	bin.Op = binOps[n.ChildByFieldName("operator").Text()]
	bin.Left = b.buildExpr(n.ChildByFieldName("left"), pid, scope)
	bin.Right = b.buildExpr(n.ChildByFieldName("right"), pid, scope)
	return bin
}

func (b *Builder) buildUnary(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Unary {
	base, id := b.base(n)
	u := &ast.Unary{Base: base}
	pid := idPtr(id)
	b.emit(u, parent)
	if n.ChildByFieldName("operator").Text() == "!" {
		u.Op = ast.OpNot
	} else {
		u.Op = ast.OpNeg
	}
	u.Operand = b.buildExpr(n.ChildByFieldName("operand"), pid, scope)
	return u
}

func (b *Builder) buildCast(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Cast {
	base, id := b.base(n)
	c := &ast.Cast{Base: base}
	pid := idPtr(id)
	b.emit(c, parent)
	c.Value = b.buildExpr(n.ChildByFieldName("value"), pid, scope)
	c.Ty = b.buildType(n.ChildByFieldName("type"), pid)
	return c
}

func (b *Builder) buildDisclose(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Disclose {
	base, id := b.base(n)
	d := &ast.Disclose{Base: base}
	pid := idPtr(id)
	b.emit(d, parent)
	d.Value = b.buildExpr(n.ChildByFieldName("value"), pid, scope)
	return d
}

func (b *Builder) buildIndexAccess(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.IndexAccess {
	base, id := b.base(n)
	ia := &ast.IndexAccess{Base: base}
	pid := idPtr(id)
	b.emit(ia, parent)
	ia.Target = b.buildExpr(n.ChildByFieldName("base"), pid, scope)
	ia.Index = b.buildExpr(n.ChildByFieldName("index"), pid, scope)
	return ia
}

func (b *Builder) buildMemberAccess(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.MemberAccess {
	base, id := b.base(n)
	m := &ast.MemberAccess{Base: base}
	pid := idPtr(id)
	b.emit(m, parent)
	m.Target = b.buildExpr(n.ChildByFieldName("base"), pid, scope)
	if member := n.ChildByFieldName("member"); member != nil {
		m.Member = member.Text()
	}
	if argsNode := n.ChildByFieldName("arguments"); argsNode != nil {
		args := b.buildExprList(argsNode, pid, scope)
		m.Arguments = &args
	}
	return m
}

func (b *Builder) buildExprList(n *parser.Node, parent *ast.ID, scope *symbols.Scope) []ast.Expression {
	var out []ast.Expression
	for _, a := range n.ChildrenByFieldName("argument") {
		out = append(out, b.buildExpr(a, parent, scope))
	}
	return out
}

func (b *Builder) buildFunctionCall(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.FunctionCall {
	base, id := b.base(n)
	fc := &ast.FunctionCall{Base: base}
	pid := idPtr(id)
	b.emit(fc, parent)
	fc.Function = b.buildFunctionNamed(n.ChildByFieldName("function"), pid)
	if argsNode := n.ChildByFieldName("arguments"); argsNode != nil {
		fc.Arguments = b.buildExprList(argsNode, pid, scope)
	}
	return fc
}

func (b *Builder) buildFunctionNamed(n *parser.Node, parent *ast.ID) *ast.Named {
	if n == nil {
		return nil
	}
	base, _ := b.base(n)
	named := &ast.Named{Base: base, Name: n.Text()}
	b.emit(named, parent)
	return named
}

func (b *Builder) buildMap(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Map {
	base, id := b.base(n)
	m := &ast.Map{Base: base}
	pid := idPtr(id)
	b.emit(m, parent)
	m.Func = b.buildFunctionValue(n.ChildByFieldName("func"), pid, scope)
	for _, arg := range n.ChildrenByFieldName("arg") {
		m.Seq = append(m.Seq, b.buildExpr(arg, pid, scope))
	}
	return m
}

func (b *Builder) buildFold(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Fold {
	base, id := b.base(n)
	f := &ast.Fold{Base: base}
	pid := idPtr(id)
	b.emit(f, parent)
	f.Func = b.buildFunctionValue(n.ChildByFieldName("func"), pid, scope)
	args := n.ChildrenByFieldName("arg")
	if len(args) > 0 {
		f.Init = b.buildExpr(args[0], pid, scope)
	}
	if len(args) > 1 {
		f.Seq = b.buildExpr(args[1], pid, scope)
	}
	return f
}

// buildFunctionValue builds the function-value argument to map/fold: either
// a bare name reference or a call expression's callee, reduced to a Named
// function reference (anonymous inline lambdas are not produced by this
// grammar).
func (b *Builder) buildFunctionValue(n *parser.Node, parent *ast.ID, scope *symbols.Scope) ast.Function {
	if n == nil {
		return nil
	}
	if n.Kind == "call_expr" {
		return b.buildFunctionNamed(n.ChildByFieldName("function"), parent)
	}
	return b.buildFunctionNamed(n, parent)
}

func (b *Builder) buildStructExpr(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.StructExpr {
	base, id := b.base(n)
	s := &ast.StructExpr{Base: base}
	pid := idPtr(id)
	b.emit(s, parent)
	if typeName := n.ChildByFieldName("type_name"); typeName != nil {
		s.TypeName = typeName.Text()
	}
	for _, arg := range n.ChildrenByFieldName("struct_arg") {
		s.Args = append(s.Args, b.buildStructExprArg(arg, pid, scope))
	}
	return s
}

func (b *Builder) buildStructExprArg(n *parser.Node, parent *ast.ID, scope *symbols.Scope) ast.StructExprArg {
	switch n.Kind {
	case "struct_named_filed_initializer":
		base, id := b.base(n)
		na := &ast.NamedArg{Base: base}
		pid := idPtr(id)
		b.emit(na, parent)
		if name := n.ChildByFieldName("name"); name != nil {
			na.Name = name.Text()
		}
		na.Value = b.buildExpr(n.ChildByFieldName("value"), pid, scope)
		return na
	case "struct_update_field":
		base, id := b.base(n)
		ua := &ast.UpdateArg{Base: base}
		pid := idPtr(id)
		b.emit(ua, parent)
		ua.Value = b.buildExpr(n.ChildByFieldName("value"), pid, scope)
		if ident, ok := ua.Value.(*ast.Identifier); ok {
			ua.Name = ident.Name
		}
		return ua
	default: // struct_arg_positional
		base, id := b.base(n)
		pa := &ast.PositionalArg{Base: base}
		pid := idPtr(id)
		b.emit(pa, parent)
		pa.Value = b.buildExpr(n.ChildByFieldName("value"), pid, scope)
		return pa
	}
}

func (b *Builder) buildSequence(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Sequence {
	base, id := b.base(n)
	s := &ast.Sequence{Base: base}
	pid := idPtr(id)
	b.emit(s, parent)
	for _, el := range n.ChildrenByFieldName("element") {
		s.Elements = append(s.Elements, b.buildExpr(el, pid, scope))
	}
	return s
}

func (b *Builder) buildDefault(n *parser.Node, parent *ast.ID) *ast.Default {
	base, id := b.base(n)
	d := &ast.Default{Base: base}
	pid := idPtr(id)
	b.emit(d, parent)
	d.Ty = b.buildType(n.ChildByFieldName("type"), pid)
	return d
}
