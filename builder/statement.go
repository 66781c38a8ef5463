package builder

import (
	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/parser"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/symbols"
)

func (b *Builder) buildBlock(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Block {
	if n == nil {
		return nil
	}
	base, id := b.base(n)
	block := &ast.Block{Base: base}
	pid := idPtr(id)
	b.emit(block, parent)
	blockScope := symbols.NewScope(symbols.KindBlock, "", scope)
	for _, s := range n.ChildrenByFieldName("statement") {
		block.Statements = append(block.Statements, b.buildStatement(s, pid, blockScope))
	}
	return block
}

func (b *Builder) buildStatement(n *parser.Node, parent *ast.ID, scope *symbols.Scope) ast.Statement {
	switch n.Kind {
	case "assert_stmt":
		return b.buildAssert(n, parent, scope)
	case "const_stmt":
		return b.buildConst(n, parent, scope)
	case "if_stmt":
		return b.buildIf(n, parent, scope)
	case "for_stmt":
		return b.buildFor(n, parent, scope)
	case "return_stmt":
		return b.buildReturn(n, parent, scope)
	case "block":
		return b.buildBlock(n, parent, scope)
	case "assign_stmt":
		return b.buildAssign(n, parent, scope)
	case "expr_seq_stmt":
		return b.buildExprSeqStatement(n, parent, scope)
	case "expr_stmt":
		return b.buildExprStatement(n, parent, scope)
	}
	return nil
}

func (b *Builder) buildAssert(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Assert {
	base, id := b.base(n)
	a := &ast.Assert{Base: base}
	pid := idPtr(id)
	b.emit(a, parent)
	a.Condition = b.buildExpr(n.ChildByFieldName("condition"), pid, scope)
	if msg := n.ChildByFieldName("message"); msg != nil {
		text := unquote(msg.Text())
		a.Msg = &text
	}
	return a
}

func (b *Builder) buildConst(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Const {
	base, id := b.base(n)
	c := &ast.Const{Base: base}
	pid := idPtr(id)
	b.emit(c, parent)
	c.Ty = b.buildType(n.ChildByFieldName("type"), pid)
	c.Value = b.buildExpr(n.ChildByFieldName("value"), pid, scope)
	ty := c.Ty
	if ty == nil {
		ty = inferExprType(c.Value)
	}
	c.Pattern = b.buildPattern(n.ChildByFieldName("pattern"), pid, scope, ty)
	return c
}

// inferExprType makes a best-effort guess at an expression's static type
// from its literal surface form, used only to seed a Const's symbol
// binding when no explicit type annotation is present.
func inferExprType(e ast.Expression) ast.Type {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return nil
	}
	switch lit.Kind {
	case ast.LiteralNat:
		return &ast.Nat{}
	case ast.LiteralBool:
		return &ast.Bool{}
	case ast.LiteralStr:
		return &ast.String{}
	}
	return nil
}

func (b *Builder) buildIf(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.If {
	base, id := b.base(n)
	f := &ast.If{Base: base}
	pid := idPtr(id)
	b.emit(f, parent)
	f.Condition = b.buildExpr(n.ChildByFieldName("condition"), pid, scope)
	f.ThenBranch = b.buildStatement(n.ChildByFieldName("then"), pid, scope)
	if els := n.ChildByFieldName("else"); els != nil {
		f.ElseBranch = b.buildStatement(els, pid, scope)
	}
	return f
}

func (b *Builder) buildFor(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.For {
	base, id := b.base(n)
	f := &ast.For{Base: base}
	pid := idPtr(id)
	b.emit(f, parent)

	forScope := symbols.NewScope(symbols.KindBlock, "", scope)
	f.Counter = b.buildIdentifier(n.ChildByFieldName("counter"), pid)
	if f.Counter != nil {
		_ = b.Table.Bind(forScope, f.Counter.ID(), f.Counter.Name, &ast.Nat{})
	}

	if rangeNode := n.ChildByFieldName("range"); rangeNode != nil {
		lower := b.buildLiteralExpr(rangeNode.ChildByFieldName("lower"), pid, forScope)
		upper := b.buildLiteralExpr(rangeNode.ChildByFieldName("upper"), pid, forScope)
		f.Range = &ast.ForRange{Lower: lower, Upper: upper}
	} else if limit := n.ChildByFieldName("limit"); limit != nil {
		f.Limit = b.buildExpr(limit, pid, forScope)
	}
	f.Body = b.buildStatement(n.ChildByFieldName("body"), pid, forScope)
	return f
}

// buildLiteralExpr builds an expression expected to be a nat literal (the
// bounds of a `const i of lower..upper` range), coercing to nil when the
// surface form isn't a literal.
func (b *Builder) buildLiteralExpr(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Literal {
	if n == nil {
		return nil
	}
	expr := b.buildExpr(n, parent, scope)
	lit, _ := expr.(*ast.Literal)
	return lit
}

func (b *Builder) buildReturn(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Return {
	base, id := b.base(n)
	r := &ast.Return{Base: base}
	pid := idPtr(id)
	b.emit(r, parent)
	if v := n.ChildByFieldName("value"); v != nil {
		r.Value = b.buildExpr(v, pid, scope)
	}
	return r
}

func (b *Builder) buildAssign(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Assign {
	base, id := b.base(n)
	a := &ast.Assign{Base: base}
	pid := idPtr(id)
	b.emit(a, parent)
	switch opText := n.ChildByFieldName("op").Text(); opText {
	case "+=":
		a.Op = ast.AssignAddEq
	case "-=":
		a.Op = ast.AssignSubEq
	default:
		a.Op = ast.AssignEq
	}
	a.Target = b.buildExpr(n.ChildByFieldName("target"), pid, scope)
	a.Value = b.buildExpr(n.ChildByFieldName("value"), pid, scope)
	return a
}

func (b *Builder) buildExprSeqStatement(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.ExpressionSequence {
	base, id := b.base(n)
	e := &ast.ExpressionSequence{Base: base}
	pid := idPtr(id)
	b.emit(e, parent)
	for _, expr := range n.ChildrenByFieldName("expr") {
		e.Expressions = append(e.Expressions, b.buildExpr(expr, pid, scope))
	}
	return e
}

func (b *Builder) buildExprStatement(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.ExprStatement {
	base, id := b.base(n)
	e := &ast.ExprStatement{Base: base}
	pid := idPtr(id)
	b.emit(e, parent)
	e.Expr = b.buildExpr(n.ChildByFieldName("expr"), pid, scope)
	return e
}
