// Package builder translates the concrete parser.Node tree into the typed
// ast node graph, mints each node's id, inserts it into a store.Store with
// its parent route, and binds the names it introduces into a symbols.Table.
package builder

import (
	"fmt"
	"strconv"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/parser"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/store"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/symbols"
)

// BuildError reports a failure translating the concrete tree into typed
// nodes: an unexpected shape, or a literal that fails validation.
type BuildError struct {
	Reason string
}

func (e *BuildError) Error() string { return fmt.Sprintf("build error: %s", e.Reason) }

// Builder mints node ids and populates a Store/Table pair shared across
// every file built into one codebase.
type Builder struct {
	Store *store.Store
	Table *symbols.Table
	next  ast.ID

	fileScopes map[ast.ID]*symbols.Scope
}

// New returns a Builder that mints ids starting at 0.
func New(st *store.Store, table *symbols.Table) *Builder {
	return &Builder{Store: st, Table: table, fileScopes: make(map[ast.ID]*symbols.Scope)}
}

// ScopeOf returns the file-level scope BuildFile created for prog's own
// top-level declarations.
func (b *Builder) ScopeOf(prog *ast.Program) (*symbols.Scope, bool) {
	scope, ok := b.fileScopes[prog.ID()]
	return scope, ok
}

func (b *Builder) nextID() ast.ID {
	id := b.next
	b.next++
	return id
}

func (b *Builder) loc(n *parser.Node) ast.Location {
	if n == nil {
		return ast.Location{}
	}
	return ast.Location{
		OffsetStart: n.StartByte,
		OffsetEnd:   n.EndByte,
		StartLine:   n.StartRow + 1,
		StartCol:    n.StartCol + 1,
		EndLine:     n.EndRow + 1,
		EndCol:      n.EndCol + 1,
		SourceText:  n.Text(),
	}
}

func (b *Builder) base(n *parser.Node) (ast.Base, ast.ID) {
	id := b.nextID()
	return ast.Base{Id: id, Loc: b.loc(n)}, id
}

func (b *Builder) emit(node ast.Node, parent *ast.ID) {
	b.Store.AddNode(node, parent)
}

func idPtr(id ast.ID) *ast.ID { return &id }

// BuildFile parses src and builds it into a *ast.Program, inserting every
// node it contains into the Builder's Store and binding introduced names
// into a scope of the file's own, parented at the Table's program root.
// Declarations in one file are never visible to another's scope until
// codebase.Open.Seal's import-linking pass copies them across.
func (b *Builder) BuildFile(src []byte) (prog *ast.Program, err error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if be, ok := r.(*BuildError); ok {
				err = be
				return
			}
			err = &BuildError{Reason: fmt.Sprintf("%v", r)}
		}
	}()
	fileScope := b.Table.NewFileScope()
	prog = b.buildProgram(tree, fileScope)
	b.fileScopes[prog.ID()] = fileScope
	return prog, nil
}

func (b *Builder) buildProgram(n *parser.Node, scope *symbols.Scope) *ast.Program {
	base, id := b.base(n)
	prog := &ast.Program{Base: base}
	pid := idPtr(id)
	b.emit(prog, nil)

	for _, child := range n.NamedChildren() {
		switch child.Kind {
		case "pragma":
			prog.Directives = append(prog.Directives, b.buildPragma(child, pid))
		case "idecl":
			prog.Declarations = append(prog.Declarations, b.buildImport(child, pid))
		case "xdecl":
			prog.Declarations = append(prog.Declarations, b.buildExport(child, pid))
		case "incld":
			prog.Declarations = append(prog.Declarations, b.buildInclude(child, pid))
		case "ldecl":
			prog.Declarations = append(prog.Declarations, b.buildLedger(child, pid, scope))
		case "wdecl":
			prog.Declarations = append(prog.Declarations, b.buildWitness(child, pid, scope))
		case "lconstructor":
			prog.Declarations = append(prog.Declarations, b.buildConstructor(child, pid, scope))
		case "contract":
			prog.Declarations = append(prog.Declarations, b.buildContract(child, pid, scope))
		case "cdefn":
			prog.Definitions = append(prog.Definitions, b.buildCircuit(child, pid, scope))
		case "struct":
			prog.Definitions = append(prog.Definitions, b.buildStruct(child, pid, scope))
		case "enumdef":
			prog.Definitions = append(prog.Definitions, b.buildEnum(child, pid, scope))
		case "mdefn":
			prog.Modules = append(prog.Modules, b.buildModule(child, pid, scope))
		}
	}
	return prog
}

// ---- directives ----

func (b *Builder) buildPragma(n *parser.Node, parent *ast.ID) *ast.Pragma {
	base, id := b.base(n)
	pragma := &ast.Pragma{Base: base}
	pid := idPtr(id)
	b.emit(pragma, parent)

	nameLeaf := n.ChildByFieldName("name")
	pragma.Value = b.buildIdentifier(nameLeaf, pid)

	exprNode := n.ChildByFieldName("version_expr")
	if exprNode != nil {
		tokens := b.flattenPragmaExpr(exprNode)
		ve, err := ast.ParseVersionExpr(tokens)
		if err == nil {
			pragma.VersionExpr = ve
		}
	}
	return pragma
}

func (b *Builder) flattenPragmaExpr(n *parser.Node) []ast.PragmaToken {
	switch n.Kind {
	case "pragma_and":
		left := b.flattenPragmaExpr(n.ChildByFieldName("left"))
		right := b.flattenPragmaExpr(n.ChildByFieldName("right"))
		out := make([]ast.PragmaToken, 0, len(left)+len(right)+1)
		out = append(out, ast.PragmaToken{Kind: ast.TokLParen})
		out = append(out, left...)
		out = append(out, ast.PragmaToken{Kind: ast.TokAnd})
		out = append(out, right...)
		out = append(out, ast.PragmaToken{Kind: ast.TokRParen})
		return out
	case "pragma_or":
		left := b.flattenPragmaExpr(n.ChildByFieldName("left"))
		right := b.flattenPragmaExpr(n.ChildByFieldName("right"))
		out := make([]ast.PragmaToken, 0, len(left)+len(right)+3)
		out = append(out, ast.PragmaToken{Kind: ast.TokLParen})
		out = append(out, left...)
		out = append(out, ast.PragmaToken{Kind: ast.TokOr})
		out = append(out, right...)
		out = append(out, ast.PragmaToken{Kind: ast.TokRParen})
		return out
	case "pragma_version":
		return []ast.PragmaToken{b.pragmaVersionToken(n)}
	}
	return nil
}

func (b *Builder) pragmaVersionToken(n *parser.Node) ast.PragmaToken {
	op := ast.OpEq
	if opLeaf := n.ChildByFieldName("op"); opLeaf != nil {
		switch opLeaf.Text() {
		case "!":
			op = ast.OpNeq
		case "<":
			op = ast.OpLt
		case "<=":
			op = ast.OpLte
		case ">":
			op = ast.OpGt
		case ">=":
			op = ast.OpGte
		}
	}
	tok := ast.PragmaToken{Kind: ast.TokVersion, Op: op}
	if major := n.ChildByFieldName("major"); major != nil {
		tok.Major, _ = strconv.Atoi(major.Text())
	}
	if minor := n.ChildByFieldName("minor"); minor != nil {
		v, _ := strconv.Atoi(minor.Text())
		tok.Minor = &v
	}
	if bugfix := n.ChildByFieldName("bugfix"); bugfix != nil {
		v, _ := strconv.Atoi(bugfix.Text())
		tok.Bugfix = &v
	}
	return tok
}

// ---- declarations ----

func (b *Builder) buildImport(n *parser.Node, parent *ast.ID) *ast.Import {
	base, id := b.base(n)
	imp := &ast.Import{Base: base}
	pid := idPtr(id)
	b.emit(imp, parent)

	valueLeaf := n.ChildByFieldName("value")
	imp.Value = b.buildStrIdentifier(valueLeaf, pid)
	if prefix := n.ChildByFieldName("prefix"); prefix != nil {
		imp.Prefix = b.buildIdentifier(prefix, pid)
	}
	if ga := n.ChildByFieldName("generic_args"); ga != nil {
		args := b.buildGenericArgs(ga, pid)
		imp.GenericArgs = &args
	}
	return imp
}

func (b *Builder) buildExport(n *parser.Node, parent *ast.ID) *ast.Export {
	base, id := b.base(n)
	exp := &ast.Export{Base: base}
	pid := idPtr(id)
	b.emit(exp, parent)
	for _, v := range n.ChildrenByFieldName("value") {
		exp.Values = append(exp.Values, b.buildIdentifier(v, pid))
	}
	return exp
}

func (b *Builder) buildInclude(n *parser.Node, parent *ast.ID) *ast.Include {
	base, _ := b.base(n)
	inc := &ast.Include{Base: base}
	if value := n.ChildByFieldName("value"); value != nil {
		inc.Path = unquote(value.Text())
	}
	b.emit(inc, parent)
	return inc
}

func (b *Builder) buildLedger(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Ledger {
	base, id := b.base(n)
	l := &ast.Ledger{Base: base}
	pid := idPtr(id)
	b.emit(l, parent)

	l.IsExported = fieldBool(n, "exported")
	l.IsSealed = fieldBool(n, "sealed")
	l.Name = b.buildIdentifier(n.ChildByFieldName("name"), pid)
	l.Ty = b.buildType(n.ChildByFieldName("type"), pid)

	if l.Name != nil {
		_ = b.Table.Bind(scope, l.Name.ID(), l.Name.Name, l.Ty)
	}
	return l
}

func (b *Builder) buildWitness(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Witness {
	base, id := b.base(n)
	w := &ast.Witness{Base: base}
	pid := idPtr(id)
	b.emit(w, parent)

	w.IsExported = fieldBool(n, "exported")
	w.Name = b.buildIdentifier(n.ChildByFieldName("name"), pid)
	if gp := n.ChildByFieldName("generic_params"); gp != nil {
		params := b.buildGenericParams(gp, pid)
		w.GenericParams = &params
	}
	if argList := n.ChildByFieldName("arguments"); argList != nil {
		w.Arguments = b.buildArgumentList(argList, pid, scope)
	}
	w.Ty = b.buildType(n.ChildByFieldName("type"), pid)

	if w.Name != nil {
		_ = b.Table.Bind(scope, w.Name.ID(), w.Name.Name, w.Ty)
	}
	return w
}

func (b *Builder) buildConstructor(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Constructor {
	base, id := b.base(n)
	c := &ast.Constructor{Base: base}
	pid := idPtr(id)
	b.emit(c, parent)

	ctorScope := symbols.NewScope(symbols.KindConstructor, "", scope)
	if argList := n.ChildByFieldName("arguments"); argList != nil {
		c.Arguments = b.buildArgumentList(argList, pid, ctorScope)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		c.Body = b.buildBlock(body, pid, ctorScope)
	}
	return c
}

func (b *Builder) buildContract(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Contract {
	base, id := b.base(n)
	c := &ast.Contract{Base: base}
	pid := idPtr(id)
	b.emit(c, parent)

	c.IsExported = fieldBool(n, "exported")
	c.Name = b.buildIdentifier(n.ChildByFieldName("name"), pid)
	contractScope := symbols.NewScope(symbols.KindContract, nameOf(c.Name), scope)
	for _, circuitNode := range n.ChildrenByFieldName("circuit") {
		c.Circuits = append(c.Circuits, b.buildCircuit(circuitNode, pid, contractScope))
	}
	return c
}

// ---- definitions ----

func (b *Builder) buildCircuit(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Circuit {
	base, id := b.base(n)
	c := &ast.Circuit{Base: base}
	pid := idPtr(id)
	b.emit(c, parent)

	c.IsExported = fieldBool(n, "exported")
	c.IsPure = fieldBool(n, "pure")
	c.Name = b.buildIdentifier(n.ChildByFieldName("name"), pid)
	circuitScope := symbols.NewScope(symbols.KindCircuit, nameOf(c.Name), scope)

	if gp := n.ChildByFieldName("generic_params"); gp != nil {
		params := b.buildGenericParams(gp, pid)
		c.GenericParameters = &params
	}
	if argList := n.ChildByFieldName("arguments"); argList != nil {
		c.Arguments = b.buildPatternArgumentList(argList, pid, circuitScope)
	}
	c.Ty = b.buildType(n.ChildByFieldName("return_type"), pid)
	if body := n.ChildByFieldName("body"); body != nil {
		c.Body = b.buildBlock(body, pid, circuitScope)
	}

	if c.Name != nil {
		_ = b.Table.Bind(scope, c.Name.ID(), c.Name.Name, nil)
	}
	return c
}

func (b *Builder) buildStruct(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Structure {
	base, id := b.base(n)
	s := &ast.Structure{Base: base}
	pid := idPtr(id)
	b.emit(s, parent)

	s.IsExported = fieldBool(n, "exported")
	s.Name = b.buildIdentifier(n.ChildByFieldName("name"), pid)
	if gp := n.ChildByFieldName("generic_params"); gp != nil {
		params := b.buildGenericParams(gp, pid)
		s.GenericParameters = &params
	}
	structScope := symbols.NewScope(symbols.KindStruct, nameOf(s.Name), scope)
	for _, f := range n.ChildrenByFieldName("field") {
		s.Fields = append(s.Fields, b.buildArgument(f, pid, structScope))
	}

	if s.Name != nil {
		_ = b.Table.Bind(scope, s.Name.ID(), s.Name.Name, s.Type())
	}
	return s
}

func (b *Builder) buildEnum(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Enum {
	base, id := b.base(n)
	e := &ast.Enum{Base: base}
	pid := idPtr(id)
	b.emit(e, parent)

	e.IsExported = fieldBool(n, "exported")
	e.Name = b.buildIdentifier(n.ChildByFieldName("name"), pid)
	for _, opt := range n.ChildrenByFieldName("option") {
		e.Options = append(e.Options, b.buildIdentifier(opt, pid))
	}

	if e.Name != nil {
		_ = b.Table.Bind(scope, e.Name.ID(), e.Name.Name, e.Type())
	}
	return e
}

func (b *Builder) buildModule(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Module {
	base, id := b.base(n)
	m := &ast.Module{Base: base}
	pid := idPtr(id)
	b.emit(m, parent)

	m.IsExported = fieldBool(n, "exported")
	m.Name = b.buildIdentifier(n.ChildByFieldName("name"), pid)
	if gp := n.ChildByFieldName("generic_params"); gp != nil {
		params := b.buildGenericParams(gp, pid)
		m.GenericParameters = &params
	}
	moduleScope := symbols.NewScope(symbols.KindModule, nameOf(m.Name), scope)

	for _, item := range n.ChildrenByFieldName("node") {
		switch item.Kind {
		case "pragma":
			m.Nodes = append(m.Nodes, b.buildPragma(item, pid))
		case "idecl":
			m.Nodes = append(m.Nodes, b.buildImport(item, pid))
		case "xdecl":
			m.Nodes = append(m.Nodes, b.buildExport(item, pid))
		case "incld":
			m.Nodes = append(m.Nodes, b.buildInclude(item, pid))
		case "ldecl":
			m.Nodes = append(m.Nodes, b.buildLedger(item, pid, moduleScope))
		case "wdecl":
			m.Nodes = append(m.Nodes, b.buildWitness(item, pid, moduleScope))
		case "lconstructor":
			m.Nodes = append(m.Nodes, b.buildConstructor(item, pid, moduleScope))
		case "contract":
			m.Nodes = append(m.Nodes, b.buildContract(item, pid, moduleScope))
		case "cdefn":
			m.Nodes = append(m.Nodes, b.buildCircuit(item, pid, moduleScope))
		case "struct":
			m.Nodes = append(m.Nodes, b.buildStruct(item, pid, moduleScope))
		case "enumdef":
			m.Nodes = append(m.Nodes, b.buildEnum(item, pid, moduleScope))
		case "mdefn":
			m.Nodes = append(m.Nodes, b.buildModule(item, pid, moduleScope))
		}
	}

	if m.Name != nil {
		_ = b.Table.Bind(scope, m.Name.ID(), m.Name.Name, nil)
	}
	return m
}

// ---- arguments / patterns ----

func (b *Builder) buildArgument(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Argument {
	base, id := b.base(n)
	a := &ast.Argument{Base: base}
	pid := idPtr(id)
	b.emit(a, parent)
	a.Name = b.buildIdentifier(n.ChildByFieldName("name"), pid)
	a.Ty = b.buildType(n.ChildByFieldName("type"), pid)
	if a.Name != nil && scope != nil {
		_ = b.Table.Bind(scope, a.Name.ID(), a.Name.Name, a.Ty)
	}
	return a
}

func (b *Builder) buildArgumentList(n *parser.Node, parent *ast.ID, scope *symbols.Scope) []*ast.Argument {
	var out []*ast.Argument
	for _, a := range n.ChildrenByFieldName("argument") {
		out = append(out, b.buildArgument(a, parent, scope))
	}
	return out
}

func (b *Builder) buildPatternArgument(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.PatternArgument {
	base, id := b.base(n)
	pa := &ast.PatternArgument{Base: base}
	pid := idPtr(id)
	b.emit(pa, parent)
	pa.Ty = b.buildType(n.ChildByFieldName("type"), pid)
	pa.Pattern = b.buildPattern(n.ChildByFieldName("pattern"), pid, scope, pa.Ty)
	return pa
}

func (b *Builder) buildPatternArgumentList(n *parser.Node, parent *ast.ID, scope *symbols.Scope) []*ast.PatternArgument {
	var out []*ast.PatternArgument
	for _, a := range n.ChildrenByFieldName("argument") {
		out = append(out, b.buildPatternArgument(a, parent, scope))
	}
	return out
}

func (b *Builder) buildPattern(n *parser.Node, parent *ast.ID, scope *symbols.Scope, ty ast.Type) ast.Pattern {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case "pattern_identifier":
		id := b.buildIdentifier(n, parent)
		if scope != nil && id != nil {
			_ = b.Table.Bind(scope, id.ID(), id.Name, ty)
		}
		return id
	case "pattern_tuple":
		base, id := b.base(n)
		t := &ast.TuplePattern{Base: base}
		pid := idPtr(id)
		b.emit(t, parent)
		for _, el := range n.ChildrenByFieldName("element") {
			t.Patterns = append(t.Patterns, b.buildPattern(el, pid, scope, nil))
		}
		return t
	case "pattern_struct":
		base, id := b.base(n)
		s := &ast.StructPattern{Base: base}
		pid := idPtr(id)
		b.emit(s, parent)
		for _, f := range n.ChildrenByFieldName("field") {
			s.Fields = append(s.Fields, b.buildStructPatternField(f, pid, scope))
		}
		return s
	}
	return nil
}

func (b *Builder) buildStructPatternField(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.StructPatternField {
	base, id := b.base(n)
	f := &ast.StructPatternField{Base: base}
	pid := idPtr(id)
	b.emit(f, parent)
	f.Name = b.buildIdentifier(n.ChildByFieldName("name"), pid)
	f.Pattern = b.buildPattern(n.ChildByFieldName("pattern"), pid, scope, nil)
	return f
}

// ---- generics ----

func (b *Builder) buildGenericParams(n *parser.Node, parent *ast.ID) []*ast.Identifier {
	var out []*ast.Identifier
	for _, p := range n.ChildrenByFieldName("param") {
		out = append(out, b.buildIdentifier(p, parent))
	}
	return out
}

func (b *Builder) buildGenericArgs(n *parser.Node, parent *ast.ID) []ast.GArgument {
	var out []ast.GArgument
	for _, a := range n.ChildrenByFieldName("arg") {
		if a.Kind == "nat" {
			base, _ := b.base(a)
			v, _ := strconv.ParseUint(a.Text(), 10, 64)
			g := &ast.GArgNat{Base: base, Value: v}
			b.emit(g, parent)
			out = append(out, g)
			continue
		}
		base, id := b.base(a)
		g := &ast.GArgType{Base: base}
		b.emit(g, parent)
		g.Ty = b.buildType(a, idPtr(id))
		out = append(out, g)
	}
	return out
}

// ---- types ----

func (b *Builder) buildType(n *parser.Node, parent *ast.ID) ast.Type {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case "nat_type":
		base, _ := b.base(n)
		t := &ast.Nat{Base: base}
		b.emit(t, parent)
		return t
	case "bool_type":
		base, _ := b.base(n)
		t := &ast.Bool{Base: base}
		b.emit(t, parent)
		return t
	case "string_type":
		base, _ := b.base(n)
		t := &ast.String{Base: base}
		b.emit(t, parent)
		return t
	case "field_type":
		base, _ := b.base(n)
		t := &ast.Field{Base: base}
		b.emit(t, parent)
		return t
	case "uint_type":
		base, _ := b.base(n)
		t := &ast.Uint{Base: base}
		b.emit(t, parent)
		if start := n.ChildByFieldName("start"); start != nil {
			t.Start, _ = strconv.ParseUint(start.Text(), 10, 64)
		}
		if end := n.ChildByFieldName("end"); end != nil {
			v, _ := strconv.ParseUint(end.Text(), 10, 64)
			t.End = &v
		}
		return t
	case "bytes_type":
		base, _ := b.base(n)
		t := &ast.Bytes{Base: base}
		b.emit(t, parent)
		if size := n.ChildByFieldName("size"); size != nil {
			t.Size, _ = strconv.ParseUint(size.Text(), 10, 64)
		}
		return t
	case "opaque_type":
		base, _ := b.base(n)
		t := &ast.Opaque{Base: base}
		b.emit(t, parent)
		if tag := n.ChildByFieldName("tag"); tag != nil {
			t.Tag = unquote(tag.Text())
		}
		return t
	case "vector_type":
		base, id := b.base(n)
		t := &ast.Vector{Base: base}
		pid := idPtr(id)
		b.emit(t, parent)
		if sizeNat := n.ChildByFieldName("size_nat"); sizeNat != nil {
			t.Size, _ = strconv.ParseUint(sizeNat.Text(), 10, 64)
		}
		if sizeIdent := n.ChildByFieldName("size_ident"); sizeIdent != nil {
			t.SizeIdent = b.buildIdentifier(sizeIdent, pid)
		}
		t.Elem = b.buildType(n.ChildByFieldName("elem"), pid)
		return t
	case "sum_type":
		base, id := b.base(n)
		t := &ast.Sum{Base: base}
		pid := idPtr(id)
		b.emit(t, parent)
		for _, ty := range n.ChildrenByFieldName("type") {
			t.Types = append(t.Types, b.buildType(ty, pid))
		}
		return t
	case "tref":
		base, id := b.base(n)
		t := &ast.Ref{Base: base}
		pid := idPtr(id)
		b.emit(t, parent)
		t.Name = b.buildIdentifier(n.ChildByFieldName("name"), pid)
		if ga := n.ChildByFieldName("generic_args"); ga != nil {
			args := b.buildGenericArgs(ga, pid)
			t.GenericArgs = &args
		}
		return t
	}
	return nil
}

// ---- identifiers / literals ----

func (b *Builder) buildIdentifier(n *parser.Node, parent *ast.ID) *ast.Identifier {
	if n == nil {
		return nil
	}
	base, _ := b.base(n)
	id := &ast.Identifier{Base: base, Name: n.Text()}
	b.emit(id, parent)
	return id
}

// buildIdentifierRef builds an Identifier for a usage site (as opposed to a
// declaration) and resolves it against scope so that GetSymbolTypeByID works
// on the reference's own node id, not just the declaration's.
func (b *Builder) buildIdentifierRef(n *parser.Node, parent *ast.ID, scope *symbols.Scope) *ast.Identifier {
	id := b.buildIdentifier(n, parent)
	if id == nil || scope == nil {
		return id
	}
	b.Table.Resolve(scope, id.ID(), id.Name)
	return id
}

// buildStrIdentifier builds an Identifier whose Name is the unquoted
// contents of a string-literal leaf (used for import paths).
func (b *Builder) buildStrIdentifier(n *parser.Node, parent *ast.ID) *ast.Identifier {
	if n == nil {
		return nil
	}
	base, _ := b.base(n)
	id := &ast.Identifier{Base: base, Name: unquote(n.Text())}
	b.emit(id, parent)
	return id
}

func (b *Builder) buildNatLiteral(n *parser.Node, parent *ast.ID) *ast.Literal {
	base, _ := b.base(n)
	text := n.Text()
	if len(text) > 1 && text[0] == '0' {
		panic(&BuildError{Reason: fmt.Sprintf("nat literal %q has a leading zero", text)})
	}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		panic(&BuildError{Reason: fmt.Sprintf("invalid nat literal %q: %v", text, err)})
	}
	lit := &ast.Literal{Base: base, Kind: ast.LiteralNat, Text: text, Value: v}
	b.emit(lit, parent)
	return lit
}

func (b *Builder) buildStrLiteral(n *parser.Node, parent *ast.ID) *ast.Literal {
	base, _ := b.base(n)
	text := n.Text()
	lit := &ast.Literal{Base: base, Kind: ast.LiteralStr, Text: text, Value: unquote(text)}
	b.emit(lit, parent)
	return lit
}

func (b *Builder) buildBoolLiteral(n *parser.Node, parent *ast.ID) *ast.Literal {
	base, _ := b.base(n)
	text := n.Text()
	lit := &ast.Literal{Base: base, Kind: ast.LiteralBool, Text: text, Value: text == "true"}
	b.emit(lit, parent)
	return lit
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func fieldBool(n *parser.Node, field string) bool {
	leaf := n.ChildByFieldName(field)
	return leaf != nil && leaf.Text() == "true"
}

func nameOf(id *ast.Identifier) string {
	if id == nil {
		return ""
	}
	return id.Name
}
