package ast

// Definition is the category for the four top-level defining constructs:
// Module, Circuit, Structure, Enum. Each introduces its own lexical scope.
type Definition interface {
	Node
	definitionNode()
}

// Module groups an arbitrary, possibly heterogeneous, sequence of nested
// declarations/definitions/statements under a name.
type Module struct {
	Base
	IsExported        bool
	Name              *Identifier
	GenericParameters *[]*Identifier
	Nodes             []Node
}

func (*Module) definitionNode() {}
func (m *Module) Children() []Node {
	children := make([]Node, 0, 1+len(m.Nodes))
	if m.Name != nil {
		children = append(children, m.Name)
	}
	if m.GenericParameters != nil {
		for _, p := range *m.GenericParameters {
			children = append(children, p)
		}
	}
	children = append(children, m.Nodes...)
	return children
}

// NameStr returns the module's name.
func (m *Module) NameStr() string {
	if m.Name == nil {
		return ""
	}
	return m.Name.Name
}

// Circuit is a named, typed procedure. A nil Body marks an external
// (declared-but-not-defined) circuit.
type Circuit struct {
	Base
	Name              *Identifier
	Arguments         []*PatternArgument
	GenericParameters *[]*Identifier
	IsExported        bool
	IsPure            bool
	Ty                Type
	Body              *Block
}

func (*Circuit) definitionNode() {}
func (c *Circuit) Children() []Node {
	children := make([]Node, 0, len(c.Arguments)+2)
	if c.Name != nil {
		children = append(children, c.Name)
	}
	for _, a := range c.Arguments {
		children = append(children, a)
	}
	if c.Ty != nil {
		children = append(children, c.Ty)
	}
	if c.Body != nil {
		children = append(children, c.Body)
	}
	return children
}

// NameStr returns the circuit's name.
func (c *Circuit) NameStr() string {
	if c.Name == nil {
		return ""
	}
	return c.Name.Name
}

// IsExternal reports whether the circuit has no body (a declaration only).
func (c *Circuit) IsExternal() bool { return c.Body == nil }

// InlineFunctionCalls walks the circuit's body statements and, for every
// statement that is a resolved call to another circuit with a body,
// substitutes that callee's own inlined statements in its place
// (recursively). Every other statement passes through unchanged. A
// circuit with no body yields an empty slice.
func (c *Circuit) InlineFunctionCalls() []Statement {
	if c.Body == nil {
		return nil
	}
	inlined := make([]Statement, 0, len(c.Body.Statements))
	for _, stmt := range c.Body.Statements {
		if exprStmt, ok := stmt.(*ExprStatement); ok {
			if call, ok := exprStmt.Expr.(*FunctionCall); ok && call.Reference != nil && call.Reference.Body != nil {
				inlined = append(inlined, call.Reference.InlineFunctionCalls()...)
				continue
			}
		}
		inlined = append(inlined, stmt)
	}
	return inlined
}

// Structure is a named product type.
type Structure struct {
	Base
	IsExported        bool
	Name              *Identifier
	GenericParameters *[]*Identifier
	Fields            []*Argument
}

func (*Structure) definitionNode() {}
func (s *Structure) Children() []Node {
	children := make([]Node, 0, len(s.Fields)+1)
	if s.Name != nil {
		children = append(children, s.Name)
	}
	if s.GenericParameters != nil {
		for _, p := range *s.GenericParameters {
			children = append(children, p)
		}
	}
	for _, f := range s.Fields {
		children = append(children, f)
	}
	return children
}

// NameStr returns the structure's name.
func (s *Structure) NameStr() string {
	if s.Name == nil {
		return ""
	}
	return s.Name.Name
}

// Type constructs a self-referencing Ref naming this structure, for use as
// the inferred type of the structure's own name binding. The returned node
// is synthetic: it is never stored and carries SyntheticID.
func (s *Structure) Type() Type {
	return selfRef(s.Name, s.GenericParameters)
}

// Enum is a named sum-of-nullary-options type.
type Enum struct {
	Base
	IsExported bool
	Name       *Identifier
	Options    []*Identifier
}

func (*Enum) definitionNode() {}
func (e *Enum) Children() []Node {
	children := make([]Node, 0, len(e.Options)+1)
	if e.Name != nil {
		children = append(children, e.Name)
	}
	for _, o := range e.Options {
		children = append(children, o)
	}
	return children
}

// NameStr returns the enum's name.
func (e *Enum) NameStr() string {
	if e.Name == nil {
		return ""
	}
	return e.Name.Name
}

// Type constructs a self-referencing Ref naming this enum. See
// Structure.Type for the synthetic-node convention.
func (e *Enum) Type() Type {
	return selfRef(e.Name, nil)
}

func selfRef(name *Identifier, generics *[]*Identifier) Type {
	var genericArgs *[]GArgument
	if generics != nil {
		args := make([]GArgument, 0, len(*generics))
		for _, p := range *generics {
			args = append(args, &GArgType{
				Base: Base{Id: SyntheticID, Loc: p.Loc},
				Ty: &Ref{
					Base: Base{Id: SyntheticID, Loc: p.Loc},
					Name: p,
				},
			})
		}
		genericArgs = &args
	}
	var loc Location
	if name != nil {
		loc = name.Loc
	}
	return &Ref{
		Base:        Base{Id: SyntheticID, Loc: loc},
		Name:        name,
		GenericArgs: genericArgs,
	}
}
