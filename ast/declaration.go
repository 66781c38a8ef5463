package ast

// Declaration is the category for top-level and nested declarations that
// are not themselves definitions (circuits/structures/enums/modules).
type Declaration interface {
	Node
	declarationNode()
}

// Import is `import "path"[::prefix][<generics>];`. Reference is filled in
// during Seal when the import's Value.Name matches a known file's path
// exactly; it is never resolved by relative-path rewriting.
type Import struct {
	Base
	Value       *Identifier
	Prefix      *Identifier
	GenericArgs *[]GArgument
	Reference   *Program
}

func (*Import) declarationNode() {}
func (i *Import) Children() []Node {
	children := make([]Node, 0, 2)
	if i.Value != nil {
		children = append(children, i.Value)
	}
	if i.Prefix != nil {
		children = append(children, i.Prefix)
	}
	if i.GenericArgs != nil {
		for _, g := range *i.GenericArgs {
			children = append(children, g)
		}
	}
	return children
}

// Name returns the literal import path string, e.g. "./b.compact".
func (i *Import) Name() string {
	if i.Value == nil {
		return ""
	}
	return i.Value.Name
}

// Export is `export { a, b, c };`.
type Export struct {
	Base
	Values []*Identifier
}

func (*Export) declarationNode() {}
func (e *Export) Children() []Node {
	children := make([]Node, 0, len(e.Values))
	for _, v := range e.Values {
		children = append(children, v)
	}
	return children
}

// Include is `include "path";`.
type Include struct {
	Base
	Path string
}

func (*Include) declarationNode() {}
func (i *Include) Children() []Node { return nil }

// Ledger is a declared on-chain state slot.
type Ledger struct {
	Base
	Name       *Identifier
	IsExported bool
	IsSealed   bool
	Ty         Type
}

func (*Ledger) declarationNode() {}
func (l *Ledger) Children() []Node {
	children := make([]Node, 0, 2)
	if l.Name != nil {
		children = append(children, l.Name)
	}
	if l.Ty != nil {
		children = append(children, l.Ty)
	}
	return children
}

// NameStr returns the ledger slot's name.
func (l *Ledger) NameStr() string {
	if l.Name == nil {
		return ""
	}
	return l.Name.Name
}

// Witness is a declared off-chain value producer: a signature with no body.
type Witness struct {
	Base
	Name             *Identifier
	IsExported       bool
	GenericParams    *[]*Identifier
	Arguments        []*Argument
	Ty               Type
}

func (*Witness) declarationNode() {}
func (w *Witness) Children() []Node {
	children := make([]Node, 0, len(w.Arguments)+2)
	if w.Name != nil {
		children = append(children, w.Name)
	}
	if w.GenericParams != nil {
		for _, p := range *w.GenericParams {
			children = append(children, p)
		}
	}
	for _, a := range w.Arguments {
		children = append(children, a)
	}
	if w.Ty != nil {
		children = append(children, w.Ty)
	}
	return children
}

// Constructor is the contract's initializer: `constructor(args) { body }`.
type Constructor struct {
	Base
	Arguments []*Argument
	Body      *Block
}

func (*Constructor) declarationNode() {}
func (c *Constructor) Children() []Node {
	children := make([]Node, 0, len(c.Arguments)+1)
	for _, a := range c.Arguments {
		children = append(children, a)
	}
	if c.Body != nil {
		children = append(children, c.Body)
	}
	return children
}

// Contract groups a set of circuits under a named contract surface.
type Contract struct {
	Base
	Name       *Identifier
	IsExported bool
	Circuits   []*Circuit
}

func (*Contract) declarationNode() {}
func (c *Contract) Children() []Node {
	children := make([]Node, 0, len(c.Circuits)+1)
	if c.Name != nil {
		children = append(children, c.Name)
	}
	for _, circuit := range c.Circuits {
		children = append(children, circuit)
	}
	return children
}

// Argument is a plain `name: Type` formal parameter or field.
type Argument struct {
	Base
	Name *Identifier
	Ty   Type
}

func (*Argument) declarationNode() {}
func (a *Argument) Children() []Node {
	children := make([]Node, 0, 2)
	if a.Name != nil {
		children = append(children, a.Name)
	}
	if a.Ty != nil {
		children = append(children, a.Ty)
	}
	return children
}

// NameStr returns the argument's name.
func (a *Argument) NameStr() string {
	if a.Name == nil {
		return ""
	}
	return a.Name.Name
}

// PatternArgument is a formal parameter that destructures its value via a
// Pattern, e.g. a circuit argument `{x, y}: Point`.
type PatternArgument struct {
	Base
	Pattern Pattern
	Ty      Type
}

func (*PatternArgument) declarationNode() {}
func (p *PatternArgument) Children() []Node {
	children := make([]Node, 0, 2)
	if p.Pattern != nil {
		children = append(children, p.Pattern)
	}
	if p.Ty != nil {
		children = append(children, p.Ty)
	}
	return children
}

// StructPatternField is a single `name: pattern` entry inside a struct
// destructuring Pattern.
type StructPatternField struct {
	Base
	Name    *Identifier
	Pattern Pattern
}

func (*StructPatternField) declarationNode() {}
func (f *StructPatternField) Children() []Node {
	children := make([]Node, 0, 2)
	if f.Name != nil {
		children = append(children, f.Name)
	}
	if f.Pattern != nil {
		children = append(children, f.Pattern)
	}
	return children
}
