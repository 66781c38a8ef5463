package ast

// Type is the category for Compact's type expressions.
type Type interface {
	Node
	typeNode()
}

// GArgument is a single generic argument: either a nested Type or a bare
// natural-number literal (e.g. the `10` in `Foo<10, Address>`).
type GArgument interface {
	Node
	gArgumentNode()
}

// GArgType wraps a Type used as a generic argument.
type GArgType struct {
	Base
	Ty Type
}

func (*GArgType) gArgumentNode()  {}
func (g *GArgType) Children() []Node { return []Node{g.Ty} }

// GArgNat wraps a natural-number literal used as a generic argument.
type GArgNat struct {
	Base
	Value uint64
}

func (*GArgNat) gArgumentNode()  {}
func (g *GArgNat) Children() []Node { return nil }

// Nat is the natural-number type.
type Nat struct{ Base }

func (*Nat) typeNode()      {}
func (n *Nat) Children() []Node { return nil }

// Bool is the boolean type.
type Bool struct{ Base }

func (*Bool) typeNode()      {}
func (b *Bool) Children() []Node { return nil }

// String is the string type.
type String struct{ Base }

func (*String) typeNode()      {}
func (s *String) Children() []Node { return nil }

// Field is the ZK field-element type.
type Field struct{ Base }

func (*Field) typeNode()      {}
func (f *Field) Children() []Node { return nil }

// Uint is a bounded unsigned-integer type, `Uint<start>` or `Uint<start..end>`.
type Uint struct {
	Base
	Start uint64
	End   *uint64
}

func (*Uint) typeNode()      {}
func (u *Uint) Children() []Node { return nil }

// Bytes is a fixed-size byte-array type, `Bytes<size>`.
type Bytes struct {
	Base
	Size uint64
}

func (*Bytes) typeNode()      {}
func (b *Bytes) Children() []Node { return nil }

// Opaque is an externally-defined opaque type tagged by name, e.g.
// `Opaque<"string">`.
type Opaque struct {
	Base
	Tag string
}

func (*Opaque) typeNode()      {}
func (o *Opaque) Children() []Node { return nil }

// Vector is a fixed-size homogeneous array type. Size is either a literal
// natural number (SizeIdent == nil) or an identifier reference to a
// generic parameter.
type Vector struct {
	Base
	Size      uint64
	SizeIdent *Identifier
	Elem      Type
}

func (*Vector) typeNode() {}
func (v *Vector) Children() []Node {
	children := make([]Node, 0, 2)
	if v.SizeIdent != nil {
		children = append(children, v.SizeIdent)
	}
	if v.Elem != nil {
		children = append(children, v.Elem)
	}
	return children
}

// Ref is a named type reference, optionally with generic arguments, e.g.
// `Maybe<Field>` or a bare struct/enum name.
type Ref struct {
	Base
	Name        *Identifier
	GenericArgs *[]GArgument
}

func (*Ref) typeNode() {}
func (r *Ref) Children() []Node {
	children := make([]Node, 0, 1)
	if r.Name != nil {
		children = append(children, r.Name)
	}
	if r.GenericArgs != nil {
		for _, g := range *r.GenericArgs {
			children = append(children, g)
		}
	}
	return children
}

// Sum is a tagged union type, `[T1, T2, ...]`.
type Sum struct {
	Base
	Types []Type
}

func (*Sum) typeNode() {}
func (s *Sum) Children() []Node {
	children := make([]Node, 0, len(s.Types))
	for _, t := range s.Types {
		children = append(children, t)
	}
	return children
}
