// Package symbols implements the lexically-scoped symbol table: a tree of
// scopes with parent-pointer lookup, plus a flat id index so any binding
// identifier node resolves to its type without re-walking the tree.
package symbols

import (
	"fmt"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
)

// Kind tags the structural construct a Scope was created for.
type Kind string

const (
	KindProgram     Kind = "program"
	KindFile        Kind = "file"
	KindModule      Kind = "module"
	KindCircuit     Kind = "circuit"
	KindConstructor Kind = "constructor"
	KindContract    Kind = "contract"
	KindStruct      Kind = "struct"
	KindEnum        Kind = "enum"
	KindBlock       Kind = "block"
)

type binding struct {
	ty ast.Type
}

// Scope is a single lexical scope: a name->type map plus a parent pointer
// for chained lookup.
type Scope struct {
	Kind     Kind
	Name     string
	Parent   *Scope
	Children []*Scope
	symbols  map[string]*binding
}

// NewScope creates a scope of the given kind, linking it under parent when
// parent is non-nil.
func NewScope(kind Kind, name string, parent *Scope) *Scope {
	s := &Scope{Kind: kind, Name: name, Parent: parent, symbols: make(map[string]*binding)}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Lookup searches s's local symbols, then walks parents, returning the
// nearest binding. The boolean reports whether any binding (even one with
// an unknown/nil type) was found.
func (s *Scope) Lookup(name string) (ast.Type, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.symbols[name]; ok {
			return b.ty, true
		}
	}
	return nil, false
}

// ConflictError is SymbolError::Conflict: a duplicate binding in the same
// scope whose two types are incompatible.
type ConflictError struct {
	Scope string
	Name  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("symbol error: conflicting binding for %q in scope %q", e.Name, e.Scope)
}

// Table pairs a scope tree with a flat NodeId->Type index populated
// alongside scope construction, so get_symbol_type_by_id never re-walks
// scopes.
type Table struct {
	Root *Scope
	ids  map[ast.ID]ast.Type
}

// NewTable constructs an empty table rooted at a fresh program scope.
func NewTable() *Table {
	return &Table{
		Root: NewScope(KindProgram, "", nil),
		ids:  make(map[ast.ID]ast.Type),
	}
}

// NewFileScope returns a fresh scope for one file, parented at the
// table's program root. Each file gets its own scope so declarations in
// unrelated files never collide or leak into one another; a file only
// sees another file's declarations once Import copies them in after an
// import is resolved.
func (t *Table) NewFileScope() *Scope {
	return NewScope(KindFile, "", t.Root)
}

// Import copies every name bound directly in from into into, skipping any
// name into already binds locally. Used once linkImports resolves an
// import, to make the imported file's top-level declarations visible to
// the importing file without merging the two files' scopes outright.
func (t *Table) Import(into, from *Scope) {
	for name, b := range from.symbols {
		if _, exists := into.symbols[name]; !exists {
			into.symbols[name] = b
		}
	}
}

// Bind registers name with type ty (possibly nil/unknown) in scope, and
// records id->ty in the flat index when ty is known. If name is already
// bound locally with a known, incompatible type, Bind returns a
// ConflictError. If the existing binding was unknown, ty replaces it in
// place.
func (t *Table) Bind(scope *Scope, id ast.ID, name string, ty ast.Type) error {
	if existing, ok := scope.symbols[name]; ok {
		if existing.ty != nil && ty != nil && !compatible(existing.ty, ty) {
			return &ConflictError{Scope: string(scope.Kind), Name: name}
		}
		if existing.ty == nil && ty != nil {
			existing.ty = ty
		}
	} else {
		scope.symbols[name] = &binding{ty: ty}
	}
	if ty != nil {
		t.ids[id] = ty
	}
	return nil
}

// TypeByID returns the type bound to id, if any.
func (t *Table) TypeByID(id ast.ID) (ast.Type, bool) {
	ty, ok := t.ids[id]
	return ty, ok
}

// Resolve looks up name starting at scope and, if found with a known
// type, records id->type in the flat index without touching scope's own
// bindings. Used to make a usage-site reference (as opposed to the
// declaration itself) resolvable through TypeByID/GetSymbolTypeByID.
func (t *Table) Resolve(scope *Scope, id ast.ID, name string) (ast.Type, bool) {
	ty, ok := scope.Lookup(name)
	if !ok || ty == nil {
		return nil, false
	}
	t.ids[id] = ty
	return ty, true
}

func compatible(a, b ast.Type) bool {
	if kindOf(a) != kindOf(b) {
		return false
	}
	aRef, aOk := a.(*ast.Ref)
	bRef, bOk := b.(*ast.Ref)
	if aOk && bOk {
		return refName(aRef) == refName(bRef)
	}
	return true
}

func refName(r *ast.Ref) string {
	if r.Name == nil {
		return ""
	}
	return r.Name.Name
}

func kindOf(ty ast.Type) string {
	switch ty.(type) {
	case *ast.Nat:
		return "nat"
	case *ast.Bool:
		return "bool"
	case *ast.String:
		return "string"
	case *ast.Field:
		return "field"
	case *ast.Uint:
		return "uint"
	case *ast.Bytes:
		return "bytes"
	case *ast.Opaque:
		return "opaque"
	case *ast.Vector:
		return "vector"
	case *ast.Ref:
		return "ref"
	case *ast.Sum:
		return "sum"
	default:
		return fmt.Sprintf("%T", ty)
	}
}
