package codebase

import (
	"sort"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/store"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/symbols"
)

// Sealed is the read-only, fully cross-linked codebase produced by
// Open.Seal. Every query method is safe for concurrent use.
type Sealed struct {
	store    *store.Store
	table    *symbols.Table
	programs map[string]*ast.Program
	order    []string
	circuits map[string]*ast.Circuit
}

// Files returns every file path in the codebase, in the order files were
// added.
func (s *Sealed) Files() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Program returns the parsed Program registered under path.
func (s *Sealed) Program(path string) (*ast.Program, bool) {
	prog, ok := s.programs[path]
	return prog, ok
}

// FindNodeFile returns the file path whose Program subtree contains id, by
// walking parent routes up to a root and matching it against each
// Program's id.
func (s *Sealed) FindNodeFile(id ast.ID) (string, bool) {
	cur := id
	for {
		parent, ok := s.store.FindParentNode(cur)
		if !ok {
			break
		}
		cur = parent
	}
	for path, prog := range s.programs {
		if prog.ID() == cur {
			return path, true
		}
	}
	return "", false
}

// GetSymbolTypeByID returns the static type bound to id, if any.
func (s *Sealed) GetSymbolTypeByID(id ast.ID) (ast.Type, bool) {
	return s.table.TypeByID(id)
}

// FindNode returns the node stored under id.
func (s *Sealed) FindNode(id ast.ID) (ast.Node, bool) {
	return s.store.FindNode(id)
}

// GetParentContainer returns the nearest ancestor of id that is itself a
// Circuit, Structure, Enum, Module, or Constructor -- the enclosing
// definition.
func (s *Sealed) GetParentContainer(id ast.ID) (ast.Node, bool) {
	cur := id
	for {
		parent, ok := s.store.FindParentNode(cur)
		if !ok {
			return nil, false
		}
		node, ok := s.store.FindNode(parent)
		if !ok {
			return nil, false
		}
		switch node.(type) {
		case *ast.Circuit, *ast.Structure, *ast.Enum, *ast.Module, *ast.Constructor:
			return node, true
		}
		cur = parent
	}
}

// GetChildrenCmp returns every descendant of id in depth-first pre-order
// (each child, then that child's whole subtree, before the next sibling)
// for which predicate reports true. A nil predicate matches
// every node, same as an unfiltered subtree walk.
func (s *Sealed) GetChildrenCmp(id ast.ID, predicate func(ast.Node) bool) []ast.Node {
	return walkChildrenCmp(s.store, id, predicate)
}

// walkChildrenCmp is the shared depth-first subtree walk backing
// GetChildrenCmp and the codebase package's own internal subtree queries
// (circuit indexing, function-call linking).
func walkChildrenCmp(st *store.Store, id ast.ID, predicate func(ast.Node) bool) []ast.Node {
	var out []ast.Node
	var walk func(ast.ID)
	walk = func(cur ast.ID) {
		for _, child := range st.Children(cur) {
			node, ok := st.FindNode(child)
			if !ok {
				continue
			}
			if predicate == nil || predicate(node) {
				out = append(out, node)
			}
			walk(child)
		}
	}
	walk(id)
	return out
}

// ListAssertNodes returns every Assert statement in the codebase, ordered
// by node id.
func (s *Sealed) ListAssertNodes() []*ast.Assert {
	var out []*ast.Assert
	for _, node := range s.store.Nodes() {
		if a, ok := node.(*ast.Assert); ok {
			out = append(out, a)
		}
	}
	return out
}

// ListForStatementNodes returns every For loop in the codebase, ordered by
// node id.
func (s *Sealed) ListForStatementNodes() []*ast.For {
	var out []*ast.For
	for _, node := range s.store.Nodes() {
		if f, ok := node.(*ast.For); ok {
			out = append(out, f)
		}
	}
	return out
}

// ListExportedCircuitsFromProgram returns every exported circuit anywhere
// in prog's subtree, including ones nested inside a Module or Contract.
func (s *Sealed) ListExportedCircuitsFromProgram(prog *ast.Program) []*ast.Circuit {
	return s.filterCircuitsBySubtree(prog.ID(), true)
}

// ListNonExportedCircuitsFromProgram returns every non-exported circuit
// anywhere in prog's subtree, including ones nested inside a Module or
// Contract.
func (s *Sealed) ListNonExportedCircuitsFromProgram(prog *ast.Program) []*ast.Circuit {
	return s.filterCircuitsBySubtree(prog.ID(), false)
}

// ListExportedCircuitsFromModule returns every exported circuit anywhere
// in mod's subtree, including ones nested inside a further sub-Module.
func (s *Sealed) ListExportedCircuitsFromModule(mod *ast.Module) []*ast.Circuit {
	return s.filterCircuitsBySubtree(mod.ID(), true)
}

// ListNonExportedCircuitsFromModule returns every non-exported circuit
// anywhere in mod's subtree, including ones nested inside a further
// sub-Module.
func (s *Sealed) ListNonExportedCircuitsFromModule(mod *ast.Module) []*ast.Circuit {
	return s.filterCircuitsBySubtree(mod.ID(), false)
}

// filterCircuitsBySubtree is get_children_cmp bounded to id's subtree,
// predicate-filtered to circuits matching the requested export flag.
func (s *Sealed) filterCircuitsBySubtree(id ast.ID, exported bool) []*ast.Circuit {
	nodes := s.GetChildrenCmp(id, func(n ast.Node) bool {
		c, ok := n.(*ast.Circuit)
		return ok && c.IsExported == exported
	})
	out := make([]*ast.Circuit, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.(*ast.Circuit))
	}
	return out
}

// Circuit looks up a circuit anywhere in the codebase by its bare name, as
// indexed during Seal. When several circuits share a name, the one added
// last wins.
func (s *Sealed) Circuit(name string) (*ast.Circuit, bool) {
	c, ok := s.circuits[name]
	return c, ok
}

// SortedFiles returns Files() in lexical order, for deterministic output.
func (s *Sealed) SortedFiles() []string {
	out := s.Files()
	sort.Strings(out)
	return out
}
