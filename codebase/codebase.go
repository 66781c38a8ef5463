// Package codebase implements the two-phase facade over a set of parsed
// files: an Open codebase that accepts files one at a time, and the Sealed
// codebase produced by Seal, which resolves cross-file imports and
// function-call references and exposes the read-only query surface.
package codebase

import (
	"fmt"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/builder"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/store"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/symbols"
	"github.com/pkg/errors"
)

// ParseError wraps a failure tokenizing/parsing one file's source.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse %s: %v", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// BuildError wraps a failure translating one file's concrete tree into
// typed nodes.
type BuildError struct {
	Path string
	Err  error
}

func (e *BuildError) Error() string { return fmt.Sprintf("build %s: %v", e.Path, e.Err) }
func (e *BuildError) Unwrap() error { return e.Err }

// SymbolError is the error kind for a conflicting or unresolved binding.
// Seal never returns it: binding conflicts found while building a file are
// discarded, and an unresolved name leaves its reference unset.
type SymbolError struct {
	Detail string
}

func (e *SymbolError) Error() string { return fmt.Sprintf("symbol error: %s", e.Detail) }

// Open is a codebase under construction: files may be added in any order,
// and nothing has been cross-linked yet.
type Open struct {
	store   *store.Store
	table   *symbols.Table
	builder *builder.Builder

	programs map[string]*ast.Program
	scopes   map[string]*symbols.Scope
	order    []string
}

// New returns an empty Open codebase.
func New() *Open {
	st := store.New()
	table := symbols.NewTable()
	return &Open{
		store:    st,
		table:    table,
		builder:  builder.New(st, table),
		programs: make(map[string]*ast.Program),
		scopes:   make(map[string]*symbols.Scope),
	}
}

// AddFile parses and builds source under path, registering its Program.
// Re-adding the same path replaces its previous Program.
func (o *Open) AddFile(path string, source []byte) (*ast.Program, error) {
	prog, err := o.builder.BuildFile(source)
	if err != nil {
		if _, ok := err.(*builder.BuildError); ok {
			return nil, errors.WithStack(&BuildError{Path: path, Err: err})
		}
		return nil, errors.WithStack(&ParseError{Path: path, Err: err})
	}
	if _, exists := o.programs[path]; !exists {
		o.order = append(o.order, path)
	}
	o.programs[path] = prog
	if scope, ok := o.builder.ScopeOf(prog); ok {
		o.scopes[path] = scope
	}
	return prog, nil
}

// Seal finalizes the codebase: resolves import references by literal path
// match, resolves function-call references to their callee Circuit, and
// seals the underlying node store. The Open value must not be used again
// after Seal succeeds.
func (o *Open) Seal() (*Sealed, error) {
	o.linkImports()
	circuits := o.indexCircuits()
	o.linkFunctionCalls(o.callSiteCircuits())
	o.store.Seal()

	return &Sealed{
		store:    o.store,
		table:    o.table,
		programs: o.programs,
		order:    o.order,
		circuits: circuits,
	}, nil
}

// linkImports resolves each Import's Reference to the Program registered
// under the exact path named by the import value (no relative-path
// rewriting is attempted: a miss leaves Reference nil), and copies the
// imported file's top-level scope into the importer's own scope so the
// importer's declarations can see it.
func (o *Open) linkImports() {
	for _, path := range o.order {
		prog := o.programs[path]
		scope := o.scopes[path]
		for _, decl := range prog.Declarations {
			imp, ok := decl.(*ast.Import)
			if !ok {
				continue
			}
			target, ok := o.programs[imp.Name()]
			if !ok {
				continue
			}
			imp.Reference = target
			if targetScope, ok := o.scopes[imp.Name()]; ok && scope != nil {
				o.table.Import(scope, targetScope)
			}
		}
	}
}

// indexCircuits returns every circuit in the codebase keyed by bare name,
// unscoped by file. This backs Sealed.Circuit, a direct by-name lookup
// that is not subject to the call-site visibility rule callSiteCircuits
// enforces for function-call resolution.
func (o *Open) indexCircuits() map[string]*ast.Circuit {
	circuits := make(map[string]*ast.Circuit)
	for _, node := range o.store.Nodes() {
		if c, ok := node.(*ast.Circuit); ok && c.Name != nil {
			circuits[c.Name.Name] = c
		}
	}
	return circuits
}

func isCircuitNode(n ast.Node) bool {
	_, ok := n.(*ast.Circuit)
	return ok
}

func isFunctionCallNode(n ast.Node) bool {
	_, ok := n.(*ast.FunctionCall)
	return ok
}

// namedCircuitsIn returns rootID's own descendant circuits keyed by name,
// without looking outside that subtree.
func namedCircuitsIn(st *store.Store, rootID ast.ID) map[string]*ast.Circuit {
	out := make(map[string]*ast.Circuit)
	for _, node := range walkChildrenCmp(st, rootID, isCircuitNode) {
		c := node.(*ast.Circuit)
		if c.Name != nil {
			out[c.Name.Name] = c
		}
	}
	return out
}

// callSiteCircuits returns, for each file, the circuits a call site in
// that file may resolve a bare name against: the file's own circuits
// first, then the circuits of each file it directly imports. Per spec
// §4.6 step 3 and invariant I5, a circuit not reachable this way -- e.g.
// one declared in an unrelated file with no import relationship -- is
// never a candidate, even if its name happens to collide.
func (o *Open) callSiteCircuits() map[string]map[string]*ast.Circuit {
	own := make(map[string]map[string]*ast.Circuit, len(o.order))
	for _, path := range o.order {
		own[path] = namedCircuitsIn(o.store, o.programs[path].ID())
	}

	reachable := make(map[string]map[string]*ast.Circuit, len(o.order))
	for _, path := range o.order {
		scope := make(map[string]*ast.Circuit, len(own[path]))
		for name, c := range own[path] {
			scope[name] = c
		}
		for _, decl := range o.programs[path].Declarations {
			imp, ok := decl.(*ast.Import)
			if !ok || imp.Reference == nil {
				continue
			}
			for name, c := range own[imp.Name()] {
				if _, exists := scope[name]; !exists {
					scope[name] = c
				}
			}
		}
		reachable[path] = scope
	}
	return reachable
}

// linkFunctionCalls resolves every FunctionCall whose Function is a plain
// Named reference to a circuit reachable from its own call site's file,
// filling in Reference. perFile is keyed exactly as callSiteCircuits
// returns it: by the path of the file the call itself was parsed from.
func (o *Open) linkFunctionCalls(perFile map[string]map[string]*ast.Circuit) {
	for _, path := range o.order {
		scope := perFile[path]
		for _, node := range walkChildrenCmp(o.store, o.programs[path].ID(), isFunctionCallNode) {
			call := node.(*ast.FunctionCall)
			named, ok := call.Function.(*ast.Named)
			if !ok {
				continue
			}
			if callee, ok := scope[named.Name]; ok {
				call.Reference = callee
			}
		}
	}
}
