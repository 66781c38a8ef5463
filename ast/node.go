// Package ast defines the tagged-variant node model for Compact source:
// programs, directives, declarations, definitions, statements, expressions,
// types, patterns, functions and literals, all sharing a uniform id and
// location shape.
package ast

import "fmt"

// ID is a node identifier, unique within one codebase. Ids are allocated by
// a monotone counter during building and never reused.
type ID uint32

// Location records the byte and line/column span of a node's source text.
type Location struct {
	OffsetStart uint32
	OffsetEnd   uint32
	StartLine   int
	StartCol    int
	EndLine     int
	EndCol      int
	SourceText  string
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", l.StartLine, l.StartCol, l.EndLine, l.EndCol)
}

// Node is implemented by every AST variant. Children returns the node's
// structural children in a fixed, deterministic order. The codebase queries
// do not call it: they walk the parent/child routes recorded in the store.
type Node interface {
	ID() ID
	Location() Location
	Children() []Node
}

// Base carries the id/location pair common to every node, mirroring the
// `{ id, location, ... }` shape every variant shares.
type Base struct {
	Id  ID
	Loc Location
}

func (b Base) ID() ID             { return b.Id }
func (b Base) Location() Location { return b.Loc }

// SyntheticID marks nodes constructed on the fly (e.g. the Ref produced by
// Structure.Type()/Enum.Type()) rather than during building. Such nodes are
// never stored and never looked up by id.
const SyntheticID ID = 1<<32 - 1
