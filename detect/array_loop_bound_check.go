package detect

import (
	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/codebase"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/store"
)

// ArrayLoopBoundCheck flags each index access into a literal-sized Vector
// inside a for loop with a resolvable upper bound, when the Vector's
// declared size is at or above that bound. The index expression itself is
// not compared against either value.
type ArrayLoopBoundCheck struct{}

// NewArrayLoopBoundCheck returns the array-loop-bound-check detector.
func NewArrayLoopBoundCheck() Detector { return ArrayLoopBoundCheck{} }

// Metadata implements Detector.
func (ArrayLoopBoundCheck) Metadata() Metadata {
	return loadMetadata("array-loop-bound-check")
}

// Check implements Detector.
func (ArrayLoopBoundCheck) Check(sealed *codebase.Sealed) ([]Finding, error) {
	var findings []Finding
	for _, forStmt := range sealed.ListForStatementNodes() {
		upperBound, ok := forStmt.UpperBound()
		if !ok {
			continue
		}
		indexAccesses := sealed.GetChildrenCmp(forStmt.ID(), func(n ast.Node) bool {
			_, ok := n.(*ast.IndexAccess)
			return ok
		})
		for _, child := range indexAccesses {
			indexAccess, ok := child.(*ast.IndexAccess)
			if !ok {
				continue
			}
			arrType, ok := sealed.GetSymbolTypeByID(indexAccess.Target.ID())
			if !ok {
				continue
			}
			vec, ok := arrType.(*ast.Vector)
			if !ok || vec.SizeIdent != nil {
				continue
			}
			if vec.Size >= upperBound {
				findings = append(findings, findingForIndexAccess(sealed, indexAccess))
			}
		}
	}
	return findings, nil
}

func findingForIndexAccess(sealed *codebase.Sealed, indexAccess *ast.IndexAccess) Finding {
	path, _ := sealed.FindNodeFile(indexAccess.ID())
	parentName, parentType := "Unknown", "circuit"
	if parent, ok := sealed.GetParentContainer(indexAccess.ID()); ok {
		switch p := parent.(type) {
		case *ast.Circuit:
			parentName = p.NameStr()
		case *ast.Constructor:
			parentName, parentType = "", "constructor"
		}
	}
	loc := indexAccess.Location()
	fingerprint, _ := store.NodeFingerprint(indexAccess)
	return Finding{
		FilePath:    path,
		OffsetStart: loc.OffsetStart,
		OffsetEnd:   loc.OffsetEnd,
		Fingerprint: fingerprint,
		Extras: map[string]string{
			"ARRAY_INDEX_ACCESS": loc.SourceText,
			"PARENT_NAME":        parentName,
			"PARENT_TYPE":        parentType,
		},
	}
}
