package detect

import (
	"strings"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/codebase"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/store"
)

// AssertionErrorMessageVerbose flags assert statements whose message is
// absent, blank, or too short to be useful when the assertion fails.
type AssertionErrorMessageVerbose struct{}

// NewAssertionErrorMessageVerbose returns the
// assertion-error-message-verbose detector.
func NewAssertionErrorMessageVerbose() Detector { return AssertionErrorMessageVerbose{} }

const minAssertMessageLen = 3

// Metadata implements Detector.
func (AssertionErrorMessageVerbose) Metadata() Metadata {
	return loadMetadata("assertion-error-message-verbose")
}

// Check implements Detector.
func (AssertionErrorMessageVerbose) Check(sealed *codebase.Sealed) ([]Finding, error) {
	var findings []Finding
	for _, assertNode := range sealed.ListAssertNodes() {
		msg := assertNode.Message()
		if msg != nil && strings.TrimSpace(*msg) != "" && len(*msg) >= minAssertMessageLen {
			continue
		}
		findings = append(findings, findingForAssert(sealed, assertNode))
	}
	return findings, nil
}

func findingForAssert(sealed *codebase.Sealed, assertNode *ast.Assert) Finding {
	path, _ := sealed.FindNodeFile(assertNode.ID())
	parentName, parentType := "", "circuit"
	if parent, ok := sealed.GetParentContainer(assertNode.ID()); ok {
		switch p := parent.(type) {
		case *ast.Circuit:
			parentName = p.NameStr()
		case *ast.Constructor:
			parentName, parentType = "", "constructor"
		}
	}
	loc := assertNode.Location()
	fingerprint, _ := store.NodeFingerprint(assertNode)
	return Finding{
		FilePath:    path,
		OffsetStart: loc.OffsetStart,
		OffsetEnd:   loc.OffsetEnd,
		Fingerprint: fingerprint,
		Extras: map[string]string{
			"PARENT_NAME": parentName,
			"PARENT_TYPE": parentType,
		},
	}
}
