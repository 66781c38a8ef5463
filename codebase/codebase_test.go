package codebase

import (
	"testing"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFileAndSealLinksImports(t *testing.T) {
	o := New()
	_, err := o.AddFile("std.compact", []byte(`export struct Point { x: Field, y: Field }`))
	require.NoError(t, err)
	_, err = o.AddFile("main.compact", []byte(`import "std.compact";`))
	require.NoError(t, err)

	sealed, err := o.Seal()
	require.NoError(t, err)

	mainProg, ok := sealed.Program("main.compact")
	require.True(t, ok)
	imp := mainProg.Declarations[0].(*ast.Import)
	require.NotNil(t, imp.Reference)
	stdProg, _ := sealed.Program("std.compact")
	assert.Same(t, stdProg, imp.Reference)
}

func TestSealLinksFunctionCalls(t *testing.T) {
	o := New()
	_, err := o.AddFile("main.compact", []byte(`
circuit helper(x: Field): Field {
  return x;
}
circuit run(): Field {
  return helper(1);
}
`))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	run, ok := sealed.Circuit("run")
	require.True(t, ok)
	retStmt := run.Body.Statements[0].(*ast.Return)
	call := retStmt.Value.(*ast.FunctionCall)
	require.NotNil(t, call.Reference)
	assert.Equal(t, "helper", call.Reference.NameStr())
}

func TestFunctionCallNotResolvedAcrossUnrelatedFiles(t *testing.T) {
	o := New()
	_, err := o.AddFile("a.compact", []byte(`
circuit helper(x: Field): Field {
  return x;
}
`))
	require.NoError(t, err)
	_, err = o.AddFile("b.compact", []byte(`
circuit run(): Field {
  return helper(1);
}
`))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	bProg, _ := sealed.Program("b.compact")
	run := bProg.Definitions[0].(*ast.Circuit)
	retStmt := run.Body.Statements[0].(*ast.Return)
	call := retStmt.Value.(*ast.FunctionCall)
	assert.Nil(t, call.Reference)
}

func TestFunctionCallResolvedThroughImport(t *testing.T) {
	o := New()
	_, err := o.AddFile("a.compact", []byte(`
circuit helper(x: Field): Field {
  return x;
}
`))
	require.NoError(t, err)
	_, err = o.AddFile("b.compact", []byte(`
import "a.compact";
circuit run(): Field {
  return helper(1);
}
`))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	bProg, _ := sealed.Program("b.compact")
	run := bProg.Definitions[0].(*ast.Circuit)
	retStmt := run.Body.Statements[0].(*ast.Return)
	call := retStmt.Value.(*ast.FunctionCall)
	require.NotNil(t, call.Reference)
	assert.Equal(t, "helper", call.Reference.NameStr())
}

func TestListAssertAndForNodesAcrossFiles(t *testing.T) {
	o := New()
	_, err := o.AddFile("a.compact", []byte(`
circuit checkA(): Bool {
  assert true "a";
  return true;
}
`))
	require.NoError(t, err)
	_, err = o.AddFile("b.compact", []byte(`
circuit checkB(): Bool {
  for (const i of 0..3) {
    assert true "b";
  }
  return true;
}
`))
	require.NoError(t, err)

	sealed, err := o.Seal()
	require.NoError(t, err)

	asserts := sealed.ListAssertNodes()
	assert.Len(t, asserts, 2)
	fors := sealed.ListForStatementNodes()
	require.Len(t, fors, 1)
	upper, ok := fors[0].UpperBound()
	require.True(t, ok)
	assert.Equal(t, uint64(3), upper)
}

func TestListExportedAndNonExportedCircuits(t *testing.T) {
	o := New()
	_, err := o.AddFile("main.compact", []byte(`
export circuit pub(): Bool {
  return true;
}
circuit priv(): Bool {
  return false;
}
`))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	prog, _ := sealed.Program("main.compact")
	exported := sealed.ListExportedCircuitsFromProgram(prog)
	nonExported := sealed.ListNonExportedCircuitsFromProgram(prog)
	require.Len(t, exported, 1)
	require.Len(t, nonExported, 1)
	assert.Equal(t, "pub", exported[0].NameStr())
	assert.Equal(t, "priv", nonExported[0].NameStr())
}

func TestListExportedCircuitsFromProgramFindsModuleNestedCircuits(t *testing.T) {
	o := New()
	_, err := o.AddFile("main.compact", []byte(`
export circuit top(): Bool {
  return true;
}
module Utils {
  export circuit nested(): Bool {
    return false;
  }
}
`))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	prog, _ := sealed.Program("main.compact")
	exported := sealed.ListExportedCircuitsFromProgram(prog)
	names := make([]string, 0, len(exported))
	for _, c := range exported {
		names = append(names, c.NameStr())
	}
	assert.ElementsMatch(t, []string{"top", "nested"}, names)
}

func TestGetParentContainerAndChildrenCmp(t *testing.T) {
	o := New()
	_, err := o.AddFile("main.compact", []byte(`
circuit run(): Bool {
  assert true "x";
  return true;
}
`))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	asserts := sealed.ListAssertNodes()
	require.Len(t, asserts, 1)
	container, ok := sealed.GetParentContainer(asserts[0].ID())
	require.True(t, ok)
	circuit, ok := container.(*ast.Circuit)
	require.True(t, ok)
	assert.Equal(t, "run", circuit.NameStr())

	children := sealed.GetChildrenCmp(circuit.ID(), nil)
	require.Len(t, children, 7)
	assert.Same(t, asserts[0], children[3])

	asserts2 := sealed.GetChildrenCmp(circuit.ID(), func(n ast.Node) bool {
		_, ok := n.(*ast.Assert)
		return ok
	})
	require.Len(t, asserts2, 1)
	assert.Same(t, asserts[0], asserts2[0])
}

func TestGetSymbolTypeByID(t *testing.T) {
	o := New()
	_, err := o.AddFile("main.compact", []byte(`
export ledger counter: Nat;
`))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	prog, _ := sealed.Program("main.compact")
	ledger := prog.Declarations[0].(*ast.Ledger)
	ty, ok := sealed.GetSymbolTypeByID(ledger.Name.ID())
	require.True(t, ok)
	assert.IsType(t, &ast.Nat{}, ty)
}
