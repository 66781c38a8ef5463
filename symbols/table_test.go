package symbols

import (
	"testing"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindAndLookupByName(t *testing.T) {
	table := NewTable()
	circuitScope := NewScope(KindCircuit, "contains", table.Root)
	require.NoError(t, table.Bind(circuitScope, 1, "arr", &ast.Vector{Elem: &ast.Ref{}}))

	ty, ok := circuitScope.Lookup("arr")
	require.True(t, ok)
	assert.IsType(t, &ast.Vector{}, ty)

	_, ok = table.Root.Lookup("arr")
	assert.False(t, ok, "lookup from a sibling/parent scope should not see a child's binding")
}

func TestLookupWalksParentChain(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Bind(table.Root, 1, "Ledger1", &ast.Nat{}))
	block := NewScope(KindBlock, "", table.Root)
	ty, ok := block.Lookup("Ledger1")
	require.True(t, ok)
	assert.IsType(t, &ast.Nat{}, ty)
}

func TestBindUnknownThenKnownReplacesInPlace(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Bind(table.Root, 1, "x", nil))
	ty, ok := table.Root.Lookup("x")
	require.True(t, ok)
	assert.Nil(t, ty)

	require.NoError(t, table.Bind(table.Root, 1, "x", &ast.Bool{}))
	ty, ok = table.Root.Lookup("x")
	require.True(t, ok)
	assert.IsType(t, &ast.Bool{}, ty)
}

func TestBindConflictingTypesErrors(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Bind(table.Root, 1, "x", &ast.Bool{}))
	err := table.Bind(table.Root, 2, "x", &ast.Nat{})
	require.Error(t, err)
	assert.IsType(t, &ConflictError{}, err)
}

func TestNewFileScopeIsolatesFiles(t *testing.T) {
	table := NewTable()
	fileA := table.NewFileScope()
	fileB := table.NewFileScope()

	require.NoError(t, table.Bind(fileA, 1, "Point", &ast.Ref{}))

	_, ok := fileA.Lookup("Point")
	require.True(t, ok)
	_, leaks := fileB.Lookup("Point")
	assert.False(t, leaks, "an unrelated file's scope must not see another file's bindings")
}

func TestImportCopiesBindingsWithoutOverwritingLocalOnes(t *testing.T) {
	table := NewTable()
	fileA := table.NewFileScope()
	fileB := table.NewFileScope()

	require.NoError(t, table.Bind(fileA, 1, "helper", &ast.Bool{}))
	require.NoError(t, table.Bind(fileB, 2, "local", &ast.Nat{}))

	table.Import(fileB, fileA)

	ty, ok := fileB.Lookup("helper")
	require.True(t, ok)
	assert.IsType(t, &ast.Bool{}, ty)

	ty, ok = fileB.Lookup("local")
	require.True(t, ok)
	assert.IsType(t, &ast.Nat{}, ty)

	_, ok = fileA.Lookup("local")
	assert.False(t, ok, "Import must not leak the importer's own bindings back into the imported file")
}

func TestTypeByID(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Bind(table.Root, 7, "x", &ast.Bool{}))
	ty, ok := table.TypeByID(7)
	require.True(t, ok)
	assert.IsType(t, &ast.Bool{}, ty)

	_, ok = table.TypeByID(8)
	assert.False(t, ok)
}
