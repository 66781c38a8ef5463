package builder

import (
	"testing"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/store"
	"github.com/OpenZeppelin/compact-security-detectors-sdk/symbols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder() (*Builder, *store.Store, *symbols.Table) {
	st := store.New()
	table := symbols.NewTable()
	return New(st, table), st, table
}

func TestBuildPragmaAndImport(t *testing.T) {
	b, st, _ := newBuilder()
	prog, err := b.BuildFile([]byte(`pragma language_version >= 0.13.0;
import "std";
`))
	require.NoError(t, err)
	require.Len(t, prog.Directives, 1)
	require.Len(t, prog.Declarations, 1)

	pragma := prog.Directives[0]
	assert.Equal(t, "language_version", pragma.Name())
	require.NotNil(t, pragma.VersionExpr)
	v, ok := pragma.VersionExpr.(*ast.Version)
	require.True(t, ok)
	assert.Equal(t, ast.OpGte, v.Op)
	assert.Equal(t, 0, v.Major)

	imp, ok := prog.Declarations[0].(*ast.Import)
	require.True(t, ok)
	assert.Equal(t, "std", imp.Name())

	node, found := st.FindNode(prog.ID())
	require.True(t, found)
	assert.Equal(t, prog, node)
}

func TestBuildLedgerAndWitnessBindSymbols(t *testing.T) {
	b, _, _ := newBuilder()
	prog, err := b.BuildFile([]byte(`
export ledger sealed counter: Uint<0..255>;
witness getSecret(): Field;
`))
	require.NoError(t, err)
	require.Len(t, prog.Declarations, 2)

	ledger := prog.Declarations[0].(*ast.Ledger)
	assert.True(t, ledger.IsExported)
	assert.True(t, ledger.IsSealed)
	assert.Equal(t, "counter", ledger.NameStr())
	assert.IsType(t, &ast.Uint{}, ledger.Ty)

	fileScope, ok := b.ScopeOf(prog)
	require.True(t, ok)
	ty, ok := fileScope.Lookup("counter")
	require.True(t, ok)
	assert.IsType(t, &ast.Uint{}, ty)

	witness := prog.Declarations[1].(*ast.Witness)
	assert.Equal(t, "getSecret", witness.Name.Name)
	assert.IsType(t, &ast.Field{}, witness.Ty)
}

func TestBuildCircuitWithControlFlow(t *testing.T) {
	b, _, _ := newBuilder()
	prog, err := b.BuildFile([]byte(`
circuit contains(arr: Vector<4, Field>, needle: Field): Bool {
  const found = false;
  for (const i of 0..4) {
    if (arr[i] == needle) {
      found = true;
    }
  }
  assert found "needle must be present";
  return found;
}
`))
	require.NoError(t, err)
	require.Len(t, prog.Definitions, 1)
	circuit := prog.Definitions[0].(*ast.Circuit)
	assert.Equal(t, "contains", circuit.NameStr())
	require.Len(t, circuit.Arguments, 2)
	assert.IsType(t, &ast.Bool{}, circuit.Ty)

	require.NotNil(t, circuit.Body)
	require.Len(t, circuit.Body.Statements, 4)

	forStmt, ok := circuit.Body.Statements[1].(*ast.For)
	require.True(t, ok)
	upper, resolvable := forStmt.UpperBound()
	require.True(t, resolvable)
	assert.Equal(t, uint64(4), upper)

	assertStmt, ok := circuit.Body.Statements[2].(*ast.Assert)
	require.True(t, ok)
	require.NotNil(t, assertStmt.Message())
	assert.Equal(t, "needle must be present", *assertStmt.Message())
}

func TestBuildStructAndEnumSelfReferencingType(t *testing.T) {
	b, _, _ := newBuilder()
	prog, err := b.BuildFile([]byte(`
export struct Point { x: Field, y: Field }
enum Color { Red, Green, Blue }
`))
	require.NoError(t, err)
	require.Len(t, prog.Definitions, 2)

	st := prog.Definitions[0].(*ast.Structure)
	assert.Equal(t, "Point", st.NameStr())
	require.Len(t, st.Fields, 2)
	ref, ok := st.Type().(*ast.Ref)
	require.True(t, ok)
	assert.Equal(t, ast.SyntheticID, ref.ID())
	assert.Equal(t, "Point", ref.Name.Name)

	fileScope, ok := b.ScopeOf(prog)
	require.True(t, ok)
	ty, ok := fileScope.Lookup("Point")
	require.True(t, ok)
	assert.IsType(t, &ast.Ref{}, ty)

	en := prog.Definitions[1].(*ast.Enum)
	assert.Equal(t, "Color", en.NameStr())
	assert.Len(t, en.Options, 3)
}

func TestBuildStructTermAndMemberAccessCall(t *testing.T) {
	b, _, _ := newBuilder()
	prog, err := b.BuildFile([]byte(`
circuit make(): Bool {
  const p = Point { x: 1, y: 2 };
  return p.isOrigin();
}
`))
	require.NoError(t, err)
	circuit := prog.Definitions[0].(*ast.Circuit)
	constStmt := circuit.Body.Statements[0].(*ast.Const)
	structExpr, ok := constStmt.Value.(*ast.StructExpr)
	require.True(t, ok)
	assert.Equal(t, "Point", structExpr.TypeName)
	require.Len(t, structExpr.Args, 2)
	named, ok := structExpr.Args[0].(*ast.NamedArg)
	require.True(t, ok)
	assert.Equal(t, "x", named.Name)

	retStmt := circuit.Body.Statements[1].(*ast.Return)
	member, ok := retStmt.Value.(*ast.MemberAccess)
	require.True(t, ok)
	assert.Equal(t, "isOrigin", member.Member)
	assert.True(t, member.IsCall())
}

func TestBuildModuleNestsScopeAndCircuits(t *testing.T) {
	b, _, _ := newBuilder()
	prog, err := b.BuildFile([]byte(`
module Utils {
  circuit id(x: Field): Field {
    return x;
  }
}
`))
	require.NoError(t, err)
	require.Len(t, prog.Modules, 1)
	mod := prog.Modules[0]
	assert.Equal(t, "Utils", mod.NameStr())
	require.Len(t, mod.Nodes, 1)
	assert.IsType(t, &ast.Circuit{}, mod.Nodes[0])

	fileScope, ok := b.ScopeOf(prog)
	require.True(t, ok)
	_, ok = fileScope.Lookup("Utils")
	assert.True(t, ok)
}

func TestBuildInvalidNatLiteralLeadingZeroFails(t *testing.T) {
	b, _, _ := newBuilder()
	_, err := b.BuildFile([]byte(`
circuit bad(): Nat {
  return 007;
}
`))
	require.Error(t, err)
}

func TestMultipleFilesGetIsolatedScopesButSharedMonotonicIDs(t *testing.T) {
	st := store.New()
	table := symbols.NewTable()
	b := New(st, table)

	progA, err := b.BuildFile([]byte(`export struct A { x: Field }`))
	require.NoError(t, err)
	progB, err := b.BuildFile([]byte(`export struct B { y: Field }`))
	require.NoError(t, err)

	assert.NotEqual(t, progA.ID(), progB.ID())

	scopeA, ok := b.ScopeOf(progA)
	require.True(t, ok)
	scopeB, ok := b.ScopeOf(progB)
	require.True(t, ok)

	_, okA := scopeA.Lookup("A")
	assert.True(t, okA)
	_, leaksB := scopeA.Lookup("B")
	assert.False(t, leaksB, "file A's scope must not see file B's declarations without an import")

	_, okB := scopeB.Lookup("B")
	assert.True(t, okB)
	_, leaksA := scopeB.Lookup("A")
	assert.False(t, leaksA, "file B's scope must not see file A's declarations without an import")
}
