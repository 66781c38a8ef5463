package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePragmaAndImport(t *testing.T) {
	src := []byte(`pragma language_version >= 0.13.0;
import "std";
`)
	root, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "source_file", root.Kind)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "pragma", root.Children[0].Kind)
	assert.Equal(t, "idecl", root.Children[1].Kind)
}

func TestParseLedgerAndWitness(t *testing.T) {
	src := []byte(`
export ledger sealed counter: Uint<0..255>;
witness getSecret(): Field;
`)
	root, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	ledger := root.Children[0]
	assert.Equal(t, "ldecl", ledger.Kind)
	assert.Equal(t, "true", ledger.ChildByFieldName("exported").Text())
	assert.Equal(t, "true", ledger.ChildByFieldName("sealed").Text())
	assert.Equal(t, "counter", ledger.ChildByFieldName("name").Text())
	assert.Equal(t, "uint_type", ledger.ChildByFieldName("type").Kind)

	witness := root.Children[1]
	assert.Equal(t, "wdecl", witness.Kind)
	assert.Equal(t, "getSecret", witness.ChildByFieldName("name").Text())
}

func TestParseCircuitWithBodyAndControlFlow(t *testing.T) {
	src := []byte(`
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
`)
	root, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)
	circuit := root.Children[0]
	assert.Equal(t, "cdefn", circuit.Kind)
	assert.Equal(t, "contains", circuit.ChildByFieldName("name").Text())
	body := circuit.ChildByFieldName("body")
	require.NotNil(t, body)
	assert.Equal(t, "block", body.Kind)
	stmts := body.ChildrenByFieldName("statement")
	require.Len(t, stmts, 4)
	assert.Equal(t, "const_stmt", stmts[0].Kind)
	assert.Equal(t, "for_stmt", stmts[1].Kind)
	assert.Equal(t, "assert_stmt", stmts[2].Kind)

	forNode := stmts[1]
	rangeNode := forNode.ChildByFieldName("range")
	require.NotNil(t, rangeNode)
	assert.Equal(t, "nat_literal", rangeNode.ChildByFieldName("lower").Kind)
	assert.Equal(t, "nat_literal", rangeNode.ChildByFieldName("upper").Kind)
}

func TestParseStructAndEnum(t *testing.T) {
	src := []byte(`
export struct Point { x: Field, y: Field }
enum Color { Red, Green, Blue }
`)
	root, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	st := root.Children[0]
	assert.Equal(t, "struct", st.Kind)
	assert.Len(t, st.ChildrenByFieldName("field"), 2)

	en := root.Children[1]
	assert.Equal(t, "enumdef", en.Kind)
	assert.Len(t, en.ChildrenByFieldName("option"), 3)
}

func TestParseStructTermAndMemberAccessCall(t *testing.T) {
	src := []byte(`
circuit make(): Bool {
  const p = Point { x: 1, y: 2 };
  return p.isOrigin();
}
`)
	root, err := Parse(src)
	require.NoError(t, err)
	circuit := root.Children[0]
	stmts := circuit.ChildByFieldName("body").ChildrenByFieldName("statement")
	constStmt := stmts[0]
	structTerm := constStmt.ChildByFieldName("value")
	assert.Equal(t, "struct_term", structTerm.Kind)
	assert.Len(t, structTerm.ChildrenByFieldName("struct_arg"), 2)

	retStmt := stmts[1]
	call := retStmt.ChildByFieldName("value")
	assert.Equal(t, "member_access_expr", call.Kind)
	assert.NotNil(t, call.ChildByFieldName("arguments"))
}

func TestParseModuleAndContract(t *testing.T) {
	src := []byte(`
module Utils {
  circuit id(x: Field): Field {
    return x;
  }
}
contract Main {
  export circuit run(): Bool {
    return true;
  }
}
`)
	root, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "mdefn", root.Children[0].Kind)
	assert.Equal(t, "contract", root.Children[1].Kind)
	circuit := root.Children[1].ChildByFieldName("circuit")
	assert.Equal(t, "true", circuit.ChildByFieldName("exported").Text())
}

func TestParseInvalidSyntaxReturnsParseError(t *testing.T) {
	src := []byte(`circuit (): Bool { }`)
	_, err := Parse(src)
	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}
