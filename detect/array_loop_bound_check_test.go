package detect

import (
	"testing"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/codebase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayLoopBoundCheck(t *testing.T) {
	src := `export circuit contains(arr: Vector<10, Address>, addr: Address): Bool {
            for (const i of 0 .. 10) {
                if (arr[11] == addr) {
                    return true;
                }
            }
            return false;
        }`
	o := codebase.New()
	_, err := o.AddFile("test.compact", []byte(src))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	d := NewArrayLoopBoundCheck()
	findings, err := d.Check(sealed)
	require.NoError(t, err)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, "test.compact", f.FilePath)
	assert.Equal(t, uint32(132), f.OffsetStart)
	assert.Equal(t, uint32(139), f.OffsetEnd)
	assert.Equal(t, map[string]string{
		"ARRAY_INDEX_ACCESS": "arr[11]",
		"PARENT_NAME":        "contains",
		"PARENT_TYPE":        "circuit",
	}, f.Extras)
}

func TestArrayLoopBoundCheckNoFindingWhenVectorSmallerThanBound(t *testing.T) {
	src := `export circuit contains(arr: Vector<3, Address>, addr: Address): Bool {
            for (const i of 0 .. 10) {
                if (arr[2] == addr) {
                    return true;
                }
            }
            return false;
        }`
	o := codebase.New()
	_, err := o.AddFile("test.compact", []byte(src))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	d := NewArrayLoopBoundCheck()
	findings, err := d.Check(sealed)
	require.NoError(t, err)
	assert.Empty(t, findings)
}
