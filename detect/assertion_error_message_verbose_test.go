package detect

import (
	"testing"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/codebase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertionErrorMessageVerbose(t *testing.T) {
	src := "export circuit set_admin(new_admin: Bytes<32>): [] {\n" +
		"            const current_proof = generate_key_proof(sigCounter as Field as Bytes<32>);\n" +
		"            assert admin == pad(32, \"\") \"\";\n" +
		"            admin = new_admin;\n" +
		"            return [];\n" +
		"        }"
	o := codebase.New()
	_, err := o.AddFile("test.compact", []byte(src))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	d := NewAssertionErrorMessageVerbose()
	findings, err := d.Check(sealed)
	require.NoError(t, err)
	require.Len(t, findings, 1)

	f := findings[0]
	assert.Equal(t, "test.compact", f.FilePath)
	assert.Equal(t, uint32(153), f.OffsetStart)
	assert.Equal(t, uint32(184), f.OffsetEnd)
	assert.Equal(t, map[string]string{
		"PARENT_NAME": "set_admin",
		"PARENT_TYPE": "circuit",
	}, f.Extras)
}

func TestAssertionErrorMessageVerboseNoFindingWithPaddedShortMessage(t *testing.T) {
	src := `export circuit set_admin(new_admin: Bytes<32>): [] {
            assert admin == new_admin "ab ";
            admin = new_admin;
            return [];
        }`
	o := codebase.New()
	_, err := o.AddFile("test.compact", []byte(src))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	d := NewAssertionErrorMessageVerbose()
	findings, err := d.Check(sealed)
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestAssertionErrorMessageVerboseNoFindingWithGoodMessage(t *testing.T) {
	src := `export circuit set_admin(new_admin: Bytes<32>): [] {
            assert admin == new_admin "new admin must differ from current admin";
            admin = new_admin;
            return [];
        }`
	o := codebase.New()
	_, err := o.AddFile("test.compact", []byte(src))
	require.NoError(t, err)
	sealed, err := o.Seal()
	require.NoError(t, err)

	d := NewAssertionErrorMessageVerbose()
	findings, err := d.Check(sealed)
	require.NoError(t, err)
	assert.Empty(t, findings)
}
