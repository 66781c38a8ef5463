package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintIsStableAndDistinguishesInput(t *testing.T) {
	a, err := Fingerprint([]byte("arr[11]"))
	assert.NoError(t, err)
	b, err := Fingerprint([]byte("arr[11]"))
	assert.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Fingerprint([]byte("arr[12]"))
	assert.NoError(t, err)
	assert.NotEqual(t, a, c)
}
