package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadMetadataPopulatesTemplates(t *testing.T) {
	m := loadMetadata("array-loop-bound-check")
	assert.Equal(t, "array-loop-bound-check", m.UID)
	assert.Equal(t, "medium", m.Severity)
	assert.Contains(t, m.Tags, "correctness")
	assert.NotEmpty(t, m.Template)
	assert.NotEmpty(t, m.TitleSingleInstance)
}

func TestRegistryAllAndSelect(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewArrayLoopBoundCheck())
	reg.Register(NewAssertionErrorMessageVerbose())

	assert.Len(t, reg.All(), 2)
	assert.Len(t, reg.Select(nil), 2)

	selected := reg.Select([]string{"assertion-error-message-verbose"})
	assert.Len(t, selected, 1)
	assert.Equal(t, "assertion-error-message-verbose", selected[0].Metadata().UID)
}
