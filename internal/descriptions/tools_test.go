package descriptions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetToolDescription(t *testing.T) {
	for _, name := range GetAllToolNames() {
		assert.NotEqual(t, "Tool description not available", GetToolDescription(name), name)
	}
	assert.Equal(t, "Tool description not available", GetToolDescription("pdf_read_file"))
}

func TestGetAllToolNames(t *testing.T) {
	names := GetAllToolNames()
	assert.Len(t, names, 6)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "seo_get_suggestions")
}
