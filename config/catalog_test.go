package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponses = `{
  "1": {"response": "Your order is on its way.", "category": "Order status"},
  "5": {"response": "Here is how returns work.", "category": "Returns"},
  "7": {"response": "", "category": "Empty"}
}`

func TestCatalogLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleResponses), 0o644))

	c, err := NewCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	r, ok := c.Lookup(5)
	require.True(t, ok)
	assert.Equal(t, "Here is how returns work.", r.Response)
	assert.Equal(t, "Returns", r.Category)

	_, ok = c.Lookup(2)
	assert.False(t, ok)

	_, ok = c.Lookup(7)
	assert.False(t, ok, "entries without a response body are treated as missing")
}

func TestCatalogMissingFileIsEmpty(t *testing.T) {
	c, err := NewCatalog(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	_, ok := c.Lookup(1)
	assert.False(t, ok)
}

func TestCatalogReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	c, err := NewCatalog(path)
	require.NoError(t, err)
	_, ok := c.Lookup(1)
	require.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte(sampleResponses), 0o644))
	require.NoError(t, c.Reload())
	_, ok = c.Lookup(1)
	assert.True(t, ok)
}

func TestCatalogMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"1": "not an object"`), 0o644))

	_, err := NewCatalog(path)
	assert.Error(t, err)
}
