package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanschultz/float-worldbook/pkg/models"
)

const yamlWorld = `name: Riverlands
elements:
  - id: a
    name: Alice
    category: character
    locatedIn: c
  - id: b
    name: Bob
    category: character
    memberOf: c
  - id: c
    name: City
    category: place
    content: |
      # City
      A walled river town.
`

const jsonWorld = `{
  "name": "Riverlands",
  "elements": [
    {"id": "a", "name": "Alice", "locatedIn": "c"},
    {"id": "b", "name": "Bob", "memberOf": ["c", "guild"]},
    {"id": "c", "name": "City"}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	w, err := LoadFile(writeFile(t, "world.yaml", yamlWorld))
	require.NoError(t, err)

	assert.Equal(t, "Riverlands", w.Name)
	require.Len(t, w.Elements, 3)
	assert.Equal(t, "c", w.Elements[0].LocatedIn)
	assert.Equal(t, models.IDList{"c"}, w.Elements[1].MemberOf)
	assert.Contains(t, w.Elements[2].Content, "walled river town")
}

func TestLoadFileJSON(t *testing.T) {
	w, err := LoadFile(writeFile(t, "world.json", jsonWorld))
	require.NoError(t, err)

	require.Len(t, w.Elements, 3)
	assert.Equal(t, models.IDList{"c", "guild"}, w.Elements[1].MemberOf)
}

func TestLoadFileYMLExtension(t *testing.T) {
	_, err := LoadFile(writeFile(t, "WORLD.YML", yamlWorld))
	assert.NoError(t, err)
}

func TestLoadFileEmptyYAML(t *testing.T) {
	w, err := LoadFile(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, w.Elements)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(writeFile(t, "world.toml", "name = 'x'"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = LoadFile(writeFile(t, "bad.json", "{"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "bad.yaml", "elements: [\n"))
	assert.Error(t, err)
}
