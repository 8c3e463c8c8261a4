package dsl

import (
	"os"
	"path/filepath"
	"testing"

	"familytree/internal/family"
	"familytree/internal/relation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader("testdata/family.yaml")
	require.NoError(t, loader.Load())

	doc := loader.Document()
	require.NotNil(t, doc)
	assert.Equal(t, "arthur", doc.Namespace)

	tree := loader.Tree()
	require.NotNil(t, tree)
	assert.Equal(t, 12, tree.Len())

	r := relation.NewResolver(tree)
	uncles := r.Get("zim", "paternal_uncle")
	require.Len(t, uncles, 1)
	assert.Equal(t, "UncleJoe", uncles[0].Name())

	brothers := r.Get("zim", "brother_in_law")
	require.Len(t, brothers, 1)
	assert.Equal(t, "BroTom", brothers[0].Name())

	siblings := r.Get("zim", "siblings")
	require.Len(t, siblings, 1)
	assert.Equal(t, "Amy", siblings[0].Name())
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read family file")
	assert.Nil(t, loader.Tree())
}

func TestLoaderKeepsPreviousTreeOnFailure(t *testing.T) {
	path := writeDocument(t, `
version: "1"
people:
  - {id: a, name: A, gender: male}
`)
	loader := NewLoader(path)
	require.NoError(t, loader.Load())
	first := loader.Tree()
	doc := loader.Document()

	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\npeople:\n  - {id: a, name: A, gender: robot}\n"), 0644))
	require.Error(t, loader.Load())
	assert.Same(t, first, loader.Tree())
	assert.Same(t, doc, loader.Document())
}

func TestBuildGenderViolation(t *testing.T) {
	doc := &FamilyDocument{
		Version: "1",
		People: []PersonRecord{
			{ID: "a", Name: "A", Gender: "male", Mother: "b"},
			{ID: "b", Name: "B", Gender: "male"},
		},
	}
	_, err := Build(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, family.ErrInvalidGender)
	assert.Contains(t, err.Error(), "person 'a'")
}

func TestParseBytesInvalidYAML(t *testing.T) {
	_, err := ParseBytes([]byte("people: [unterminated"))
	assert.Error(t, err)
}
