package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/codewiki-dev/codewiki/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultTreePatterns = []string{"**/module_tree.json"}
var defaultGraphPatterns = []string{"**/dependency_graph.json"}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
}

func TestLocate_FindsNestedArtifacts(t *testing.T) {
	dir := t.TempDir()
	treePath := filepath.Join(dir, "artifacts", "module_tree.json")
	graphPath := filepath.Join(dir, "artifacts", "dependency_graph.json")
	touch(t, treePath)
	touch(t, graphPath)

	locator := NewArtifactLocator()
	gotTree, gotGraph, err := locator.Locate([]string{dir}, defaultTreePatterns, defaultGraphPatterns)
	require.NoError(t, err)
	assert.Equal(t, treePath, gotTree)
	assert.Equal(t, graphPath, gotGraph)
}

func TestLocate_ShallowestMatchWins(t *testing.T) {
	dir := t.TempDir()
	shallow := filepath.Join(dir, "module_tree.json")
	deep := filepath.Join(dir, "build", "old", "module_tree.json")
	touch(t, shallow)
	touch(t, deep)
	touch(t, filepath.Join(dir, "dependency_graph.json"))

	locator := NewArtifactLocator()
	gotTree, _, err := locator.Locate([]string{dir}, defaultTreePatterns, defaultGraphPatterns)
	require.NoError(t, err)
	assert.Equal(t, shallow, gotTree)
}

func TestLocate_MissingTreeFails(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "dependency_graph.json"))

	locator := NewArtifactLocator()
	_, _, err := locator.Locate([]string{dir}, defaultTreePatterns, defaultGraphPatterns)
	require.Error(t, err)

	var domainErr domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrCodeFileNotFound, domainErr.Code)
}

func TestLocate_NonexistentRootFails(t *testing.T) {
	locator := NewArtifactLocator()
	_, _, err := locator.Locate([]string{"/no/such/dir"}, defaultTreePatterns, defaultGraphPatterns)
	require.Error(t, err)
}

func TestLocate_DirectFilePath(t *testing.T) {
	dir := t.TempDir()
	treePath := filepath.Join(dir, "module_tree.json")
	graphPath := filepath.Join(dir, "dependency_graph.json")
	touch(t, treePath)
	touch(t, graphPath)

	locator := NewArtifactLocator()
	gotTree, gotGraph, err := locator.Locate([]string{treePath, graphPath}, defaultTreePatterns, defaultGraphPatterns)
	require.NoError(t, err)
	assert.Equal(t, treePath, gotTree)
	assert.Equal(t, graphPath, gotGraph)
}

func TestLocate_MultipleRoots(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	treePath := filepath.Join(dirA, "module_tree.json")
	graphPath := filepath.Join(dirB, "dependency_graph.json")
	touch(t, treePath)
	touch(t, graphPath)

	locator := NewArtifactLocator()
	gotTree, gotGraph, err := locator.Locate([]string{dirA, dirB}, defaultTreePatterns, defaultGraphPatterns)
	require.NoError(t, err)
	assert.Equal(t, treePath, gotTree)
	assert.Equal(t, graphPath, gotGraph)
}
