package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliTreeJSON = `{
  "svc": {
    "components": ["svc.Server"],
    "children": {
      "svc/store": {"components": ["svc.store.Repo", "svc.store.Record"]}
    }
  }
}`

const cliGraphJSON = `{
  "svc.Server": {"name": "Server", "component_type": "class", "depends_on": ["svc.store.Repo"]},
  "svc.store.Repo": {"name": "Repo", "component_type": "class", "depends_on": ["svc.store.Record"]},
  "svc.store.Record": {"name": "Record", "component_type": "class"}
}`

func writeCLIArtifacts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "module_tree.json"), []byte(cliTreeJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dependency_graph.json"), []byte(cliGraphJSON), 0644))
	return dir
}

func TestRootCommandHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"analyze", "module", "component", "summary", "version", "init"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestAnalyzeCommand_Text(t *testing.T) {
	dir := writeCLIArtifacts(t)

	cmd := NewAnalyzeCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Structural Analysis")
	assert.Contains(t, out.String(), "svc/store")
}

func TestAnalyzeCommand_ExplicitArtifacts(t *testing.T) {
	dir := writeCLIArtifacts(t)

	cmd := NewAnalyzeCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--tree", filepath.Join(dir, "module_tree.json"),
		"--graph", filepath.Join(dir, "dependency_graph.json"),
	})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "svc")
}

func TestAnalyzeCommand_ConflictingFormats(t *testing.T) {
	dir := writeCLIArtifacts(t)

	cmd := NewAnalyzeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--json", "--yaml", dir})

	require.Error(t, cmd.Execute())
}

func TestAnalyzeCommand_MissingPath(t *testing.T) {
	cmd := NewAnalyzeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"/no/such/path"})

	require.Error(t, cmd.Execute())
}

func TestModuleCommand(t *testing.T) {
	dir := writeCLIArtifacts(t)

	cmd := NewModuleCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"svc/store", dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "svc/store")
	assert.Contains(t, out.String(), "found: true")
}

func TestModuleCommand_UnknownModule(t *testing.T) {
	dir := writeCLIArtifacts(t)

	cmd := NewModuleCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"svc/missing", dir})

	// unknown modules report found: false instead of failing
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "found: false")
}

func TestComponentCommand(t *testing.T) {
	dir := writeCLIArtifacts(t)

	cmd := NewComponentCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"svc.store.Repo", dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "svc.store.Repo")
}

func TestSummaryCommand(t *testing.T) {
	dir := writeCLIArtifacts(t)

	cmd := NewSummaryCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "total_modules: 2")
	assert.Contains(t, out.String(), "total_components: 3")
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--short"})

	require.NoError(t, cmd.Execute())
	assert.NotEmpty(t, out.String())
}

func TestInitCommand(t *testing.T) {
	tempDir := t.TempDir()
	t.Chdir(tempDir)

	cmd := NewInitCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.FileExists(t, filepath.Join(tempDir, ".codewiki.toml"))

	// a second run without --force must refuse to overwrite
	again := NewInitCmd()
	again.SetOut(&bytes.Buffer{})
	again.SetErr(&bytes.Buffer{})
	again.SetArgs([]string{})
	require.Error(t, again.Execute())
}
