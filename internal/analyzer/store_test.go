package analyzer

import (
	"strings"
	"testing"

	"github.com/codewiki-dev/codewiki/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeModuleTree(t *testing.T) {
	input := `{
		"core": {
			"children": {
				"core/api": {"components": ["core.api.Server"]}
			},
			"components": ["core.App"]
		}
	}`

	tree, err := DecodeModuleTree(strings.NewReader(input))
	require.NoError(t, err)
	require.Contains(t, tree, "core")
	assert.Equal(t, []string{"core.App"}, tree["core"].Components)
	require.Contains(t, tree["core"].Children, "core/api")
	assert.Equal(t, []string{"core.api.Server"}, tree["core"].Children["core/api"].Components)
}

func TestDecodeModuleTree_EmptyAndNull(t *testing.T) {
	tree, err := DecodeModuleTree(strings.NewReader("{}"))
	require.NoError(t, err)
	assert.Empty(t, tree)

	tree, err = DecodeModuleTree(strings.NewReader("null"))
	require.NoError(t, err)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestDecodeModuleTree_NonMappingFailsLoudly(t *testing.T) {
	_, err := DecodeModuleTree(strings.NewReader(`["not", "a", "mapping"]`))
	require.Error(t, err)

	var derr domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeDecodeError, derr.Code)
}

func TestDecodeDependencyGraph_Defaults(t *testing.T) {
	input := `{
		"pkg.mod.Thing": {},
		"pkg.Other": {"name": "Other", "component_type": "class", "depends_on": ["pkg.mod.Thing", "missing.id"]}
	}`

	graph, err := DecodeDependencyGraph(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, graph, 2)
	assert.Empty(t, graph["pkg.mod.Thing"].DependsOn)
	assert.Equal(t, []string{"pkg.mod.Thing", "missing.id"}, graph["pkg.Other"].DependsOn)
}

func TestDecodeDependencyGraph_NonMappingFailsLoudly(t *testing.T) {
	_, err := DecodeDependencyGraph(strings.NewReader(`42`))
	require.Error(t, err)
}
