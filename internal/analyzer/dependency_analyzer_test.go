package analyzer

import (
	"testing"

	"github.com/codewiki-dev/codewiki/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildAnalyzer(t *testing.T, tree ModuleTree, graph DependencyGraph) *DependencyAnalyzer {
	t.Helper()
	treeIdx := BuildModuleTreeIndex(tree)
	compIdx := BuildComponentIndex(graph)
	compIdx.AssignModules(treeIdx)
	compIdx.Invert()
	return NewDependencyAnalyzer(treeIdx, compIdx)
}

// Fixture: parent module A owns a1 directly, children A/B and A/C own b1
// and c1. b1 depends on a1, which crosses the A/B boundary.
func nestedFixture(t *testing.T) *DependencyAnalyzer {
	t.Helper()
	tree := ModuleTree{
		"A": {
			Components: []string{"a1"},
			Children: map[string]*RawModuleNode{
				"A/B": {Components: []string{"b1"}},
				"A/C": {Components: []string{"c1"}},
			},
		},
	}
	graph := DependencyGraph{
		"a1": {Name: "a1", ComponentType: "class"},
		"b1": {Name: "b1", ComponentType: "class", DependsOn: []string{"a1"}},
		"c1": {Name: "c1", ComponentType: "function"},
	}
	return buildAnalyzer(t, tree, graph)
}

func TestAnalyzeModule_ParentChildEdgeIsExternal(t *testing.T) {
	a := nestedFixture(t)

	report := a.AnalyzeModule("A/B")
	require.True(t, report.Found)
	assert.Equal(t, []string{"b1"}, report.Components)
	assert.Empty(t, report.InternalDeps, "a1 belongs to A, not A/B")

	require.Len(t, report.ExternalDeps, 1)
	group := report.ExternalDeps[0]
	assert.Equal(t, "A", group.TargetModule)
	require.Len(t, group.Relationships, 1)
	assert.Equal(t, "b1", group.Relationships[0].FromComponent)
	assert.Equal(t, "a1", group.Relationships[0].ToComponent)

	assert.Equal(t, 0, report.Complexity.InternalEdgeCount)
	assert.Equal(t, 1, report.Complexity.ExternalEdgeCount)
	assert.Equal(t, 0.0, report.Complexity.CohesionScore)
	assert.Equal(t, "low", report.Complexity.CohesionLevel)
}

func TestAnalyzeModule_DependentsDoNotCountAgainstCohesion(t *testing.T) {
	a := nestedFixture(t)

	// A has one incoming edge (b1 -> a1) but no outgoing edges at all
	report := a.AnalyzeModule("A")
	require.True(t, report.Found)
	require.Len(t, report.ExternalDependents, 1)
	assert.Equal(t, "A/B", report.ExternalDependents[0].SourceModule)

	assert.Equal(t, 0, report.Complexity.ExternalEdgeCount, "incoming edges are not dependency edges")
	assert.Equal(t, 0.0, report.Complexity.CohesionScore)
}

func TestAnalyzeModule_CohesionScore(t *testing.T) {
	tree := ModuleTree{
		"core": {Components: []string{"core.a", "core.b", "core.c"}},
		"ext":  {Components: []string{"ext.x"}},
	}
	graph := DependencyGraph{
		"core.a": {DependsOn: []string{"core.b", "core.c", "ext.x"}},
		"core.b": {DependsOn: []string{"core.c"}},
		"core.c": {},
		"ext.x":  {},
	}
	a := buildAnalyzer(t, tree, graph)

	report := a.AnalyzeModule("core")
	require.True(t, report.Found)
	assert.Equal(t, 3, report.Complexity.InternalEdgeCount)
	assert.Equal(t, 1, report.Complexity.ExternalEdgeCount)
	assert.InDelta(t, 0.75, report.Complexity.CohesionScore, 1e-9)
	assert.Equal(t, "high", report.Complexity.CohesionLevel)
}

func TestAnalyzeModule_NotFound(t *testing.T) {
	a := nestedFixture(t)

	report := a.AnalyzeModule("no/such/module")
	assert.False(t, report.Found)
	assert.NotEmpty(t, report.Error)
	assert.Empty(t, report.Components)
	assert.Empty(t, report.ExternalDeps)
}

func TestAnalyzeModule_Idempotent(t *testing.T) {
	a := nestedFixture(t)

	first := a.AnalyzeModule("A/B")
	second := a.AnalyzeModule("A/B")
	assert.Equal(t, first, second)
}

func TestAnalyzeModule_CohesionRange(t *testing.T) {
	a := nestedFixture(t)
	for _, path := range []string{"A", "A/B", "A/C"} {
		score := a.AnalyzeModule(path).Complexity.CohesionScore
		assert.GreaterOrEqual(t, score, 0.0, "module %s", path)
		assert.LessOrEqual(t, score, 1.0, "module %s", path)
	}
}

func TestAnalyzeComponent(t *testing.T) {
	tree := ModuleTree{
		"svc": {Components: []string{"svc.Handler", "svc.Store"}},
		"lib": {Components: []string{"lib.Codec"}},
	}
	graph := DependencyGraph{
		"svc.Handler": {Name: "Handler", ComponentType: "class", DependsOn: []string{"svc.Store", "lib.Codec", "missing.Dep"}},
		"svc.Store":   {Name: "Store", ComponentType: "class"},
		"lib.Codec":   {Name: "Codec", ComponentType: "class"},
	}
	a := buildAnalyzer(t, tree, graph)

	report := a.AnalyzeComponent("svc.Handler")
	require.True(t, report.Found)

	require.Len(t, report.InternalDeps, 1)
	assert.Equal(t, "svc.Store", report.InternalDeps[0].ID)

	require.Len(t, report.ExternalDeps, 1)
	assert.Equal(t, "lib.Codec", report.ExternalDeps[0].ID)
	assert.Equal(t, "lib", report.ExternalDeps[0].Module)

	assert.Equal(t, []string{"lib"}, report.DependencyModules)
	assert.Empty(t, report.DependentModules)

	store := a.AnalyzeComponent("svc.Store")
	require.Len(t, store.InternalDependents, 1)
	assert.Equal(t, "svc.Handler", store.InternalDependents[0].ID)
}

func TestAnalyzeComponent_NotFound(t *testing.T) {
	a := nestedFixture(t)

	report := a.AnalyzeComponent("ghost.Component")
	assert.False(t, report.Found)
	assert.NotEmpty(t, report.Error)
	assert.Empty(t, report.InternalDeps)
	assert.Empty(t, report.ExternalDeps)
}

func TestAnalyzeModule_NoEdges(t *testing.T) {
	tree := ModuleTree{"solo": {Components: []string{"solo.only"}}}
	graph := DependencyGraph{"solo.only": {}}
	a := buildAnalyzer(t, tree, graph)

	report := a.AnalyzeModule("solo")
	require.True(t, report.Found)
	assert.Equal(t, 0.0, report.Complexity.CohesionScore)
	assert.Equal(t, domain.CohesionLevel(0.0), report.Complexity.CohesionLevel)
}
