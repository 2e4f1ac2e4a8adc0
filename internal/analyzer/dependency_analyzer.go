package analyzer

import (
	"fmt"
	"sort"

	"github.com/codewiki-dev/codewiki/domain"
)

// DependencyAnalyzer answers per-component and per-module dependency queries
// using both indexes. It holds no mutable state; every call is a pure
// traversal of immediate edge lists, so cycles in the graph are harmless.
type DependencyAnalyzer struct {
	tree     *ModuleTreeIndex
	comps    *ComponentIndex
	high     float64 // cohesion label thresholds
	moderate float64
}

// NewDependencyAnalyzer creates an analyzer over the two indexes with the
// stock cohesion thresholds
func NewDependencyAnalyzer(tree *ModuleTreeIndex, comps *ComponentIndex) *DependencyAnalyzer {
	return NewDependencyAnalyzerWithThresholds(tree, comps, domain.CohesionHighThreshold, domain.CohesionModerateThreshold)
}

// NewDependencyAnalyzerWithThresholds creates an analyzer with custom
// cohesion label thresholds. Non-positive values fall back to the defaults.
func NewDependencyAnalyzerWithThresholds(tree *ModuleTreeIndex, comps *ComponentIndex, high, moderate float64) *DependencyAnalyzer {
	if high <= 0 {
		high = domain.CohesionHighThreshold
	}
	if moderate <= 0 {
		moderate = domain.CohesionModerateThreshold
	}
	return &DependencyAnalyzer{tree: tree, comps: comps, high: high, moderate: moderate}
}

// AnalyzeComponent partitions a component's dependencies and dependents into
// internal (same module) and external (cross-module) groups. An unknown id
// yields the not-found sentinel report, never an error.
func (a *DependencyAnalyzer) AnalyzeComponent(componentID string) domain.ComponentDependencyReport {
	comp := a.comps.Get(componentID)
	if comp == nil {
		return domain.NewNotFoundComponentReport(componentID)
	}

	report := domain.ComponentDependencyReport{
		ComponentID:        componentID,
		Found:              true,
		InternalDeps:       []domain.Relation{},
		ExternalDeps:       []domain.Relation{},
		InternalDependents: []domain.Relation{},
		ExternalDependents: []domain.Relation{},
	}
	depModules := make(map[string]struct{})
	dependentModules := make(map[string]struct{})

	for _, depID := range comp.DependsOn {
		dep := a.comps.Get(depID)
		if dep == nil {
			continue // dangling forward id: visible in DependsOn, not analyzable
		}
		rel := domain.Relation{ID: depID, Name: dep.Name, Kind: dep.Kind}
		if dep.Module == comp.Module {
			report.InternalDeps = append(report.InternalDeps, rel)
		} else {
			rel.Module = dep.Module
			report.ExternalDeps = append(report.ExternalDeps, rel)
			if dep.Module != "" {
				depModules[dep.Module] = struct{}{}
			}
		}
	}

	for _, depID := range comp.DependedBy {
		dependent := a.comps.Get(depID)
		if dependent == nil {
			continue
		}
		rel := domain.Relation{ID: depID, Name: dependent.Name, Kind: dependent.Kind}
		if dependent.Module == comp.Module {
			report.InternalDependents = append(report.InternalDependents, rel)
		} else {
			rel.Module = dependent.Module
			report.ExternalDependents = append(report.ExternalDependents, rel)
			if dependent.Module != "" {
				dependentModules[dependent.Module] = struct{}{}
			}
		}
	}

	report.DependencyModules = sortedSet(depModules)
	report.DependentModules = sortedSet(dependentModules)
	return report
}

// AnalyzeModule classifies every edge of a module's components, aggregating
// externals by the foreign module. The cohesion score is internal edges over
// total edges, and 0.0 when the module has no edges at all.
func (a *DependencyAnalyzer) AnalyzeModule(modulePath string) domain.ModuleDependencyReport {
	info := a.tree.Module(modulePath)
	if info == nil {
		return domain.ModuleDependencyReport{
			Module:             modulePath,
			Found:              false,
			Error:              fmt.Sprintf("module %s not found", modulePath),
			Components:         []string{},
			InternalDeps:       []domain.ModuleEdge{},
			ExternalDeps:       []domain.ExternalDependencyGroup{},
			ExternalDependents: []domain.ExternalDependentGroup{},
		}
	}

	report := domain.ModuleDependencyReport{
		Module:       modulePath,
		Found:        true,
		Components:   append([]string{}, info.Components...),
		InternalDeps: []domain.ModuleEdge{},
	}

	externalDeps := newGroupCollector()
	externalDependents := newGroupCollector()

	for _, componentID := range info.Components {
		comp := a.comps.Get(componentID)
		if comp == nil {
			continue // owned id absent from the graph
		}

		for _, depID := range comp.DependsOn {
			dep := a.comps.Get(depID)
			if dep == nil {
				continue
			}
			switch {
			case dep.Module == modulePath:
				report.InternalDeps = append(report.InternalDeps, domain.ModuleEdge{From: componentID, To: depID})
			case dep.Module != "":
				externalDeps.add(dep.Module, domain.ComponentRelation{FromComponent: componentID, ToComponent: depID})
			}
		}

		for _, dependentID := range comp.DependedBy {
			dependent := a.comps.Get(dependentID)
			if dependent == nil {
				continue
			}
			if dependent.Module != "" && dependent.Module != modulePath {
				externalDependents.add(dependent.Module, domain.ComponentRelation{FromComponent: dependentID, ToComponent: componentID})
			}
		}
	}

	report.ExternalDeps = externalDeps.dependencyGroups()
	report.ExternalDependents = externalDependents.dependentGroups()

	internalEdges := len(report.InternalDeps)
	externalEdges := externalDeps.size()
	report.Complexity = domain.ModuleComplexity{
		ComponentCount:    len(info.Components),
		InternalEdgeCount: internalEdges,
		ExternalEdgeCount: externalEdges,
		CohesionScore:     cohesionScore(internalEdges, externalEdges),
	}
	report.Complexity.CohesionLevel = domain.CohesionLevelAt(report.Complexity.CohesionScore, a.high, a.moderate)
	return report
}

// cohesionScore is internal / (internal + external); zero edges means no
// claim of cohesion, not NaN.
func cohesionScore(internal, external int) float64 {
	total := internal + external
	if total == 0 {
		return 0.0
	}
	return float64(internal) / float64(total)
}

// groupCollector aggregates component relations per foreign module while
// preserving first-encounter order of modules.
type groupCollector struct {
	order  []string
	groups map[string][]domain.ComponentRelation
}

func newGroupCollector() *groupCollector {
	return &groupCollector{groups: make(map[string][]domain.ComponentRelation)}
}

func (g *groupCollector) add(module string, rel domain.ComponentRelation) {
	if _, ok := g.groups[module]; !ok {
		g.order = append(g.order, module)
	}
	g.groups[module] = append(g.groups[module], rel)
}

func (g *groupCollector) size() int {
	n := 0
	for _, rels := range g.groups {
		n += len(rels)
	}
	return n
}

func (g *groupCollector) dependencyGroups() []domain.ExternalDependencyGroup {
	out := make([]domain.ExternalDependencyGroup, 0, len(g.order))
	for _, module := range g.order {
		out = append(out, domain.ExternalDependencyGroup{TargetModule: module, Relationships: g.groups[module]})
	}
	return out
}

func (g *groupCollector) dependentGroups() []domain.ExternalDependentGroup {
	out := make([]domain.ExternalDependentGroup, 0, len(g.order))
	for _, module := range g.order {
		out = append(out, domain.ExternalDependentGroup{SourceModule: module, Relationships: g.groups[module]})
	}
	return out
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
