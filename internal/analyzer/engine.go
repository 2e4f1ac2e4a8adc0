package analyzer

import (
	"github.com/codewiki-dev/codewiki/domain"
)

// Engine is the analysis facade over the two input graphs. Both indexes are
// built once at construction and never mutated afterward, apart from the
// single reverse-dependency back-fill pass; every report method is a pure
// function of the indexes and safe to call repeatedly.
type Engine struct {
	store    *GraphStore
	tree     *ModuleTreeIndex
	comps    *ComponentIndex
	deps     *DependencyAnalyzer
	roles    *RoleInference
	patterns *PatternDetector
}

// EngineOptions tunes the heuristic thresholds. Nil or zero fields fall
// back to the defaults.
type EngineOptions struct {
	Patterns         *PatternDetectorOptions
	CohesionHigh     float64
	CohesionModerate float64
}

// NewEngine builds the module tree index and the component index from the
// raw inputs, cross-links component ownership and back-fills reverse
// dependencies.
func NewEngine(store *GraphStore, opts *EngineOptions) *Engine {
	if store == nil {
		store = NewGraphStore(nil, nil)
	}
	if opts == nil {
		opts = &EngineOptions{}
	}
	tree := BuildModuleTreeIndex(store.Tree)
	comps := BuildComponentIndex(store.Graph)
	comps.AssignModules(tree)
	comps.Invert()

	return &Engine{
		store:    store,
		tree:     tree,
		comps:    comps,
		deps:     NewDependencyAnalyzerWithThresholds(tree, comps, opts.CohesionHigh, opts.CohesionModerate),
		roles:    NewRoleInference(comps),
		patterns: NewPatternDetector(tree, comps, opts.Patterns),
	}
}

// Tree exposes the flattened module tree index
func (e *Engine) Tree() *ModuleTreeIndex { return e.tree }

// Components exposes the component index
func (e *Engine) Components() *ComponentIndex { return e.comps }

// Warnings returns build-time findings worth surfacing, currently the
// duplicated component ownership conflicts.
func (e *Engine) Warnings() []string {
	return append([]string{}, e.tree.OwnershipConflicts...)
}

// AnalyzeComponent answers the per-component dependency query
func (e *Engine) AnalyzeComponent(componentID string) domain.ComponentDependencyReport {
	return e.deps.AnalyzeComponent(componentID)
}

// AnalyzeModule answers the module-level dependency query
func (e *Engine) AnalyzeModule(modulePath string) domain.ModuleDependencyReport {
	return e.deps.AnalyzeModule(modulePath)
}

// InferRole assigns a heuristic role to a component
func (e *Engine) InferRole(componentID string) domain.RoleAssignment {
	return e.roles.InferRole(componentID)
}

// DetectPatterns flags architectural patterns within a module
func (e *Engine) DetectPatterns(modulePath string) domain.PatternReport {
	return e.patterns.Detect(modulePath)
}

// ComponentReport bundles the indexed view, dependency report and role
// assignment for a single component.
func (e *Engine) ComponentReport(componentID string) domain.ComponentReport {
	report := domain.ComponentReport{
		Dependencies: e.AnalyzeComponent(componentID),
		Purpose:      e.InferRole(componentID),
	}
	if comp := e.comps.Get(componentID); comp != nil {
		report.Info = comp.Info()
	}
	return report
}

// ModuleReport generates the comprehensive report for a module: summary,
// grouped external relations, complexity, patterns and per-component detail.
func (e *Engine) ModuleReport(modulePath string) domain.ModuleReport {
	info := e.tree.Module(modulePath)
	if info == nil {
		missing := e.AnalyzeModule(modulePath)
		return domain.ModuleReport{
			Module:     modulePath,
			Found:      false,
			Error:      missing.Error,
			Components: map[string]domain.ComponentReport{},
		}
	}

	analysis := e.AnalyzeModule(modulePath)
	report := domain.ModuleReport{
		Module: modulePath,
		Found:  true,
		Summary: domain.ModuleSummary{
			Path:           info.Path,
			Parent:         info.Parent,
			Children:       append([]string{}, info.Children...),
			Components:     append([]string{}, info.Components...),
			ComponentCount: len(info.Components),
			IsLeaf:         info.IsLeaf,
			Level:          info.Level,
		},
		Dependencies: analysis.ExternalDeps,
		Dependents:   analysis.ExternalDependents,
		Complexity:   analysis.Complexity,
		Patterns:     e.DetectPatterns(modulePath),
		Components:   make(map[string]domain.ComponentReport, len(info.Components)),
	}

	for _, componentID := range info.Components {
		if e.comps.Get(componentID) == nil {
			continue
		}
		report.Components[componentID] = e.ComponentReport(componentID)
	}
	report.ContextMermaid = ModuleContextMermaid(report)
	return report
}

// RepositorySummary returns the high-level overview of both inputs
func (e *Engine) RepositorySummary() domain.RepositorySummary {
	return domain.RepositorySummary{
		TotalModules:          len(e.tree.Modules),
		LeafModules:           len(e.tree.LeafModules),
		ParentModules:         len(e.tree.ParentModules),
		RootModules:           len(e.tree.RootModules),
		TotalComponents:       e.comps.Len(),
		MaxDepth:              e.tree.MaxDepth(),
		ProcessingOrderLevels: len(e.tree.ProcessingOrder()),
	}
}

// ProcessingOrder returns module path batches ordered deepest level first,
// so consumers can document children before parents.
func (e *Engine) ProcessingOrder() [][]string {
	return e.tree.ProcessingOrder()
}
