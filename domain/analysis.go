package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatDOT  OutputFormat = "dot"
)

// ComponentKind tags the granularity of an analyzed component
type ComponentKind string

const (
	ComponentKindFunction ComponentKind = "function"
	ComponentKindClass    ComponentKind = "class"
	ComponentKindModule   ComponentKind = "module"
	ComponentKindUnknown  ComponentKind = "unknown"
)

// Role is a heuristic semantic label for a component
type Role string

const (
	RoleManager       Role = "manager"
	RoleService       Role = "service"
	RoleGenerator     Role = "generator"
	RoleAnalyzer      Role = "analyzer"
	RoleProcessor     Role = "processor"
	RoleAdapter       Role = "adapter"
	RoleModel         Role = "model"
	RoleUtility       Role = "utility"
	RoleConfiguration Role = "configuration"
	RoleController    Role = "controller"
	RoleUnknown       Role = "unknown"
)

// PatternType identifies a heuristic architectural finding
type PatternType string

const (
	PatternLayered PatternType = "layered"
	PatternPlugin  PatternType = "plugin"
	PatternFacade  PatternType = "facade"
)

// Cohesion score thresholds used to characterize a module
const (
	CohesionHighThreshold     = 0.7
	CohesionModerateThreshold = 0.4
)

// CohesionLevel maps a cohesion score to a coarse label ("high", "moderate", "low")
func CohesionLevel(score float64) string {
	return CohesionLevelAt(score, CohesionHighThreshold, CohesionModerateThreshold)
}

// CohesionLevelAt is CohesionLevel with caller-supplied thresholds
func CohesionLevelAt(score, high, moderate float64) string {
	switch {
	case score > high:
		return "high"
	case score > moderate:
		return "moderate"
	default:
		return "low"
	}
}

// ComponentInfo is the externally visible view of an indexed component
type ComponentInfo struct {
	ID              string        `json:"id" yaml:"id"`
	Name            string        `json:"name" yaml:"name"`
	Kind            ComponentKind `json:"component_type" yaml:"component_type"`
	FilePath        string        `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	RelativePath    string        `json:"relative_path,omitempty" yaml:"relative_path,omitempty"`
	Module          string        `json:"module,omitempty" yaml:"module,omitempty"`
	DependsOn       []string      `json:"depends_on" yaml:"depends_on"`
	DependedBy      []string      `json:"depended_by" yaml:"depended_by"`
	DependencyCount int           `json:"dependency_count" yaml:"dependency_count"`
	DependentCount  int           `json:"dependent_count" yaml:"dependent_count"`
}

// ModuleSummary is the externally visible view of an indexed module
type ModuleSummary struct {
	Path           string   `json:"path" yaml:"path"`
	Parent         string   `json:"parent,omitempty" yaml:"parent,omitempty"`
	Children       []string `json:"children,omitempty" yaml:"children,omitempty"`
	Components     []string `json:"components,omitempty" yaml:"components,omitempty"`
	ComponentCount int      `json:"component_count" yaml:"component_count"`
	IsLeaf         bool     `json:"is_leaf" yaml:"is_leaf"`
	Level          int      `json:"level" yaml:"level"`
}

// Relation describes one endpoint of a dependency edge, with the foreign
// module attached for cross-module relations
type Relation struct {
	ID     string        `json:"id" yaml:"id"`
	Name   string        `json:"name" yaml:"name"`
	Kind   ComponentKind `json:"type" yaml:"type"`
	Module string        `json:"module,omitempty" yaml:"module,omitempty"`
}

// ComponentDependencyReport splits a component's relations into internal
// (same module) and external (cross-module) groups.
//
// Found is false when the queried component id is absent from the index;
// all collections are empty in that case and Error carries the message.
type ComponentDependencyReport struct {
	ComponentID        string     `json:"component_id" yaml:"component_id"`
	Found              bool       `json:"found" yaml:"found"`
	Error              string     `json:"error,omitempty" yaml:"error,omitempty"`
	InternalDeps       []Relation `json:"internal_dependencies" yaml:"internal_dependencies"`
	ExternalDeps       []Relation `json:"external_dependencies" yaml:"external_dependencies"`
	InternalDependents []Relation `json:"internal_dependents" yaml:"internal_dependents"`
	ExternalDependents []Relation `json:"external_dependents" yaml:"external_dependents"`
	DependencyModules  []string   `json:"dependency_modules" yaml:"dependency_modules"`
	DependentModules   []string   `json:"dependent_modules" yaml:"dependent_modules"`
}

// ModuleEdge is an internal component-to-component dependency inside a module
type ModuleEdge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// ComponentRelation is one component-pair relationship underlying a grouped
// cross-module entry
type ComponentRelation struct {
	FromComponent string `json:"from_component" yaml:"from_component"`
	ToComponent   string `json:"to_component" yaml:"to_component"`
}

// ExternalDependencyGroup aggregates a module's outgoing cross-module edges
// by target module
type ExternalDependencyGroup struct {
	TargetModule  string              `json:"target_module" yaml:"target_module"`
	Relationships []ComponentRelation `json:"relationships" yaml:"relationships"`
}

// ExternalDependentGroup aggregates a module's incoming cross-module edges
// by source module
type ExternalDependentGroup struct {
	SourceModule  string              `json:"source_module" yaml:"source_module"`
	Relationships []ComponentRelation `json:"relationships" yaml:"relationships"`
}

// ModuleComplexity carries the edge counts and the derived cohesion score
type ModuleComplexity struct {
	ComponentCount    int     `json:"component_count" yaml:"component_count"`
	InternalEdgeCount int     `json:"internal_edge_count" yaml:"internal_edge_count"`
	ExternalEdgeCount int     `json:"external_edge_count" yaml:"external_edge_count"`
	CohesionScore     float64 `json:"cohesion_score" yaml:"cohesion_score"`
	CohesionLevel     string  `json:"cohesion_level" yaml:"cohesion_level"`
}

// ModuleDependencyReport is the module-level dependency analysis result
type ModuleDependencyReport struct {
	Module             string                    `json:"module" yaml:"module"`
	Found              bool                      `json:"found" yaml:"found"`
	Error              string                    `json:"error,omitempty" yaml:"error,omitempty"`
	Components         []string                  `json:"components" yaml:"components"`
	InternalDeps       []ModuleEdge              `json:"internal_dependencies" yaml:"internal_dependencies"`
	ExternalDeps       []ExternalDependencyGroup `json:"external_dependencies" yaml:"external_dependencies"`
	ExternalDependents []ExternalDependentGroup  `json:"external_dependents" yaml:"external_dependents"`
	Complexity         ModuleComplexity          `json:"complexity" yaml:"complexity"`
}

// RoleMetrics records the dependency-shape inputs of a role inference
type RoleMetrics struct {
	Dependencies int           `json:"dependencies" yaml:"dependencies"`
	Dependents   int           `json:"dependents" yaml:"dependents"`
	Kind         ComponentKind `json:"type" yaml:"type"`
}

// RoleAssignment is the result of heuristic role inference for a component
type RoleAssignment struct {
	ComponentID string      `json:"component_id" yaml:"component_id"`
	Found       bool        `json:"found" yaml:"found"`
	Error       string      `json:"error,omitempty" yaml:"error,omitempty"`
	Role        Role        `json:"role" yaml:"role"`
	Confidence  float64     `json:"confidence" yaml:"confidence"`
	Reasoning   []string    `json:"reasoning" yaml:"reasoning"`
	Purpose     string      `json:"primary_purpose" yaml:"primary_purpose"`
	Metrics     RoleMetrics `json:"metrics" yaml:"metrics"`
}

// Pattern is a heuristic architectural finding within a module
type Pattern struct {
	Type       PatternType `json:"type" yaml:"type"`
	Confidence float64     `json:"confidence" yaml:"confidence"`
	Evidence   []string    `json:"evidence" yaml:"evidence"`
	Components []string    `json:"components" yaml:"components"`
}

// ComponentRole is the condensed role entry attached to pattern reports
type ComponentRole struct {
	Role       Role    `json:"role" yaml:"role"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Reasoning  string  `json:"reasoning" yaml:"reasoning"`
}

// PatternReport bundles pattern findings with the per-component roles that
// produced them
type PatternReport struct {
	Module         string                   `json:"module" yaml:"module"`
	Found          bool                     `json:"found" yaml:"found"`
	Error          string                   `json:"error,omitempty" yaml:"error,omitempty"`
	Patterns       []Pattern                `json:"patterns" yaml:"patterns"`
	ComponentRoles map[string]ComponentRole `json:"component_roles" yaml:"component_roles"`
}

// ComponentReport is the full per-component section of a module report
type ComponentReport struct {
	Info         ComponentInfo             `json:"info" yaml:"info"`
	Dependencies ComponentDependencyReport `json:"dependencies" yaml:"dependencies"`
	Purpose      RoleAssignment            `json:"purpose" yaml:"purpose"`
}

// ModuleReport is the comprehensive analysis report for a single module
type ModuleReport struct {
	Module       string                     `json:"module" yaml:"module"`
	Found        bool                       `json:"found" yaml:"found"`
	Error        string                     `json:"error,omitempty" yaml:"error,omitempty"`
	Summary      ModuleSummary              `json:"summary" yaml:"summary"`
	Dependencies []ExternalDependencyGroup  `json:"dependencies" yaml:"dependencies"`
	Dependents   []ExternalDependentGroup   `json:"dependents" yaml:"dependents"`
	Complexity   ModuleComplexity           `json:"complexity" yaml:"complexity"`
	Patterns     PatternReport              `json:"patterns" yaml:"patterns"`
	Components   map[string]ComponentReport `json:"components" yaml:"components"`

	// Mermaid rendering of this module against its foreign modules
	ContextMermaid string `json:"context_mermaid,omitempty" yaml:"context_mermaid,omitempty"`
}

// RepositorySummary is the repository-wide overview
type RepositorySummary struct {
	TotalModules          int `json:"total_modules" yaml:"total_modules"`
	LeafModules           int `json:"leaf_modules" yaml:"leaf_modules"`
	ParentModules         int `json:"parent_modules" yaml:"parent_modules"`
	RootModules           int `json:"root_modules" yaml:"root_modules"`
	TotalComponents       int `json:"total_components" yaml:"total_components"`
	MaxDepth              int `json:"max_depth" yaml:"max_depth"`
	ProcessingOrderLevels int `json:"processing_order_levels" yaml:"processing_order_levels"`
}

// AnalysisRequest represents input for structural analysis
type AnalysisRequest struct {
	// Input artifacts. Either explicit file paths, or Paths to search with
	// the locator patterns.
	Paths           []string
	ModuleTreePath  string
	DependencyGraph string

	// Scope: when set, restrict module reports to these module paths
	Modules []string

	// Output configuration (used by use case formatting)
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string

	// Configuration
	ConfigPath string

	// Locator patterns for artifact discovery
	TreePatterns  []string
	GraphPatterns []string
}

// AnalysisResponse is the result of a full repository analysis
type AnalysisResponse struct {
	Summary         RepositorySummary        `json:"summary" yaml:"summary"`
	ProcessingOrder [][]string               `json:"processing_order" yaml:"processing_order"`
	Modules         map[string]*ModuleReport `json:"modules" yaml:"modules"`

	Warnings    []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Errors      []string `json:"errors,omitempty" yaml:"errors,omitempty"`
	GeneratedAt string   `json:"generated_at" yaml:"generated_at"`
	Version     string   `json:"version" yaml:"version"`

	// Optional DOT representation of the component graph (for convenience)
	DOT string `json:"dot,omitempty" yaml:"dot,omitempty"`

	// Mermaid rendering of the module containment tree
	HierarchyMermaid string `json:"hierarchy_mermaid,omitempty" yaml:"hierarchy_mermaid,omitempty"`
}

// AnalysisService defines the core business logic for structural analysis
type AnalysisService interface {
	// Analyze loads both artifacts and produces the full repository response
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error)

	// AnalyzeModule produces a single module report
	AnalyzeModule(ctx context.Context, req AnalysisRequest, modulePath string) (*ModuleReport, error)

	// AnalyzeComponent produces a single component dependency report with
	// its role assignment
	AnalyzeComponent(ctx context.Context, req AnalysisRequest, componentID string) (*ComponentReport, error)

	// Summarize produces the repository summary only
	Summarize(ctx context.Context, req AnalysisRequest) (*RepositorySummary, error)
}

// AnalysisOutputFormatter defines the interface for formatting analysis results
type AnalysisOutputFormatter interface {
	Write(response *AnalysisResponse, format OutputFormat, writer io.Writer) error
}

// ArtifactLocator finds the two input artifacts under the requested paths
type ArtifactLocator interface {
	// Locate returns the module tree path and dependency graph path
	Locate(paths []string, treePatterns, graphPatterns []string) (treePath, graphPath string, err error)
}

// NewNotFoundComponentReport returns the sentinel report for an unknown component id
func NewNotFoundComponentReport(componentID string) ComponentDependencyReport {
	return ComponentDependencyReport{
		ComponentID:        componentID,
		Found:              false,
		Error:              "component " + componentID + " not found",
		InternalDeps:       []Relation{},
		ExternalDeps:       []Relation{},
		InternalDependents: []Relation{},
		ExternalDependents: []Relation{},
		DependencyModules:  []string{},
		DependentModules:   []string{},
	}
}

// Timestamp returns the canonical report timestamp format
func Timestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
