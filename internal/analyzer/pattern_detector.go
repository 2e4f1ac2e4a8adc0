package analyzer

import (
	"fmt"
	"strings"

	"github.com/codewiki-dev/codewiki/domain"
)

// PatternDetectorOptions carries the heuristic thresholds. The zero value is
// not usable; start from DefaultPatternDetectorOptions.
type PatternDetectorOptions struct {
	LayeredMinRoles       int     // distinct roles required for layered
	LayeredMinRoleMembers int     // members of the largest role group
	LayeredConfidence     float64 // fixed confidence of the finding
	PluginMinComponents   int     // plugin-named components required
	PluginConfidence      float64
	FacadeMinExternalDeps int // external dependents a facade needs
	FacadeMinInternalDeps int // internal dependencies a facade needs
	FacadeConfidence      float64
}

// DefaultPatternDetectorOptions returns the stock thresholds
func DefaultPatternDetectorOptions() *PatternDetectorOptions {
	return &PatternDetectorOptions{
		LayeredMinRoles:       3,
		LayeredMinRoleMembers: 2,
		LayeredConfidence:     0.7,
		PluginMinComponents:   2,
		PluginConfidence:      0.8,
		FacadeMinExternalDeps: 3,
		FacadeMinInternalDeps: 3,
		FacadeConfidence:      0.7,
	}
}

// PatternDetector evaluates heuristic architectural findings over a module's
// component-role distribution and fan-in/fan-out shape. The three heuristics
// are independent and additive, never mutually exclusive.
type PatternDetector struct {
	tree    *ModuleTreeIndex
	comps   *ComponentIndex
	roles   *RoleInference
	options *PatternDetectorOptions
}

// NewPatternDetector creates a detector over the two indexes
func NewPatternDetector(tree *ModuleTreeIndex, comps *ComponentIndex, options *PatternDetectorOptions) *PatternDetector {
	if options == nil {
		options = DefaultPatternDetectorOptions()
	}
	return &PatternDetector{
		tree:    tree,
		comps:   comps,
		roles:   NewRoleInference(comps),
		options: options,
	}
}

// Detect computes roles for every owned component, then runs the layered,
// plugin and facade heuristics for the module.
func (pd *PatternDetector) Detect(modulePath string) domain.PatternReport {
	info := pd.tree.Module(modulePath)
	if info == nil {
		return domain.PatternReport{
			Module:         modulePath,
			Found:          false,
			Error:          fmt.Sprintf("module %s not found", modulePath),
			Patterns:       []domain.Pattern{},
			ComponentRoles: map[string]domain.ComponentRole{},
		}
	}

	report := domain.PatternReport{
		Module:         modulePath,
		Found:          true,
		Patterns:       []domain.Pattern{},
		ComponentRoles: make(map[string]domain.ComponentRole, len(info.Components)),
	}

	for _, componentID := range info.Components {
		assignment := pd.roles.InferRole(componentID)
		if !assignment.Found {
			continue
		}
		reasoning := ""
		if len(assignment.Reasoning) > 0 {
			reasoning = assignment.Reasoning[0]
		}
		report.ComponentRoles[componentID] = domain.ComponentRole{
			Role:       assignment.Role,
			Confidence: assignment.Confidence,
			Reasoning:  reasoning,
		}
	}

	if pd.isLayered(report.ComponentRoles) {
		report.Patterns = append(report.Patterns, domain.Pattern{
			Type:       domain.PatternLayered,
			Confidence: pd.options.LayeredConfidence,
			Evidence:   []string{"Clear separation of concerns", "Unidirectional dependencies"},
			Components: append([]string{}, info.Components...),
		})
	}

	if plugins := pd.pluginComponents(info); len(plugins) >= pd.options.PluginMinComponents {
		report.Patterns = append(report.Patterns, domain.Pattern{
			Type:       domain.PatternPlugin,
			Confidence: pd.options.PluginConfidence,
			Evidence:   []string{fmt.Sprintf("Multiple plugin-like components: %d", len(plugins))},
			Components: plugins,
		})
	}

	if facades := pd.facadeComponents(info, modulePath); len(facades) > 0 {
		report.Patterns = append(report.Patterns, domain.Pattern{
			Type:       domain.PatternFacade,
			Confidence: pd.options.FacadeConfidence,
			Evidence:   []string{"Components with high external fan-in and internal fan-out"},
			Components: facades,
		})
	}

	return report
}

// isLayered holds when the module spans enough distinct roles and at least
// one role has multiple members.
func (pd *PatternDetector) isLayered(roles map[string]domain.ComponentRole) bool {
	counts := make(map[domain.Role]int)
	maxMembers := 0
	for _, r := range roles {
		counts[r.Role]++
		if counts[r.Role] > maxMembers {
			maxMembers = counts[r.Role]
		}
	}
	return len(counts) >= pd.options.LayeredMinRoles && maxMembers >= pd.options.LayeredMinRoleMembers
}

func (pd *PatternDetector) pluginComponents(info *ModuleInfo) []string {
	var plugins []string
	for _, componentID := range info.Components {
		comp := pd.comps.Get(componentID)
		if comp == nil {
			continue
		}
		if strings.Contains(strings.ToLower(comp.Name), "plugin") {
			plugins = append(plugins, componentID)
		}
	}
	return plugins
}

// facadeComponents qualifies components used heavily from outside the module
// that fan out to many components inside it.
func (pd *PatternDetector) facadeComponents(info *ModuleInfo, modulePath string) []string {
	var facades []string
	for _, componentID := range info.Components {
		comp := pd.comps.Get(componentID)
		if comp == nil {
			continue
		}

		externalDependents := 0
		for _, id := range comp.DependedBy {
			if dependent := pd.comps.Get(id); dependent != nil && dependent.Module != modulePath {
				externalDependents++
			}
		}

		internalDeps := 0
		for _, id := range comp.DependsOn {
			if dep := pd.comps.Get(id); dep != nil && dep.Module == modulePath {
				internalDeps++
			}
		}

		if externalDependents >= pd.options.FacadeMinExternalDeps && internalDeps >= pd.options.FacadeMinInternalDeps {
			facades = append(facades, componentID)
		}
	}
	return facades
}
