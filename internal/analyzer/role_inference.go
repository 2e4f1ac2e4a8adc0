package analyzer

import (
	"fmt"
	"strings"

	"github.com/codewiki-dev/codewiki/domain"
)

// nameRule maps name substrings to a role. Rules are evaluated in slice
// order and the first match wins, so priority stays auditable.
type nameRule struct {
	keywords   []string
	role       domain.Role
	confidence float64
	reason     string
}

var nameRules = []nameRule{
	{[]string{"manager"}, domain.RoleManager, 0.8, `Name contains "manager" - likely manages resources or lifecycle`},
	{[]string{"service"}, domain.RoleService, 0.8, `Name contains "service" - likely provides business logic`},
	{[]string{"generator", "builder"}, domain.RoleGenerator, 0.8, "Name suggests object creation or construction"},
	{[]string{"analyzer", "parser"}, domain.RoleAnalyzer, 0.8, "Name suggests data analysis or transformation"},
	{[]string{"handler", "processor"}, domain.RoleProcessor, 0.7, "Name suggests event handling or data processing"},
	{[]string{"adapter", "wrapper"}, domain.RoleAdapter, 0.8, "Name suggests interface adaptation or wrapping"},
	{[]string{"model", "entity", "dto"}, domain.RoleModel, 0.7, "Name suggests data structure or model"},
	{[]string{"util", "helper"}, domain.RoleUtility, 0.7, "Name suggests utility or helper functions"},
	{[]string{"config", "settings"}, domain.RoleConfiguration, 0.8, "Name suggests configuration management"},
}

// Thresholds for the dependency-shape adjustments
const (
	manyDependencies = 10
	manyDependents   = 10
)

// RoleInference assigns a heuristic semantic role to a component from its
// name and dependency-count profile.
type RoleInference struct {
	comps *ComponentIndex
}

// NewRoleInference creates a role inference over the component index
func NewRoleInference(comps *ComponentIndex) *RoleInference {
	return &RoleInference{comps: comps}
}

// InferRole runs the rule cascade for a component id. The name-based rule
// fires first; dependency-shape adjustments only reclassify a role that is
// still unknown, otherwise they just append reasoning.
func (ri *RoleInference) InferRole(componentID string) domain.RoleAssignment {
	comp := ri.comps.Get(componentID)
	if comp == nil {
		return domain.RoleAssignment{
			ComponentID: componentID,
			Found:       false,
			Error:       fmt.Sprintf("component %s not found", componentID),
			Role:        domain.RoleUnknown,
			Reasoning:   []string{},
		}
	}
	return InferComponentRole(comp)
}

// InferComponentRole applies the cascade to an already-fetched record
func InferComponentRole(comp *Component) domain.RoleAssignment {
	assignment := domain.RoleAssignment{
		ComponentID: comp.ID,
		Found:       true,
		Role:        domain.RoleUnknown,
		Confidence:  0.5,
		Reasoning:   []string{},
		Metrics: domain.RoleMetrics{
			Dependencies: comp.DependencyCount(),
			Dependents:   comp.DependentCount(),
			Kind:         comp.Kind,
		},
	}

	nameLower := strings.ToLower(comp.Name)
	for _, rule := range nameRules {
		if matchesAny(nameLower, rule.keywords) {
			assignment.Role = rule.role
			assignment.Confidence = rule.confidence
			assignment.Reasoning = append(assignment.Reasoning, rule.reason)
			break
		}
	}

	depCount := comp.DependencyCount()
	dependentCount := comp.DependentCount()

	switch {
	case depCount == 0:
		if assignment.Role == domain.RoleUnknown {
			assignment.Role = domain.RoleModel
			assignment.Confidence = 0.6
		}
		assignment.Reasoning = append(assignment.Reasoning, "No dependencies - likely a data model, constant, or utility")
	case depCount > manyDependencies:
		if assignment.Role == domain.RoleUnknown {
			assignment.Role = domain.RoleController
			assignment.Confidence = 0.6
		}
		assignment.Reasoning = append(assignment.Reasoning,
			fmt.Sprintf("Many dependencies (%d) - likely an orchestrator or controller", depCount))
	}

	switch {
	case dependentCount == 0:
		assignment.Reasoning = append(assignment.Reasoning, "No dependents - possibly an entry point or unused component")
	case dependentCount > manyDependents:
		assignment.Reasoning = append(assignment.Reasoning,
			fmt.Sprintf("Many dependents (%d) - likely a core/shared component", dependentCount))
	}

	switch comp.Kind {
	case domain.ComponentKindFunction:
		assignment.Reasoning = append(assignment.Reasoning, "Component is a function - likely a utility or specific operation")
	case domain.ComponentKindClass:
		assignment.Reasoning = append(assignment.Reasoning, "Component is a class - encapsulates state and behavior")
	}

	assignment.Purpose = purposeDescription(comp.Name, assignment.Role, comp.Kind)
	return assignment
}

func matchesAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func purposeDescription(name string, role domain.Role, kind domain.ComponentKind) string {
	switch role {
	case domain.RoleManager:
		return fmt.Sprintf("%s manages lifecycle and resources", name)
	case domain.RoleService:
		return fmt.Sprintf("%s provides business logic and operations", name)
	case domain.RoleGenerator:
		return fmt.Sprintf("%s creates or constructs objects/data", name)
	case domain.RoleAnalyzer:
		return fmt.Sprintf("%s analyzes or transforms data", name)
	case domain.RoleProcessor:
		return fmt.Sprintf("%s processes data or handles events", name)
	case domain.RoleAdapter:
		return fmt.Sprintf("%s adapts or wraps external interfaces", name)
	case domain.RoleModel:
		return fmt.Sprintf("%s represents data structure or entity", name)
	case domain.RoleUtility:
		return fmt.Sprintf("%s provides helper functions", name)
	case domain.RoleConfiguration:
		return fmt.Sprintf("%s manages configuration settings", name)
	case domain.RoleController:
		return fmt.Sprintf("%s orchestrates operations", name)
	default:
		return fmt.Sprintf("%s (%s)", name, kind)
	}
}
