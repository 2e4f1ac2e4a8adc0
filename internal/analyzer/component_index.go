package analyzer

import (
	"sort"
	"strings"

	"github.com/codewiki-dev/codewiki/domain"
)

// Component is the indexed record for one dependency graph entry.
// DependsOn is ground truth as supplied; DependedBy is derived by Invert and
// only references ids present in the index.
type Component struct {
	ID           string
	Name         string
	Kind         domain.ComponentKind
	FilePath     string
	RelativePath string
	DependsOn    []string
	DependedBy   []string
	Module       string // empty until AssignModules, or when unmapped
}

// DependencyCount returns the forward edge count, including dangling ids
func (c *Component) DependencyCount() int { return len(c.DependsOn) }

// DependentCount returns the derived reverse edge count
func (c *Component) DependentCount() int { return len(c.DependedBy) }

// ComponentIndex holds every component record keyed by id
type ComponentIndex struct {
	Components map[string]*Component
}

// BuildComponentIndex constructs component records from the raw graph,
// defaulting missing fields: name falls back to the last dot-separated
// segment of the id, kind to "unknown", dependency list to empty.
func BuildComponentIndex(graph DependencyGraph) *ComponentIndex {
	idx := &ComponentIndex{Components: make(map[string]*Component, len(graph))}
	for id, raw := range graph {
		if raw == nil {
			raw = &RawComponent{}
		}
		comp := &Component{
			ID:           id,
			Name:         raw.Name,
			Kind:         domain.ComponentKind(raw.ComponentType),
			FilePath:     raw.FilePath,
			RelativePath: raw.RelativePath,
			DependsOn:    append([]string{}, raw.DependsOn...),
			DependedBy:   []string{},
		}
		if raw.ID != "" {
			comp.ID = raw.ID
		}
		if comp.Name == "" {
			comp.Name = lastSegment(id)
		}
		if comp.Kind == "" {
			comp.Kind = domain.ComponentKindUnknown
		}
		idx.Components[id] = comp
	}
	return idx
}

// Invert back-fills DependedBy from the forward edges: for every component A
// and dependency D, A's id is appended to D's DependedBy only when D exists
// in the index. Dangling forward ids stay visible in DependsOn but never
// appear in the reverse index. O(V+E).
func (idx *ComponentIndex) Invert() {
	ids := idx.sortedIDs()
	for _, id := range ids {
		comp := idx.Components[id]
		for _, depID := range comp.DependsOn {
			if target, ok := idx.Components[depID]; ok {
				target.DependedBy = append(target.DependedBy, id)
			}
		}
	}
}

// AssignModules cross-links components to their owning module
func (idx *ComponentIndex) AssignModules(tree *ModuleTreeIndex) {
	for id, comp := range idx.Components {
		if modulePath, ok := tree.ComponentToModule[id]; ok {
			comp.Module = modulePath
		}
	}
}

// Get returns the component for an id, or nil when unknown
func (idx *ComponentIndex) Get(id string) *Component {
	return idx.Components[id]
}

// Len returns the number of indexed components
func (idx *ComponentIndex) Len() int { return len(idx.Components) }

// Info converts a component record to its externally visible view
func (c *Component) Info() domain.ComponentInfo {
	return domain.ComponentInfo{
		ID:              c.ID,
		Name:            c.Name,
		Kind:            c.Kind,
		FilePath:        c.FilePath,
		RelativePath:    c.RelativePath,
		Module:          c.Module,
		DependsOn:       append([]string{}, c.DependsOn...),
		DependedBy:      append([]string{}, c.DependedBy...),
		DependencyCount: c.DependencyCount(),
		DependentCount:  c.DependentCount(),
	}
}

func (idx *ComponentIndex) sortedIDs() []string {
	ids := make([]string, 0, len(idx.Components))
	for id := range idx.Components {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func lastSegment(id string) string {
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[i+1:]
	}
	return id
}
