package analyzer

import (
	"fmt"
	"sort"
)

// ModuleInfo is the flattened record for one module in the containment tree
type ModuleInfo struct {
	Path       string
	Components []string
	Children   []string
	Parent     string // empty for roots
	IsLeaf     bool
	Level      int
}

// ModuleTreeIndex is the flattened lookup structure built from the nested
// module tree. After build, every module path referenced by any Parent or
// Children field is itself a key of Modules.
type ModuleTreeIndex struct {
	Modules           map[string]*ModuleInfo
	LeafModules       []string
	ParentModules     []string
	RootModules       []string
	ComponentToModule map[string]string

	// OwnershipConflicts records component ids that were listed under more
	// than one module. Ownership stays last-write-wins (in traversal order);
	// the conflict is surfaced, not resolved.
	OwnershipConflicts []string
}

// BuildModuleTreeIndex flattens the nested tree by depth-first pre-order
// traversal from every root. Sibling order is lexicographic so that builds
// are deterministic; with duplicated component ownership the lexicographically
// last-visited module wins.
func BuildModuleTreeIndex(tree ModuleTree) *ModuleTreeIndex {
	idx := &ModuleTreeIndex{
		Modules:           make(map[string]*ModuleInfo),
		LeafModules:       []string{},
		ParentModules:     []string{},
		RootModules:       []string{},
		ComponentToModule: make(map[string]string),
	}
	if len(tree) == 0 {
		return idx
	}

	var traverse func(nodes map[string]*RawModuleNode, parent string, level int)
	traverse = func(nodes map[string]*RawModuleNode, parent string, level int) {
		for _, path := range sortedNodeKeys(nodes) {
			node := nodes[path]
			if node == nil {
				node = &RawModuleNode{}
			}

			info := &ModuleInfo{
				Path:       path,
				Components: append([]string{}, node.Components...),
				Children:   sortedNodeKeys(node.Children),
				Parent:     parent,
				IsLeaf:     len(node.Children) == 0,
				Level:      level,
			}
			idx.Modules[path] = info

			if info.IsLeaf {
				idx.LeafModules = append(idx.LeafModules, path)
			} else {
				idx.ParentModules = append(idx.ParentModules, path)
			}
			if parent == "" {
				idx.RootModules = append(idx.RootModules, path)
			}

			for _, componentID := range node.Components {
				if prev, ok := idx.ComponentToModule[componentID]; ok && prev != path {
					idx.OwnershipConflicts = append(idx.OwnershipConflicts,
						fmt.Sprintf("component %s owned by both %s and %s (last wins)", componentID, prev, path))
				}
				idx.ComponentToModule[componentID] = path
			}

			if len(node.Children) > 0 {
				traverse(node.Children, path, level+1)
			}
		}
	}
	traverse(tree, "", 0)
	return idx
}

// Module returns the record for a path, or nil when unknown
func (idx *ModuleTreeIndex) Module(path string) *ModuleInfo {
	return idx.Modules[path]
}

// MaxDepth returns the deepest level present in the tree (0 for empty)
func (idx *ModuleTreeIndex) MaxDepth() int {
	max := 0
	for _, m := range idx.Modules {
		if m.Level > max {
			max = m.Level
		}
	}
	return max
}

// ProcessingOrder groups module paths by level, deepest first, so every
// module appears in a batch no earlier than all of its descendants.
// Paths within a batch are sorted for determinism.
func (idx *ModuleTreeIndex) ProcessingOrder() [][]string {
	if len(idx.Modules) == 0 {
		return nil
	}
	byLevel := make(map[int][]string)
	for path, m := range idx.Modules {
		byLevel[m.Level] = append(byLevel[m.Level], path)
	}
	var order [][]string
	for level := idx.MaxDepth(); level >= 0; level-- {
		batch := byLevel[level]
		if len(batch) == 0 {
			continue
		}
		sort.Strings(batch)
		order = append(order, batch)
	}
	return order
}

func sortedNodeKeys(nodes map[string]*RawModuleNode) []string {
	if len(nodes) == 0 {
		return []string{}
	}
	keys := make([]string, 0, len(nodes))
	for k := range nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
