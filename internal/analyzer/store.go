package analyzer

import (
	"encoding/json"
	"io"

	"github.com/codewiki-dev/codewiki/domain"
)

// RawComponent is one entry of the dependency graph artifact. Every field
// except the map key is optional; missing fields are defaulted during
// indexing, never rejected.
type RawComponent struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ComponentType string   `json:"component_type"`
	FilePath      string   `json:"file_path"`
	RelativePath  string   `json:"relative_path"`
	DependsOn     []string `json:"depends_on"`
}

// DependencyGraph maps component id to its raw record
type DependencyGraph map[string]*RawComponent

// RawModuleNode is one node of the nested module containment tree.
// Children is keyed by the child module path.
type RawModuleNode struct {
	Children   map[string]*RawModuleNode `json:"children"`
	Components []string                  `json:"components"`
}

// ModuleTree is the set of root nodes, keyed by module path
type ModuleTree map[string]*RawModuleNode

// GraphStore holds the two raw input graphs unmodified
type GraphStore struct {
	Tree  ModuleTree
	Graph DependencyGraph
}

// NewGraphStore wraps already-decoded inputs. Nil inputs are treated as empty.
func NewGraphStore(tree ModuleTree, graph DependencyGraph) *GraphStore {
	if tree == nil {
		tree = ModuleTree{}
	}
	if graph == nil {
		graph = DependencyGraph{}
	}
	return &GraphStore{Tree: tree, Graph: graph}
}

// DecodeModuleTree decodes the module tree artifact. A structurally invalid
// document (non-mapping where a mapping is required) fails loudly here; this
// is the only place malformed input is rejected.
func DecodeModuleTree(r io.Reader) (ModuleTree, error) {
	var tree ModuleTree
	if err := json.NewDecoder(r).Decode(&tree); err != nil {
		return nil, domain.NewDecodeError("module tree", err)
	}
	if tree == nil {
		tree = ModuleTree{}
	}
	return tree, nil
}

// DecodeDependencyGraph decodes the dependency graph artifact
func DecodeDependencyGraph(r io.Reader) (DependencyGraph, error) {
	var graph DependencyGraph
	if err := json.NewDecoder(r).Decode(&graph); err != nil {
		return nil, domain.NewDecodeError("dependency graph", err)
	}
	if graph == nil {
		graph = DependencyGraph{}
	}
	return graph, nil
}
