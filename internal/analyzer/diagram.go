package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/codewiki-dev/codewiki/domain"
)

// Diagram emission is pure string building; callers decide where the text
// goes. Node identifiers are synthesized because component ids and module
// paths routinely contain characters DOT/Mermaid reject.

// ComponentGraphDOT renders the full component dependency graph, with
// cross-module edges drawn in red. Dangling forward ids are skipped.
func (e *Engine) ComponentGraphDOT() string {
	ids := e.comps.sortedIDs()

	var b strings.Builder
	b.WriteString("digraph components {\n")
	b.WriteString("  rankdir=LR;\n")
	for _, id := range ids {
		comp := e.comps.Get(id)
		fmt.Fprintf(&b, "  %q [label=%q];\n", id, comp.Name)
	}
	for _, id := range ids {
		comp := e.comps.Get(id)
		for _, depID := range comp.DependsOn {
			dep := e.comps.Get(depID)
			if dep == nil {
				continue
			}
			attr := ""
			if dep.Module != comp.Module {
				attr = " [color=red]"
			}
			fmt.Fprintf(&b, "  %q -> %q%s;\n", id, depID, attr)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// ModuleHierarchyMermaid renders the containment tree as a Mermaid graph
func (e *Engine) ModuleHierarchyMermaid() string {
	paths := make([]string, 0, len(e.tree.Modules))
	for path := range e.tree.Modules {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	nodeIDs := make(map[string]string, len(paths))
	for i, path := range paths {
		nodeIDs[path] = fmt.Sprintf("M%d", i)
	}

	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, path := range paths {
		fmt.Fprintf(&b, "    %s[%q]\n", nodeIDs[path], displayName(path))
	}
	for _, path := range paths {
		info := e.tree.Modules[path]
		for _, child := range info.Children {
			if childID, ok := nodeIDs[child]; ok {
				fmt.Fprintf(&b, "    %s --> %s\n", nodeIDs[path], childID)
			}
		}
	}
	return b.String()
}

// ModuleContextMermaid renders one module against the foreign modules it
// depends on and the foreign modules that use it.
func ModuleContextMermaid(report domain.ModuleReport) string {
	var b strings.Builder
	b.WriteString("graph LR\n")
	fmt.Fprintf(&b, "    THIS[%q]\n", displayName(report.Module))

	for i, group := range report.Dependencies {
		id := fmt.Sprintf("D%d", i)
		fmt.Fprintf(&b, "    %s[%q]\n", id, displayName(group.TargetModule))
		fmt.Fprintf(&b, "    THIS --> %s\n", id)
	}
	for i, group := range report.Dependents {
		id := fmt.Sprintf("U%d", i)
		fmt.Fprintf(&b, "    %s[%q]\n", id, displayName(group.SourceModule))
		fmt.Fprintf(&b, "    %s --> THIS\n", id)
	}
	return b.String()
}

// displayName keeps the last path segment so diagrams stay readable
func displayName(modulePath string) string {
	if i := strings.LastIndex(modulePath, "/"); i >= 0 {
		return modulePath[i+1:]
	}
	return modulePath
}
