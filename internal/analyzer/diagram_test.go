package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentGraphDOT(t *testing.T) {
	e := engineFixture()

	dot := e.ComponentGraphDOT()
	assert.True(t, strings.HasPrefix(dot, "digraph components {"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))
	assert.Contains(t, dot, `"shop.orders.OrderService" [label="OrderService"];`)

	// same-module edge stays plain, cross-module edge is highlighted
	assert.Contains(t, dot, `"shop.orders.OrderService" -> "shop.orders.OrderModel";`)
	assert.Contains(t, dot, `"shop.App" -> "shop.orders.OrderService" [color=red];`)
}

func TestComponentGraphDOT_SkipsDanglingEdges(t *testing.T) {
	graph := DependencyGraph{
		"a": {Name: "a", DependsOn: []string{"missing"}},
	}
	e := NewEngine(NewGraphStore(ModuleTree{}, graph), nil)

	dot := e.ComponentGraphDOT()
	assert.NotContains(t, dot, "missing")
}

func TestComponentGraphDOT_Deterministic(t *testing.T) {
	e := engineFixture()
	first := e.ComponentGraphDOT()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.ComponentGraphDOT())
	}
}

func TestModuleHierarchyMermaid(t *testing.T) {
	e := engineFixture()

	mermaid := e.ModuleHierarchyMermaid()
	lines := strings.Split(strings.TrimRight(mermaid, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "graph TD", lines[0])

	// sorted paths: shop=M0, shop/orders=M1, shop/users=M2
	assert.Contains(t, mermaid, `M0["shop"]`)
	assert.Contains(t, mermaid, `M1["orders"]`)
	assert.Contains(t, mermaid, `M2["users"]`)
	assert.Contains(t, mermaid, "M0 --> M1")
	assert.Contains(t, mermaid, "M0 --> M2")
}

func TestModuleContextMermaid(t *testing.T) {
	e := engineFixture()

	report := e.ModuleReport("shop/orders")
	mermaid := ModuleContextMermaid(report)

	assert.Contains(t, mermaid, `THIS["orders"]`)
	assert.Contains(t, mermaid, `U0["shop"]`)
	assert.Contains(t, mermaid, "U0 --> THIS")
	assert.NotContains(t, mermaid, "D0", "shop/orders has no outgoing module dependencies")
}
