package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/codewiki-dev/codewiki/domain"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTreeJSON = `{
  "shop": {
    "components": ["shop.App"],
    "children": {
      "shop/orders": {"components": ["shop.orders.OrderService", "shop.orders.OrderModel"]},
      "shop/users": {"components": ["shop.users.UserManager"]}
    }
  }
}`

const handlerGraphJSON = `{
  "shop.App": {"name": "App", "component_type": "class", "depends_on": ["shop.orders.OrderService", "shop.users.UserManager"]},
  "shop.orders.OrderService": {"name": "OrderService", "component_type": "class", "depends_on": ["shop.orders.OrderModel"]},
  "shop.orders.OrderModel": {"name": "OrderModel", "component_type": "class"},
  "shop.users.UserManager": {"name": "UserManager", "component_type": "class"}
}`

func writeHandlerArtifacts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "module_tree.json"), []byte(handlerTreeJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dependency_graph.json"), []byte(handlerGraphJSON), 0o644))
	return dir
}

func callTool(
	t *testing.T,
	handlerFunc func(*HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error),
	arguments interface{},
) *mcplib.CallToolResult {
	t.Helper()
	h := NewHandlerSet(nil)
	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: arguments,
		},
	}
	res, err := handlerFunc(h, context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestHandleAnalyzeRepository(t *testing.T) {
	dir := writeHandlerArtifacts(t)

	t.Run("summary mode", func(t *testing.T) {
		res := callTool(t, (*HandlerSet).HandleAnalyzeRepository, map[string]interface{}{
			"path": dir,
		})
		require.False(t, res.IsError)

		var payload struct {
			Summary         domain.RepositorySummary `json:"summary"`
			ProcessingOrder [][]string               `json:"processing_order"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
		assert.Equal(t, 3, payload.Summary.TotalModules)
		assert.Equal(t, 4, payload.Summary.TotalComponents)
		assert.Equal(t, [][]string{{"shop/orders", "shop/users"}, {"shop"}}, payload.ProcessingOrder)
	})

	t.Run("full mode", func(t *testing.T) {
		res := callTool(t, (*HandlerSet).HandleAnalyzeRepository, map[string]interface{}{
			"path":        dir,
			"output_mode": "full",
		})
		require.False(t, res.IsError)

		var response domain.AnalysisResponse
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &response))
		assert.Len(t, response.Modules, 3)
		assert.True(t, response.Modules["shop/orders"].Found)
	})

	t.Run("module scope", func(t *testing.T) {
		res := callTool(t, (*HandlerSet).HandleAnalyzeRepository, map[string]interface{}{
			"path":        dir,
			"modules":     []interface{}{"shop/orders"},
			"output_mode": "full",
		})
		require.False(t, res.IsError)

		var response domain.AnalysisResponse
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &response))
		assert.Len(t, response.Modules, 1)
	})

	t.Run("invalid arguments format", func(t *testing.T) {
		res := callTool(t, (*HandlerSet).HandleAnalyzeRepository, "not-a-map")
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid arguments format")
	})

	t.Run("path does not exist", func(t *testing.T) {
		res := callTool(t, (*HandlerSet).HandleAnalyzeRepository, map[string]interface{}{
			"path": "/non/existing/path",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "path does not exist")
	})

	t.Run("explicit artifacts skip discovery", func(t *testing.T) {
		res := callTool(t, (*HandlerSet).HandleAnalyzeRepository, map[string]interface{}{
			"tree":  filepath.Join(dir, "module_tree.json"),
			"graph": filepath.Join(dir, "dependency_graph.json"),
		})
		require.False(t, res.IsError)
		assert.Contains(t, resultText(t, res), "\"total_modules\":3")
	})
}

func TestHandleAnalyzeModule(t *testing.T) {
	dir := writeHandlerArtifacts(t)

	t.Run("found module", func(t *testing.T) {
		res := callTool(t, (*HandlerSet).HandleAnalyzeModule, map[string]interface{}{
			"module": "shop/orders",
			"path":   dir,
		})
		require.False(t, res.IsError)

		var report domain.ModuleReport
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
		assert.True(t, report.Found)
		assert.Equal(t, "shop/orders", report.Module)
		assert.Len(t, report.Components, 2)
	})

	t.Run("unknown module yields sentinel", func(t *testing.T) {
		res := callTool(t, (*HandlerSet).HandleAnalyzeModule, map[string]interface{}{
			"module": "shop/ghost",
			"path":   dir,
		})
		require.False(t, res.IsError)

		var report domain.ModuleReport
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
		assert.False(t, report.Found)
	})

	t.Run("module parameter required", func(t *testing.T) {
		res := callTool(t, (*HandlerSet).HandleAnalyzeModule, map[string]interface{}{
			"path": dir,
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "module parameter is required")
	})
}

func TestHandleAnalyzeComponent(t *testing.T) {
	dir := writeHandlerArtifacts(t)

	res := callTool(t, (*HandlerSet).HandleAnalyzeComponent, map[string]interface{}{
		"component": "shop.orders.OrderService",
		"path":      dir,
	})
	require.False(t, res.IsError)

	var report domain.ComponentReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
	assert.Equal(t, "shop/orders", report.Info.Module)
	assert.True(t, report.Dependencies.Found)
	assert.Equal(t, domain.RoleService, report.Purpose.Role)
}

func TestHandleInferRole(t *testing.T) {
	dir := writeHandlerArtifacts(t)

	t.Run("manager name rule", func(t *testing.T) {
		res := callTool(t, (*HandlerSet).HandleInferRole, map[string]interface{}{
			"component": "shop.users.UserManager",
			"path":      dir,
		})
		require.False(t, res.IsError)

		var role domain.RoleAssignment
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &role))
		assert.Equal(t, domain.RoleManager, role.Role)
		assert.InDelta(t, 0.8, role.Confidence, 0.001)
	})

	t.Run("component parameter required", func(t *testing.T) {
		res := callTool(t, (*HandlerSet).HandleInferRole, map[string]interface{}{
			"path": dir,
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "component parameter is required")
	})
}

func TestHandleDetectPatterns(t *testing.T) {
	dir := writeHandlerArtifacts(t)

	res := callTool(t, (*HandlerSet).HandleDetectPatterns, map[string]interface{}{
		"module": "shop/orders",
		"path":   dir,
	})
	require.False(t, res.IsError)

	var report domain.PatternReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
	assert.True(t, report.Found)
	assert.Equal(t, "shop/orders", report.Module)
	assert.Contains(t, report.ComponentRoles, "shop.orders.OrderService")
}

func TestHandleGetProcessingOrder(t *testing.T) {
	dir := writeHandlerArtifacts(t)

	res := callTool(t, (*HandlerSet).HandleGetProcessingOrder, map[string]interface{}{
		"path": dir,
	})
	require.False(t, res.IsError)

	var payload struct {
		ProcessingOrder [][]string `json:"processing_order"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	assert.Equal(t, [][]string{{"shop/orders", "shop/users"}, {"shop"}}, payload.ProcessingOrder)
}

func TestHandlers_MissingArtifacts(t *testing.T) {
	empty := t.TempDir()

	res := callTool(t, (*HandlerSet).HandleGetProcessingOrder, map[string]interface{}{
		"path": empty,
	})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "analysis failed")
}
