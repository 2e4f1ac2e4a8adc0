package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all codewiki MCP tools with the server
func RegisterTools(s *server.MCPServer) {
	// Tool 1: analyze_repository - Full structural analysis
	s.AddTool(mcp.NewTool("analyze_repository",
		mcp.WithDescription("Analyze repository structure from precomputed module tree and dependency graph artifacts: module cohesion, dependency direction, component roles, and architectural patterns"),
		mcp.WithString("path",
			mcp.Description("Repository root to search for module_tree.json and dependency_graph.json (default: current directory)")),
		mcp.WithString("tree",
			mcp.Description("Explicit path to the module tree JSON artifact")),
		mcp.WithString("graph",
			mcp.Description("Explicit path to the dependency graph JSON artifact")),
		mcp.WithArray("modules",
			mcp.WithStringItems(),
			mcp.Description("Module paths to restrict the analysis to. Default: all modules")),
		mcp.WithString("output_mode",
			mcp.Description("Output mode: summary or full (default: summary)")),
	), HandleAnalyzeRepository)

	// Tool 2: analyze_module - Single module report
	s.AddTool(mcp.NewTool("analyze_module",
		mcp.WithDescription("Analyze a single module: cohesion, internal/external dependency split, patterns, and per-component reports"),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Slash-joined module path to analyze (e.g. shop/orders)")),
		mcp.WithString("path",
			mcp.Description("Repository root to search for analysis artifacts (default: current directory)")),
		mcp.WithString("tree",
			mcp.Description("Explicit path to the module tree JSON artifact")),
		mcp.WithString("graph",
			mcp.Description("Explicit path to the dependency graph JSON artifact")),
	), HandleAnalyzeModule)

	// Tool 3: analyze_component - Single component report
	s.AddTool(mcp.NewTool("analyze_component",
		mcp.WithDescription("Analyze a single component: dependencies, dependents, owning module, and inferred role"),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("Component id to analyze (e.g. shop.orders.OrderService)")),
		mcp.WithString("path",
			mcp.Description("Repository root to search for analysis artifacts (default: current directory)")),
		mcp.WithString("tree",
			mcp.Description("Explicit path to the module tree JSON artifact")),
		mcp.WithString("graph",
			mcp.Description("Explicit path to the dependency graph JSON artifact")),
	), HandleAnalyzeComponent)

	// Tool 4: infer_role - Heuristic role inference
	s.AddTool(mcp.NewTool("infer_role",
		mcp.WithDescription("Infer the architectural role of a component (service, manager, model, controller, ...) with confidence and reasoning"),
		mcp.WithString("component",
			mcp.Required(),
			mcp.Description("Component id to classify")),
		mcp.WithString("path",
			mcp.Description("Repository root to search for analysis artifacts (default: current directory)")),
		mcp.WithString("tree",
			mcp.Description("Explicit path to the module tree JSON artifact")),
		mcp.WithString("graph",
			mcp.Description("Explicit path to the dependency graph JSON artifact")),
	), HandleInferRole)

	// Tool 5: detect_patterns - Architectural pattern detection
	s.AddTool(mcp.NewTool("detect_patterns",
		mcp.WithDescription("Detect architectural patterns (layered, plugin, facade) within a module"),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Slash-joined module path to inspect")),
		mcp.WithString("path",
			mcp.Description("Repository root to search for analysis artifacts (default: current directory)")),
		mcp.WithString("tree",
			mcp.Description("Explicit path to the module tree JSON artifact")),
		mcp.WithString("graph",
			mcp.Description("Explicit path to the dependency graph JSON artifact")),
	), HandleDetectPatterns)

	// Tool 6: get_processing_order - Bottom-up module batches
	s.AddTool(mcp.NewTool("get_processing_order",
		mcp.WithDescription("Get the bottom-up module processing order: deepest modules first, grouped into same-level batches"),
		mcp.WithString("path",
			mcp.Description("Repository root to search for analysis artifacts (default: current directory)")),
		mcp.WithString("tree",
			mcp.Description("Explicit path to the module tree JSON artifact")),
		mcp.WithString("graph",
			mcp.Description("Explicit path to the dependency graph JSON artifact")),
	), HandleGetProcessingOrder)
}
