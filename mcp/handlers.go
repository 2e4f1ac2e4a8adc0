package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/codewiki-dev/codewiki/domain"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// defaultHandlers backs the package-level handler functions registered by
// RegisterTools. Configuration is discovered from the working directory.
var defaultHandlers = NewHandlerSet(nil)

// HandleAnalyzeRepository handles the analyze_repository tool
func (h *HandlerSet) HandleAnalyzeRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	req, errMsg := h.requestFromArgs(args)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}

	// Optional module scope
	if rawModules, ok := args["modules"].([]interface{}); ok {
		for _, m := range rawModules {
			if str, ok := m.(string); ok {
				req.Modules = append(req.Modules, str)
			}
		}
	}

	svc := h.deps.BuildAnalysisService()
	response, err := svc.Analyze(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	// Parse output_mode parameter (default: "summary")
	outputMode := "summary"
	if om, ok := args["output_mode"].(string); ok {
		outputMode = om
	}

	var responseData interface{}
	switch outputMode {
	case "full":
		responseData = response
	default: // "summary" - repository totals plus the processing order
		responseData = map[string]interface{}{
			"summary":          response.Summary,
			"processing_order": response.ProcessingOrder,
			"warnings":         response.Warnings,
			"errors":           response.Errors,
		}
	}

	jsonData, err := json.Marshal(responseData)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleAnalyzeModule handles the analyze_module tool
func (h *HandlerSet) HandleAnalyzeModule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	modulePath, ok := args["module"].(string)
	if !ok || modulePath == "" {
		return mcp.NewToolResultError("module parameter is required and must be a string"), nil
	}

	req, errMsg := h.requestFromArgs(args)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}

	svc := h.deps.BuildAnalysisService()
	report, err := svc.AnalyzeModule(ctx, req, modulePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(report)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleAnalyzeComponent handles the analyze_component tool
func (h *HandlerSet) HandleAnalyzeComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	componentID, ok := args["component"].(string)
	if !ok || componentID == "" {
		return mcp.NewToolResultError("component parameter is required and must be a string"), nil
	}

	req, errMsg := h.requestFromArgs(args)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}

	svc := h.deps.BuildAnalysisService()
	report, err := svc.AnalyzeComponent(ctx, req, componentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(report)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleInferRole handles the infer_role tool
func (h *HandlerSet) HandleInferRole(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	componentID, ok := args["component"].(string)
	if !ok || componentID == "" {
		return mcp.NewToolResultError("component parameter is required and must be a string"), nil
	}

	req, errMsg := h.requestFromArgs(args)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}

	svc := h.deps.BuildAnalysisService()
	report, err := svc.AnalyzeComponent(ctx, req, componentID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(report.Purpose)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleDetectPatterns handles the detect_patterns tool
func (h *HandlerSet) HandleDetectPatterns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	modulePath, ok := args["module"].(string)
	if !ok || modulePath == "" {
		return mcp.NewToolResultError("module parameter is required and must be a string"), nil
	}

	req, errMsg := h.requestFromArgs(args)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}

	svc := h.deps.BuildAnalysisService()
	report, err := svc.AnalyzeModule(ctx, req, modulePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(report.Patterns)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleGetProcessingOrder handles the get_processing_order tool
func (h *HandlerSet) HandleGetProcessingOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	req, errMsg := h.requestFromArgs(args)
	if errMsg != "" {
		return mcp.NewToolResultError(errMsg), nil
	}

	svc := h.deps.BuildAnalysisService()
	response, err := svc.Analyze(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, err := json.Marshal(map[string]interface{}{
		"processing_order": response.ProcessingOrder,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// requestFromArgs builds the analysis request shared by every tool: either
// explicit tree/graph artifact paths, or a repository path to search. Returns
// a non-empty message on invalid input.
func (h *HandlerSet) requestFromArgs(args map[string]interface{}) (domain.AnalysisRequest, string) {
	req := domain.AnalysisRequest{
		OutputFormat: domain.OutputFormatJSON,
		ConfigPath:   h.deps.ConfigPath(),
	}

	treePath, _ := args["tree"].(string)
	graphPath, _ := args["graph"].(string)
	req.ModuleTreePath = treePath
	req.DependencyGraph = graphPath

	// Both artifacts given explicitly: no discovery needed.
	if treePath != "" && graphPath != "" {
		return req, ""
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		path = "."
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return req, fmt.Sprintf("path does not exist: %s", path)
	}
	req.Paths = []string{path}

	return req, ""
}

// Package-level handlers bound to the default dependency set.

func HandleAnalyzeRepository(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return defaultHandlers.HandleAnalyzeRepository(ctx, request)
}

func HandleAnalyzeModule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return defaultHandlers.HandleAnalyzeModule(ctx, request)
}

func HandleAnalyzeComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return defaultHandlers.HandleAnalyzeComponent(ctx, request)
}

func HandleInferRole(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return defaultHandlers.HandleInferRole(ctx, request)
}

func HandleDetectPatterns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return defaultHandlers.HandleDetectPatterns(ctx, request)
}

func HandleGetProcessingOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return defaultHandlers.HandleGetProcessingOrder(ctx, request)
}
