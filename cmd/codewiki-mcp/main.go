package main

import (
	"fmt"
	"log"
	"os"

	"github.com/codewiki-dev/codewiki/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "codewiki"
	serverVersion = "1.0.0"
)

func main() {
	// Set up logging to stderr (MCP uses stdout for JSON-RPC)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Create MCP server with tool capabilities
	server := mcpserver.NewMCPServer(
		serverName,
		serverVersion,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	// Register all codewiki tools
	mcp.RegisterTools(server)

	log.Printf("Starting %s MCP server v%s\n", serverName, serverVersion)
	log.Println("Registered tools:")
	log.Println("  - analyze_repository: Full structural analysis")
	log.Println("  - analyze_module: Single module report")
	log.Println("  - analyze_component: Single component report")
	log.Println("  - infer_role: Heuristic component role inference")
	log.Println("  - detect_patterns: Architectural pattern detection")
	log.Println("  - get_processing_order: Bottom-up module batches")
	log.Println("")
	log.Println("Server ready - waiting for MCP client connection...")

	// Start server with stdio transport
	// This blocks until the server is terminated
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
