// Package mcp exposes a generated documentation schema over the Model
// Context Protocol so editors and agents can query declaration docs.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/docspec/pkg/schemaquery"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for docspec, exposing schema query tools.
type Server struct {
	mcpServer *server.MCPServer
	query     *schemaquery.QueryService
	logger    *slog.Logger
}

// NewServer creates an MCP server backed by the given QueryService.
func NewServer(qs *schemaquery.QueryService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{query: qs, logger: logger}

	s.mcpServer = server.NewMCPServer(
		"docspec",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listDeclarationsTool(), Handler: s.handleListDeclarations},
		server.ServerTool{Tool: getDeclarationTool(), Handler: s.handleGetDeclaration},
		server.ServerTool{Tool: searchDeclarationsTool(), Handler: s.handleSearchDeclarations},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting MCP server", "version", serverVersion)
	return server.ServeStdio(s.mcpServer)
}

func listDeclarationsTool() mcp.Tool {
	return mcp.NewTool("list_declarations",
		mcp.WithDescription("List all documented declarations and nested types in the schema"),
	)
}

func getDeclarationTool() mcp.Tool {
	return mcp.NewTool("get_declaration",
		mcp.WithDescription("Get the full documentation schema of one declaration by title"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the declaration (schema entry key)"),
		),
	)
}

func searchDeclarationsTool() mcp.Tool {
	return mcp.NewTool("search_declarations",
		mcp.WithDescription("Search declarations by keyword across titles, tags, and property names"),
		mcp.WithString("keyword",
			mcp.Description("Case-insensitive search keyword; empty lists everything"),
		),
	)
}
