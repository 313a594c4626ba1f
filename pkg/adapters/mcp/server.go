package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/scena"
	"github.com/aretw0/scena/internal/dto"
	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
	"github.com/aretw0/scena/pkg/layer"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TreeURI is the resource exposing the group tree.
const TreeURI = "scena://tree"

// Workspace defines what the MCP server needs from a scena workspace.
type Workspace interface {
	Select(ctx context.Context, current group.Targets[string], g domain.Gesture) (group.Targets[string], error)
	Drill(ctx context.Context, current group.Targets[string], target string) group.Targets[string]
	Tree() group.Targets[string]
	Children(scope domain.Scope) []layer.Entry[string]
	CSS(id string) (map[string]string, error)
}

// Server wraps a Workspace and exposes it as an MCP Server.
type Server struct {
	ws        Workspace
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(ws Workspace, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		ws:        ws,
		mcpServer: server.NewMCPServer("scena-mcp", strings.TrimSpace(scena.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	// TOOL: select
	selectTool := mcp.NewTool("select",
		mcp.WithDescription("Apply a pointer gesture to the current selection. Clicks select whole groups once all their layers are covered; meta selects single layers; a marquee (no click) keeps to the depth of the current selection."),
		mcp.WithString("added", mcp.Description("Comma separated layer IDs newly under the pointer")),
		mcp.WithString("removed", mcp.Description("Comma separated layer IDs no longer under the pointer")),
		mcp.WithString("selected", mcp.Description("JSON array of the current selection, as returned by a previous call")),
		mcp.WithBoolean("click", mcp.Description("The gesture is a click or drag start")),
		mcp.WithBoolean("meta", mcp.Description("Meta/command modifier held")),
		mcp.WithBoolean("shift", mcp.Description("Shift held: continue the current selection")),
		mcp.WithOutputSchema[dto.SelectResponse](),
	)
	s.mcpServer.AddTool(selectTool, mcp.NewStructuredToolHandler(s.handleSelect))

	// TOOL: drill
	drillTool := mcp.NewTool("drill",
		mcp.WithDescription("Double click on a layer: select the child of the selected group that contains it."),
		mcp.WithString("target", mcp.Required(), mcp.Description("Layer ID under the pointer")),
		mcp.WithString("selected", mcp.Description("JSON array of the current selection")),
		mcp.WithOutputSchema[dto.SelectResponse](),
	)
	s.mcpServer.AddTool(drillTool, mcp.NewStructuredToolHandler(s.handleDrill))

	// TOOL: find_children
	s.mcpServer.AddTool(mcp.NewTool("find_children",
		mcp.WithDescription("List the layers and groups directly inside a scope, with nested members."),
		mcp.WithString("scope", mcp.Description("Slash separated group path, empty for the root")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scope, _ := request.GetArguments()["scope"].(string)
		entries := dto.FromEntries(s.ws.Children(domain.ParseScope(scope)))
		jsonBytes, _ := json.Marshal(entries)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: get_css
	s.mcpServer.AddTool(mcp.NewTool("get_css",
		mcp.WithDescription("Get the CSS properties of a layer."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Layer ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, _ := request.GetArguments()["id"].(string)
		css, err := s.ws.CSS(id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		jsonBytes, _ := json.Marshal(css)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

func parseSelected(args map[string]interface{}) (group.Targets[string], error) {
	raw, ok := args["selected"].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var wire []dto.Target
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("invalid selected: %w", err)
	}
	return dto.ToTargets(wire), nil
}

func splitIDs(args map[string]interface{}, key string) []string {
	raw, _ := args[key].(string)
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.SelectResponse, error) {
	current, err := parseSelected(args)
	if err != nil {
		return dto.SelectResponse{}, err
	}
	click, _ := args["click"].(bool)
	meta, _ := args["meta"].(bool)
	shift, _ := args["shift"].(bool)

	g := domain.Gesture{
		Added:   splitIDs(args, "added"),
		Removed: splitIDs(args, "removed"),
		IsClick: click,
		Meta:    meta,
		Shift:   shift,
	}
	sel, err := s.ws.Select(ctx, current, g)
	if err != nil {
		s.logger.Warn("MCP select: partial result", "error", err)
	}
	return dto.NewSelectResponse(g.Mode(), sel, err), nil
}

func (s *Server) handleDrill(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (dto.SelectResponse, error) {
	current, err := parseSelected(args)
	if err != nil {
		return dto.SelectResponse{}, err
	}
	target, _ := args["target"].(string)
	if target == "" {
		return dto.SelectResponse{}, fmt.Errorf("target is required")
	}
	return dto.NewSelectResponse(domain.ModeSub, s.ws.Drill(ctx, current, target), nil), nil
}

func (s *Server) registerResources() {
	// EXPOSE: scena://tree
	s.mcpServer.AddResource(mcp.NewResource(TreeURI, "Current Group Tree",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(dto.FromTargets(s.ws.Tree()))
		if err != nil {
			return nil, fmt.Errorf("failed to encode tree: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      TreeURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
