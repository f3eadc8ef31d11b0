// Package mcp exposes the settings engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/localsettings"
	"github.com/aretw0/localsettings/internal/logging"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/ports"
	"github.com/aretw0/localsettings/pkg/view"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// AccountsURI is the resource listing the accounts with stored settings.
const AccountsURI = "localsettings://accounts"

// PageArgs selects a dialog page of an account.
type PageArgs struct {
	Account string `json:"account"`
	Page    int    `json:"page"`
}

// Server wraps the settings engine and exposes it as an MCP server.
type Server struct {
	engine    ports.SettingsEngine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP server. A nil logger discards output.
func NewServer(engine ports.SettingsEngine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("localsettings-mcp", strings.TrimSpace(localsettings.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on port until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
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

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_settings",
		mcp.WithDescription("Get the settings snapshot of an account; defaults when none is stored."),
		mcp.WithString("account", mcp.Required(), mcp.Description("Account name")),
	), s.handleGetSettings)

	s.mcpServer.AddTool(mcp.NewTool("render_page",
		mcp.WithDescription("Render a page of the settings dialog. Out-of-range pages render the first page."),
		mcp.WithString("account", mcp.Required(), mcp.Description("Account name")),
		mcp.WithNumber("page", mcp.Description("Page index, 0 to 4")),
		mcp.WithOutputSchema[view.Page](),
	), mcp.NewStructuredToolHandler(s.handleRenderPage))

	s.mcpServer.AddTool(mcp.NewTool("change_setting",
		mcp.WithDescription("Apply one change to a setting addressed by its dotted path."),
		mcp.WithString("account", mcp.Required(), mcp.Description("Account name")),
		mcp.WithString("path", mcp.Required(), mcp.Description("Dotted path, e.g. collapsed.enabled")),
		mcp.WithString("value", mcp.Required(), mcp.Description("New value; true/false for toggles")),
	), s.handleChangeSetting)

	s.mcpServer.AddTool(mcp.NewTool("interact",
		mcp.WithDescription("Interact with a field of the settings dialog. Disabled fields reject the interaction."),
		mcp.WithString("account", mcp.Required(), mcp.Description("Account name")),
		mcp.WithString("field", mcp.Required(), mcp.Description("Field id")),
		mcp.WithBoolean("checked", mcp.Description("Checkbox state")),
		mcp.WithString("text", mcp.Description("Text field content")),
		mcp.WithString("value", mcp.Description("Radio option value")),
	), s.handleInteract)

	s.mcpServer.AddTool(mcp.NewTool("reset_settings",
		mcp.WithDescription("Restore the default settings of an account."),
		mcp.WithString("account", mcp.Required(), mcp.Description("Account name")),
	), s.handleReset)
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(AccountsURI, "Accounts with stored settings",
		mcp.WithMIMEType("application/json"),
	), s.handleAccounts)
}

func (s *Server) handleGetSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account, err := request.RequireString("account")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	settings, err := s.engine.Settings(ctx, account)
	if err != nil {
		return s.toolError("get_settings", err), nil
	}
	return jsonResult(settings)
}

func (s *Server) handleRenderPage(ctx context.Context, _ mcp.CallToolRequest, args PageArgs) (view.Page, error) {
	if args.Account == "" {
		return view.Page{}, errors.New("account is required")
	}
	page, err := s.engine.RenderPage(ctx, args.Account, args.Page)
	if err != nil {
		return view.Page{}, fmt.Errorf("render failed: %w", err)
	}
	return page, nil
}

func (s *Server) handleChangeSetting(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account, err := request.RequireString("account")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path := domain.ParsePath(raw)
	value, err := domain.ParseValue(domain.KindOf(path), text)
	if err != nil {
		if domain.KindOf(path) == domain.KindAbsent {
			err = fmt.Errorf("%w: %s", domain.ErrUnknownPath, raw)
		}
		return s.toolError("change_setting", err), nil
	}
	settings, err := s.engine.Change(ctx, account, domain.Change{Path: path, Value: value})
	if err != nil {
		return s.toolError("change_setting", err), nil
	}
	return jsonResult(settings)
}

func (s *Server) handleInteract(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account, err := request.RequireString("account")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	field, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var in view.Input
	args := request.GetArguments()
	if _, ok := args["checked"]; ok {
		in = view.Toggle(request.GetBool("checked", false))
	} else if _, ok := args["text"]; ok {
		in = view.Type(request.GetString("text", ""))
	} else if _, ok := args["value"]; ok {
		in = view.Choose(request.GetString("value", ""))
	} else {
		return mcp.NewToolResultError("one of checked, text or value is required"), nil
	}

	settings, err := s.engine.Interact(ctx, account, field, in)
	if err != nil {
		return s.toolError("interact", err), nil
	}
	return jsonResult(settings)
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	account, err := request.RequireString("account")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.engine.Reset(ctx, account); err != nil {
		return s.toolError("reset_settings", err), nil
	}
	return mcp.NewToolResultText("reset " + account), nil
}

func (s *Server) handleAccounts(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	accounts, err := s.engine.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []string{}
	}
	jsonBytes, err := json.Marshal(accounts)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      AccountsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	s.logger.Warn("MCP tool failed", "tool", tool, "err", err)
	return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
