// Package mcp публикует операции над напоминаниями как инструменты MCP.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"goremind/internal/reminders/app/dto"
	"goremind/internal/reminders/ports/api"
	"goremind/pkg/logger"
	"goremind/pkg/metrics"
)

const (
	serverName    = "reminders"
	serverVersion = "1.0.0"

	argReminderID  = api.PathParamReminderID
	argTitle       = "title"
	argDescription = "description"
	argDueDate     = "due_date"

	dueDateHint = "ISO-8601 timestamp, e.g. 2023-12-31T12:00:00 (UTC when no zone is given)"
)

// Server - MCP-сервер поверх api.ReminderService.
type Server struct {
	mcpServer *server.MCPServer
	service   api.ReminderService
	metrics   *metrics.Collector
}

// Option настраивает Server.
type Option func(*Server)

// WithMetrics включает учет вызовов инструментов.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) {
		s.metrics = c
	}
}

// NewServer создает MCP-сервер с инструментами для всех операций сервиса.
func NewServer(service api.ReminderService, opts ...Option) *Server {
	s := &Server{service: service}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()
	return s
}

// MCPServer возвращает базовый MCP-сервер.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// StreamableHTTPHandler возвращает обработчик streamable HTTP для монтирования в роутер.
func (s *Server) StreamableHTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcpServer,
		server.WithStateLess(true),
		server.WithHTTPContextFunc(requestContext),
	)
}

// NewSSEServer создает отдельный SSE-сервер MCP.
func (s *Server) NewSSEServer(baseURL string) *server.SSEServer {
	opts := []server.SSEOption{server.WithSSEContextFunc(requestContext)}
	if baseURL != "" {
		opts = append(opts, server.WithBaseURL(baseURL))
	}
	return server.NewSSEServer(s.mcpServer, opts...)
}

func requestContext(ctx context.Context, r *http.Request) context.Context {
	return logger.NewRequestIDContext(ctx, logger.AcceptRequestID(r.Header.Get(logger.HeaderRequestID)))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTools(s.tools()...)
}

// tools возвращает описания инструментов с обработчиками.
func (s *Server) tools() []server.ServerTool {
	descriptions := make(map[string]api.Operation)
	for _, op := range api.Operations() {
		descriptions[op.Name] = op
	}
	describe := func(name string) mcp.ToolOption {
		op := descriptions[name]
		return mcp.WithDescription(fmt.Sprintf("%s. %s (%s)", op.Summary, op.Description, op.Endpoint()))
	}

	return []server.ServerTool{
		{
			Tool: mcp.NewTool(api.OpCreateReminder,
				describe(api.OpCreateReminder),
				mcp.WithString(argTitle, mcp.Required(), mcp.Description("The title of the reminder"), mcp.MaxLength(dto.MaxTitleLength)),
				mcp.WithString(argDescription, mcp.Description("Detailed description of the reminder"), mcp.MaxLength(dto.MaxDescriptionLength)),
				mcp.WithString(argDueDate, mcp.Description("Due date for the reminder, "+dueDateHint)),
			),
			Handler: s.instrument(api.OpCreateReminder, s.handleCreateReminder),
		},
		{
			Tool: mcp.NewTool(api.OpGetAllReminders,
				describe(api.OpGetAllReminders),
				mcp.WithReadOnlyHintAnnotation(true),
			),
			Handler: s.instrument(api.OpGetAllReminders, s.handleGetAllReminders),
		},
		{
			Tool: mcp.NewTool(api.OpGetReminder,
				describe(api.OpGetReminder),
				mcp.WithReadOnlyHintAnnotation(true),
				mcp.WithString(argReminderID, mcp.Required(), mcp.Description("Reminder ID (UUID)")),
			),
			Handler: s.instrument(api.OpGetReminder, s.handleGetReminder),
		},
		{
			Tool: mcp.NewTool(api.OpUpdateReminder,
				describe(api.OpUpdateReminder),
				mcp.WithString(argReminderID, mcp.Required(), mcp.Description("Reminder ID (UUID)")),
				mcp.WithString(argTitle, mcp.Description("New title"), mcp.MaxLength(dto.MaxTitleLength)),
				mcp.WithString(argDescription, mcp.Description("New description, null clears it"), mcp.MaxLength(dto.MaxDescriptionLength)),
				mcp.WithString(argDueDate, mcp.Description("New due date, null clears it; "+dueDateHint)),
			),
			Handler: s.instrument(api.OpUpdateReminder, s.handleUpdateReminder),
		},
		{
			Tool: mcp.NewTool(api.OpDeleteReminder,
				describe(api.OpDeleteReminder),
				mcp.WithDestructiveHintAnnotation(true),
				mcp.WithString(argReminderID, mcp.Required(), mcp.Description("Reminder ID (UUID)")),
			),
			Handler: s.instrument(api.OpDeleteReminder, s.handleDeleteReminder),
		},
	}
}

func (s *Server) instrument(tool string, h server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := h(ctx, req)
		s.metrics.ObserveToolCall(tool, err != nil || (result != nil && result.IsError))
		return result, err
	}
}

func (s *Server) handleCreateReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var body dto.CreateReminderRequest
	if err := decodeArguments(req, &body); err != nil {
		return toolError(ctx, api.OpCreateReminder, err, ""), nil
	}

	reminder, err := s.service.CreateReminder(ctx, &body)
	if err != nil {
		return toolError(ctx, api.OpCreateReminder, err, ""), nil
	}
	return jsonResult(reminder)
}

func (s *Server) handleGetAllReminders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reminders, err := s.service.ListReminders(ctx)
	if err != nil {
		return toolError(ctx, api.OpGetAllReminders, err, ""), nil
	}
	return jsonResult(reminders)
}

func (s *Server) handleGetReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := reminderID(req)
	if err != nil {
		return toolError(ctx, api.OpGetReminder, err, ""), nil
	}

	reminder, err := s.service.GetReminder(ctx, id)
	if err != nil {
		return toolError(ctx, api.OpGetReminder, err, id), nil
	}
	return jsonResult(reminder)
}

func (s *Server) handleUpdateReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := reminderID(req)
	if err != nil {
		return toolError(ctx, api.OpUpdateReminder, err, ""), nil
	}

	var body dto.UpdateReminderRequest
	if err := decodeArguments(req, &body); err != nil {
		return toolError(ctx, api.OpUpdateReminder, err, id), nil
	}

	reminder, err := s.service.UpdateReminder(ctx, id, &body)
	if err != nil {
		return toolError(ctx, api.OpUpdateReminder, err, id), nil
	}
	return jsonResult(reminder)
}

func (s *Server) handleDeleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := reminderID(req)
	if err != nil {
		return toolError(ctx, api.OpDeleteReminder, err, ""), nil
	}

	if err := s.service.DeleteReminder(ctx, id); err != nil {
		return toolError(ctx, api.OpDeleteReminder, err, id), nil
	}
	return jsonResult(map[string]any{"id": id, "deleted": true})
}

func toolError(ctx context.Context, tool string, err error, id string) *mcp.CallToolResult {
	code := api.ErrorCode(err)
	logger.Log(ctx).Debug(ctx, "mcp tool call failed",
		zap.String("tool", tool),
		zap.String("code", code),
		zap.Error(err))
	return mcp.NewToolResultError(code + ": " + api.ErrorDetail(err, id))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}
