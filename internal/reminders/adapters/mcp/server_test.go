package mcp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisadapter "goremind/internal/reminders/adapters/redis"
	"goremind/internal/reminders/app"
	"goremind/internal/reminders/domain/entities"
	"goremind/internal/reminders/ports/api"
	"goremind/pkg/metrics"
)

func newTestServer(t *testing.T) (*Server, *miniredis.Miniredis, *metrics.Collector) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	collector := metrics.NewCollector("reminders")
	service := app.NewReminderUseCase(redisadapter.NewReminderRepository(client))
	return NewServer(service, WithMetrics(collector)), mr, collector
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	tool, ok := findTool(s, name)
	require.True(t, ok, "tool %s is not registered", name)

	result, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func findTool(s *Server, name string) (server.ServerTool, bool) {
	for _, tool := range s.tools() {
		if tool.Tool.Name == name {
			return tool, true
		}
	}
	return server.ServerTool{}, false
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func decodeReminder(t *testing.T, result *mcp.CallToolResult) entities.Reminder {
	t.Helper()
	require.False(t, result.IsError, resultText(t, result))
	var r entities.Reminder
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &r))
	return r
}

func TestToolsRegistered(t *testing.T) {
	s, _, _ := newTestServer(t)

	for _, op := range api.Operations() {
		_, ok := findTool(s, op.Name)
		assert.True(t, ok, op.Name)
	}
}

func TestCreateAndGetReminderTools(t *testing.T) {
	s, _, collector := newTestServer(t)

	created := decodeReminder(t, callTool(t, s, api.OpCreateReminder, map[string]any{
		"title":       "Buy groceries",
		"description": "Milk, eggs, bread",
		"due_date":    "2023-12-31T12:00:00",
	}))
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy groceries", created.Title)
	assert.Equal(t, "2023-12-31T12:00:00Z", created.DueDate.Format("2006-01-02T15:04:05Z07:00"))

	got := decodeReminder(t, callTool(t, s, api.OpGetReminder, map[string]any{"reminder_id": created.ID}))
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))

	assert.InDelta(t, 1, testutil.ToFloat64(collector.ToolCalls.WithLabelValues(api.OpCreateReminder, metrics.ResultOK)), 0)
}

func TestCreateReminderToolValidation(t *testing.T) {
	s, _, collector := newTestServer(t)

	for _, args := range []map[string]any{
		{},
		{"title": "   "},
		{"title": 12},
		{"title": "x", "due_date": "someday"},
	} {
		result := callTool(t, s, api.OpCreateReminder, args)
		assert.True(t, result.IsError)
		assert.True(t, strings.HasPrefix(resultText(t, result), api.CodeValidation+": "), resultText(t, result))
	}

	list := callTool(t, s, api.OpGetAllReminders, nil)
	assert.JSONEq(t, `[]`, resultText(t, list))
	assert.InDelta(t, 4, testutil.ToFloat64(collector.ToolCalls.WithLabelValues(api.OpCreateReminder, metrics.ResultError)), 0)
}

func TestGetAllRemindersTool(t *testing.T) {
	s, _, _ := newTestServer(t)

	var ids []string
	for _, title := range []string{"one", "two"} {
		ids = append(ids, decodeReminder(t, callTool(t, s, api.OpCreateReminder, map[string]any{"title": title})).ID)
	}

	result := callTool(t, s, api.OpGetAllReminders, map[string]any{})
	require.False(t, result.IsError)

	var list []entities.Reminder
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &list))
	require.Len(t, list, 2)
	assert.Equal(t, ids[0], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
}

func TestUpdateReminderTool(t *testing.T) {
	s, _, _ := newTestServer(t)
	created := decodeReminder(t, callTool(t, s, api.OpCreateReminder, map[string]any{
		"title":       "Buy groceries",
		"description": "Milk",
		"due_date":    "2023-12-31T12:00:00Z",
	}))

	updated := decodeReminder(t, callTool(t, s, api.OpUpdateReminder, map[string]any{
		"reminder_id": created.ID,
		"description": nil,
	}))
	assert.Nil(t, updated.Description)
	assert.Equal(t, created.Title, updated.Title)
	require.NotNil(t, updated.DueDate)
	assert.True(t, created.DueDate.Equal(*updated.DueDate))

	result := callTool(t, s, api.OpUpdateReminder, map[string]any{
		"reminder_id": created.ID,
		"title":       "",
	})
	assert.True(t, result.IsError)
	assert.True(t, strings.HasPrefix(resultText(t, result), api.CodeValidation))
}

func TestDeleteReminderTool(t *testing.T) {
	s, _, _ := newTestServer(t)
	created := decodeReminder(t, callTool(t, s, api.OpCreateReminder, map[string]any{"title": "x"}))

	result := callTool(t, s, api.OpDeleteReminder, map[string]any{"reminder_id": created.ID})
	require.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), created.ID)

	missing := callTool(t, s, api.OpGetReminder, map[string]any{"reminder_id": created.ID})
	assert.True(t, missing.IsError)
	assert.Equal(t, api.CodeNotFound+": Reminder with ID "+created.ID+" not found", resultText(t, missing))

	again := callTool(t, s, api.OpDeleteReminder, map[string]any{"reminder_id": created.ID})
	assert.True(t, strings.HasPrefix(resultText(t, again), api.CodeNotFound))
}

func TestReminderIDArgument(t *testing.T) {
	s, _, _ := newTestServer(t)

	for _, args := range []map[string]any{{}, {"reminder_id": 5}, {"reminder_id": ""}} {
		result := callTool(t, s, api.OpGetReminder, args)
		assert.True(t, result.IsError)
		assert.True(t, strings.HasPrefix(resultText(t, result), api.CodeValidation))
	}
}

func TestToolStorageUnavailable(t *testing.T) {
	s, mr, _ := newTestServer(t)
	mr.Close()

	result := callTool(t, s, api.OpGetAllReminders, nil)
	assert.True(t, result.IsError)
	assert.Equal(t, api.CodeStorageUnavailable+": "+api.DetailStorageUnavailable, resultText(t, result))
}

func TestStreamableHTTPHandlerInitialize(t *testing.T) {
	s, _, _ := newTestServer(t)
	srv := httptest.NewServer(s.StreamableHTTPHandler())
	defer srv.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name":"reminders"`)
}
