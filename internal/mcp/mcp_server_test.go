package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/huangsam/uli/internal/contract"
	mcp_internal "github.com/huangsam/uli/internal/mcp"
	"github.com/huangsam/uli/internal/store"
	"github.com/huangsam/uli/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func newServer() (*server.MCPServer, *store.MemoryStore) {
	records := store.NewMemoryStore()
	baseCfg := &contract.Config{Identity: "mcp_user"}
	return mcp_internal.NewMCPServer(baseCfg, store.NewRecordStoreManager(records)), records
}

func TestMCPServerTools(t *testing.T) {
	s, _ := newServer()
	for _, name := range []string{"get_dashboard", "get_trend", "recommend_exercise", "search_reflections", "log_reflection"} {
		assert.NotNil(t, s.GetTool(name), name)
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s, records := newServer()

	t.Run("get_trend invalid window", func(t *testing.T) {
		res := call(t, s, "get_trend", map[string]any{"window": "90d"})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, text(res), "invalid window")
	})

	t.Run("get_trend invalid principles", func(t *testing.T) {
		res := call(t, s, "get_trend", map[string]any{"principles": "r3,xyz"})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "invalid principles")
	})

	t.Run("search_reflections invalid since", func(t *testing.T) {
		res := call(t, s, "search_reflections", map[string]any{"since": "whenever"})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "invalid since value")
	})

	t.Run("search_reflections invalid limit", func(t *testing.T) {
		res := call(t, s, "search_reflections", map[string]any{"limit": -1.0})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "limit must be between")
	})

	t.Run("log_reflection empty text", func(t *testing.T) {
		res := call(t, s, "log_reflection", map[string]any{"reflection": "  "})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "malformed record")
	})

	t.Run("log_reflection score out of range", func(t *testing.T) {
		res := call(t, s, "log_reflection", map[string]any{"reflection": "ok", "apd": 0.0})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "apd=0")
	})

	reflections, err := records.LoadReflections("mcp_user")
	require.NoError(t, err)
	assert.Empty(t, reflections)
}

func TestMCPServerHandlers_NoStore(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{Identity: "x"}, nil)
	res := call(t, s, "get_dashboard", nil)
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "not initialized")
}

func TestMCPServerHandlers_Flow(t *testing.T) {
	s, records := newServer()

	res := call(t, s, "log_reflection", map[string]any{
		"reflection": "Watched my breath",
		"tags":       "calm, morning",
		"r3":         8.0,
		"lps":        2.0,
	})
	require.False(t, res.IsError, text(res))

	var logged schema.ReflectResult
	require.NoError(t, json.Unmarshal([]byte(text(res)), &logged))
	assert.Equal(t, "mcp_user", logged.Identity)
	assert.Equal(t, []string{"calm", "morning"}, logged.Entry.Tags)
	assert.Equal(t, schema.LPS, logged.Recommendation)
	assert.Equal(t, 1, logged.Streak)

	history, err := records.LoadHistory("mcp_user")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	res = call(t, s, "get_dashboard", nil)
	require.False(t, res.IsError, text(res))
	var dashboard schema.DashboardResult
	require.NoError(t, json.Unmarshal([]byte(text(res)), &dashboard))
	assert.True(t, dashboard.HasScores)
	assert.Equal(t, 8, dashboard.Scores.R3)
	assert.Equal(t, schema.LPS, dashboard.Recommendation)

	res = call(t, s, "recommend_exercise", nil)
	require.False(t, res.IsError, text(res))
	var rec schema.RecommendationResult
	require.NoError(t, json.Unmarshal([]byte(text(res)), &rec))
	assert.Equal(t, schema.LPS, rec.Principle)
	assert.Equal(t, 2, rec.Score)

	res = call(t, s, "search_reflections", map[string]any{"query": "BREATH", "tag": "calm"})
	require.False(t, res.IsError, text(res))
	var found schema.HistoryResult
	require.NoError(t, json.Unmarshal([]byte(text(res)), &found))
	assert.Equal(t, 1, found.Total)

	res = call(t, s, "get_trend", map[string]any{"window": "7d", "principles": "r3"})
	require.False(t, res.IsError, text(res))
	var trend schema.TrendResult
	require.NoError(t, json.Unmarshal([]byte(text(res)), &trend))
	assert.True(t, trend.Insufficient)
	assert.Equal(t, []schema.Principle{schema.R3}, trend.Principles)
}

func TestMCPServerHandlers_IdentityOverride(t *testing.T) {
	s, records := newServer()

	res := call(t, s, "log_reflection", map[string]any{"reflection": "other", "identity": "someone_else"})
	require.False(t, res.IsError, text(res))

	mine, err := records.LoadReflections("mcp_user")
	require.NoError(t, err)
	assert.Empty(t, mine)
	theirs, err := records.LoadReflections("someone_else")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
