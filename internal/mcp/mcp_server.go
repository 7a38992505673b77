// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"time"

	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the uli MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"UL-I Reflection Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		now:     time.Now,
	}

	identityArg := mcp.WithString("identity", mcp.Description("Identity whose data is used (defaults to the configured identity)."))

	// --- 1. Tool: get_dashboard ---
	s.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Summarize current principle scores, aggregate progress, streak and the recommended exercise."),
		identityArg,
	), h.handleGetDashboard)

	// --- 2. Tool: get_trend ---
	s.AddTool(mcp.NewTool("get_trend",
		mcp.WithDescription("Build the score trend chart for a time window and a selection of principles."),
		mcp.WithString("window", mcp.Description("Time window (7d, 30d, all). Defaults to 'all'."), mcp.Enum("7d", "30d", "all")),
		mcp.WithString("principles", mcp.Description("Comma-separated principle keys (r3, phcb, apd, lps, cdr, eia). Defaults to all.")),
		identityArg,
	), h.handleGetTrend)

	// --- 3. Tool: recommend_exercise ---
	s.AddTool(mcp.NewTool("recommend_exercise",
		mcp.WithDescription("Recommend the practice exercise for the lowest-scoring principle."),
		identityArg,
	), h.handleRecommendExercise)

	// --- 4. Tool: search_reflections ---
	s.AddTool(mcp.NewTool("search_reflections",
		mcp.WithDescription("Search past reflections by text, tag and date, newest first."),
		mcp.WithString("query", mcp.Description("Case-insensitive text matched against reflections and tags.")),
		mcp.WithString("tag", mcp.Description("Exact tag to filter by ('all' disables the filter).")),
		mcp.WithString("since", mcp.Description("Lower bound as ISO8601, YYYY-MM-DD or 'N [units] ago'.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of entries returned.")),
		identityArg,
	), h.handleSearchReflections)

	// --- 5. Tool: log_reflection ---
	scoreArgs := []mcp.ToolOption{
		mcp.WithDescription("Log a reflection with optional tags and principle scores. Omitted scores keep their current value."),
		mcp.WithString("reflection", mcp.Description("The reflection text."), mcp.Required()),
		mcp.WithString("tags", mcp.Description("Comma-separated tags.")),
		identityArg,
	}
	for _, p := range schema.AllPrinciples {
		scoreArgs = append(scoreArgs, mcp.WithNumber(string(p),
			mcp.Description(p.Label()+" score from 1 to 10."),
			mcp.Min(schema.MinScore),
			mcp.Max(schema.MaxScore),
		))
	}
	s.AddTool(mcp.NewTool("log_reflection", scoreArgs...), h.handleLogReflection)

	return s
}

// StartMCPServer starts the uli MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
