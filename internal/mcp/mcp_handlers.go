package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/uli/core"
	"github.com/huangsam/uli/internal/contract"
	"github.com/huangsam/uli/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
	now     func() time.Time
}

// records resolves the store and the identity for a request.
func (h *toolHandler) records(request mcp.CallToolRequest) (contract.RecordStore, string, error) {
	if h.mgr == nil {
		return nil, "", core.ErrStoreUnavailable
	}
	records := h.mgr.GetRecordStore()
	if records == nil {
		return nil, "", core.ErrStoreUnavailable
	}
	identity := request.GetString("identity", h.baseCfg.Identity)
	if identity == "" {
		identity = schema.DefaultIdentity
	}
	return records, identity, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDashboard(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, identity, err := h.records(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := core.BuildDashboard(records, identity, h.now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dashboard failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetTrend(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	window := schema.TrendWindow(request.GetString("window", string(schema.WindowAll)))
	if _, ok := schema.ValidTrendWindows[window]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid window '%s'. Must be 7d, 30d or all", window)), nil
	}
	principles, err := schema.ParsePrinciples(request.GetString("principles", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid principles: %v", err)), nil
	}

	records, identity, err := h.records(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := core.BuildTrendResult(records, identity, window, principles, h.now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleRecommendExercise(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, identity, err := h.records(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := core.BuildRecommendation(records, identity, core.FirstTie)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recommendation failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleSearchReflections(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var since time.Time
	if s := request.GetString("since", ""); s != "" {
		parsed, err := contract.ParseSince(s, h.now())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		since = parsed
	}
	limit := request.GetInt("limit", 0)
	if limit < 0 || limit > contract.MaxResultLimit {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be between 0 and %d", contract.MaxResultLimit)), nil
	}

	records, identity, err := h.records(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := core.SearchHistory(records, identity, request.GetString("query", ""), request.GetString("tag", ""), since, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleLogReflection(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := core.ReflectInput{
		Text:   request.GetString("reflection", ""),
		Tags:   request.GetString("tags", ""),
		Scores: make(map[schema.Principle]int),
	}
	args := request.GetArguments()
	for _, p := range schema.AllPrinciples {
		if _, ok := args[string(p)]; ok {
			in.Scores[p] = request.GetInt(string(p), 0)
		}
	}

	records, identity, err := h.records(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := core.LogReflection(records, identity, in, h.now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}
