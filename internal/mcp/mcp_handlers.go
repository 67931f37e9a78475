package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/polarize/core"
	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	stores  contract.StoreManager
}

func (h *toolHandler) handleComputeMetric(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Metric = schema.Metric(request.GetString("metric", ""))
	cfg.InputPath = request.GetString("input_path", "")
	if a := request.GetFloat("alpha", 0); a != 0 {
		cfg.Alpha = a
	}
	if s := request.GetInt("seats", 0); s > 0 {
		cfg.Seats = s
	}
	cfg.Normalize = request.GetBool("normalize", cfg.Normalize)

	if err := contract.RevalidateMetricRequest(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid metric parameters: %v", err)), nil
	}

	result, err := core.Run(ctx, cfg, h.stores)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAllocateSeats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.InputPath = request.GetString("input_path", "")
	cfg.Seats = request.GetInt("seats", 0)

	// The method selects the allocator: D'Hondt divisors or a
	// largest-remainder quota.
	switch method := request.GetString("method", "dhondt"); method {
	case "dhondt", "":
		cfg.Metric = schema.MetricDHondt
		cfg.Method = ""
	case "hare", "droop":
		cfg.Metric = schema.MetricProportional
		cfg.Method = schema.QuotaMethod(method)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid allocation method '%s'", method)), nil
	}

	if err := contract.RevalidateMetricRequest(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid allocation parameters: %v", err)), nil
	}

	result, err := core.Run(ctx, cfg, h.stores)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("allocation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListMetrics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type metricEntry struct {
		Metric      string `json:"metric"`
		Description string `json:"description"`
	}

	entries := make([]metricEntry, 0, len(schema.AllMetrics))
	for _, metric := range schema.AllMetrics {
		entries = append(entries, metricEntry{
			Metric:      string(metric),
			Description: schema.MetricDescriptions[metric],
		})
	}

	jsonData, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
