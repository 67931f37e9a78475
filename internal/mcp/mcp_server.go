// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/polarize/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Polarize MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, stores contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Polarize Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		stores:  stores,
	}

	// --- 1. Tool: compute_metric ---
	s.AddTool(mcp.NewTool("compute_metric",
		mcp.WithDescription("Compute a polarization, divisiveness, or competitiveness metric over a CSV dataset."),
		mcp.WithString("metric", mcp.Description("Metric to compute."), mcp.Required(),
			mcp.Enum("esteban-ray", "reynal-querol", "wang-tsui", "divisiveness", "within", "between", "blais-lago", "grofman-selb", "enp", "gini")),
		mcp.WithString("input_path", mcp.Description("Path to the CSV dataset (optionally gzip-compressed)."), mcp.Required()),
		mcp.WithNumber("alpha", mcp.Description("Sensitivity exponent for esteban-ray (default 0) and enp (default 2).")),
		mcp.WithNumber("seats", mcp.Description("Seat count, required by blais-lago.")),
		mcp.WithBoolean("normalize", mcp.Description("Normalize esteban-ray by total proportion mass.")),
	), h.handleComputeMetric)

	// --- 2. Tool: allocate_seats ---
	s.AddTool(mcp.NewTool("allocate_seats",
		mcp.WithDescription("Allocate parliamentary seats from party vote counts."),
		mcp.WithString("input_path", mcp.Description("Path to the CSV dataset with party and votes columns."), mcp.Required()),
		mcp.WithNumber("seats", mcp.Description("Number of seats to allocate."), mcp.Required()),
		mcp.WithString("method", mcp.Description("Allocation rule: dhondt (default), or hare/droop largest-remainder quotas."), mcp.Enum("dhondt", "hare", "droop")),
	), h.handleAllocateSeats)

	// --- 3. Tool: list_metrics ---
	s.AddTool(mcp.NewTool("list_metrics",
		mcp.WithDescription("List every supported metric with a one-line definition."),
	), h.handleListMetrics)

	return s
}

// StartMCPServer starts the Polarize MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, stores contract.StoreManager) error {
	s := NewMCPServer(baseCfg, stores)
	return server.ServeStdio(s)
}
