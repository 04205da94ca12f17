// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/recordlens/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the recordlens MCP server without starting it.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Recordlens Evaluation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	s.AddTool(mcp.NewTool("evaluate_record",
		mcp.WithDescription("Evaluate a student record across academic, career and community competencies."),
		mcp.WithString("record_path", mcp.Description("Path to a record JSON file.")),
		mcp.WithString("record_json", mcp.Description("Inline record JSON, used when record_path is empty.")),
	), h.handleEvaluateRecord)

	s.AddTool(mcp.NewTool("compare_with_references",
		mcp.WithDescription("Compare a student record with the configured reference admission profiles."),
		mcp.WithString("record_path", mcp.Description("Path to a record JSON file.")),
		mcp.WithString("record_json", mcp.Description("Inline record JSON, used when record_path is empty.")),
		mcp.WithString("college", mcp.Description("Only compare with profiles of this college.")),
		mcp.WithString("major", mcp.Description("Only compare with profiles of this major.")),
	), h.handleCompareWithReferences)

	s.AddTool(mcp.NewTool("rank_records",
		mcp.WithDescription("Evaluate several record files and rank them by final score."),
		mcp.WithArray("record_paths", mcp.Description("Paths to record JSON files."), mcp.WithStringItems(), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankRecords)

	s.AddTool(mcp.NewTool("describe_rubric",
		mcp.WithDescription("Describe the active rubric: weights, grade table and known majors."),
	), h.handleDescribeRubric)

	return s
}

// StartMCPServer serves the recordlens MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
