package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/huangsam/recordlens/core"
	"github.com/huangsam/recordlens/core/algo"
	"github.com/huangsam/recordlens/internal/contract"
	"github.com/huangsam/recordlens/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

var errNoRecord = errors.New("record_path or record_json is required")

// recordFrom loads the record named by the request, preferring a file path over inline JSON.
func recordFrom(request mcp.CallToolRequest) (core.BatchInput, error) {
	if p := request.GetString("record_path", ""); p != "" {
		inputs, err := core.LoadInputs([]string{p})
		if err != nil {
			return core.BatchInput{}, err
		}
		return inputs[0], nil
	}
	raw := request.GetString("record_json", "")
	if raw == "" {
		return core.BatchInput{}, errNoRecord
	}
	rv, err := contract.NewRecordValidator()
	if err != nil {
		return core.BatchInput{}, err
	}
	rec, err := rv.Parse([]byte(raw))
	if err != nil {
		return core.BatchInput{}, err
	}
	return core.BatchInput{Ref: "inline", Record: rec}, nil
}

func textResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvaluateRecord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := recordFrom(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid record: %v", err)), nil
	}
	result, err := core.Evaluate(in.Record, h.baseCfg.Rubric)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}
	core.TrackEvaluations(ctx, h.baseCfg, h.mgr, "mcp:evaluate_record", []schema.BatchEntry{{RecordRef: in.Ref, Rank: 1, Result: result}})
	return textResult(schema.EvaluationDocument{GeneratedAt: h.baseCfg.Now(), Record: in.Ref, Evaluation: result})
}

func (h *toolHandler) handleCompareWithReferences(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.baseCfg.References == nil {
		return mcp.NewToolResultError(schema.ErrNoReferences.Error()), nil
	}
	refs, err := h.baseCfg.References.Filter(request.GetString("college", ""), request.GetString("major", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid reference filter: %v", err)), nil
	}
	in, err := recordFrom(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid record: %v", err)), nil
	}
	result, err := core.CompareWithReferences(in.Record, h.baseCfg.Rubric, refs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return textResult(schema.BenchmarkDocument{GeneratedAt: h.baseCfg.Now(), Record: in.Ref, Benchmark: result})
}

func (h *toolHandler) handleRankRecords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := request.GetStringSlice("record_paths", nil)
	if len(paths) == 0 {
		return mcp.NewToolResultError("record_paths is required"), nil
	}
	limit := h.baseCfg.ResultLimit
	if l := request.GetInt("limit", 0); l > 0 {
		limit = min(l, contract.MaxResultLimit)
	}

	inputs, err := core.LoadInputs(paths)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid record: %v", err)), nil
	}
	entries, err := core.EvaluateBatch(ctx, inputs, h.baseCfg.Rubric, h.baseCfg.Workers)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}
	core.TrackEvaluations(ctx, h.baseCfg, h.mgr, "mcp:rank_records", entries)
	ranked := algo.RankEvaluations(entries, limit)
	return textResult(schema.BatchDocument{GeneratedAt: h.baseCfg.Now(), Total: len(ranked), Results: ranked})
}

func (h *toolHandler) handleDescribeRubric(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(schema.NewRubricDocument(h.baseCfg.Rubric, h.baseCfg.Now()))
}
