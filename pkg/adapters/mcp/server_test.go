package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aretw0/penrose"
	"github.com/aretw0/penrose/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcResult is the subset of a JSON-RPC tool response the tests inspect.
type rpcResult struct {
	Result struct {
		IsError           bool            `json:"isError"`
		StructuredContent json.RawMessage `json:"structuredContent"`
		Content           []struct {
			Text string `json:"text"`
		} `json:"content"`
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
		Contents []struct {
			URI  string `json:"uri"`
			Text string `json:"text"`
		} `json:"contents"`
	} `json:"result"`
}

func newServer(t *testing.T, opts ...penrose.Option) *Server {
	t.Helper()
	gen, err := penrose.New(opts...)
	require.NoError(t, err)
	return NewServer(gen)
}

func call(t *testing.T, s *Server, method string, params any) rpcResult {
	t.Helper()
	p, err := json.Marshal(params)
	require.NoError(t, err)
	msg := fmt.Sprintf(`{"jsonrpc":"2.0","id":1,"method":%q,"params":%s}`, method, p)

	resp := s.MCP().HandleMessage(context.Background(), json.RawMessage(msg))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var out rpcResult
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) rpcResult {
	return call(t, s, "tools/call", map[string]any{"name": name, "arguments": args})
}

func TestTools_Listed(t *testing.T) {
	out := call(t, newServer(t), "tools/list", map[string]any{})

	var names []string
	for _, tool := range out.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"generate_tiling", "describe_growth"}, names)
}

func TestGenerateTiling(t *testing.T) {
	s := newServer(t)

	out := callTool(t, s, "generate_tiling", map[string]any{"depth": 2, "length": 1})
	require.False(t, out.Result.IsError, out.Result.Content)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(out.Result.StructuredContent, &resp))
	assert.Equal(t, domain.PenroseName, resp.Tiling)
	assert.Len(t, resp.Segments, 20)
	assert.False(t, resp.Cached)

	out = callTool(t, s, "generate_tiling", map[string]any{"depth": 2, "length": 1, "include_segments": false})
	var summary GenerateResponse
	require.NoError(t, json.Unmarshal(out.Result.StructuredContent, &summary))
	assert.True(t, summary.Cached)
	assert.Empty(t, summary.Segments)
	assert.NotContains(t, string(out.Result.StructuredContent), `"segments"`)
	assert.Equal(t, 20, summary.Stats.Forwards)
}

func TestGenerateTiling_DefaultLength(t *testing.T) {
	out := callTool(t, newServer(t), "generate_tiling", map[string]any{"depth": 2, "include_segments": false})
	require.False(t, out.Result.IsError)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(out.Result.StructuredContent, &resp))
	assert.Equal(t, 10.0, resp.Request.StepLength)
}

func TestGenerateTiling_Errors(t *testing.T) {
	s := newServer(t, penrose.WithSegmentBudget(100))

	for name, args := range map[string]map[string]any{
		"depth below minimum": {"depth": 1},
		"negative length":     {"depth": 2, "length": -1},
		"fractional depth":    {"depth": 2.5},
		"budget exceeded":     {"depth": 5},
	} {
		t.Run(name, func(t *testing.T) {
			out := callTool(t, s, "generate_tiling", args)
			assert.True(t, out.Result.IsError)
		})
	}
}

func TestDescribeGrowth(t *testing.T) {
	out := callTool(t, newServer(t), "describe_growth", map[string]any{"depth": 4})
	require.False(t, out.Result.IsError)

	var resp GrowthResponse
	require.NoError(t, json.Unmarshal(out.Result.StructuredContent, &resp))
	require.Len(t, resp.Passes, 4)
	assert.Equal(t, 2283, resp.Passes[3].Length)
	assert.Equal(t, 400, resp.Passes[3].Forwards)
	assert.InDelta(t, 2283.0/513.0, resp.Factor, 1e-9)
	assert.Contains(t, resp.Mermaid, "graph TD")
}

func TestRulesResource(t *testing.T) {
	out := call(t, newServer(t), "resources/read", map[string]any{"uri": RulesURI})
	require.Len(t, out.Result.Contents, 1)
	assert.Equal(t, RulesURI, out.Result.Contents[0].URI)
	assert.Contains(t, out.Result.Contents[0].Text, `"seed":"[7]++[7]++[7]++[7]++[7]"`)
}
