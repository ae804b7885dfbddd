package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/iamporter/iamporter-go/client"
)

// optString returns the string argument key, or "" when absent.
func optString(req mcp.CallToolRequest, key string) string {
	if v, ok := req.GetArguments()[key].(string); ok {
		return v
	}
	return ""
}

// optNumber accepts JSON numbers and numeric strings; absent means 0.
func optNumber(req mcp.CallToolRequest, key string) (float64, error) {
	switch v := req.GetArguments()[key].(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		if v == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number", key)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}

// resultJSON renders an SDK result as {"found", "message", "data"}.
func resultJSON[T any](res *client.Result[T]) *mcp.CallToolResult {
	out := map[string]any{
		"found":   res.Found(),
		"message": res.Message,
		"data":    res.Data,
	}
	b, _ := json.Marshal(out)
	return mcp.NewToolResultText(string(b))
}

// errorResult keeps the vendor wording and tags it with the error kind.
func errorResult(action string, err error) *mcp.CallToolResult {
	if ie, ok := client.AsError(err); ok {
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s (%s): %s", action, ie.Kind, ie.Message))
	}
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err))
}
