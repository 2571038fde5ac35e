// Package query provides JQ-based extraction over the feature snapshot.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/roadmap-mcp/internal/feature"
)

// Engine executes JQ expressions against feature collections.
type Engine struct{}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Result contains the outcome of a JQ run.
type Result struct {
	Values   []any    `json:"values"`
	Errors   []string `json:"errors,omitempty"`
	RawCount int      `json:"raw_count"`
}

// Run executes a JQ expression with the feature list as input. The input is
// the JSON array of feature objects, so expressions address the collection
// directly (".[] | select(.status == \"Launched\") | .title").
func (e *Engine) Run(features []*feature.Feature, expression string, deduplicate bool, maxResults int) (*Result, error) {
	parsed, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	input, err := toPlain(features)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Values: make([]any, 0),
		Errors: make([]string, 0),
	}

	seen := make(map[string]bool)
	iter := code.Run(input)

	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := v.(error); isErr {
			result.Errors = append(result.Errors, formatJQError(err))
			continue
		}
		if v == nil {
			continue
		}

		result.RawCount++

		if deduplicate {
			key := valueKey(v)
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		result.Values = append(result.Values, v)

		if maxResults > 0 && len(result.Values) >= maxResults {
			break
		}
	}

	return result, nil
}

// toPlain converts features into the plain []any / map[string]any shapes
// gojq operates on.
func toPlain(features []*feature.Feature) (any, error) {
	b, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("encoding features: %w", err)
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("decoding features: %w", err)
	}
	return v, nil
}

// formatJQError decorates common runtime JQ errors with hints. Runtime
// errors from gojq are plain errors without typed wrappers, so the hints
// rely on string matching; they only affect display, never control flow.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist on these features)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "expected an object but got: array"):
		hint = " (the input is the feature array, try '.[]' first)"
	}

	return errStr + hint
}

// valueKey builds a deduplication key for a JQ output value.
func valueKey(v any) string {
	switch val := v.(type) {
	case string:
		return "s:" + val
	case float64:
		return fmt.Sprintf("n:%v", val)
	case bool:
		return fmt.Sprintf("b:%v", val)
	case nil:
		return "null"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("?:%v", val)
		}
		return "j:" + string(b)
	}
}
