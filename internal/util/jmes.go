// Package util holds small helpers shared across the fetch pipeline.
package util

import (
	"encoding/json"

	"github.com/jmespath/go-jmespath"
)

// UnwrapMessage recovers the human-readable line from a structured log
// message. When raw decodes as JSON, the JMESPath expression is applied
// and a non-empty string result replaces the message (non-string
// results are re-encoded as JSON). Non-JSON input, evaluation errors,
// and empty results all fall back to the raw message unchanged.
func UnwrapMessage(raw, expr string) string {
	if expr == "" {
		return raw
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return raw
	}
	res, err := jmespath.Search(expr, decoded)
	if err != nil || res == nil {
		return raw
	}
	switch v := res.(type) {
	case string:
		if v == "" {
			return raw
		}
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil || string(b) == "null" || string(b) == "{}" || string(b) == "[]" {
			return raw
		}
		return string(b)
	}
}
