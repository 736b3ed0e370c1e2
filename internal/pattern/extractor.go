// Package pattern normalizes log messages into canonical templates and
// groups events that share a template.
package pattern

import "regexp"

// rule rewrites one class of variable substring to a placeholder.
type rule struct {
	re          *regexp.Regexp
	placeholder string
}

// rules run in order. Ordering matters: the UUID rule must run before
// the entry-ID rule (a UUID's tail segment is itself 12 hex chars), and
// every placeholder is digit-free so later rules cannot re-match
// earlier substitutions.
var rules = []rule{
	{regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), "<IP>"},
	{regexp.MustCompile(`\[\d[\d:TZ+./, -]*\]`), "<TIMESTAMP>"},
	{regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`), "<UUID>"},
	{regexp.MustCompile(`\b[0-9a-f]{12,}\b`), "<ID>"},
	{regexp.MustCompile(`\b\d{6,}\b`), "<NUM>"},
}

// Normalize reduces a raw message to its canonical template. Two
// messages with the same template belong to the same pattern. The
// result depends only on the message content.
func Normalize(message string) string {
	out := message
	for _, r := range rules {
		out = r.re.ReplaceAllString(out, r.placeholder)
	}
	return out
}
