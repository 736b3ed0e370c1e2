package model

import "time"

// LogEvent represents a single log entry retrieved from one stream.
// Events are produced by the fetch layer and never mutated afterwards.
type LogEvent struct {
	Message     string
	TimestampMs int64
	StreamName  string
}

// Time converts the event's millisecond timestamp to a time.Time.
func (e LogEvent) Time() time.Time {
	return time.Unix(0, e.TimestampMs*int64(time.Millisecond))
}

// LogGroupInfo describes one configured log group. It is owned by the
// registry (config file or CLI flags) and read-only to the core.
type LogGroupInfo struct {
	Name         string `yaml:"name"`
	DisplayName  string `yaml:"displayName"`
	Type         string `yaml:"type"`
	StreamPrefix string `yaml:"streamPrefix,omitempty"`
	// MessagePath is an optional JMESPath expression applied to events
	// whose message body is JSON, to recover the human-readable line
	// (e.g. "log" for ECS awslogs JSON output).
	MessagePath string `yaml:"messagePath,omitempty"`
}

// Label returns the display name, falling back to the raw group name.
func (g LogGroupInfo) Label() string {
	if g.DisplayName != "" {
		return g.DisplayName
	}
	return g.Name
}
