package model

// GroupedPattern aggregates events sharing one normalized message
// template. It is recomputed on every fetch cycle and never cached.
type GroupedPattern struct {
	Pattern   string
	Count     int
	FirstSeen int64
	LastSeen  int64
	// Sample is the first raw message encountered for this pattern,
	// not the most recent one.
	Sample string
	Events []LogEvent
}

// StreamGroup holds one stream's signal events and their patterns.
type StreamGroup struct {
	StreamName  string
	DisplayName string
	Events      []LogEvent
	Patterns    []GroupedPattern
}

// HealthStatus is the summarized state of one health-checked endpoint.
type HealthStatus string

const (
	StatusSuccess HealthStatus = "success"
	StatusFailure HealthStatus = "failure"
	StatusUnknown HealthStatus = "unknown"
)

// HealthSummary aggregates health-check observations per endpoint.
type HealthSummary struct {
	Endpoint   string
	Status     HealthStatus
	LastSeen   int64
	Count      int
	StatusCode int
}

// GroupResult is the per-log-group output of one fetch cycle. A failed
// group carries Success=false and a diagnostic instead of events; it
// never aborts sibling groups.
type GroupResult struct {
	GroupName   string
	DisplayName string
	Entries     []LogEvent
	Success     bool
	Diagnostic  string
}
