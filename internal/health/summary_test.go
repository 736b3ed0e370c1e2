package health

import (
	"testing"

	"github.com/mizuki-h/aws-log-lens/internal/model"
)

func hev(ts int64, msg string) model.LogEvent {
	return model.LogEvent{Message: msg, TimestampMs: ts, StreamName: "s"}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		wantEndpoint string
		wantCode     int
		wantOK       bool
	}{
		{"quoted request", `10.0.0.1 - - [10/Feb/2026:10:00:00 +0000] "GET /healthz HTTP/1.1" 200 2`, "/healthz", 200, true},
		{"plain request", "GET /health 503", "/health", 503, true},
		{"kv with status", "method=GET path=/ping status=204", "/ping", 204, true},
		{"kv without status", "path=/health source=alb", "/health", 0, true},
		{"unparseable", "health checker woke up", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, code, ok := parseLine(tt.message)
			if ok != tt.wantOK || endpoint != tt.wantEndpoint || code != tt.wantCode {
				t.Errorf("parseLine(%q) = (%q, %d, %v), want (%q, %d, %v)",
					tt.message, endpoint, code, ok, tt.wantEndpoint, tt.wantCode, tt.wantOK)
			}
		})
	}
}

func TestSummarizeWorstStatusWins(t *testing.T) {
	events := []model.LogEvent{
		hev(1000, "GET /health 200"),
		hev(2000, "GET /health 503"),
		hev(3000, "GET /health 200"),
	}
	got := Summarize(events)
	if len(got) != 1 {
		t.Fatalf("got %d summaries, want 1", len(got))
	}
	s := got[0]
	if s.Status != model.StatusFailure {
		t.Errorf("status = %s, want failure (failure is sticky)", s.Status)
	}
	if s.StatusCode != 503 {
		t.Errorf("statusCode = %d, want 503", s.StatusCode)
	}
	if s.Count != 3 {
		t.Errorf("count = %d, want 3", s.Count)
	}
	if s.LastSeen != 3000 {
		t.Errorf("lastSeen = %d, want 3000", s.LastSeen)
	}
}

func TestSummarizeStatusTransitions(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		want     model.HealthStatus
		wantCode int
	}{
		{"all success keeps latest code", []string{"GET /h 200", "GET /h 204"}, model.StatusSuccess, 204},
		{"unknown overrides success", []string{"GET /h 200", "path=/h"}, model.StatusUnknown, 200},
		{"unknown never overrides failure", []string{"GET /h 500", "path=/h"}, model.StatusFailure, 500},
		{"later failure updates code", []string{"GET /h 500", "GET /h 503"}, model.StatusFailure, 503},
		{"success after unknown stays unknown", []string{"path=/h", "GET /h 200"}, model.StatusUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var events []model.LogEvent
			for i, m := range tt.messages {
				events = append(events, hev(int64(i+1)*1000, m))
			}
			got := Summarize(events)
			if len(got) != 1 {
				t.Fatalf("got %d summaries, want 1", len(got))
			}
			if got[0].Status != tt.want {
				t.Errorf("status = %s, want %s", got[0].Status, tt.want)
			}
			if got[0].StatusCode != tt.wantCode {
				t.Errorf("statusCode = %d, want %d", got[0].StatusCode, tt.wantCode)
			}
		})
	}
}

func TestSummarizeSkipsUnparseableAndOrders(t *testing.T) {
	events := []model.LogEvent{
		hev(1000, "GET /old 200"),
		hev(5000, "GET /new 200"),
		hev(2000, "checker heartbeat"), // skipped
	}
	got := Summarize(events)
	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	if got[0].Endpoint != "/new" || got[1].Endpoint != "/old" {
		t.Errorf("order = [%s %s], want lastSeen-descending [/new /old]", got[0].Endpoint, got[1].Endpoint)
	}
}
