package health

import "testing"

func TestIsHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    bool
	}{
		{"healthz probe", `10.0.1.12 - "GET /healthz HTTP/1.1" 200`, true},
		{"health path", "GET /health 200", true},
		{"ping path", "HEAD /ping 200 1ms", true},
		{"status path", "GET /status 200", true},
		{"elb probe agent", `probe from "ELB-HealthChecker/2.0"`, true},
		{"kv health path", "method=GET path=/health_check status=200", true},
		{"application error", "failed to connect to db: timeout", false},
		{"request to api", `"GET /api/items HTTP/1.1" 500`, false},
		{"mentions healthy", "cluster is healthy again", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHealthCheck(tt.message); got != tt.want {
				t.Errorf("IsHealthCheck(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}
