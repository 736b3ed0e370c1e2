// Package health separates health-check noise from application signal
// and summarizes per-endpoint health from the noise.
package health

import "strings"

// healthMarkers are the substrings that mark a message as health-check
// noise. The set is fixed: known probe paths plus the ELB health
// checker's user-agent signature.
var healthMarkers = []string{
	"/health",
	"/healthz",
	"/healthcheck",
	"/health_check",
	"/ping",
	"/status",
	"ELB-HealthChecker",
}

// IsHealthCheck reports whether a message is health-check noise. It is
// a pure function of the message text: no state, no I/O.
func IsHealthCheck(message string) bool {
	for _, m := range healthMarkers {
		if strings.Contains(message, m) {
			return true
		}
	}
	return false
}
