package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseRelativeTime maps a human relative-time expression like "30s",
// "5m", "2h" or "1d" to a duration. It is deterministic and has no side
// effects; a day is a flat 24 hours.
func ParseRelativeTime(expr string) (time.Duration, error) {
	s := strings.TrimSpace(expr)
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid relative time %q", expr)
	}
	unit := s[len(s)-1]
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid relative time %q", expr)
	}
	switch unit {
	case 's':
		return time.Duration(n) * time.Second, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("invalid relative time unit %q", expr)
	}
}
