package health

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/mizuki-h/aws-log-lens/internal/model"
)

// Recognized health-check line shapes. Lines matching none of them are
// skipped silently; a probe endpoint with no parseable status code
// still counts, with an unknown status.
var (
	// Combined/common access log: "GET /health HTTP/1.1" 200
	quotedRequestRe = regexp.MustCompile(`"(?:GET|HEAD|POST)\s+(\S+)(?:\s+HTTP/[0-9.]+)?"\s+(\d{3})`)
	// Plain request line: GET /health 200
	plainRequestRe = regexp.MustCompile(`\b(?:GET|HEAD|POST)\s+(\S+)\s+(\d{3})\b`)
	// Key-value form: path=/health status=200 (status optional)
	kvRe       = regexp.MustCompile(`\bpath=(\S+)`)
	kvStatusRe = regexp.MustCompile(`\bstatus=(\d{3})\b`)
)

// parseLine extracts the endpoint path and optional status code from a
// health-classified message. code is 0 when none was found.
func parseLine(message string) (endpoint string, code int, ok bool) {
	if m := quotedRequestRe.FindStringSubmatch(message); m != nil {
		code, _ = strconv.Atoi(m[2])
		return m[1], code, true
	}
	if m := plainRequestRe.FindStringSubmatch(message); m != nil {
		code, _ = strconv.Atoi(m[2])
		return m[1], code, true
	}
	if m := kvRe.FindStringSubmatch(message); m != nil {
		if s := kvStatusRe.FindStringSubmatch(message); s != nil {
			code, _ = strconv.Atoi(s[1])
		}
		return m[1], code, true
	}
	return "", 0, false
}

func statusOf(code int) model.HealthStatus {
	switch {
	case code == 0:
		return model.StatusUnknown
	case code < 400:
		return model.StatusSuccess
	default:
		return model.StatusFailure
	}
}

// rank orders statuses worst-first so aggregation can keep the worst
// observed one: failure > unknown > success.
func rank(s model.HealthStatus) int {
	switch s {
	case model.StatusFailure:
		return 2
	case model.StatusUnknown:
		return 1
	default:
		return 0
	}
}

// Summarize aggregates health-classified events per endpoint. Status
// follows a worst-observed-wins rule: once an endpoint has failed, its
// status stays failure even if later observations succeed; only a
// further failure updates the recorded status code.
func Summarize(events []model.LogEvent) []model.HealthSummary {
	byEndpoint := make(map[string]*model.HealthSummary)
	var order []string
	for _, e := range events {
		endpoint, code, ok := parseLine(e.Message)
		if !ok {
			continue
		}
		st := statusOf(code)
		cur, exists := byEndpoint[endpoint]
		if !exists {
			byEndpoint[endpoint] = &model.HealthSummary{
				Endpoint:   endpoint,
				Status:     st,
				LastSeen:   e.TimestampMs,
				Count:      1,
				StatusCode: code,
			}
			order = append(order, endpoint)
			continue
		}
		cur.Count++
		if e.TimestampMs > cur.LastSeen {
			cur.LastSeen = e.TimestampMs
		}
		if rank(st) > rank(cur.Status) {
			cur.Status = st
			if code != 0 {
				cur.StatusCode = code
			}
		} else if rank(st) == rank(cur.Status) && code != 0 {
			cur.StatusCode = code
		}
	}

	out := make([]model.HealthSummary, 0, len(order))
	for _, ep := range order {
		out = append(out, *byEndpoint[ep])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastSeen != out[j].LastSeen {
			return out[i].LastSeen > out[j].LastSeen
		}
		return out[i].Endpoint < out[j].Endpoint
	})
	return out
}
