package pattern

import (
	"sort"
	"strings"

	"github.com/mizuki-h/aws-log-lens/internal/health"
	"github.com/mizuki-h/aws-log-lens/internal/model"
)

const shortTaskIDLen = 8

func isHexToken(s string) bool {
	if len(s) < shortTaskIDLen {
		return false
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}

// shortStreamName derives a compact display name from the ECS awslogs
// naming convention prefix/container/task-id; anything else falls back
// to the raw stream name.
func shortStreamName(stream string) string {
	parts := strings.Split(stream, "/")
	if len(parts) == 3 && isHexToken(parts[2]) {
		return parts[1] + "/" + parts[2][:shortTaskIDLen]
	}
	return stream
}

// GroupByStream partitions signal events by source stream and groups
// each stream's events by pattern. Health-check noise is excluded
// entirely. Streams come back ordered by their newest member event,
// descending.
func GroupByStream(events []model.LogEvent) []model.StreamGroup {
	byStream := make(map[string]*model.StreamGroup)
	var order []string
	for _, e := range events {
		if health.IsHealthCheck(e.Message) {
			continue
		}
		sg, ok := byStream[e.StreamName]
		if !ok {
			byStream[e.StreamName] = &model.StreamGroup{
				StreamName:  e.StreamName,
				DisplayName: shortStreamName(e.StreamName),
				Events:      []model.LogEvent{e},
			}
			order = append(order, e.StreamName)
			continue
		}
		sg.Events = append(sg.Events, e)
	}

	out := make([]model.StreamGroup, 0, len(order))
	for _, name := range order {
		sg := byStream[name]
		sg.Patterns = Group(sg.Events)
		out = append(out, *sg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return newestTimestamp(out[i].Events) > newestTimestamp(out[j].Events)
	})
	return out
}

func newestTimestamp(events []model.LogEvent) int64 {
	var newest int64
	for _, e := range events {
		if e.TimestampMs > newest {
			newest = e.TimestampMs
		}
	}
	return newest
}
