package pattern

import (
	"sort"

	"github.com/mizuki-h/aws-log-lens/internal/model"
)

// Group collapses signal events into per-template groups. The sample is
// the first raw message seen for the template in input order. Groups
// come back ordered by most recent member event, descending.
func Group(events []model.LogEvent) []model.GroupedPattern {
	byTemplate := make(map[string]*model.GroupedPattern)
	var order []string
	for _, e := range events {
		tmpl := Normalize(e.Message)
		g, ok := byTemplate[tmpl]
		if !ok {
			byTemplate[tmpl] = &model.GroupedPattern{
				Pattern:   tmpl,
				Count:     1,
				FirstSeen: e.TimestampMs,
				LastSeen:  e.TimestampMs,
				Sample:    e.Message,
				Events:    []model.LogEvent{e},
			}
			order = append(order, tmpl)
			continue
		}
		g.Count++
		if e.TimestampMs < g.FirstSeen {
			g.FirstSeen = e.TimestampMs
		}
		if e.TimestampMs > g.LastSeen {
			g.LastSeen = e.TimestampMs
		}
		g.Events = append(g.Events, e)
	}

	out := make([]model.GroupedPattern, 0, len(order))
	for _, tmpl := range order {
		out = append(out, *byTemplate[tmpl])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LastSeen != out[j].LastSeen {
			return out[i].LastSeen > out[j].LastSeen
		}
		return out[i].Pattern < out[j].Pattern
	})
	return out
}
