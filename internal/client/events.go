package client

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"go.uber.org/zap"

	"github.com/mizuki-h/aws-log-lens/internal/model"
	"github.com/mizuki-h/aws-log-lens/internal/util"
)

// MaxPagesPerStream bounds the per-stream fetch cost.
const MaxPagesPerStream = 10

// FetchStreamEvents retrieves events from one stream of a group, from
// startMs onward. filter is an optional literal text filter; msgPath is
// an optional JMESPath expression unwrapping JSON-structured messages.
// Provider failures are never propagated: whatever was retrieved before
// the failure is returned and the failure is logged as a warning.
func (c *CloudWatch) FetchStreamEvents(ctx context.Context, group, stream string, startMs int64, filter, msgPath string) []model.LogEvent {
	var events []model.LogEvent
	var next *string
	for page := 0; page < MaxPagesPerStream; page++ {
		in := &cloudwatchlogs.FilterLogEventsInput{
			LogGroupName:   aws.String(group),
			LogStreamNames: []string{stream},
			StartTime:      aws.Int64(startMs),
			NextToken:      next,
		}
		if filter != "" {
			in.FilterPattern = aws.String(quotePattern(filter))
		}
		out, err := c.api.FilterLogEvents(ctx, in)
		if err != nil {
			c.logger.Warn("event fetch page failed, keeping partial result",
				zap.String("logGroup", group), zap.String("logStream", stream),
				zap.Int("events", len(events)), zap.Error(err))
			return events
		}
		for _, e := range out.Events {
			events = append(events, model.LogEvent{
				Message:     util.UnwrapMessage(aws.ToString(e.Message), msgPath),
				TimestampMs: aws.ToInt64(e.Timestamp),
				StreamName:  stream,
			})
		}
		if out.NextToken == nil || (next != nil && aws.ToString(out.NextToken) == aws.ToString(next)) {
			return events
		}
		next = out.NextToken
	}
	c.logger.Warn("per-stream page cap reached",
		zap.String("logGroup", group), zap.String("logStream", stream),
		zap.Int("cap", MaxPagesPerStream))
	return events
}

// quotePattern wraps a filter in double quotes so CloudWatch matches
// the literal sequence instead of tokenizing on special characters.
func quotePattern(fp string) string {
	if len(fp) >= 2 && fp[0] == '"' && fp[len(fp)-1] == '"' {
		return fp
	}
	return "\"" + fp + "\""
}
