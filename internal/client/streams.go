package client

import (
	"context"
	"errors"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"go.uber.org/zap"
)

// MaxDiscoveredStreams caps how many streams one discovery pass may
// enumerate; hitting it yields a warning and the streams found so far.
const MaxDiscoveredStreams = 100

// StreamInfo is one discovered log stream.
type StreamInfo struct {
	Name                 string
	LastEventTimestampMs int64
}

// ListStreams enumerates the log streams of one group, optionally
// narrowed by a name prefix. A missing log group is not an error and
// yields zero streams. A failure on a later page is logged and the
// streams already found are returned. The result is sorted by last
// event time descending; the API cannot combine that ordering with a
// prefix filter, so the sort is always done client-side.
func (c *CloudWatch) ListStreams(ctx context.Context, group, prefix string) ([]StreamInfo, error) {
	var streams []StreamInfo
	var next *string
	for {
		in := &cloudwatchlogs.DescribeLogStreamsInput{
			LogGroupName: aws.String(group),
			NextToken:    next,
		}
		if prefix != "" {
			in.LogStreamNamePrefix = aws.String(prefix)
		} else {
			in.OrderBy = types.OrderByLastEventTime
			in.Descending = aws.Bool(true)
		}
		out, err := c.api.DescribeLogStreams(ctx, in)
		if err != nil {
			var nf *types.ResourceNotFoundException
			if errors.As(err, &nf) {
				return nil, nil
			}
			if len(streams) > 0 {
				c.logger.Warn("stream discovery page failed, keeping partial result",
					zap.String("logGroup", group), zap.Int("streams", len(streams)), zap.Error(err))
				break
			}
			return nil, err
		}
		for _, s := range out.LogStreams {
			streams = append(streams, StreamInfo{
				Name:                 aws.ToString(s.LogStreamName),
				LastEventTimestampMs: aws.ToInt64(s.LastEventTimestamp),
			})
			if len(streams) >= MaxDiscoveredStreams {
				c.logger.Warn("stream discovery cap reached",
					zap.String("logGroup", group), zap.Int("cap", MaxDiscoveredStreams))
				sortStreams(streams)
				return streams, nil
			}
		}
		if out.NextToken == nil || (next != nil && aws.ToString(out.NextToken) == aws.ToString(next)) {
			break
		}
		next = out.NextToken
	}
	sortStreams(streams)
	return streams, nil
}

func sortStreams(streams []StreamInfo) {
	sort.SliceStable(streams, func(i, j int) bool {
		return streams[i].LastEventTimestampMs > streams[j].LastEventTimestampMs
	})
}
