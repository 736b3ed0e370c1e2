package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"github.com/mizuki-h/aws-log-lens/internal/client"
)

func eventPage(msgs []string, next string) *cloudwatchlogs.FilterLogEventsOutput {
	out := &cloudwatchlogs.FilterLogEventsOutput{}
	for i, m := range msgs {
		out.Events = append(out.Events, types.FilteredLogEvent{
			Timestamp:     aws.Int64(int64(1000 + i)),
			Message:       aws.String(m),
			LogStreamName: aws.String("s1"),
		})
	}
	if next != "" {
		out.NextToken = aws.String(next)
	}
	return out
}

func TestFetchStreamEventsSinglePage(t *testing.T) {
	mock := &mockLogsAPI{filterResponses: []*cloudwatchlogs.FilterLogEventsOutput{
		eventPage([]string{"hello", "world"}, ""),
	}}
	cw := client.New(mock, nil)
	got := cw.FetchStreamEvents(context.Background(), "/g", "s1", 500, "", "")
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Message != "hello" || got[0].TimestampMs != 1000 || got[0].StreamName != "s1" {
		t.Errorf("first event = %+v", got[0])
	}
	in := mock.filterInputs[0]
	if aws.ToInt64(in.StartTime) != 500 {
		t.Errorf("StartTime = %d, want 500", aws.ToInt64(in.StartTime))
	}
	if len(in.LogStreamNames) != 1 || in.LogStreamNames[0] != "s1" {
		t.Errorf("LogStreamNames = %v, want [s1]", in.LogStreamNames)
	}
	if in.FilterPattern != nil {
		t.Errorf("FilterPattern = %q, want unset", aws.ToString(in.FilterPattern))
	}
}

func TestFetchStreamEventsQuotesFilter(t *testing.T) {
	mock := &mockLogsAPI{filterResponses: []*cloudwatchlogs.FilterLogEventsOutput{eventPage(nil, "")}}
	cw := client.New(mock, nil)
	cw.FetchStreamEvents(context.Background(), "/g", "s1", 0, "timeout [err]", "")
	if got := aws.ToString(mock.filterInputs[0].FilterPattern); got != `"timeout [err]"` {
		t.Errorf("FilterPattern = %q, want quoted literal", got)
	}
}

func TestFetchStreamEventsPartialOnMidPaginationFailure(t *testing.T) {
	mock := &mockLogsAPI{
		filterResponses: []*cloudwatchlogs.FilterLogEventsOutput{
			eventPage([]string{"kept-1", "kept-2"}, "tok"),
			nil,
		},
		filterErrs: []error{nil, errors.New("throttled")},
	}
	cw := client.New(mock, nil)
	got := cw.FetchStreamEvents(context.Background(), "/g", "s1", 0, "", "")
	if len(got) != 2 {
		t.Fatalf("got %d events, want the 2 retrieved before the failure", len(got))
	}
}

func TestFetchStreamEventsPageCap(t *testing.T) {
	// Every page returns a fresh token; fetching must stop at the cap.
	var pages []*cloudwatchlogs.FilterLogEventsOutput
	for i := 0; i < client.MaxPagesPerStream+5; i++ {
		pages = append(pages, eventPage([]string{"m"}, "tok-"+string(rune('a'+i))))
	}
	mock := &mockLogsAPI{filterResponses: pages}
	cw := client.New(mock, nil)
	got := cw.FetchStreamEvents(context.Background(), "/g", "s1", 0, "", "")
	if len(got) != client.MaxPagesPerStream {
		t.Fatalf("got %d events, want %d (one per page up to the cap)", len(got), client.MaxPagesPerStream)
	}
	if mock.filterCall != client.MaxPagesPerStream {
		t.Fatalf("made %d calls, want %d", mock.filterCall, client.MaxPagesPerStream)
	}
}

func TestFetchStreamEventsUnwrapsStructuredMessages(t *testing.T) {
	mock := &mockLogsAPI{filterResponses: []*cloudwatchlogs.FilterLogEventsOutput{
		eventPage([]string{`{"log":"payment failed","level":"error"}`, "plain text line"}, ""),
	}}
	cw := client.New(mock, nil)
	got := cw.FetchStreamEvents(context.Background(), "/g", "s1", 0, "", "log")
	if got[0].Message != "payment failed" {
		t.Errorf("unwrapped message = %q, want %q", got[0].Message, "payment failed")
	}
	if got[1].Message != "plain text line" {
		t.Errorf("non-JSON message must pass through, got %q", got[1].Message)
	}
}
