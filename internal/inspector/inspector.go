// Package inspector orchestrates log retrieval across groups: stream
// discovery followed by newest-first stream fetches with an early-stop
// policy per group, fanned out concurrently across groups with
// per-group failure containment.
package inspector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mizuki-h/aws-log-lens/internal/cache"
	"github.com/mizuki-h/aws-log-lens/internal/client"
	"github.com/mizuki-h/aws-log-lens/internal/health"
	"github.com/mizuki-h/aws-log-lens/internal/model"
)

// ErrNoLogGroups indicates an empty registry. It is fatal to a single
// fetch cycle; watch mode routes it to the backoff-retry path instead.
var ErrNoLogGroups = errors.New("no log groups configured")

const (
	// CoverageBuffer is the tolerance used to decide that the
	// requested window has actually been searched, not merely
	// satisfied by event count.
	CoverageBuffer = 60 * time.Second
	// MaxTotalEvents is the global per-group safety cap on
	// accumulated events.
	MaxTotalEvents = 50_000
	// DefaultWindow is the relative search window used when no cache
	// cursor exists for a group.
	DefaultWindow = 5 * time.Minute
	// DefaultLimit is the signal-event count the early-stop policy
	// aims for per group.
	DefaultLimit = 100
)

// Fetcher is the narrow provider surface the orchestrator consumes.
// *client.CloudWatch implements it.
type Fetcher interface {
	ListStreams(ctx context.Context, group, prefix string) ([]client.StreamInfo, error)
	FetchStreamEvents(ctx context.Context, group, stream string, startMs int64, filter, msgPath string) []model.LogEvent
}

// Inspector drives fetch cycles over the configured log groups. The
// cache instance is owned by the caller and shared across cycles; each
// group's task only ever touches its own cache keys.
type Inspector struct {
	fetcher     Fetcher
	cache       *cache.Cache
	logger      *zap.Logger
	limit       int
	window      time.Duration
	filter      string
	incremental bool
	now         func() time.Time
}

// New creates an Inspector with the default window and limit.
func New(f Fetcher, c *cache.Cache, logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{
		fetcher: f,
		cache:   c,
		logger:  logger,
		limit:   DefaultLimit,
		window:  DefaultWindow,
		now:     time.Now,
	}
}

// SetLimit overrides the per-group signal-event target.
func (in *Inspector) SetLimit(n int) {
	if n > 0 {
		in.limit = n
	}
}

// SetWindow overrides the relative window used on a cache miss.
func (in *Inspector) SetWindow(d time.Duration) {
	if d > 0 {
		in.window = d
	}
}

// SetFilter applies a literal text filter to every stream fetch.
func (in *Inspector) SetFilter(s string) { in.filter = s }

// SetIncremental makes subsequent cycles start from the cached cursor
// when one exists instead of the relative window.
func (in *Inspector) SetIncremental(b bool) { in.incremental = b }

// FetchAll runs one fetch cycle across every configured group
// concurrently. A failure inside one group degrades to an empty result
// with a diagnostic for that group only; sibling groups are unaffected.
// Results preserve registry order.
func (in *Inspector) FetchAll(ctx context.Context, groups []model.LogGroupInfo) ([]model.GroupResult, error) {
	if len(groups) == 0 {
		return nil, ErrNoLogGroups
	}
	results := make([]model.GroupResult, len(groups))
	var wg sync.WaitGroup
	for i, g := range groups {
		wg.Add(1)
		go func(i int, g model.LogGroupInfo) {
			defer wg.Done()
			results[i] = in.fetchGroupResult(ctx, g)
		}(i, g)
	}
	wg.Wait()
	return results, nil
}

// fetchGroupResult contains every failure mode of one group's fetch,
// converting errors and panics into an empty result with a diagnostic.
func (in *Inspector) fetchGroupResult(ctx context.Context, group model.LogGroupInfo) (res model.GroupResult) {
	res = model.GroupResult{
		GroupName:   group.Name,
		DisplayName: group.Label(),
		Success:     true,
	}
	defer func() {
		if r := recover(); r != nil {
			res.Entries = nil
			res.Success = false
			res.Diagnostic = fmt.Sprintf("panic while fetching %s: %v", group.Name, r)
			in.logger.Error("group fetch panicked",
				zap.String("logGroup", group.Name), zap.Any("panic", r))
		}
	}()
	events, err := in.FetchGroup(ctx, group)
	if err != nil {
		res.Success = false
		res.Diagnostic = err.Error()
		in.logger.Warn("group fetch failed",
			zap.String("logGroup", group.Name), zap.Error(err))
		return res
	}
	res.Entries = events
	return res
}

// FetchGroup runs the two-phase retrieval for one group: discover
// streams, then visit them newest-first, accumulating events until
// enough signal has been found and the requested window has actually
// been covered. Calls within a group are strictly sequential.
func (in *Inspector) FetchGroup(ctx context.Context, group model.LogGroupInfo) ([]model.LogEvent, error) {
	startMs := in.windowStart(group)

	streams, err := in.fetcher.ListStreams(ctx, group.Name, group.StreamPrefix)
	if err != nil {
		return nil, fmt.Errorf("discover streams for %s: %w", group.Name, err)
	}
	if len(streams) == 0 {
		return nil, nil
	}

	coverTargetMs := startMs + CoverageBuffer.Milliseconds()
	var accumulated []model.LogEvent
	signalCount := 0
	var minTs int64
	for _, s := range streams {
		events := in.fetcher.FetchStreamEvents(ctx, group.Name, s.Name, startMs, in.filter, group.MessagePath)
		for _, e := range events {
			if !health.IsHealthCheck(e.Message) {
				signalCount++
			}
			if minTs == 0 || e.TimestampMs < minTs {
				minTs = e.TimestampMs
			}
		}
		accumulated = append(accumulated, events...)
		if len(accumulated) >= MaxTotalEvents {
			in.logger.Warn("total event cap reached",
				zap.String("logGroup", group.Name), zap.Int("cap", MaxTotalEvents))
			break
		}
		// Stop only when both enough signal has been found and the
		// oldest accumulated event reaches back to the window start,
		// within the coverage buffer.
		if signalCount >= in.limit && minTs != 0 && minTs <= coverTargetMs {
			break
		}
	}

	in.cache.Update(group.Name, group.StreamPrefix, accumulated)
	sortEvents(accumulated)
	return accumulated, nil
}

// windowStart picks the fetch start: the cached cursor in incremental
// mode, otherwise now minus the relative window.
func (in *Inspector) windowStart(group model.LogGroupInfo) int64 {
	if in.incremental {
		if cur, ok := in.cache.Get(group.Name, group.StreamPrefix); ok {
			return cur.LastSeenTimestamp + 1
		}
	}
	return in.now().Add(-in.window).UnixMilli()
}

func sortEvents(events []model.LogEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].TimestampMs != events[j].TimestampMs {
			return events[i].TimestampMs < events[j].TimestampMs
		}
		if events[i].StreamName != events[j].StreamName {
			return events[i].StreamName < events[j].StreamName
		}
		return events[i].Message < events[j].Message
	})
}
