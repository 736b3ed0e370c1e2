package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mizuki-h/aws-log-lens/cmd"
	"github.com/mizuki-h/aws-log-lens/internal/cache"
	"github.com/mizuki-h/aws-log-lens/internal/client"
	"github.com/mizuki-h/aws-log-lens/internal/config"
	"github.com/mizuki-h/aws-log-lens/internal/health"
	"github.com/mizuki-h/aws-log-lens/internal/inspector"
	"github.com/mizuki-h/aws-log-lens/internal/logging"
	"github.com/mizuki-h/aws-log-lens/internal/model"
	"github.com/mizuki-h/aws-log-lens/internal/pattern"
	"github.com/mizuki-h/aws-log-lens/internal/util"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: aws-log-lens --config groups.yaml [--watch] [--since 5m] [--region us-east-1]")
	fmt.Fprintln(os.Stderr, "       aws-log-lens --groups g1,g2 [--filter text] [--limit 100] [--json]")
	fmt.Fprintln(os.Stderr, "Environment: LOG_GROUP_NAMES, LOG_LENS_CONFIG, AWS_PROFILE, AWS_REGION.")
	os.Exit(2)
}

func main() {
	opts := cmd.CollectOptions()
	if msg, code := opts.Validate(); code != 0 {
		if msg == "" {
			usage()
		}
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(code)
	}

	logger, err := logging.New(opts.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	window, err := util.ParseRelativeTime(opts.Since)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --since: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := client.NewCloudWatchClient(ctx, opts.Region, cmd.ResolveProfile(opts.Profile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create CloudWatch client: %v\n", err)
		os.Exit(1)
	}
	cw := client.New(api, logger)

	insp := inspector.New(cw, cache.New(), logger)
	insp.SetWindow(window)
	insp.SetLimit(opts.Limit)
	insp.SetFilter(opts.Filter)

	source := func(context.Context) ([]model.LogGroupInfo, error) {
		if opts.ConfigPath != "" {
			return config.Load(opts.ConfigPath)
		}
		return config.FromCSV(opts.GroupsCSV), nil
	}

	render := func(results []model.GroupResult) {
		if opts.PrettyJSON {
			renderJSON(results)
			return
		}
		renderPlain(results)
	}

	if opts.Watch {
		var watchOpts inspector.WatchOptions
		if opts.Interval != "" {
			d, err := util.ParseRelativeTime(opts.Interval)
			if err != nil {
				fmt.Fprintf(os.Stderr, "invalid --interval: %v\n", err)
				os.Exit(2)
			}
			watchOpts.Interval = d
		}
		if err := insp.Watch(ctx, source, watchOpts, render); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("watch loop ended", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	groups, err := source(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load log groups: %v\n", err)
		os.Exit(1)
	}
	results, err := insp.FetchAll(ctx, groups)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch error: %v\n", err)
		os.Exit(1)
	}
	render(results)
}

// groupReport is the JSON output shape for one log group.
type groupReport struct {
	GroupName   string                `json:"groupName"`
	DisplayName string                `json:"displayName"`
	Success     bool                  `json:"success"`
	Diagnostic  string                `json:"diagnostic,omitempty"`
	Streams     []model.StreamGroup   `json:"streams,omitempty"`
	Health      []model.HealthSummary `json:"health,omitempty"`
}

func buildReport(r model.GroupResult) groupReport {
	rep := groupReport{
		GroupName:   r.GroupName,
		DisplayName: r.DisplayName,
		Success:     r.Success,
		Diagnostic:  r.Diagnostic,
	}
	var noise []model.LogEvent
	for _, e := range r.Entries {
		if health.IsHealthCheck(e.Message) {
			noise = append(noise, e)
		}
	}
	rep.Streams = pattern.GroupByStream(r.Entries)
	rep.Health = health.Summarize(noise)
	return rep
}

func renderJSON(results []model.GroupResult) {
	reports := make([]groupReport, 0, len(results))
	for _, r := range results {
		reports = append(reports, buildReport(r))
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reports); err != nil {
		fmt.Fprintf(os.Stderr, "encode error: %v\n", err)
		os.Exit(1)
	}
}

func renderPlain(results []model.GroupResult) {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, r := range results {
		rep := buildReport(r)
		fmt.Fprintf(w, "=== %s (%s)\n", rep.DisplayName, rep.GroupName)
		if !rep.Success {
			fmt.Fprintf(w, "  error: %s\n", rep.Diagnostic)
			continue
		}
		if len(rep.Streams) == 0 && len(rep.Health) == 0 {
			fmt.Fprintln(w, "  no events")
			continue
		}
		for _, sg := range rep.Streams {
			fmt.Fprintf(w, "  %s\n", sg.DisplayName)
			for _, p := range sg.Patterns {
				fmt.Fprintf(w, "    %4dx  %s  (last %s)\n",
					p.Count, p.Sample, msToClock(p.LastSeen))
			}
		}
		for _, h := range rep.Health {
			code := ""
			if h.StatusCode != 0 {
				code = fmt.Sprintf(" (%d)", h.StatusCode)
			}
			fmt.Fprintf(w, "  health %s: %s%s count=%d last %s\n",
				h.Endpoint, h.Status, code, h.Count, msToClock(h.LastSeen))
		}
	}
}

func msToClock(ms int64) string {
	return time.Unix(0, ms*int64(time.Millisecond)).Local().Format("15:04:05")
}
