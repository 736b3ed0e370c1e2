// Package client wraps the CloudWatch Logs API with the two primitives
// the fetch core needs: prefix-scoped stream discovery and bounded
// single-stream event retrieval.
package client

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"go.uber.org/zap"
)

// LogsAPI is the subset of the CloudWatch Logs API we use.
type LogsAPI interface {
	DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
	FilterLogEvents(ctx context.Context, params *cloudwatchlogs.FilterLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error)
}

// CloudWatch issues discovery and fetch calls against one account and
// region. It is safe for concurrent use across log groups since it
// holds no per-call state.
type CloudWatch struct {
	api    LogsAPI
	logger *zap.Logger
}

// New wraps an existing API implementation, real or fake.
func New(api LogsAPI, logger *zap.Logger) *CloudWatch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloudWatch{api: api, logger: logger}
}

// NewCloudWatchClient loads AWS configuration using the provided region
// and shared profile, and returns a CloudWatch Logs client. region may
// be empty to use default resolution. profile is required and should
// match the shared config profile name.
func NewCloudWatchClient(ctx context.Context, region, profile string) (*cloudwatchlogs.Client, error) {
	if profile == "" {
		return nil, fmt.Errorf("profile required")
	}
	var cfgOpts []func(*config.LoadOptions) error
	if region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(region))
	}
	cfgOpts = append(cfgOpts, config.WithSharedConfigProfile(profile))
	cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, err
	}
	return cloudwatchlogs.NewFromConfig(cfg), nil
}
