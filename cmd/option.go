package cmd

import (
	"flag"
	"os"
)

// Options holds CLI options after parsing flags and env defaults.
type Options struct {
	GroupsCSV  string
	ConfigPath string
	Region     string
	Profile    string
	Filter     string
	Since      string
	Limit      int
	Watch      bool
	Interval   string
	PrettyJSON bool
	Debug      bool
}

// Validate checks relationships and required flags.
// Returns an error message and exit code; if no log-group source is
// given at all, it returns ("", 2) and the caller should invoke usage().
func (o *Options) Validate() (string, int) {
	if o.ConfigPath == "" && o.GroupsCSV == "" {
		// Caller prints usage() which exits(2)
		return "", 2
	}
	if o.Interval != "" && !o.Watch {
		return "error: --interval requires --watch", 2
	}
	if o.Limit < 0 {
		return "error: --limit must be positive", 2
	}
	return "", 0
}

// CollectOptions parses flags with environment-backed defaults and returns Options.
func CollectOptions() *Options {
	var groupsCSV string
	var configPath string
	var region string
	var profileFlag string
	var filterFlag string
	var sinceFlag string
	var limitFlag int
	var watchFlag bool
	var intervalFlag string
	var prettyJSON bool
	var debugFlag bool

	if v := os.Getenv("LOG_GROUP_NAMES"); v != "" {
		groupsCSV = v
	}
	if v := os.Getenv("LOG_LENS_CONFIG"); v != "" {
		configPath = v
	}

	flag.StringVar(&groupsCSV, "groups", groupsCSV, "Comma-separated CloudWatch log group names")
	flag.StringVar(&configPath, "config", configPath, "YAML log-group registry file (or set LOG_LENS_CONFIG)")
	flag.StringVar(&region, "region", os.Getenv("AWS_REGION"), "AWS region (optional; falls back to AWS defaults)")
	flag.StringVar(&profileFlag, "profile", "", "AWS shared config profile (or set AWS_PROFILE)")
	flag.StringVar(&filterFlag, "filter", "", "Literal text filter applied to every stream fetch")
	flag.StringVar(&sinceFlag, "since", "5m", "Relative search window on first fetch (e.g., 30s, 5m, 2h, 1d)")
	flag.IntVar(&limitFlag, "limit", 0, "Signal-event target per group before early stop (default 100)")
	flag.BoolVar(&watchFlag, "watch", false, "Keep fetching on an interval, incrementally")
	flag.StringVar(&intervalFlag, "interval", "", "Watch interval (e.g., 10s, 1m); requires --watch")
	flag.BoolVar(&prettyJSON, "json", false, "Emit results as JSON instead of plain text")
	flag.BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	flag.Parse()

	return &Options{
		GroupsCSV:  groupsCSV,
		ConfigPath: configPath,
		Region:     region,
		Profile:    profileFlag,
		Filter:     filterFlag,
		Since:      sinceFlag,
		Limit:      limitFlag,
		Watch:      watchFlag,
		Interval:   intervalFlag,
		PrettyJSON: prettyJSON,
		Debug:      debugFlag,
	}
}

// ResolveProfile returns the profile from flag or AWS_PROFILE env, or empty.
func ResolveProfile(flagProfile string) string {
	if flagProfile != "" {
		return flagProfile
	}
	return os.Getenv("AWS_PROFILE")
}
