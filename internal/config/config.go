// Package config loads the log-group registry consumed by the fetch
// core. The registry is owned here; the core treats it as read-only.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mizuki-h/aws-log-lens/internal/model"
)

// File is the on-disk registry shape.
type File struct {
	LogGroups []model.LogGroupInfo `yaml:"logGroups"`
}

// Load reads the YAML registry at path, preserving declaration order.
func Load(path string) ([]model.LogGroupInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	for i, g := range f.LogGroups {
		if g.Name == "" {
			return nil, fmt.Errorf("config %s: logGroups[%d] has no name", path, i)
		}
	}
	return f.LogGroups, nil
}

// FromCSV builds an ad-hoc registry from a comma-separated group list,
// trimming empties. Each entry uses its raw name for display and has no
// stream prefix.
func FromCSV(csv string) []model.LogGroupInfo {
	if csv == "" {
		return nil
	}
	var groups []model.LogGroupInfo
	for _, g := range strings.Split(csv, ",") {
		g = strings.TrimSpace(g)
		if g != "" {
			groups = append(groups, model.LogGroupInfo{Name: g, DisplayName: g})
		}
	}
	return groups
}
