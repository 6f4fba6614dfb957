// cmd/taxiroute/config.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/taxiroute/taxiroute/log"
	"github.com/taxiroute/taxiroute/math"
	"github.com/taxiroute/taxiroute/taxi"
	"github.com/taxiroute/taxiroute/util"
)

// Config holds the defaults for command-line options; any option given
// on the command line takes precedence over the value here.
type Config struct {
	Database string
	LogLevel string
	Format   string

	Epsilon float64
	Angles  bool

	GraphCacheSize int
	GraphCacheTTL  string // e.g. "30m"
	// MaxCacheMB bounds the on-disk cache of airport data.
	MaxCacheMB int64
}

func getDefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		Format:         "text",
		Epsilon:        taxi.DefaultBuildOptions().Epsilon,
		Angles:         taxi.DefaultBuildOptions().Angles,
		GraphCacheSize: taxi.DefaultPlannerOptions().CacheSize,
		GraphCacheTTL:  taxi.DefaultPlannerOptions().CacheTTL.String(),
		MaxCacheMB:     512,
	}
}

func configFilePath(lg *log.Logger) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		lg.Errorf("Unable to find user config dir: %v", err)
		dir = "."
	}
	return filepath.Join(dir, "TaxiRoute", "config.json")
}

// LoadOrMakeDefaultConfig reads the config file at the given path. If
// there is no file, one holding the defaults is written there so that it
// can be edited. Fields that are absent from the file keep their default
// values.
func LoadOrMakeDefaultConfig(fn string) (*Config, error) {
	config := getDefaultConfig()

	contents, err := os.ReadFile(fn)
	if errors.Is(err, fs.ErrNotExist) {
		if err := config.Save(fn); err != nil {
			return config, fmt.Errorf("%s: unable to write default config: %w", fn, err)
		}
		return config, nil
	} else if err != nil {
		return config, err
	}

	if err := util.UnmarshalJSONBytes(contents, config); err != nil {
		return getDefaultConfig(), fmt.Errorf("%s: %w", fn, err)
	}
	return config, nil
}

func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

func (c *Config) Save(fn string) error {
	if err := os.MkdirAll(filepath.Dir(fn), 0o700); err != nil {
		return err
	}
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}

// Override replaces config values with the values of the flags that were
// explicitly set.
func (c *Config) Override(flags *flag.FlagSet) {
	flags.Visit(func(f *flag.Flag) {
		v := f.Value.(flag.Getter).Get()
		switch f.Name {
		case "db":
			c.Database = v.(string)
		case "loglevel":
			c.LogLevel = v.(string)
		case "format":
			c.Format = v.(string)
		case "epsilon":
			c.Epsilon = v.(float64)
		case "angles":
			c.Angles = v.(bool)
		}
	})
}

// Check reports problems with the configuration's values.
func (c *Config) Check() error {
	var e util.ErrorLogger
	if c.Epsilon < 0 || !math.IsFinite(c.Epsilon) {
		e.ErrorString("Epsilon %g must be a non-negative number", c.Epsilon)
	}
	switch c.Format {
	case "text", "geojson", "kml", "polyline", "graph":
	default:
		e.ErrorString("%q: unknown output format", c.Format)
	}
	if c.GraphCacheSize <= 0 {
		e.ErrorString("GraphCacheSize %d must be positive", c.GraphCacheSize)
	}
	if _, err := time.ParseDuration(c.GraphCacheTTL); err != nil {
		e.ErrorString("GraphCacheTTL: %v", err)
	}
	return e.Err()
}

func (c *Config) PlannerOptions() taxi.PlannerOptions {
	ttl, _ := time.ParseDuration(c.GraphCacheTTL)
	return taxi.PlannerOptions{
		Build: taxi.BuildOptions{
			Epsilon: c.Epsilon,
			Angles:  c.Angles,
		},
		CacheSize: c.GraphCacheSize,
		CacheTTL:  ttl,
	}
}
