// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config binds ledgerengine's optional flags/environment
// variables to a Config struct. Pattern grounded on
// cmd/simulator/main/main.go's BuildFlagSet/BuildViper/BuildConfig
// sequence (pflag + viper), generalized from the simulator's load-test
// knobs to the reducer pipeline's worker/queue/log-level knobs.
package config

import (
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag/env keys.
const (
	WorkersKey   = "workers"
	QueueSizeKey = "queue-size"
	LogLevelKey  = "log-level"
)

const envPrefix = "LEDGERENGINE"

// Config is the fully resolved runtime configuration for one run.
type Config struct {
	Workers   int
	QueueSize int
	LogLevel  string
}

// BuildFlagSet declares every optional flag with its default value.
// The mandatory positional input-path argument is deliberately not a
// flag here: it stays among the flag set's positional arguments
// (fs.Args() after BuildViper has parsed the flags) and the entrypoint
// reads it from there, to preserve spec.md §6's exact
// "Usage: <program> <input>" contract.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("ledgerengine", pflag.ContinueOnError)
	fs.Int(WorkersKey, runtime.NumCPU(), "number of shard workers (default: logical CPUs)")
	fs.Int(QueueSizeKey, 1024, "bounded intake queue capacity per worker")
	fs.String(LogLevelKey, "info", "log level: trace, debug, info, warn, error, crit")
	return fs
}

// BuildViper parses args against fs and binds LEDGERENGINE_* environment
// variables as overrides, mirroring the simulator's viper setup.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	return v, nil
}

// BuildConfig reads the resolved values out of v.
func BuildConfig(v *viper.Viper) (Config, error) {
	return Config{
		Workers:   v.GetInt(WorkersKey),
		QueueSize: v.GetInt(QueueSizeKey),
		LogLevel:  v.GetString(LogLevelKey),
	}, nil
}
