// Copyright 2026 go-wide Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config reads the environment variables that steer target selection.
package config

import (
	"log/slog"
	"strings"

	"github.com/xyproto/env/v2"
)

// Environment variable names.
const (
	// EnvNoSIMD forces the scalar target regardless of CPU capabilities.
	// Useful for testing and debugging.
	EnvNoSIMD = "WIDE_NO_SIMD"

	// EnvTarget selects a built-in target by name ("sse2", "avx2", "vmx", ...).
	EnvTarget = "WIDE_TARGET"

	// EnvNoInfinities declares that the platform does not support infinities.
	EnvNoInfinities = "WIDE_NO_INFINITIES"

	// EnvNoNaNs declares that the platform does not support NaNs.
	EnvNoNaNs = "WIDE_NO_NANS"

	// EnvLogLevel sets the slog level used by the command-line tools.
	EnvLogLevel = "WIDE_LOG_LEVEL"
)

// Config holds the environment-derived settings.
type Config struct {
	NoSIMD       bool
	Target       string
	NoInfinities bool
	NoNaNs       bool
	LogLevel     slog.Level
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		NoSIMD:       env.Bool(EnvNoSIMD),
		Target:       strings.ToLower(strings.TrimSpace(env.Str(EnvTarget))),
		NoInfinities: env.Bool(EnvNoInfinities),
		NoNaNs:       env.Bool(EnvNoNaNs),
		LogLevel:     ParseLevel(env.Str(EnvLogLevel, "warn")),
	}
}

// ParseLevel converts a level name to a slog.Level, defaulting to Warn.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn
	}
	return level
}
