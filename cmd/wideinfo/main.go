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

// Command wideinfo prints what the wide dispatch engine decides on this
// machine: the selected target, the ABI of a vector shape and the strategy
// an operation would run with.
//
// Usage:
//
//	wideinfo target
//	wideinfo targets
//	wideinfo abi --type int32 --cardinal 16 --target sse2
//	wideinfo plan --op add --policy saturated --type int8 --cardinal 64 --target vmx
//	wideinfo ops
//	wideinfo features
//
// The WIDE_NO_SIMD, WIDE_TARGET, WIDE_NO_INFINITIES and WIDE_NO_NANS
// environment variables change the selected target; WIDE_LOG_LEVEL sets the
// log level (default warn).
package main

import (
	"log/slog"
	"os"

	"github.com/ajroetker/go-wide/internal/config"
	"github.com/ajroetker/go-wide/wide"
	_ "github.com/ajroetker/go-wide/wide/contrib/special"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	wide.SetLogger(logger)

	if err := wide.TargetOverrideError(); err != nil {
		logger.Warn("target override ignored", "env", config.EnvTarget, "error", err)
	}
	logger.Debug("target selected",
		"probed", wide.ProbedTarget().Name,
		"target", wide.CurrentTarget().Name)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
