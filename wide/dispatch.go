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

package wide

import (
	"github.com/ajroetker/go-wide/internal/config"
)

// currentTarget is the target selected for this process.
// Set by init() from the capability probe and the environment.
var currentTarget *Target

// probedTarget is what the capability probe reported before overrides.
var probedTarget *Target

// overrideErr records a WIDE_TARGET value that could not be honoured.
var overrideErr error

func init() {
	probedTarget = probeTarget()
	currentTarget, overrideErr = selectTarget(config.Load(), probedTarget)
}

// selectTarget applies the environment configuration to the probed target.
// An unknown target name is reported and the probed target kept.
func selectTarget(cfg config.Config, probed *Target) (*Target, error) {
	t := probed
	var err error
	switch {
	case cfg.NoSIMD:
		t = TargetScalar
	case cfg.Target != "":
		var lt *Target
		if lt, err = LookupTarget(cfg.Target); err == nil {
			t = lt
		}
	}
	if cfg.NoInfinities || cfg.NoNaNs {
		t = t.WithoutSpecialValues(cfg.NoInfinities, cfg.NoNaNs)
	}
	return t, err
}

// CurrentTarget returns the target used when no WithTarget option is given.
func CurrentTarget() *Target {
	return currentTarget
}

// ProbedTarget returns the target reported by the CPU capability probe,
// before environment overrides.
func ProbedTarget() *Target {
	return probedTarget
}

// CurrentLevel returns the instruction set family of the current target.
func CurrentLevel() DispatchLevel {
	return currentTarget.Level
}

// CurrentWidth returns the register width in bytes of the current target.
// For example: 16 for SSE2/NEON, 32 for AVX2, 64 for AVX-512, 0 for scalar.
func CurrentWidth() int {
	return currentTarget.Width
}

// TargetOverrideError returns the error from an unusable WIDE_TARGET value,
// or nil.
func TargetOverrideError() error {
	return overrideErr
}
