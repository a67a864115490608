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

//go:build amd64

package wide

import "golang.org/x/sys/cpu"

func probeTarget() *Target {
	// AVX-512 kernels need byte/word lanes, so require BW on top of F.
	if cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW {
		return TargetAVX512
	}
	if cpu.X86.HasAVX2 {
		return TargetAVX2
	}
	// SSE2 is part of the x86-64 baseline.
	return TargetSSE2
}
