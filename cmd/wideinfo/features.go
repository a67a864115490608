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

package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"
)

func newFeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "Print the raw CPU feature flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writeFeatures(cmd.OutOrStdout(), runtime.GOARCH)
			return nil
		},
	}
}

func writeFeatures(w io.Writer, arch string) {
	fmt.Fprintf(w, "GOOS:   %s\n", runtime.GOOS)
	fmt.Fprintf(w, "GOARCH: %s\n", arch)
	fmt.Fprintf(w, "CPUs:   %d\n", runtime.NumCPU())
	fmt.Fprintln(w)

	switch arch {
	case "amd64":
		fmt.Fprintln(w, "x86 features:")
		flag(w, "SSE2", cpu.X86.HasSSE2)
		flag(w, "SSE41", cpu.X86.HasSSE41)
		flag(w, "AVX", cpu.X86.HasAVX)
		flag(w, "AVX2", cpu.X86.HasAVX2)
		flag(w, "FMA", cpu.X86.HasFMA)
		flag(w, "AVX512F", cpu.X86.HasAVX512F)
		flag(w, "AVX512BW", cpu.X86.HasAVX512BW)
		flag(w, "AVX512VL", cpu.X86.HasAVX512VL)
		flag(w, "AVX512DQ", cpu.X86.HasAVX512DQ)
	case "arm64":
		fmt.Fprintln(w, "ARM64 features:")
		flag(w, "ASIMD", cpu.ARM64.HasASIMD)
		flag(w, "FP", cpu.ARM64.HasFP)
		flag(w, "ASIMDHP", cpu.ARM64.HasASIMDHP)
		flag(w, "ASIMDDP", cpu.ARM64.HasASIMDDP)
		flag(w, "SVE", cpu.ARM64.HasSVE)
		flag(w, "SVE2", cpu.ARM64.HasSVE2)
	case "ppc64", "ppc64le":
		fmt.Fprintln(w, "POWER features:")
		flag(w, "POWER8", cpu.PPC64.IsPOWER8)
		flag(w, "POWER9", cpu.PPC64.IsPOWER9)
		flag(w, "DARN", cpu.PPC64.HasDARN)
	default:
		fmt.Fprintln(w, "no feature flags for this architecture")
	}
}

func flag(w io.Writer, name string, on bool) {
	fmt.Fprintf(w, "  %-10s %t\n", name+":", on)
}
