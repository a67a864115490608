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
	"strings"
	"text/tabwriter"

	"github.com/ajroetker/go-wide/wide"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var title = cases.Title(language.English)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "wideinfo",
		Short:        "Inspect wide vector targets, layouts and dispatch plans",
		SilenceUsage: true,
	}
	root.AddCommand(
		newTargetCmd(),
		newTargetsCmd(),
		newABICmd(),
		newPlanCmd(),
		newOpsCmd(),
		newFeaturesCmd(),
	)
	return root
}

// lookupTarget returns the named target, or the current one for "".
func lookupTarget(name string) (*wide.Target, error) {
	if name == "" {
		return wide.CurrentTarget(), nil
	}
	return wide.LookupTarget(name)
}

func newTargetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "target",
		Short: "Print the target selected for this process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			t := wide.CurrentTarget()
			fmt.Fprintf(w, "Target:     %s\n", t.Name)
			fmt.Fprintf(w, "Probed:     %s\n", wide.ProbedTarget().Name)
			fmt.Fprintf(w, "Level:      %s\n", t.Level)
			fmt.Fprintf(w, "Width:      %d bytes\n", t.Width)
			fmt.Fprintf(w, "Infinities: %t\n", t.SupportsInfinites)
			fmt.Fprintf(w, "NaNs:       %t\n", t.SupportsInvalids)
			if err := wide.TargetOverrideError(); err != nil {
				fmt.Fprintf(w, "Override:   %v\n", err)
			}
			fmt.Fprintln(w)
			writeLanes(w, t)
			return nil
		},
	}
}

var laneTypes = []string{"int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64", "float32", "float64"}

// writeLanes prints the lanes per register of every element type on t.
func writeLanes(w io.Writer, t *wide.Target) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tLANES\tABI(16)")
	for _, name := range laneTypes {
		e, _ := wide.ParseElementType(name)
		abi, err := wide.ResolveABI(e, 16, t)
		abiName := abi.String()
		if err != nil {
			abiName = "-"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", e, t.MaxLanes(e), abiName)
	}
	tw.Flush()
}

func newTargetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets",
		Short: "List the built-in targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLEVEL\tWIDTH\tINF\tNAN\tCURRENT")
			current := wide.CurrentTarget()
			for _, t := range wide.Targets() {
				mark := ""
				if t.Name == current.Name {
					mark = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%t\t%t\t%s\n",
					t.Name, t.Level, t.Width, t.SupportsInfinites, t.SupportsInvalids, mark)
			}
			return tw.Flush()
		},
	}
}

func newABICmd() *cobra.Command {
	var (
		typeName   string
		cardinal   int
		targetName string
	)
	cmd := &cobra.Command{
		Use:   "abi",
		Short: "Print the ABI and register layout of a vector shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := wide.ParseElementType(typeName)
			if err != nil {
				return err
			}
			t, err := lookupTarget(targetName)
			if err != nil {
				return err
			}
			l, err := wide.DescribeABI(e, cardinal, t)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Shape:     %sx%d on %s\n", e, cardinal, t.Name)
			fmt.Fprintf(w, "ABI:       %s\n", title.String(l.ABI.String()))
			fmt.Fprintf(w, "Layout:    %s\n", l)
			fmt.Fprintf(w, "Registers: %d\n", l.Registers())
			fmt.Fprintf(w, "Depth:     %d\n", l.Depth())
			return nil
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "e", "float32", "element type")
	cmd.Flags().IntVarP(&cardinal, "cardinal", "n", 0, "lane count")
	cmd.Flags().StringVarP(&targetName, "target", "t", "", "target name (default: current target)")
	_ = cmd.MarkFlagRequired("cardinal")
	return cmd
}

func newPlanCmd() *cobra.Command {
	var (
		opName      string
		policyName  string
		typeName    string
		cardinal    int
		rhsCardinal int
		targetName  string
		rhsTarget   string
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the strategy the resolver picks for an operation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := wide.ParsePolicy(policyName)
			if err != nil {
				return err
			}
			e, err := wide.ParseElementType(typeName)
			if err != nil {
				return err
			}
			ta, err := lookupTarget(targetName)
			if err != nil {
				return err
			}
			tb := ta
			if rhsTarget != "" {
				if tb, err = wide.LookupTarget(rhsTarget); err != nil {
					return err
				}
			}
			if rhsCardinal == 0 {
				rhsCardinal = cardinal
			}
			a, err := wide.NewShape(e, cardinal, ta)
			if err != nil {
				return err
			}
			b, err := wide.NewShape(e, rhsCardinal, tb)
			if err != nil {
				return err
			}
			s, err := wide.Plan(opName, p, a, b)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Operation: %s\n", opName)
			fmt.Fprintf(w, "Policy:    %s\n", p)
			fmt.Fprintf(w, "Operands:  %s, %s\n", a, b)
			fmt.Fprintf(w, "Strategy:  %s\n", title.String(s.String()))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opName, "op", "", "operation name (see 'wideinfo ops')")
	f.StringVar(&policyName, "policy", "none", "policy: none, saturated, upward, downward, masked or derivative")
	f.StringVarP(&typeName, "type", "e", "float32", "element type")
	f.IntVarP(&cardinal, "cardinal", "n", 0, "lane count of the first operand")
	f.IntVar(&rhsCardinal, "rhs-cardinal", 0, "lane count of the second operand (default: --cardinal)")
	f.StringVarP(&targetName, "target", "t", "", "target of the first operand (default: current target)")
	f.StringVar(&rhsTarget, "rhs-target", "", "target of the second operand (default: --target)")
	_ = cmd.MarkFlagRequired("op")
	_ = cmd.MarkFlagRequired("cardinal")
	return cmd
}

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List the registered operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tARITY\tKINDS\tPOLICIES\tDESCRIPTION")
			for _, d := range wide.Global.Descriptors() {
				kinds := lo.Map(d.Kinds, func(k wide.Kind, _ int) string { return k.String() })
				policies := lo.Map(d.Policies, func(p wide.PolicyKind, _ int) string { return p.String() })
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
					d.Name, d.Arity, strings.Join(kinds, ","), joinOrDash(policies), d.Doc)
			}
			return tw.Flush()
		},
	}
}

func joinOrDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ",")
}
