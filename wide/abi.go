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
	"fmt"
	"strings"
)

// ABI is the storage and execution strategy backing a vector value.
type ABI uint8

const (
	// ABIScalar is a single lane held in a register slot.
	ABIScalar ABI = iota

	// ABINative is one hardware register of the target.
	ABINative

	// ABIEmulated is a plain element array, used when the target has no
	// register for the element type.
	ABIEmulated

	// ABIAggregated is two half-cardinal values, used when the cardinal
	// exceeds one register.
	ABIAggregated
)

// String returns a human-readable name for the ABI.
func (a ABI) String() string {
	switch a {
	case ABIScalar:
		return "scalar"
	case ABINative:
		return "native"
	case ABIEmulated:
		return "emulated"
	case ABIAggregated:
		return "aggregated"
	default:
		return "unknown"
	}
}

// MaxCardinal is the largest lane count a vector value may have.
const MaxCardinal = 4096

// ResolveABI returns the ABI holding cardinal lanes of e on target t.
//
// Native storage is preferred whenever a register of t holds the lanes. An
// element type t cannot hold is emulated. A cardinal larger than one register
// is aggregated from two halves, each resolved again until it fits.
func ResolveABI(e ElementType, cardinal int, t *Target) (ABI, error) {
	if cardinal < 1 || cardinal&(cardinal-1) != 0 {
		return 0, resolutionError("make", ErrInvalidCardinal, "%s x %d on %s", e, cardinal, t)
	}
	if cardinal > MaxCardinal {
		return 0, resolutionError("make", ErrNoABI, "%s x %d on %s exceeds %d lanes", e, cardinal, t, MaxCardinal)
	}
	if cardinal == 1 {
		return ABIScalar, nil
	}
	lanes := t.MaxLanes(e)
	switch {
	case lanes == 0:
		return ABIEmulated, nil
	case cardinal <= lanes:
		return ABINative, nil
	case cardinal%lanes == 0:
		return ABIAggregated, nil
	}
	return 0, resolutionError("make", ErrNoABI, "%s x %d on %s", e, cardinal, t)
}

// Layout describes the storage tree of a vector value.
type Layout struct {
	ABI      ABI
	Element  ElementType
	Cardinal int
	// Halves holds the two sub-layouts of an aggregated value.
	Halves []Layout
}

// DescribeABI resolves the full storage tree for cardinal lanes of e on t.
func DescribeABI(e ElementType, cardinal int, t *Target) (Layout, error) {
	abi, err := ResolveABI(e, cardinal, t)
	if err != nil {
		return Layout{}, err
	}
	l := Layout{ABI: abi, Element: e, Cardinal: cardinal}
	if abi == ABIAggregated {
		half, err := DescribeABI(e, cardinal/2, t)
		if err != nil {
			return Layout{}, err
		}
		l.Halves = []Layout{half, half}
	}
	return l, nil
}

// Registers returns the number of native registers at the leaves.
func (l Layout) Registers() int {
	switch l.ABI {
	case ABIAggregated:
		return l.Halves[0].Registers() + l.Halves[1].Registers()
	case ABINative, ABIScalar:
		return 1
	default:
		return 0
	}
}

// Depth returns the number of aggregation levels above the leaves.
func (l Layout) Depth() int {
	if l.ABI != ABIAggregated {
		return 0
	}
	return 1 + l.Halves[0].Depth()
}

// String renders the tree, e.g. "aggregated[16](native[8], native[8])".
func (l Layout) String() string {
	var b strings.Builder
	l.write(&b)
	return b.String()
}

func (l Layout) write(b *strings.Builder) {
	fmt.Fprintf(b, "%s[%d]", l.ABI, l.Cardinal)
	if l.ABI != ABIAggregated {
		return
	}
	b.WriteByte('(')
	l.Halves[0].write(b)
	b.WriteString(", ")
	l.Halves[1].write(b)
	b.WriteByte(')')
}
