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
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Descriptor records what the dispatch engine knows about an operation
// without instantiating it for an element type.
type Descriptor struct {
	// Name is the undecorated operation name ("add", "erfc", ...).
	Name string

	// Arity is the number of vector operands.
	Arity int

	// Kinds lists the element kinds the operation accepts.
	Kinds []Kind

	// Policies lists the decorators the operation supports besides
	// PolicyNone.
	Policies []PolicyKind

	// Native reports whether native operands of element type e run a
	// register kernel under policy p. A nil Native means never.
	Native func(e ElementType, p PolicyKind) bool

	// Doc is a one-line description.
	Doc string
}

// Supports reports whether the operation accepts policy p.
func (d Descriptor) Supports(p PolicyKind) bool {
	return p == PolicyNone || slices.Contains(d.Policies, p)
}

// Accepts reports whether the operation accepts element type e.
func (d Descriptor) Accepts(e ElementType) bool {
	return slices.Contains(d.Kinds, e.Kind)
}

// Registry holds operation descriptors by name. It is safe for concurrent
// use.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Descriptor
}

// Global is the registry holding the built-in operations. Packages that add
// operations register them from init.
var Global = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Descriptor)}
}

// Register adds d. It fails with ErrDuplicateOperation when the name is
// taken.
func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ops[d.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateOperation, d.Name)
	}
	r.ops[d.Name] = d
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.ops[name]
	return d, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := lo.Keys(r.ops)
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Descriptors returns the registered descriptors sorted by name.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.namesLocked(), func(name string, _ int) Descriptor { return r.ops[name] })
}

func (r *Registry) namesLocked() []string {
	names := lo.Keys(r.ops)
	slices.Sort(names)
	return names
}

// Plan returns the strategy the resolver picks for the named operation under
// policy p with operands of shapes a and b. Unary operations ignore b.
func (r *Registry) Plan(name string, p PolicyKind, a, b Shape) (Strategy, error) {
	d, ok := r.Lookup(name)
	if !ok {
		return 0, resolutionError(name, ErrUnknownOperation, "%q is not registered", name)
	}
	op := name
	if p != PolicyNone {
		op = decorate(p.String(), name)
	}
	if !d.Supports(p) {
		return 0, resolutionError(op, ErrNoPolicyVariant, "%s supports %v", name, d.Policies)
	}
	if !d.Accepts(a.Element) {
		return 0, resolutionError(op, ErrNoABI, "%s does not accept %s", name, a.Element)
	}
	if d.Arity == 1 {
		b = a
	}
	if a.Element != b.Element {
		return 0, resolutionError(op, ErrShapeMismatch, "%s and %s", a, b)
	}
	hasNative := d.Native != nil && d.Native(a.Element, p)
	return resolve(op, a, b, hasNative)
}

// Register adds d to the Global registry.
func Register(d Descriptor) error {
	return Global.Register(d)
}

// Lookup returns the descriptor registered under name in the Global registry.
func Lookup(name string) (Descriptor, bool) {
	return Global.Lookup(name)
}

// Plan is Global.Plan.
func Plan(name string, p PolicyKind, a, b Shape) (Strategy, error) {
	return Global.Plan(name, p, a, b)
}

var (
	allKinds     = []Kind{KindSigned, KindUnsigned, KindFloat}
	integerKinds = []Kind{KindSigned, KindUnsigned}
	floatKinds   = []Kind{KindFloat}

	arithPolicies = []PolicyKind{PolicySaturated, PolicyUpward, PolicyDownward, PolicyMasked}
	exactPolicies = []PolicyKind{PolicyMasked}
)

func init() {
	for _, d := range []Descriptor{
		{Name: "add", Arity: 2, Kinds: allKinds, Policies: arithPolicies, Native: nativeAddSub, Doc: "a + b"},
		{Name: "sub", Arity: 2, Kinds: allKinds, Policies: arithPolicies, Native: nativeAddSub, Doc: "a - b"},
		{Name: "mul", Arity: 2, Kinds: allKinds, Policies: []PolicyKind{PolicyUpward, PolicyDownward, PolicyMasked},
			Native: nativeFloatArith, Doc: "a * b"},
		{Name: "div", Arity: 2, Kinds: allKinds, Policies: []PolicyKind{PolicyUpward, PolicyDownward, PolicyMasked},
			Native: nativeFloatArith, Doc: "a / b"},
		{Name: "min", Arity: 2, Kinds: allKinds, Policies: exactPolicies, Native: nativeAlways, Doc: "min(a, b)"},
		{Name: "max", Arity: 2, Kinds: allKinds, Policies: exactPolicies, Native: nativeAlways, Doc: "max(a, b)"},
		{Name: "abs_diff", Arity: 2, Kinds: allKinds, Policies: exactPolicies, Native: nativeNever, Doc: "|a - b|"},
		{Name: "avg", Arity: 2, Kinds: integerKinds, Policies: exactPolicies, Native: nativeNever, Doc: "(a + b + 1) >> 1"},
		{Name: "mul_high", Arity: 2, Kinds: integerKinds, Policies: exactPolicies, Native: nativeNever,
			Doc: "upper half of the double-width product"},
		{Name: "and", Arity: 2, Kinds: allKinds, Policies: exactPolicies, Native: nativeAlways, Doc: "a & b"},
		{Name: "or", Arity: 2, Kinds: allKinds, Policies: exactPolicies, Native: nativeAlways, Doc: "a | b"},
		{Name: "xor", Arity: 2, Kinds: allKinds, Policies: exactPolicies, Native: nativeAlways, Doc: "a ^ b"},
		{Name: "and_not", Arity: 2, Kinds: allKinds, Policies: exactPolicies, Native: nativeAlways, Doc: "^a & b"},
		{Name: "not", Arity: 1, Kinds: allKinds, Policies: exactPolicies, Native: nativeAlways, Doc: "^a"},
		{Name: "neg", Arity: 1, Kinds: allKinds,
			Policies: []PolicyKind{PolicySaturated, PolicyMasked, PolicyDerivative}, Native: nativeNegAbs, Doc: "-a"},
		{Name: "abs", Arity: 1, Kinds: allKinds,
			Policies: []PolicyKind{PolicySaturated, PolicyMasked, PolicyDerivative}, Native: nativeNegAbs, Doc: "|a|"},
		{Name: "sqrt", Arity: 1, Kinds: floatKinds,
			Policies: []PolicyKind{PolicyUpward, PolicyDownward, PolicyMasked, PolicyDerivative},
			Native:   nativeFloatArith, Doc: "square root"},
		{Name: "equal", Arity: 2, Kinds: allKinds, Native: nativeAlways, Doc: "a == b"},
		{Name: "not_equal", Arity: 2, Kinds: allKinds, Native: nativeAlways, Doc: "a != b"},
		{Name: "less", Arity: 2, Kinds: allKinds, Native: nativeAlways, Doc: "a < b"},
		{Name: "less_equal", Arity: 2, Kinds: allKinds, Native: nativeAlways, Doc: "a <= b"},
		{Name: "greater", Arity: 2, Kinds: allKinds, Native: nativeAlways, Doc: "a > b"},
		{Name: "greater_equal", Arity: 2, Kinds: allKinds, Native: nativeAlways, Doc: "a >= b"},
		{Name: "is_nan", Arity: 1, Kinds: floatKinds, Native: nativeFloats, Doc: "a != a"},
		{Name: "is_inf", Arity: 1, Kinds: floatKinds, Native: nativeFloats, Doc: "|a| == +Inf"},
		{Name: "if_then_else", Arity: 3, Kinds: allKinds, Native: nativeAlways, Doc: "select by mask"},
	} {
		Global.MustRegister(d)
	}
}
