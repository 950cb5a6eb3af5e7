// Package deployment defines the resolved, ready-to-submit specification
// produced by composition, and the single point where the core crosses into
// the external orchestration platform.
package deployment

import (
	"context"
	"sort"

	"github.com/perfectlabs/deployergo/internal/fragment"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Applier is the external orchestration platform's registration mechanism.
// The core treats it as an opaque remote call.
type Applier interface {
	Register(ctx context.Context, spec *Spec) error
}

// Spec is the merged deployment specification: one section of resolved
// fields per category. A Spec is immutable after construction.
type Spec struct {
	name     string
	sections map[fragment.Category]map[string]cty.Value
}

// New constructs a Spec from merged sections. The sections are deep-copied.
// The deployment name is read from the metadata section; the composition
// engine guarantees it is present there.
func New(sections map[fragment.Category]map[string]cty.Value) *Spec {
	copied := make(map[fragment.Category]map[string]cty.Value, len(sections))
	for cat, fields := range sections {
		sec := make(map[string]cty.Value, len(fields))
		for name, val := range fields {
			sec[name] = val
		}
		copied[cat] = sec
	}

	var name string
	if meta, ok := copied[fragment.CategoryMetadata]; ok {
		if v, ok := meta["name"]; ok && v.Type() == cty.String && !v.IsNull() {
			name = v.AsString()
		}
	}

	return &Spec{name: name, sections: copied}
}

// Name returns the resolved deployment name.
func (s *Spec) Name() string {
	return s.name
}

// Categories returns the categories with a section in the spec, in canonical
// order.
func (s *Spec) Categories() []fragment.Category {
	cats := make([]fragment.Category, 0, len(s.sections))
	for _, cat := range fragment.Categories() {
		if _, ok := s.sections[cat]; ok {
			cats = append(cats, cat)
		}
	}
	// Any non-core category sorts after the canonical ones.
	extra := make([]string, 0)
	for cat := range s.sections {
		if !isCore(cat) {
			extra = append(extra, string(cat))
		}
	}
	sort.Strings(extra)
	for _, cat := range extra {
		cats = append(cats, fragment.Category(cat))
	}
	return cats
}

func isCore(cat fragment.Category) bool {
	for _, c := range fragment.Categories() {
		if c == cat {
			return true
		}
	}
	return false
}

// Section returns a copy of the named section, or nil when absent.
func (s *Spec) Section(cat fragment.Category) map[string]cty.Value {
	fields, ok := s.sections[cat]
	if !ok {
		return nil
	}
	copied := make(map[string]cty.Value, len(fields))
	for name, val := range fields {
		copied[name] = val
	}
	return copied
}

// Field returns the resolved value for a field in a section.
func (s *Spec) Field(cat fragment.Category, name string) (cty.Value, bool) {
	fields, ok := s.sections[cat]
	if !ok {
		return cty.NilVal, false
	}
	val, ok := fields[name]
	return val, ok
}

// object assembles the spec into a single cty object value. cty object
// attributes iterate in lexical order, which makes the encoding (and
// therefore Equal and MarshalJSON) deterministic.
func (s *Spec) object() cty.Value {
	secVals := make(map[string]cty.Value, len(s.sections))
	for cat, fields := range s.sections {
		if len(fields) == 0 {
			secVals[string(cat)] = cty.EmptyObjectVal
			continue
		}
		secVals[string(cat)] = cty.ObjectVal(fields)
	}
	if len(secVals) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(secVals)
}

// Equal reports whether two specs resolve to the same values.
func (s *Spec) Equal(other *Spec) bool {
	if other == nil {
		return false
	}
	return s.object().RawEquals(other.object())
}

// MarshalJSON encodes the spec as one JSON object with a sub-object per
// category. Equal specs produce byte-identical JSON.
func (s *Spec) MarshalJSON() ([]byte, error) {
	obj := s.object()
	return ctyjson.Marshal(obj, obj.Type())
}

// Apply hands the specification to the external orchestration platform.
// This is the only side-effecting operation on a Spec; any failure from the
// platform is wrapped in *ApplyError with the underlying cause preserved.
// Apply performs no retries.
func (s *Spec) Apply(ctx context.Context, target Applier) error {
	if err := target.Register(ctx, s); err != nil {
		return &ApplyError{Name: s.name, Err: err}
	}
	return nil
}
