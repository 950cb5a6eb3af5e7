// Package fragment defines the immutable configuration bundle that a single
// annotation contributes to a flow. Fragments are the unit the composition
// engine merges: one category, one map of option name to value.
package fragment

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Category names the section of the deployment specification a fragment
// belongs to. Fragments of different categories never interact.
type Category string

const (
	CategoryInfra      Category = "infra"
	CategoryTaskRunner Category = "task_runner"
	CategoryStorage    Category = "storage"
	CategoryMetadata   Category = "metadata"
)

// Categories returns all known categories in their canonical section order.
func Categories() []Category {
	return []Category{CategoryInfra, CategoryTaskRunner, CategoryStorage, CategoryMetadata}
}

// Fragment is one annotation's contribution: a category plus a mapping of
// option name to value. A Fragment is immutable after construction; the
// backing map is never shared with callers.
type Fragment struct {
	category Category
	source   string
	fields   map[string]cty.Value
}

// New constructs a Fragment. The source identifies the annotation that
// produced it (e.g. "infra/kubernetes") and appears in conflict errors.
// The fields map is copied, so the caller may reuse it.
func New(category Category, source string, fields map[string]cty.Value) Fragment {
	copied := make(map[string]cty.Value, len(fields))
	for name, val := range fields {
		copied[name] = val
	}
	return Fragment{category: category, source: source, fields: copied}
}

// Category returns the fragment's category.
func (f Fragment) Category() Category {
	return f.category
}

// Source returns the identifier of the annotation that produced the fragment.
func (f Fragment) Source() string {
	return f.source
}

// Get returns the value for the named field and whether it is set.
func (f Fragment) Get(name string) (cty.Value, bool) {
	val, ok := f.fields[name]
	return val, ok
}

// Fields returns a copy of the fragment's field map.
func (f Fragment) Fields() map[string]cty.Value {
	copied := make(map[string]cty.Value, len(f.fields))
	for name, val := range f.fields {
		copied[name] = val
	}
	return copied
}

// FieldNames returns the fragment's field names in lexical order, so that
// iteration over a fragment is deterministic.
func (f Fragment) FieldNames() []string {
	names := make([]string, 0, len(f.fields))
	for name := range f.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of fields set on the fragment.
func (f Fragment) Len() int {
	return len(f.fields)
}
