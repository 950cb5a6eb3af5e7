package registry

import "github.com/perfectlabs/deployergo/internal/fragment"

// CategoryPolicy declares how fragments of one category merge.
//
// Required lists the fields that must be resolved after merge and inference.
// For every category except metadata, the requirement applies only when the
// category has at least one fragment: a flow without a storage annotation is
// valid, a storage annotation without a bucket is not. Metadata is always
// materialized, seeded by inference.
//
// Strict marks fields for which two fragments supplying differing values is
// an error rather than an outer-wins override.
type CategoryPolicy struct {
	Required []string
	Strict   map[string]bool
}

// corePolicies are the merge policies for the built-in categories. No core
// field is strict: outer-wins is the default, and metadata.name in
// particular stays overridable so an explicit name beats the inferred one.
var corePolicies = map[fragment.Category]CategoryPolicy{
	fragment.CategoryInfra:      {Required: []string{"image"}},
	fragment.CategoryTaskRunner: {Required: []string{"num_workers"}},
	fragment.CategoryStorage:    {Required: []string{"bucket"}},
	fragment.CategoryMetadata:   {Required: []string{"name", "environment"}},
}

// SetPolicy installs or replaces the merge policy for a category. Callers
// use this to gate strict conflict detection on individual fields.
func (r *Registry) SetPolicy(cat fragment.Category, p CategoryPolicy) {
	r.policies[cat] = p
}

// Policy returns the merge policy for a category.
func (r *Registry) Policy(cat fragment.Category) (CategoryPolicy, bool) {
	p, ok := r.policies[cat]
	return p, ok
}
