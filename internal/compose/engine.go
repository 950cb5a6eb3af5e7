package compose

import (
	"context"

	"github.com/perfectlabs/deployergo/internal/ctxlog"
	"github.com/perfectlabs/deployergo/internal/deployment"
	"github.com/perfectlabs/deployergo/internal/flow"
	"github.com/perfectlabs/deployergo/internal/fragment"
	"github.com/perfectlabs/deployergo/internal/infer"
	"github.com/perfectlabs/deployergo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Engine merges the ordered fragment list on a flow handle into one
// deployment specification, applying the registry's per-category merge
// policies. Composition is a pure function of the fragment list and the
// callable's declared attributes.
type Engine struct {
	reg *registry.Registry
}

// NewEngine creates a composition engine bound to a registry.
func NewEngine(reg *registry.Registry) *Engine {
	return &Engine{reg: reg}
}

// Build produces the deployment specification for a handle. Re-invoking
// Build on the same handle yields an equal specification: the engine reads
// no clock, no randomness, and no external state. Build seals the handle, so
// no further fragments can be attached after the first build.
//
// Build fails with *ConflictError when two fragments disagree on a field the
// category declares strict, and with *MissingRequiredFieldError when a
// required field is still unset after merge and inference.
func (e *Engine) Build(ctx context.Context, h *flow.Handle) (*deployment.Spec, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Composition started.", "flow", h.Callable().Name(), "fragments", len(h.Fragments()))

	merged, err := e.mergeByCategory(h.Fragments())
	if err != nil {
		return nil, err
	}

	e.finalizeMetadata(h.Callable(), merged)
	e.backfillNamespace(merged)

	if err := e.checkRequired(merged); err != nil {
		return nil, err
	}

	h.Seal()
	spec := deployment.New(merged)
	logger.Debug("Composition finished.", "deployment", spec.Name(), "sections", len(spec.Categories()))
	return spec, nil
}

// mergeByCategory groups fragments by category and merges them field by
// field in application order. The later (outer) fragment wins; a field set
// only by an earlier fragment survives unchanged. Fields the category policy
// declares strict escalate disagreement to a ConflictError instead.
func (e *Engine) mergeByCategory(frags []fragment.Fragment) (map[fragment.Category]map[string]cty.Value, error) {
	merged := make(map[fragment.Category]map[string]cty.Value)
	for _, frag := range frags {
		cat := frag.Category()
		sec, ok := merged[cat]
		if !ok {
			sec = make(map[string]cty.Value, frag.Len())
			merged[cat] = sec
		}
		pol, _ := e.reg.Policy(cat)
		for _, name := range frag.FieldNames() {
			val, _ := frag.Get(name)
			if prev, exists := sec[name]; exists && pol.Strict[name] && !prev.RawEquals(val) {
				return nil, &ConflictError{Category: cat, Field: name, Source: frag.Source()}
			}
			sec[name] = val
		}
	}
	return merged, nil
}

// finalizeMetadata seeds the metadata section with inferred defaults, lays
// explicit metadata fields over them, and derives tags from name and version
// when no tags were supplied.
func (e *Engine) finalizeMetadata(c flow.Callable, merged map[fragment.Category]map[string]cty.Value) {
	meta := infer.Metadata(c)
	for name, val := range merged[fragment.CategoryMetadata] {
		meta[name] = val
	}

	if _, ok := meta["tags"]; !ok {
		var tags []cty.Value
		if v, ok := meta["name"]; ok && v.Type() == cty.String && !v.IsNull() && v.AsString() != "" {
			tags = append(tags, v)
		}
		if v, ok := meta["version"]; ok && v.Type() == cty.String && !v.IsNull() && v.AsString() != "" {
			tags = append(tags, v)
		}
		if len(tags) > 0 {
			meta["tags"] = cty.ListVal(tags)
		}
	}

	merged[fragment.CategoryMetadata] = meta
}

// backfillNamespace defaults the infra namespace to the resolved deployment
// name when the infra builder left it unset.
func (e *Engine) backfillNamespace(merged map[fragment.Category]map[string]cty.Value) {
	infra, ok := merged[fragment.CategoryInfra]
	if !ok {
		return
	}
	if v, ok := infra["namespace"]; ok && !v.IsNull() {
		return
	}
	name, ok := merged[fragment.CategoryMetadata]["name"]
	if !ok || name.IsNull() {
		return
	}
	infra["namespace"] = name
}

// checkRequired enforces the per-category required fields. Categories are
// visited in canonical order so the first failure is deterministic.
func (e *Engine) checkRequired(merged map[fragment.Category]map[string]cty.Value) error {
	for _, cat := range fragment.Categories() {
		sec, ok := merged[cat]
		if !ok {
			continue
		}
		pol, ok := e.reg.Policy(cat)
		if !ok {
			continue
		}
		for _, name := range pol.Required {
			val, set := sec[name]
			if !set || val.IsNull() {
				return &MissingRequiredFieldError{Category: cat, Field: name}
			}
			if val.Type() == cty.String && val.AsString() == "" {
				return &MissingRequiredFieldError{Category: cat, Field: name}
			}
		}
	}
	return nil
}
