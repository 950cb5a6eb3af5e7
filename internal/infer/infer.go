// Package infer derives default metadata fields from a flow callable's own
// declared properties. Inference never consults the clock, the environment,
// or any external state, so it cannot break composition determinism.
package infer

import (
	"github.com/perfectlabs/deployergo/internal/flow"
	"github.com/zclconf/go-cty/cty"
)

// Metadata returns the inferable metadata defaults for a callable: the
// deployment name defaults to the callable's declared name and the
// description to its documentation string (empty when absent). Fields with
// no inference rule, such as environment and version, are not returned;
// they must be supplied explicitly if required downstream.
func Metadata(c flow.Callable) map[string]cty.Value {
	return map[string]cty.Value{
		"name":        cty.StringVal(c.Name()),
		"description": cty.StringVal(c.Doc()),
	}
}
