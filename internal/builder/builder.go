package builder

import (
	"context"

	"github.com/perfectlabs/deployergo/internal/flow"
)

// Builder is implemented by every annotation-producing object. Attach
// constructs the annotation's configuration fragment from its own parameters
// and appends it to the handle's fragment list, returning a new handle. The
// input handle is never mutated.
//
// Attach fails with *fragment.InvalidConfigurationError when a required
// parameter for the fragment's category is missing or malformed.
type Builder interface {
	Attach(ctx context.Context, h *flow.Handle) (*flow.Handle, error)
}

// Apply attaches each builder's fragment in order: the first builder is the
// innermost annotation and the last is the outermost. Because the
// composition engine lets later fragments override earlier ones, this
// preserves the outermost-wins intuition of nested annotations while making
// the order an explicit parameter.
func Apply(ctx context.Context, h *flow.Handle, builders ...Builder) (*flow.Handle, error) {
	var err error
	for _, b := range builders {
		h, err = b.Attach(ctx, h)
		if err != nil {
			return nil, err
		}
	}
	return h, nil
}
