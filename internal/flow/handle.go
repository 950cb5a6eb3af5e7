package flow

import (
	"errors"

	"github.com/perfectlabs/deployergo/internal/fragment"
)

// ErrHandleSealed is returned when a fragment is attached to a handle that
// has already had a deployment built from it.
var ErrHandleSealed = errors.New("flow handle is sealed: deployment already built")

// Handle pairs a flow callable with the ordered list of configuration
// fragments attached to it. A Handle is owned by the single call chain that
// builds it and is not safe for concurrent use.
type Handle struct {
	callable  Callable
	fragments []fragment.Fragment
	sealed    bool
}

// NewHandle wraps a callable with an empty fragment list.
func NewHandle(c Callable) *Handle {
	return &Handle{callable: c}
}

// Callable returns the wrapped flow callable.
func (h *Handle) Callable() Callable {
	return h.callable
}

// Fragments returns the attached fragments in application order
// (innermost first). The returned slice is a copy.
func (h *Handle) Fragments() []fragment.Fragment {
	frags := make([]fragment.Fragment, len(h.fragments))
	copy(frags, h.fragments)
	return frags
}

// WithFragment returns a new Handle with the fragment appended. The receiver
// is left unchanged, so composition order is fully determined by the order
// of WithFragment calls. Attaching to a sealed handle fails.
func (h *Handle) WithFragment(f fragment.Fragment) (*Handle, error) {
	if h.sealed {
		return nil, ErrHandleSealed
	}
	frags := make([]fragment.Fragment, len(h.fragments), len(h.fragments)+1)
	copy(frags, h.fragments)
	return &Handle{callable: h.callable, fragments: append(frags, f)}, nil
}

// Seal marks the handle immutable. The composition engine calls this when a
// deployment is built; further attachment attempts fail.
func (h *Handle) Seal() {
	h.sealed = true
}

// Sealed reports whether the handle has been sealed.
func (h *Handle) Sealed() bool {
	return h.sealed
}
