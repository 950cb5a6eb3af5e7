// Package flow defines the contract a deployable flow must satisfy and the
// Handle that accumulates configuration fragments for it. The core never
// needs more from a flow than its name, its documentation, its declared
// signature, and the ability to invoke it.
package flow

import (
	"context"
	"reflect"
)

// Parameter describes one declared parameter of a flow callable.
type Parameter struct {
	Name string
	Type reflect.Type
}

// Callable is the capability contract for a flow-like object. Metadata
// inference reads Name, Doc and Parameters; nothing in the deployment path
// ever calls Invoke.
type Callable interface {
	// Name returns the flow's declared name.
	Name() string

	// Doc returns the flow's documentation string, or "" when absent.
	Doc() string

	// Parameters returns the flow's declared parameters in order.
	Parameters() []Parameter

	// Invoke runs the flow with the given arguments.
	Invoke(ctx context.Context, args ...any) (any, error)
}
