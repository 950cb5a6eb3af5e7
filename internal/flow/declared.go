package flow

import (
	"context"
	"fmt"
)

// DeclaredFlow is a Callable for a flow known only from a deployment file.
// It satisfies the flow contract for metadata inference but cannot be run in
// this process. Building and submitting a deployment never invokes the flow,
// so a declared flow is sufficient for the CLI path.
type DeclaredFlow struct {
	name string
	doc  string
}

// Declared constructs a DeclaredFlow with the given name and documentation.
func Declared(name, doc string) *DeclaredFlow {
	return &DeclaredFlow{name: name, doc: doc}
}

// Name implements Callable.
func (d *DeclaredFlow) Name() string { return d.name }

// Doc implements Callable.
func (d *DeclaredFlow) Doc() string { return d.doc }

// Parameters implements Callable. A declared flow has no known signature.
func (d *DeclaredFlow) Parameters() []Parameter { return nil }

// Invoke implements Callable and always fails.
func (d *DeclaredFlow) Invoke(ctx context.Context, args ...any) (any, error) {
	return nil, fmt.Errorf("flow %q is declared but not registered in this process", d.name)
}
