package flow

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

var contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Func adapts a plain Go function into a Callable. The function may
// optionally take a context.Context as its first parameter and may
// optionally return an error as its last result.
type Func struct {
	name   string
	doc    string
	fn     reflect.Value
	params []Parameter
}

// NewFunc wraps fn as a Callable. When name is empty it defaults to the
// function's own declared name, as reported by the runtime.
func NewFunc(name, doc string, fn any) (*Func, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, fmt.Errorf("flow: fn must be a function, got %T", fn)
	}
	if name == "" {
		name = funcName(v)
	}

	t := v.Type()
	start := 0
	if t.NumIn() > 0 && t.In(0) == contextType {
		start = 1
	}
	params := make([]Parameter, 0, t.NumIn()-start)
	for i := start; i < t.NumIn(); i++ {
		params = append(params, Parameter{
			Name: fmt.Sprintf("arg%d", i-start),
			Type: t.In(i),
		})
	}

	return &Func{name: name, doc: doc, fn: v, params: params}, nil
}

// Name implements Callable.
func (f *Func) Name() string { return f.name }

// Doc implements Callable.
func (f *Func) Doc() string { return f.doc }

// Parameters implements Callable.
func (f *Func) Parameters() []Parameter {
	params := make([]Parameter, len(f.params))
	copy(params, f.params)
	return params
}

// Invoke implements Callable. The context is forwarded when the wrapped
// function declares a context.Context first parameter.
func (f *Func) Invoke(ctx context.Context, args ...any) (any, error) {
	t := f.fn.Type()
	in := make([]reflect.Value, 0, t.NumIn())
	if t.NumIn() > 0 && t.In(0) == contextType {
		in = append(in, reflect.ValueOf(ctx))
	}
	if len(args) != t.NumIn()-len(in) {
		return nil, fmt.Errorf("flow %q expects %d arguments, got %d", f.name, t.NumIn()-len(in), len(args))
	}
	for i, arg := range args {
		av := reflect.ValueOf(arg)
		want := t.In(len(in))
		if !av.IsValid() || !av.Type().AssignableTo(want) {
			return nil, fmt.Errorf("flow %q argument %d: cannot use %T as %s", f.name, i, arg, want)
		}
		in = append(in, av)
	}

	out := f.fn.Call(in)
	var result any
	var err error
	for _, ov := range out {
		if ov.Type().Implements(errorType) {
			if !ov.IsNil() {
				err = ov.Interface().(error)
			}
			continue
		}
		result = ov.Interface()
	}
	return result, err
}

// funcName extracts the bare declared name from the runtime's fully
// qualified symbol, e.g. "github.com/acme/pkg.simple_flow" -> "simple_flow".
func funcName(v reflect.Value) string {
	full := runtime.FuncForPC(v.Pointer()).Name()
	if idx := strings.LastIndex(full, "."); idx >= 0 {
		full = full[idx+1:]
	}
	// Anonymous functions carry a funcN suffix that is not a usable name.
	return strings.TrimSuffix(full, "-fm")
}
