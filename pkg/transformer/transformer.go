// Package transformer chains string operations and applies them to the
// string-typed columns of a frame.Frame.
//
// A pipeline is built fluently, either with explicit argument binding:
//
//	tfm := transformer.New()
//	tfm.Add(funcs.Trim).Add(funcs.Replace, " ", "_")
//
// or with the chaining shorthand, which also accepts plain func(string) string
// values such as strings.TrimSpace:
//
//	tfm := transformer.New().Then(strings.TrimSpace).Then(strings.ToLower)
//
// Transform mutates the frame in place and returns it. Steps run in insertion
// order; each step completes over a whole column before the next one starts.
package transformer

import (
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/LFKoning/stringtransform/pkg/frame"
)

// Func is a transformation applied to a single cell value. The current value
// is always the first input; arguments bound at append time ride in Args.
type Func func(value string, args Args) (string, error)

// Args holds the arguments bound to a step: positional, keyword, or none.
type Args struct {
	Pos []string
	KW  map[string]string
}

// Empty reports whether no arguments are bound.
func (a Args) Empty() bool { return len(a.Pos) == 0 && len(a.KW) == 0 }

func (a Args) String() string {
	parts := make([]string, 0, len(a.Pos)+len(a.KW))
	for _, p := range a.Pos {
		parts = append(parts, fmt.Sprintf("%q", p))
	}
	// keyword args sorted for stable output
	keys := make([]string, 0, len(a.KW))
	for k := range a.KW {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, a.KW[k]))
	}
	return strings.Join(parts, ", ")
}

// Step is one configured transformation: a function plus its bound arguments.
type Step struct {
	fn   Func
	name string
	args Args
}

func (s Step) String() string { return s.name + "(" + s.args.String() + ")" }

// Transformer applies an ordered pipeline of string operations to the
// string columns of a Frame.
type Transformer struct {
	columns []string
	steps   []Step
}

// New returns an empty Transformer. With no columns given, Transform selects
// every string-kind column of the frame; otherwise only the named columns
// are touched.
func New(columns ...string) *Transformer {
	return &Transformer{columns: columns}
}

// Add appends fn with positional arguments and returns the receiver for
// chaining. The function is not probed for string compatibility; argument
// mismatches surface as errors from Transform.
func (t *Transformer) Add(fn Func, pos ...string) *Transformer {
	if fn == nil {
		panic("transformer: Add called with nil function")
	}
	t.steps = append(t.steps, Step{fn: fn, name: funcName(fn), args: Args{Pos: pos}})
	return t
}

// AddKeyword appends fn with keyword arguments and returns the receiver.
func (t *Transformer) AddKeyword(fn Func, kw map[string]string) *Transformer {
	if fn == nil {
		panic("transformer: AddKeyword called with nil function")
	}
	t.steps = append(t.steps, Step{fn: fn, name: funcName(fn), args: Args{KW: kw}})
	return t
}

// Then is the chaining shorthand. The step may be a Func or a plain
// func(string) string, optionally followed by a single argument container:
// a []string binds positional arguments, a map[string]string binds keyword
// arguments. Anything else panics with a descriptive message, at append time
// rather than during Transform.
func (t *Transformer) Then(step any, container ...any) *Transformer {
	var fn Func
	var name string
	switch s := step.(type) {
	case Func:
		if s == nil {
			panic("transformer: Then called with nil step")
		}
		fn, name = s, funcName(s)
	case func(string, Args) (string, error):
		if s == nil {
			panic("transformer: Then called with nil step")
		}
		fn, name = Func(s), funcName(s)
	case func(string) string:
		if s == nil {
			panic("transformer: Then called with nil step")
		}
		name = funcName(s)
		fn = func(v string, _ Args) (string, error) { return s(v), nil }
	case nil:
		panic("transformer: Then called with nil step")
	default:
		panic(fmt.Sprintf("transformer: step must be a string function, got %T", step))
	}

	var args Args
	switch len(container) {
	case 0:
	case 1:
		switch c := container[0].(type) {
		case []string:
			args.Pos = c
		case map[string]string:
			args.KW = c
		default:
			panic(fmt.Sprintf("transformer: argument container must be []string or map[string]string, got %T", container[0]))
		}
	default:
		panic("transformer: Then accepts at most one argument container")
	}

	t.steps = append(t.steps, Step{fn: fn, name: name, args: args})
	return t
}

// Steps returns a human-readable description of each step, in pipeline order.
func (t *Transformer) Steps() []string {
	out := make([]string, len(t.steps))
	for i, s := range t.steps {
		out[i] = s.String()
	}
	return out
}

// Len returns the number of steps in the pipeline.
func (t *Transformer) Len() int { return len(t.steps) }

// Transform applies the pipeline to every selected string column of f.
// Null cells are skipped. The frame is mutated in place and returned; a step
// error aborts immediately and is wrapped with the step, column and row.
func (t *Transformer) Transform(f *frame.Frame) (*frame.Frame, error) {
	for _, col := range t.selectColumns(f) {
		for _, s := range t.steps {
			for i := 0; i < col.Len(); i++ {
				if col.IsNull(i) {
					continue
				}
				v, _ := col.Get(i)
				nv, err := s.fn(v, s.args)
				if err != nil {
					return nil, errors.Wrapf(err, "step %s: column %q row %d", s.name, col.Name(), i)
				}
				col.Set(i, nv)
			}
		}
	}
	return f, nil
}

// selectColumns resolves the columns to transform. Named columns that are
// missing or not string-typed are skipped.
func (t *Transformer) selectColumns(f *frame.Frame) []*frame.StringColumn {
	var out []*frame.StringColumn
	if len(t.columns) > 0 {
		for _, name := range t.columns {
			if c, ok := f.Strings(name); ok {
				out = append(out, c)
			}
		}
		return out
	}
	for _, cs := range f.Schema().Columns {
		if cs.Type != frame.KindString {
			continue
		}
		if c, ok := f.Strings(cs.Name); ok {
			out = append(out, c)
		}
	}
	return out
}

// funcName resolves the name a function was declared with, trimmed of its
// package path. Closures keep their runtime name (funcN).
func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "func"
	}
	name := f.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
