package funcs

import (
	"sort"

	tf "github.com/LFKoning/stringtransform/pkg/transformer"
)

// registry maps config step names to their functions.
var registry = map[string]tf.Func{
	"trim":              Trim,
	"lower":             Lower,
	"upper":             Upper,
	"title":             Title,
	"replace":           Replace,
	"prefix":            Prefix,
	"suffix":            Suffix,
	"normalize":         Normalize,
	"strip_punctuation": StripPunctuation,
	"multi_replace":     MultiReplace,
	"hash":              Hash,
	"split_camel":       SplitCamel,
	"snake_case":        SnakeCase,
}

// Lookup resolves a step name from a cleaning config to its function.
func Lookup(name string) (tf.Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names lists the registered step names, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
