// Package funcs provides common string transformations in the shape expected
// by the transformer pipeline. All functions take the cell value first and
// read any configuration from the bound Args.
package funcs

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	tf "github.com/LFKoning/stringtransform/pkg/transformer"
)

// punctuation matches the classic ASCII punctuation set.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Trim removes leading and trailing white-space.
func Trim(v string, _ tf.Args) (string, error) {
	return strings.TrimSpace(v), nil
}

// Lower converts the value to lower case.
func Lower(v string, _ tf.Args) (string, error) {
	return strings.ToLower(v), nil
}

// Upper converts the value to upper case.
func Upper(v string, _ tf.Args) (string, error) {
	return strings.ToUpper(v), nil
}

// Title converts the value to title case.
func Title(v string, _ tf.Args) (string, error) {
	return cases.Title(language.Und).String(v), nil
}

// Replace substitutes one substring for another. Positional arguments: the
// substring to search for and its replacement.
func Replace(v string, a tf.Args) (string, error) {
	if len(a.Pos) != 2 {
		return "", errors.Errorf("replace expects two positional arguments (old, new), got %d", len(a.Pos))
	}
	return strings.ReplaceAll(v, a.Pos[0], a.Pos[1]), nil
}

// Prefix prepends its single positional argument to the value.
func Prefix(v string, a tf.Args) (string, error) {
	if len(a.Pos) != 1 {
		return "", errors.Errorf("prefix expects one positional argument, got %d", len(a.Pos))
	}
	return a.Pos[0] + v, nil
}

// Suffix appends its single positional argument to the value.
func Suffix(v string, a tf.Args) (string, error) {
	if len(a.Pos) != 1 {
		return "", errors.Errorf("suffix expects one positional argument, got %d", len(a.Pos))
	}
	return v + a.Pos[0], nil
}

// Normalize decomposes accented characters, drops the combining marks, and
// removes anything left outside ASCII. "Café" becomes "Cafe".
func Normalize(v string, _ tf.Args) (string, error) {
	strip := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(strip, v)
	if err != nil {
		return "", errors.Wrap(err, "normalize")
	}
	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// StripPunctuation removes ASCII punctuation. The optional keyword argument
// "replace" substitutes each punctuation character instead of dropping it.
func StripPunctuation(v string, a tf.Args) (string, error) {
	replace := a.KW["replace"]
	if len(a.Pos) > 0 {
		replace = a.Pos[0]
	}
	var b strings.Builder
	b.Grow(len(v))
	for _, r := range v {
		if r < 128 && strings.ContainsRune(punctuation, r) {
			b.WriteString(replace)
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// MultiReplace applies the keyword arguments as search -> replace pairs.
// Pairs are applied in sorted key order so results are deterministic.
func MultiReplace(v string, a tf.Args) (string, error) {
	if len(a.KW) == 0 {
		return "", errors.New("multi_replace expects keyword arguments with search/replace pairs")
	}
	keys := make([]string, 0, len(a.KW))
	for k := range a.KW {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v = strings.ReplaceAll(v, k, a.KW[k])
	}
	return v, nil
}

// Hash digests the value with the named algorithm (keyword argument
// "algorithm" or first positional argument; default sha1) and returns the
// hex digest.
func Hash(v string, a tf.Args) (string, error) {
	algorithm := "sha1"
	if s, ok := a.KW["algorithm"]; ok {
		algorithm = s
	} else if len(a.Pos) > 0 {
		algorithm = a.Pos[0]
	}

	var h hash.Hash
	switch algorithm {
	case "md5":
		h = md5.New()
	case "sha1":
		h = sha1.New()
	case "sha256":
		h = sha256.New()
	case "sha512":
		h = sha512.New()
	default:
		return "", errors.Errorf("hash: unknown algorithm %q", algorithm)
	}
	h.Write([]byte(v))
	return hex.EncodeToString(h.Sum(nil)), nil
}

var camelBoundary = regexp.MustCompile(`([a-z0-9]+)([A-Z])`)

// SplitCamel inserts spaces at the word boundaries of a CamelCase value.
func SplitCamel(v string, _ tf.Args) (string, error) {
	return camelBoundary.ReplaceAllString(v, "$1 $2"), nil
}

// SnakeCase lower-cases the value and replaces spaces with underscores.
func SnakeCase(v string, _ tf.Args) (string, error) {
	return strings.ReplaceAll(strings.ToLower(v), " ", "_"), nil
}
