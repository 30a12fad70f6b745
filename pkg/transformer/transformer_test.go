package transformer_test

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFKoning/stringtransform/pkg/frame"
	"github.com/LFKoning/stringtransform/pkg/funcs"
	"github.com/LFKoning/stringtransform/pkg/transformer"
)

func labelFrame(t *testing.T, labels []string) *frame.Frame {
	t.Helper()
	s := frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "x", Type: frame.KindFloat, Nullable: true},
		{Name: "label", Type: frame.KindString, Nullable: true},
	}}
	f := frame.New(s)
	for i, l := range labels {
		f.AppendNullRow()
		require.NoError(t, f.SetCell(i, "x", float64(i+1)))
		require.NoError(t, f.SetCell(i, "label", l))
	}
	return f
}

func labels(t *testing.T, f *frame.Frame) []string {
	t.Helper()
	col, ok := f.Strings("label")
	require.True(t, ok)
	out := make([]string, col.Len())
	for i := range out {
		out[i], _ = col.Get(i)
	}
	return out
}

func TestTransformTrimLower(t *testing.T) {
	f := labelFrame(t, []string{" One "})
	tfm := transformer.New().Add(funcs.Trim).Add(funcs.Lower)

	out, err := tfm.Transform(f)
	require.NoError(t, err)
	assert.Same(t, f, out, "Transform mutates in place")
	assert.Equal(t, []string{"one"}, labels(t, out))
}

func TestTransformReplace(t *testing.T) {
	f := labelFrame(t, []string{"hello world"})
	tfm := transformer.New().Add(funcs.Replace, " ", "_")

	out, err := tfm.Transform(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello_world"}, labels(t, out))
}

func TestThenChainsBareFunctions(t *testing.T) {
	f := labelFrame(t, []string{" One ", " Two "})
	tfm := transformer.New().Then(strings.TrimSpace).Then(strings.ToLower)

	out, err := tfm.Transform(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, labels(t, out))

	// the numeric column is untouched
	col, _ := out.ColumnByName("x")
	v, ok := col.(*frame.FloatColumn).Get(0)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
}

func TestCompositionOrder(t *testing.T) {
	// suffix then upper differs from upper then suffix
	f := labelFrame(t, []string{"a"})
	tfm := transformer.New().Add(funcs.Suffix, "b").Add(funcs.Upper)
	out, err := tfm.Transform(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"AB"}, labels(t, out))

	f = labelFrame(t, []string{"a"})
	tfm = transformer.New().Add(funcs.Upper).Add(funcs.Suffix, "b")
	out, err = tfm.Transform(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ab"}, labels(t, out))
}

func TestAddAndThenEquivalent(t *testing.T) {
	byAdd := transformer.New().
		Add(funcs.Trim).
		Add(funcs.Replace, " ", "_").
		AddKeyword(funcs.Hash, map[string]string{"algorithm": "sha256"})

	byThen := transformer.New().
		Then(funcs.Trim).
		Then(funcs.Replace, []string{" ", "_"}).
		Then(funcs.Hash, map[string]string{"algorithm": "sha256"})

	assert.Equal(t, byAdd.Steps(), byThen.Steps())
}

func TestSteps(t *testing.T) {
	tfm := transformer.New().
		Add(funcs.Replace, " ", "_").
		AddKeyword(funcs.Hash, map[string]string{"algorithm": "sha1"})

	assert.Equal(t, []string{
		`Replace(" ", "_")`,
		`Hash(algorithm="sha1")`,
	}, tfm.Steps())
	assert.Equal(t, 2, tfm.Len())
}

func TestEmptyPipelineIsIdentity(t *testing.T) {
	f := labelFrame(t, []string{" One ", " Two "})
	out, err := transformer.New().Transform(f)
	require.NoError(t, err)
	assert.Equal(t, []string{" One ", " Two "}, labels(t, out))
}

func TestNullCellsSkipped(t *testing.T) {
	f := labelFrame(t, []string{"x"})
	f.AppendNullRow() // row 1 all nulls

	out, err := transformer.New().Add(funcs.Upper).Transform(f)
	require.NoError(t, err)

	col, _ := out.Strings("label")
	require.True(t, col.IsNull(1), "null cell must stay null")
	v, _ := col.Get(0)
	assert.Equal(t, "X", v)
}

func TestColumnSelection(t *testing.T) {
	s := frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "a", Type: frame.KindString, Nullable: true},
		{Name: "b", Type: frame.KindString, Nullable: true},
	}}
	f := frame.New(s)
	f.AppendNullRow()
	require.NoError(t, f.SetCell(0, "a", "keep"))
	require.NoError(t, f.SetCell(0, "b", "change"))

	// only column b selected; missing names are skipped
	_, err := transformer.New("b", "missing").Add(funcs.Upper).Transform(f)
	require.NoError(t, err)

	ca, _ := f.Strings("a")
	cb, _ := f.Strings("b")
	va, _ := ca.Get(0)
	vb, _ := cb.Get(0)
	assert.Equal(t, "keep", va)
	assert.Equal(t, "CHANGE", vb)
}

func TestInvalidStepPanics(t *testing.T) {
	assert.PanicsWithValue(t, "transformer: step must be a string function, got int", func() {
		transformer.New().Then(42)
	})
	assert.PanicsWithValue(t, "transformer: argument container must be []string or map[string]string, got float64", func() {
		transformer.New().Then(strings.ToLower, 1.5)
	})
	assert.PanicsWithValue(t, "transformer: Then accepts at most one argument container", func() {
		transformer.New().Then(strings.ToLower, []string{"a"}, []string{"b"})
	})
	assert.PanicsWithValue(t, "transformer: Then called with nil step", func() {
		transformer.New().Then(nil)
	})
	// typed nils must be caught at append time too, not at Transform time
	assert.PanicsWithValue(t, "transformer: Then called with nil step", func() {
		transformer.New().Then(transformer.Func(nil))
	})
	assert.PanicsWithValue(t, "transformer: Then called with nil step", func() {
		var fn func(string) string
		transformer.New().Then(fn)
	})
	assert.PanicsWithValue(t, "transformer: Add called with nil function", func() {
		transformer.New().Add(nil)
	})
}

func TestStepErrorAborts(t *testing.T) {
	fail := func(v string, _ transformer.Args) (string, error) {
		return "", errors.New("boom")
	}
	f := labelFrame(t, []string{"value"})

	_, err := transformer.New().Then(fail).Add(funcs.Upper).Transform(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), `column "label" row 0`)

	// the failing step never wrote, and the later step never ran
	assert.Equal(t, []string{"value"}, labels(t, f))
}

func TestArgumentMismatchSurfacesAtTransform(t *testing.T) {
	// Add performs no validation; Replace complains when executed
	tfm := transformer.New().Add(funcs.Replace, "only-one")
	f := labelFrame(t, []string{"x"})

	_, err := tfm.Transform(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "two positional arguments")
}
