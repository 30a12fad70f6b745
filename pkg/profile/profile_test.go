package profile

import (
	"strings"
	"testing"

	"github.com/LFKoning/stringtransform/pkg/frame"
)

func TestCollect(t *testing.T) {
	s := frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "x", Type: frame.KindFloat, Nullable: true},
		{Name: "label", Type: frame.KindString, Nullable: true},
	}}
	f := frame.New(s)
	for i, v := range []string{"one", "two", "one"} {
		f.AppendNullRow()
		_ = f.SetCell(i, "label", v)
	}
	f.AppendNullRow() // all nulls

	rep := Collect(f, 5)
	if len(rep.Columns) != 2 {
		t.Fatalf("expected 2 column profiles, got %d", len(rep.Columns))
	}
	lab := rep.Columns[1]
	if lab.Count != 3 || lab.Nulls != 1 {
		t.Fatalf("unexpected counts: %+v", lab)
	}
	if lab.Freqs["one"] != 2 {
		t.Fatalf("expected freq 2 for 'one', got %d", lab.Freqs["one"])
	}
	if lab.MinLen != 3 || lab.MaxLen != 3 {
		t.Fatalf("unexpected lengths: %+v", lab)
	}

	out := rep.String()
	if !strings.Contains(out, `"one": 2`) {
		t.Fatalf("report missing top value, got:\n%s", out)
	}
}
