package transformer_test

import (
	"strings"
	"testing"

	"github.com/LFKoning/stringtransform/pkg/frame"
	"github.com/LFKoning/stringtransform/pkg/transformer"
)

func BenchmarkTransform(b *testing.B) {
	s := frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "x", Type: frame.KindFloat, Nullable: true},
		{Name: "label", Type: frame.KindString, Nullable: true},
	}}
	f := frame.New(s)
	for i := 0; i < 100000; i++ {
		f.AppendNullRow()
		_ = f.SetCell(i, "x", float64(i))
		_ = f.SetCell(i, "label", " Alpha Beta ")
	}
	tfm := transformer.New().Then(strings.TrimSpace).Then(strings.ToLower)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tfm.Transform(f)
	}
}
