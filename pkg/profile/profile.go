// Package profile summarizes the string columns of a frame, typically to
// compare a dataset before and after a transformation run.
package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LFKoning/stringtransform/pkg/frame"
)

// ColumnStats holds per-column counters. Freqs is only populated for string
// columns, capped at topK distinct values in the report.
type ColumnStats struct {
	Name   string
	Kind   frame.Kind
	Count  int
	Nulls  int
	Freqs  map[string]int
	MinLen int
	MaxLen int
}

type Report struct {
	Columns []ColumnStats
	topK    int
}

// Collect profiles f. topK limits the number of frequent values listed per
// string column; 0 disables value frequencies entirely.
func Collect(f *frame.Frame, topK int) *Report {
	rep := &Report{topK: topK}
	for _, cs := range f.Schema().Columns {
		st := ColumnStats{Name: cs.Name, Kind: cs.Type}
		col, _ := f.ColumnByName(cs.Name)

		sc, isString := col.(*frame.StringColumn)
		if isString && topK > 0 {
			st.Freqs = make(map[string]int)
		}
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				st.Nulls++
				continue
			}
			st.Count++
			if !isString {
				continue
			}
			v, _ := sc.Get(i)
			if st.Freqs != nil {
				st.Freqs[v]++
			}
			if st.Count == 1 || len(v) < st.MinLen {
				st.MinLen = len(v)
			}
			if len(v) > st.MaxLen {
				st.MaxLen = len(v)
			}
		}
		rep.Columns = append(rep.Columns, st)
	}
	return rep
}

// String renders a plain-text summary.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString("Column summary\n")
	for _, st := range r.Columns {
		fmt.Fprintf(&b, "- %s (%s): count=%d nulls=%d", st.Name, st.Kind, st.Count, st.Nulls)
		if st.Kind == frame.KindString && st.Count > 0 {
			fmt.Fprintf(&b, " minlen=%d maxlen=%d", st.MinLen, st.MaxLen)
		}
		b.WriteByte('\n')
		for _, tv := range r.top(st) {
			fmt.Fprintf(&b, "    %q: %d\n", tv.value, tv.count)
		}
	}
	return b.String()
}

type valueCount struct {
	value string
	count int
}

func (r *Report) top(st ColumnStats) []valueCount {
	if len(st.Freqs) == 0 {
		return nil
	}
	arr := make([]valueCount, 0, len(st.Freqs))
	for v, n := range st.Freqs {
		arr = append(arr, valueCount{v, n})
	}
	sort.Slice(arr, func(i, j int) bool {
		if arr[i].count != arr[j].count {
			return arr[i].count > arr[j].count
		}
		return arr[i].value < arr[j].value
	})
	if r.topK > 0 && len(arr) > r.topK {
		arr = arr[:r.topK]
	}
	return arr
}
