package csvio

import (
	"encoding/csv"
	"strconv"
	"time"

	"github.com/LFKoning/stringtransform/pkg/frame"
	iox "github.com/LFKoning/stringtransform/pkg/io/ioutils"
)

type WriterOptions struct {
	Delimiter rune // default ','
}

// WriteAll writes a Frame to a CSV file with a header row. Null cells are
// written as empty fields.
func WriteAll(path string, f *frame.Frame, opt WriterOptions) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}

	hdr := make([]string, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		hdr[i] = cs.Name
	}
	if err := w.Write(hdr); err != nil {
		return err
	}

	for r := 0; r < f.Rows(); r++ {
		row := make([]string, len(hdr))
		for c, cs := range f.Schema().Columns {
			row[c] = formatCell(f, cs, r)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatCell(f *frame.Frame, cs frame.ColumnSchema, r int) string {
	col, _ := f.ColumnByName(cs.Name)
	switch cs.Type {
	case frame.KindFloat:
		if v, ok := col.(*frame.FloatColumn).Get(r); ok {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
	case frame.KindInt:
		if v, ok := col.(*frame.IntColumn).Get(r); ok {
			return strconv.FormatInt(v, 10)
		}
	case frame.KindBool:
		if v, ok := col.(*frame.BoolColumn).Get(r); ok {
			return strconv.FormatBool(v)
		}
	case frame.KindString:
		if v, ok := col.(*frame.StringColumn).Get(r); ok {
			return v
		}
	case frame.KindTime:
		if v, ok := col.(*frame.TimeColumn).Get(r); ok {
			return v.Format(time.RFC3339)
		}
	}
	return ""
}
