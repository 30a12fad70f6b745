package jsonlio

import (
	"encoding/json"
	"time"

	"github.com/LFKoning/stringtransform/pkg/frame"
	iox "github.com/LFKoning/stringtransform/pkg/io/ioutils"
)

// WriteAll writes a Frame as one JSON object per line. Null cells are
// omitted from their object.
func WriteAll(path string, f *frame.Frame) error {
	out, err := iox.CreateMaybeCompressed(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	enc := json.NewEncoder(out)
	for r := 0; r < f.Rows(); r++ {
		m := make(map[string]any, f.Cols())
		for _, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			switch cs.Type {
			case frame.KindFloat:
				if v, ok := col.(*frame.FloatColumn).Get(r); ok {
					m[cs.Name] = v
				}
			case frame.KindInt:
				if v, ok := col.(*frame.IntColumn).Get(r); ok {
					m[cs.Name] = v
				}
			case frame.KindBool:
				if v, ok := col.(*frame.BoolColumn).Get(r); ok {
					m[cs.Name] = v
				}
			case frame.KindString:
				if v, ok := col.(*frame.StringColumn).Get(r); ok {
					m[cs.Name] = v
				}
			case frame.KindTime:
				if v, ok := col.(*frame.TimeColumn).Get(r); ok {
					m[cs.Name] = v.Format(time.RFC3339)
				}
			}
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
	}
	return nil
}
