// Package jsonlio reads and writes frames as JSON lines.
package jsonlio

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/LFKoning/stringtransform/pkg/frame"
	iox "github.com/LFKoning/stringtransform/pkg/io/ioutils"
)

type ReaderOptions struct {
	SampleRows int // rows sampled for inference; default 100
}

type Reader struct {
	dec  *json.Decoder
	opt  ReaderOptions
	buf  []map[string]any
	keys []string
}

// Open opens a JSONL file (or stdin via "-") and returns a Reader plus the
// underlying handle for the caller to close.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	return &Reader{dec: json.NewDecoder(rc), opt: opt}, rc, nil
}

// InferSchema samples objects to collect the key set and column kinds.
// Sampled objects are retained for the subsequent ReadAll. Keys are sorted
// so the schema is stable across runs.
func (r *Reader) InferSchema() (frame.Schema, error) {
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	keysSet := map[string]struct{}{}
	var sample []map[string]any
	for len(sample) < max {
		var m map[string]any
		if err := r.dec.Decode(&m); err != nil {
			if err == io.EOF {
				break
			}
			return frame.Schema{}, err
		}
		sample = append(sample, m)
		for k := range m {
			keysSet[k] = struct{}{}
		}
	}

	r.buf = append(r.buf, sample...)
	r.keys = make([]string, 0, len(keysSet))
	for k := range keysSet {
		r.keys = append(r.keys, k)
	}
	sort.Strings(r.keys)

	kinds := inferKinds(sample, r.keys)
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(r.keys))}
	for i, k := range r.keys {
		schema.Columns[i] = frame.ColumnSchema{Name: k, Type: kinds[i], Nullable: true}
	}
	return schema, nil
}

// ReadAll loads the remaining objects into a Frame.
func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	f := frame.New(schema)
	for _, m := range r.buf {
		appendObject(f, m)
	}
	r.buf = nil
	for {
		var m map[string]any
		if err := r.dec.Decode(&m); err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		appendObject(f, m)
	}
	return f, nil
}

func appendObject(f *frame.Frame, m map[string]any) {
	f.AppendNullRow()
	row := f.Rows() - 1
	for _, cs := range f.Schema().Columns {
		v, ok := m[cs.Name]
		if !ok || v == nil {
			continue
		}
		switch cs.Type {
		case frame.KindFloat:
			switch t := v.(type) {
			case float64:
				_ = f.SetCell(row, cs.Name, t)
			case string:
				if x, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			}
		case frame.KindInt:
			switch t := v.(type) {
			case float64:
				_ = f.SetCell(row, cs.Name, int64(t))
			case string:
				if x, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			}
		case frame.KindBool:
			switch t := v.(type) {
			case bool:
				_ = f.SetCell(row, cs.Name, t)
			case string:
				if x, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(t))); err == nil {
					_ = f.SetCell(row, cs.Name, x)
				}
			}
		default:
			if s, ok := v.(string); ok {
				_ = f.SetCell(row, cs.Name, s)
				continue
			}
			// non-string values land in string columns as their JSON encoding
			b, _ := json.Marshal(v)
			_ = f.SetCell(row, cs.Name, string(b))
		}
	}
}

func inferKinds(sample []map[string]any, keys []string) []frame.Kind {
	kinds := make([]frame.Kind, len(keys))
	for i, k := range keys {
		nFloat, nInt, nBool, nStr := 0, 0, 0, 0
		for _, m := range sample {
			v, ok := m[k]
			if !ok || v == nil {
				continue
			}
			switch t := v.(type) {
			case bool:
				nBool++
			case float64:
				nFloat++
				if t == float64(int64(t)) {
					nInt++
				}
			default:
				nStr++
			}
		}
		switch {
		case nStr > 0:
			kinds[i] = frame.KindString
		case nBool > 0 && nFloat == 0:
			kinds[i] = frame.KindBool
		case nFloat > 0 && nInt == nFloat:
			kinds[i] = frame.KindInt
		case nFloat > 0:
			kinds[i] = frame.KindFloat
		default:
			kinds[i] = frame.KindString
		}
	}
	return kinds
}
