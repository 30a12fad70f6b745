// Package parquetio reads and writes frames as Parquet files.
package parquetio

import (
	"fmt"
	"os"
	"sort"
	"strings"

	parquet "github.com/segmentio/parquet-go"

	"github.com/LFKoning/stringtransform/pkg/frame"
)

type Reader struct {
	file   *os.File
	reader *parquet.GenericReader[map[string]any]
	schema frame.Schema
}

// OpenReader opens a Parquet file and infers a frame schema from the first
// sampleRows rows (default 100).
func OpenReader(path string, sampleRows int) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := parquet.NewGenericReader[map[string]any](f)

	if sampleRows <= 0 {
		sampleRows = 100
	}
	rows := make([]map[string]any, sampleRows)
	n, err := r.Read(rows)
	if err != nil && !isEOF(err) {
		_ = r.Close()
		_ = f.Close()
		return nil, err
	}
	schema := inferSchema(rows[:n])

	// the segmentio reader cannot unread, so reopen from the start
	if err := r.Close(); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.Seek(0, 0); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Reader{file: f, reader: parquet.NewGenericReader[map[string]any](f), schema: schema}, nil
}

func (r *Reader) Close() error {
	_ = r.reader.Close()
	return r.file.Close()
}

func (r *Reader) Schema() frame.Schema { return r.schema }

// ReadAll loads the whole file into a Frame.
func (r *Reader) ReadAll() (*frame.Frame, error) {
	f := frame.New(r.schema)
	buf := make([]map[string]any, 1024)
	for {
		n, err := r.reader.Read(buf)
		for i := 0; i < n; i++ {
			f.AppendNullRow()
			setRow(f, f.Rows()-1, buf[i])
		}
		if err != nil {
			if isEOF(err) {
				break
			}
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return f, nil
}

func isEOF(err error) bool {
	return err != nil && strings.Contains(err.Error(), "EOF")
}

func inferSchema(rows []map[string]any) frame.Schema {
	keysSet := map[string]struct{}{}
	for _, m := range rows {
		for k := range m {
			keysSet[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(keysSet))
	for k := range keysSet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(keys))}
	for i, k := range keys {
		schema.Columns[i] = frame.ColumnSchema{Name: k, Type: inferKind(rows, k), Nullable: true}
	}
	return schema
}

func inferKind(rows []map[string]any, key string) frame.Kind {
	nNum, nInt, nBool, nStr := 0, 0, 0, 0
	for _, m := range rows {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case float64:
			nNum++
			if float64(int64(t)) == t {
				nInt++
			}
		case int, int32, int64:
			nNum++
			nInt++
		case bool:
			nBool++
		default:
			nStr++
		}
	}
	switch {
	case nBool > nNum && nBool >= nStr:
		return frame.KindBool
	case nNum > nStr && nInt == nNum:
		return frame.KindInt
	case nNum > nStr:
		return frame.KindFloat
	default:
		return frame.KindString
	}
}

func setRow(f *frame.Frame, row int, m map[string]any) {
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
			case int32:
				_ = f.SetCell(row, cs.Name, float64(t))
			case int64:
				_ = f.SetCell(row, cs.Name, float64(t))
			}
		case frame.KindInt:
			switch t := v.(type) {
			case int64:
				_ = f.SetCell(row, cs.Name, t)
			case int32:
				_ = f.SetCell(row, cs.Name, int64(t))
			case float64:
				_ = f.SetCell(row, cs.Name, int64(t))
			}
		case frame.KindBool:
			if b, ok := v.(bool); ok {
				_ = f.SetCell(row, cs.Name, b)
			}
		default:
			switch t := v.(type) {
			case string:
				_ = f.SetCell(row, cs.Name, t)
			case []byte:
				_ = f.SetCell(row, cs.Name, string(t))
			default:
				_ = f.SetCell(row, cs.Name, fmt.Sprintf("%v", t))
			}
		}
	}
}
