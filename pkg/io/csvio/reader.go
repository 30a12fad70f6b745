// Package csvio reads and writes frames as CSV, with delimiter sniffing,
// transparent gzip, and sample-based schema inference.
package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/LFKoning/stringtransform/pkg/frame"
	iox "github.com/LFKoning/stringtransform/pkg/io/ioutils"
)

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = sniff, default ','
	SampleRows int  // rows sampled for inference; default 100
	Strict     bool // if true, error on short/long records
}

type Reader struct {
	r   *csv.Reader
	opt ReaderOptions
	buf [][]string // records consumed during inference
}

// Open opens a CSV file (or stdin via "-") and returns a Reader plus the
// underlying file handle for the caller to close.
func Open(path string, opt ReaderOptions) (*Reader, io.Closer, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return nil, nil, err
	}
	rr := csv.NewReader(rc)
	switch {
	case opt.Delimiter != 0:
		rr.Comma = opt.Delimiter
	case path != "-" && path != "":
		// sniffing reopens the path, so stdin cannot be sniffed without
		// consuming it; stdin keeps the ',' default
		if d, lazy, err := sniffDelimiter(path); err == nil && d != 0 {
			rr.Comma = d
			rr.LazyQuotes = lazy
		}
	}
	return &Reader{r: rr, opt: opt}, rc, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader.
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	rr := csv.NewReader(r)
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	return &Reader{r: rr, opt: opt}
}

// InferSchema reads the header (if present) and samples rows to determine
// column kinds. Sampled records are retained for the subsequent ReadAll.
func (r *Reader) InferSchema() (frame.Schema, []string, error) {
	rec, err := r.r.Read()
	if err != nil {
		return frame.Schema{}, nil, err
	}

	var names []string
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.ToValidUTF8(rec[i], "?")
		}
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\uFEFF")
		}
		rec, err = r.r.Read()
		if err != nil {
			return frame.Schema{}, nil, err
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
	}

	sample := [][]string{append([]string(nil), rec...)}
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for len(sample) < max {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return frame.Schema{}, nil, err
		}
		sample = append(sample, append([]string(nil), rec...))
	}

	kinds := inferKinds(sample)
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(names))}
	for i := range names {
		schema.Columns[i] = frame.ColumnSchema{Name: names[i], Type: kinds[i], Nullable: true}
	}
	r.buf = append(r.buf, sample...)
	return schema, names, nil
}

// ReadAll loads the remaining records into a Frame.
func (r *Reader) ReadAll(schema frame.Schema) (*frame.Frame, error) {
	f := frame.New(schema)
	for _, rec := range r.buf {
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	r.buf = nil
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := r.appendRecord(f, schema, rec); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// appendRecord appends a null row and fills the non-empty cells, coercing to
// the schema kinds. Unparseable cells stay null.
func (r *Reader) appendRecord(f *frame.Frame, schema frame.Schema, rec []string) error {
	if r.opt.Strict && len(rec) != len(schema.Columns) {
		return fmt.Errorf("csv record has %d fields, schema expects %d", len(rec), len(schema.Columns))
	}
	f.AppendNullRow()
	row := f.Rows() - 1
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			continue
		}
		val := strings.ToValidUTF8(strings.TrimSpace(rec[i]), "?")
		if val == "" {
			continue
		}
		switch cs.Type {
		case frame.KindFloat:
			if x, err := strconv.ParseFloat(val, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case frame.KindInt:
			if x, err := strconv.ParseInt(val, 10, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case frame.KindBool:
			if x, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		default:
			_ = f.SetCell(row, cs.Name, val)
		}
	}
	return nil
}

var numericRe = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferKinds(rows [][]string) []frame.Kind {
	if len(rows) == 0 {
		return nil
	}
	kinds := make([]frame.Kind, len(rows[0]))
	for c := range kinds {
		num, integer, boolean, str := 0, 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if v == "" {
				continue
			}
			if numericRe.MatchString(v) {
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
				continue
			}
			if lv := strings.ToLower(v); lv == "true" || lv == "false" {
				boolean++
				continue
			}
			str++
		}
		switch {
		case boolean > 0 && num == 0 && str == 0:
			kinds[c] = frame.KindBool
		case num > str && integer == num:
			kinds[c] = frame.KindInt
		case num > str:
			kinds[c] = frame.KindFloat
		default:
			kinds[c] = frame.KindString
		}
	}
	return kinds
}

func sniffDelimiter(path string) (rune, bool, error) {
	rc, err := iox.OpenMaybeCompressed(path)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = rc.Close() }()

	br := bufio.NewReader(rc)
	sample, _ := br.Peek(4096)
	if len(sample) == 0 {
		return ',', false, nil
	}
	best, bestCount := byte(','), -1
	for _, cand := range []byte{',', '\t', ';', '|'} {
		cnt := 0
		for _, b := range sample {
			if b == cand {
				cnt++
			}
		}
		if cnt > bestCount {
			bestCount, best = cnt, cand
		}
	}
	quotes := 0
	for _, b := range sample {
		if b == '"' {
			quotes++
		}
	}
	return rune(best), quotes > 0, nil
}
