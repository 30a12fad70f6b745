package parquetio

import (
	"encoding/json"
	"fmt"
	"time"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	"github.com/LFKoning/stringtransform/pkg/frame"
)

// parquetSchemaJSON builds the JSON schema the parquet-go JSONWriter expects.
func parquetSchemaJSON(s frame.Schema) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case frame.KindFloat:
			tag += "DOUBLE"
		case frame.KindInt:
			tag += "INT64"
		case frame.KindBool:
			tag += "BOOLEAN"
		default:
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes a Frame to a Parquet file. Null cells are written as
// missing optional values.
func WriteAll(path string, f *frame.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(f.Schema()), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() { _ = writer.WriteStop(); _ = fw.Close() }()

	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(f.Schema().Columns))
		for _, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			switch cs.Type {
			case frame.KindFloat:
				if v, ok := col.(*frame.FloatColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case frame.KindInt:
				if v, ok := col.(*frame.IntColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case frame.KindBool:
				if v, ok := col.(*frame.BoolColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case frame.KindString:
				if v, ok := col.(*frame.StringColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case frame.KindTime:
				if v, ok := col.(*frame.TimeColumn).Get(r); ok {
					rec[cs.Name] = v.Format(time.RFC3339)
				}
			}
		}
		// JSONWriter consumes JSON-encoded rows
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("parquet encode row %d: %w", r, err)
		}
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row %d: %w", r, err)
		}
	}
	return nil
}
