package csvio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/LFKoning/stringtransform/pkg/frame"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestInferAndRead(t *testing.T) {
	p := writeTemp(t, "labels.csv", "id,label\n1, One \n2, Two \n3,\n")
	r, f, err := Open(p, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	schema, names, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	if len(schema.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(schema.Columns))
	}
	if names[1] != "label" {
		t.Fatalf("expected label column, got %q", names[1])
	}
	if schema.Columns[0].Type != frame.KindInt {
		t.Fatalf("expected int kind for id, got %v", schema.Columns[0].Type)
	}
	if schema.Columns[1].Type != frame.KindString {
		t.Fatalf("expected string kind for label, got %v", schema.Columns[1].Type)
	}

	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Rows() != 3 {
		t.Fatalf("expected 3 rows, got %d", fr.Rows())
	}
	col, _ := fr.Strings("label")
	if v, _ := col.Get(0); v != "One" {
		t.Fatalf("expected trimmed cell, got %q", v)
	}
	if !col.IsNull(2) {
		t.Fatal("empty cell should be null")
	}
}

func TestSniffedDelimiter(t *testing.T) {
	p := writeTemp(t, "semi.csv", "a;b\n1;x\n2;y\n")
	r, f, err := Open(p, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	schema, names, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "a" {
		t.Fatalf("delimiter sniffing failed, names = %v", names)
	}
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", fr.Rows())
	}
}

func TestInferBoolColumn(t *testing.T) {
	p := writeTemp(t, "flags.csv", "id,flag\n1,true\n2,false\n3,True\n")
	r, f, err := Open(p, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	schema, _, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	if schema.Columns[1].Type != frame.KindBool {
		t.Fatalf("expected bool kind for flag, got %v", schema.Columns[1].Type)
	}
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	col, _ := fr.ColumnByName("flag")
	v, ok := col.(*frame.BoolColumn).Get(1)
	if !ok || v {
		t.Fatalf("expected false at row 1, got %v (null=%v)", v, !ok)
	}
}

func TestOpenStdin(t *testing.T) {
	p := writeTemp(t, "stdin.csv", "a,b\n1,x\n2,y\n")
	in, err := os.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = in.Close() }()
	old := os.Stdin
	os.Stdin = in
	defer func() { os.Stdin = old }()

	r, rc, err := Open("-", ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = rc.Close() }()

	schema, names, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "a" {
		t.Fatalf("unexpected header from stdin: %v", names)
	}
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	// nothing may be consumed by delimiter sniffing
	if fr.Rows() != 2 {
		t.Fatalf("expected 2 rows from stdin, got %d", fr.Rows())
	}
}

func TestRoundTrip(t *testing.T) {
	s := frame.Schema{Columns: []frame.ColumnSchema{
		{Name: "n", Type: frame.KindInt, Nullable: true},
		{Name: "s", Type: frame.KindString, Nullable: true},
	}}
	f := frame.New(s)
	f.AppendNullRow()
	_ = f.SetCell(0, "n", int64(7))
	_ = f.SetCell(0, "s", "seven")

	p := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteAll(p, f, WriterOptions{}); err != nil {
		t.Fatal(err)
	}

	r, file, err := Open(p, ReaderOptions{HasHeader: true})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = file.Close() }()
	schema, _, err := r.InferSchema()
	if err != nil {
		t.Fatal(err)
	}
	fr, err := r.ReadAll(schema)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Rows() != 1 {
		t.Fatalf("expected 1 row, got %d", fr.Rows())
	}
	col, _ := fr.Strings("s")
	if v, _ := col.Get(0); v != "seven" {
		t.Fatalf("round trip mismatch, got %q", v)
	}
}
