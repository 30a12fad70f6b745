package frame

import (
	"fmt"
	"time"
)

// Kind enumerates supported logical column types.
type Kind int

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	default:
		return "invalid"
	}
}

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Column is the untyped view shared by all column kinds.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
	AppendNull()
}

// Col is a typed, nullable column. The concrete column types below are
// aliases of its instantiations.
type Col[T any] struct {
	name  string
	kind  Kind
	data  []T
	nulls []bool
}

type (
	BoolColumn   = Col[bool]
	IntColumn    = Col[int64]
	FloatColumn  = Col[float64]
	StringColumn = Col[string]
	TimeColumn   = Col[time.Time]
)

func newCol[T any](name string, kind Kind, n int) *Col[T] {
	return &Col[T]{name: name, kind: kind, data: make([]T, n), nulls: make([]bool, n)}
}

func NewBoolColumn(name string, n int) *BoolColumn     { return newCol[bool](name, KindBool, n) }
func NewIntColumn(name string, n int) *IntColumn       { return newCol[int64](name, KindInt, n) }
func NewFloatColumn(name string, n int) *FloatColumn   { return newCol[float64](name, KindFloat, n) }
func NewStringColumn(name string, n int) *StringColumn { return newCol[string](name, KindString, n) }
func NewTimeColumn(name string, n int) *TimeColumn     { return newCol[time.Time](name, KindTime, n) }

func (c *Col[T]) Name() string      { return c.name }
func (c *Col[T]) Kind() Kind        { return c.kind }
func (c *Col[T]) Len() int          { return len(c.data) }
func (c *Col[T]) IsNull(i int) bool { return c.nulls[i] }

func (c *Col[T]) SetNull(i int) {
	var zero T
	c.data[i] = zero
	c.nulls[i] = true
}

// Get returns the value at i and whether it is non-null.
func (c *Col[T]) Get(i int) (T, bool) { return c.data[i], !c.nulls[i] }

func (c *Col[T]) Set(i int, v T) {
	c.data[i] = v
	c.nulls[i] = false
}

func (c *Col[T]) Append(v T) {
	c.data = append(c.data, v)
	c.nulls = append(c.nulls, false)
}

func (c *Col[T]) AppendNull() {
	var zero T
	c.data = append(c.data, zero)
	c.nulls = append(c.nulls, true)
}

// Frame is a columnar container for tabular data.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func New(s Schema) *Frame {
	f := &Frame{schema: s, cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		switch cs.Type {
		case KindBool:
			f.cols[i] = NewBoolColumn(cs.Name, 0)
		case KindInt:
			f.cols[i] = NewIntColumn(cs.Name, 0)
		case KindFloat:
			f.cols[i] = NewFloatColumn(cs.Name, 0)
		case KindString:
			f.cols[i] = NewStringColumn(cs.Name, 0)
		case KindTime:
			f.cols[i] = NewTimeColumn(cs.Name, 0)
		default:
			panic("frame: invalid column kind")
		}
		f.index[cs.Name] = i
	}
	return f
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Strings returns the named column if it holds string data.
func (f *Frame) Strings(name string) (*StringColumn, bool) {
	col, ok := f.ColumnByName(name)
	if !ok {
		return nil, false
	}
	sc, ok := col.(*StringColumn)
	return sc, ok
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		c.AppendNull()
	}
	f.nrows++
}

// SetCell sets a single cell value by column name (row must exist). Numeric
// values are coerced to the column's kind; nil sets the cell to null.
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	c := f.cols[i]
	if v == nil {
		c.SetNull(row)
		return nil
	}
	switch col := c.(type) {
	case *BoolColumn:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("column %s expects bool", name)
		}
		col.Set(row, b)
	case *IntColumn:
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		case float64:
			col.Set(row, int64(t))
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *FloatColumn:
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *StringColumn:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	case *TimeColumn:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("column %s expects time.Time", name)
		}
		col.Set(row, t)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}
