// Package golearn converts frames to and from golearn DenseInstances, so
// datasets can be cleaned here and then fed to golearn models.
package golearn

import (
	"strconv"
	"time"

	"github.com/sjwhitworth/golearn/base"

	"github.com/LFKoning/stringtransform/pkg/frame"
)

// ToInstances converts a Frame into golearn DenseInstances. Numeric columns
// become float attributes, everything else categorical. The last column is
// registered as the class attribute, matching golearn's CSV loader habit.
func ToInstances(f *frame.Frame) (*base.DenseInstances, error) {
	attrs := make([]base.Attribute, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		switch cs.Type {
		case frame.KindFloat, frame.KindInt:
			attrs[i] = base.NewFloatAttribute(cs.Name)
		default:
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		}
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < f.Rows(); r++ {
		for c, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			switch cs.Type {
			case frame.KindFloat:
				if v, ok := col.(*frame.FloatColumn).Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(v))
				}
			case frame.KindInt:
				if v, ok := col.(*frame.IntColumn).Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(float64(v)))
				}
			default:
				if v, ok := categoricalValue(col, r); ok {
					inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], v))
				}
			}
		}
	}

	if len(attrs) > 0 {
		if err := inst.AddClassAttribute(attrs[len(attrs)-1]); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// categoricalValue renders a non-numeric cell as the string fed to its
// categorical attribute. Bool and time columns map to categorical attributes
// too, so they need a string form here.
func categoricalValue(col frame.Column, r int) (string, bool) {
	switch c := col.(type) {
	case *frame.StringColumn:
		return c.Get(r)
	case *frame.BoolColumn:
		if v, ok := c.Get(r); ok {
			return strconv.FormatBool(v), true
		}
	case *frame.TimeColumn:
		if v, ok := c.Get(r); ok {
			return v.Format(time.RFC3339), true
		}
	}
	return "", false
}

// FromInstances converts golearn DenseInstances back into a Frame. Float
// attributes map to float columns, everything else to string columns.
func FromInstances(inst *base.DenseInstances) (*frame.Frame, error) {
	attrs := inst.AllAttributes()
	schema := frame.Schema{Columns: make([]frame.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		kind := frame.KindString
		if a.GetType() == base.Float64Type {
			kind = frame.KindFloat
		}
		schema.Columns[i] = frame.ColumnSchema{Name: a.GetName(), Type: kind, Nullable: true}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}

	f := frame.New(schema)
	_, nrows := inst.Size()
	for r := 0; r < nrows; r++ {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			switch cs.Type {
			case frame.KindFloat:
				v := base.UnpackBytesToFloat(inst.Get(specs[c], r))
				_ = f.SetCell(r, cs.Name, v)
			default:
				v := base.Attribute.GetStringFromSysVal(specs[c].GetAttribute(), inst.Get(specs[c], r))
				_ = f.SetCell(r, cs.Name, v)
			}
		}
	}
	return f, nil
}
