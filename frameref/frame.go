// Package frameref is a reference codec.FrameCodec. spec.md keeps the real
// Arrow-IPC engine out of scope, so Frame stands in for it: an ordered set
// of named float64 or string columns, enough to exercise the
// SERIES-wraps-into-one-column-DATAFRAME relationship and the compression
// flag that spec.md §4.4 describes. Callers with a real Arrow binding wire
// their own codec.FrameCodec in its place.
package frameref

// ColumnKind discriminates a Column's payload.
type ColumnKind uint8

const (
	ColumnFloat64 ColumnKind = iota
	ColumnString
)

// Column is one named column of a Frame.
type Column struct {
	Name    string
	Kind    ColumnKind
	Floats  []float64 // valid when Kind == ColumnFloat64
	Strings []string  // valid when Kind == ColumnString
}

// Len returns the column's row count.
func (c Column) Len() int {
	if c.Kind == ColumnFloat64 {
		return len(c.Floats)
	}

	return len(c.Strings)
}

// Frame is an ordered set of equal-length columns.
type Frame struct {
	Columns []Column
}

// NewSeries wraps a single float64 column as a one-column Frame, mirroring
// spec.md §4.4's "SERIES is encoded by first wrapping the column in a
// single-column frame" rule.
func NewSeries(name string, values []float64) *Frame {
	return &Frame{Columns: []Column{{Name: name, Kind: ColumnFloat64, Floats: values}}}
}

// NewTextSeries is the string-column counterpart of NewSeries.
func NewTextSeries(name string, values []string) *Frame {
	return &Frame{Columns: []Column{{Name: name, Kind: ColumnString, Strings: values}}}
}

// SoleColumn returns the frame's only column, for decoding a SERIES back
// out of a one-column Frame. ok is false if f does not have exactly one
// column.
func (f *Frame) SoleColumn() (Column, bool) {
	if f == nil || len(f.Columns) != 1 {
		return Column{}, false
	}

	return f.Columns[0], true
}
