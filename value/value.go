// Package value defines the tagged-union Value type exchanged between J
// processes: a single sum type with one variant per wire.Kind, dispatched
// by discriminant rather than by subclass identity.
package value

import (
	"time"

	"github.com/arloliu/jwire/wire"
)

// Value is an immutable, tagged datum. The zero Value is a Null.
//
// Encode/decode never mutate a Value; once constructed (by the evaluator or
// by Decode), a Value is discarded after it is consumed.
type Value struct {
	kind  wire.Kind
	i     int64  // Int, Date (as int32 range), Time, Duration, Datetime (ms), Timestamp (ns)
	f     float64
	b     bool
	s     string // String, Cat, Err, Fn text; tz name for Datetime/Timestamp
	list  []Value
	dict  *Dict
	frame any // opaque frame payload for Series/Dataframe, owned by the caller's frame codec
}

// Kind returns the value's wire discriminator.
func (v Value) Kind() wire.Kind { return v.kind }

// NewNull returns the NULL value.
func NewNull() Value { return Value{kind: wire.Null} }

// NewBool returns a BOOLEAN value.
func NewBool(b bool) Value { return Value{kind: wire.Boolean, b: b} }

// NewInt returns an INT value.
func NewInt(i int64) Value { return Value{kind: wire.Int, i: i} }

// NewDate returns a DATE value from a day count since 1970-01-01.
func NewDate(days int32) Value { return Value{kind: wire.Date, i: int64(days)} }

// NewDateFromTime returns a DATE value for t's calendar day, in UTC.
func NewDateFromTime(t time.Time) Value {
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	days := t.UTC().Truncate(24 * time.Hour).Sub(epoch) / (24 * time.Hour)

	return NewDate(int32(days))
}

// NewTime returns a TIME value from nanoseconds since midnight.
func NewTime(nanosSinceMidnight int64) Value {
	return Value{kind: wire.Time, i: nanosSinceMidnight}
}

// NewDuration returns a DURATION value from a nanosecond count.
func NewDuration(ns int64) Value { return Value{kind: wire.Duration, i: ns} }

// NewDatetime returns a DATETIME value from milliseconds since epoch and an
// IANA timezone name (empty string for none).
func NewDatetime(millis int64, tz string) Value {
	return Value{kind: wire.Datetime, i: millis, s: tz}
}

// NewTimestamp returns a TIMESTAMP value from nanoseconds since epoch and an
// IANA timezone name (empty string for none).
func NewTimestamp(nanos int64, tz string) Value {
	return Value{kind: wire.Timestamp, i: nanos, s: tz}
}

// NewFloat returns a FLOAT value.
func NewFloat(f float64) Value { return Value{kind: wire.Float, f: f} }

// NewString returns a STRING value.
func NewString(s string) Value { return Value{kind: wire.String, s: s} }

// NewCat returns a CAT value: a STRING payload semantically tagged as a
// category label. CAT is a distinct Kind, not merely a label on STRING, so
// it round-trips with its own wire code.
func NewCat(s string) Value { return Value{kind: wire.Cat, s: s} }

// NewErr returns an ERR value carrying a UTF-8 diagnostic.
func NewErr(msg string) Value { return Value{kind: wire.Err, s: msg} }

// NewFn returns an FN value: an opaque textual reference to engine state.
// Only the text round-trips; restoring a callable is outside this package.
func NewFn(body string) Value { return Value{kind: wire.Fn, s: body} }

// NewList returns a LIST value wrapping an ordered, heterogeneous sequence
// of elements. The slice is retained, not copied; callers should not mutate
// it afterward.
func NewList(elems []Value) Value { return Value{kind: wire.List, list: elems} }

// NewDictValue returns a DICT value wrapping an insertion-ordered mapping.
func NewDictValue(d *Dict) Value {
	if d == nil {
		d = NewDict()
	}

	return Value{kind: wire.Dict, dict: d}
}

// NewSeries returns a SERIES value wrapping a single-column frame. frame is
// an opaque payload understood by the configured codec.FrameCodec.
func NewSeries(frame any) Value { return Value{kind: wire.Series, frame: frame} }

// NewDataFrame returns a DATAFRAME value wrapping a multi-column frame.
// frame is an opaque payload understood by the configured codec.FrameCodec.
func NewDataFrame(frame any) Value { return Value{kind: wire.Dataframe, frame: frame} }

// Bool returns the BOOLEAN payload and whether v is a BOOLEAN.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == wire.Boolean }

// Int returns the INT payload and whether v is an INT.
func (v Value) Int() (int64, bool) { return v.i, v.kind == wire.Int }

// Date returns the DATE day count and whether v is a DATE.
func (v Value) Date() (int32, bool) { return int32(v.i), v.kind == wire.Date }

// Time returns the TIME nanoseconds-since-midnight payload and whether v is
// a TIME.
func (v Value) Time() (int64, bool) { return v.i, v.kind == wire.Time }

// Duration returns the DURATION nanosecond payload and whether v is a
// DURATION.
func (v Value) Duration() (int64, bool) { return v.i, v.kind == wire.Duration }

// Datetime returns the DATETIME milliseconds-since-epoch and timezone name,
// and whether v is a DATETIME.
func (v Value) Datetime() (int64, string, bool) {
	return v.i, v.s, v.kind == wire.Datetime
}

// Timestamp returns the TIMESTAMP nanoseconds-since-epoch and timezone
// name, and whether v is a TIMESTAMP.
func (v Value) Timestamp() (int64, string, bool) {
	return v.i, v.s, v.kind == wire.Timestamp
}

// Float returns the FLOAT payload and whether v is a FLOAT.
func (v Value) Float() (float64, bool) { return v.f, v.kind == wire.Float }

// String returns the STRING text and whether v is a STRING.
func (v Value) String() (string, bool) { return v.s, v.kind == wire.String }

// Cat returns the CAT text and whether v is a CAT.
func (v Value) Cat() (string, bool) { return v.s, v.kind == wire.Cat }

// Err returns the ERR diagnostic text and whether v is an ERR.
func (v Value) Err() (string, bool) { return v.s, v.kind == wire.Err }

// Fn returns the FN body text and whether v is an FN.
func (v Value) Fn() (string, bool) { return v.s, v.kind == wire.Fn }

// List returns the LIST elements and whether v is a LIST. The returned
// slice must not be mutated.
func (v Value) List() ([]Value, bool) { return v.list, v.kind == wire.List }

// DictValue returns the DICT contents and whether v is a DICT.
func (v Value) DictValue() (*Dict, bool) { return v.dict, v.kind == wire.Dict }

// Frame returns the opaque frame payload and whether v is a SERIES or
// DATAFRAME.
func (v Value) Frame() (any, bool) {
	return v.frame, v.kind == wire.Series || v.kind == wire.Dataframe
}

// IsNull reports whether v is the NULL value.
func (v Value) IsNull() bool { return v.kind == wire.Null }
