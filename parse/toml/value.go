package toml

import (
	"iter"
	"strings"
)

// Kind identifies which of the seven TOML value types a Value holds.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInteger
	KindFloat
	KindBoolean
	KindDatetime
	KindArray
	KindInlineTable
)

var kindNames = map[Kind]string{
	KindString:      "string",
	KindInteger:     "integer",
	KindFloat:       "float",
	KindBoolean:     "boolean",
	KindDatetime:    "datetime",
	KindArray:       "array",
	KindInlineTable: "inline table",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "none"
}

// variant is implemented by exactly the seven value representations:
// *Formatted[string|int64|float64|bool|Datetime], *Array and *InlineTable.
type variant interface {
	Decor() *Decor
	Span() (Span, bool)
	Despan(input string)
	kind() Kind
	cloneVariant() variant
}

func (f *Formatted[T]) kind() Kind {
	switch any(f.value).(type) {
	case string:
		return KindString
	case int64:
		return KindInteger
	case float64:
		return KindFloat
	case bool:
		return KindBoolean
	case Datetime:
		return KindDatetime
	}
	panic("toml: unsupported formatted type")
}

func (f *Formatted[T]) cloneVariant() variant { return f.clone() }

// Value is a TOML value of any type, owning its children.
//
// The zero Value holds nothing and is not a valid TOML value; build values
// with the constructors below or ParseValue. Copying a Value shares its
// underlying node: use Clone for an independent copy. Storing a Value in a
// table or array hands the node over, so store a Clone to keep using it.
type Value struct {
	v variant
}

func StringValue(s string) Value {
	return Value{v: NewFormatted(s)}
}

func IntegerValue(i int64) Value {
	return Value{v: NewFormatted(i)}
}

func FloatValue(f float64) Value {
	return Value{v: NewFormatted(f)}
}

func BoolValue(b bool) Value {
	return Value{v: NewFormatted(b)}
}

func DatetimeValue(dt Datetime) Value {
	return Value{v: NewFormatted(dt)}
}

func DateValue(d Date) Value {
	return DatetimeValue(Datetime{Date: &d})
}

func TimeValue(t Time) Value {
	return DatetimeValue(Datetime{Time: &t})
}

func ArrayValue(a *Array) Value {
	return Value{v: a}
}

func InlineTableValue(t *InlineTable) Value {
	return Value{v: t}
}

// CollectArray builds an array value from a sequence of values.
func CollectArray(seq iter.Seq[Value]) Value {
	a := NewArray()
	for v := range seq {
		a.Push(v)
	}
	return ArrayValue(a)
}

// CollectInlineTable builds an inline table value from key/value pairs.
// Later duplicates overwrite earlier ones.
func CollectInlineTable(seq iter.Seq2[string, Value]) Value {
	t := NewInlineTable()
	t.Extend(seq)
	return InlineTableValue(t)
}

func (v Value) Kind() Kind {
	if v.v == nil {
		return 0
	}
	return v.v.kind()
}

// TypeName is the TOML name of the value's type.
func (v Value) TypeName() string {
	return v.Kind().String()
}

func (v Value) AsStr() (string, bool) {
	if f, ok := v.v.(*Formatted[string]); ok {
		return f.value, true
	}
	return "", false
}

func (v Value) AsInteger() (int64, bool) {
	if f, ok := v.v.(*Formatted[int64]); ok {
		return f.value, true
	}
	return 0, false
}

func (v Value) AsFloat() (float64, bool) {
	if f, ok := v.v.(*Formatted[float64]); ok {
		return f.value, true
	}
	return 0, false
}

func (v Value) AsBool() (bool, bool) {
	if f, ok := v.v.(*Formatted[bool]); ok {
		return f.value, true
	}
	return false, false
}

func (v Value) AsDatetime() (Datetime, bool) {
	if f, ok := v.v.(*Formatted[Datetime]); ok {
		return f.value, true
	}
	return Datetime{}, false
}

func (v Value) AsArray() (*Array, bool) {
	a, ok := v.v.(*Array)
	return a, ok
}

func (v Value) AsInlineTable() (*InlineTable, bool) {
	t, ok := v.v.(*InlineTable)
	return t, ok
}

func (v Value) IsStr() bool {
	_, ok := v.AsStr()
	return ok
}

func (v Value) IsInteger() bool {
	_, ok := v.AsInteger()
	return ok
}

func (v Value) IsFloat() bool {
	_, ok := v.AsFloat()
	return ok
}

func (v Value) IsBool() bool {
	_, ok := v.AsBool()
	return ok
}

func (v Value) IsDatetime() bool {
	_, ok := v.AsDatetime()
	return ok
}

func (v Value) IsArray() bool {
	_, ok := v.AsArray()
	return ok
}

func (v Value) IsInlineTable() bool {
	_, ok := v.AsInlineTable()
	return ok
}

// FormattedStr exposes the string together with its repr and decor.
func (v Value) FormattedStr() (*Formatted[string], bool) {
	f, ok := v.v.(*Formatted[string])
	return f, ok
}

func (v Value) FormattedInteger() (*Formatted[int64], bool) {
	f, ok := v.v.(*Formatted[int64])
	return f, ok
}

func (v Value) FormattedFloat() (*Formatted[float64], bool) {
	f, ok := v.v.(*Formatted[float64])
	return f, ok
}

func (v Value) FormattedBool() (*Formatted[bool], bool) {
	f, ok := v.v.(*Formatted[bool])
	return f, ok
}

func (v Value) FormattedDatetime() (*Formatted[Datetime], bool) {
	f, ok := v.v.(*Formatted[Datetime])
	return f, ok
}

// Decor returns the decor of the value itself; for arrays and inline
// tables that is the decor around the brackets.
func (v *Value) Decor() *Decor {
	return v.mustVariant().Decor()
}

// Decorate replaces the decor with prefix and suffix.
func (v *Value) Decorate(prefix, suffix string) {
	*v.Decor() = NewDecor(prefix, suffix)
}

// Decorated returns a copy of v carrying the given decor; v is unchanged.
func (v Value) Decorated(prefix, suffix string) Value {
	c := v.Clone()
	c.Decorate(prefix, suffix)
	return c
}

// Span is the source range the value was parsed from. It is unset for
// values built in code and after Despan.
func (v Value) Span() (Span, bool) {
	if v.v == nil {
		return Span{}, false
	}
	return v.v.Span()
}

// Despan resolves every span in the value tree against input.
func (v *Value) Despan(input string) {
	if v.v != nil {
		v.v.Despan(input)
	}
}

func (v Value) Clone() Value {
	if v.v == nil {
		return v
	}
	return Value{v: v.v.cloneVariant()}
}

func (v Value) String() string {
	var b strings.Builder
	if err := NewEncoder().EncodeValue(&b, &v); err != nil {
		return ""
	}
	return b.String()
}

func (v Value) mustVariant() variant {
	if v.v == nil {
		panic("toml: use of zero Value")
	}
	return v.v
}
