package toml

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Decor is the whitespace and comments surrounding a node. An unset prefix
// or suffix means "use the encoder default".
type Decor struct {
	prefix    RawString
	suffix    RawString
	hasPrefix bool
	hasSuffix bool
}

// NewDecor creates a Decor with both sides set.
func NewDecor(prefix, suffix string) Decor {
	return Decor{
		prefix:    RawStringFrom(prefix),
		suffix:    RawStringFrom(suffix),
		hasPrefix: true,
		hasSuffix: true,
	}
}

func newSpannedDecor(prefix, suffix RawString) Decor {
	return Decor{prefix: prefix, suffix: suffix, hasPrefix: true, hasSuffix: true}
}

// Prefix returns the text before the node, if any was set.
func (d *Decor) Prefix() (RawString, bool) {
	return d.prefix, d.hasPrefix
}

// Suffix returns the text after the node, if any was set.
func (d *Decor) Suffix() (RawString, bool) {
	return d.suffix, d.hasSuffix
}

func (d *Decor) SetPrefix(s RawString) {
	d.prefix = s
	d.hasPrefix = true
}

func (d *Decor) SetSuffix(s RawString) {
	d.suffix = s
	d.hasSuffix = true
}

// Clear drops both sides so the encoder falls back to its defaults.
func (d *Decor) Clear() {
	*d = Decor{}
}

// IsEmpty reports whether neither side is set.
func (d *Decor) IsEmpty() bool {
	return !d.hasPrefix && !d.hasSuffix
}

func (d *Decor) Despan(input string) {
	d.prefix.Despan(input)
	d.suffix.Despan(input)
}

func (d Decor) Equal(o Decor) bool {
	return d.hasPrefix == o.hasPrefix && d.hasSuffix == o.hasSuffix &&
		d.prefix.Equal(o.prefix) && d.suffix.Equal(o.suffix)
}

func (d Decor) String() string {
	return fmt.Sprintf("Decor{prefix: %q, suffix: %q}", d.prefix.String(), d.suffix.String())
}

func (d *Decor) prefixEncode(w io.Writer, input string, hasInput bool, def string) error {
	if d.hasPrefix {
		return d.prefix.encodeWithDefault(w, input, hasInput, def)
	}
	_, err := io.WriteString(w, def)
	return err
}

func (d *Decor) suffixEncode(w io.Writer, input string, hasInput bool, def string) error {
	if d.hasSuffix {
		return d.suffix.encodeWithDefault(w, input, hasInput, def)
	}
	_, err := io.WriteString(w, def)
	return err
}

// =========================
// Repr
// =========================

// Repr is the exact source spelling of a scalar or key, e.g. `0x1F` for 31.
type Repr struct {
	raw RawString
}

func NewRepr(raw string) Repr {
	return Repr{raw: RawStringFrom(raw)}
}

func (r *Repr) AsRaw() RawString {
	return r.raw
}

func (r *Repr) Span() (Span, bool) {
	return r.raw.Span()
}

func (r *Repr) Despan(input string) {
	r.raw.Despan(input)
}

// =========================
// Formatted
// =========================

// Formatted is a scalar value together with its source spelling and decor.
type Formatted[T any] struct {
	value T
	repr  *Repr
	decor Decor
}

// NewFormatted wraps v with no repr and no decor.
func NewFormatted[T any](v T) *Formatted[T] {
	return &Formatted[T]{value: v}
}

func (f *Formatted[T]) Value() T {
	return f.value
}

// AsRepr returns the spelling the value was parsed from, if any.
func (f *Formatted[T]) AsRepr() (*Repr, bool) {
	return f.repr, f.repr != nil
}

// DefaultRepr is the canonical spelling of the value.
func (f *Formatted[T]) DefaultRepr() Repr {
	return NewRepr(scalarRepr(f.value))
}

// DisplayRepr is the text the encoder emits for the value when no source
// is supplied.
func (f *Formatted[T]) DisplayRepr() string {
	if f.repr != nil {
		if s, ok := f.repr.raw.AsStr(); ok {
			return s
		}
	}
	s, _ := f.DefaultRepr().raw.AsStr()
	return s
}

func (f *Formatted[T]) Decor() *Decor {
	return &f.decor
}

// Fmt replaces the source spelling with the canonical one.
func (f *Formatted[T]) Fmt() {
	r := f.DefaultRepr()
	f.repr = &r
}

func (f *Formatted[T]) Span() (Span, bool) {
	if f.repr == nil {
		return Span{}, false
	}
	return f.repr.Span()
}

func (f *Formatted[T]) Despan(input string) {
	f.decor.Despan(input)
	if f.repr != nil {
		f.repr.Despan(input)
	}
}

func (f *Formatted[T]) clone() *Formatted[T] {
	c := &Formatted[T]{value: f.value, decor: f.decor}
	if f.repr != nil {
		r := *f.repr
		c.repr = &r
	}
	return c
}

func (f *Formatted[T]) encode(w io.Writer, input string, hasInput bool, def decorPair) error {
	if err := f.decor.prefixEncode(w, input, hasInput, def.prefix); err != nil {
		return err
	}
	if f.repr != nil {
		if err := f.repr.raw.encodeWithDefault(w, input, hasInput, scalarRepr(f.value)); err != nil {
			return err
		}
	} else if _, err := io.WriteString(w, scalarRepr(f.value)); err != nil {
		return err
	}
	return f.decor.suffixEncode(w, input, hasInput, def.suffix)
}

func scalarRepr(v any) string {
	switch x := v.(type) {
	case string:
		return quoteString(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatFloat(x)
	case bool:
		return strconv.FormatBool(x)
	case Datetime:
		return x.String()
	default:
		panic(fmt.Sprintf("toml: no repr for %T", v))
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		if math.Signbit(f) {
			return "-nan"
		}
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if s := strconv.FormatFloat(f, 'g', -1, 64); strings.Contains(s, "e") {
		return s
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// quoteString picks a literal string when it avoids escapes, otherwise a
// basic string.
func quoteString(s string) string {
	if s != "" && !strings.ContainsAny(s, "'\n\r\t") && strings.ContainsAny(s, "\"\\") && !hasControl(s) {
		return "'" + s + "'"
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func hasControl(s string) bool {
	for _, r := range s {
		if (r < 0x20 && r != '\t') || r == 0x7f {
			return true
		}
	}
	return false
}
