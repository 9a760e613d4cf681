package toml

import (
	"fmt"
	"io"
	"strings"
)

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

type rawKind uint8

const (
	rawEmpty rawKind = iota
	rawExplicit
	rawSpanned
)

// RawString is a piece of source text kept verbatim: whitespace, comments,
// or the literal spelling of a scalar. While a document is being parsed it
// only points into the source; Despan copies the text out.
type RawString struct {
	kind rawKind
	text string
	span Span
}

// RawStringFrom wraps explicit text.
func RawStringFrom(s string) RawString {
	if s == "" {
		return RawString{}
	}
	return RawString{kind: rawExplicit, text: s}
}

func spannedRaw(start, end int) RawString {
	return RawString{kind: rawSpanned, span: Span{Start: start, End: end}}
}

// AsStr returns the text. It reports false while the string is still a
// span into unowned source.
func (r RawString) AsStr() (string, bool) {
	switch r.kind {
	case rawEmpty:
		return "", true
	case rawExplicit:
		return r.text, true
	default:
		return "", false
	}
}

// Span returns the source range, if the string has not been despanned.
func (r RawString) Span() (Span, bool) {
	if r.kind != rawSpanned {
		return Span{}, false
	}
	return r.span, true
}

// Despan resolves a span against input. It must be the text the span was
// computed from.
func (r *RawString) Despan(input string) {
	if r.kind != rawSpanned {
		return
	}
	text := input[r.span.Start:r.span.End]
	*r = RawStringFrom(text)
}

// Equal compares the resolved text; two spans compare by range.
func (r RawString) Equal(o RawString) bool {
	if r.kind == rawSpanned || o.kind == rawSpanned {
		return r.kind == o.kind && r.span == o.span
	}
	a, _ := r.AsStr()
	b, _ := o.AsStr()
	return a == b
}

func (r RawString) String() string {
	if s, ok := r.AsStr(); ok {
		return s
	}
	return r.span.String()
}

func (r RawString) toStrWithDefault(input string, hasInput bool, def string) string {
	switch r.kind {
	case rawEmpty:
		return ""
	case rawExplicit:
		return r.text
	default:
		if !hasInput {
			return def
		}
		if r.span.End > len(input) || r.span.Start > r.span.End {
			panic(fmt.Sprintf("span %s should be in input:\n```\n%s\n```", r.span, input))
		}
		return input[r.span.Start:r.span.End]
	}
}

func (r RawString) encodeWithDefault(w io.Writer, input string, hasInput bool, def string) error {
	raw := r.toStrWithDefault(input, hasInput, def)
	for _, part := range strings.Split(raw, "\r") {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}
