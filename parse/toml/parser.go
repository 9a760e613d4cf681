package toml

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// maxNesting bounds how deeply arrays and inline tables may nest.
const maxNesting = 80

// ParseValue parses a single TOML value such as `{ a = 1, b.c = "x" }`.
// Surrounding whitespace is accepted and dropped. The result keeps the
// spelling and inner layout of the source but holds no spans.
func ParseValue(s string) (Value, error) {
	v, err := parseSpannedValue(s)
	if err != nil {
		return Value{}, err
	}
	v.Decor().Clear()
	v.Despan(s)
	return v, nil
}

// ParseKeyPath parses a dotted key such as `a."b.c".d` into its segments.
func ParseKeyPath(s string) ([]Key, error) {
	p := &parser{input: s}
	keys, err := p.keyPath()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errf("unexpected content after key")
	}
	for i := range keys {
		keys[i].Despan(s)
	}
	return keys, nil
}

// parseSpannedValue parses s, leaving every raw string as a span into s.
// The value's decor holds the whitespace around it.
func parseSpannedValue(s string) (Value, error) {
	p := &parser{input: s}
	prefixStart := p.pos
	if err := p.wsCommentNewline(); err != nil {
		return Value{}, err
	}
	valueStart := p.pos
	v, err := p.value()
	if err != nil {
		return Value{}, err
	}
	suffixStart := p.pos
	if err := p.wsCommentNewline(); err != nil {
		return Value{}, err
	}
	if !p.eof() {
		return Value{}, p.errf("unexpected content after value")
	}
	*v.Decor() = newSpannedDecor(spannedRaw(prefixStart, valueStart), spannedRaw(suffixStart, p.pos))
	return v, nil
}

// =========================
// Parser Implementation
// =========================

type parser struct {
	input string
	pos   int
	depth int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) peekIs(c byte) bool {
	return !p.eof() && p.input[p.pos] == c
}

func (p *parser) errf(format string, args ...any) error {
	return p.errAt(p.pos, format, args...)
}

func (p *parser) errAt(offset int, format string, args ...any) error {
	return newParseError(p.input, offset, fmt.Sprintf(format, args...))
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxNesting {
		return p.errf("nesting exceeds %d levels", maxNesting)
	}
	return nil
}

func (p *parser) leave() {
	p.depth--
}

// ws skips spaces and tabs.
func (p *parser) ws() {
	for !p.eof() && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

// wsCommentNewline skips whitespace, comments and newlines.
func (p *parser) wsCommentNewline() error {
	for {
		p.ws()
		switch {
		case p.peekIs('#'):
			if err := p.comment(); err != nil {
				return err
			}
		case p.peekIs('\n'):
			p.pos++
		case strings.HasPrefix(p.input[p.pos:], "\r\n"):
			p.pos += 2
		default:
			return nil
		}
	}
}

func (p *parser) comment() error {
	end := strings.IndexByte(p.input[p.pos:], '\n')
	if end < 0 {
		end = len(p.input) - p.pos
	}
	text := strings.TrimSuffix(p.input[p.pos:p.pos+end], "\r")
	for i := 0; i < len(text); i++ {
		if c := text[i]; (c < 0x20 && c != '\t') || c == 0x7f {
			return p.errAt(p.pos+i, "control character %#x in comment", c)
		}
	}
	p.pos += len(text)
	return nil
}

func (p *parser) value() (Value, error) {
	if p.eof() {
		return Value{}, p.errf("expected a value")
	}
	switch c := p.peek(); {
	case c == '"':
		return p.basicString()
	case c == '\'':
		return p.literalString()
	case c == '[':
		return p.array()
	case c == '{':
		return p.inlineTable()
	default:
		return p.bareValue()
	}
}

func spanned[T any](v T, start, end int) Value {
	f := NewFormatted(v)
	f.repr = &Repr{raw: spannedRaw(start, end)}
	return Value{v: f}
}

// =========================
// Strings
// =========================

func (p *parser) basicString() (Value, error) {
	start := p.pos
	if strings.HasPrefix(p.input[p.pos:], `"""`) {
		content, err := p.multilineBody('"')
		if err != nil {
			return Value{}, err
		}
		decoded, err := decodeBasicString(content, true)
		if err != nil {
			return Value{}, p.errAt(start, "%s", err)
		}
		return spanned(decoded, start, p.pos), nil
	}
	s, err := p.quotedLine('"')
	if err != nil {
		return Value{}, err
	}
	return spanned(s, start, p.pos), nil
}

func (p *parser) literalString() (Value, error) {
	start := p.pos
	if strings.HasPrefix(p.input[p.pos:], `'''`) {
		content, err := p.multilineBody('\'')
		if err != nil {
			return Value{}, err
		}
		return spanned(content, start, p.pos), nil
	}
	s, err := p.quotedLine('\'')
	if err != nil {
		return Value{}, err
	}
	return spanned(s, start, p.pos), nil
}

// quotedLine reads a single-line string delimited by quote and returns its
// decoded content. It serves both values and quoted keys.
func (p *parser) quotedLine(quote byte) (string, error) {
	start := p.pos
	p.pos++
	for i := p.pos; i < len(p.input); i++ {
		c := p.input[i]
		switch {
		case c == '\\' && quote == '"':
			i++
		case c == quote:
			raw := p.input[p.pos:i]
			p.pos = i + 1
			if quote == '\'' {
				if msg := validateLiteral(raw, false); msg != "" {
					return "", p.errAt(start, "%s", msg)
				}
				return raw, nil
			}
			s, err := decodeBasicString(raw, false)
			if err != nil {
				return "", p.errAt(start, "%s", err)
			}
			return s, nil
		case c == '\n':
			return "", p.errAt(i, "newline in single-line string")
		}
	}
	return "", p.errAt(start, "unterminated string")
}

// multilineBody reads a `"""` or `'''` string and returns the raw content
// with the newline right after the opening delimiter trimmed.
func (p *parser) multilineBody(quote byte) (string, error) {
	start := p.pos
	p.pos += 3
	bodyStart := p.pos
	for i := p.pos; i < len(p.input); i++ {
		c := p.input[i]
		if c == '\\' && quote == '"' {
			i++
			continue
		}
		if c != quote {
			continue
		}
		run := 0
		for i+run < len(p.input) && p.input[i+run] == quote {
			run++
		}
		if run < 3 {
			i += run - 1
			continue
		}
		// Up to two quotes may sit right before the closing delimiter.
		if run > 5 {
			return "", p.errAt(i, "too many quotes at end of multi-line string")
		}
		bodyEnd := i + run - 3
		p.pos = i + run
		body := p.input[bodyStart:bodyEnd]
		if strings.HasPrefix(body, "\r\n") {
			body = body[2:]
		} else if strings.HasPrefix(body, "\n") {
			body = body[1:]
		}
		if quote == '\'' {
			if msg := validateLiteral(body, true); msg != "" {
				return "", p.errAt(start, "%s", msg)
			}
		}
		return body, nil
	}
	return "", p.errAt(start, "unterminated multi-line string")
}

// =========================
// Scalars
// =========================

func isBareValueChar(c byte) bool {
	return isBareKeyChar(c) || c == '+' || c == '.' || c == ':'
}

// bareValue reads an unquoted token and decides between boolean, number
// and date-time.
func (p *parser) bareValue() (Value, error) {
	start := p.pos
	for !p.eof() && isBareValueChar(p.peek()) {
		p.pos++
	}
	// A date may be followed by a space and a time.
	if p.pos-start == 10 && looksLikeDate(p.input[start:p.pos]) && p.spaceThenTime() {
		p.pos++
		for !p.eof() && isBareValueChar(p.peek()) {
			p.pos++
		}
	}
	tok := p.input[start:p.pos]
	if tok == "" {
		return Value{}, p.errf("expected a value, found %q", p.peek())
	}
	switch {
	case tok == "true":
		return spanned(true, start, p.pos), nil
	case tok == "false":
		return spanned(false, start, p.pos), nil
	case looksLikeDate(tok) || looksLikeTime(tok):
		dt, err := ParseDatetime(tok)
		if err != nil {
			return Value{}, p.errAt(start, "invalid datetime %q: %s", tok, err)
		}
		return spanned(dt, start, p.pos), nil
	case isFloatToken(tok):
		f, err := parseFloatToken(tok)
		if err != nil {
			return Value{}, p.errAt(start, "invalid float %q: %s", tok, err)
		}
		return spanned(f, start, p.pos), nil
	default:
		i, err := parseIntToken(tok)
		if err != nil {
			return Value{}, p.errAt(start, "invalid value %q: %s", tok, err)
		}
		return spanned(i, start, p.pos), nil
	}
}

func (p *parser) spaceThenTime() bool {
	rest := p.input[p.pos:]
	return len(rest) >= 4 && rest[0] == ' ' && looksLikeTime(rest[1:])
}

func looksLikeDate(s string) bool {
	return len(s) >= 10 && isDigit(s[0]) && isDigit(s[1]) && isDigit(s[2]) && isDigit(s[3]) && s[4] == '-'
}

func looksLikeTime(s string) bool {
	return len(s) >= 3 && isDigit(s[0]) && isDigit(s[1]) && s[2] == ':'
}

// =========================
// Arrays
// =========================

func (p *parser) array() (Value, error) {
	start := p.pos
	p.pos++
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer p.leave()

	a := NewArray()
	for {
		prefixStart := p.pos
		if err := p.wsCommentNewline(); err != nil {
			return Value{}, err
		}
		if p.peekIs(']') {
			a.trailing = spannedRaw(prefixStart, p.pos)
			p.pos++
			break
		}
		valueStart := p.pos
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		suffixStart := p.pos
		if err := p.wsCommentNewline(); err != nil {
			return Value{}, err
		}
		*v.Decor() = newSpannedDecor(spannedRaw(prefixStart, valueStart), spannedRaw(suffixStart, p.pos))
		a.values = append(a.values, v)
		a.trailingComma = false
		if p.peekIs(',') {
			p.pos++
			a.trailingComma = true
			continue
		}
		if p.peekIs(']') {
			p.pos++
			break
		}
		if p.eof() {
			return Value{}, p.errAt(start, "unterminated array")
		}
		return Value{}, p.errf("expected `,` or `]` in array")
	}
	a.span = &Span{Start: start, End: p.pos}
	return ArrayValue(a), nil
}

// =========================
// Inline tables
// =========================

func (p *parser) inlineTable() (Value, error) {
	start := p.pos
	p.pos++
	if err := p.enter(); err != nil {
		return Value{}, err
	}
	defer p.leave()

	t := NewInlineTable()
	preambleStart := p.pos
	p.ws()
	if p.peekIs('}') {
		t.preamble = spannedRaw(preambleStart, p.pos)
		p.pos++
		t.span = &Span{Start: start, End: p.pos}
		return InlineTableValue(t), nil
	}
	p.pos = preambleStart

	for {
		pathStart := p.pos
		path, err := p.keyPath()
		if err != nil {
			return Value{}, err
		}
		if !p.peekIs('=') {
			return Value{}, p.errf("expected `=` after key")
		}
		p.pos++
		prefixStart := p.pos
		p.ws()
		valueStart := p.pos
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		suffixStart := p.pos
		p.ws()
		*v.Decor() = newSpannedDecor(spannedRaw(prefixStart, valueStart), spannedRaw(suffixStart, p.pos))
		if err := insertAtPath(t, path, v); err != nil {
			return Value{}, p.errAt(pathStart, "%s", err)
		}
		if p.peekIs(',') {
			p.pos++
			continue
		}
		if p.peekIs('}') {
			p.pos++
			break
		}
		if p.eof() {
			return Value{}, p.errAt(start, "unterminated inline table")
		}
		return Value{}, p.errf("expected `,` or `}` in inline table")
	}
	t.span = &Span{Start: start, End: p.pos}
	return InlineTableValue(t), nil
}

// keyPath reads `a . "b" . c`. The whitespace outside the whole path ends
// up in the leaf decor of the last key; whitespace around the dots stays in
// the dotted decor of each segment.
func (p *parser) keyPath() ([]Key, error) {
	var keys []Key
	for {
		prefixStart := p.pos
		p.ws()
		keyStart := p.pos
		name, err := p.simpleKey()
		if err != nil {
			return nil, err
		}
		keyEnd := p.pos
		p.ws()
		k := newKeyWithRepr(name, Repr{raw: spannedRaw(keyStart, keyEnd)})
		k.dottedDecor = newSpannedDecor(spannedRaw(prefixStart, keyStart), spannedRaw(keyEnd, p.pos))
		keys = append(keys, k)
		if !p.peekIs('.') {
			break
		}
		p.pos++
	}

	leaf := NewDecor("", "")
	first := &keys[0].dottedDecor
	if prefix, ok := first.Prefix(); ok {
		leaf.SetPrefix(prefix)
		first.SetPrefix(RawString{})
	}
	last := &keys[len(keys)-1]
	if suffix, ok := last.dottedDecor.Suffix(); ok {
		leaf.SetSuffix(suffix)
		last.dottedDecor.SetSuffix(RawString{})
	}
	last.leafDecor = leaf
	return keys, nil
}

func (p *parser) simpleKey() (string, error) {
	switch p.peek() {
	case '"':
		if strings.HasPrefix(p.input[p.pos:], `"""`) {
			return "", p.errf("multi-line strings are not allowed as keys")
		}
		return p.quotedLine('"')
	case '\'':
		if strings.HasPrefix(p.input[p.pos:], `'''`) {
			return "", p.errf("multi-line strings are not allowed as keys")
		}
		return p.quotedLine('\'')
	}
	start := p.pos
	for !p.eof() && isBareKeyChar(p.peek()) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errf("expected a key")
	}
	return p.input[start:p.pos], nil
}

// insertAtPath stores v under path, creating dotted tables for the leading
// segments.
func insertAtPath(root *InlineTable, path []Key, v Value) error {
	table := root
	for i := range path[:len(path)-1] {
		seg := &path[i]
		slot := table.EntryFormat(seg).OrInsertWith(func() Value {
			child := NewInlineTable()
			child.SetDotted(true)
			return InlineTableValue(child)
		})
		child, ok := slot.AsInlineTable()
		if !ok {
			return errors.Errorf("dotted key `%s` attempted to extend non-table type (%s)", joinKeys(path[:i+1]), slot.TypeName())
		}
		// A table written with braces is closed; dotted keys cannot add to it.
		if !child.IsDotted() {
			return errors.Errorf("duplicate key `%s`", joinKeys(path[:i+1]))
		}
		table = child
	}
	leaf := path[len(path)-1]
	if _, ok := table.items.get(leaf.key); ok {
		return errors.Errorf("duplicate key `%s`", joinKeys(path))
	}
	table.items.insert(leaf.key, newTableKeyValue(leaf, ValueItem(v)))
	return nil
}

func joinKeys(keys []Key) string {
	parts := make([]string, len(keys))
	for i := range keys {
		parts[i] = keyRepr(keys[i].key)
	}
	return strings.Join(parts, ".")
}
