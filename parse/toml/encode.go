package toml

import (
	"io"
)

// DecorPair is the default prefix and suffix used for a node whose own
// decor leaves that side unset.
type DecorPair struct {
	Prefix string
	Suffix string
}

type decorPair struct{ prefix, suffix string }

func (p DecorPair) internal() decorPair {
	return decorPair{prefix: p.Prefix, suffix: p.Suffix}
}

// DecorDefaults is the layout the encoder applies to undecorated nodes.
type DecorDefaults struct {
	// Value is used for values after `=` and for array elements after the
	// first.
	Value DecorPair
	// TrailingValue is used for the last value of an inline table.
	TrailingValue DecorPair
	// LeadingValue is used for the first array element.
	LeadingValue DecorPair
	// InlineKey surrounds key paths inside inline tables.
	InlineKey DecorPair
	// KeyPath surrounds the dots between segments of a dotted key.
	KeyPath DecorPair
	// TableKey surrounds key paths in standard table bodies.
	TableKey DecorPair
}

// DefaultDecorDefaults gives `{ a = 1, b = [1, 2] }` for fresh values.
func DefaultDecorDefaults() DecorDefaults {
	return DecorDefaults{
		Value:         DecorPair{Prefix: " ", Suffix: ""},
		TrailingValue: DecorPair{Prefix: " ", Suffix: " "},
		LeadingValue:  DecorPair{Prefix: "", Suffix: ""},
		InlineKey:     DecorPair{Prefix: " ", Suffix: " "},
		KeyPath:       DecorPair{Prefix: "", Suffix: ""},
		TableKey:      DecorPair{Prefix: "", Suffix: " "},
	}
}

// Encoder renders values and tables back to TOML text.
type Encoder struct {
	input    string
	hasInput bool
	defaults DecorDefaults
}

type EncodeOption func(*Encoder)

// WithSource supplies the text the nodes were parsed from, so that
// formatting still held as spans is read from it.
func WithSource(input string) EncodeOption {
	return func(e *Encoder) {
		e.input = input
		e.hasInput = true
	}
}

func WithDefaults(d DecorDefaults) EncodeOption {
	return func(e *Encoder) { e.defaults = d }
}

func NewEncoder(opts ...EncodeOption) *Encoder {
	e := &Encoder{defaults: DefaultDecorDefaults()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EncodeValue writes v with no surrounding default decor.
func (e *Encoder) EncodeValue(w io.Writer, v *Value) error {
	return e.encodeValue(w, v, decorPair{})
}

func (e *Encoder) EncodeInlineTable(w io.Writer, t *InlineTable) error {
	return e.encodeInlineTable(w, t, decorPair{})
}

// EncodeTable writes the body of a standard table followed by a section for
// each child table.
func (e *Encoder) EncodeTable(w io.Writer, t *Table) error {
	tw := &tableWriter{e: e, w: w}
	return tw.table(t, nil)
}

func (e *Encoder) encodeValue(w io.Writer, v *Value, def decorPair) error {
	switch x := v.mustVariant().(type) {
	case *Formatted[string]:
		return x.encode(w, e.input, e.hasInput, def)
	case *Formatted[int64]:
		return x.encode(w, e.input, e.hasInput, def)
	case *Formatted[float64]:
		return x.encode(w, e.input, e.hasInput, def)
	case *Formatted[bool]:
		return x.encode(w, e.input, e.hasInput, def)
	case *Formatted[Datetime]:
		return x.encode(w, e.input, e.hasInput, def)
	case *Array:
		return e.encodeArray(w, x, def)
	case *InlineTable:
		return e.encodeInlineTable(w, x, def)
	}
	panic("toml: unknown value variant")
}

func (e *Encoder) encodeArray(w io.Writer, a *Array, def decorPair) error {
	if err := a.decor.prefixEncode(w, e.input, e.hasInput, def.prefix); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i := range a.values {
		inner := e.defaults.LeadingValue.internal()
		if i != 0 {
			inner = e.defaults.Value.internal()
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if err := e.encodeValue(w, &a.values[i], inner); err != nil {
			return err
		}
	}
	if a.trailingComma && len(a.values) > 0 {
		if _, err := io.WriteString(w, ","); err != nil {
			return err
		}
	}
	if err := a.trailing.encodeWithDefault(w, e.input, e.hasInput, ""); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "]"); err != nil {
		return err
	}
	return a.decor.suffixEncode(w, e.input, e.hasInput, def.suffix)
}

func (e *Encoder) encodeInlineTable(w io.Writer, t *InlineTable, def decorPair) error {
	if err := t.decor.prefixEncode(w, e.input, e.hasInput, def.prefix); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}
	if err := t.preamble.encodeWithDefault(w, e.input, e.hasInput, ""); err != nil {
		return err
	}
	children := t.GetValues()
	for i, child := range children {
		if i != 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		inner := e.defaults.Value.internal()
		if i == len(children)-1 {
			inner = e.defaults.TrailingValue.internal()
		}
		if err := e.encodeKeyPath(w, child.Path, e.defaults.InlineKey.internal()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "="); err != nil {
			return err
		}
		if err := e.encodeValue(w, child.Value, inner); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "}"); err != nil {
		return err
	}
	return t.decor.suffixEncode(w, e.input, e.hasInput, def.suffix)
}

// encodeKeyPath writes `a.b.c`. The leaf decor of the last key wraps the
// whole path; dotted decor wraps the segments around each dot.
func (e *Encoder) encodeKeyPath(w io.Writer, path []*Key, def decorPair) error {
	leaf := &path[len(path)-1].leafDecor
	keyPath := e.defaults.KeyPath.internal()
	for i, key := range path {
		first := i == 0
		last := i == len(path)-1
		if first {
			if err := leaf.prefixEncode(w, e.input, e.hasInput, def.prefix); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, "."); err != nil {
				return err
			}
			if err := key.dottedDecor.prefixEncode(w, e.input, e.hasInput, keyPath.prefix); err != nil {
				return err
			}
		}
		if err := key.encode(w, e.input, e.hasInput); err != nil {
			return err
		}
		if last {
			if err := leaf.suffixEncode(w, e.input, e.hasInput, def.suffix); err != nil {
				return err
			}
		} else if err := key.dottedDecor.suffixEncode(w, e.input, e.hasInput, keyPath.suffix); err != nil {
			return err
		}
	}
	return nil
}

// =========================
// Standard tables
// =========================

type tableWriter struct {
	e     *Encoder
	w     io.Writer
	wrote bool
}

func (tw *tableWriter) table(t *Table, path []*Key) error {
	values := t.GetValues()
	if len(path) > 0 && !(t.implicit && len(values) == 0) {
		if err := tw.header(t, path); err != nil {
			return err
		}
	}
	for _, kv := range values {
		if err := tw.e.encodeKeyPath(tw.w, kv.Path, tw.e.defaults.TableKey.internal()); err != nil {
			return err
		}
		if _, err := io.WriteString(tw.w, "="); err != nil {
			return err
		}
		if err := tw.e.encodeValue(tw.w, kv.Value, tw.e.defaults.Value.internal()); err != nil {
			return err
		}
		if _, err := io.WriteString(tw.w, "\n"); err != nil {
			return err
		}
		tw.wrote = true
	}
	return tw.subtables(t, path)
}

func (tw *tableWriter) subtables(t *Table, path []*Key) error {
	for _, kv := range t.items.entries {
		child, ok := kv.value.AsTable()
		if !ok {
			continue
		}
		childPath := append(path[:len(path):len(path)], &kv.key)
		if child.dotted {
			if err := tw.subtables(child, childPath); err != nil {
				return err
			}
			continue
		}
		if err := tw.table(child, childPath); err != nil {
			return err
		}
	}
	return nil
}

func (tw *tableWriter) header(t *Table, path []*Key) error {
	e := tw.e
	def := ""
	if tw.wrote {
		def = "\n"
	}
	if err := t.decor.prefixEncode(tw.w, e.input, e.hasInput, def); err != nil {
		return err
	}
	if _, err := io.WriteString(tw.w, "["); err != nil {
		return err
	}
	for i, key := range path {
		if i != 0 {
			if _, err := io.WriteString(tw.w, "."); err != nil {
				return err
			}
		}
		if err := key.encode(tw.w, e.input, e.hasInput); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(tw.w, "]"); err != nil {
		return err
	}
	if err := t.decor.suffixEncode(tw.w, e.input, e.hasInput, ""); err != nil {
		return err
	}
	_, err := io.WriteString(tw.w, "\n")
	tw.wrote = true
	return err
}
