package toml

import (
	"iter"
	"slices"
	"strings"
)

// Array is a `[ ... ]` value that remembers how it was written.
type Array struct {
	trailing      RawString
	trailingComma bool
	decor         Decor
	span          *Span
	values        []Value
}

func NewArray() *Array {
	return &Array{}
}

func (a *Array) Len() int {
	return len(a.values)
}

func (a *Array) IsEmpty() bool {
	return len(a.values) == 0
}

// Get returns the value at index i.
func (a *Array) Get(i int) (*Value, bool) {
	if i < 0 || i >= len(a.values) {
		return nil, false
	}
	return &a.values[i], true
}

func (a *Array) Iter() iter.Seq2[int, *Value] {
	return func(yield func(int, *Value) bool) {
		for i := range a.values {
			if !yield(i, &a.values[i]) {
				return
			}
		}
	}
}

// Push appends v with default formatting.
func (a *Array) Push(v Value) {
	v.Decor().Clear()
	a.values = append(a.values, v)
}

// PushFormatted appends v keeping its decor.
func (a *Array) PushFormatted(v Value) {
	v.mustVariant()
	a.values = append(a.values, v)
}

// Insert places v at index i, shifting later values.
func (a *Array) Insert(i int, v Value) {
	v.Decor().Clear()
	a.values = slices.Insert(a.values, i, v)
}

// Replace swaps the value at index i, keeping the old decor.
func (a *Array) Replace(i int, v Value) Value {
	old := a.values[i]
	*v.Decor() = *old.Decor()
	a.values[i] = v
	return old
}

// Remove deletes the value at index i.
func (a *Array) Remove(i int) Value {
	old := a.values[i]
	a.values = slices.Delete(a.values, i, i+1)
	return old
}

func (a *Array) Clear() {
	a.values = nil
}

// Fmt drops the decor of every element and the trailing whitespace.
func (a *Array) Fmt() {
	for i := range a.values {
		a.values[i].Decor().Clear()
	}
	a.trailing = RawString{}
	a.trailingComma = false
}

// Trailing is the whitespace and comments before `]`.
func (a *Array) Trailing() RawString {
	return a.trailing
}

func (a *Array) SetTrailing(s RawString) {
	a.trailing = s
}

func (a *Array) TrailingComma() bool {
	return a.trailingComma
}

func (a *Array) SetTrailingComma(yes bool) {
	a.trailingComma = yes
}

func (a *Array) Decor() *Decor {
	return &a.decor
}

func (a *Array) Span() (Span, bool) {
	if a.span == nil {
		return Span{}, false
	}
	return *a.span, true
}

func (a *Array) Despan(input string) {
	a.span = nil
	a.decor.Despan(input)
	a.trailing.Despan(input)
	for i := range a.values {
		a.values[i].Despan(input)
	}
}

func (a *Array) Clone() *Array {
	c := &Array{
		trailing:      a.trailing,
		trailingComma: a.trailingComma,
		decor:         a.decor,
		values:        make([]Value, len(a.values)),
	}
	if a.span != nil {
		sp := *a.span
		c.span = &sp
	}
	for i, v := range a.values {
		c.values[i] = v.Clone()
	}
	return c
}

func (a *Array) String() string {
	var b strings.Builder
	v := ArrayValue(a)
	if err := NewEncoder().EncodeValue(&b, &v); err != nil {
		return ""
	}
	return b.String()
}

func (a *Array) kind() Kind { return KindArray }

func (a *Array) cloneVariant() variant { return a.Clone() }
