package toml

import (
	"io"
)

// Key is a table key along with how it was written.
//
// The leaf decor surrounds the key where it names a value; the dotted decor
// surrounds it where it is one segment of a dotted path (`a . b = 1`).
type Key struct {
	key         string
	repr        *Repr
	leafDecor   Decor
	dottedDecor Decor
}

func NewKey(s string) Key {
	return Key{key: s}
}

func newKeyWithRepr(s string, repr Repr) Key {
	return Key{key: s, repr: &repr}
}

// Get returns the key text, unquoted and unescaped.
func (k *Key) Get() string {
	return k.key
}

// AsRepr returns the spelling the key was parsed from, if any.
func (k *Key) AsRepr() (*Repr, bool) {
	return k.repr, k.repr != nil
}

// DefaultRepr is the bare spelling when the key allows it, quoted otherwise.
func (k *Key) DefaultRepr() Repr {
	return NewRepr(keyRepr(k.key))
}

// DisplayRepr is the text emitted for the key when no source is supplied.
func (k *Key) DisplayRepr() string {
	if k.repr != nil {
		if s, ok := k.repr.raw.AsStr(); ok {
			return s
		}
	}
	return keyRepr(k.key)
}

func (k *Key) LeafDecor() *Decor {
	return &k.leafDecor
}

func (k *Key) DottedDecor() *Decor {
	return &k.dottedDecor
}

// Fmt drops the source spelling and decor.
func (k *Key) Fmt() {
	k.repr = nil
	k.leafDecor.Clear()
	k.dottedDecor.Clear()
}

func (k *Key) Span() (Span, bool) {
	if k.repr == nil {
		return Span{}, false
	}
	return k.repr.Span()
}

func (k *Key) Despan(input string) {
	k.leafDecor.Despan(input)
	k.dottedDecor.Despan(input)
	if k.repr != nil {
		k.repr.Despan(input)
	}
}

// Clone returns an independent copy.
func (k Key) Clone() Key {
	if k.repr != nil {
		r := *k.repr
		k.repr = &r
	}
	return k
}

// Equal compares key text only; formatting is ignored.
func (k Key) Equal(o Key) bool {
	return k.key == o.key
}

func (k Key) String() string {
	return k.DisplayRepr()
}

func (k *Key) encode(w io.Writer, input string, hasInput bool) error {
	if k.repr != nil {
		return k.repr.raw.encodeWithDefault(w, input, hasInput, keyRepr(k.key))
	}
	_, err := io.WriteString(w, keyRepr(k.key))
	return err
}

func keyRepr(s string) string {
	if isBareKey(s) {
		return s
	}
	return quoteString(s)
}

func isBareKey(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isBareKeyChar(s[i]) {
			return false
		}
	}
	return true
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

// KeyMut is a handle for editing a key's formatting in place. The key text
// itself is fixed because the owning table indexes by it.
type KeyMut struct {
	key *Key
}

func (k KeyMut) Get() string {
	return k.key.key
}

func (k KeyMut) LeafDecor() *Decor {
	return &k.key.leafDecor
}

func (k KeyMut) DottedDecor() *Decor {
	return &k.key.dottedDecor
}

func (k KeyMut) Fmt() {
	k.key.Fmt()
}

func (k KeyMut) String() string {
	return k.key.String()
}
