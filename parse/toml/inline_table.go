package toml

import (
	"iter"
	"slices"
	"strings"
)

// InlineTable is a `{ key = value, ... }` table that remembers how it was
// written. Keys keep their insertion order.
//
// A dotted InlineTable is not written with braces at all: it stands for the
// common prefix of dotted keys such as `a.b = 1, a.c = 2`.
//
// Slots may exist that hold no value; they are skipped by every
// value-oriented method and only show through TableLike.
//
// The zero value is an empty table ready to use.
type InlineTable struct {
	preamble RawString
	decor    Decor
	span     *Span
	dotted   bool
	items    indexMap
}

func NewInlineTable() *InlineTable {
	return &InlineTable{}
}

func inlineTableWithPairs(items indexMap) *InlineTable {
	return &InlineTable{items: items}
}

// IntoTable moves the items into a standard table and reformats them for
// that context. t is left empty.
func (t *InlineTable) IntoTable() *Table {
	tbl := tableWithPairs(t.items.take())
	tbl.Fmt()
	return tbl
}

// KeyPathValue is a leaf value and the keys leading to it.
type KeyPathValue struct {
	Path  []*Key
	Value *Value
}

// GetValues lists every leaf value with its full key path, looking through
// dotted child tables.
func (t *InlineTable) GetValues() []KeyPathValue {
	var values []KeyPathValue
	t.appendValues(nil, &values)
	return values
}

func (t *InlineTable) appendValues(parent []*Key, values *[]KeyPathValue) {
	for _, kv := range t.items.entries {
		v, ok := kv.value.AsValue()
		if !ok {
			continue
		}
		path := append(slices.Clip(parent), &kv.key)
		if child, ok := v.AsInlineTable(); ok && child.dotted {
			child.appendValues(path, values)
			continue
		}
		*values = append(*values, KeyPathValue{Path: path, Value: v})
	}
}

// Fmt drops the decor of every key and value, giving the canonical
// `{ a = 1, b = 2 }` layout.
func (t *InlineTable) Fmt() {
	for _, kv := range t.items.entries {
		v, ok := kv.value.AsValue()
		if !ok {
			continue
		}
		kv.key.leafDecor.Clear()
		kv.key.dottedDecor.Clear()
		v.Decor().Clear()
	}
}

// SortValues sorts the slots by key, descending into dotted children.
func (t *InlineTable) SortValues() {
	t.items.sortStableFunc(func(a, b *TableKeyValue) int {
		return strings.Compare(a.key.key, b.key.key)
	})
	for _, kv := range t.items.entries {
		if child, ok := dottedChild(&kv.value); ok {
			child.SortValues()
		}
	}
}

// SortValuesBy sorts the slots with cmp, descending into dotted children.
// Slots without a value go last, keep their relative order, and are never
// passed to cmp.
func (t *InlineTable) SortValuesBy(cmp func(k1 *Key, v1 *Value, k2 *Key, v2 *Value) int) {
	t.items.sortStableFunc(func(a, b *TableKeyValue) int {
		v1, ok1 := a.value.AsValue()
		v2, ok2 := b.value.AsValue()
		switch {
		case ok1 && ok2:
			return cmp(&a.key, v1, &b.key, v2)
		case ok1:
			return -1
		case ok2:
			return 1
		default:
			return 0
		}
	})
	for _, kv := range t.items.entries {
		if child, ok := dottedChild(&kv.value); ok {
			child.SortValuesBy(cmp)
		}
	}
}

func dottedChild(item *Item) (*InlineTable, bool) {
	v, ok := item.AsValue()
	if !ok {
		return nil, false
	}
	child, ok := v.AsInlineTable()
	if !ok || !child.dotted {
		return nil, false
	}
	return child, true
}

// SetDotted marks the table as standing for dotted keys rather than braces.
func (t *InlineTable) SetDotted(yes bool) {
	t.dotted = yes
}

func (t *InlineTable) IsDotted() bool {
	return t.dotted
}

// Iter yields each key and value in order. Mutating the table's structure
// while iterating is not allowed.
func (t *InlineTable) Iter() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		for _, kv := range t.items.entries {
			v, ok := kv.value.AsValue()
			if !ok {
				continue
			}
			if !yield(kv.key.key, v) {
				return
			}
		}
	}
}

// IterMut is Iter with a handle for editing each key's formatting.
func (t *InlineTable) IterMut() iter.Seq2[KeyMut, *Value] {
	return func(yield func(KeyMut, *Value) bool) {
		for _, kv := range t.items.entries {
			v, ok := kv.value.AsValue()
			if !ok {
				continue
			}
			if !yield(KeyMut{key: &kv.key}, v) {
				return
			}
		}
	}
}

// Drain empties the table and yields the values it held.
func (t *InlineTable) Drain() iter.Seq2[string, Value] {
	items := t.items.take()
	return func(yield func(string, Value) bool) {
		for _, kv := range items.entries {
			if !kv.value.IsValue() {
				continue
			}
			if !yield(kv.key.key, kv.value.value) {
				return
			}
		}
	}
}

// Len counts the slots holding a value.
func (t *InlineTable) Len() int {
	n := 0
	for _, kv := range t.items.entries {
		if kv.value.IsValue() {
			n++
		}
	}
	return n
}

func (t *InlineTable) IsEmpty() bool {
	return t.Len() == 0
}

// Clear removes every slot.
func (t *InlineTable) Clear() {
	t.items.clear()
}

// Entry looks up key for in-place manipulation. A slot that exists without
// a value is turned into an empty inline table first.
func (t *InlineTable) Entry(key string) InlineEntry {
	if kv, ok := t.items.get(key); ok {
		if !kv.value.IsValue() {
			kv.value.coerceValue()
		}
		return &InlineOccupiedEntry{table: t, kv: kv}
	}
	return &InlineVacantEntry{table: t, key: key}
}

// EntryFormat is Entry, but a vacant entry inserts key with its formatting.
func (t *InlineTable) EntryFormat(key *Key) InlineEntry {
	if kv, ok := t.items.get(key.key); ok {
		if !kv.value.IsValue() {
			kv.value.coerceValue()
		}
		return &InlineOccupiedEntry{table: t, kv: kv}
	}
	k := key.Clone()
	return &InlineVacantEntry{table: t, key: key.key, formatted: &k}
}

// Get returns the value at key. The pointer may be used to edit it.
func (t *InlineTable) Get(key string) (*Value, bool) {
	kv, ok := t.items.get(key)
	if !ok {
		return nil, false
	}
	return kv.value.AsValue()
}

// GetKeyValue returns the key as written and its slot. Unlike Get it
// reports slots holding a standard table.
func (t *InlineTable) GetKeyValue(key string) (*Key, *Item, bool) {
	kv, ok := t.items.get(key)
	if !ok || kv.value.IsNone() {
		return nil, nil, false
	}
	return &kv.key, &kv.value, true
}

// Key returns the key as written.
func (t *InlineTable) Key(key string) (*Key, bool) {
	kv, ok := t.items.get(key)
	if !ok {
		return nil, false
	}
	return &kv.key, true
}

func (t *InlineTable) ContainsKey(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// GetOrInsert returns the value at key, inserting value if the key is
// absent.
func (t *InlineTable) GetOrInsert(key string, value Value) *Value {
	kv, ok := t.items.get(key)
	if !ok {
		kv = newTableKeyValue(NewKey(key), ValueItem(value))
		t.items.insert(key, kv)
	}
	v, ok := kv.value.AsValue()
	if !ok {
		panic("non-value type in inline table")
	}
	return v
}

// Insert sets key to value. An existing key keeps its position but loses
// its formatting; the previous value is returned. The table takes
// ownership of value, and the zero Value panics.
func (t *InlineTable) Insert(key string, value Value) (Value, bool) {
	old, ok := t.items.insert(key, newTableKeyValue(NewKey(key), ValueItem(value)))
	if !ok || !old.value.IsValue() {
		return Value{}, false
	}
	return old.value.value, true
}

// InsertFormatted is Insert with a key that carries its own formatting.
func (t *InlineTable) InsertFormatted(key *Key, value Value) (Value, bool) {
	old, ok := t.items.insert(key.key, newTableKeyValue(key.Clone(), ValueItem(value)))
	if !ok || !old.value.IsValue() {
		return Value{}, false
	}
	return old.value.value, true
}

// Remove deletes key, keeping the order of the other keys.
func (t *InlineTable) Remove(key string) (Value, bool) {
	old, ok := t.items.shiftRemove(key)
	if !ok || !old.value.IsValue() {
		return Value{}, false
	}
	return old.value.value, true
}

// RemoveEntry is Remove that also hands back the key as written.
func (t *InlineTable) RemoveEntry(key string) (Key, Value, bool) {
	old, ok := t.items.shiftRemove(key)
	if !ok || !old.value.IsValue() {
		return Key{}, Value{}, false
	}
	return old.key, old.value.value, true
}

// Extend inserts every pair in order; later duplicates win.
func (t *InlineTable) Extend(seq iter.Seq2[string, Value]) {
	for k, v := range seq {
		t.items.insert(k, newTableKeyValue(NewKey(k), ValueItem(v)))
	}
}

// Preamble is the whitespace after `{` in an empty table.
func (t *InlineTable) Preamble() RawString {
	return t.preamble
}

func (t *InlineTable) SetPreamble(s RawString) {
	t.preamble = s
}

// Decor is the whitespace around the braces.
func (t *InlineTable) Decor() *Decor {
	return &t.decor
}

// KeyDecor returns the leaf decor of key.
func (t *InlineTable) KeyDecor(key string) (*Decor, bool) {
	kv, ok := t.items.get(key)
	if !ok {
		return nil, false
	}
	return &kv.key.leafDecor, true
}

func (t *InlineTable) Span() (Span, bool) {
	if t.span == nil {
		return Span{}, false
	}
	return *t.span, true
}

func (t *InlineTable) Despan(input string) {
	t.span = nil
	t.decor.Despan(input)
	t.preamble.Despan(input)
	for _, kv := range t.items.entries {
		kv.key.Despan(input)
		kv.value.Despan(input)
	}
}

// Clone returns a deep copy.
func (t *InlineTable) Clone() *InlineTable {
	c := &InlineTable{
		preamble: t.preamble,
		decor:    t.decor,
		dotted:   t.dotted,
		items:    t.items.clone(),
	}
	if t.span != nil {
		sp := *t.span
		c.span = &sp
	}
	return c
}

func (t *InlineTable) String() string {
	var b strings.Builder
	if err := NewEncoder().EncodeInlineTable(&b, t); err != nil {
		return ""
	}
	return b.String()
}

func (t *InlineTable) kind() Kind { return KindInlineTable }

func (t *InlineTable) cloneVariant() variant { return t.Clone() }
