package toml

import (
	"iter"
	"strings"
)

// Table is a standard `[header]` table. It shares the slot layout of
// InlineTable so the two convert into each other without copying.
type Table struct {
	decor    Decor
	implicit bool
	dotted   bool
	span     *Span
	items    indexMap
}

func NewTable() *Table {
	return &Table{}
}

func tableWithPairs(items indexMap) *Table {
	return &Table{items: items}
}

// IntoInlineTable moves the items into an inline table, converting nested
// standard tables, and reformats them for that context. t is left empty.
func (t *Table) IntoInlineTable() *InlineTable {
	for _, kv := range t.items.entries {
		kv.value.makeValue()
	}
	it := inlineTableWithPairs(t.items.take())
	it.Fmt()
	return it
}

func (t *Table) GetValues() []KeyPathValue {
	var values []KeyPathValue
	t.appendValues(nil, &values)
	return values
}

func (t *Table) appendValues(parent []*Key, values *[]KeyPathValue) {
	for _, kv := range t.items.entries {
		path := append(parent[:len(parent):len(parent)], &kv.key)
		switch kv.value.kind {
		case itemTable:
			if kv.value.table.dotted {
				kv.value.table.appendValues(path, values)
			}
		case itemValue:
			v := &kv.value.value
			if child, ok := v.AsInlineTable(); ok && child.dotted {
				child.appendValues(path, values)
				continue
			}
			*values = append(*values, KeyPathValue{Path: path, Value: v})
		}
	}
}

// Fmt drops the decor of every key and value.
func (t *Table) Fmt() {
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

func (t *Table) SortValues() {
	t.items.sortStableFunc(func(a, b *TableKeyValue) int {
		return strings.Compare(a.key.key, b.key.key)
	})
	for _, kv := range t.items.entries {
		if child, ok := kv.value.AsTable(); ok && child.dotted {
			child.SortValues()
		}
	}
}

// SortValuesBy sorts the value slots with cmp. Other slots go last.
func (t *Table) SortValuesBy(cmp func(k1 *Key, v1 *Value, k2 *Key, v2 *Value) int) {
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
		if child, ok := kv.value.AsTable(); ok && child.dotted {
			child.SortValuesBy(cmp)
		}
	}
}

func (t *Table) SetDotted(yes bool) {
	t.dotted = yes
}

func (t *Table) IsDotted() bool {
	return t.dotted
}

// SetImplicit marks a table that only exists as the parent of others and
// gets no header of its own.
func (t *Table) SetImplicit(yes bool) {
	t.implicit = yes
}

func (t *Table) IsImplicit() bool {
	return t.implicit
}

// Iter yields every occupied slot in order.
func (t *Table) Iter() iter.Seq2[string, *Item] {
	return func(yield func(string, *Item) bool) {
		for k, kv := range t.items.all() {
			if kv.value.IsNone() {
				continue
			}
			if !yield(k, &kv.value) {
				return
			}
		}
	}
}

func (t *Table) IterMut() iter.Seq2[KeyMut, *Item] {
	return func(yield func(KeyMut, *Item) bool) {
		for _, kv := range t.items.all() {
			if kv.value.IsNone() {
				continue
			}
			if !yield(KeyMut{key: &kv.key}, &kv.value) {
				return
			}
		}
	}
}

// Len counts the occupied slots.
func (t *Table) Len() int {
	n := 0
	for _, kv := range t.items.entries {
		if !kv.value.IsNone() {
			n++
		}
	}
	return n
}

func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

func (t *Table) Clear() {
	t.items.clear()
}

func (t *Table) Entry(key string) Entry {
	if kv, ok := t.items.get(key); ok {
		return &OccupiedEntry{items: &t.items, kv: kv}
	}
	return &VacantEntry{items: &t.items, key: key}
}

func (t *Table) EntryFormat(key *Key) Entry {
	if kv, ok := t.items.get(key.key); ok {
		return &OccupiedEntry{items: &t.items, kv: kv}
	}
	k := key.Clone()
	return &VacantEntry{items: &t.items, key: key.key, formatted: &k}
}

func (t *Table) Get(key string) (*Item, bool) {
	kv, ok := t.items.get(key)
	if !ok || kv.value.IsNone() {
		return nil, false
	}
	return &kv.value, true
}

func (t *Table) GetKeyValue(key string) (*Key, *Item, bool) {
	kv, ok := t.items.get(key)
	if !ok || kv.value.IsNone() {
		return nil, nil, false
	}
	return &kv.key, &kv.value, true
}

func (t *Table) ContainsKey(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Insert sets key to item, returning the previous item.
func (t *Table) Insert(key string, item Item) (Item, bool) {
	old, ok := t.items.insert(key, newTableKeyValue(NewKey(key), item))
	if !ok {
		return Item{}, false
	}
	return old.value, true
}

func (t *Table) InsertFormatted(key *Key, item Item) (Item, bool) {
	old, ok := t.items.insert(key.key, newTableKeyValue(key.Clone(), item))
	if !ok {
		return Item{}, false
	}
	return old.value, true
}

func (t *Table) Remove(key string) (Item, bool) {
	old, ok := t.items.shiftRemove(key)
	if !ok {
		return Item{}, false
	}
	return old.value, true
}

func (t *Table) RemoveEntry(key string) (Key, Item, bool) {
	old, ok := t.items.shiftRemove(key)
	if !ok {
		return Key{}, Item{}, false
	}
	return old.key, old.value, true
}

// Decor is the decor around the table header.
func (t *Table) Decor() *Decor {
	return &t.decor
}

func (t *Table) KeyDecor(key string) (*Decor, bool) {
	kv, ok := t.items.get(key)
	if !ok {
		return nil, false
	}
	return &kv.key.leafDecor, true
}

func (t *Table) Span() (Span, bool) {
	if t.span == nil {
		return Span{}, false
	}
	return *t.span, true
}

func (t *Table) Despan(input string) {
	t.span = nil
	t.decor.Despan(input)
	for _, kv := range t.items.entries {
		kv.key.Despan(input)
		kv.value.Despan(input)
	}
}

func (t *Table) Clone() *Table {
	c := &Table{
		decor:    t.decor,
		implicit: t.implicit,
		dotted:   t.dotted,
		items:    t.items.clone(),
	}
	if t.span != nil {
		sp := *t.span
		c.span = &sp
	}
	return c
}

// String renders the table body: its key/value lines followed by a
// `[header]` section for each child table.
func (t *Table) String() string {
	var b strings.Builder
	if err := NewEncoder().EncodeTable(&b, t); err != nil {
		return ""
	}
	return b.String()
}
