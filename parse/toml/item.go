package toml

import (
	"iter"
	"slices"
)

type itemKind uint8

const (
	itemNone itemKind = iota
	itemValue
	itemTable
)

// Item is whatever occupies a table slot: a value, a standard table, or
// nothing. The zero Item is the empty slot.
type Item struct {
	kind  itemKind
	value Value
	table *Table
}

// ValueItem wraps v. It panics on the zero Value.
func ValueItem(v Value) Item {
	v.mustVariant()
	return Item{kind: itemValue, value: v}
}

func TableItem(t *Table) Item {
	return Item{kind: itemTable, table: t}
}

func (i *Item) IsNone() bool { return i.kind == itemNone }
func (i *Item) IsValue() bool { return i.kind == itemValue }
func (i *Item) IsTable() bool { return i.kind == itemTable }

// AsValue returns a pointer to the held value for reading or editing.
func (i *Item) AsValue() (*Value, bool) {
	if i.kind != itemValue {
		return nil, false
	}
	return &i.value, true
}

func (i *Item) AsTable() (*Table, bool) {
	if i.kind != itemTable {
		return nil, false
	}
	return i.table, true
}

// IntoValue converts the item into a value; a standard table becomes an
// inline table. It reports false for an empty slot.
func (i Item) IntoValue() (Value, bool) {
	switch i.kind {
	case itemValue:
		return i.value, true
	case itemTable:
		return InlineTableValue(i.table.IntoInlineTable()), true
	default:
		return Value{}, false
	}
}

// makeValue converts a standard table slot into an inline table value.
// An empty slot stays empty.
func (i *Item) makeValue() {
	if v, ok := i.IntoValue(); ok {
		*i = ValueItem(v)
	}
}

// coerceValue is makeValue that also turns an empty slot into an empty
// inline table, so the slot is guaranteed to hold a value afterwards.
func (i *Item) coerceValue() {
	v, ok := i.IntoValue()
	if !ok {
		v = InlineTableValue(NewInlineTable())
	}
	*i = ValueItem(v)
}

func (i *Item) TypeName() string {
	switch i.kind {
	case itemValue:
		return i.value.TypeName()
	case itemTable:
		return "table"
	default:
		return "none"
	}
}

func (i *Item) Despan(input string) {
	switch i.kind {
	case itemValue:
		i.value.Despan(input)
	case itemTable:
		i.table.Despan(input)
	}
}

func (i Item) Clone() Item {
	switch i.kind {
	case itemValue:
		return ValueItem(i.value.Clone())
	case itemTable:
		return TableItem(i.table.Clone())
	default:
		return Item{}
	}
}

// TableKeyValue is one slot of a table: the key as written and its item.
type TableKeyValue struct {
	key   Key
	value Item
}

func newTableKeyValue(key Key, value Item) *TableKeyValue {
	return &TableKeyValue{key: key, value: value}
}

func (kv *TableKeyValue) Key() *Key {
	return &kv.key
}

func (kv *TableKeyValue) Item() *Item {
	return &kv.value
}

// =========================
// Ordered slots
// =========================

// indexMap keeps slots in insertion order with O(1) lookup by key text.
// The zero value is an empty map.
type indexMap struct {
	index   map[string]int
	entries []*TableKeyValue
}

func (m *indexMap) len() int {
	return len(m.entries)
}

func (m *indexMap) get(key string) (*TableKeyValue, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.entries[i], true
}

// insert stores kv under key. An existing slot is replaced in place and
// returned; a new one goes to the end.
func (m *indexMap) insert(key string, kv *TableKeyValue) (*TableKeyValue, bool) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		old := m.entries[i]
		m.entries[i] = kv
		return old, true
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, kv)
	return nil, false
}

// shiftRemove removes key, keeping the order of the remaining slots.
func (m *indexMap) shiftRemove(key string) (*TableKeyValue, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	old := m.entries[i]
	m.entries = slices.Delete(m.entries, i, i+1)
	delete(m.index, key)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].key.key] = j
	}
	return old, true
}

func (m *indexMap) clear() {
	clear(m.index)
	m.entries = nil
}

func (m *indexMap) sortStableFunc(cmp func(a, b *TableKeyValue) int) {
	slices.SortStableFunc(m.entries, cmp)
	m.reindex()
}

func (m *indexMap) reindex() {
	if m.index == nil {
		m.index = make(map[string]int, len(m.entries))
	}
	for i, kv := range m.entries {
		m.index[kv.key.key] = i
	}
}

func (m *indexMap) all() iter.Seq2[string, *TableKeyValue] {
	return func(yield func(string, *TableKeyValue) bool) {
		for _, kv := range m.entries {
			if !yield(kv.key.key, kv) {
				return
			}
		}
	}
}

func (m *indexMap) clone() indexMap {
	c := indexMap{entries: make([]*TableKeyValue, len(m.entries))}
	for i, kv := range m.entries {
		c.entries[i] = newTableKeyValue(kv.key.Clone(), kv.value.Clone())
	}
	c.reindex()
	return c
}

// take moves the slots out, leaving m empty.
func (m *indexMap) take() indexMap {
	out := *m
	*m = indexMap{}
	return out
}
