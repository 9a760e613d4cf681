package toml

import "iter"

// TableLike is the common ground of Table and InlineTable.
//
// Its Item-level methods see every occupied slot, while InlineTable's own
// Iter/Get only see slots holding a value.
type TableLike interface {
	IterItems() iter.Seq2[string, *Item]
	IterItemsMut() iter.Seq2[KeyMut, *Item]
	Len() int
	IsEmpty() bool
	Clear()
	ItemEntry(key string) Entry
	ItemEntryFormat(key *Key) Entry
	GetItem(key string) (*Item, bool)
	GetKeyItem(key string) (*Key, *Item, bool)
	ContainsKey(key string) bool
	InsertItem(key string, item Item) (Item, bool)
	RemoveItem(key string) (Item, bool)
	GetValues() []KeyPathValue
	Fmt()
	SortValues()
	SetDotted(yes bool)
	IsDotted() bool
	KeyDecor(key string) (*Decor, bool)
}

var (
	_ TableLike = (*Table)(nil)
	_ TableLike = (*InlineTable)(nil)
)

// =========================
// Table
// =========================

func (t *Table) IterItems() iter.Seq2[string, *Item] { return t.Iter() }
func (t *Table) IterItemsMut() iter.Seq2[KeyMut, *Item] { return t.IterMut() }
func (t *Table) ItemEntry(key string) Entry { return t.Entry(key) }
func (t *Table) ItemEntryFormat(key *Key) Entry { return t.EntryFormat(key) }
func (t *Table) GetItem(key string) (*Item, bool) { return t.Get(key) }
func (t *Table) GetKeyItem(key string) (*Key, *Item, bool) { return t.GetKeyValue(key) }
func (t *Table) InsertItem(key string, item Item) (Item, bool) { return t.Insert(key, item) }
func (t *Table) RemoveItem(key string) (Item, bool) { return t.Remove(key) }

// =========================
// InlineTable
// =========================

func (t *InlineTable) IterItems() iter.Seq2[string, *Item] {
	return func(yield func(string, *Item) bool) {
		for k, kv := range t.items.all() {
			if !yield(k, &kv.value) {
				return
			}
		}
	}
}

func (t *InlineTable) IterItemsMut() iter.Seq2[KeyMut, *Item] {
	return func(yield func(KeyMut, *Item) bool) {
		for _, kv := range t.items.all() {
			if !yield(KeyMut{key: &kv.key}, &kv.value) {
				return
			}
		}
	}
}

// ItemEntry is Entry at the Item level. An existing slot is coerced into a
// value first, as with Entry.
func (t *InlineTable) ItemEntry(key string) Entry {
	if kv, ok := t.items.get(key); ok {
		kv.value.coerceValue()
		return &OccupiedEntry{items: &t.items, kv: kv}
	}
	return &VacantEntry{items: &t.items, key: key}
}

func (t *InlineTable) ItemEntryFormat(key *Key) Entry {
	if kv, ok := t.items.get(key.key); ok {
		kv.value.coerceValue()
		return &OccupiedEntry{items: &t.items, kv: kv}
	}
	k := key.Clone()
	return &VacantEntry{items: &t.items, key: key.key, formatted: &k}
}

// GetItem returns the slot at key whatever it holds.
func (t *InlineTable) GetItem(key string) (*Item, bool) {
	kv, ok := t.items.get(key)
	if !ok {
		return nil, false
	}
	return &kv.value, true
}

func (t *InlineTable) GetKeyItem(key string) (*Key, *Item, bool) {
	return t.GetKeyValue(key)
}

// InsertItem inserts a value item. Inline tables cannot hold anything else,
// so any other item panics.
func (t *InlineTable) InsertItem(key string, item Item) (Item, bool) {
	v, ok := item.AsValue()
	if !ok {
		panic("toml: inline table can only hold values, got " + item.TypeName())
	}
	old, ok := t.Insert(key, *v)
	if !ok {
		return Item{}, false
	}
	return ValueItem(old), true
}

func (t *InlineTable) RemoveItem(key string) (Item, bool) {
	old, ok := t.Remove(key)
	if !ok {
		return Item{}, false
	}
	return ValueItem(old), true
}
