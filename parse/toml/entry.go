package toml

// Entry is a single slot of a table viewed at the Item level, either an
// *OccupiedEntry or a *VacantEntry. It is what TableLike hands out, so it
// works the same for standard and inline tables.
//
// Like InlineEntry, it must not outlive the next change to the table.
type Entry interface {
	Key() string
	OrInsert(item Item) *Item
	OrInsertWith(fn func() Item) *Item

	isEntry()
}

type OccupiedEntry struct {
	items *indexMap
	kv    *TableKeyValue
}

func (e *OccupiedEntry) isEntry() {}

func (e *OccupiedEntry) Key() string {
	return e.kv.key.key
}

func (e *OccupiedEntry) KeyMut() KeyMut {
	return KeyMut{key: &e.kv.key}
}

func (e *OccupiedEntry) Get() *Item {
	return &e.kv.value
}

// Insert swaps in item and returns the previous one.
func (e *OccupiedEntry) Insert(item Item) Item {
	old := e.kv.value
	e.kv.value = item
	return old
}

// Remove deletes the slot, keeping the order of the other keys.
func (e *OccupiedEntry) Remove() Item {
	e.items.shiftRemove(e.kv.key.key)
	return e.kv.value
}

func (e *OccupiedEntry) OrInsert(Item) *Item {
	return e.Get()
}

func (e *OccupiedEntry) OrInsertWith(func() Item) *Item {
	return e.Get()
}

type VacantEntry struct {
	items     *indexMap
	key       string
	formatted *Key
}

func (e *VacantEntry) isEntry() {}

func (e *VacantEntry) Key() string {
	return e.key
}

// Insert fills the slot and returns a pointer to the stored item.
func (e *VacantEntry) Insert(item Item) *Item {
	key := NewKey(e.key)
	if e.formatted != nil {
		key = *e.formatted
	}
	kv := newTableKeyValue(key, item)
	e.items.insert(e.key, kv)
	return &kv.value
}

func (e *VacantEntry) OrInsert(item Item) *Item {
	return e.Insert(item)
}

func (e *VacantEntry) OrInsertWith(fn func() Item) *Item {
	return e.Insert(fn())
}
