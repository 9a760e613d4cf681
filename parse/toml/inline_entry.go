package toml

// InlineEntry is a single slot of an InlineTable, either an
// *InlineOccupiedEntry or an *InlineVacantEntry.
//
// Entries are short-lived views: once the table is changed through any
// other path the entry must not be used again.
type InlineEntry interface {
	// Key is the key text of the slot.
	Key() string
	// OrInsert returns the slot's value, inserting v if the slot is vacant.
	OrInsert(v Value) *Value
	// OrInsertWith is OrInsert with a lazily built default.
	OrInsertWith(fn func() Value) *Value

	isInlineEntry()
}

// InlineOccupiedEntry is a slot that holds a value.
type InlineOccupiedEntry struct {
	table *InlineTable
	kv    *TableKeyValue
}

func (e *InlineOccupiedEntry) isInlineEntry() {}

func (e *InlineOccupiedEntry) Key() string {
	return e.kv.key.key
}

// KeyMut gives access to the formatting of the key.
func (e *InlineOccupiedEntry) KeyMut() KeyMut {
	return KeyMut{key: &e.kv.key}
}

// Get returns the value in the slot; the pointer stays valid after the
// entry is dropped.
func (e *InlineOccupiedEntry) Get() *Value {
	v, ok := e.kv.value.AsValue()
	if !ok {
		panic("toml: occupied inline entry without a value")
	}
	return v
}

// Insert swaps in v and returns the previous value.
func (e *InlineOccupiedEntry) Insert(v Value) Value {
	old := *e.Get()
	e.kv.value = ValueItem(v)
	return old
}

// Remove deletes the slot, keeping the order of the other keys.
func (e *InlineOccupiedEntry) Remove() Value {
	old := *e.Get()
	e.table.items.shiftRemove(e.kv.key.key)
	return old
}

func (e *InlineOccupiedEntry) OrInsert(Value) *Value {
	return e.Get()
}

func (e *InlineOccupiedEntry) OrInsertWith(func() Value) *Value {
	return e.Get()
}

// InlineVacantEntry is a slot with no key yet.
type InlineVacantEntry struct {
	table     *InlineTable
	key       string
	formatted *Key
}

func (e *InlineVacantEntry) isInlineEntry() {}

// Key is the key text that Insert will use.
func (e *InlineVacantEntry) Key() string {
	return e.key
}

// Insert fills the slot and returns a pointer to the stored value.
func (e *InlineVacantEntry) Insert(v Value) *Value {
	key := NewKey(e.key)
	if e.formatted != nil {
		key = *e.formatted
	}
	kv := newTableKeyValue(key, ValueItem(v))
	e.table.items.insert(e.key, kv)
	return &kv.value.value
}

func (e *InlineVacantEntry) OrInsert(v Value) *Value {
	return e.Insert(v)
}

func (e *InlineVacantEntry) OrInsertWith(fn func() Value) *Value {
	return e.Insert(fn())
}
