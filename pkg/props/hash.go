package props

// hashSlotMap is the terminal representation for very large objects: lookup
// through a built-in map, which stays robust when thousands of keys collide
// in the embedded table. Iteration reuses the same insertion-order list.
type hashSlotMap struct {
	table map[Key]Slot
	order slotList
}

var _ slotMap = (*hashSlotMap)(nil)

func newHashSlotMap(capacity int) *hashSlotMap {
	return &hashSlotMap{table: make(map[Key]Slot, capacity)}
}

// newHashSlotMapFrom copies every live slot of src, in insertion order, into
// a fresh hash map. The order chain is adopted as-is — the sequence is
// identical, so no link is rewritten and src stays fully usable until the
// owner installs the copy.
func newHashSlotMapFrom(src *embeddedSlotMap) *hashSlotMap {
	m := newHashSlotMap(src.count)
	for s := src.order.first; s != nil; s = s.base().orderedNext {
		m.table[s.Key()] = s
	}
	m.order = src.order
	return m
}

func (m *hashSlotMap) size() int { return len(m.table) }

func (m *hashSlotMap) isEmpty() bool { return len(m.table) == 0 }

func (m *hashSlotMap) query(key Key) Slot { return m.table[key] }

func (m *hashSlotMap) modify(o owner, key Key, attributes int) Slot {
	if s := m.table[key]; s != nil {
		return s
	}
	newSlot := NewSlot(key, attributes)
	m.insert(newSlot)
	return newSlot
}

func (m *hashSlotMap) add(o owner, newSlot Slot) {
	m.insert(newSlot)
}

func (m *hashSlotMap) compute(o owner, key Key, c SlotComputer) Slot {
	if s := m.table[key]; s != nil {
		newSlot := c(key, s)
		if newSlot == nil {
			delete(m.table, key)
			m.order.remove(s)
			return nil
		}
		m.table[key] = newSlot
		m.order.replace(s, newSlot)
		return newSlot
	}
	newSlot := c(key, nil)
	if newSlot == nil {
		return nil
	}
	m.insert(newSlot)
	return newSlot
}

func (m *hashSlotMap) rangeSlots(yield func(Slot) bool) {
	m.order.rangeSlots(yield)
}

func (m *hashSlotMap) insert(newSlot Slot) {
	m.table[newSlot.Key()] = newSlot
	m.order.append(newSlot)
}
