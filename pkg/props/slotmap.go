package props

const (
	// largeMapSize is the live-entry count at which the embedded
	// representation escalates to the hash representation. Objects hinted
	// above it start out hashed.
	largeMapSize = 2000

	// defaultCapacity sizes the embedded map built when a single-entry map
	// overflows.
	defaultCapacity = 10
)

const noOwnerPanic = "props: slot map escalation requires an owner"

// SlotComputer inspects the current slot for a key (nil when absent) and
// returns its replacement. Returning nil removes the entry; returning a slot
// inserts it or swaps it into the existing entry's position. The computer
// must keep the key it was handed.
type SlotComputer func(key Key, existing Slot) Slot

// slotMap is the storage behind one owner. Four representations implement
// it — empty, single, embedded, hash — plus the locking decorator. Mutating
// operations take the owner so an overflowing representation can install its
// successor.
type slotMap interface {
	size() int
	isEmpty() bool
	query(key Key) Slot
	modify(o owner, key Key, attributes int) Slot
	add(o owner, newSlot Slot)
	compute(o owner, key Key, c SlotComputer) Slot
	rangeSlots(yield func(Slot) bool)
}

// owner mediates replacing the current representation during escalation.
type owner interface {
	currentMap() slotMap
	setMap(next slotMap)
	compareAndReplaceMap(old, next slotMap) slotMap
}

// slotList threads the insertion-order chain through the slots it holds,
// via their orderedNext links.
type slotList struct {
	first Slot
	last  Slot
}

func (l *slotList) append(s Slot) {
	if l.last == nil {
		l.first = s
	} else {
		l.last.base().orderedNext = s
	}
	l.last = s
}

func (l *slotList) remove(s Slot) {
	var prev Slot
	if l.first != s {
		prev = l.first
		for prev.base().orderedNext != s {
			prev = prev.base().orderedNext
		}
	}
	next := s.base().orderedNext
	if prev == nil {
		l.first = next
	} else {
		prev.base().orderedNext = next
	}
	if l.last == s {
		l.last = prev
	}
	s.base().orderedNext = nil
}

// replace swaps newSlot into oldSlot's position so the entry keeps its
// original spot in iteration order.
func (l *slotList) replace(oldSlot, newSlot Slot) {
	if oldSlot == newSlot {
		return
	}
	var prev Slot
	if l.first != oldSlot {
		prev = l.first
		for prev.base().orderedNext != oldSlot {
			prev = prev.base().orderedNext
		}
	}
	newSlot.base().orderedNext = oldSlot.base().orderedNext
	if prev == nil {
		l.first = newSlot
	} else {
		prev.base().orderedNext = newSlot
	}
	if l.last == oldSlot {
		l.last = newSlot
	}
	oldSlot.base().orderedNext = nil
}

func (l *slotList) rangeSlots(yield func(Slot) bool) {
	for s := l.first; s != nil; s = s.base().orderedNext {
		if !yield(s) {
			return
		}
	}
}

// emptySlotMap is the shared representation of every zero-capacity map: an
// immutable zero-size value that allocates nothing. The first write installs
// a fresh single-entry map on the owner and re-dispatches to it.
type emptySlotMap struct{}

var _ slotMap = emptySlotMap{}

func (emptySlotMap) size() int { return 0 }

func (emptySlotMap) isEmpty() bool { return true }

func (emptySlotMap) query(Key) Slot { return nil }

func (emptySlotMap) rangeSlots(func(Slot) bool) {}

func (m emptySlotMap) modify(o owner, key Key, attributes int) Slot {
	return m.escalate(o).modify(o, key, attributes)
}

func (m emptySlotMap) add(o owner, newSlot Slot) {
	m.escalate(o).add(o, newSlot)
}

func (m emptySlotMap) compute(o owner, key Key, c SlotComputer) Slot {
	return m.escalate(o).compute(o, key, c)
}

func (m emptySlotMap) escalate(o owner) slotMap {
	if o == nil {
		panic(noOwnerPanic)
	}
	return o.compareAndReplaceMap(m, new(singleSlotMap))
}

// singleSlotMap holds at most one slot; most objects never grow past a
// couple of properties, and plenty hold exactly one.
type singleSlotMap struct {
	slot Slot
}

var _ slotMap = (*singleSlotMap)(nil)

func (m *singleSlotMap) size() int {
	if m.slot == nil {
		return 0
	}
	return 1
}

func (m *singleSlotMap) isEmpty() bool { return m.slot == nil }

func (m *singleSlotMap) query(key Key) Slot {
	if m.slot != nil && m.slot.Key() == key {
		return m.slot
	}
	return nil
}

func (m *singleSlotMap) modify(o owner, key Key, attributes int) Slot {
	if s := m.query(key); s != nil {
		return s
	}
	newSlot := NewSlot(key, attributes)
	m.add(o, newSlot)
	return newSlot
}

func (m *singleSlotMap) add(o owner, newSlot Slot) {
	if m.slot == nil {
		m.slot = newSlot
		return
	}
	m.escalate(o).add(o, newSlot)
}

func (m *singleSlotMap) compute(o owner, key Key, c SlotComputer) Slot {
	if m.slot != nil {
		if m.slot.Key() == key {
			newSlot := c(key, m.slot)
			m.slot = newSlot
			return newSlot
		}
		return m.escalate(o).compute(o, key, c)
	}
	newSlot := c(key, nil)
	m.slot = newSlot
	return newSlot
}

func (m *singleSlotMap) rangeSlots(yield func(Slot) bool) {
	if m.slot != nil {
		yield(m.slot)
	}
}

// escalate builds an embedded map seeded with the one existing slot and asks
// the owner to install it. On a lost race the candidate is discarded and the
// caller's operation restarts against whatever won.
func (m *singleSlotMap) escalate(o owner) slotMap {
	if o == nil {
		panic(noOwnerPanic)
	}
	next := newEmbeddedSlotMap(defaultCapacity)
	next.add(nil, m.slot)
	return o.compareAndReplaceMap(m, next)
}
