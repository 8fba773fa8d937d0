package props

import "math/bits"

const initialSlotSize = 4

// embeddedSlotMap is the workhorse representation for ordinary objects: an
// open hash table whose buckets chain through the slots' own next links,
// threaded with the insertion-order list. The bucket array length is always
// a power of two.
type embeddedSlotMap struct {
	slots []Slot
	order slotList
	count int
}

var _ slotMap = (*embeddedSlotMap)(nil)

func newEmbeddedSlotMap(capacity int) *embeddedSlotMap {
	m := &embeddedSlotMap{}
	if capacity > 0 {
		m.slots = make([]Slot, tableSizeFor(capacity))
	}
	return m
}

// tableSizeFor returns the power-of-two bucket count that keeps the table
// under a 3/4 load factor for the requested capacity.
func tableSizeFor(capacity int) int {
	size := capacity * 4 / 3
	if size < initialSlotSize {
		size = initialSlotSize
	}
	return 1 << bits.Len(uint(size-1))
}

func (m *embeddedSlotMap) size() int { return m.count }

func (m *embeddedSlotMap) isEmpty() bool { return m.count == 0 }

func (m *embeddedSlotMap) query(key Key) Slot {
	if m.slots == nil {
		return nil
	}
	idx := key.indexOrHash() & (len(m.slots) - 1)
	for s := m.slots[idx]; s != nil; s = s.base().next {
		if s.Key() == key {
			return s
		}
	}
	return nil
}

func (m *embeddedSlotMap) modify(o owner, key Key, attributes int) Slot {
	if s := m.query(key); s != nil {
		return s
	}
	if next := m.escalateIfFull(o); next != nil {
		return next.modify(o, key, attributes)
	}
	newSlot := NewSlot(key, attributes)
	m.insert(newSlot)
	return newSlot
}

func (m *embeddedSlotMap) add(o owner, newSlot Slot) {
	if next := m.escalateIfFull(o); next != nil {
		next.add(o, newSlot)
		return
	}
	m.insert(newSlot)
}

func (m *embeddedSlotMap) compute(o owner, key Key, c SlotComputer) Slot {
	if s := m.query(key); s != nil {
		newSlot := c(key, s)
		if newSlot == nil {
			m.remove(s)
			return nil
		}
		m.replace(s, newSlot)
		return newSlot
	}
	newSlot := c(key, nil)
	if newSlot == nil {
		return nil
	}
	if next := m.escalateIfFull(o); next != nil {
		// The computer already ran; hand its result straight to the
		// installed successor rather than re-dispatching compute.
		next.add(o, newSlot)
		return newSlot
	}
	m.insert(newSlot)
	return newSlot
}

func (m *embeddedSlotMap) rangeSlots(yield func(Slot) bool) {
	m.order.rangeSlots(yield)
}

// escalateIfFull promotes to the hash representation once the live count
// reaches the large-map threshold, returning whichever map the owner then
// holds. It returns nil when no escalation is needed.
func (m *embeddedSlotMap) escalateIfFull(o owner) slotMap {
	if m.count < largeMapSize {
		return nil
	}
	if o == nil {
		panic(noOwnerPanic)
	}
	return o.compareAndReplaceMap(m, newHashSlotMapFrom(m))
}

func (m *embeddedSlotMap) insert(newSlot Slot) {
	m.grow()
	b := newSlot.base()
	idx := b.indexOrHash & (len(m.slots) - 1)
	b.next = m.slots[idx]
	m.slots[idx] = newSlot
	m.order.append(newSlot)
	m.count++
}

// grow doubles the bucket array once the next insert would push the load
// factor past 3/4, rebuilding the bucket chains by walking the order list.
func (m *embeddedSlotMap) grow() {
	if m.slots == nil {
		m.slots = make([]Slot, initialSlotSize)
		return
	}
	if 4*(m.count+1) <= 3*len(m.slots) {
		return
	}
	slots := make([]Slot, len(m.slots)*2)
	for s := m.order.first; s != nil; s = s.base().orderedNext {
		b := s.base()
		idx := b.indexOrHash & (len(slots) - 1)
		b.next = slots[idx]
		slots[idx] = s
	}
	m.slots = slots
}

func (m *embeddedSlotMap) remove(s Slot) {
	m.unlinkBucket(s)
	m.order.remove(s)
	m.count--
}

func (m *embeddedSlotMap) unlinkBucket(s Slot) {
	b := s.base()
	idx := b.indexOrHash & (len(m.slots) - 1)
	if m.slots[idx] == s {
		m.slots[idx] = b.next
	} else {
		prev := m.slots[idx]
		for prev.base().next != s {
			prev = prev.base().next
		}
		prev.base().next = b.next
	}
	b.next = nil
}

// replace swaps newSlot into oldSlot's position in both the bucket chain and
// the insertion-order list; a compute replacement keeps the entry's original
// iteration position.
func (m *embeddedSlotMap) replace(oldSlot, newSlot Slot) {
	if oldSlot == newSlot {
		return
	}
	ob, nb := oldSlot.base(), newSlot.base()
	idx := ob.indexOrHash & (len(m.slots) - 1)
	nb.next = ob.next
	if m.slots[idx] == oldSlot {
		m.slots[idx] = newSlot
	} else {
		prev := m.slots[idx]
		for prev.base().next != oldSlot {
			prev = prev.base().next
		}
		prev.base().next = newSlot
	}
	ob.next = nil
	m.order.replace(oldSlot, newSlot)
}
