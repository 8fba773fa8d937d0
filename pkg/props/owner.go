package props

import "sync/atomic"

// mapRef boxes one installed representation so the owner can swap the whole
// thing with a single pointer CAS.
type mapRef struct {
	m slotMap
}

// MapOwner holds an object's current slot map and is the sole authority for
// replacing it when the representation escalates. Engine object types embed
// a MapOwner; all property access goes through it, so a representation swap
// is only ever visible as one fully-formed map giving way to the next.
type MapOwner struct {
	ref atomic.Pointer[mapRef]
}

var _ owner = (*MapOwner)(nil)

// NewMapOwner builds an owner expecting roughly capacity properties.
// threadSafe selects the locking decorator for owners shared across
// goroutines; the choice is fixed for the owner's lifetime.
func NewMapOwner(capacity int, threadSafe bool) *MapOwner {
	o := &MapOwner{}
	o.setMap(newSlotMap(capacity, threadSafe))
	return o
}

// newSlotMap picks the starting representation for a capacity hint.
func newSlotMap(capacity int, threadSafe bool) slotMap {
	if threadSafe {
		return &threadSafeSlotMap{m: newTieredMap(capacity)}
	}
	return newTieredMap(capacity)
}

func newTieredMap(capacity int) slotMap {
	switch {
	case capacity == 0:
		return emptySlotMap{}
	case capacity > largeMapSize:
		return newHashSlotMap(capacity)
	default:
		return newEmbeddedSlotMap(capacity)
	}
}

func (o *MapOwner) currentMap() slotMap {
	return o.ref.Load().m
}

// setMap unconditionally installs next. Only valid where no concurrent
// writer can exist: construction and single-writer contexts.
func (o *MapOwner) setMap(next slotMap) {
	o.ref.Store(&mapRef{m: next})
}

// compareAndReplaceMap installs next only if the current map is still old,
// and returns whichever map is current afterwards. Concurrent escalations
// race here: exactly one candidate wins; a loser observes the winner's map
// and restarts its operation against it. Representations only ever move up
// the tier order, so the retries are bounded.
func (o *MapOwner) compareAndReplaceMap(old, next slotMap) slotMap {
	for {
		cur := o.ref.Load()
		if cur.m != old {
			return cur.m
		}
		if o.ref.CompareAndSwap(cur, &mapRef{m: next}) {
			return next
		}
	}
}

// Size returns the number of live properties.
func (o *MapOwner) Size() int { return o.currentMap().size() }

// IsEmpty reports whether no property is live.
func (o *MapOwner) IsEmpty() bool { return o.currentMap().isEmpty() }

// Query returns the slot for key, or nil when absent. It never mutates the
// map and never triggers an escalation.
func (o *MapOwner) Query(key Key) Slot { return o.currentMap().query(key) }

// Modify returns the existing slot for key, creating one with the given
// attributes if absent. Repeated calls with the same key return the same
// slot instance.
func (o *MapOwner) Modify(key Key, attributes int) Slot {
	return o.currentMap().modify(o, key, attributes)
}

// Add inserts an already-built slot whose key the caller guarantees is not
// present yet.
func (o *MapOwner) Add(newSlot Slot) {
	o.currentMap().add(o, newSlot)
}

// Compute hands the current slot for key (nil when absent) to c and applies
// the result: a non-nil return replaces or inserts, nil removes. It is the
// single primitive behind insert, update, and delete. A panic inside c
// propagates with the map untouched.
func (o *MapOwner) Compute(key Key, c SlotComputer) Slot {
	return o.currentMap().compute(o, key, c)
}

// Range walks the live slots in insertion order until yield returns false.
// Every call starts a fresh traversal. On a thread-safe owner the read lock
// is held for the whole traversal, however it ends.
func (o *MapOwner) Range(yield func(Slot) bool) {
	o.currentMap().rangeSlots(yield)
}

// All returns Range in iterator form, for use with range-over-func.
func (o *MapOwner) All() func(yield func(Slot) bool) { return o.Range }
