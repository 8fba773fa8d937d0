package props

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// threadSafeSlotMap decorates a tiered map with a read/write lock, for
// owners shared across goroutines. Readers take the read side; writers and
// escalations run under the exclusive side, with the decorator standing in
// as the owner of its inner map. The pad keeps the lock word and the map
// reference off one cache line.
type threadSafeSlotMap struct {
	mu sync.RWMutex
	_  cpu.CacheLinePad
	m  slotMap
}

var _ slotMap = (*threadSafeSlotMap)(nil)
var _ owner = (*threadSafeSlotMap)(nil)

func (t *threadSafeSlotMap) size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.m.size()
}

func (t *threadSafeSlotMap) isEmpty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.m.isEmpty()
}

func (t *threadSafeSlotMap) query(key Key) Slot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.m.query(key)
}

func (t *threadSafeSlotMap) modify(o owner, key Key, attributes int) Slot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.m.modify(t, key, attributes)
}

func (t *threadSafeSlotMap) add(o owner, newSlot Slot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.m.add(t, newSlot)
}

func (t *threadSafeSlotMap) compute(o owner, key Key, c SlotComputer) Slot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.m.compute(t, key, c)
}

// rangeSlots holds the read lock for the caller's entire traversal, so the
// order chain cannot be rewritten mid-walk. The deferred unlock releases it
// on every exit path, early termination and panic included.
func (t *threadSafeSlotMap) rangeSlots(yield func(Slot) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	t.m.rangeSlots(yield)
}

// Owner contract for the inner map. The write lock is already held whenever
// these run, so plain assignment suffices.

func (t *threadSafeSlotMap) currentMap() slotMap { return t.m }

func (t *threadSafeSlotMap) setMap(next slotMap) { t.m = next }

func (t *threadSafeSlotMap) compareAndReplaceMap(old, next slotMap) slotMap {
	if t.m != old {
		return t.m
	}
	t.m = next
	return next
}
