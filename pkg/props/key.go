package props

import "strconv"

// Key identifies one property: either a string name or an integer index.
// Keys are comparable; two slots have the same identity iff their keys are
// equal. The zero Key is IndexKey(0).
type Key struct {
	name  string
	index int
	named bool
}

// StringKey builds the identity for a string-named property.
func StringKey(name string) Key {
	return Key{name: name, named: true}
}

// IndexKey builds the identity for an integer-indexed property.
func IndexKey(index int) Key {
	return Key{index: index}
}

// Named reports whether the key is string-named rather than index-keyed.
func (k Key) Named() bool { return k.named }

// Name returns the property name; empty for index keys.
func (k Key) Name() string { return k.name }

// Index returns the property index; zero for named keys.
func (k Key) Index() int { return k.index }

func (k Key) String() string {
	if k.named {
		return k.name
	}
	return strconv.Itoa(k.index)
}

// indexOrHash is the value used for bucket selection in the embedded
// representation: the index itself for index keys, FNV-1a of the name
// otherwise. Slots cache it at creation.
func (k Key) indexOrHash() int {
	if !k.named {
		return k.index
	}
	h := uint32(2166136261)
	for i := 0; i < len(k.name); i++ {
		h ^= uint32(k.name[i])
		h *= 16777619
	}
	return int(h)
}
