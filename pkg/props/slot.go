package props

import "github.com/aardvark179/rhino/pkg/values"

// Property attribute flags. The map layer stores them uninterpreted;
// consumers such as the activation-record code give them meaning.
const (
	None      = 0x00
	ReadOnly  = 0x01
	DontEnum  = 0x02
	Permanent = 0x04
)

// Slot is a single property record. BaseSlot is the plain data variant;
// richer variants (accessor pairs, lazily computed values) embed BaseSlot,
// which also satisfies the unexported base accessor, so updaters in other
// packages can substitute their own variants as long as the key is kept.
type Slot interface {
	Key() Key
	Attributes() int
	SetAttributes(attributes int)
	Value() values.Value
	SetValue(v values.Value)
	base() *BaseSlot
}

// BaseSlot holds a key, an attributes bitmask, and a value. The two link
// fields are owned by whichever map currently contains the slot: next chains
// slots within one hash bucket of the embedded representation, orderedNext
// threads the map-wide insertion-order list.
type BaseSlot struct {
	key         Key
	indexOrHash int
	attributes  int
	value       values.Value

	next        Slot
	orderedNext Slot
}

// NewSlot builds a detached slot for the given identity. Its value starts
// out undefined.
func NewSlot(key Key, attributes int) *BaseSlot {
	return &BaseSlot{
		key:         key,
		indexOrHash: key.indexOrHash(),
		attributes:  attributes,
		value:       values.Undefined,
	}
}

// CopySlot builds a fresh detached record carrying the same key, attributes,
// and value as src. The copy belongs to no map until inserted.
func CopySlot(src Slot) *BaseSlot {
	b := src.base()
	return &BaseSlot{
		key:         b.key,
		indexOrHash: b.indexOrHash,
		attributes:  src.Attributes(),
		value:       src.Value(),
	}
}

func (s *BaseSlot) Key() Key { return s.key }

func (s *BaseSlot) Attributes() int { return s.attributes }

func (s *BaseSlot) SetAttributes(attributes int) { s.attributes = attributes }

func (s *BaseSlot) Value() values.Value { return s.value }

func (s *BaseSlot) SetValue(v values.Value) { s.value = v }

func (s *BaseSlot) base() *BaseSlot { return s }

// AccessorSlot carries a getter/setter pair in place of a plain stored
// value. The map layer never invokes either; calling them is the engine's
// business.
type AccessorSlot struct {
	BaseSlot
	Getter values.Value
	Setter values.Value
}

// NewAccessorSlot builds a detached accessor slot for the given identity.
func NewAccessorSlot(key Key, attributes int) *AccessorSlot {
	return &AccessorSlot{
		BaseSlot: *NewSlot(key, attributes),
		Getter:   values.Undefined,
		Setter:   values.Undefined,
	}
}
