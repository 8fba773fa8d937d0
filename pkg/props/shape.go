package props

// Descriptor names one slot of a Shape: its identity, its dense offset, and
// an attributes bitmask.
type Descriptor struct {
	ID         Key
	Offset     int
	Attributes int
}

// Shape is an immutable ordered layout description. Many holders — call
// frames sharing a parameter list, for instance — share one shape and
// address their storage by descriptor offset instead of hashing per
// instance. Offsets are dense, assigned in append order. A shape performs no
// storage itself.
type Shape struct {
	byID        map[Key]int
	descriptors []Descriptor
}

// EmptyShape is the shared zero-slot shape.
var EmptyShape = &Shape{}

// Get returns the descriptor resolving id, or nil. When duplicate ids exist
// the newest descriptor wins.
func (s *Shape) Get(id Key) *Descriptor {
	i, ok := s.byID[id]
	if !ok {
		return nil
	}
	return &s.descriptors[i]
}

// GetByIndex returns the descriptor at the given offset, which must be less
// than Size. The positional view is stable: it is unaffected by newer
// descriptors shadowing the same id.
func (s *Shape) GetByIndex(offset int) *Descriptor {
	return &s.descriptors[offset]
}

func (s *Shape) Size() int { return len(s.descriptors) }

// Extend derives a new shape with one more slot at offset Size(). The
// receiver is untouched and remains valid for every other holder. If id is
// already present, both descriptors stay in the positional sequence — a
// function's repeated parameter names still need their own offsets — but the
// id lookup resolves to the newer one only.
func (s *Shape) Extend(id Key, attributes int) *Shape {
	n := len(s.descriptors)
	descriptors := make([]Descriptor, n+1)
	copy(descriptors, s.descriptors)
	descriptors[n] = Descriptor{ID: id, Offset: n, Attributes: attributes}
	byID := make(map[Key]int, n+1)
	for k, i := range s.byID {
		byID[k] = i
	}
	byID[id] = n
	return &Shape{byID: byID, descriptors: descriptors}
}

// ShapeBuilder accumulates descriptors and finalizes them into an immutable
// Shape. Duplicate-id handling matches Extend: the earlier descriptor keeps
// its position in the sequence while the lookup is overwritten.
type ShapeBuilder struct {
	byID        map[Key]int
	descriptors []Descriptor
}

func NewShapeBuilder() *ShapeBuilder {
	return &ShapeBuilder{byID: make(map[Key]int)}
}

// WithSlot appends one descriptor at the next offset and returns the
// builder for chaining.
func (b *ShapeBuilder) WithSlot(id Key, attributes int) *ShapeBuilder {
	offset := len(b.descriptors)
	b.descriptors = append(b.descriptors, Descriptor{ID: id, Offset: offset, Attributes: attributes})
	b.byID[id] = offset
	return b
}

// Build snapshots the accumulated slots into a Shape safe to share across
// any number of holders. The builder may keep accumulating afterwards
// without affecting shapes already built.
func (b *ShapeBuilder) Build() *Shape {
	byID := make(map[Key]int, len(b.byID))
	for k, i := range b.byID {
		byID[k] = i
	}
	descriptors := make([]Descriptor, len(b.descriptors))
	copy(descriptors, b.descriptors)
	return &Shape{byID: byID, descriptors: descriptors}
}
