// Package frame implements activation records for function calls. A record
// keeps its named locals in a dense array addressed through a shared
// props.Shape, so reading a parameter is an index operation rather than a
// per-frame map lookup. Names introduced after the frame is live (direct
// eval, with-scope leaks) fall back to an ordinary slot map.
package frame

import (
	"github.com/aardvark179/rhino/pkg/props"
	"github.com/aardvark179/rhino/pkg/values"
)

// ShapeForParams builds the layout shape for a parameter list. Parameters
// are permanent bindings. A repeated name yields two descriptors: the name
// resolves to the last occurrence, but every position stays addressable by
// offset, which is what the arguments object and debuggers need.
func ShapeForParams(names ...string) *props.Shape {
	b := props.NewShapeBuilder()
	for _, name := range names {
		b.WithSlot(props.StringKey(name), props.Permanent)
	}
	return b.Build()
}

// Record is one activation: shaped storage for the declared locals plus an
// overflow slot map for dynamically introduced names.
type Record struct {
	shape *props.Shape
	slots []values.Value
	extra *props.MapOwner
}

// New builds a record for the given shape. Arguments bind positionally;
// missing ones are undefined, surplus ones are dropped (the caller keeps the
// originals for the arguments object).
func New(shape *props.Shape, args []values.Value) *Record {
	slots := make([]values.Value, shape.Size())
	for i := range slots {
		if i < len(args) {
			slots[i] = args[i]
		} else {
			slots[i] = values.Undefined
		}
	}
	return &Record{
		shape: shape,
		slots: slots,
		extra: props.NewMapOwner(0, false),
	}
}

// Shape returns the record's layout. Records built from the same function
// share one shape instance.
func (r *Record) Shape() *props.Shape { return r.shape }

// Get resolves id against the shape first and the dynamic overflow second.
func (r *Record) Get(id props.Key) (values.Value, bool) {
	if d := r.shape.Get(id); d != nil {
		return r.slots[d.Offset], true
	}
	if s := r.extra.Query(id); s != nil {
		return s.Value(), true
	}
	return values.Undefined, false
}

// GetByIndex reads the local at a shape offset directly.
func (r *Record) GetByIndex(offset int) values.Value {
	return r.slots[offset]
}

// Set writes an existing binding. It reports false when the binding is
// absent or marked read-only.
func (r *Record) Set(id props.Key, v values.Value) bool {
	if d := r.shape.Get(id); d != nil {
		if d.Attributes&props.ReadOnly != 0 {
			return false
		}
		r.slots[d.Offset] = v
		return true
	}
	if s := r.extra.Query(id); s != nil {
		if s.Attributes()&props.ReadOnly != 0 {
			return false
		}
		s.SetValue(v)
		return true
	}
	return false
}

// SetByIndex writes the local at a shape offset directly.
func (r *Record) SetByIndex(offset int, v values.Value) {
	r.slots[offset] = v
}

// Define introduces a binding at runtime. A name already covered by the
// shape keeps its offset storage and only has its value set; anything else
// lands in the overflow map.
func (r *Record) Define(id props.Key, attributes int, v values.Value) {
	if d := r.shape.Get(id); d != nil {
		r.slots[d.Offset] = v
		return
	}
	r.extra.Modify(id, attributes).SetValue(v)
}

// Has reports whether id is bound, declared or dynamic.
func (r *Record) Has(id props.Key) bool {
	if r.shape.Get(id) != nil {
		return true
	}
	return r.extra.Query(id) != nil
}

// Delete removes a dynamic binding. Shaped bindings are permanent and are
// never removed; it reports whether a binding was actually deleted.
func (r *Record) Delete(id props.Key) bool {
	if r.shape.Get(id) != nil {
		return false
	}
	deleted := false
	r.extra.Compute(id, func(_ props.Key, existing props.Slot) props.Slot {
		deleted = existing != nil
		return nil
	})
	return deleted
}
