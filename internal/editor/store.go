package editor

import "github.com/example/polyzone/internal/geometry"

// Handle identifies a polygon or marker for as long as it stays in the
// document. Handles are never reused: once an item is removed its handle
// resolves to nothing.
type Handle struct {
	slot uint32
	gen  uint32
}

// IsZero reports whether h is the zero handle, which never resolves.
func (h Handle) IsZero() bool { return h.gen == 0 }

type slot[T any] struct {
	gen  uint32
	live bool
	val  T
}

// arena keeps values in document order while handing out stable handles.
type arena[T any] struct {
	slots []slot[T]
	order []uint32
	free  []uint32
}

func (a *arena[T]) push(v T) Handle {
	var id uint32
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		id = uint32(len(a.slots) - 1)
	}
	s := &a.slots[id]
	s.gen++
	s.live = true
	s.val = v
	a.order = append(a.order, id)
	return Handle{slot: id, gen: s.gen}
}

func (a *arena[T]) valid(h Handle) bool {
	if h.IsZero() || int(h.slot) >= len(a.slots) {
		return false
	}
	s := a.slots[h.slot]
	return s.live && s.gen == h.gen
}

// index resolves h to its current position, or -1 when stale.
func (a *arena[T]) index(h Handle) int {
	if !a.valid(h) {
		return -1
	}
	for i, id := range a.order {
		if id == h.slot {
			return i
		}
	}
	return -1
}

func (a *arena[T]) get(h Handle) (*T, bool) {
	if !a.valid(h) {
		return nil, false
	}
	return &a.slots[h.slot].val, true
}

func (a *arena[T]) at(i int) (Handle, *T) {
	id := a.order[i]
	s := &a.slots[id]
	return Handle{slot: id, gen: s.gen}, &s.val
}

func (a *arena[T]) removeAt(i int) {
	id := a.order[i]
	a.order = append(a.order[:i], a.order[i+1:]...)
	s := &a.slots[id]
	s.live = false
	var zero T
	s.val = zero
	a.free = append(a.free, id)
}

func (a *arena[T]) len() int { return len(a.order) }

// reset drops every value. Generations survive so old handles stay stale.
func (a *arena[T]) reset() {
	for i := len(a.order) - 1; i >= 0; i-- {
		a.removeAt(i)
	}
}

// document is the editor owned store behind the public snapshots.
type document struct {
	polygons arena[geometry.Polygon]
	markers  arena[geometry.Marker]
}

func (d *document) load(doc geometry.Document, ids IDGenerator) {
	d.polygons.reset()
	d.markers.reset()
	for _, p := range doc.Polygons {
		d.polygons.push(p.Clone())
	}
	for _, m := range doc.Markers {
		if m.ID == "" {
			m.ID = ids.NewID()
		}
		d.markers.push(m)
	}
}

func (d *document) polygonList() []geometry.Polygon {
	out := make([]geometry.Polygon, d.polygons.len())
	for i := range out {
		_, p := d.polygons.at(i)
		out[i] = p.Clone()
	}
	return out
}

func (d *document) markerList() []geometry.Marker {
	out := make([]geometry.Marker, d.markers.len())
	for i := range out {
		_, m := d.markers.at(i)
		out[i] = *m
	}
	return out
}

func (d *document) snapshot() geometry.Document {
	return geometry.Document{Polygons: d.polygonList(), Markers: d.markerList()}
}
