package editor

import "github.com/example/polyzone/internal/geometry"

// placeMarker drops a marker so its anchor sits under the pointer.
func (e *Editor) placeMarker(ev PointerEvent) {
	if !e.allowed(ActionPlaceMarker) {
		return
	}
	if e.marker.SinglePointer && e.doc.markers.len() > 0 {
		e.reject(ActionPlaceMarker, "single pointer already placed")
		return
	}
	if e.marker.DrawInsidePolygonOnly && !e.insidePolygon(ev) {
		e.reject(ActionPlaceMarker, "outside polygon")
		return
	}
	m := geometry.Marker{
		ID:      e.opts.IDGenerator.NewID(),
		OffsetX: ev.Pos.X - e.marker.Anchor.X,
		OffsetY: ev.Pos.Y - e.marker.Anchor.Y,
	}
	e.doc.markers.push(m)
	e.log.Debug().Str("id", m.ID).Float64("x", m.OffsetX).Float64("y", m.OffsetY).Msg("marker placed")
	e.resync()
	if e.marker.Hooks.OnAdd != nil {
		e.marker.Hooks.OnAdd()
	}
}

func (e *Editor) insidePolygon(ev PointerEvent) bool {
	if e.doc.polygons.len() == 0 || ev.Target.Kind != TargetPolygon {
		return false
	}
	_, ok := e.doc.polygons.get(ev.Target.Handle)
	return ok
}

// RemoveMarker deletes the marker behind h. Stale handles are ignored.
func (e *Editor) RemoveMarker(h Handle) error {
	if !e.ready {
		return ErrNotInitialized
	}
	e.removeMarker(h)
	return nil
}

func (e *Editor) removeMarker(h Handle) {
	if !e.allowed(ActionEditMarker) {
		e.reject(ActionEditMarker, "gated")
		return
	}
	i := e.doc.markers.index(h)
	if i < 0 {
		return
	}
	e.doc.markers.removeAt(i)
	e.surface.RemoveMarker(h)
	e.resync()
	if e.marker.Hooks.OnRemove != nil {
		e.marker.Hooks.OnRemove()
	}
}

func (e *Editor) moveMarker(h Handle, at geometry.Point) bool {
	if !e.allowed(ActionEditMarker) {
		e.reject(ActionEditMarker, "gated")
		return false
	}
	m, ok := e.doc.markers.get(h)
	if !ok {
		return false
	}
	m.OffsetX, m.OffsetY = at.X, at.Y
	e.surface.MoveMarker(h, at)
	e.notifyChange()
	return true
}
