package editor

import "github.com/example/polyzone/internal/geometry"

// resizeVertex moves one committed vertex to pos. The host sees the change
// immediately; no resync follows.
func (e *Editor) resizeVertex(t Target, pos geometry.Point) bool {
	if !e.allowed(ActionResize) {
		e.reject(ActionResize, "gated")
		return false
	}
	if e.session.active() {
		e.reject(ActionResize, "drawing in progress")
		return false
	}
	p, ok := e.doc.polygons.get(t.Handle)
	if !ok || t.Vertex < 0 || t.Vertex >= len(p.Points) {
		return false
	}
	p.Points[t.Vertex] = pos.Sub(p.Offset)
	e.surface.UpdatePolygon(t.Handle, p.Clone())
	e.notifyChange()
	return true
}

// translateShape sets the polygon offset. The resync is deferred to the
// end of the drag.
func (e *Editor) translateShape(h Handle, offset geometry.Point) bool {
	if !e.allowed(ActionTranslate) {
		e.reject(ActionTranslate, "gated")
		return false
	}
	p, ok := e.doc.polygons.get(h)
	if !ok {
		return false
	}
	p.Offset = offset
	e.surface.UpdatePolygon(h, p.Clone())
	return true
}
