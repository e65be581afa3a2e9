package editor

// resync rebuilds the surface from the document and reports the data to
// the host. It is idempotent.
func (e *Editor) resync() {
	e.pending = false
	if !e.ready {
		return
	}
	e.surface.Clear()
	e.surface.SetMode(e.mode, e.marker.DrawInsidePolygonOnly)
	items := 0
	for i := 0; i < e.doc.polygons.len(); i++ {
		h, p := e.doc.polygons.at(i)
		e.surface.AddPolygon(h, p.Clone())
		items++
		if !e.opts.NotifyOnce {
			e.notifyChange()
		}
	}
	for i := 0; i < e.doc.markers.len(); i++ {
		h, m := e.doc.markers.at(i)
		e.surface.AddMarker(h, m.Position())
		items++
		if !e.opts.NotifyOnce {
			e.notifyChange()
		}
	}
	if e.opts.NotifyOnce || items == 0 {
		e.notifyChange()
	}
	if e.session.active() {
		e.surface.DrawPreview(e.session.preview())
	}
}

// Resynchronize rebuilds the surface now and drops any pending request.
func (e *Editor) Resynchronize() error {
	if !e.ready {
		return ErrNotInitialized
	}
	e.resync()
	return nil
}
