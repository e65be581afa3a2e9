package editor

const (
	eraseTitle   = "Erase!"
	eraseMessage = "Are you sure to remove this polygon?"
)

// Erase asks to remove the polygon behind h, subject to the erase gate.
func (e *Editor) Erase(h Handle) error {
	if !e.ready {
		return ErrNotInitialized
	}
	if !e.allowed(ActionErase) {
		e.reject(ActionErase, "gated")
		return nil
	}
	e.erase(h)
	return nil
}

func (e *Editor) erase(h Handle) {
	if e.doc.polygons.index(h) < 0 {
		return
	}
	if !e.opts.ConfirmOnErase {
		e.removePolygon(h)
		return
	}
	e.opts.Confirmer.Confirm(eraseTitle, eraseMessage, func() { e.removePolygon(h) })
}

// removePolygon resolves h at confirmation time, so a polygon removed while
// the dialog was open is left alone and no other polygon is hit.
func (e *Editor) removePolygon(h Handle) {
	i := e.doc.polygons.index(h)
	if i < 0 {
		e.log.Debug().Msg("erase target already gone")
		return
	}
	e.doc.polygons.removeAt(i)
	e.surface.RemovePolygon(h)
	e.resync()
}
