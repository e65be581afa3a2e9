package editor

import "github.com/example/polyzone/internal/geometry"

// PointerEvent is a primary-button pointer event in surface coordinates,
// together with the surface hit-test at that position.
type PointerEvent struct {
	Pos    geometry.Point
	Target Target
}

type dragKind int

const (
	dragNone dragKind = iota
	dragVertex
	dragShape
	dragMarker
)

// gesture tracks one press until its release. A press on a draggable
// target that moves becomes a drag, which suppresses the click.
type gesture struct {
	pressed bool
	press   PointerEvent
	kind    dragKind
	origin  geometry.Point
	mutated bool
}

func draggable(k TargetKind) bool {
	return k == TargetVertex || k == TargetPolygon || k == TargetMarker
}

// PointerDown records a press.
func (e *Editor) PointerDown(ev PointerEvent) error {
	if !e.ready {
		return ErrNotInitialized
	}
	e.gesture = gesture{pressed: true, press: ev}
	return nil
}

// PointerMove handles pointer motion with or without the button held.
func (e *Editor) PointerMove(ev PointerEvent) error {
	if !e.ready {
		return ErrNotInitialized
	}
	g := &e.gesture
	if g.pressed && draggable(g.press.Target.Kind) && (g.kind != dragNone || ev.Pos != g.press.Pos) {
		if g.kind == dragNone {
			e.beginDrag()
		}
		e.dragTo(ev.Pos)
	}
	e.trackPointer(ev.Pos)
	return nil
}

// PointerUp finishes a drag, or treats the press and release as a click.
func (e *Editor) PointerUp(ev PointerEvent) error {
	if !e.ready {
		return ErrNotInitialized
	}
	g := e.gesture
	e.gesture = gesture{}
	if g.kind != dragNone {
		e.endDrag(g)
		return nil
	}
	err := e.drawRelease(ev)
	e.click(ev)
	return err
}

// Click is a press and release at the same spot.
func (e *Editor) Click(ev PointerEvent) error {
	if err := e.PointerDown(ev); err != nil {
		return err
	}
	return e.PointerUp(ev)
}

// Drag presses at from, moves through each point of path and releases at
// the last one. Every position is hit-tested against the press target.
func (e *Editor) Drag(from PointerEvent, path ...geometry.Point) error {
	if err := e.PointerDown(from); err != nil {
		return err
	}
	last := from
	for _, p := range path {
		last = PointerEvent{Pos: p, Target: from.Target}
		if err := e.PointerMove(last); err != nil {
			return err
		}
	}
	return e.PointerUp(last)
}

func (e *Editor) click(ev PointerEvent) {
	switch ev.Target.Kind {
	case TargetMarker:
		e.removeMarker(ev.Target.Handle)
	case TargetPolygon, TargetVertex:
		if e.allowed(ActionErase) {
			e.erase(ev.Target.Handle)
			return
		}
		if ev.Target.Kind == TargetPolygon {
			e.placeMarker(ev)
		}
	case TargetSurface:
		e.placeMarker(ev)
	}
}

func (e *Editor) beginDrag() {
	g := &e.gesture
	t := g.press.Target
	switch t.Kind {
	case TargetVertex:
		g.kind = dragVertex
		if e.allowed(ActionResize) && !e.session.active() {
			e.dragging = true
		}
	case TargetPolygon:
		g.kind = dragShape
		if p, ok := e.doc.polygons.get(t.Handle); ok {
			g.origin = p.Offset
		}
		if e.allowed(ActionTranslate) {
			e.dragging = true
		}
	case TargetMarker:
		g.kind = dragMarker
		if m, ok := e.doc.markers.get(t.Handle); ok {
			g.origin = m.Position()
		}
		if e.allowed(ActionEditMarker) && e.marker.Hooks.OnDragStart != nil {
			e.marker.Hooks.OnDragStart()
		}
	}
}

func (e *Editor) dragTo(pos geometry.Point) {
	g := &e.gesture
	switch g.kind {
	case dragVertex:
		if e.resizeVertex(g.press.Target, pos) {
			g.mutated = true
		}
	case dragShape:
		if e.translateShape(g.press.Target.Handle, g.origin.Add(pos.Sub(g.press.Pos))) {
			g.mutated = true
		}
	case dragMarker:
		if e.moveMarker(g.press.Target.Handle, g.origin.Add(pos.Sub(g.press.Pos))) {
			g.mutated = true
		}
	}
}

func (e *Editor) endDrag(g gesture) {
	e.dragging = false
	switch g.kind {
	case dragShape:
		if g.mutated {
			e.requestResync(e.opts.DragDelay)
		}
	case dragMarker:
		if g.mutated {
			e.requestResync(e.opts.DragDelay)
		}
		if e.allowed(ActionEditMarker) && e.marker.Hooks.OnDragEnd != nil {
			e.marker.Hooks.OnDragEnd()
		}
	}
}

func (e *Editor) cancelGesture() {
	e.gesture = gesture{}
	e.dragging = false
}
