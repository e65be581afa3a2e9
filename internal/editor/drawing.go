package editor

import "github.com/example/polyzone/internal/geometry"

// rubberBandNudge keeps the live edge a little right of the pointer so the
// pointer keeps hitting what lies beneath it.
var rubberBandNudge = geometry.Point{X: 2}

// session is the polygon being drawn. It is idle while points is empty.
type session struct {
	points []geometry.Point
	anchor geometry.Point
	cursor geometry.Point
	edge   bool
}

func (s *session) active() bool { return len(s.points) > 0 }

func (s *session) add(p geometry.Point) {
	s.points = append(s.points, p)
	s.anchor = p
	s.edge = false
}

func (s *session) reset() { *s = session{} }

func (s *session) preview() Preview {
	p := Preview{Points: append([]geometry.Point(nil), s.points...)}
	if s.edge {
		p.HasEdge = true
		p.EdgeFrom = s.anchor
		p.EdgeTo = s.cursor.Add(rubberBandNudge)
	}
	return p
}

// drawRelease handles a click release while drawing. A release on a vertex
// handle closes the session, anything else appends a point.
func (e *Editor) drawRelease(ev PointerEvent) error {
	if !e.allowed(ActionDraw) {
		return nil
	}
	if e.dragging {
		e.reject(ActionDraw, "drag in progress")
		return nil
	}
	if ev.Target.Kind == TargetMarker {
		return nil
	}
	closing := ev.Target.Kind == TargetVertex || ev.Target.Kind == TargetPreviewVertex
	if closing && e.session.active() {
		return e.closeSession()
	}
	e.session.add(ev.Pos)
	e.surface.DrawPreview(e.session.preview())
	return nil
}

func (e *Editor) closeSession() error {
	poly := geometry.Polygon{
		Points:  append([]geometry.Point(nil), e.session.points...),
		Fill:    e.opts.ColorGenerator(),
		Opacity: e.opts.ShapeOpacity,
	}
	if err := poly.Validate(); err != nil {
		e.reject(ActionDraw, err.Error())
		return &geometry.ValidationError{Index: e.doc.polygons.len(), Err: err}
	}
	h := e.doc.polygons.push(poly)
	e.session.reset()
	e.surface.ClearPreview()
	e.surface.AddPolygon(h, poly.Clone())
	e.log.Debug().Int("points", len(poly.Points)).Str("fill", poly.Fill).Msg("polygon closed")
	e.requestResync(e.opts.CloseDelay)
	return nil
}

// trackPointer moves the rubber band while a session is accumulating.
func (e *Editor) trackPointer(pos geometry.Point) {
	if !e.session.active() || !e.allowed(ActionDraw) {
		return
	}
	e.session.cursor = pos
	e.session.edge = true
	e.surface.DrawPreview(e.session.preview())
}

func (e *Editor) abandonSession() {
	if !e.session.active() {
		return
	}
	e.session.reset()
	if e.ready {
		e.surface.ClearPreview()
	}
}
