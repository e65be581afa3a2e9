package editor

import (
	"fmt"
	"testing"
	"time"

	"github.com/example/polyzone/internal/geometry"
)

type recordingSurface struct {
	polygons   map[Handle]geometry.Polygon
	order      []Handle
	markers    map[Handle]geometry.Point
	markerSeq  []Handle
	preview    *Preview
	clears     int
	updates    int
	mode       Mode
	insideOnly bool
	background string
	bgSize     [2]int
	scale      float64
	priority   Layer
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{
		polygons: map[Handle]geometry.Polygon{},
		markers:  map[Handle]geometry.Point{},
	}
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.polygons = map[Handle]geometry.Polygon{}
	s.order = nil
	s.markers = map[Handle]geometry.Point{}
	s.markerSeq = nil
	s.preview = nil
}

func (s *recordingSurface) AddPolygon(h Handle, p geometry.Polygon) {
	s.polygons[h] = p
	s.order = append(s.order, h)
}

func (s *recordingSurface) UpdatePolygon(h Handle, p geometry.Polygon) {
	s.updates++
	s.polygons[h] = p
}

func (s *recordingSurface) RemovePolygon(h Handle) {
	delete(s.polygons, h)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *recordingSurface) AddMarker(h Handle, at geometry.Point) {
	s.markers[h] = at
	s.markerSeq = append(s.markerSeq, h)
}

func (s *recordingSurface) MoveMarker(h Handle, at geometry.Point) { s.markers[h] = at }

func (s *recordingSurface) RemoveMarker(h Handle) { delete(s.markers, h) }

func (s *recordingSurface) DrawPreview(p Preview) { s.preview = &p }

func (s *recordingSurface) ClearPreview() { s.preview = nil }

func (s *recordingSurface) SetMode(m Mode, insideOnly bool) {
	s.mode = m
	s.insideOnly = insideOnly
}

func (s *recordingSurface) SetBackground(src string, w, h int) {
	s.background = src
	s.bgSize = [2]int{w, h}
}

func (s *recordingSurface) SetScale(scale float64) { s.scale = scale }

func (s *recordingSurface) SetPriority(top Layer) { s.priority = top }

// state renders the surface contents in draw order for comparisons.
func (s *recordingSurface) state() string {
	out := ""
	for _, h := range s.order {
		out += fmt.Sprintf("P%v:%v;", h, s.polygons[h])
	}
	for _, h := range s.markerSeq {
		out += fmt.Sprintf("M%v:%v;", h, s.markers[h])
	}
	return out
}

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("m%d", g.n)
}

type scheduled struct {
	delays []time.Duration
	fns    []func()
}

func (s *scheduled) Schedule(d time.Duration, fn func()) {
	s.delays = append(s.delays, d)
	s.fns = append(s.fns, fn)
}

func (s *scheduled) run() {
	fns := s.fns
	s.fns = nil
	for _, fn := range fns {
		fn()
	}
}

type pendingConfirm struct {
	title, message string
	onConfirm      []func()
}

func (c *pendingConfirm) Confirm(title, message string, onConfirm func()) {
	c.title, c.message = title, message
	c.onConfirm = append(c.onConfirm, onConfirm)
}

type harness struct {
	ed      *Editor
	surface *recordingSurface
	changes []geometry.Document
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{surface: newRecordingSurface()}
	base := []Option{
		WithSurface(h.surface),
		WithConfirmOnErase(false),
		WithColorGenerator(func() string { return "#ABCDEF" }),
		WithIDGenerator(&seqIDs{}),
		WithOnChange(func(d geometry.Document) { h.changes = append(h.changes, d) }),
	}
	h.ed = New(append(base, opts...)...)
	if err := h.ed.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	h.changes = nil
	return h
}

func (h *harness) last() geometry.Document {
	if len(h.changes) == 0 {
		return geometry.Document{}
	}
	return h.changes[len(h.changes)-1]
}

func surfaceAt(x, y float64) PointerEvent {
	return PointerEvent{Pos: geometry.Pt(x, y), Target: Target{Kind: TargetSurface}}
}

func onPolygon(h Handle, x, y float64) PointerEvent {
	return PointerEvent{Pos: geometry.Pt(x, y), Target: Target{Kind: TargetPolygon, Handle: h}}
}

func onVertex(h Handle, v int, x, y float64) PointerEvent {
	return PointerEvent{Pos: geometry.Pt(x, y), Target: Target{Kind: TargetVertex, Handle: h, Vertex: v}}
}

func onPreview(v int, x, y float64) PointerEvent {
	return PointerEvent{Pos: geometry.Pt(x, y), Target: Target{Kind: TargetPreviewVertex, Vertex: v}}
}

func onMarker(h Handle, x, y float64) PointerEvent {
	return PointerEvent{Pos: geometry.Pt(x, y), Target: Target{Kind: TargetMarker, Handle: h}}
}

func triangle() geometry.Polygon {
	return geometry.Polygon{
		Points:  []geometry.Point{{X: 10, Y: 10}, {X: 100, Y: 10}, {X: 55, Y: 80}},
		Fill:    "#112233",
		Opacity: 0.5,
	}
}

func (h *harness) mustClick(t *testing.T, ev PointerEvent) {
	t.Helper()
	if err := h.ed.Click(ev); err != nil {
		t.Fatalf("Click(%+v) failed: %v", ev, err)
	}
}
