// Package editor implements the polygon and marker annotation engine: tool
// modes, the drawing session, vertex and shape dragging, marker placement,
// erasing and the resynchronisation of the document onto a Surface.
//
// An Editor is not safe for concurrent use. Every call, including the
// functions handed to a Scheduler or ImageLoader, must run on one goroutine.
package editor

import (
	"errors"
	"fmt"
	"math"

	"github.com/example/polyzone/internal/geometry"
	"github.com/rs/zerolog"
)

var (
	ErrNoSurface          = errors.New("editor: no surface configured")
	ErrNoConfirmer        = errors.New("editor: erase confirmation requires a confirmer")
	ErrNotInitialized     = errors.New("editor: not initialized")
	ErrAlreadyInitialized = errors.New("editor: already initialized")
)

// Editor owns the document and reacts to pointer input.
type Editor struct {
	opts    Options
	log     zerolog.Logger
	surface Surface

	doc        document
	mode       Mode
	marker     MarkerOptions
	session    session
	gesture    gesture
	dragging   bool
	pending    bool
	ready      bool
	background string
	scale      float64
}

// New builds an editor from the defaults and opts. The editor is inert
// until Init is called.
func New(opts ...Option) *Editor {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.normalize()
	return &Editor{
		opts:    o,
		log:     o.Logger.With().Str("component", "editor").Logger(),
		surface: o.Surface,
		mode:    Mode{ReadOnly: o.ReadOnly.Bits()},
		marker:  o.Marker,
		scale:   1,
	}
}

// Init validates the configuration and the initial document, renders it,
// applies the default tool and reports the editor as mounted.
func (e *Editor) Init() error {
	if e.ready {
		return ErrAlreadyInitialized
	}
	if e.surface == nil {
		return ErrNoSurface
	}
	if e.opts.ConfirmOnErase && e.opts.Confirmer == nil {
		return ErrNoConfirmer
	}
	if err := e.opts.InitialData.Validate(); err != nil {
		return fmt.Errorf("initial data: %w", err)
	}
	e.doc.load(e.opts.InitialData, e.opts.IDGenerator)
	e.ready = true
	if e.opts.BackgroundSrc != "" {
		e.loadBackground(e.opts.BackgroundSrc, nil)
	}
	e.resync()
	e.SelectMode(e.opts.DefaultTool)
	e.log.Debug().Int("polygons", e.doc.polygons.len()).Int("markers", e.doc.markers.len()).
		Stringer("tool", e.mode.Tool).Msg("initialized")
	if e.opts.Mounted != nil {
		e.opts.Mounted(e)
	}
	return nil
}

// Initialized reports whether Init succeeded.
func (e *Editor) Initialized() bool { return e.ready }

// Mode returns the current mode value.
func (e *Editor) Mode() Mode { return e.mode }

// SelectMode switches the active tool. Leaving the draw tool abandons any
// drawing session.
func (e *Editor) SelectMode(t Tool) {
	e.mode = e.mode.Select(t)
	if t != ToolDraw && e.session.active() {
		e.abandonSession()
	}
	if e.ready {
		e.surface.SetMode(e.mode, e.marker.DrawInsidePolygonOnly)
	}
}

// SetReadOnly replaces the read-only gates. The active tool is kept.
func (e *Editor) SetReadOnly(r ReadOnlyOptions) {
	e.mode = e.mode.WithReadOnly(r.Bits())
	if e.mode.ReadOnly.Has(ReadOnlyAll|ReadOnlyPolygon) && e.session.active() {
		e.abandonSession()
	}
	if e.ready {
		e.surface.SetMode(e.mode, e.marker.DrawInsidePolygonOnly)
	}
}

// SetSinglePointer toggles the one-marker limit.
func (e *Editor) SetSinglePointer(v bool) { e.marker.SinglePointer = v }

// SetDrawInsidePolygonOnly toggles inside-polygon marker placement.
func (e *Editor) SetDrawInsidePolygonOnly(v bool) {
	e.marker.DrawInsidePolygonOnly = v
	if e.ready {
		e.surface.SetMode(e.mode, v)
	}
}

// MarkerOptions returns the live marker configuration.
func (e *Editor) MarkerOptions() MarkerOptions { return e.marker }

// Drawing reports whether a drawing session is accumulating points.
func (e *Editor) Drawing() bool { return e.session.active() }

// SessionPoints returns a copy of the points of the active session.
func (e *Editor) SessionPoints() []geometry.Point {
	return append([]geometry.Point(nil), e.session.points...)
}

// GetPolygons returns a snapshot of the polygons in document order.
func (e *Editor) GetPolygons() []geometry.Polygon { return e.doc.polygonList() }

// GetMarkers returns a snapshot of the markers in document order.
func (e *Editor) GetMarkers() []geometry.Marker { return e.doc.markerList() }

// GetEditorData returns a snapshot of the whole document.
func (e *Editor) GetEditorData() geometry.Document { return e.doc.snapshot() }

// PolygonHandle returns the handle of the polygon at index i.
func (e *Editor) PolygonHandle(i int) (Handle, bool) {
	if i < 0 || i >= e.doc.polygons.len() {
		return Handle{}, false
	}
	h, _ := e.doc.polygons.at(i)
	return h, true
}

// MarkerHandle returns the handle of the marker at index i.
func (e *Editor) MarkerHandle(i int) (Handle, bool) {
	if i < 0 || i >= e.doc.markers.len() {
		return Handle{}, false
	}
	h, _ := e.doc.markers.at(i)
	return h, true
}

// SetEditorData replaces the document and re-renders it. A non-empty
// backgroundSrc also swaps the background image.
func (e *Editor) SetEditorData(doc geometry.Document, backgroundSrc string) error {
	if !e.ready {
		return ErrNotInitialized
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	e.replace(doc)
	if backgroundSrc != "" {
		e.loadBackground(backgroundSrc, nil)
	}
	return nil
}

// ResetEditorData empties the document.
func (e *Editor) ResetEditorData() error {
	if !e.ready {
		return ErrNotInitialized
	}
	e.replace(geometry.Document{})
	return nil
}

// ClearAllPolygons removes every polygon and keeps the markers.
func (e *Editor) ClearAllPolygons() error {
	if !e.ready {
		return ErrNotInitialized
	}
	e.replace(geometry.Document{Markers: e.doc.markerList()})
	return nil
}

// ClearAllMarkers removes every marker and keeps the polygons.
func (e *Editor) ClearAllMarkers() error {
	if !e.ready {
		return ErrNotInitialized
	}
	e.replace(geometry.Document{Polygons: e.doc.polygonList()})
	return nil
}

// ResetEditor empties the document and removes the background.
func (e *Editor) ResetEditor() error {
	if err := e.ResetEditorData(); err != nil {
		return err
	}
	e.background = ""
	e.surface.SetBackground("", 0, 0)
	return nil
}

func (e *Editor) replace(doc geometry.Document) {
	e.abandonSession()
	e.cancelGesture()
	e.doc.load(doc, e.opts.IDGenerator)
	e.resync()
}

// Background returns the current background source.
func (e *Editor) Background() string { return e.background }

// ChangeBackground swaps the background image. done, when set, receives
// the loaded dimensions.
func (e *Editor) ChangeBackground(src string, done func(e *Editor, width, height int)) error {
	if !e.ready {
		return ErrNotInitialized
	}
	e.loadBackground(src, done)
	return nil
}

func (e *Editor) loadBackground(src string, done func(*Editor, int, int)) {
	e.background = src
	if e.opts.ImageLoader == nil || src == "" {
		e.surface.SetBackground(src, 0, 0)
		if done != nil {
			done(e, 0, 0)
		}
		return
	}
	e.opts.ImageLoader.Load(src, func(w, h int, err error) {
		if err != nil {
			e.log.Warn().Err(err).Str("src", src).Msg("background load failed")
			return
		}
		if e.background != src {
			return
		}
		e.surface.SetBackground(src, w, h)
		if done != nil {
			done(e, w, h)
		}
	})
}

// Zoom applies a zoom slider value. The surface scale is value/20.
func (e *Editor) Zoom(value float64) error {
	if !e.ready {
		return ErrNotInitialized
	}
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("editor: invalid zoom value %v", value)
	}
	e.scale = value / 20
	e.surface.SetScale(e.scale)
	return nil
}

// Scale returns the current surface scale.
func (e *Editor) Scale() float64 { return e.scale }

// ZoomPercentage converts a zoom slider value to the percentage shown to
// users. A value of 1 reads as 0%.
func ZoomPercentage(value float64) int {
	if value == 1 {
		return 0
	}
	return int(math.Round(value / 50 * 100))
}

// Prioritize moves top above the other layer.
func (e *Editor) Prioritize(top Layer) error {
	if !e.ready {
		return ErrNotInitialized
	}
	e.surface.SetPriority(top)
	return nil
}

func (e *Editor) allowed(a Action) bool {
	if !e.mode.Allows(a) {
		return false
	}
	switch a {
	case ActionResize, ActionTranslate:
		if e.marker.DrawInsidePolygonOnly {
			return false
		}
	}
	return true
}

func (e *Editor) reject(a Action, reason string) {
	e.log.Debug().Stringer("action", a).Stringer("mode", e.mode).Str("reason", reason).Msg("rejected")
}

func (e *Editor) notifyChange() {
	if e.opts.OnChange != nil {
		e.opts.OnChange(e.doc.snapshot())
	}
}
