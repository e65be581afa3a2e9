package editor

import (
	"time"

	"github.com/example/polyzone/internal/geometry"
	"github.com/google/uuid"
)

// Surface is the retained drawing area the editor renders into. Items are
// keyed by handle so hit-tests can be mapped back to document entries.
// Clear drops polygons, markers and the preview but keeps the background.
type Surface interface {
	Clear()
	AddPolygon(h Handle, p geometry.Polygon)
	UpdatePolygon(h Handle, p geometry.Polygon)
	RemovePolygon(h Handle)
	AddMarker(h Handle, at geometry.Point)
	MoveMarker(h Handle, at geometry.Point)
	RemoveMarker(h Handle)
	DrawPreview(p Preview)
	ClearPreview()
	SetMode(m Mode, insideOnly bool)
	SetBackground(src string, width, height int)
	SetScale(scale float64)
	SetPriority(top Layer)
}

// Preview is the in-progress drawing: the committed session points and,
// when HasEdge is set, the rubber-band edge following the pointer.
type Preview struct {
	Points   []geometry.Point
	EdgeFrom geometry.Point
	EdgeTo   geometry.Point
	HasEdge  bool
}

// Layer names a render layer for Prioritize.
type Layer int

const (
	LayerMarkers Layer = iota
	LayerPolygons
)

func (l Layer) String() string {
	if l == LayerPolygons {
		return "polygons"
	}
	return "markers"
}

// TargetKind classifies what a pointer event landed on.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetSurface
	TargetPolygon
	TargetVertex
	TargetPreviewVertex
	TargetMarker
)

var targetNames = [...]string{"none", "surface", "polygon", "vertex", "preview-vertex", "marker"}

func (k TargetKind) String() string {
	if int(k) < len(targetNames) {
		return targetNames[k]
	}
	return "unknown"
}

// Target is the result of a surface hit-test. Handle is set for polygon,
// vertex and marker targets; Vertex indexes the polygon or preview point.
type Target struct {
	Kind   TargetKind
	Handle Handle
	Vertex int
}

// Confirmer asks the user to approve a destructive action. onConfirm runs
// only on approval, possibly later.
type Confirmer interface {
	Confirm(title, message string, onConfirm func())
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(title, message string, onConfirm func())

func (f ConfirmFunc) Confirm(title, message string, onConfirm func()) { f(title, message, onConfirm) }

// Scheduler runs fn after delay on the editor's goroutine.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(delay time.Duration, fn func())

func (f SchedulerFunc) Schedule(delay time.Duration, fn func()) { f(delay, fn) }

// ImageLoader resolves a background source to its pixel size. done must be
// invoked on the editor's goroutine.
type ImageLoader interface {
	Load(src string, done func(width, height int, err error))
}

// IDGenerator mints marker identities.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func (uuidGenerator) NewID() string { return uuid.NewString() }
