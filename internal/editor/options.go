package editor

import (
	"time"

	"github.com/example/polyzone/internal/geometry"
	"github.com/rs/zerolog"
)

const (
	DefaultShapeOpacity = 0.4
	DefaultCloseDelay   = 10 * time.Millisecond
	DefaultDragDelay    = 5 * time.Millisecond
)

// DefaultMarkerAnchor is the pin tip relative to its top-left corner.
var DefaultMarkerAnchor = geometry.Point{X: 8, Y: 25}

// MarkerHooks are optional host callbacks around marker interactions.
type MarkerHooks struct {
	OnAdd       func()
	OnRemove    func()
	OnDragStart func()
	OnDragEnd   func()
}

// MarkerOptions configures marker placement.
type MarkerOptions struct {
	// SinglePointer allows at most one marker in the document.
	SinglePointer bool
	// DrawInsidePolygonOnly restricts placement to polygon bodies and
	// freezes polygon geometry.
	DrawInsidePolygonOnly bool
	Anchor                geometry.Point
	Hooks                 MarkerHooks
}

// Options is the complete editor configuration.
type Options struct {
	Surface        Surface
	Confirmer      Confirmer
	Scheduler      Scheduler
	ImageLoader    ImageLoader
	IDGenerator    IDGenerator
	ColorGenerator func() string
	Logger         zerolog.Logger
	ShapeOpacity   float64
	ConfirmOnErase bool
	DefaultTool    Tool
	ReadOnly       ReadOnlyOptions
	Marker         MarkerOptions
	NotifyOnce     bool
	CloseDelay     time.Duration
	DragDelay      time.Duration
	InitialData    geometry.Document
	BackgroundSrc  string
	OnChange       func(geometry.Document)
	Mounted        func(*Editor)
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		IDGenerator:    uuidGenerator{},
		ColorGenerator: geometry.RandomColor,
		Logger:         zerolog.Nop(),
		ShapeOpacity:   DefaultShapeOpacity,
		ConfirmOnErase: true,
		DefaultTool:    ToolNone,
		Marker:         MarkerOptions{Anchor: DefaultMarkerAnchor},
		CloseDelay:     DefaultCloseDelay,
		DragDelay:      DefaultDragDelay,
	}
}

// Option mutates Options before the editor is built.
type Option func(*Options)

// WithOptions replaces the whole configuration.
func WithOptions(o Options) Option {
	return func(opts *Options) { *opts = o }
}

func WithSurface(s Surface) Option {
	return func(o *Options) { o.Surface = s }
}

func WithConfirmer(c Confirmer) Option {
	return func(o *Options) { o.Confirmer = c }
}

func WithScheduler(s Scheduler) Option {
	return func(o *Options) { o.Scheduler = s }
}

func WithImageLoader(l ImageLoader) Option {
	return func(o *Options) { o.ImageLoader = l }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(o *Options) { o.IDGenerator = g }
}

func WithColorGenerator(f func() string) Option {
	return func(o *Options) { o.ColorGenerator = f }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func WithShapeOpacity(v float64) Option {
	return func(o *Options) { o.ShapeOpacity = v }
}

func WithConfirmOnErase(v bool) Option {
	return func(o *Options) { o.ConfirmOnErase = v }
}

func WithDefaultTool(t Tool) Option {
	return func(o *Options) { o.DefaultTool = t }
}

func WithReadOnly(r ReadOnlyOptions) Option {
	return func(o *Options) { o.ReadOnly = r }
}

func WithMarkerOptions(m MarkerOptions) Option {
	return func(o *Options) { o.Marker = m }
}

func WithNotifyOnce(v bool) Option {
	return func(o *Options) { o.NotifyOnce = v }
}

func WithInitialData(doc geometry.Document) Option {
	return func(o *Options) { o.InitialData = doc }
}

func WithBackground(src string) Option {
	return func(o *Options) { o.BackgroundSrc = src }
}

// WithOnChange registers the data-change callback.
func WithOnChange(f func(geometry.Document)) Option {
	return func(o *Options) { o.OnChange = f }
}

func WithMounted(f func(*Editor)) Option {
	return func(o *Options) { o.Mounted = f }
}

func (o *Options) normalize() {
	if o.IDGenerator == nil {
		o.IDGenerator = uuidGenerator{}
	}
	if o.ColorGenerator == nil {
		o.ColorGenerator = geometry.RandomColor
	}
	if o.ShapeOpacity < 0 {
		o.ShapeOpacity = 0
	}
	if o.ShapeOpacity > 1 {
		o.ShapeOpacity = 1
	}
	if o.Marker.Anchor == (geometry.Point{}) {
		o.Marker.Anchor = DefaultMarkerAnchor
	}
	if o.CloseDelay <= 0 {
		o.CloseDelay = DefaultCloseDelay
	}
	if o.DragDelay <= 0 {
		o.DragDelay = DefaultDragDelay
	}
}
