package appstate

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/example/polyzone/internal/editor"
	"github.com/example/polyzone/internal/notify"
	"github.com/example/polyzone/internal/theme"
	"github.com/rs/zerolog"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// AppState holds the window configuration.
type AppState struct {
	Theme         *theme.Theme
	Output        string
	ExportPath    string
	Background    image.Image
	BackgroundSrc string
	Notifier      *notify.Notifier
	Logger        zerolog.Logger
	EditorOptions []editor.Option

	onClose   func()
	closeOnce sync.Once
	err       error
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTheme sets the window and annotation colors.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.Theme = th } }

// WithOutput sets the JSON path written by save.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithExportPath sets the PNG path written by export.
func WithExportPath(out string) Option { return func(a *AppState) { a.ExportPath = out } }

// WithBackground shows img behind the annotations under the name src.
func WithBackground(src string, img image.Image) Option {
	return func(a *AppState) {
		a.BackgroundSrc = src
		a.Background = img
	}
}

// WithNotifier sets the desktop notifier used after save, copy and export.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(a *AppState) { a.Logger = l } }

// WithEditorOptions appends options for the embedded editor. The window
// always supplies its own surface, loader, confirmer and scheduler.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(a *AppState) { a.EditorOptions = append(a.EditorOptions, opts...) }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Output:     "annotations.json",
		ExportPath: "annotations.png",
		Logger:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver and returns the first
// error that stopped it.
func (a *AppState) Run() error {
	driver.Main(a.Main)
	return a.err
}

// Main runs the window on s until it is closed.
func (a *AppState) Main(s screen.Screen) {
	defer a.notifyClose()
	log := a.Logger.With().Str("component", "window").Logger()

	c := newController(a, log)
	size0 := c.canvas.Size()
	width := size0.X + toolbarWidth
	height := size0.Y + headerHeight + bottomHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Polyzone"})
	if err != nil {
		a.err = fmt.Errorf("new window: %w", err)
		return
	}
	defer w.Release()

	sched := windowScheduler{post: func(ev taskEvent) { w.Send(ev) }}
	opts := append(append([]editor.Option{}, a.EditorOptions...), c.options(sched)...)
	if err := c.attach(editor.New(opts...)); err != nil {
		a.err = fmt.Errorf("editor: %w", err)
		return
	}

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan *image.RGBA, 1)
	go func() {
		for img := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			upload(ctx, s, w, img, log)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	stop := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	for {
		switch e := w.NextEvent().(type) {
		case taskEvent:
			e.fn()
			w.Send(paint.Event{})
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stop()
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			img := c.frame(width, height)
			offerFrame(paintCh, img)
		case mouse.Event:
			c.handleMouse(e, width, height)
			w.Send(paint.Event{})
		case key.Event:
			if c.handleKey(e) {
				stop()
				return
			}
			w.Send(paint.Event{})
		case error:
			log.Error().Err(e).Msg("window event")
		}
	}
}

func upload(ctx context.Context, s screen.Screen, w screen.Window, img *image.RGBA, log zerolog.Logger) {
	b, err := s.NewBuffer(img.Bounds().Size())
	if err != nil {
		log.Error().Err(err).Msg("new buffer")
		return
	}
	defer b.Release()
	draw.Draw(b.RGBA(), b.Bounds(), img, image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// offerFrame replaces any frame still waiting in ch with img. The caller
// must be the only sender on ch.
func offerFrame(ch chan *image.RGBA, img *image.RGBA) {
	select {
	case <-ch:
	default:
	}
	ch <- img
}
