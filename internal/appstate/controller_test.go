package appstate

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/polyzone/internal/editor"
	"github.com/example/polyzone/internal/geometry"
	"github.com/rs/zerolog"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

type deferred struct{ fns []func() }

func (d *deferred) Schedule(_ time.Duration, fn func()) { d.fns = append(d.fns, fn) }

func square() geometry.Polygon {
	return geometry.Polygon{
		Points:  []geometry.Point{{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 200, Y: 200}, {X: 100, Y: 200}},
		Fill:    "#00FF00",
		Opacity: 0.5,
	}
}

func newTestController(t *testing.T, doc geometry.Document, opts ...editor.Option) *controller {
	t.Helper()
	dir := t.TempDir()
	a := New(WithOutput(filepath.Join(dir, "zones.json")), WithExportPath(filepath.Join(dir, "zones.png")))
	c := newController(a, zerolog.Nop())
	c.writeDoc = func(geometry.Document) error { return errors.New("clipboard unavailable") }
	c.readDoc = func() (geometry.Document, error) { return geometry.Document{}, errors.New("clipboard unavailable") }
	c.writeImage = func(image.Image) error { return nil }
	all := append([]editor.Option{editor.WithInitialData(doc)}, opts...)
	all = append(all, c.options(&deferred{})...)
	if err := c.attach(editor.New(all...)); err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	return c
}

func press(r rune) key.Event { return key.Event{Rune: r, Direction: key.DirPress} }

func ctrl(r rune) key.Event {
	return key.Event{Rune: r, Modifiers: key.ModControl, Direction: key.DirPress}
}

// clickAt clicks at surface coordinates, converted to window pixels.
func clickAt(c *controller, x, y float64) {
	o := c.origin()
	s := c.canvas.Scale()
	wx, wy := float32(float64(o.X)+x*s), float32(float64(o.Y)+y*s)
	c.handleMouse(mouse.Event{X: wx, Y: wy, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, 800, 600)
	c.handleMouse(mouse.Event{X: wx, Y: wy, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}, 800, 600)
}

func TestToolKeys(t *testing.T) {
	c := newTestController(t, geometry.Document{})
	tests := []struct {
		ev   key.Event
		want editor.Tool
	}{
		{press('p'), editor.ToolDraw},
		{key.Event{Rune: 'E', Modifiers: key.ModShift, Direction: key.DirPress}, editor.ToolErase},
		{press('g'), editor.ToolDrag},
		{press('m'), editor.ToolMarker},
		{press('n'), editor.ToolNone},
	}
	for _, tc := range tests {
		c.handleKey(tc.ev)
		if got := c.ed.Mode().Tool; got != tc.want {
			t.Errorf("after %q tool = %v, want %v", tc.ev.Rune, got, tc.want)
		}
	}
}

func TestDrawPolygonWithMouse(t *testing.T) {
	c := newTestController(t, geometry.Document{})
	c.handleKey(press('p'))
	clickAt(c, 10, 10)
	clickAt(c, 110, 10)
	clickAt(c, 60, 90)
	if got := len(c.ed.SessionPoints()); got != 3 {
		t.Fatalf("expected 3 session points, got %d", got)
	}
	clickAt(c, 10, 10)
	if c.ed.Drawing() {
		t.Fatal("clicking the first vertex should close the polygon")
	}
	if got := len(c.ed.GetPolygons()); got != 1 {
		t.Fatalf("expected one polygon, got %d", got)
	}
	if c.dirty {
		t.Error("the document is reported after the deferred resync")
	}
	c.ed.Flush()
	if !c.dirty {
		t.Error("closing a polygon should mark the document modified")
	}
}

func TestEscapeDropsSessionButKeepsTool(t *testing.T) {
	c := newTestController(t, geometry.Document{})
	c.handleKey(press('p'))
	clickAt(c, 10, 10)
	clickAt(c, 50, 10)
	c.handleKey(key.Event{Code: key.CodeEscape, Direction: key.DirPress})
	if c.ed.Drawing() {
		t.Error("escape should drop the session")
	}
	if c.ed.Mode().Tool != editor.ToolDraw {
		t.Errorf("tool = %v, want draw", c.ed.Mode().Tool)
	}
}

func TestEraseAsksForConfirmation(t *testing.T) {
	c := newTestController(t, geometry.Document{Polygons: []geometry.Polygon{square()}})
	c.handleKey(press('e'))
	clickAt(c, 150, 150)
	if c.confirm == nil {
		t.Fatal("expected a confirmation prompt")
	}
	c.handleKey(press('n'))
	if c.confirm != nil || len(c.ed.GetPolygons()) != 1 {
		t.Fatal("declining should keep the polygon")
	}

	clickAt(c, 150, 150)
	c.handleKey(press('q'))
	if c.quit {
		t.Fatal("keys other than y/n must not act while a prompt is open")
	}
	c.handleKey(press('y'))
	if got := len(c.ed.GetPolygons()); got != 0 {
		t.Errorf("expected polygon erased, %d left", got)
	}
}

func TestSaveWritesDocument(t *testing.T) {
	c := newTestController(t, geometry.Document{Polygons: []geometry.Polygon{square()}})
	c.dirty = true
	c.handleKey(ctrl('s'))
	f, err := os.Open(c.output)
	if err != nil {
		t.Fatalf("open saved file: %v", err)
	}
	defer f.Close()
	doc, err := geometry.Decode(f)
	if err != nil {
		t.Fatalf("decode saved file: %v", err)
	}
	if len(doc.Polygons) != 1 || doc.Polygons[0].Fill != "#00FF00" {
		t.Errorf("unexpected document %+v", doc)
	}
	if c.dirty {
		t.Error("save should clear the modified flag")
	}
}

func TestExportWritesPNG(t *testing.T) {
	c := newTestController(t, geometry.Document{Polygons: []geometry.Polygon{square()}})
	c.handleKey(ctrl('e'))
	f, err := os.Open(c.exportPath)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if img.Bounds().Dx() < 200 {
		t.Errorf("export too small: %v", img.Bounds())
	}
}

func TestClipboardActions(t *testing.T) {
	c := newTestController(t, geometry.Document{})
	c.handleKey(ctrl('c'))
	if !c.messageVisible() {
		t.Error("a failed copy should be reported")
	}

	var copied geometry.Document
	c.writeDoc = func(d geometry.Document) error { copied = d; return nil }
	c.readDoc = func() (geometry.Document, error) {
		return geometry.Document{Polygons: []geometry.Polygon{square(), square()}}, nil
	}
	c.handleKey(ctrl('v'))
	if got := len(c.ed.GetPolygons()); got != 2 {
		t.Fatalf("paste should load 2 polygons, got %d", got)
	}
	c.handleKey(ctrl('c'))
	if len(copied.Polygons) != 2 {
		t.Errorf("copy wrote %d polygons", len(copied.Polygons))
	}
}

func TestZoomKeys(t *testing.T) {
	c := newTestController(t, geometry.Document{})
	c.handleKey(key.Event{Rune: '+', Modifiers: key.ModShift, Direction: key.DirPress})
	if c.zoom != defaultZoom+zoomStep || c.canvas.Scale() != 1.25 {
		t.Errorf("zoom = %v scale = %v", c.zoom, c.canvas.Scale())
	}
	for i := 0; i < 10; i++ {
		c.handleKey(press('-'))
	}
	if c.zoom != minZoom {
		t.Errorf("zoom should clamp at %v, got %v", float64(minZoom), c.zoom)
	}
	c.handleKey(press('0'))
	if c.zoom != defaultZoom {
		t.Errorf("zoom reset = %v", c.zoom)
	}
}

func TestReadOnlyToggleRestoresGates(t *testing.T) {
	c := newTestController(t, geometry.Document{}, editor.WithReadOnly(editor.ReadOnlyOptions{Marker: true}))
	c.handleKey(press('r'))
	if !c.ed.Mode().ReadOnly.Has(editor.ReadOnlyAll) {
		t.Fatal("expected full lock")
	}
	c.handleKey(press('r'))
	ro := c.ed.Mode().ReadOnly
	if ro.Has(editor.ReadOnlyAll) || !ro.Has(editor.ReadOnlyMarker) {
		t.Errorf("unlock should restore configured gates, got %v", ro)
	}
}

func TestToolbarClickSelectsTool(t *testing.T) {
	c := newTestController(t, geometry.Document{})
	c.frame(800, 600)
	y := float32(headerHeight + buttonHeight*1 + 4)
	c.handleMouse(mouse.Event{X: 4, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, 800, 600)
	if c.ed.Mode().Tool != editor.ToolDraw {
		t.Errorf("tool = %v, want draw", c.ed.Mode().Tool)
	}
	if c.ed.Drawing() {
		t.Error("toolbar clicks must not reach the editor")
	}
}

func TestFrameSize(t *testing.T) {
	c := newTestController(t, geometry.Document{Polygons: []geometry.Polygon{square()}})
	c.ask("Erase!", "Are you sure?", func() {})
	img := c.frame(640, 480)
	if img.Bounds() != image.Rect(0, 0, 640, 480) {
		t.Errorf("unexpected frame bounds %v", img.Bounds())
	}
	if img.RGBAAt(toolbarWidth+150, headerHeight+150).G == 0 {
		t.Error("expected the polygon fill inside the canvas area")
	}
}

func TestShortcutNormalisation(t *testing.T) {
	tests := []struct {
		ev   key.Event
		want KeyShortcut
	}{
		{key.Event{Rune: 'S', Modifiers: key.ModControl | key.ModShift}, KeyShortcut{Rune: 's', Modifiers: key.ModControl}},
		{key.Event{Rune: '+', Modifiers: key.ModShift}, KeyShortcut{Rune: '+'}},
		{key.Event{Rune: -1, Code: key.CodeEscape}, KeyShortcut{Code: key.CodeEscape}},
	}
	for _, tc := range tests {
		if got := shortcutOf(tc.ev); got != tc.want {
			t.Errorf("shortcutOf(%+v) = %+v, want %+v", tc.ev, got, tc.want)
		}
	}
}

func TestWindowSchedulerPostsTask(t *testing.T) {
	got := make(chan taskEvent, 1)
	s := windowScheduler{post: func(ev taskEvent) { got <- ev }}
	ran := false
	s.Schedule(time.Millisecond, func() { ran = true })
	select {
	case ev := <-got:
		ev.fn()
	case <-time.After(time.Second):
		t.Fatal("task was not posted")
	}
	if !ran {
		t.Error("posted task did not carry the callback")
	}
}

func TestOfferFrameNeverBlocks(t *testing.T) {
	ch := make(chan *image.RGBA, 1)
	first := image.NewRGBA(image.Rect(0, 0, 1, 1))
	second := image.NewRGBA(image.Rect(0, 0, 2, 2))

	offerFrame(ch, first)
	offerFrame(ch, second)
	if got := <-ch; got != second {
		t.Errorf("expected the newest frame, got %v", got.Bounds())
	}

	// An empty buffer takes the frame without waiting on a reader.
	done := make(chan struct{})
	go func() {
		offerFrame(ch, first)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("offerFrame blocked on an empty channel")
	}
	if got := <-ch; got != first {
		t.Errorf("expected the offered frame, got %v", got.Bounds())
	}
}
