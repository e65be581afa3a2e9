package appstate

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"time"

	"github.com/example/polyzone/internal/clipboard"
	"github.com/example/polyzone/internal/editor"
	"github.com/example/polyzone/internal/geometry"
	"github.com/example/polyzone/internal/notify"
	"github.com/example/polyzone/internal/render"
	"github.com/example/polyzone/internal/theme"
	"github.com/rs/zerolog"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

const (
	defaultZoom = 20
	zoomStep    = 5
	minZoom     = 5
	maxZoom     = 200
	panStep     = 20
	messageTTL  = 2 * time.Second
)

var toolLabels = []struct {
	label string
	tool  editor.Tool
}{
	{"N:None", editor.ToolNone},
	{"P:Draw", editor.ToolDraw},
	{"E:Erase", editor.ToolErase},
	{"G:Drag", editor.ToolDrag},
	{"M:Marker", editor.ToolMarker},
}

// controller owns the editor state behind a window. Every method runs on
// the event loop goroutine.
type controller struct {
	ed     *editor.Editor
	canvas *render.Canvas
	theme  *theme.Theme
	log    zerolog.Logger
	notify *notify.Notifier

	output     string
	exportPath string
	readOnly   editor.ReadOnlyOptions

	writeDoc   func(geometry.Document) error
	readDoc    func() (geometry.Document, error)
	writeImage func(image.Image) error

	zoom    float64
	pan     image.Point
	dirty   bool
	message string
	until   time.Time
	now     func() time.Time

	confirm *prompt

	actions        map[string]func()
	keyboardAction map[KeyShortcut]string
	toolButtons    []*CacheButton
	shortcuts      []*Shortcut
	hoverTool      int
	hoverShortcut  int

	pressed bool
	quit    bool
}

func newController(a *AppState, log zerolog.Logger) *controller {
	c := &controller{
		canvas:        render.NewCanvas(a.Theme),
		theme:         a.Theme,
		log:           log,
		notify:        a.Notifier,
		output:        a.Output,
		exportPath:    a.ExportPath,
		writeDoc:      clipboard.WriteDocument,
		readDoc:       clipboard.ReadDocument,
		writeImage:    clipboard.WriteImage,
		zoom:          defaultZoom,
		now:           time.Now,
		hoverTool:     -1,
		hoverShortcut: -1,
	}
	if c.theme == nil {
		c.theme = theme.Default()
		c.canvas.Theme = c.theme
	}
	if c.notify == nil {
		c.notify = notify.New(notify.DefaultPreferences(), log)
	}
	if a.Background != nil {
		c.canvas.SetBackgroundImage(a.BackgroundSrc, a.Background)
	}
	c.configure()
	return c
}

// options are the editor options the window supplies itself.
func (c *controller) options(sched editor.Scheduler) []editor.Option {
	return []editor.Option{
		editor.WithSurface(c.canvas),
		editor.WithImageLoader(c.canvas),
		editor.WithConfirmer(editor.ConfirmFunc(c.ask)),
		editor.WithScheduler(sched),
		editor.WithLogger(c.log),
		editor.WithOnChange(func(geometry.Document) { c.dirty = true }),
	}
}

func (c *controller) attach(ed *editor.Editor) error {
	c.ed = ed
	if err := ed.Init(); err != nil {
		return err
	}
	c.readOnly = ed.Mode().ReadOnly.Options()
	c.readOnly.All = false
	c.dirty = false
	return ed.Zoom(c.zoom)
}

func (c *controller) flash(format string, args ...interface{}) {
	c.message = fmt.Sprintf(format, args...)
	c.until = c.now().Add(messageTTL)
	c.log.Info().Msg(c.message)
}

func (c *controller) fail(action string, err error) {
	c.message = fmt.Sprintf("%s: %v", action, err)
	c.until = c.now().Add(messageTTL)
	c.log.Error().Err(err).Str("action", action).Msg("action failed")
}

func (c *controller) messageVisible() bool {
	return c.message != "" && c.now().Before(c.until)
}

func (c *controller) register(name string, keys KeyboardShortcuts, fn func()) {
	c.actions[name] = fn
	if keys != nil {
		for _, sc := range keys.KeyboardShortcuts() {
			c.keyboardAction[sc] = name
		}
	}
}

func (c *controller) configure() {
	c.actions = map[string]func(){}
	c.keyboardAction = map[KeyShortcut]string{}

	c.toolButtons = c.toolButtons[:0]
	for _, tl := range toolLabels {
		c.toolButtons = append(c.toolButtons, &CacheButton{Button: &ToolButton{
			label: tl.label, tool: tl.tool, theme: c.theme, onSelect: c.selectTool,
		}})
		t := tl.tool
		r := rune(tl.label[0]) + ('a' - 'A')
		c.register("tool:"+t.String(), shortcutList{{Rune: r}}, func() { c.selectTool(t) })
	}

	c.register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, c.save)
	c.register("export", shortcutList{{Rune: 'e', Modifiers: key.ModControl}}, c.export)
	c.register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, c.copyDocument)
	c.register("copyimage", shortcutList{{Rune: 'i', Modifiers: key.ModControl}}, c.copyImage)
	c.register("paste", shortcutList{{Rune: 'v', Modifiers: key.ModControl}}, c.paste)
	c.register("zoomin", shortcutList{{Rune: '+'}, {Rune: '='}}, func() { c.setZoom(c.zoom + zoomStep) })
	c.register("zoomout", shortcutList{{Rune: '-'}}, func() { c.setZoom(c.zoom - zoomStep) })
	c.register("zoomreset", shortcutList{{Rune: '0'}}, func() { c.setZoom(defaultZoom); c.pan = image.Point{} })
	c.register("readonly", shortcutList{{Rune: 'r'}}, c.toggleReadOnly)
	c.register("inside", shortcutList{{Rune: 'i'}}, c.toggleInsideOnly)
	c.register("polygonsontop", shortcutList{{Rune: '['}}, func() { c.prioritize(editor.LayerPolygons) })
	c.register("markersontop", shortcutList{{Rune: ']'}}, func() { c.prioritize(editor.LayerMarkers) })
	c.register("cancel", shortcutList{{Code: key.CodeEscape}}, c.cancel)
	c.register("clear", shortcutList{{Rune: 'x', Modifiers: key.ModControl}}, c.clearAll)
	c.register("quit", shortcutList{{Rune: 'q'}}, func() { c.quit = true })
	c.register("left", shortcutList{{Code: key.CodeLeftArrow}}, func() { c.pan.X += panStep })
	c.register("right", shortcutList{{Code: key.CodeRightArrow}}, func() { c.pan.X -= panStep })
	c.register("up", shortcutList{{Code: key.CodeUpArrow}}, func() { c.pan.Y += panStep })
	c.register("down", shortcutList{{Code: key.CodeDownArrow}}, func() { c.pan.Y -= panStep })

	c.shortcuts = []*Shortcut{
		{label: "^S:save", action: c.save, theme: c.theme},
		{label: "^E:export", action: c.export, theme: c.theme},
		{label: "^C:copy", action: c.copyDocument, theme: c.theme},
		{label: "^V:paste", action: c.paste, theme: c.theme},
		{label: "R:lock", action: c.toggleReadOnly, theme: c.theme},
		{label: "+/-:zoom", action: func() { c.setZoom(c.zoom + zoomStep) }, theme: c.theme},
		{label: "Q:quit", action: func() { c.quit = true }, theme: c.theme},
	}
}

func (c *controller) selectTool(t editor.Tool) {
	c.ed.SelectMode(t)
}

func (c *controller) setZoom(v float64) {
	if v < minZoom {
		v = minZoom
	}
	if v > maxZoom {
		v = maxZoom
	}
	if err := c.ed.Zoom(v); err != nil {
		c.fail("zoom", err)
		return
	}
	c.zoom = v
}

func (c *controller) prioritize(top editor.Layer) {
	if err := c.ed.Prioritize(top); err != nil {
		c.fail("prioritize", err)
		return
	}
	c.flash("%s on top", top)
}

// toggleReadOnly flips between a full lock and the configured per-kind
// gates.
func (c *controller) toggleReadOnly() {
	if c.ed.Mode().ReadOnly.Has(editor.ReadOnlyAll) {
		c.ed.SetReadOnly(c.readOnly)
		c.flash("editing unlocked")
		return
	}
	c.ed.SetReadOnly(editor.ReadOnlyOptions{All: true})
	c.flash("editing locked")
}

func (c *controller) toggleInsideOnly() {
	v := !c.ed.MarkerOptions().DrawInsidePolygonOnly
	c.ed.SetDrawInsidePolygonOnly(v)
	if v {
		c.flash("markers restricted to polygons")
	} else {
		c.flash("markers allowed anywhere")
	}
}

// cancel dismisses a pending confirmation, or drops the polygon being
// drawn while staying in the draw tool.
func (c *controller) cancel() {
	if c.confirm != nil {
		c.confirm = nil
		return
	}
	if c.ed.Drawing() {
		c.ed.SelectMode(editor.ToolNone)
		c.ed.SelectMode(editor.ToolDraw)
	}
}

func (c *controller) clearAll() {
	c.ask("Clear", "Remove every polygon and marker?", func() {
		if err := c.ed.ResetEditorData(); err != nil {
			c.fail("clear", err)
		}
	})
}

func (c *controller) save() {
	doc := c.ed.GetEditorData()
	f, err := os.Create(c.output)
	if err != nil {
		c.fail("save", err)
		return
	}
	if err := doc.Encode(f); err != nil {
		f.Close()
		c.fail("save", err)
		return
	}
	if err := f.Close(); err != nil {
		c.fail("save", fmt.Errorf("closing file: %w", err))
		return
	}
	c.dirty = false
	c.flash("saved %s", c.output)
	c.notify.Save(c.output, doc)
}

func (c *controller) export() {
	f, err := os.Create(c.exportPath)
	if err != nil {
		c.fail("export", err)
		return
	}
	if err := c.canvas.EncodePNG(f); err != nil {
		f.Close()
		c.fail("export", err)
		return
	}
	if err := f.Close(); err != nil {
		c.fail("export", fmt.Errorf("closing file: %w", err))
		return
	}
	c.flash("exported %s", c.exportPath)
	c.notify.Export(c.exportPath)
}

func (c *controller) copyDocument() {
	doc := c.ed.GetEditorData()
	if err := c.writeDoc(doc); err != nil {
		c.fail("copy", err)
		return
	}
	c.flash("copied %s", notify.Summary(doc))
	c.notify.Copy(notify.Summary(doc))
}

func (c *controller) copyImage() {
	if err := c.writeImage(c.canvas.Render()); err != nil {
		c.fail("copy image", err)
		return
	}
	c.flash("image copied to clipboard")
	c.notify.Copy("rendered image")
}

func (c *controller) paste() {
	doc, err := c.readDoc()
	if err != nil {
		c.fail("paste", err)
		return
	}
	if err := c.ed.SetEditorData(doc, c.ed.Background()); err != nil {
		c.fail("paste", err)
		return
	}
	c.flash("pasted %s", notify.Summary(doc))
}

func (c *controller) ask(title, message string, onConfirm func()) {
	c.confirm = &prompt{title: title, message: message, onConfirm: onConfirm}
}

// handleKey applies a key press and reports whether the window should
// close.
func (c *controller) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return c.quit
	}
	if c.confirm != nil {
		c.answer(e)
		return c.quit
	}
	if name, ok := c.keyboardAction[shortcutOf(e)]; ok {
		c.actions[name]()
	}
	return c.quit
}

func (c *controller) answer(e key.Event) {
	p := c.confirm
	switch {
	case e.Rune == 'y' || e.Rune == 'Y' || e.Code == key.CodeReturnEnter:
		c.confirm = nil
		p.onConfirm()
	case e.Rune == 'n' || e.Rune == 'N' || e.Code == key.CodeEscape:
		c.confirm = nil
	}
}

// origin is where the canvas' top-left corner sits in the window.
func (c *controller) origin() image.Point {
	return image.Pt(toolbarWidth, headerHeight).Add(c.pan)
}

func (c *controller) toCanvas(x, y float32) geometry.Point {
	o := c.origin()
	return c.canvas.FromWindow(float64(x)-float64(o.X), float64(y)-float64(o.Y))
}

// handleMouse routes chrome clicks to buttons and everything over the
// canvas to the editor.
func (c *controller) handleMouse(e mouse.Event, width, height int) {
	p := image.Pt(int(e.X), int(e.Y))
	if c.confirm != nil && e.Direction == mouse.DirPress {
		c.confirm = nil
		return
	}
	if !c.pressed {
		if c.handleChrome(e, p, width, height) {
			return
		}
	}
	if e.Button != mouse.ButtonLeft && e.Button != mouse.ButtonNone {
		return
	}
	pos := c.toCanvas(e.X, e.Y)
	ev := editor.PointerEvent{Pos: pos, Target: c.canvas.Pick(pos)}
	var err error
	switch e.Direction {
	case mouse.DirPress:
		c.pressed = true
		err = c.ed.PointerDown(ev)
	case mouse.DirRelease:
		if !c.pressed {
			return
		}
		c.pressed = false
		err = c.ed.PointerUp(ev)
	case mouse.DirNone:
		err = c.ed.PointerMove(ev)
	}
	var verr *geometry.ValidationError
	if errors.As(err, &verr) {
		c.flash("cannot close polygon: %v", verr.Err)
	} else if err != nil {
		c.fail("pointer", err)
	}
}

func (c *controller) handleChrome(e mouse.Event, p image.Point, width, height int) bool {
	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
	switch {
	case p.Y >= height-bottomHeight:
		c.hoverShortcut = -1
		for i, sc := range c.shortcuts {
			if p.In(sc.rect) {
				c.hoverShortcut = i
				if press {
					sc.Activate()
				}
				break
			}
		}
		return true
	case p.Y < headerHeight:
		return true
	case p.X < toolbarWidth:
		c.hoverTool = -1
		idx := (p.Y - headerHeight) / buttonHeight
		if idx >= 0 && idx < len(c.toolButtons) {
			c.hoverTool = idx
			if press {
				c.toolButtons[idx].Activate()
			}
		}
		return true
	}
	c.hoverTool, c.hoverShortcut = -1, -1
	return false
}

// frame composes the whole window.
func (c *controller) frame(width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{c.theme.Background}, image.Point{}, draw.Src)

	view := c.canvas.Render()
	area := image.Rect(toolbarWidth, headerHeight, width, height-bottomHeight)
	o := c.origin()
	r := view.Bounds().Add(o).Intersect(area)
	draw.Draw(dst, r, view, r.Min.Sub(o), draw.Src)

	c.drawHeader(dst, width)
	c.drawToolbar(dst, height)
	c.drawShortcuts(dst, width, height)

	switch {
	case c.confirm != nil:
		drawBanner(dst, c.theme, c.confirm.String())
	case c.messageVisible():
		drawBanner(dst, c.theme, c.message)
	}
	return dst
}

func (c *controller) drawHeader(dst *image.RGBA, width int) {
	draw.Draw(dst, image.Rect(0, 0, width, headerHeight), &image.Uniform{c.theme.ToolbarBackground}, image.Point{}, draw.Src)
	x := drawText(dst, 4, 16, c.theme.Foreground, "Polyzone")
	status := fmt.Sprintf("%s  zoom %d%%  %s", c.ed.Mode(), editor.ZoomPercentage(c.zoom), notify.Summary(c.ed.GetEditorData()))
	if c.ed.Drawing() {
		status += fmt.Sprintf("  drawing %d points", len(c.ed.SessionPoints()))
	}
	if c.dirty {
		status += "  *"
	}
	drawText(dst, x+16, 16, c.theme.Foreground, status)
}

func (c *controller) drawToolbar(dst *image.RGBA, height int) {
	draw.Draw(dst, image.Rect(0, headerHeight, toolbarWidth, height-bottomHeight), &image.Uniform{c.theme.ToolbarBackground}, image.Point{}, draw.Src)
	active := c.ed.Mode().Tool
	y := headerHeight
	for i, cb := range c.toolButtons {
		cb.SetRect(image.Rect(0, y, toolbarWidth, y+buttonHeight))
		state := StateDefault
		if cb.Button.(*ToolButton).tool == active {
			state = StatePressed
		} else if i == c.hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state)
		y += buttonHeight
	}
}

func (c *controller) drawShortcuts(dst *image.RGBA, width, height int) {
	rect := image.Rect(0, height-bottomHeight, width, height)
	draw.Draw(dst, rect, &image.Uniform{c.theme.ToolbarBackground}, image.Point{}, draw.Src)
	x := toolbarWidth + 4
	y := height - bottomHeight + 2
	for i, sc := range c.shortcuts {
		w := measure(sc.label) + 8
		sc.SetRect(image.Rect(x, y, x+w, y+bottomHeight-4))
		state := StateDefault
		if i == c.hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
		x += w + 6
	}
}
