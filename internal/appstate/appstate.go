// Package appstate drives an editor.Editor from a shiny window: it turns
// mouse and keyboard events into editor calls and paints the canvas with
// a toolbar, header and shortcut bar around it.
package appstate

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"unicode"

	"github.com/example/polyzone/internal/editor"
	"github.com/example/polyzone/internal/theme"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
)

const (
	headerHeight = 24
	bottomHeight = 24
	buttonHeight = 24
)

var toolbarWidth = 72

// frameDropThreshold specifies how many consecutive frames can be canceled
// before an upload is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// KeyShortcut describes a keyboard combination that triggers an action.
// Printable keys match on Rune; the rest match on Code.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// shortcutOf normalises a key event for lookup. Shift is dropped for
// printable keys since it is already folded into the rune.
func shortcutOf(e key.Event) KeyShortcut {
	if e.Rune > 0 {
		r := e.Rune
		if unicode.IsLetter(r) {
			r = unicode.ToLower(r)
		}
		return KeyShortcut{Rune: r, Modifiers: e.Modifiers &^ key.ModShift}
	}
	return KeyShortcut{Code: e.Code, Modifiers: e.Modifiers}
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// buttonFace paints the shared button chrome and label.
func buttonFace(dst *image.RGBA, r image.Rectangle, th *theme.Theme, state ButtonState, label string) {
	c := th.ButtonBackground
	switch state {
	case StateHover:
		c = th.ButtonBackgroundHover
	case StatePressed:
		c = th.ButtonBackgroundActive
	}
	draw.Draw(dst, r, &image.Uniform{c}, image.Point{}, draw.Src)
	drawRect(dst, r, th.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(r.Min.X+4, r.Min.Y+16)}
	d.DrawString(label)
}

// ToolButton selects an editor tool.
type ToolButton struct {
	label    string
	tool     editor.Tool
	theme    *theme.Theme
	rect     image.Rectangle
	onSelect func(editor.Tool)
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	buttonFace(dst, tb.rect, tb.theme, state, tb.label)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) { tb.rect = r }

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect(tb.tool)
	}
}

// Shortcut is a clickable entry in the bottom bar.
type Shortcut struct {
	label  string
	action func()
	theme  *theme.Theme
	rect   image.Rectangle
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	buttonFace(dst, s.rect, s.theme, state, s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) { s.rect = r }

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

func drawRect(img *image.RGBA, r image.Rectangle, col color.Color) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

func drawText(dst *image.RGBA, x, y int, col color.Color, s string) int {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
	return d.Dot.X.Ceil()
}

func measure(s string) int {
	return (&font.Drawer{Face: basicfont.Face7x13}).MeasureString(s).Ceil()
}

// drawBanner centres msg over the window in a framed box.
func drawBanner(dst *image.RGBA, th *theme.Theme, msg string) {
	b := dst.Bounds()
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: messageFace}
	wmsg := d.MeasureString(msg).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	px := (b.Dx() - wmsg) / 2
	py := (b.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	bg := th.Background
	bg.A = 230
	draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Over)
	drawRect(dst, rect, th.ButtonBorder)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
