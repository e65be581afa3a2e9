// Package render rasterises an editor document onto an RGBA image and
// answers the hit-tests the editor needs for pointer input.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/example/polyzone/internal/editor"
	"github.com/example/polyzone/internal/geometry"
	"github.com/example/polyzone/internal/theme"
	xdraw "golang.org/x/image/draw"
)

const (
	handleRadius = 4
	pickSlack    = 2
	pinWidth     = 28
	pinHeight    = 36
	pinScale     = 0.6
	emptyWidth   = 640
	emptyHeight  = 480
	contentPad   = 40
)

type polygonNode struct {
	h    editor.Handle
	poly geometry.Polygon
	fill color.RGBA
}

type markerNode struct {
	h  editor.Handle
	at geometry.Point
}

// Canvas is a raster editor.Surface. It also loads background images so
// it can serve as the editor's ImageLoader.
type Canvas struct {
	Theme  *theme.Theme
	Shadow ShadowOptions
	Labels bool

	images     map[string]image.Image
	bg         image.Image
	bgSrc      string
	polygons   []polygonNode
	markers    []markerNode
	preview    *editor.Preview
	mode       editor.Mode
	insideOnly bool
	scale      float64
	top        editor.Layer
}

// NewCanvas returns an empty canvas painted with th, or the default theme
// when th is nil.
func NewCanvas(th *theme.Theme) *Canvas {
	if th == nil {
		th = theme.Default()
	}
	return &Canvas{
		Theme:  th,
		Shadow: MarkerShadowOptions(),
		images: map[string]image.Image{},
		scale:  1,
		top:    editor.LayerMarkers,
	}
}

var _ editor.Surface = (*Canvas)(nil)
var _ editor.ImageLoader = (*Canvas)(nil)

func (c *Canvas) Clear() {
	c.polygons = nil
	c.markers = nil
	c.preview = nil
}

func (c *Canvas) AddPolygon(h editor.Handle, p geometry.Polygon) {
	c.polygons = append(c.polygons, polygonNode{h: h, poly: p, fill: fillColor(p)})
}

func (c *Canvas) UpdatePolygon(h editor.Handle, p geometry.Polygon) {
	for i := range c.polygons {
		if c.polygons[i].h == h {
			c.polygons[i] = polygonNode{h: h, poly: p, fill: fillColor(p)}
			return
		}
	}
}

func (c *Canvas) RemovePolygon(h editor.Handle) {
	for i := range c.polygons {
		if c.polygons[i].h == h {
			c.polygons = append(c.polygons[:i], c.polygons[i+1:]...)
			return
		}
	}
}

func (c *Canvas) AddMarker(h editor.Handle, at geometry.Point) {
	c.markers = append(c.markers, markerNode{h: h, at: at})
}

func (c *Canvas) MoveMarker(h editor.Handle, at geometry.Point) {
	for i := range c.markers {
		if c.markers[i].h == h {
			c.markers[i].at = at
			return
		}
	}
}

func (c *Canvas) RemoveMarker(h editor.Handle) {
	for i := range c.markers {
		if c.markers[i].h == h {
			c.markers = append(c.markers[:i], c.markers[i+1:]...)
			return
		}
	}
}

func (c *Canvas) DrawPreview(p editor.Preview) { c.preview = &p }

func (c *Canvas) ClearPreview() { c.preview = nil }

func (c *Canvas) SetMode(m editor.Mode, insideOnly bool) {
	c.mode = m
	c.insideOnly = insideOnly
}

// Mode returns the last mode the editor applied.
func (c *Canvas) Mode() editor.Mode { return c.mode }

func (c *Canvas) SetBackground(src string, _, _ int) {
	c.bgSrc = src
	c.bg = c.images[src]
}

// SetBackgroundImage registers img under src and shows it.
func (c *Canvas) SetBackgroundImage(src string, img image.Image) {
	c.images[src] = img
	c.SetBackground(src, img.Bounds().Dx(), img.Bounds().Dy())
}

func (c *Canvas) SetScale(scale float64) {
	if scale > 0 {
		c.scale = scale
	}
}

// Scale returns the surface scale.
func (c *Canvas) Scale() float64 { return c.scale }

func (c *Canvas) SetPriority(top editor.Layer) { c.top = top }

// Size is the unscaled surface size: the background, or the annotation
// extent when there is none.
func (c *Canvas) Size() image.Point {
	if c.bg != nil {
		return c.bg.Bounds().Size()
	}
	w, h := float64(emptyWidth), float64(emptyHeight)
	for _, n := range c.polygons {
		_, hi := n.poly.Bounds()
		w = math.Max(w, hi.X+contentPad)
		h = math.Max(h, hi.Y+contentPad)
	}
	for _, m := range c.markers {
		w = math.Max(w, m.at.X+pinWidth*pinScale+contentPad)
		h = math.Max(h, m.at.Y+pinHeight*pinScale+contentPad)
	}
	return image.Pt(int(math.Ceil(w)), int(math.Ceil(h)))
}

// Render paints the surface at the current scale.
func (c *Canvas) Render() *image.RGBA {
	size := c.Size()
	sw := int(math.Ceil(float64(size.X) * c.scale))
	sh := int(math.Ceil(float64(size.Y) * c.scale))
	dst := image.NewRGBA(image.Rect(0, 0, sw, sh))
	if c.bg != nil {
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), c.bg, c.bg.Bounds(), draw.Src, nil)
	} else {
		drawChecker(dst, c.Theme.CheckerLight, c.Theme.CheckerDark)
	}
	if c.top == editor.LayerMarkers {
		c.paintPolygons(dst)
		c.paintMarkers(dst)
	} else {
		c.paintMarkers(dst)
		c.paintPolygons(dst)
	}
	c.paintPreview(dst)
	return dst
}

// EncodePNG writes the rendered surface as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, c.Render()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// handlesVisible reports whether committed vertices can be dragged.
func (c *Canvas) handlesVisible() bool {
	return !c.insideOnly && !c.mode.ReadOnly.Has(editor.ReadOnlyAll|editor.ReadOnlyPolygon)
}

func (c *Canvas) paintPolygons(dst *image.RGBA) {
	for i, n := range c.polygons {
		abs := n.poly.Absolute()
		fillPolygon(dst, scalePoints(abs, c.scale), n.fill)
		if c.Labels {
			drawLabel(dst, n.poly.Centroid().Scale(c.scale), fmt.Sprint(i+1), c.Theme.Label)
		}
		if !c.handlesVisible() {
			continue
		}
		for _, pt := range abs {
			drawHandle(dst, pt.Scale(c.scale), handleRadius*c.scale, c.Theme.VertexFill, c.Theme.VertexStroke)
		}
	}
}

func (c *Canvas) paintMarkers(dst *image.RGBA) {
	for _, m := range c.markers {
		drawPin(dst, m.at.Scale(c.scale), pinScale*c.scale, c.Theme, c.Shadow)
	}
}

func (c *Canvas) paintPreview(dst *image.RGBA) {
	if c.preview == nil {
		return
	}
	pts := scalePoints(c.preview.Points, c.scale)
	for i := 1; i < len(pts); i++ {
		strokeLine(dst, pts[i-1], pts[i], c.Theme.PreviewLine, 1)
	}
	if c.preview.HasEdge {
		strokeLine(dst, c.preview.EdgeFrom.Scale(c.scale), c.preview.EdgeTo.Scale(c.scale), c.Theme.RubberBand, 1)
	}
	for _, pt := range pts {
		drawHandle(dst, pt, handleRadius*c.scale, c.Theme.PreviewVertex, c.Theme.VertexStroke)
	}
}

func fillColor(p geometry.Polygon) color.RGBA {
	col, err := geometry.ParseHexColor(p.Fill)
	if err != nil {
		col = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	}
	a := uint8(math.Round(p.Opacity * 255))
	// premultiplied for color.RGBA
	return color.RGBA{
		R: uint8(uint16(col.R) * uint16(a) / 255),
		G: uint8(uint16(col.G) * uint16(a) / 255),
		B: uint8(uint16(col.B) * uint16(a) / 255),
		A: a,
	}
}

func scalePoints(pts []geometry.Point, s float64) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		out[i] = p.Scale(s)
	}
	return out
}
