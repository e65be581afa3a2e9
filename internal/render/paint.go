package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/polyzone/internal/geometry"
	"github.com/example/polyzone/internal/theme"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const checkerSize = 8

func drawChecker(dst *image.RGBA, light, dark color.RGBA) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			col := light
			if ((x/checkerSize)+(y/checkerSize))%2 == 1 {
				col = dark
			}
			dst.SetRGBA(x, y, col)
		}
	}
}

func newRasterizer(dst *image.RGBA) *vector.Rasterizer {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	return r
}

// fillPolygon fills the closed outline pts with col blended over dst.
func fillPolygon(dst *image.RGBA, pts []geometry.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	r := newRasterizer(dst)
	r.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.LineTo(float32(p.X), float32(p.Y))
	}
	r.ClosePath()
	r.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
}

// circlePath approximates a circle with four cubic arcs.
func circlePath(r *vector.Rasterizer, c geometry.Point, radius float64) {
	const k = 0.5522847498
	cx, cy, rr := float32(c.X), float32(c.Y), float32(radius)
	kk := float32(k) * rr
	r.MoveTo(cx+rr, cy)
	r.CubeTo(cx+rr, cy+kk, cx+kk, cy+rr, cx, cy+rr)
	r.CubeTo(cx-kk, cy+rr, cx-rr, cy+kk, cx-rr, cy)
	r.CubeTo(cx-rr, cy-kk, cx-kk, cy-rr, cx, cy-rr)
	r.CubeTo(cx+kk, cy-rr, cx+rr, cy-kk, cx+rr, cy)
	r.ClosePath()
}

func fillCircle(dst *image.RGBA, c geometry.Point, radius float64, col color.Color) {
	r := newRasterizer(dst)
	circlePath(r, c, radius)
	r.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
}

// drawHandle paints a vertex handle: a filled disc with a one pixel ring.
func drawHandle(dst *image.RGBA, c geometry.Point, radius float64, fill, stroke color.Color) {
	fillCircle(dst, c, radius, fill)
	drawCircleThin(dst, int(math.Round(c.X)), int(math.Round(c.Y)), int(math.Round(radius)), stroke)
}

// pinPath traces the marker pin glyph with its top-left at origin.
func pinPath(r *vector.Rasterizer, origin geometry.Point, s float64) {
	pt := func(x, y float64) (float32, float32) {
		return float32(origin.X + x*s), float32(origin.Y + y*s)
	}
	cube := func(x1, y1, x2, y2, x, y float64) {
		ax, ay := pt(x1, y1)
		bx, by := pt(x2, y2)
		cx, cy := pt(x, y)
		r.CubeTo(ax, ay, bx, by, cx, cy)
	}
	r.MoveTo(pt(14, 0))
	cube(21.732, 0, 28, 5.641, 28, 12.6)
	cube(28, 23.963, 14, 36, 14, 36)
	cube(14, 36, 0, 24.064, 0, 12.6)
	cube(0, 5.641, 6.268, 0, 14, 0)
	r.ClosePath()
}

func drawPin(dst *image.RGBA, origin geometry.Point, s float64, th *theme.Theme, shadow ShadowOptions) {
	if shadow.Opacity > 0 {
		b := dst.Bounds()
		mask := image.NewAlpha(b)
		r := vector.NewRasterizer(b.Dx(), b.Dy())
		pinPath(r, origin, s)
		r.Draw(mask, b, image.Opaque, image.Point{})
		castShadow(dst, mask, shadow)
	}
	r := newRasterizer(dst)
	pinPath(r, origin, s)
	r.Draw(dst, dst.Bounds(), image.NewUniform(th.MarkerFill), image.Point{})

	dot := geometry.Pt(origin.X+14*s, origin.Y+14*s)
	fillCircle(dst, dot, 7*s, th.MarkerDot)
	drawCircleThin(dst, int(math.Round(dot.X)), int(math.Round(dot.Y)), int(math.Round(7*s)), th.MarkerOutline)
}

func drawLabel(dst *image.RGBA, at geometry.Point, text string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13}
	w := d.MeasureString(text).Round()
	d.Dot = fixed.P(int(math.Round(at.X))-w/2, int(math.Round(at.Y))+4)
	d.DrawString(text)
}

func strokeLine(dst *image.RGBA, a, b geometry.Point, col color.Color, thick int) {
	drawLine(dst, int(math.Round(a.X)), int(math.Round(a.Y)), int(math.Round(b.X)), int(math.Round(b.Y)), col, thick)
}

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			p := image.Pt(x+dx, y+dy)
			if p.In(img.Bounds()) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// drawLine is Bresenham with a square brush.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// drawCircleThin is the midpoint circle algorithm.
func drawCircleThin(img *image.RGBA, cx, cy, r int, col color.Color) {
	x, y := r, 0
	err := 1 - r
	for x >= y {
		for _, p := range [8][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}} {
			pt := image.Pt(cx+p[0], cy+p[1])
			if pt.In(img.Bounds()) {
				img.Set(pt.X, pt.Y, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
