package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow cast by marker pins.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// MarkerShadowOptions returns a soft shadow that keeps white pins visible
// on light backgrounds.
func MarkerShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  2,
		Offset:  image.Pt(1, 2),
		Opacity: 0.45,
	}
}

// castShadow blurs mask and composites it onto dst in black, shifted by
// opts.Offset.
func castShadow(dst *image.RGBA, mask *image.Alpha, opts ShadowOptions) {
	if mask == nil || mask.Bounds().Empty() || opts.Opacity <= 0 {
		return
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}
	blurred := blurAlpha(mask, radius)
	alpha := uint8(opacity*255 + 0.5)
	if alpha == 0 {
		return
	}
	target := blurred.Bounds().Add(opts.Offset)
	draw.DrawMask(dst, target, image.NewUniform(color.RGBA{0, 0, 0, alpha}), image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
}

// blurAlpha is a separable box blur using running prefix sums.
func blurAlpha(src *image.Alpha, radius int) *image.Alpha {
	bounds := src.Bounds()
	if radius <= 0 {
		out := image.NewAlpha(bounds)
		copy(out.Pix, src.Pix)
		return out
	}
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewAlpha(bounds)
	dst := image.NewAlpha(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(row[x])
		}
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(y-radius, 0), min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return dst
}
