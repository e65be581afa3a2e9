//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb/xproto"
)

// zpixmap describes how a GetImage reply lays out its pixels.
type zpixmap struct {
	bytesPerPixel int
	msbFirst      bool
}

func zpixmapLayout(setup *xproto.SetupInfo, depth byte) (zpixmap, error) {
	if setup == nil {
		return zpixmap{}, fmt.Errorf("xproto setup unavailable")
	}
	for _, f := range setup.PixmapFormats {
		if f.Depth != depth {
			continue
		}
		if f.BitsPerPixel != 24 && f.BitsPerPixel != 32 {
			return zpixmap{}, fmt.Errorf("unsupported pixel format %d bpp", f.BitsPerPixel)
		}
		return zpixmap{
			bytesPerPixel: int(f.BitsPerPixel) / 8,
			msbFirst:      setup.ImageByteOrder == xproto.ImageOrderMSBFirst,
		}, nil
	}
	return zpixmap{}, fmt.Errorf("unsupported depth %d", depth)
}

// background decodes a true colour ZPixmap of the given size into an opaque
// image anchored at the origin, ready to sit under the annotation canvas.
func (z zpixmap) background(data []byte, size image.Point) (*image.RGBA, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("empty grab")
	}
	stride := len(data) / size.Y
	if stride*size.Y != len(data) || stride < size.X*z.bytesPerPixel {
		return nil, fmt.Errorf("grab of %dx%d: %d bytes do not fit", size.X, size.Y, len(data))
	}
	// Channel positions within one pixel for blue, green and red.
	bi, gi, ri := 0, 1, 2
	if z.msbFirst {
		last := z.bytesPerPixel - 1
		bi, gi, ri = last, last-1, last-2
	}
	img := image.NewRGBA(image.Rectangle{Max: size})
	for y := 0; y < size.Y; y++ {
		src := data[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < size.X; x++ {
			px := src[x*z.bytesPerPixel:]
			dst[4*x] = px[ri]
			dst[4*x+1] = px[gi]
			dst[4*x+2] = px[bi]
			dst[4*x+3] = 0xFF
		}
	}
	return img, nil
}
