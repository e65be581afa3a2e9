//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image"
	"image/color"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestZPixmapLayout(t *testing.T) {
	setup := &xproto.SetupInfo{PixmapFormats: []xproto.Format{
		{Depth: 24, BitsPerPixel: 32},
		{Depth: 16, BitsPerPixel: 16},
	}}
	z, err := zpixmapLayout(setup, 24)
	if err != nil || z.bytesPerPixel != 4 || z.msbFirst {
		t.Errorf("depth 24 = %+v, %v", z, err)
	}
	if _, err := zpixmapLayout(setup, 16); err == nil {
		t.Error("expected 16 bpp to be rejected")
	}
	if _, err := zpixmapLayout(setup, 8); err == nil {
		t.Error("expected unknown depth to fail")
	}
	setup.ImageByteOrder = xproto.ImageOrderMSBFirst
	if z, _ := zpixmapLayout(setup, 24); !z.msbFirst {
		t.Error("expected MSB first byte order")
	}
}

func TestZPixmapBackground(t *testing.T) {
	tests := []struct {
		name string
		z    zpixmap
		data []byte
		want color.RGBA
	}{
		{
			name: "lsb 32bpp",
			z:    zpixmap{bytesPerPixel: 4},
			data: []byte{1, 2, 3, 0, 4, 5, 6, 0, 7, 8, 9, 0, 10, 11, 12, 0},
			want: color.RGBA{12, 11, 10, 0xFF},
		},
		{
			name: "msb 32bpp",
			z:    zpixmap{bytesPerPixel: 4, msbFirst: true},
			data: []byte{0, 1, 2, 3, 0, 4, 5, 6, 0, 7, 8, 9, 0, 10, 11, 12},
			want: color.RGBA{10, 11, 12, 0xFF},
		},
		{
			name: "lsb 24bpp padded rows",
			z:    zpixmap{bytesPerPixel: 3},
			data: []byte{1, 2, 3, 4, 5, 6, 0, 0, 7, 8, 9, 10, 11, 12, 0, 0},
			want: color.RGBA{12, 11, 10, 0xFF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := tt.z.background(tt.data, image.Pt(2, 2))
			if err != nil {
				t.Fatalf("background failed: %v", err)
			}
			if img.Bounds() != image.Rect(0, 0, 2, 2) {
				t.Errorf("bounds = %v", img.Bounds())
			}
			if got := img.RGBAAt(1, 1); got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
	if _, err := (zpixmap{bytesPerPixel: 4}).background([]byte{1, 2, 3}, image.Pt(2, 2)); err == nil {
		t.Error("expected short data to fail")
	}
}
