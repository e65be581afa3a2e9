//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// rootWindowImage reads region of the default screen, or all of it when
// region is empty, straight from the X server.
func rootWindowImage(region image.Rectangle) (*image.RGBA, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, fmt.Errorf("xproto screen unavailable")
	}
	r, err := grabRect(image.Pt(int(screen.WidthInPixels), int(screen.HeightInPixels)), region)
	if err != nil {
		return nil, err
	}
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, xproto.Drawable(screen.Root),
		int16(r.Min.X), int16(r.Min.Y), uint16(r.Dx()), uint16(r.Dy()), ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root window pixels: %w", err)
	}
	layout, err := zpixmapLayout(setup, reply.Depth)
	if err != nil {
		return nil, fmt.Errorf("root window: %w", err)
	}
	return layout.background(reply.Data, r.Size())
}
