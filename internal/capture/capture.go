// Package capture grabs the desktop so it can be annotated.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"strings"
)

// Options controls a screen grab.
type Options struct {
	// Region crops the grab when not empty.
	Region image.Rectangle
	// Interactive lets the desktop portal ask the user for the area.
	Interactive bool
	// IncludeCursor asks the portal to embed the pointer.
	IncludeCursor bool
}

// ErrUnsupported is returned on platforms without a capture backend.
var ErrUnsupported = errors.New("screen capture is not supported on this platform")

// Screen captures the desktop. X11 sessions read the region directly from
// the root window; Wayland sessions, or failed X11 grabs, go through the
// desktop portal and are cropped afterwards.
func Screen(opts Options) (*image.RGBA, error) {
	if runningOnWayland() || opts.Interactive {
		return portalRegion(opts)
	}
	img, err := rootWindowImage(opts.Region)
	if err == nil {
		return img, nil
	}
	img, perr := portalRegion(opts)
	if perr != nil {
		return nil, fmt.Errorf("x11 capture: %v; portal fallback: %w", err, perr)
	}
	return img, nil
}

func portalRegion(opts Options) (*image.RGBA, error) {
	img, err := portalScreenshot(opts)
	if err != nil {
		return nil, err
	}
	if opts.Region.Empty() {
		return img, nil
	}
	return cropToRect(img, opts.Region)
}

// grabRect clamps region to a screen of the given size. An empty region
// selects the whole screen.
func grabRect(screen image.Point, region image.Rectangle) (image.Rectangle, error) {
	full := image.Rectangle{Max: screen}
	if region.Empty() {
		return full, nil
	}
	r := region.Intersect(full)
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("requested region outside captured image")
	}
	return r, nil
}

func runningOnWayland() bool {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")), "wayland") {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}

// ParseRegion reads "x,y,w,h".
func ParseRegion(s string) (image.Rectangle, error) {
	var x, y, w, h int
	if _, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "%d,%d,%d,%d", &x, &y, &w, &h); err != nil {
		return image.Rectangle{}, fmt.Errorf("region %q: want x,y,w,h: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q: width and height must be positive", s)
	}
	return image.Rect(x, y, x+w, y+h), nil
}
