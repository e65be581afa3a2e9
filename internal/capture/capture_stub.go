//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import "image"

func rootWindowImage(image.Rectangle) (*image.RGBA, error) { return nil, ErrUnsupported }

func portalScreenshot(Options) (*image.RGBA, error) { return nil, ErrUnsupported }
