//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

func native(f format) clipboard.Format {
	if f == formatImage {
		return clipboard.FmtImage
	}
	return clipboard.FmtText
}

func open() error {
	initOnce.Do(func() {
		if initErr = displayAvailable(); initErr == nil {
			initErr = clipboard.Init()
		}
	})
	return initErr
}

func put(f format, data []byte) error {
	if err := open(); err != nil {
		return err
	}
	clipboard.Write(native(f), data)
	return nil
}

func get(f format) ([]byte, error) {
	if err := open(); err != nil {
		return nil, err
	}
	data := clipboard.Read(native(f))
	if len(data) == 0 {
		return nil, fmt.Errorf("clipboard holds no %s data", f)
	}
	return data, nil
}
