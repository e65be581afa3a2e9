//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import "errors"

var errCGODisabled = errors.New("clipboard operations require cgo support")

func put(format, []byte) error {
	if err := displayAvailable(); err != nil {
		return err
	}
	return errCGODisabled
}

func get(format) ([]byte, error) {
	if err := displayAvailable(); err != nil {
		return nil, err
	}
	return nil, errCGODisabled
}
