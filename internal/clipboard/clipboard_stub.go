//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "fmt"

func put(f format, _ []byte) error {
	return fmt.Errorf("clipboard %s operations are not supported on this platform", f)
}

func get(f format) ([]byte, error) {
	return nil, fmt.Errorf("clipboard %s operations are not supported on this platform", f)
}
