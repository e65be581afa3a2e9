package geometry

import (
	"errors"
	"fmt"
)

var (
	// ErrDegeneratePolygon is returned for polygons with fewer than three points.
	ErrDegeneratePolygon = errors.New("polygon needs at least 3 points")
	ErrInvalidCoordinate = errors.New("polygon has a non-finite coordinate")
	ErrOpacityRange      = errors.New("polygon opacity must be within [0, 1]")
)

// ValidationError ties a validation failure to a polygon position.
type ValidationError struct {
	Index int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("polygon %d: %v", e.Index, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
