// Package clipboard moves annotation documents and rendered images through
// the system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/example/polyzone/internal/geometry"
)

// format is the kind of payload exchanged with the platform clipboard.
type format int

const (
	formatText format = iota
	formatImage
)

func (f format) String() string {
	if f == formatImage {
		return "image"
	}
	return "text"
}

// ErrNoDocument is returned when the clipboard holds something other than
// a polyzone document.
var ErrNoDocument = errors.New("clipboard does not contain a document")

// WriteDocument publishes doc as JSON text.
func WriteDocument(doc geometry.Document) error {
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		return err
	}
	return put(formatText, buf.Bytes())
}

// ReadDocument parses the clipboard text as a document and validates it.
func ReadDocument() (geometry.Document, error) {
	data, err := get(formatText)
	if err != nil {
		return geometry.Document{}, err
	}
	return parseDocument(data)
}

// WriteImage publishes img as PNG.
func WriteImage(img image.Image) error {
	data, err := encodeImage(img)
	if err != nil {
		return err
	}
	return put(formatImage, data)
}

func encodeImage(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode clipboard image: %w", err)
	}
	return buf.Bytes(), nil
}

func parseDocument(data []byte) (geometry.Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return geometry.Document{}, ErrNoDocument
	}
	doc, err := geometry.Decode(bytes.NewReader(data))
	if err != nil {
		return geometry.Document{}, fmt.Errorf("%w: %v", ErrNoDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return geometry.Document{}, err
	}
	return doc, nil
}
