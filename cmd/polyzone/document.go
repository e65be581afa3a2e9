package main

import (
	"fmt"
	"os"

	"github.com/example/polyzone/internal/geometry"
)

// readDocument loads a JSON document. An empty path yields an empty
// document.
func readDocument(path string) (geometry.Document, error) {
	if path == "" {
		return geometry.Document{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return geometry.Document{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	doc, err := geometry.Decode(f)
	if err != nil {
		return geometry.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}
