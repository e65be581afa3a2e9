package render

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeFile reads an image in any registered format.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Load decodes src from disk, caches it for SetBackground and reports its
// size. Images registered with SetBackgroundImage are served from memory.
func (c *Canvas) Load(src string, done func(width, height int, err error)) {
	img, ok := c.images[src]
	if !ok {
		var err error
		img, err = DecodeFile(src)
		if err != nil {
			done(0, 0, err)
			return
		}
		c.images[src] = img
	}
	b := img.Bounds()
	done(b.Dx(), b.Dy(), nil)
}
