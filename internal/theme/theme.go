package theme

import (
	"image/color"
)

// Theme defines the color palette for the editor window and the rendered
// annotations.
type Theme struct {
	Name string

	// Window
	Background color.RGBA
	Foreground color.RGBA

	// Toolbar
	ToolbarBackground      color.RGBA
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA
	ButtonText             color.RGBA
	ButtonBorder           color.RGBA

	// Canvas shown where no background image exists
	CheckerLight color.RGBA
	CheckerDark  color.RGBA

	// Annotations
	VertexFill    color.RGBA
	VertexStroke  color.RGBA
	PreviewLine   color.RGBA
	PreviewVertex color.RGBA
	RubberBand    color.RGBA
	MarkerFill    color.RGBA
	MarkerDot     color.RGBA
	MarkerOutline color.RGBA
	Label         color.RGBA
}

// Default returns the hardcoded light theme used as fallback.
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Background:             color.RGBA{220, 220, 220, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:  color.RGBA{180, 180, 180, 255},
		ButtonBackgroundActive: color.RGBA{150, 150, 150, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		CheckerLight:           color.RGBA{220, 220, 220, 255},
		CheckerDark:            color.RGBA{192, 192, 192, 255},
		VertexFill:             color.RGBA{0xFD, 0xBC, 0x07, 255},
		VertexStroke:           color.RGBA{0, 0, 0, 255},
		PreviewLine:            color.RGBA{0, 0, 0, 255},
		PreviewVertex:          color.RGBA{255, 255, 0, 255},
		RubberBand:             color.RGBA{0x53, 0xDB, 0xF3, 255},
		MarkerFill:             color.RGBA{255, 255, 255, 255},
		MarkerDot:              color.RGBA{0xE5, 0x39, 0x35, 255},
		MarkerOutline:          color.RGBA{0, 0, 0, 255},
		Label:                  color.RGBA{0, 0, 0, 255},
	}
}
