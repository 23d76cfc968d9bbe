package render

import (
	"fmt"

	"github.com/diewo77/go-hebergement/internal/templating"
)

// Dimensions is a page size in millimetres.
type Dimensions struct {
	Width  float64
	Height float64
}

var pageFormats = map[templating.PageFormat]Dimensions{
	templating.PageA4:     {Width: 210, Height: 297},
	templating.PageA3:     {Width: 297, Height: 420},
	templating.PageLetter: {Width: 216, Height: 279},
}

// PageSize resolves a named format and orientation. Landscape swaps width
// and height; an empty orientation is portrait.
func PageSize(format templating.PageFormat, o templating.Orientation) (Dimensions, error) {
	dim, ok := pageFormats[format]
	if !ok {
		return Dimensions{}, fmt.Errorf("%w: %q", ErrUnknownPageFormat, format)
	}
	switch o {
	case "", templating.Portrait:
		return dim, nil
	case templating.Landscape:
		return Dimensions{Width: dim.Height, Height: dim.Width}, nil
	default:
		return Dimensions{}, fmt.Errorf("%w: orientation %q", ErrUnknownPageFormat, o)
	}
}
