package gradient

import (
	"fmt"

	"github.com/kglotfelty/lut-data-service/internal/color"
)

// FromNames resolves each color name and builds a ramp through the
// resolved anchors. Names failing to resolve are a validation error.
func FromNames(names []string, space Space, numColors int) (Ramp, error) {
	anchors := make([]color.RGB, 0, len(names))
	for _, name := range names {
		c, err := color.ByName(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		anchors = append(anchors, c)
	}
	return BuildRamp(anchors, space, numColors)
}

// WhiteTo builds a ramp that fades from white to the named color.
func WhiteTo(name string, space Space, numColors int) (Ramp, error) {
	return FromNames([]string{"white", name}, space, numColors)
}

// BlackTo builds a ramp that fades from black to the named color.
func BlackTo(name string, space Space, numColors int) (Ramp, error) {
	return FromNames([]string{"black", name}, space, numColors)
}

// BlackToWhiteVia builds a ramp that fades from black through the
// named color to white.
func BlackToWhiteVia(name string, space Space, numColors int) (Ramp, error) {
	return FromNames([]string{"black", name, "white"}, space, numColors)
}
