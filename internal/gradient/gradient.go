// Package gradient builds N-color ramps by interpolating between
// ordered anchor colors in a selectable color space. Interpolation of
// the cyclic hue channel always follows the shorter arc around the
// color wheel, so a red to violet ramp passes through magenta instead
// of sweeping back across the whole spectrum.
package gradient

import (
	"errors"
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/floats"

	"github.com/kglotfelty/lut-data-service/internal/color"
)

// Sentinel errors for the two failure classes. Use errors.Is to test
// for them on anything returned from this package.
var (
	// ErrConfig covers unusable requests: unknown color space, fewer
	// than two anchors, or fewer than two output colors.
	ErrConfig = errors.New("gradient: invalid configuration")

	// ErrValidation covers malformed anchor colors.
	ErrValidation = errors.New("gradient: invalid anchor color")
)

// Space selects the color space the interpolation runs in.
type Space int

const (
	SpaceRGB Space = iota
	SpaceHSV
	SpaceHLS
)

func (s Space) String() string {
	switch s {
	case SpaceRGB:
		return "rgb"
	case SpaceHSV:
		return "hsv"
	case SpaceHLS:
		return "hls"
	default:
		return fmt.Sprintf("Space(%d)", int(s))
	}
}

// ParseSpace converts a color-space tag into a Space.
func ParseSpace(tag string) (Space, error) {
	switch tag {
	case "rgb", "":
		return SpaceRGB, nil
	case "hsv":
		return SpaceHSV, nil
	case "hls":
		return SpaceHLS, nil
	default:
		return 0, fmt.Errorf("%w: unsupported color space %q", ErrConfig, tag)
	}
}

// Ramp is an ordered, fixed-length sequence of interpolated colors.
type Ramp []color.RGB

// BuildRamp interpolates numColors colors between the ordered anchors.
// Anchors sit at equally spaced positions in [0,1]; so do the outputs.
// Each channel is piecewise-linear against the anchor positions, in
// the requested space, with hue handled on its cyclic domain. The
// result is a pure function of the inputs.
func BuildRamp(anchors []color.RGB, space Space, numColors int) (Ramp, error) {
	if len(anchors) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 anchor colors, got %d", ErrConfig, len(anchors))
	}
	if numColors < 2 {
		return nil, fmt.Errorf("%w: need at least 2 output colors, got %d", ErrConfig, numColors)
	}
	if space != SpaceRGB && space != SpaceHSV && space != SpaceHLS {
		return nil, fmt.Errorf("%w: unsupported color space %v", ErrConfig, space)
	}
	for i, a := range anchors {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("%w: anchor %d: %v", ErrValidation, i, err)
		}
	}

	k := len(anchors)
	anchorPos := floats.Span(make([]float64, k), 0, 1)
	outPos := floats.Span(make([]float64, numColors), 0, 1)

	// Channel values of each anchor in the working space.
	var channels [3][]float64
	for c := range channels {
		channels[c] = make([]float64, k)
	}
	for i, a := range anchors {
		t := toSpace(a, space)
		channels[0][i], channels[1][i], channels[2][i] = t[0], t[1], t[2]
	}

	ramp := make(Ramp, numColors)
	for j, p := range outPos {
		var t [3]float64
		for c := 0; c < 3; c++ {
			if c == 0 && space != SpaceRGB {
				t[c] = interpHue(anchorPos, channels[c], p)
			} else {
				t[c] = interpLinear(anchorPos, channels[c], p)
			}
		}
		ramp[j] = fromSpace(t, space)
	}
	return ramp, nil
}

// toSpace converts an RGB triple into the working-space tuple. The
// hue channel, when present, is always tuple slot 0 and lives on the
// cyclic domain [0,1).
func toSpace(c color.RGB, space Space) [3]float64 {
	cf := colorful.Color{R: c.R, G: c.G, B: c.B}
	switch space {
	case SpaceHSV:
		h, s, v := cf.Hsv()
		return [3]float64{h / 360, s, v}
	case SpaceHLS:
		h, s, l := cf.Hsl()
		return [3]float64{h / 360, l, s}
	default:
		return [3]float64{c.R, c.G, c.B}
	}
}

// fromSpace converts a working-space tuple back to RGB. Conversions
// can land a hair outside the unit cube from floating point error, so
// the result is clamped back in.
func fromSpace(t [3]float64, space Space) color.RGB {
	var cf colorful.Color
	switch space {
	case SpaceHSV:
		cf = colorful.Hsv(wrapHue(t[0])*360, t[1], t[2])
	case SpaceHLS:
		cf = colorful.Hsl(wrapHue(t[0])*360, t[2], t[1])
	default:
		cf = colorful.Color{R: t[0], G: t[1], B: t[2]}
	}
	cf = cf.Clamped()
	return color.RGB{R: cf.R, G: cf.G, B: cf.B}
}

// interpLinear evaluates the piecewise-linear function through
// (xs[i], ys[i]) at x. Outside the anchor range the nearest endpoint
// value is held, no extrapolation.
func interpLinear(xs, ys []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	i := segment(xs, x)
	frac := (x - xs[i]) / (xs[i+1] - xs[i])
	return ys[i] + frac*(ys[i+1]-ys[i])
}

// interpHue is interpLinear for the hue channel: within each segment
// the pair of anchor hues is interpolated along the shorter arc of the
// circle of circumference 1. When the endpoints are more than half the
// circle apart, the smaller one is lifted by a full turn before the
// linear step, and the result is reduced mod 1 back into [0,1).
func interpHue(xs, hues []float64, x float64) float64 {
	n := len(xs)
	if x <= xs[0] {
		return wrapHue(hues[0])
	}
	if x >= xs[n-1] {
		return wrapHue(hues[n-1])
	}
	i := segment(xs, x)
	h0, h1 := hues[i], hues[i+1]
	if math.Abs(h1-h0) > 0.5 {
		if h0 < h1 {
			h0 += 1
		} else {
			h1 += 1
		}
	}
	frac := (x - xs[i]) / (xs[i+1] - xs[i])
	return wrapHue(h0 + frac*(h1-h0))
}

// segment returns i such that xs[i] <= x < xs[i+1], assuming x is
// strictly inside the range of the sorted xs.
func segment(xs []float64, x float64) int {
	for i := 1; i < len(xs)-1; i++ {
		if x < xs[i] {
			return i - 1
		}
	}
	return len(xs) - 2
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h += 1
	}
	return h
}
