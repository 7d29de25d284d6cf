// Package color holds the normalized RGB triple used throughout the
// service and the conversions between triples, 6-digit hex codes, and
// X11 color names.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a color triple with each channel normalized to [0,1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Validate reports whether every channel is a finite value in [0,1].
// Out of range values are an error, never clamped.
func (c RGB) Validate() error {
	for _, v := range [3]float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("color channel is not finite: %v", v)
		}
		if v < 0 || v > 1 {
			return fmt.Errorf("color channel %v outside [0,1]", v)
		}
	}
	return nil
}

// Invert returns the channel-wise complement, so black becomes white
// and red becomes cyan.
func (c RGB) Invert() RGB {
	return RGB{R: 1 - c.R, G: 1 - c.G, B: 1 - c.B}
}

// HexChannel converts one normalized channel into a 2-digit uppercase
// hex byte. The value is scaled by 256 and truncated, with 1.0 capped
// at FF rather than overflowing to 256.
func HexChannel(v float64) (string, error) {
	if v < 0 || v > 1 {
		return "", fmt.Errorf("color values must be between 0 and 1, got %v", v)
	}
	ival := int(v * 256)
	if ival > 255 {
		ival = 255
	}
	return fmt.Sprintf("%02X", ival), nil
}

// Hex returns the 6-digit uppercase color code, e.g. "B22222" for
// firebrick. The triple must already be validated.
func (c RGB) Hex() string {
	r, _ := HexChannel(c.R)
	g, _ := HexChannel(c.G)
	b, _ := HexChannel(c.B)
	return r + g + b
}

// ParseHex parses a 6-digit hex color code, with or without a leading
// '#', into a normalized triple.
func ParseHex(code string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(code), "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("hex color %q must have 6 digits", code)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("bad hex color %q: %w", code, err)
	}
	return RGB{
		R: float64(n>>16&0xFF) / 255,
		G: float64(n>>8&0xFF) / 255,
		B: float64(n&0xFF) / 255,
	}, nil
}
