// Package lut reads and writes color lookup tables stored in the flat
// ASCII format used by plotting tools: three whitespace-separated
// columns per row holding the red, green, and blue fractions in [0,1].
package lut

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kglotfelty/lut-data-service/internal/color"
)

// Table is an ordered color lookup table.
type Table []color.RGB

// Parse reads a 3-column ASCII color table. Blank lines and lines
// starting with '#' are skipped. Every channel value is validated
// against [0,1].
func Parse(r io.Reader) (Table, error) {
	var table Table
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 columns, got %d", lineno, len(fields))
		}
		var ch [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad value %q: %w", lineno, f, err)
			}
			ch[i] = v
		}
		c := color.RGB{R: ch[0], G: ch[1], B: ch[2]}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		table = append(table, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("color table is empty")
	}
	return table, nil
}

// WriteTo serializes the table in the same flat layout it is parsed
// from: one row per color, plain decimal floats, newline terminated.
func (t Table) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, c := range t {
		n, err := fmt.Fprintf(w, "%s %s %s\n",
			strconv.FormatFloat(c.R, 'g', -1, 64),
			strconv.FormatFloat(c.G, 'g', -1, 64),
			strconv.FormatFloat(c.B, 'g', -1, 64),
		)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Reverse returns a copy with the color order flipped, last first.
func (t Table) Reverse() Table {
	out := make(Table, len(t))
	for i, c := range t {
		out[len(t)-1-i] = c
	}
	return out
}

// Invert returns a copy with every color channel complemented.
func (t Table) Invert() Table {
	out := make(Table, len(t))
	for i, c := range t {
		out[i] = c.Invert()
	}
	return out
}

// HexCodes returns the 6-digit hex code of every color, in order.
func (t Table) HexCodes() []string {
	codes := make([]string, len(t))
	for i, c := range t {
		codes[i] = c.Hex()
	}
	return codes
}
