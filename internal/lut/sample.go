package lut

import (
	"fmt"
	"math"
)

// Xform remaps the sample positions along the table, so colors can be
// drawn more densely from one end (e.g. a log stretch).
type Xform func(float64) float64

// XformByName returns one of the built-in sample transforms.
func XformByName(name string) (Xform, error) {
	switch name {
	case "", "linear":
		return func(x float64) float64 { return x }, nil
	case "log":
		return math.Log, nil
	case "sqrt":
		return math.Sqrt, nil
	case "square":
		return func(x float64) float64 { return x * x }, nil
	default:
		return nil, fmt.Errorf("unknown sample transform %q", name)
	}
}

// indexMap applies the transform over the index grid 1..len(t) and
// rescales the result back onto valid table indices.
func (t Table) indexMap(xf Xform) []int {
	n := len(t)
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		z[i] = xf(float64(i + 1))
	}
	zmin, zmax := z[0], z[0]
	for _, v := range z {
		zmin = math.Min(zmin, v)
		zmax = math.Max(zmax, v)
	}
	span := zmax - zmin
	idx := make([]int, n)
	for i, v := range z {
		if span == 0 {
			idx[i] = i
			continue
		}
		idx[i] = int(math.Round((v - zmin) / span * float64(n-1)))
	}
	return idx
}

// Sample draws n colors evenly from the first color to the last,
// remapped through the transform. A single-color request returns the
// first color; it is a trivial case, not an interpolation.
func (t Table) Sample(n int, xf Xform) (Table, error) {
	if n < 1 {
		return nil, fmt.Errorf("cannot sample %d colors", n)
	}
	if xf == nil {
		xf, _ = XformByName("linear")
	}
	if n == 1 {
		return Table{t[0]}, nil
	}
	tmap := t.indexMap(xf)
	dl := float64(len(t)-1) / float64(n-1)
	out := make(Table, n)
	for i := 0; i < n; i++ {
		out[i] = t[tmap[int(float64(i)*dl)]]
	}
	return out, nil
}

// SampleHex samples hex codes for n plot objects. skip and rskip add
// phantom objects at the low and high ends, compressing and shifting
// the sampled range; useful when the table's first color would vanish
// against the plot background.
func (t Table) SampleHex(n, skip, rskip int, xf Xform) ([]string, error) {
	if skip < 0 || rskip < 0 {
		return nil, fmt.Errorf("skip and rskip must not be negative")
	}
	colors, err := t.Sample(n+skip+rskip, xf)
	if err != nil {
		return nil, err
	}
	return colors[skip : skip+n].HexCodes(), nil
}
