// Package binning buckets scattered (x,y) samples into x-grid
// intervals and computes the per-bin summary statistics behind a
// box-and-whisker plot.
package binning

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kglotfelty/lut-data-service/internal/lut"
)

// Interval is one x-axis bin, [Lo, Hi). The last interval of a grid
// also includes Hi so the maximum sample is not dropped.
type Interval struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// BinStats summarizes the y values that fell into one interval. The
// statistics fields are only meaningful when Count > 0.
type BinStats struct {
	Interval
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	QLo    float64 `json:"qlo"`
	Median float64 `json:"median"`
	QHi    float64 `json:"qhi"`
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
}

// DefaultGrid builds nbin equal-width intervals spanning the data.
func DefaultGrid(xs []float64, nbin int) ([]Interval, error) {
	if nbin < 1 {
		return nil, fmt.Errorf("need at least 1 bin, got %d", nbin)
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("no samples to grid")
	}
	lo := floats.Min(xs)
	hi := floats.Max(xs)
	if lo == hi {
		// Degenerate span, widen it so the single column still draws.
		hi = lo + 1
	}
	width := (hi - lo) / float64(nbin)
	grid := make([]Interval, nbin)
	for i := range grid {
		grid[i] = Interval{Lo: lo + float64(i)*width, Hi: lo + float64(i+1)*width}
	}
	grid[nbin-1].Hi = hi
	return grid, nil
}

// ValidateGrid checks an explicit grid. Intervals may overlap, have
// gaps, or extend past the data, but each high edge must not be below
// its low edge.
func ValidateGrid(grid []Interval) error {
	if len(grid) == 0 {
		return fmt.Errorf("grid is empty")
	}
	for i, g := range grid {
		if g.Hi < g.Lo {
			return fmt.Errorf("grid interval %d: high value %v cannot be less than low %v", i, g.Hi, g.Lo)
		}
	}
	return nil
}

// Compute buckets the samples into the grid and summarizes each bin.
// qlo and qhi are the box quantiles, e.g. 0.25 and 0.75 for
// quartiles.
func Compute(xs, ys []float64, grid []Interval, qlo, qhi float64) ([]BinStats, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("x and y arrays must be the same length, got %d and %d", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("must have 1 or more samples")
	}
	if err := ValidateGrid(grid); err != nil {
		return nil, err
	}
	if qlo < 0 || qhi > 1 || qlo > qhi {
		return nil, fmt.Errorf("quantiles must satisfy 0 <= qlo <= qhi <= 1, got %v and %v", qlo, qhi)
	}

	bins := make([]BinStats, len(grid))
	for i, g := range grid {
		bins[i].Interval = g
		var member []float64
		last := i == len(grid)-1
		for j, x := range xs {
			if x >= g.Lo && (x < g.Hi || (last && x == g.Hi)) {
				member = append(member, ys[j])
			}
		}
		bins[i].Count = len(member)
		if len(member) == 0 {
			continue
		}
		sort.Float64s(member)
		bins[i].Min = member[0]
		bins[i].Max = member[len(member)-1]
		bins[i].QLo = quantile(qlo, member)
		bins[i].Median = quantile(0.5, member)
		bins[i].QHi = quantile(qhi, member)
		bins[i].Mean = stat.Mean(member, nil)
		if len(member) > 1 {
			bins[i].Stddev = stat.PopStdDev(member, nil)
		}
	}
	return bins, nil
}

// quantile evaluates the q-th quantile of sorted data by linear
// interpolation between the order statistics straddling h = q*(n-1),
// the numpy default. gonum's stat.Quantile kinds all interpolate the
// empirical CDF instead and disagree with it on small bins.
func quantile(q float64, sorted []float64) float64 {
	n := len(sorted)
	h := q * float64(n-1)
	i := int(math.Floor(h))
	if i >= n-1 {
		return sorted[n-1]
	}
	return sorted[i] + (h-float64(i))*(sorted[i+1]-sorted[i])
}

// Colorize assigns each bin a hex color from the table, scaled by bin
// population: the fullest bin gets the last color, empty bins the
// first.
func Colorize(bins []BinStats, table lut.Table) ([]string, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("color table is empty")
	}
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	codes := make([]string, len(bins))
	for i, b := range bins {
		idx := 0
		if maxCount > 0 {
			idx = int(math.Round(float64(b.Count) / float64(maxCount) * float64(len(table)-1)))
		}
		codes[i] = table[idx].Hex()
	}
	return codes, nil
}
