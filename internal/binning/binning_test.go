package binning_test

import (
	"math"
	"strings"
	"testing"

	"github.com/kglotfelty/lut-data-service/internal/binning"
	"github.com/kglotfelty/lut-data-service/internal/lut"
)

func TestDefaultGrid(t *testing.T) {
	xs := []float64{0, 5, 10}
	grid, err := binning.DefaultGrid(xs, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(grid) != 5 {
		t.Fatalf("expected 5 intervals, got %d", len(grid))
	}
	if grid[0].Lo != 0 || grid[4].Hi != 10 {
		t.Errorf("grid should span the data, got %+v", grid)
	}
	for i := 1; i < len(grid); i++ {
		if grid[i].Lo != grid[i-1].Hi {
			t.Errorf("intervals should abut: %+v then %+v", grid[i-1], grid[i])
		}
	}
}

func TestDefaultGridErrors(t *testing.T) {
	if _, err := binning.DefaultGrid(nil, 5); err == nil {
		t.Error("empty data should fail")
	}
	if _, err := binning.DefaultGrid([]float64{1, 2}, 0); err == nil {
		t.Error("zero bins should fail")
	}
}

func TestDefaultGridDegenerateSpan(t *testing.T) {
	grid, err := binning.DefaultGrid([]float64{3, 3, 3}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if grid[0].Lo >= grid[len(grid)-1].Hi {
		t.Errorf("degenerate span must still widen, got %+v", grid)
	}
}

func TestCompute(t *testing.T) {
	// Two bins: ys {1,2,3} land in the first, {10,20} in the second.
	xs := []float64{0, 0.5, 1, 2, 2.5}
	ys := []float64{1, 2, 3, 10, 20}
	grid := []binning.Interval{{Lo: 0, Hi: 2}, {Lo: 2, Hi: 3}}

	bins, err := binning.Compute(xs, ys, grid, 0.25, 0.75)
	if err != nil {
		t.Fatal(err)
	}

	first := bins[0]
	if first.Count != 3 {
		t.Fatalf("first bin count = %d, want 3", first.Count)
	}
	if first.Min != 1 || first.Max != 3 {
		t.Errorf("first bin min/max = %v/%v", first.Min, first.Max)
	}
	if first.Median != 2 {
		t.Errorf("first bin median = %v, want 2", first.Median)
	}
	if first.QLo != 1.5 || first.QHi != 2.5 {
		t.Errorf("first bin quartiles = %v/%v, want 1.5/2.5", first.QLo, first.QHi)
	}
	if first.Mean != 2 {
		t.Errorf("first bin mean = %v, want 2", first.Mean)
	}
	wantStddev := math.Sqrt(2.0 / 3.0)
	if math.Abs(first.Stddev-wantStddev) > 1e-12 {
		t.Errorf("first bin stddev = %v, want %v", first.Stddev, wantStddev)
	}

	second := bins[1]
	if second.Count != 2 {
		t.Fatalf("second bin count = %d, want 2", second.Count)
	}
	if second.Mean != 15 {
		t.Errorf("second bin mean = %v, want 15", second.Mean)
	}
}

func TestComputeQuantileInterpolation(t *testing.T) {
	// One bin holding {1,2,3,4}: quantiles interpolate linearly
	// between order statistics at h = q*(n-1), so q=0.25 sits
	// three quarters of the way from 1 to 2.
	xs := []float64{0, 1, 2, 3}
	ys := []float64{4, 3, 2, 1}
	grid := []binning.Interval{{Lo: 0, Hi: 3}}
	bins, err := binning.Compute(xs, ys, grid, 0.25, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	b := bins[0]
	if b.Median != 2.5 {
		t.Errorf("median = %v, want 2.5", b.Median)
	}
	if b.QLo != 1.75 {
		t.Errorf("qlo = %v, want 1.75", b.QLo)
	}
	if b.QHi != 3.25 {
		t.Errorf("qhi = %v, want 3.25", b.QHi)
	}

	// The extreme quantiles are the sample extremes.
	bins, err = binning.Compute(xs, ys, grid, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if bins[0].QLo != 1 || bins[0].QHi != 4 {
		t.Errorf("q0/q1 = %v/%v, want 1/4", bins[0].QLo, bins[0].QHi)
	}
}

func TestComputeLastBinIncludesHi(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{5, 6, 7}
	grid := []binning.Interval{{Lo: 0, Hi: 1}, {Lo: 1, Hi: 2}}
	bins, err := binning.Compute(xs, ys, grid, 0.25, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	if bins[0].Count != 1 || bins[1].Count != 2 {
		t.Errorf("expected counts 1 and 2 (last bin keeps its high edge), got %d and %d",
			bins[0].Count, bins[1].Count)
	}
}

func TestComputeEmptyBin(t *testing.T) {
	xs := []float64{0, 10}
	ys := []float64{1, 2}
	grid := []binning.Interval{{Lo: 0, Hi: 1}, {Lo: 4, Hi: 5}, {Lo: 9, Hi: 10}}
	bins, err := binning.Compute(xs, ys, grid, 0.25, 0.75)
	if err != nil {
		t.Fatal(err)
	}
	if bins[1].Count != 0 {
		t.Errorf("middle bin should be empty, got count %d", bins[1].Count)
	}
}

func TestComputeErrors(t *testing.T) {
	good := []binning.Interval{{Lo: 0, Hi: 1}}
	cases := []struct {
		name string
		xs   []float64
		ys   []float64
		grid []binning.Interval
		qlo  float64
		qhi  float64
	}{
		{"length mismatch", []float64{1, 2}, []float64{1}, good, 0.25, 0.75},
		{"no samples", nil, nil, good, 0.25, 0.75},
		{"bad interval", []float64{1}, []float64{1}, []binning.Interval{{Lo: 2, Hi: 1}}, 0.25, 0.75},
		{"bad quantiles", []float64{1}, []float64{1}, good, 0.9, 0.1},
		{"quantile out of range", []float64{1}, []float64{1}, good, -0.1, 0.75},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := binning.Compute(tc.xs, tc.ys, tc.grid, tc.qlo, tc.qhi); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestColorize(t *testing.T) {
	table, err := lut.Parse(strings.NewReader("0 0 0\n1 1 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	bins := []binning.BinStats{
		{Count: 0},
		{Count: 10},
	}
	codes, err := binning.Colorize(bins, table)
	if err != nil {
		t.Fatal(err)
	}
	if codes[0] != "000000" || codes[1] != "FFFFFF" {
		t.Errorf("emptiest and fullest bins should take the table ends, got %v", codes)
	}

	if _, err := binning.Colorize(bins, lut.Table{}); err == nil {
		t.Error("empty table should fail")
	}
}
