package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kglotfelty/lut-data-service/internal/binning"
	"github.com/kglotfelty/lut-data-service/internal/lut"
)

// BoxWhiskerRequest carries the scattered samples to bin, the x grid
// (explicit or nbin equal-width), the box quantiles, and optionally a
// color table to shade each box by population.
type BoxWhiskerRequest struct {
	X    []float64          `json:"x"`
	Y    []float64          `json:"y"`
	Nbin int                `json:"nbin,omitempty"`
	Grid []binning.Interval `json:"grid,omitempty"`

	// Box quantiles. Pointers so an explicit 0 is distinct from an
	// omitted field; each defaults to its quartile independently.
	QLo *float64 `json:"qlo,omitempty"`
	QHi *float64 `json:"qhi,omitempty"`

	// Optional colorizing source: a table in a configured location.
	Location string `json:"location,omitempty"`
	Colormap string `json:"colormap,omitempty"`
	Reverse  bool   `json:"reverse,omitempty"`
	Invert   bool   `json:"invert,omitempty"`
}

type BoxWhiskerResponse struct {
	Bins   []binning.BinStats `json:"bins"`
	Colors []string           `json:"colors,omitempty"`
}

// PostBoxWhisker bins (x,y) samples into x intervals and returns the
// per-bin quantiles, mean, and deviation the client needs to draw a
// box-and-whisker plot.
func (a *API) PostBoxWhisker(c echo.Context) error {
	var req BoxWhiskerRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	qlo, qhi := 0.25, 0.75
	if req.QLo != nil {
		qlo = *req.QLo
	}
	if req.QHi != nil {
		qhi = *req.QHi
	}

	grid := req.Grid
	if len(grid) == 0 {
		nbin := req.Nbin
		if nbin == 0 {
			nbin = 10
		}
		var err error
		grid, err = binning.DefaultGrid(req.X, nbin)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
	}

	bins, err := binning.Compute(req.X, req.Y, grid, qlo, qhi)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	resp := BoxWhiskerResponse{Bins: bins}
	if req.Colormap != "" {
		reader, err := a.Source.OpenLUT(c.Request().Context(), req.Location, req.Colormap)
		if err != nil {
			return c.String(statusForLookup(err), err.Error())
		}
		defer reader.Close()
		table, err := lut.Parse(reader)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		if req.Reverse {
			table = table.Reverse()
		}
		if req.Invert {
			table = table.Invert()
		}
		resp.Colors, err = binning.Colorize(bins, table)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
	}

	return c.JSON(http.StatusOK, resp)
}
