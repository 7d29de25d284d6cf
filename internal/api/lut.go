package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kglotfelty/lut-data-service/internal/color"
	"github.com/kglotfelty/lut-data-service/internal/gradient"
	"github.com/kglotfelty/lut-data-service/internal/lut"
)

// TableResponse is the JSON shape of a served color table or ramp.
type TableResponse struct {
	Name   string      `json:"name,omitempty"`
	Colors []color.RGB `json:"colors"`
	Hex    []string    `json:"hex"`
}

// loadTable opens, parses, and transforms the table a request names.
func (a *API) loadTable(c echo.Context) (lut.Table, error) {
	locationName := c.Param("location")
	name := c.Param("*")

	reader, err := a.Source.OpenLUT(c.Request().Context(), locationName, name)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	table, err := lut.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", name, err)
	}

	if boolParam(c, "reverse") {
		table = table.Reverse()
	}
	if boolParam(c, "invert") {
		table = table.Invert()
	}
	return table, nil
}

// GetTable serves a parsed color table, optionally resampled to num
// colors, as JSON or back in the flat .lut layout.
func (a *API) GetTable(c echo.Context) error {
	table, err := a.loadTable(c)
	if err != nil {
		return c.String(statusForLookup(err), err.Error())
	}

	if numStr := c.QueryParam("num"); numStr != "" {
		num, err := strconv.Atoi(numStr)
		if err != nil {
			return c.String(http.StatusBadRequest, fmt.Sprintf("bad num %q", numStr))
		}
		xf, err := lut.XformByName(c.QueryParam("xform"))
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		table, err = table.Sample(num, xf)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
	}

	return a.respondTable(c, c.Param("*"), table)
}

// GetSample returns num hex codes drawn evenly from a table, one per
// plot object to be colored. skip and rskip compress the sampled
// range away from the table's ends.
func (a *API) GetSample(c echo.Context) error {
	table, err := a.loadTable(c)
	if err != nil {
		return c.String(statusForLookup(err), err.Error())
	}

	num, err := strconv.Atoi(c.QueryParam("num"))
	if err != nil || num < 1 {
		return c.String(http.StatusBadRequest, "num is required and must be a positive integer")
	}
	skip := intParam(c, "skip", 0)
	rskip := intParam(c, "rskip", 0)
	xf, err := lut.XformByName(c.QueryParam("xform"))
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	codes, err := table.SampleHex(num, skip, rskip, xf)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, codes)
}

// GetRamp builds a gradient between anchor colors given by name or
// hex code. Query params: colors (comma separated), space
// (rgb|hsv|hls), num, fmt (json|lut|hex).
func (a *API) GetRamp(c echo.Context) error {
	colorsParam := c.QueryParam("colors")
	if colorsParam == "" {
		return c.String(http.StatusBadRequest, "colors is a required parameter")
	}

	var anchors []color.RGB
	for _, item := range strings.Split(colorsParam, ",") {
		anchor, err := resolveAnchor(item)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		anchors = append(anchors, anchor)
	}

	space, err := gradient.ParseSpace(c.QueryParam("space"))
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	num := intParam(c, "num", 256)

	ramp, err := gradient.BuildRamp(anchors, space, num)
	switch {
	case errors.Is(err, gradient.ErrConfig), errors.Is(err, gradient.ErrValidation):
		return c.String(http.StatusBadRequest, err.Error())
	case err != nil:
		return err
	}

	return a.respondTable(c, "", lut.Table(ramp))
}

// GetColorNames lists the recognized named colors.
func (a *API) GetColorNames(c echo.Context) error {
	return c.JSON(http.StatusOK, color.Names())
}

func (a *API) respondTable(c echo.Context, name string, table lut.Table) error {
	switch c.QueryParam("fmt") {
	case "", "json":
		return c.JSON(http.StatusOK, TableResponse{
			Name:   name,
			Colors: table,
			Hex:    table.HexCodes(),
		})
	case "lut":
		var buf bytes.Buffer
		if _, err := table.WriteTo(&buf); err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
	case "hex":
		return c.JSON(http.StatusOK, table.HexCodes())
	default:
		return c.String(http.StatusBadRequest, fmt.Sprintf("unknown fmt %q", c.QueryParam("fmt")))
	}
}

// resolveAnchor accepts either a named color or a 6-digit hex code.
func resolveAnchor(item string) (color.RGB, error) {
	item = strings.TrimSpace(item)
	if strings.HasPrefix(item, "#") || isHexCode(item) {
		return color.ParseHex(item)
	}
	return color.ByName(item)
}

func isHexCode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

func boolParam(c echo.Context, name string) bool {
	v := strings.ToLower(c.QueryParam(name))
	return v == "1" || v == "true" || v == "yes"
}

func intParam(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
