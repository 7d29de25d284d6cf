package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kglotfelty/lut-data-service/internal/datasource"
)

// GetFileLocations lists the configured color-table locations.
func (a *API) GetFileLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Cfg.LocationDetails)
}

// GetLUTList names every color table available in one location.
func (a *API) GetLUTList(c echo.Context) error {
	locationName := c.Param("location")
	names, err := a.Source.ListLUTs(c.Request().Context(), locationName)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	if names == nil {
		names = []string{}
	}
	return c.JSON(http.StatusOK, names)
}

// statusForLookup maps resolution failures to 404 and everything else
// to 400.
func statusForLookup(err error) int {
	var notFound *datasource.ErrNotFound
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
