// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"loket-server/db"
	"loket-server/store"
	"net/http"

	"github.com/labstack/echo/v4"
)

func BrowseHandler(c echo.Context) error {
	logger := c.Logger()

	region := c.QueryParam("region")
	query := c.QueryParam("q")

	cases, err := store.FilterUnresolved(db.Conn, region, query)
	if err != nil {
		logger.Errorf("Failed to filter cases: %v", err)
		return echo.ErrInternalServerError
	}

	regions, err := store.Regions(db.Conn)
	if err != nil {
		logger.Errorf("Failed to list regions: %v", err)
		return echo.ErrInternalServerError
	}

	return c.Render(http.StatusOK, "browse.html", map[string]any{
		"MissingPersons": cases,
		"Regions":        regions,
		"SelectedRegion": region,
		"SearchQuery":    query,
	})
}
