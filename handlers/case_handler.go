// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"loket-server/db"
	"loket-server/store"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func CaseDetailsHandler(c echo.Context) error {
	logger := c.Logger()

	personID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Case not found")
	}

	person, sightings, err := store.CaseByID(db.Conn, uint(personID))
	if err != nil {
		if err == store.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Case not found")
		}
		logger.Errorf("Failed to load case: %v", err)
		return echo.ErrInternalServerError
	}

	return c.Render(http.StatusOK, "case_details.html", map[string]any{
		"Person":    person,
		"Sightings": sightings,
	})
}
