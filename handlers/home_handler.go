// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"loket-server/db"
	"loket-server/store"
	"net/http"

	"github.com/labstack/echo/v4"
)

func HomeHandler(c echo.Context) error {
	logger := c.Logger()

	missing, err := store.RecentUnresolved(db.Conn, 6)
	if err != nil {
		logger.Errorf("Failed to fetch recent cases: %v", err)
		return echo.ErrInternalServerError
	}

	found, err := store.RecentFound(db.Conn, 3)
	if err != nil {
		logger.Errorf("Failed to fetch recent found persons: %v", err)
		return echo.ErrInternalServerError
	}

	return c.Render(http.StatusOK, "index.html", map[string]any{
		"MissingPersons": missing,
		"FoundPersons":   found,
	})
}
