// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"loket-server/db"
	"loket-server/middlewares"
	"loket-server/store"
	"net/http"

	"github.com/labstack/echo/v4"
)

func ProfileHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	reports, err := store.UserReports(db.Conn, user.ID)
	if err != nil {
		logger.Errorf("Failed to fetch user reports: %v", err)
		return echo.ErrInternalServerError
	}

	return c.Render(http.StatusOK, "profile.html", map[string]any{
		"UserReports": reports,
	})
}
