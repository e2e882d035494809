// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"loket-server/db"
	"loket-server/store"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SearchAPIHandler runs the browse filter and returns the matches as JSON,
// including each reporter's display name.
func SearchAPIHandler(c echo.Context) error {
	logger := c.Logger()

	query := c.QueryParam("q")
	region := c.QueryParam("region")

	rows, err := store.SearchWithReporter(db.Conn, region, query)
	if err != nil {
		logger.Errorf("Failed to search cases: %v", err)
		return echo.ErrInternalServerError
	}

	results := make([]SearchResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, SearchResult{
			ID:           row.ID,
			Name:         row.Name,
			Age:          row.Age,
			Gender:       row.Gender,
			LastSeen:     row.LastSeen,
			LastSeenDate: row.LastSeenDate.Format(lastSeenDateLayout),
			Region:       row.Region,
			Description:  row.Description,
			PhotoURL:     row.PhotoURL,
			ReporterName: row.ReporterName,
		})
	}

	return c.JSON(http.StatusOK, results)
}
