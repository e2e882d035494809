// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"loket-server/db"
	"loket-server/middlewares"
	"loket-server/models"
	"loket-server/store"
	"loket-server/web"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

func ReportSightingHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

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

	location := c.FormValue("location")
	sightingDateRaw := c.FormValue("sighting_date")
	details := c.FormValue("details")
	reporterName := c.FormValue("reporter_name")
	reporterContact := c.FormValue("reporter_contact")

	fieldErrors := map[string]string{}
	if location == "" {
		fieldErrors["location"] = "Location is required"
	}
	if reporterName == "" {
		fieldErrors["reporter_name"] = "Your name is required"
	}
	if reporterContact == "" {
		fieldErrors["reporter_contact"] = "Contact information is required"
	}
	var sightingDate time.Time
	if sightingDateRaw == "" {
		fieldErrors["sighting_date"] = "Sighting date is required"
	} else {
		sightingDate, err = time.Parse(sightingDateLayout, sightingDateRaw)
		if err != nil {
			fieldErrors["sighting_date"] = "Date must be in YYYY-MM-DDTHH:MM format"
		}
	}

	if len(fieldErrors) > 0 {
		return c.Render(http.StatusBadRequest, "case_details.html", map[string]any{
			"Person":    person,
			"Sightings": sightings,
			"Errors":    fieldErrors,
		})
	}

	sighting := models.SightingReport{
		MissingPersonID: person.ID,
		Location:        location,
		SightingDate:    sightingDate,
		Details:         details,
		ReporterName:    reporterName,
		ReporterContact: reporterContact,
		ReportedBy:      &user.ID,
	}
	if err := db.Conn.Create(&sighting).Error; err != nil {
		logger.Errorf("Failed to create sighting report: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Sighting report submitted")
	web.Flash(c, "success", "Sighting report submitted successfully!")
	return c.Redirect(http.StatusFound, "/browse")
}
