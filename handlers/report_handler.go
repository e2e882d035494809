// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"loket-server/commons"
	"loket-server/db"
	"loket-server/images"
	"loket-server/middlewares"
	"loket-server/models"
	"loket-server/web"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

func UploadDir() string {
	return commons.GetEnv("UPLOAD_DIR", filepath.Join("static", "uploads"))
}

func ReportMissingPageHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "report.html", map[string]any{})
}

func ReportMissingHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return echo.ErrUnauthorized
	}

	form := map[string]string{
		"name":           c.FormValue("name"),
		"age":            c.FormValue("age"),
		"gender":         c.FormValue("gender"),
		"last_seen":      c.FormValue("last_seen"),
		"last_seen_date": c.FormValue("last_seen_date"),
		"region":         c.FormValue("region"),
		"description":    c.FormValue("description"),
		"contact_name":   c.FormValue("contact_name"),
		"contact_phone":  c.FormValue("contact_phone"),
		"contact_email":  c.FormValue("contact_email"),
	}

	fieldErrors := map[string]string{}
	for field, value := range form {
		if value == "" {
			fieldErrors[field] = "This field is required"
		}
	}

	var age int
	if form["age"] != "" {
		age, err = strconv.Atoi(form["age"])
		if err != nil || age < 0 {
			fieldErrors["age"] = "Age must be a non-negative number"
		}
	}

	var lastSeenDate time.Time
	if form["last_seen_date"] != "" {
		lastSeenDate, err = time.Parse(lastSeenDateLayout, form["last_seen_date"])
		if err != nil {
			fieldErrors["last_seen_date"] = "Date must be in YYYY-MM-DD format"
		}
	}

	if len(fieldErrors) > 0 {
		return c.Render(http.StatusBadRequest, "report.html", map[string]any{
			"Errors": fieldErrors,
			"Form":   form,
		})
	}

	person := models.MissingPerson{
		Name:         form["name"],
		Age:          age,
		Gender:       form["gender"],
		LastSeen:     form["last_seen"],
		LastSeenDate: lastSeenDate,
		Region:       form["region"],
		Description:  form["description"],
		ContactName:  form["contact_name"],
		ContactPhone: form["contact_phone"],
		ContactEmail: form["contact_email"],
		PhotoURL:     models.DefaultPhotoURL,
		ReportedBy:   user.ID,
	}

	// Two-phase write: the insert allocates the id the photo filename
	// embeds, then the photo reference is attached before the commit.
	tx := db.Conn.Begin()
	if tx.Error != nil {
		logger.Errorf("Transaction begin failed: %v", tx.Error)
		return echo.ErrInternalServerError
	}

	if err := tx.Create(&person).Error; err != nil {
		tx.Rollback()
		logger.Errorf("Failed to create missing person report: %v", err)
		return echo.ErrInternalServerError
	}

	storedFile := ""
	if file, err := c.FormFile("photo"); err == nil && file.Filename != "" {
		src, err := file.Open()
		if err != nil {
			logger.Errorf("Failed to open uploaded photo: %v", err)
		} else {
			filename, perr := images.Process(src, file.Filename, person.ID, UploadDir())
			src.Close()
			if perr != nil {
				// the report is still filed, with the placeholder photo
				logger.Warnf("Photo not saved: %v", perr)
			} else {
				storedFile = filename
				if err := tx.Model(&person).Update("photo_url", "/static/uploads/"+filename).Error; err != nil {
					tx.Rollback()
					os.Remove(filepath.Join(UploadDir(), filename))
					logger.Errorf("Failed to attach photo: %v", err)
					return echo.ErrInternalServerError
				}
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		if storedFile != "" {
			os.Remove(filepath.Join(UploadDir(), storedFile))
		}
		logger.Errorf("Transaction commit failed: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Missing person report submitted")
	web.Flash(c, "success", "Missing person report submitted successfully!")
	return c.Redirect(http.StatusFound, "/")
}
