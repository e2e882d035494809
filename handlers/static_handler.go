// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"loket-server/images"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

// ServeUploadHandler serves a processed case photo from the upload
// directory. Only bare filenames with an allowed image extension resolve.
func ServeUploadHandler(c echo.Context) error {
	requested := c.Param("filename")

	cleanName := filepath.Clean(requested)
	if cleanName != requested || strings.ContainsAny(cleanName, "/\\") || strings.Contains(cleanName, "..") {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid file name")
	}

	if !images.AllowedExtension(cleanName) {
		return echo.NewHTTPError(http.StatusForbidden, "File type not allowed")
	}

	fullPath := filepath.Join(UploadDir(), cleanName)
	fileInfo, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return echo.NewHTTPError(http.StatusNotFound, "File not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Unable to access file")
	}
	if fileInfo.IsDir() {
		return echo.NewHTTPError(http.StatusForbidden, "Directory listing not allowed")
	}

	c.Response().Header().Set("X-Content-Type-Options", "nosniff")
	c.Response().Header().Set("Cache-Control", "public, max-age=3600")

	return c.File(fullPath)
}
