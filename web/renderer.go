// SPDX-License-Identifier: GPL-3.0-only

// Package web carries the HTML presentation glue: the echo template renderer
// and one-time flash messages.
package web

import (
	"html/template"
	"io"
	"loket-server/models"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

type Renderer struct {
	templates *template.Template
}

func NewRenderer(dir string) (*Renderer, error) {
	templates, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates}, nil
}

// Render executes the named template. Map data gets the queued flash
// messages and the authenticated user injected under "Flashes" and
// "CurrentUser".
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	m, ok := data.(map[string]any)
	if !ok {
		m = map[string]any{}
		if data != nil {
			m["Data"] = data
		}
	}
	m["Flashes"] = PopFlashes(c)
	if _, ok := m["Errors"]; !ok {
		m["Errors"] = map[string]string{}
	}
	if user, ok := c.Get("user").(*models.User); ok {
		m["CurrentUser"] = user
	}
	return r.templates.ExecuteTemplate(w, name, m)
}
