// SPDX-License-Identifier: GPL-3.0-only

package handlers_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"loket-server/crypto"
	"loket-server/db"
	"loket-server/middlewares"
	"loket-server/models"
	"loket-server/routes"
	"loket-server/web"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp wires a full application against a per-test in-memory database.
func setupApp(t *testing.T) *echo.Echo {
	t.Helper()

	t.Setenv("SESSION_SECRET", "handlers-test-secret")
	t.Setenv("MOCK_EMAIL_NOTIFICATIONS", "true")
	t.Setenv("UPLOAD_DIR", t.TempDir())

	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.Conn = conn

	e := echo.New()
	renderer, err := web.NewRenderer("../templates")
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}
	e.Renderer = renderer
	e.Use(middlewares.LoadUserMiddleware)
	routes.RegisterRoutes(e)
	return e
}

func createUser(t *testing.T, email, password string) models.User {
	t.Helper()

	hash, err := crypto.NewCrypto().HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Name:     "Test User",
		Email:    email,
		Password: hash,
		Phone:    "+15550001111",
		Role:     models.RoleUser,
	}
	if err := db.Conn.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createCase(t *testing.T, reporterID uint, name, region string) models.MissingPerson {
	t.Helper()

	person := models.MissingPerson{
		Name:         name,
		Age:          30,
		Gender:       "Female",
		LastSeen:     "Central Station",
		Region:       region,
		Description:  "Last seen wearing a blue coat",
		ContactName:  "Family Contact",
		ContactPhone: "+15550002222",
		ContactEmail: "family@example.com",
		PhotoURL:     models.DefaultPhotoURL,
		ReportedBy:   reporterID,
	}
	if err := db.Conn.Create(&person).Error; err != nil {
		t.Fatalf("failed to create case: %v", err)
	}
	return person
}

func getPath(e *echo.Echo, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func loginAs(t *testing.T, e *echo.Echo, email, password string) *http.Cookie {
	t.Helper()

	rec := postForm(e, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("login returned status %d, want %d", rec.Code, http.StatusFound)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middlewares.SessionCookieName && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func flashCookieValue(rec *httptest.ResponseRecorder) string {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "loket_flash" && ck.Value != "" {
			return ck.Value
		}
	}
	return ""
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func multipartReport(t *testing.T, fields map[string]string, photoName string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if photoName != "" {
		part, err := writer.CreateFormFile("photo", photoName)
		if err != nil {
			t.Fatalf("failed to create photo part: %v", err)
		}
		if _, err := part.Write(photo); err != nil {
			t.Fatalf("failed to write photo part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func validReportFields() map[string]string {
	return map[string]string{
		"name":           "Jane Doe",
		"age":            "27",
		"gender":         "Female",
		"last_seen":      "Harbor Market",
		"last_seen_date": "2025-06-10",
		"region":         "North",
		"description":    "Wearing a red jacket and carrying a backpack",
		"contact_name":   "John Doe",
		"contact_phone":  "+15550003333",
		"contact_email":  "john@example.com",
	}
}
