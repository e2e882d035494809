// SPDX-License-Identifier: GPL-3.0-only

package handlers_test

import (
	"image"
	_ "image/jpeg"
	"loket-server/db"
	"loket-server/handlers"
	"loket-server/models"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postReport(t *testing.T, e *echo.Echo, fields map[string]string, photoName string, photo []byte, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartReport(t, fields, photoName, photo)
	req := httptest.NewRequest(http.MethodPost, "/report-missing", body)
	req.Header.Set("Content-Type", contentType)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestReportMissingRequiresLogin(t *testing.T) {
	e := setupApp(t)

	rec := postForm(e, "/report-missing", url.Values{"name": {"Jane Doe"}})
	if rec.Code != http.StatusFound {
		t.Fatalf("anonymous report returned status %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?next=%2Freport-missing" {
		t.Errorf("anonymous report redirected to %q", loc)
	}

	var count int64
	db.Conn.Model(&models.MissingPerson{}).Count(&count)
	if count != 0 {
		t.Errorf("case count = %d, want 0", count)
	}
}

func TestReportMissingWithPhoto(t *testing.T) {
	e := setupApp(t)
	user := createUser(t, "reporter@example.com", "secret123")
	cookie := loginAs(t, e, "reporter@example.com", "secret123")

	rec := postReport(t, e, validReportFields(), "original.png", pngBytes(t, 1200, 900), cookie)
	if rec.Code != http.StatusFound {
		t.Fatalf("report returned status %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("report redirected to %q, want /", loc)
	}

	person := models.MissingPerson{}
	if err := db.Conn.Where("reported_by = ?", user.ID).First(&person).Error; err != nil {
		t.Fatalf("case not persisted: %v", err)
	}
	if person.Name != "Jane Doe" || person.Age != 27 {
		t.Errorf("persisted case = %q/%d, want Jane Doe/27", person.Name, person.Age)
	}
	if person.LastSeenDate.Format("2006-01-02") != "2025-06-10" {
		t.Errorf("last seen date = %v", person.LastSeenDate)
	}
	if person.IsFound {
		t.Error("new case marked as found")
	}
	if !strings.HasPrefix(person.PhotoURL, "/static/uploads/missing_person_") {
		t.Fatalf("photo URL = %q, want an upload reference", person.PhotoURL)
	}
	if !strings.HasSuffix(person.PhotoURL, ".png") {
		t.Errorf("photo URL %q does not keep the original extension", person.PhotoURL)
	}

	filename := strings.TrimPrefix(person.PhotoURL, "/static/uploads/")
	f, err := os.Open(filepath.Join(handlers.UploadDir(), filename))
	if err != nil {
		t.Fatalf("stored photo missing: %v", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("stored photo not decodable: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("stored photo format = %q, want jpeg", format)
	}
	if cfg.Width > 800 || cfg.Height > 800 {
		t.Errorf("stored photo is %dx%d, want both sides <= 800", cfg.Width, cfg.Height)
	}
}

func TestReportMissingWithoutPhotoUsesDefault(t *testing.T) {
	e := setupApp(t)
	user := createUser(t, "reporter@example.com", "secret123")
	cookie := loginAs(t, e, "reporter@example.com", "secret123")

	rec := postReport(t, e, validReportFields(), "", nil, cookie)
	if rec.Code != http.StatusFound {
		t.Fatalf("report returned status %d, want %d", rec.Code, http.StatusFound)
	}

	person := models.MissingPerson{}
	if err := db.Conn.Where("reported_by = ?", user.ID).First(&person).Error; err != nil {
		t.Fatalf("case not persisted: %v", err)
	}
	if person.PhotoURL != models.DefaultPhotoURL {
		t.Errorf("photo URL = %q, want %q", person.PhotoURL, models.DefaultPhotoURL)
	}
}

// An unusable photo degrades to the placeholder; the report itself is filed.
func TestReportMissingBadPhotoStillFiles(t *testing.T) {
	e := setupApp(t)
	user := createUser(t, "reporter@example.com", "secret123")
	cookie := loginAs(t, e, "reporter@example.com", "secret123")

	rec := postReport(t, e, validReportFields(), "notes.txt", []byte("not an image"), cookie)
	if rec.Code != http.StatusFound {
		t.Fatalf("report returned status %d, want %d", rec.Code, http.StatusFound)
	}

	person := models.MissingPerson{}
	if err := db.Conn.Where("reported_by = ?", user.ID).First(&person).Error; err != nil {
		t.Fatalf("case not persisted: %v", err)
	}
	if person.PhotoURL != models.DefaultPhotoURL {
		t.Errorf("photo URL = %q, want %q", person.PhotoURL, models.DefaultPhotoURL)
	}

	entries, err := os.ReadDir(handlers.UploadDir())
	if err != nil {
		t.Fatalf("failed to read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir has %d entries, want 0", len(entries))
	}
}

func TestReportMissingValidation(t *testing.T) {
	e := setupApp(t)
	createUser(t, "reporter@example.com", "secret123")
	cookie := loginAs(t, e, "reporter@example.com", "secret123")

	fields := validReportFields()
	fields["age"] = "-3"
	delete(fields, "description")

	rec := postReport(t, e, fields, "", nil, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid report returned status %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var count int64
	db.Conn.Model(&models.MissingPerson{}).Count(&count)
	if count != 0 {
		t.Errorf("case count = %d, want 0", count)
	}
}

func TestReportedCaseAppearsInProfile(t *testing.T) {
	e := setupApp(t)
	createUser(t, "reporter@example.com", "secret123")
	cookie := loginAs(t, e, "reporter@example.com", "secret123")

	rec := postReport(t, e, validReportFields(), "", nil, cookie)
	if rec.Code != http.StatusFound {
		t.Fatalf("report returned status %d, want %d", rec.Code, http.StatusFound)
	}

	rec = getPath(e, "/profile", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("/profile returned status %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Jane Doe") {
		t.Error("profile page does not list the filed report")
	}
}
