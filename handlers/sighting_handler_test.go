// SPDX-License-Identifier: GPL-3.0-only

package handlers_test

import (
	"loket-server/db"
	"loket-server/models"
	"net/http"
	"net/url"
	"testing"
)

func TestReportSightingRequiresLogin(t *testing.T) {
	e := setupApp(t)
	reporter := createUser(t, "reporter@example.com", "secret123")
	person := createCase(t, reporter.ID, "Jane Doe", "North")

	rec := postForm(e, "/report-sighting/1", url.Values{"location": {"Main Street"}})
	if rec.Code != http.StatusFound {
		t.Fatalf("anonymous sighting returned status %d, want %d", rec.Code, http.StatusFound)
	}

	var count int64
	db.Conn.Model(&models.SightingReport{}).Where("missing_person_id = ?", person.ID).Count(&count)
	if count != 0 {
		t.Errorf("sighting count = %d, want 0", count)
	}
}

func TestReportSightingUnknownCase(t *testing.T) {
	e := setupApp(t)
	createUser(t, "witness@example.com", "secret123")
	cookie := loginAs(t, e, "witness@example.com", "secret123")

	rec := postForm(e, "/report-sighting/9999", url.Values{
		"location":         {"Main Street"},
		"sighting_date":    {"2025-06-12T14:30"},
		"reporter_name":    {"A Witness"},
		"reporter_contact": {"+15550006666"},
	}, cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("sighting for missing case returned status %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = postForm(e, "/report-sighting/not-a-number", url.Values{}, cookie)
	if rec.Code != http.StatusNotFound {
		t.Errorf("sighting for malformed id returned status %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestReportSightingCreatesReport(t *testing.T) {
	e := setupApp(t)
	reporter := createUser(t, "reporter@example.com", "secret123")
	person := createCase(t, reporter.ID, "Jane Doe", "North")

	witness := createUser(t, "witness@example.com", "secret123")
	cookie := loginAs(t, e, "witness@example.com", "secret123")

	rec := postForm(e, "/report-sighting/1", url.Values{
		"location":         {"Harbor Market"},
		"sighting_date":    {"2025-06-12T14:30"},
		"details":          {"Seen near the fish stalls"},
		"reporter_name":    {"A Witness"},
		"reporter_contact": {"+15550006666"},
	}, cookie)

	if rec.Code != http.StatusFound {
		t.Fatalf("sighting returned status %d, want %d", rec.Code, http.StatusFound)
	}
	if loc := rec.Header().Get("Location"); loc != "/browse" {
		t.Errorf("sighting redirected to %q, want /browse", loc)
	}

	sighting := models.SightingReport{}
	if err := db.Conn.Where("missing_person_id = ?", person.ID).First(&sighting).Error; err != nil {
		t.Fatalf("sighting not persisted: %v", err)
	}
	if sighting.Location != "Harbor Market" {
		t.Errorf("location = %q", sighting.Location)
	}
	if got := sighting.SightingDate.Format("2006-01-02T15:04"); got != "2025-06-12T14:30" {
		t.Errorf("sighting date = %q, want 2025-06-12T14:30", got)
	}
	if sighting.ReportedBy == nil || *sighting.ReportedBy != witness.ID {
		t.Errorf("sighting reported_by = %v, want %d", sighting.ReportedBy, witness.ID)
	}
}

func TestReportSightingValidation(t *testing.T) {
	e := setupApp(t)
	reporter := createUser(t, "reporter@example.com", "secret123")
	person := createCase(t, reporter.ID, "Jane Doe", "North")
	cookie := loginAs(t, e, "reporter@example.com", "secret123")

	rec := postForm(e, "/report-sighting/1", url.Values{
		"location":         {"Harbor Market"},
		"sighting_date":    {"12/06/2025"},
		"reporter_name":    {"A Witness"},
		"reporter_contact": {"+15550006666"},
	}, cookie)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed date returned status %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var count int64
	db.Conn.Model(&models.SightingReport{}).Where("missing_person_id = ?", person.ID).Count(&count)
	if count != 0 {
		t.Errorf("sighting count = %d, want 0", count)
	}
}
