// SPDX-License-Identifier: GPL-3.0-only

// Package store holds the explicit query functions shared by the page
// handlers and the search API. Handlers pass the active connection in; no
// query state lives here.
package store

import (
	"errors"
	"loket-server/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// CaseSearchRow is one search result with the reporter's display name
// resolved through an explicit join.
type CaseSearchRow struct {
	ID           uint
	Name         string
	Age          int
	Gender       string
	LastSeen     string
	LastSeenDate time.Time
	Region       string
	Description  string
	PhotoURL     string
	ReporterName string
}

func unresolved(conn *gorm.DB) *gorm.DB {
	return conn.Model(&models.MissingPerson{}).Where("is_found = ?", false)
}

func applyFilters(q *gorm.DB, region, query string) *gorm.DB {
	if region != "" {
		q = q.Where("region = ?", region)
	}
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return q
}

func RecentUnresolved(conn *gorm.DB, limit int) ([]models.MissingPerson, error) {
	var cases []models.MissingPerson
	err := unresolved(conn).Order("created_at DESC").Limit(limit).Find(&cases).Error
	return cases, err
}

func RecentFound(conn *gorm.DB, limit int) ([]models.FoundPerson, error) {
	var persons []models.FoundPerson
	err := conn.Order("created_at DESC").Limit(limit).Find(&persons).Error
	return persons, err
}

// FilterUnresolved returns open cases newest-report-first, optionally
// narrowed to an exact region and a case-insensitive substring match on name
// or description.
func FilterUnresolved(conn *gorm.DB, region, query string) ([]models.MissingPerson, error) {
	var cases []models.MissingPerson
	err := applyFilters(unresolved(conn), region, query).
		Order("created_at DESC").Find(&cases).Error
	return cases, err
}

// Regions lists the distinct non-empty regions of all cases, for the browse
// filter control.
func Regions(conn *gorm.DB) ([]string, error) {
	var regions []string
	err := conn.Model(&models.MissingPerson{}).
		Distinct("region").
		Where("region <> ''").
		Order("region").
		Pluck("region", &regions).Error
	return regions, err
}

// SearchWithReporter runs the browse filter and joins each case with its
// reporting user's name.
func SearchWithReporter(conn *gorm.DB, region, query string) ([]CaseSearchRow, error) {
	var rows []CaseSearchRow
	q := conn.Table("missing_persons").
		Select("missing_persons.id, missing_persons.name, missing_persons.age, " +
			"missing_persons.gender, missing_persons.last_seen, " +
			"missing_persons.last_seen_date, " +
			"missing_persons.region, missing_persons.description, " +
			"missing_persons.photo_url, users.name AS reporter_name").
		Joins("JOIN users ON users.id = missing_persons.reported_by").
		Where("missing_persons.is_found = ?", false)
	if region != "" {
		q = q.Where("missing_persons.region = ?", region)
	}
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(missing_persons.name) LIKE ? OR LOWER(missing_persons.description) LIKE ?", pattern, pattern)
	}
	err := q.Order("missing_persons.created_at DESC").Scan(&rows).Error
	return rows, err
}

func UserReports(conn *gorm.DB, userID uint) ([]models.MissingPerson, error) {
	var cases []models.MissingPerson
	err := conn.Where("reported_by = ?", userID).
		Order("created_at DESC").Find(&cases).Error
	return cases, err
}

// CaseByID loads a case and its sightings, newest sighting first.
func CaseByID(conn *gorm.DB, id uint) (*models.MissingPerson, []models.SightingReport, error) {
	var person models.MissingPerson
	if err := conn.First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	var sightings []models.SightingReport
	if err := conn.Where("missing_person_id = ?", id).
		Order("sighting_date DESC").Find(&sightings).Error; err != nil {
		return nil, nil, err
	}
	return &person, sightings, nil
}
