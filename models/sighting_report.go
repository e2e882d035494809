// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

type SightingReport struct {
	ID              uint          `gorm:"primaryKey"`
	MissingPersonID uint          `gorm:"not null;index"`
	MissingPerson   MissingPerson `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Location        string        `gorm:"size:200;not null"`
	// Minute precision, unlike MissingPerson.LastSeenDate which is a date.
	SightingDate    time.Time
	Details         string `gorm:"type:text"`
	ReporterName    string `gorm:"size:100;not null"`
	ReporterContact string `gorm:"size:100;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ReportedBy      *uint
}

func (SightingReport) TableName() string { return "sighting_reports" }

func init() {
	AllModels = append(AllModels, &SightingReport{})
}
