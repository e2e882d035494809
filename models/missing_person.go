// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

// DefaultPhotoURL is served when a report has no usable photo.
const DefaultPhotoURL = "/static/images/default-avatar.png"

type MissingPerson struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Age          int    `gorm:"not null"`
	Gender       string `gorm:"size:20;not null"`
	LastSeen     string `gorm:"size:200;not null"`
	LastSeenDate time.Time
	Region       string `gorm:"size:50;not null;index"`
	Description  string `gorm:"type:text;not null"`
	ContactName  string `gorm:"size:100;not null"`
	ContactPhone string `gorm:"size:20;not null"`
	ContactEmail string `gorm:"size:100;not null"`
	PhotoURL     string `gorm:"size:200"`
	IsFound      bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ReportedBy   uint `gorm:"not null"`
	Reporter     User `gorm:"foreignKey:ReportedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (MissingPerson) TableName() string { return "missing_persons" }

func init() {
	AllModels = append(AllModels, &MissingPerson{})
}
