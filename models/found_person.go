// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

// FoundPerson records a resolved case. There is intentionally no foreign key
// back to MissingPerson; resolution is recorded out of band.
type FoundPerson struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	Age          int    `gorm:"not null"`
	FoundDate    time.Time
	ReunitedWith string `gorm:"size:100;not null"`
	PhotoURL     string `gorm:"size:200"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (FoundPerson) TableName() string { return "found_persons" }

func init() {
	AllModels = append(AllModels, &FoundPerson{})
}
