// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

type PasswordReset struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"size:255;not null;uniqueIndex"`
	IsUsed    bool   `gorm:"not null;default:false"`
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint
	User      User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (PasswordReset) TableName() string { return "password_resets" }

// IsValid reports whether the token can still authorize a reset. Expiry is
// checked lazily here; expired rows are never swept.
func (p *PasswordReset) IsValid() bool {
	return !p.IsUsed && time.Now().Before(p.ExpiresAt)
}

func init() {
	AllModels = append(AllModels, &PasswordReset{})
}
