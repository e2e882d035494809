// SPDX-License-Identifier: GPL-3.0-only

package db

import (
	"loket-server/commons"
	"loket-server/crypto"
	"loket-server/models"
	"time"

	"gorm.io/gorm"
)

// SeedDB inserts the initial admin account and sample records. It is a no-op
// when a user already exists.
func SeedDB() error {
	return Seed(Conn)
}

func Seed(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		commons.Logger.Debug("Database already seeded, skipping")
		return nil
	}

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword(commons.GetEnv("SEED_ADMIN_PASSWORD", "admin123"))
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin User",
		Email:    "admin@loket.org",
		Password: hash,
		Phone:    "(555) 000-0000",
		Role:     models.RoleAdmin,
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}

	missing := models.MissingPerson{
		Name:         "Sarah Johnson",
		Age:          28,
		Gender:       "Female",
		LastSeen:     "Central Park, New York",
		LastSeenDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Region:       "Northeast",
		Description:  "Last seen wearing blue jeans and a red jacket. Brown hair, green eyes.",
		ContactName:  "Michael Johnson",
		ContactPhone: "(555) 123-4567",
		ContactEmail: "m.johnson@email.com",
		PhotoURL:     models.DefaultPhotoURL,
		ReportedBy:   admin.ID,
	}
	if err := conn.Create(&missing).Error; err != nil {
		return err
	}

	found := models.FoundPerson{
		Name:         "Emily Rodriguez",
		Age:          32,
		FoundDate:    time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		ReunitedWith: "Family in Miami",
		PhotoURL:     models.DefaultPhotoURL,
	}
	if err := conn.Create(&found).Error; err != nil {
		return err
	}

	commons.Logger.Info("Sample data created")
	return nil
}
