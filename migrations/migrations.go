// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"loket-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202408_backfill_photo_urls",
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Model(&models.MissingPerson{}).
					Where("photo_url IS NULL OR photo_url = ''").
					Update("photo_url", models.DefaultPhotoURL).Error; err != nil {
					return err
				}
				return tx.Model(&models.FoundPerson{}).
					Where("photo_url IS NULL OR photo_url = ''").
					Update("photo_url", models.DefaultPhotoURL).Error
			},
			Rollback: func(tx *gorm.DB) error {
				return nil
			},
		},
	}
}
