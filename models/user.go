// SPDX-License-Identifier: GPL-3.0-only

package models

import "time"

var AllModels []any

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:100;not null;uniqueIndex"`
	Password  string `gorm:"size:200;not null"`
	Phone     string `gorm:"size:20;not null"`
	Role      string `gorm:"size:20;not null;default:user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }

func init() {
	AllModels = append(AllModels, &User{})
}
