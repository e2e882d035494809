// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"loket-server/crypto"
	"loket-server/db"
	"loket-server/models"
	"loket-server/web"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func RegisterPageHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", map[string]any{})
}

func RegisterHandler(c echo.Context) error {
	logger := c.Logger()

	name := c.FormValue("name")
	email := c.FormValue("email")
	password := c.FormValue("password")
	phone := c.FormValue("phone")

	fieldErrors := map[string]string{}
	if name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if email == "" {
		fieldErrors["email"] = "Email is required"
	}
	if password == "" {
		fieldErrors["password"] = "Password is required"
	}
	if phone == "" {
		fieldErrors["phone"] = "Phone is required"
	}
	if len(fieldErrors) > 0 {
		return c.Render(http.StatusBadRequest, "register.html", map[string]any{
			"Errors": fieldErrors,
			"Name":   name,
			"Email":  email,
			"Phone":  phone,
		})
	}

	err := db.Conn.Where("email = ?", email).First(&models.User{}).Error
	if err == nil {
		logger.Error("Email is already registered.")
		web.Flash(c, "error", "Email already registered")
		return c.Render(http.StatusConflict, "register.html", map[string]any{
			"Name":  name,
			"Email": email,
			"Phone": phone,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Errorf("Failed to check existing user: %v", err)
		return echo.ErrInternalServerError
	}

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword(password)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Phone:    phone,
		Role:     models.RoleUser,
	}
	if err := db.Conn.Create(&user).Error; err != nil {
		logger.Errorf("Failed to create user: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("User registered successfully")
	web.Flash(c, "success", "Registration successful! Please log in.")
	return c.Redirect(http.StatusFound, "/login")
}
