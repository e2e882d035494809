// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"loket-server/commons"
	"loket-server/crypto"
	"loket-server/db"
	"loket-server/models"
	"loket-server/notifications"
	"loket-server/passwordcheck"
	"loket-server/web"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

// The flash shown by ForgotPasswordHandler is identical whether or not the
// email exists, so the endpoint cannot be used to enumerate accounts.
const forgotPasswordNotice = "If that email is registered, a password reset link has been sent."

func ForgotPasswordPageHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "forgot_password.html", map[string]any{})
}

func ForgotPasswordHandler(c echo.Context) error {
	logger := c.Logger()

	email := c.FormValue("email")
	if email == "" {
		return c.Render(http.StatusBadRequest, "forgot_password.html", map[string]any{
			"Errors": map[string]string{"email": "Email is required"},
		})
	}

	user := models.User{}
	err := db.Conn.Where("email = ?", email).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Errorf("Failed to look up user: %v", err)
			return echo.ErrInternalServerError
		}
		logger.Debug("Password reset requested for unknown email")
		web.Flash(c, "success", forgotPasswordNotice)
		return c.Redirect(http.StatusFound, "/login")
	}

	token, err := crypto.GenerateRandomString("prt_", 16, "hex")
	if err != nil {
		logger.Errorf("Failed to generate reset token: %v", err)
		return echo.ErrInternalServerError
	}

	reset := models.PasswordReset{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := db.Conn.Create(&reset).Error; err != nil {
		logger.Errorf("Failed to persist reset token: %v", err)
		return echo.ErrInternalServerError
	}

	resetURL := commons.GetEnv("APP_BASE_URL", "http://localhost:8080") + "/reset-password/" + token

	// Single attempt; a failed send still shows the generic notice.
	err = notifications.DispatchNotification(notifications.Email, notifications.SMTP, notifications.NotificationData{
		To:       user.Email,
		ToName:   &user.Name,
		Subject:  "Loket Password Reset",
		Template: "password_reset",
		Variables: map[string]any{
			"name":             user.Name,
			"reset_url":        resetURL,
			"expiration_hours": "1",
		},
		TextBody: fmt.Sprintf(
			"Hello %s,\n\nA password reset was requested for your Loket account. "+
				"Open the link below within 1 hour to choose a new password:\n\n%s\n\n"+
				"If you did not request this, you can ignore this message.\n",
			user.Name, resetURL),
	})
	if err != nil {
		logger.Errorf("Password reset email dispatch failed: %v", err)
	}

	web.Flash(c, "success", forgotPasswordNotice)
	return c.Redirect(http.StatusFound, "/login")
}

func ResetPasswordPageHandler(c echo.Context) error {
	token := c.Param("token")

	reset := models.PasswordReset{}
	err := db.Conn.Where("token = ?", token).First(&reset).Error
	if err != nil || !reset.IsValid() {
		web.Flash(c, "error", "This password reset link is invalid or has expired.")
		return c.Redirect(http.StatusFound, "/forgot-password")
	}

	return c.Render(http.StatusOK, "reset_password.html", map[string]any{
		"Token": token,
	})
}

func ResetPasswordHandler(c echo.Context) error {
	logger := c.Logger()
	token := c.Param("token")

	reset := models.PasswordReset{}
	err := db.Conn.Where("token = ?", token).First(&reset).Error
	if err != nil || !reset.IsValid() {
		web.Flash(c, "error", "This password reset link is invalid or has expired.")
		return c.Redirect(http.StatusFound, "/forgot-password")
	}

	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")

	fieldErrors := map[string]string{}
	if err := passwordcheck.ValidateNewPassword(password); err != nil {
		fieldErrors["password"] = err.Error()
	}
	if confirm != password {
		fieldErrors["confirm_password"] = "Passwords do not match"
	}
	if len(fieldErrors) > 0 {
		return c.Render(http.StatusBadRequest, "reset_password.html", map[string]any{
			"Token":  token,
			"Errors": fieldErrors,
		})
	}

	newCrypto := crypto.NewCrypto()
	hash, err := newCrypto.HashPassword(password)
	if err != nil {
		logger.Errorf("Failed to hash password: %v", err)
		return echo.ErrInternalServerError
	}

	// The password update and the token consumption must commit together; a
	// crash in between must not leave a reusable token.
	err = db.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
			Update("password", hash).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("is_used", true).Error
	})
	if err != nil {
		logger.Errorf("Failed to reset password: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Password reset successfully")
	web.Flash(c, "success", "Your password has been reset. Please log in.")
	return c.Redirect(http.StatusFound, "/login")
}
