// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"loket-server/crypto"
	"loket-server/db"
	"loket-server/middlewares"
	"loket-server/models"
	"loket-server/web"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func LoginPageHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", map[string]any{
		"Next": c.QueryParam("next"),
	})
}

func LoginHandler(c echo.Context) error {
	logger := c.Logger()

	email := c.FormValue("email")
	password := c.FormValue("password")
	next := c.FormValue("next")

	fieldErrors := map[string]string{}
	if email == "" {
		fieldErrors["email"] = "Email is required"
	}
	if password == "" {
		fieldErrors["password"] = "Password is required"
	}
	if len(fieldErrors) > 0 {
		return c.Render(http.StatusBadRequest, "login.html", map[string]any{
			"Errors": fieldErrors,
			"Email":  email,
			"Next":   next,
		})
	}

	newCrypto := crypto.NewCrypto()
	user := models.User{}
	err := db.Conn.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("User not found.")
			web.Flash(c, "error", "Invalid email or password")
			return c.Render(http.StatusUnauthorized, "login.html", map[string]any{
				"Email": email,
				"Next":  next,
			})
		}
		logger.Errorf("Failed to find user: %v", err)
		return echo.ErrInternalServerError
	}

	if err := newCrypto.VerifyPassword(password, user.Password); err != nil {
		logger.Error("Password verification failed.")
		web.Flash(c, "error", "Invalid email or password")
		return c.Render(http.StatusUnauthorized, "login.html", map[string]any{
			"Email": email,
			"Next":  next,
		})
	}

	sessionToken, err := crypto.GenerateRandomString("st_", 32, "hex")
	if err != nil {
		logger.Errorf("Failed to generate session token: %v", err)
		return echo.ErrInternalServerError
	}

	sessionExp := time.Now().Add(30 * 24 * time.Hour)
	sessionLastUsed := time.Now()
	session := models.Session{}
	if err := db.Conn.Where("user_id = ?", user.ID).Assign(models.Session{
		Token:      sessionToken,
		LastUsedAt: &sessionLastUsed,
		ExpiresAt:  &sessionExp,
	}).FirstOrCreate(&session).Error; err != nil {
		logger.Errorf("Failed to create session: %v", err)
		return echo.ErrInternalServerError
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"jti": sessionToken,
		"sid": session.ID,
		"uid": user.ID,
		"exp": sessionExp.Unix(),
	})
	tokenString, err := token.SignedString(middlewares.SessionSecret())
	if err != nil {
		logger.Errorf("Failed to sign session token: %v", err)
		return echo.ErrInternalServerError
	}

	c.SetCookie(&http.Cookie{
		Name:     middlewares.SessionCookieName,
		Value:    tokenString,
		Path:     "/",
		Expires:  sessionExp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	logger.Info("Login successful")
	return c.Redirect(http.StatusFound, safeNext(next))
}

func LogoutHandler(c echo.Context) error {
	logger := c.Logger()

	if session, ok := c.Get("session").(*models.Session); ok {
		if err := db.Conn.Delete(session).Error; err != nil {
			logger.Errorf("Failed to delete session: %v", err)
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middlewares.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	web.Flash(c, "success", "You have been logged out successfully.")
	return c.Redirect(http.StatusFound, "/")
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
