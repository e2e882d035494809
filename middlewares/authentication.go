// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"loket-server/commons"
	"loket-server/db"
	"loket-server/models"
	"loket-server/web"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const SessionCookieName = "loket_session"

func SessionSecret() []byte {
	return []byte(commons.GetEnv("SESSION_SECRET", "default_very_secret_key"))
}

// LoadUserMiddleware resolves the session cookie into the authenticated user
// for this request, best-effort. Anonymous requests continue with no user
// set; RequireSessionMiddleware enforces where login is mandatory.
func LoadUserMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookieName)
		if err == nil && cookie.Value != "" {
			user, session, err := resolveSession(c, cookie.Value)
			if err == nil {
				c.Set("user", user)
				c.Set("session", session)
			}
		}
		return next(c)
	}
}

// RequireSessionMiddleware redirects anonymous requests to the login page,
// preserving the original destination for the post-login redirect.
func RequireSessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get("user").(*models.User); !ok {
			web.Flash(c, "error", "Please log in to access this page.")
			return c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request().RequestURI))
		}
		return next(c)
	}
}

func resolveSession(c echo.Context, tokenString string) (*models.User, *models.Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return SessionSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, nil, errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, errors.New("invalid session claims")
	}

	sessionID := claims["sid"]
	userID := claims["uid"]
	tokenID := claims["jti"]

	session := models.Session{}
	err = db.Conn.Where("id = ? AND user_id = ? AND token = ?", sessionID, userID, tokenID).First(&session).Error
	if err != nil || session.ExpiresAt == nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil, errors.New("session not found or expired")
	}

	now := time.Now()
	session.LastUsedAt = &now
	if err := db.Conn.Save(&session).Error; err != nil {
		c.Logger().Error("Failed to update session LastUsedAt: ", err)
	}

	var user models.User
	if err := db.Conn.First(&user, session.UserID).Error; err != nil {
		return nil, nil, err
	}
	return &user, &session, nil
}

func GetAuthenticatedUser(c echo.Context) (*models.User, error) {
	if user, ok := c.Get("user").(*models.User); ok {
		return user, nil
	}
	return nil, errors.New("no authenticated user found")
}
