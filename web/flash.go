// SPDX-License-Identifier: GPL-3.0-only

package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const flashCookieName = "loket_flash"
const pendingFlashesKey = "pending_flashes"

type FlashMessage struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Flash queues a one-time notice for the user. It survives a redirect via a
// cookie and is also visible to a render in the same request.
func Flash(c echo.Context, level, text string) {
	pending, _ := c.Get(pendingFlashesKey).([]FlashMessage)
	pending = append(pending, FlashMessage{Level: level, Text: text})
	c.Set(pendingFlashesKey, pending)

	payload, err := json.Marshal(pending)
	if err != nil {
		return
	}
	removeFlashSetCookie(c)
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
	})
}

// PopFlashes returns every queued notice (previous request's cookie plus this
// request's pending ones) and clears the cookie so each shows exactly once.
func PopFlashes(c echo.Context) []FlashMessage {
	var messages []FlashMessage

	if cookie, err := c.Cookie(flashCookieName); err == nil && cookie.Value != "" {
		if payload, err := base64.RawURLEncoding.DecodeString(cookie.Value); err == nil {
			json.Unmarshal(payload, &messages)
		}
	}

	if pending, ok := c.Get(pendingFlashesKey).([]FlashMessage); ok {
		// pending messages were just written to the cookie too; rendering
		// them now means the cookie must go
		messages = append(messages, pending...)
	}

	removeFlashSetCookie(c)
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	c.Set(pendingFlashesKey, nil)

	return messages
}

func removeFlashSetCookie(c echo.Context) {
	header := c.Response().Header()
	values := header.Values("Set-Cookie")
	if len(values) == 0 {
		return
	}
	header.Del("Set-Cookie")
	for _, v := range values {
		if !strings.HasPrefix(v, flashCookieName+"=") {
			header.Add("Set-Cookie", v)
		}
	}
}
