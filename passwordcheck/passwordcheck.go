// SPDX-License-Identifier: GPL-3.0-only

package passwordcheck

import (
	"errors"
	"unicode/utf8"
)

// MinLength applies to password resets only. Registration accepts any
// non-empty password.
const MinLength = 6

func ValidateNewPassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if utf8.RuneCountInString(password) < MinLength {
		return errors.New("password must be at least 6 characters long")
	}
	return nil
}
