package auth

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bboom-app/bboom-api/internal/api"
)

// PasswordPolicy is the configurable strength policy applied at registration:
// minimum length, not entirely numeric, not on the common-password list, not
// too similar to the user's own attributes.
type PasswordPolicy struct {
	MinLength int
}

const defaultMinLength = 8

// similarity threshold for user-attribute checks
const minSimilarAttrLen = 3

// NewPasswordPolicy builds a policy, falling back to the default minimum
// length when the configured value is zero.
func NewPasswordPolicy(minLength int) PasswordPolicy {
	if minLength <= 0 {
		minLength = defaultMinLength
	}
	return PasswordPolicy{MinLength: minLength}
}

// Validate runs every policy check and reports all violations together under
// the "password" key.
func (p PasswordPolicy) Validate(password, username, email string) api.FieldErrors {
	fieldErrors := api.FieldErrors{}

	if len([]rune(password)) < p.MinLength {
		fieldErrors.Add("password", fmt.Sprintf(
			"This password is too short. It must contain at least %d characters.", p.MinLength))
	}
	if isEntirelyNumeric(password) {
		fieldErrors.Add("password", "This password is entirely numeric.")
	}
	if isCommonPassword(password) {
		fieldErrors.Add("password", "This password is too common.")
	}
	if isSimilar(password, username) {
		fieldErrors.Add("password", "The password is too similar to the username.")
	}
	if isSimilar(password, emailLocalPart(email)) {
		fieldErrors.Add("password", "The password is too similar to the email address.")
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func isEntirelyNumeric(password string) bool {
	if password == "" {
		return false
	}
	for _, r := range password {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}

// isSimilar reports whether the password is close enough to a user attribute
// to be guessable: one contains the other, case-insensitively.
func isSimilar(password, attr string) bool {
	if len(attr) < minSimilarAttrLen {
		return false
	}
	p := strings.ToLower(password)
	a := strings.ToLower(attr)
	return strings.Contains(p, a) || strings.Contains(a, p)
}

func emailLocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

// A cut of the usual leaked-password lists. Lowercased; lookups lowercase the
// candidate first.
var commonPasswords = func() map[string]struct{} {
	list := []string{
		"password", "passw0rd", "password1", "password123", "letmein",
		"welcome", "welcome1", "admin", "administrator", "root", "login",
		"qwerty", "qwerty123", "qwertyuiop", "asdfgh", "asdfghjkl", "zxcvbnm",
		"123456", "1234567", "12345678", "123456789", "1234567890", "654321",
		"111111", "121212", "123123", "123321", "696969", "666666", "000000",
		"abc123", "abcd1234", "a1b2c3", "1q2w3e4r", "1qaz2wsx", "qazwsx",
		"iloveyou", "sunshine", "princess", "dragon", "monkey", "shadow",
		"master", "superman", "batman", "trustno1", "whatever", "freedom",
		"charlie", "jordan", "michael", "jessica", "daniel", "ashley",
		"football", "baseball", "soccer", "hockey", "starwars", "pokemon",
		"computer", "internet", "samsung", "google", "secret", "hunter2",
	}
	set := make(map[string]struct{}, len(list))
	for _, p := range list {
		set[p] = struct{}{}
	}
	return set
}()
