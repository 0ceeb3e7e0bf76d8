package validator

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

const MaxMessageLength = 500

// ValidateMessageContent returns the first violated constraint, or ""
// if the content is acceptable. Length is counted in characters, not
// bytes.
func ValidateMessageContent(content string) string {
	if content == "" {
		return "Message content cannot be empty"
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return "Message content must be no more than 500 characters"
	}
	return ""
}

func ValidateSignUp(email, username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Invalid email address")
	}

	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "Username is required")
	} else if len(username) < 2 {
		errs.Add("username", "Username must be at least 2 characters")
	} else if len(username) > 20 {
		errs.Add("username", "Username must be no more than 20 characters")
	} else if !usernameRegex.MatchString(username) {
		errs.Add("username", "Username can only contain letters, numbers, _ and -")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	} else if len(password) < 6 {
		errs.Add("password", "Password must be at least 6 characters")
	}

	return errs
}

func ValidateSignIn(identifier, password string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(identifier) == "" {
		errs.Add("identifier", "Email or username is required")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidateVerifyCode(username, code string) ValidationErrors {
	errs := make(ValidationErrors)

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
	}

	code = strings.TrimSpace(code)
	if code == "" {
		errs.Add("code", "Verification code is required")
	} else if len(code) != 6 {
		errs.Add("code", "Verification code must be 6 digits")
	}

	return errs
}
