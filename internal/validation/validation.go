package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"whalink/internal/constants"
	"whalink/internal/errors"
)

// ValidatePhoneNumber validates phone number format and length
func ValidatePhoneNumber(phone string) error {
	if phone == "" {
		return errors.New(errors.ErrCodeInvalidInput, "phone number cannot be empty")
	}

	cleaned := strings.TrimPrefix(phone, "+")
	cleaned = strings.ReplaceAll(cleaned, " ", "")

	if len(cleaned) < constants.MinPhoneNumberLength {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("phone number must be at least %d digits", constants.MinPhoneNumberLength))
	}

	if len(cleaned) > constants.MaxPhoneNumberLength {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("phone number too long (max %d digits)", constants.MaxPhoneNumberLength))
	}

	for _, char := range cleaned {
		if !unicode.IsDigit(char) {
			return errors.New(errors.ErrCodeInvalidInput, "phone number must contain only digits")
		}
	}

	return nil
}

// ValidateEmail performs a light structural check on an email address
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New(errors.ErrCodeInvalidInput, "email cannot be empty")
	}

	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.New(errors.ErrCodeInvalidInput, "email is not valid")
	}
	if strings.ContainsAny(email, " \t\n\r") {
		return errors.New(errors.ErrCodeInvalidInput, "email must not contain whitespace")
	}
	if !strings.Contains(email[at+1:], ".") {
		return errors.New(errors.ErrCodeInvalidInput, "email domain is not valid")
	}

	return nil
}

// ValidateDisplayName validates a friendly account or webhook name
func ValidateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "name cannot be empty")
	}

	if len(name) > constants.MaxDisplayNameLength {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("name too long (max %d characters)", constants.MaxDisplayNameLength))
	}

	for _, char := range name {
		if char == '\x00' || char == '\n' || char == '\r' {
			return errors.New(errors.ErrCodeInvalidInput, "name contains invalid characters")
		}
	}

	return nil
}

// ValidateWebhookURL validates a webhook target URL
func ValidateWebhookURL(raw string) error {
	if raw == "" {
		return errors.New(errors.ErrCodeInvalidInput, "webhook URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "webhook URL is not valid")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrCodeInvalidInput, "webhook URL must use http or https")
	}
	if u.Host == "" {
		return errors.New(errors.ErrCodeInvalidInput, "webhook URL must have a host")
	}

	return nil
}

// ValidateShortcut validates a quick-reply shortcut. Shortcuts follow the
// slash convention used by the messaging UI, e.g. "/address".
func ValidateShortcut(shortcut string) error {
	if shortcut == "" {
		return errors.New(errors.ErrCodeInvalidInput, "shortcut cannot be empty")
	}

	if !strings.HasPrefix(shortcut, "/") {
		return errors.New(errors.ErrCodeInvalidInput, "shortcut must start with a slash")
	}

	if len(shortcut) > constants.MaxShortcutLength {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("shortcut too long (max %d characters)", constants.MaxShortcutLength))
	}

	for _, char := range shortcut[1:] {
		if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' && char != '-' {
			return errors.New(errors.ErrCodeInvalidInput,
				"shortcut must contain only letters, numbers, underscores, and dashes")
		}
	}

	return nil
}

// ValidateTemplateContent validates a quick-reply message body
func ValidateTemplateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "template content cannot be empty")
	}

	if len(content) > constants.MaxTemplateLength {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("template content too long (max %d characters)", constants.MaxTemplateLength))
	}

	return nil
}
