package privacy

import "strings"

// MaskPhoneNumber masks a phone number showing only the last 4 digits.
// Example: "+1 555 0123 4567" -> "+**********4567"
func MaskPhoneNumber(phone string) string {
	if phone == "" {
		return ""
	}

	prefix := ""
	digits := phone
	if strings.HasPrefix(phone, "+") {
		prefix = "+"
		digits = phone[1:]
	}

	digits = strings.ReplaceAll(digits, " ", "")
	if len(digits) <= 4 {
		return prefix + strings.Repeat("*", len(digits))
	}
	return prefix + strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

// MaskEmail masks the local part of an email address.
// Example: "demo@example.com" -> "d***@example.com"
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	return email[:1] + "***" + email[at:]
}
