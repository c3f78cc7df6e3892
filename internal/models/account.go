package models

import "time"

// AccountStatus represents the current state of a linked WhatsApp account
type AccountStatus string

const (
	AccountStatusConnected    AccountStatus = "CONNECTED"
	AccountStatusDisconnected AccountStatus = "DISCONNECTED"
	AccountStatusConnecting   AccountStatus = "CONNECTING"
	AccountStatusQRReady      AccountStatus = "QR_READY"
)

// IsValid reports whether the status is one of the declared states.
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusConnected, AccountStatusDisconnected,
		AccountStatusConnecting, AccountStatusQRReady:
		return true
	}
	return false
}

// WhatsAppAccount represents one linked device session
type WhatsAppAccount struct {
	ID          string        `json:"id"`
	PhoneNumber string        `json:"phoneNumber"`
	Name        string        `json:"name"`
	Status      AccountStatus `json:"status"`
	LastActive  time.Time     `json:"lastActive"`
	AvatarURL   string        `json:"avatarUrl,omitempty"`
}

// QRPairing holds the state of an in-progress QR link for an account.
// The PNG is base64-encoded so it can travel inside a JSON response.
type QRPairing struct {
	AccountID string    `json:"accountId"`
	QRCodePNG string    `json:"qrCodePng"`
	ExpiresAt time.Time `json:"expiresAt"`
}
