package constants

import "time"

// Simulated operation latencies. These mirror the delays the real backend
// would exhibit for each call class and are scaled by the configured
// latency multiplier.
const (
	LoginDelay          = 800 * time.Millisecond
	RegisterDelay       = 1200 * time.Millisecond
	ProfileUpdateDelay  = 600 * time.Millisecond
	AccountListDelay    = 500 * time.Millisecond
	AccountPairDelay    = 1500 * time.Millisecond
	AccountDeleteDelay  = 500 * time.Millisecond
	DisconnectDelay     = 500 * time.Millisecond
	ReconnectDelay      = 1000 * time.Millisecond
	PairingCodeDelay    = 1500 * time.Millisecond
	ChatListDelay       = 300 * time.Millisecond
	MessageListDelay    = 300 * time.Millisecond
	WebhookListDelay    = 400 * time.Millisecond
	WebhookAddDelay     = 600 * time.Millisecond
	WebhookDeleteDelay  = 400 * time.Millisecond
	TemplateListDelay   = 300 * time.Millisecond
	TemplateAddDelay    = 400 * time.Millisecond
	TemplateDeleteDelay = 300 * time.Millisecond
	BlogDelay           = 300 * time.Millisecond
)

// Inbound feed defaults: every tick the simulated feed has a fixed chance
// of delivering one message.
const (
	DefaultFeedIntervalSec = 5
	DefaultFeedChance      = 0.2
)

// Demo pairing code returned for manual (non-QR) pairing
const DemoPairingCode = "ABC-123-XYZ"

// QR pairing
const (
	QRCodeSizePx     = 256
	QRPairingTTL     = 2 * time.Minute
	ConnectingSettle = 500 * time.Millisecond
)

// Server defaults
const (
	DefaultServerPort          = 8082
	DefaultServerReadTimeout   = 15
	DefaultServerWriteTimeout  = 15
	DefaultServerIdleTimeout   = 60
	DefaultGracefulShutdownSec = 30
	ServerErrorChannelSize     = 1
)

// Validation limits
const (
	MinPhoneNumberLength = 7
	MaxPhoneNumberLength = 20
	MaxDisplayNameLength = 100
	MaxShortcutLength    = 32
	MaxTemplateLength    = 4096
	MaxWebhookNameLength = 100
)
