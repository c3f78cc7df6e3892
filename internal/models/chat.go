package models

// MessageType is the tagged variant of a message body
type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeImage    MessageType = "image"
	MessageTypeVideo    MessageType = "video"
	MessageTypeAudio    MessageType = "audio"
	MessageTypeDocument MessageType = "document"
	MessageTypeSticker  MessageType = "sticker"
	MessageTypeLocation MessageType = "location"
	MessageTypeTemplate MessageType = "template"
	MessageTypeSystem   MessageType = "system"
)

// MessageSender is exactly one of "me" or "them"
type MessageSender string

const (
	SenderMe   MessageSender = "me"
	SenderThem MessageSender = "them"
)

// DeliveryStatus is the ordered delivery progression of an outbound message
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryRead      DeliveryStatus = "read"
)

// ReplyRef is a denormalized copy of the quoted message
type ReplyRef struct {
	ID     string        `json:"id"`
	Text   string        `json:"text"`
	Sender MessageSender `json:"sender"`
	Type   MessageType   `json:"type"`
}

// MessageButton is an interactive button attached to a template message
type MessageButton struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Type string `json:"type"` // "reply" or "url"
}

// Location is an optional geolocation payload
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Name    string  `json:"name,omitempty"`
	Address string  `json:"address,omitempty"`
}

// Message belongs to exactly one chat session. Messages are append-only:
// they are created by a local send or by the inbound feed, never mutated.
type Message struct {
	ID        string         `json:"id"`
	ChatID    string         `json:"chatId,omitempty"`
	Text      string         `json:"text"`
	Type      MessageType    `json:"type"`
	Timestamp string         `json:"timestamp"`
	Sender    MessageSender  `json:"sender"`
	Status    DeliveryStatus `json:"status"`

	MediaURL string `json:"mediaUrl,omitempty"`
	FileName string `json:"fileName,omitempty"`
	FileSize string `json:"fileSize,omitempty"`
	Duration string `json:"duration,omitempty"`
	MimeType string `json:"mimeType,omitempty"`

	ReplyTo  *ReplyRef       `json:"replyTo,omitempty"`
	Buttons  []MessageButton `json:"buttons,omitempty"`
	Location *Location       `json:"location,omitempty"`
}

// Clone returns a deep copy of the message. The nested reply, button,
// and location state is detached so the copy shares no memory with the
// receiver.
func (m Message) Clone() Message {
	out := m
	if m.ReplyTo != nil {
		reply := *m.ReplyTo
		out.ReplyTo = &reply
	}
	if m.Buttons != nil {
		out.Buttons = append([]MessageButton(nil), m.Buttons...)
	}
	if m.Location != nil {
		loc := *m.Location
		out.Location = &loc
	}
	return out
}

// ChatSession is a conversation scoped to one WhatsApp account
type ChatSession struct {
	ID                string `json:"id"`
	WhatsAppAccountID string `json:"whatsappAccountId"`
	ContactName       string `json:"contactName"`
	ContactNumber     string `json:"contactNumber"`
	LastMessage       string `json:"lastMessage"`
	LastMessageTime   string `json:"lastMessageTime"`
	UnreadCount       int    `json:"unreadCount"`
	AvatarURL         string `json:"avatarUrl"`
	IsGroup           bool   `json:"isGroup"`
	Presence          string `json:"status,omitempty"` // "online", "typing...", "recording audio..." or empty
}
