package store

import (
	"time"

	"whalink/internal/models"
)

// canonicalUser is the demo tenant template. Login returns it verbatim;
// Register derives the new user from it.
func canonicalUser() models.User {
	return models.User{
		ID:    "u1",
		Email: "demo@example.com",
		Name:  "Demo Admin",
		Subscription: models.Subscription{
			PlanName:        models.PlanGrowth,
			Status:          models.SubscriptionActive,
			NextBillingDate: "2024-12-01",
			Price:           "$29.00",
			Features: []string{
				"3 WhatsApp Accounts",
				"Unlimited Messages",
				"n8n Integrations",
				"Standard Support",
			},
		},
		BillingInfo: models.BillingInfo{
			IsCorporate: true,
			CompanyName: "Whalink Tech Ltd.",
			TaxID:       "TR1234567890",
			TaxOffice:   "Kadikoy",
			Address:     "Teknopark Istanbul",
			City:        "Istanbul",
			Country:     "Turkey",
		},
	}
}

// seed loads the demo tenant's collections. Everything here lives in
// process memory and resets on restart.
func (s *Store) seed() {
	now := s.now()

	s.accounts = []models.WhatsAppAccount{
		{
			ID:          "wa1",
			PhoneNumber: "+1 555 0123 4567",
			Name:        "Whalink Support",
			Status:      models.AccountStatusConnected,
			LastActive:  now,
			AvatarURL:   "https://picsum.photos/200",
		},
		{
			ID:          "wa2",
			PhoneNumber: "+44 20 7946 0123",
			Name:        "Sales Bot UK",
			Status:      models.AccountStatusDisconnected,
			LastActive:  now.Add(-time.Hour),
			AvatarURL:   "https://picsum.photos/201",
		},
	}

	s.chats = []models.ChatSession{
		{
			ID: "c1", WhatsAppAccountID: "wa1",
			ContactName: "Alice Smith", ContactNumber: "+123456789",
			LastMessage: "Thanks for the invoice!", LastMessageTime: "10:30 AM",
			UnreadCount: 0, AvatarURL: "https://picsum.photos/100",
			IsGroup: false, Presence: "online",
		},
		{
			ID: "c2", WhatsAppAccountID: "wa2",
			ContactName: "Bob Jones", ContactNumber: "+987654321",
			LastMessage: "Voice message (0:12)", LastMessageTime: "09:15 AM",
			UnreadCount: 2, AvatarURL: "https://picsum.photos/101",
			IsGroup: false,
		},
		{
			ID: "c3", WhatsAppAccountID: "wa1",
			ContactName: "Tech Team Group", ContactNumber: "+1122334455",
			LastMessage: "Meeting at 3PM", LastMessageTime: "Yesterday",
			UnreadCount: 5, AvatarURL: "https://picsum.photos/102",
			IsGroup: true, Presence: "typing...",
		},
	}

	s.messages = map[string][]models.Message{
		"c1": {
			{
				ID: "m1", Text: "Hi Alice, how can we help you today?",
				Timestamp: "10:00 AM", Sender: models.SenderMe,
				Status: models.DeliveryRead, Type: models.MessageTypeText,
			},
			{
				ID: "m2", Text: "I need a copy of my last invoice please.",
				Timestamp: "10:01 AM", Sender: models.SenderThem,
				Status: models.DeliveryRead, Type: models.MessageTypeText,
			},
			{
				ID: "m3", Text: "Invoice_OCT_2023.pdf",
				Timestamp: "10:02 AM", Sender: models.SenderMe,
				Status: models.DeliveryRead, Type: models.MessageTypeDocument,
				FileName: "Invoice_OCT_2023.pdf", FileSize: "1.2 MB",
				ReplyTo: &models.ReplyRef{
					ID:     "m2",
					Text:   "I need a copy of my last invoice please.",
					Sender: models.SenderThem,
					Type:   models.MessageTypeText,
				},
			},
			{
				ID: "m4", Text: "Here is the invoice you requested.",
				Timestamp: "10:02 AM", Sender: models.SenderMe,
				Status: models.DeliveryRead, Type: models.MessageTypeText,
			},
			{
				ID: "m5", Text: "Thanks for the invoice!",
				Timestamp: "10:05 AM", Sender: models.SenderThem,
				Status: models.DeliveryRead, Type: models.MessageTypeText,
			},
			{
				ID: "m6", Text: "Please rate our service:",
				Timestamp: "10:06 AM", Sender: models.SenderMe,
				Status: models.DeliveryDelivered, Type: models.MessageTypeTemplate,
				Buttons: []models.MessageButton{
					{ID: "btn1", Text: "Excellent ⭐️", Type: "reply"},
					{ID: "btn2", Text: "Good 👍", Type: "reply"},
					{ID: "btn3", Text: "Poor 👎", Type: "reply"},
				},
			},
		},
		"c2": {
			{
				ID: "m2_1", Text: "Check out this product.",
				Timestamp: "09:00 AM", Sender: models.SenderMe,
				Status: models.DeliveryRead, Type: models.MessageTypeImage,
				MediaURL: "https://picsum.photos/400/300",
			},
			{
				ID: "m2_2", Text: "",
				Timestamp: "09:15 AM", Sender: models.SenderThem,
				Status: models.DeliveryRead, Type: models.MessageTypeAudio,
				Duration: "0:12",
			},
		},
	}

	s.webhooks = []models.Webhook{
		{
			ID:        "wh1",
			Name:      "Order Processing (n8n)",
			URL:       "https://n8n.mycompany.com/webhook/orders",
			Events:    []models.WebhookEvent{models.EventMessageUpsert},
			IsActive:  true,
			CreatedAt: time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	s.templates = []models.QuickReplyTemplate{
		{
			ID:       "t1",
			Shortcut: "/address",
			Content:  "Our office is located at: Teknopark Istanbul, Sanayi Mah. No:1, Istanbul.",
		},
		{
			ID:       "t2",
			Shortcut: "/bank",
			Content:  "Bank: Ziraat Bankasi\nIBAN: TR00 0000 0000 0000 0000 00",
		},
	}
}
