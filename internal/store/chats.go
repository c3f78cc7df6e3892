package store

import (
	"context"

	"whalink/internal/constants"
	"whalink/internal/models"
)

// Chats returns the chat sessions for one account, or every session when
// accountID is empty. Account references are not validated against the
// account collection; a session may point at a deleted account.
func (s *Store) Chats(ctx context.Context, accountID string) ([]models.ChatSession, error) {
	if err := s.simulate(ctx, constants.ChatListDelay); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ChatSession, 0, len(s.chats))
	for _, c := range s.chats {
		if accountID == "" || c.WhatsAppAccountID == accountID {
			out = append(out, c)
		}
	}
	return out, nil
}

// Messages returns the message list registered for the chat, or an empty
// slice when none is registered. Each message is deep-copied; mutating
// the result, including nested replies and buttons, leaves the store
// untouched.
func (s *Store) Messages(ctx context.Context, chatID string) ([]models.Message, error) {
	if err := s.simulate(ctx, constants.MessageListDelay); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[chatID]
	out := make([]models.Message, len(msgs))
	for i, m := range msgs {
		out[i] = m.Clone()
	}
	return out, nil
}

// SendMessage appends an optimistic outbound message: generated id,
// sender "me", delivery pending. The chat id is not validated; sending
// into an unknown chat simply starts its message list.
func (s *Store) SendMessage(ctx context.Context, chatID, text string, replyTo *models.ReplyRef) (models.Message, error) {
	if err := s.simulate(ctx, constants.MessageListDelay); err != nil {
		return models.Message{}, err
	}

	msg := models.Message{
		ID:        newID("m"),
		ChatID:    chatID,
		Text:      text,
		Type:      models.MessageTypeText,
		Timestamp: s.now().Format("3:04 PM"),
		Sender:    models.SenderMe,
		Status:    models.DeliveryPending,
		ReplyTo:   replyTo,
	}
	// Detach the quoted reply from the caller before storing
	msg = msg.Clone()

	s.mu.Lock()
	s.messages[chatID] = append(s.messages[chatID], msg.Clone())
	s.mu.Unlock()

	return msg, nil
}
