package store

import (
	"context"

	"whalink/internal/constants"
	"whalink/internal/models"
)

// Webhooks returns a snapshot copy of the webhook collection.
func (s *Store) Webhooks(ctx context.Context) ([]models.Webhook, error) {
	if err := s.simulate(ctx, constants.WebhookListDelay); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Webhook, len(s.webhooks))
	for i, w := range s.webhooks {
		out[i] = w.Clone()
	}
	return out, nil
}

// AddWebhook appends a webhook. New webhooks are always active and
// pre-subscribed to the message.upsert event only.
func (s *Store) AddWebhook(ctx context.Context, url, name string) (models.Webhook, error) {
	if err := s.simulate(ctx, constants.WebhookAddDelay); err != nil {
		return models.Webhook{}, err
	}

	hook := models.Webhook{
		ID:        newID("wh"),
		URL:       url,
		Name:      name,
		Events:    []models.WebhookEvent{models.EventMessageUpsert},
		IsActive:  true,
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	s.webhooks = append(s.webhooks, hook.Clone())
	s.mu.Unlock()

	s.logger.WithField("webhookId", hook.ID).Info("Webhook added")
	return hook, nil
}

// DeleteWebhook removes the matching webhook. Unknown ids are a silent
// no-op.
func (s *Store) DeleteWebhook(ctx context.Context, id string) error {
	if err := s.simulate(ctx, constants.WebhookDeleteDelay); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.webhooks[:0]
	for _, w := range s.webhooks {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	s.webhooks = kept
	return nil
}

// Templates returns a snapshot copy of the quick-reply collection.
func (s *Store) Templates(ctx context.Context) ([]models.QuickReplyTemplate, error) {
	if err := s.simulate(ctx, constants.TemplateListDelay); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.QuickReplyTemplate, len(s.templates))
	copy(out, s.templates)
	return out, nil
}

// AddTemplate appends a quick-reply template.
func (s *Store) AddTemplate(ctx context.Context, shortcut, content string) (models.QuickReplyTemplate, error) {
	if err := s.simulate(ctx, constants.TemplateAddDelay); err != nil {
		return models.QuickReplyTemplate{}, err
	}

	tpl := models.QuickReplyTemplate{
		ID:       newID("t"),
		Shortcut: shortcut,
		Content:  content,
	}

	s.mu.Lock()
	s.templates = append(s.templates, tpl)
	s.mu.Unlock()

	return tpl, nil
}

// DeleteTemplate removes the matching template. Unknown ids are a silent
// no-op.
func (s *Store) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.simulate(ctx, constants.TemplateDeleteDelay); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.templates[:0]
	for _, t := range s.templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.templates = kept
	return nil
}
