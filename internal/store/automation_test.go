package store

import (
	"context"
	"testing"

	"whalink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWebhookDefaults(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	hook, err := s.AddWebhook(ctx, "https://n8n.example.com/webhook/new", "New Flow")
	require.NoError(t, err)

	// New webhooks are always active and subscribe to the single default event
	assert.True(t, hook.IsActive)
	assert.Equal(t, []models.WebhookEvent{models.EventMessageUpsert}, hook.Events)
	assert.False(t, hook.CreatedAt.IsZero())

	hooks, err := s.Webhooks(ctx)
	require.NoError(t, err)
	require.Len(t, hooks, 2)
	assert.Equal(t, hook.ID, hooks[1].ID)
}

func TestDeleteWebhook(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DeleteWebhook(ctx, "wh1"))

	hooks, err := s.Webhooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, hooks)

	// Unknown id is a silent no-op
	require.NoError(t, s.DeleteWebhook(ctx, "wh1"))
}

func TestTemplateLifecycle(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	templates, err := s.Templates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "/address", templates[0].Shortcut)

	tpl, err := s.AddTemplate(ctx, "/hours", "We are open 9-18 on weekdays.")
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)

	templates, err = s.Templates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 3)

	require.NoError(t, s.DeleteTemplate(ctx, tpl.ID))
	require.NoError(t, s.DeleteTemplate(ctx, "never-existed"))

	templates, err = s.Templates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}

func TestWebhooksCopyOnRead(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	first, err := s.Webhooks(ctx)
	require.NoError(t, err)
	first[0].IsActive = false
	first[0].Name = "tampered"

	second, err := s.Webhooks(ctx)
	require.NoError(t, err)
	assert.True(t, second[0].IsActive)
	assert.Equal(t, "Order Processing (n8n)", second[0].Name)
}

func TestWebhooksCopyOnReadIsDeep(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	first, err := s.Webhooks(ctx)
	require.NoError(t, err)
	first[0].Events[0] = models.EventConnectionUpdate

	// The returned value from AddWebhook must not alias stored memory
	// either
	added, err := s.AddWebhook(ctx, "https://n8n.example.com/webhook/x", "X")
	require.NoError(t, err)
	added.Events[0] = models.EventMessageUpdate

	second, err := s.Webhooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.WebhookEvent{models.EventMessageUpsert}, second[0].Events)
	assert.Equal(t, []models.WebhookEvent{models.EventMessageUpsert}, second[1].Events)
}
