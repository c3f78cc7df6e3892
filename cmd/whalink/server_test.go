package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"whalink/internal/database"
	"whalink/internal/models"
	"whalink/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopSource struct{}

func (noopSource) Subscribe(string, func(models.Message)) func() { return func() {} }

func setupTestServer(t *testing.T) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	db, err := database.New(filepath.Join(t.TempDir(), "whalink.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := store.New(db, noopSource{}, logger, models.LatencyConfig{Multiplier: 0})
	require.NoError(t, err)

	cfg := &models.Config{}
	cfg.Server.Port = 0
	return NewServer(cfg, st, logger)
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthEndpoint(t *testing.T) {
	s := setupTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Contains(t, body, "uptime_seconds")
	assert.Contains(t, body, "counters")
}

func TestLoginEndpoint(t *testing.T) {
	s := setupTestServer(t)

	t.Run("valid credentials", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email":    "demo@example.com",
			"password": "password",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var user models.User
		decodeBody(t, rec, &user)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, models.PlanGrowth, user.Subscription.PlanName)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email":    "demo@example.com",
			"password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]string
		decodeBody(t, rec, &body)
		assert.Equal(t, "INVALID_CREDENTIALS", body["code"])
		assert.Contains(t, body["error"], "demo@example.com")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString("{broken"))
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthSessionFlow(t *testing.T) {
	s := setupTestServer(t)

	// No session yet
	rec := doJSON(t, s, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "demo@example.com", "password": "password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var user models.User
	decodeBody(t, rec, &user)
	assert.Equal(t, "demo@example.com", user.Email)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterEndpoint(t *testing.T) {
	s := setupTestServer(t)

	t.Run("creates starter user", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
			"name":        "New User",
			"email":       "new@example.com",
			"password":    "whatever",
			"isCorporate": true,
			"companyName": "Acme Ltd.",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var user models.User
		decodeBody(t, rec, &user)
		assert.Equal(t, models.PlanStarter, user.Subscription.PlanName)
		assert.Equal(t, "New User", user.Name)
		assert.Equal(t, "Acme Ltd.", user.BillingInfo.CompanyName)

		// Onboarding starts with zero linked accounts
		rec = doJSON(t, s, http.MethodGet, "/api/v1/accounts", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var accounts []models.WhatsAppAccount
		decodeBody(t, rec, &accounts)
		assert.Empty(t, accounts)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"name": "X", "email": "not-an-email", "password": "p",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateProfileEndpoint(t *testing.T) {
	s := setupTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "demo@example.com", "password": "password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodPatch, "/api/v1/profile", map[string]interface{}{
		"name":        "Renamed Admin",
		"billingInfo": map[string]string{"city": "Ankara"},
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var user models.User
	decodeBody(t, rec, &user)
	assert.Equal(t, "Renamed Admin", user.Name)
	assert.Equal(t, "Ankara", user.BillingInfo.City)
	assert.Equal(t, "Whalink Tech Ltd.", user.BillingInfo.CompanyName)
}

func TestAccountEndpoints(t *testing.T) {
	s := setupTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/accounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var accounts []models.WhatsAppAccount
	decodeBody(t, rec, &accounts)
	require.Len(t, accounts, 2)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/accounts", map[string]string{
		"phoneNumber": "+1 555 000 0000",
		"name":        "Third Line",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.WhatsAppAccount
	decodeBody(t, rec, &created)
	assert.Equal(t, models.AccountStatusConnected, created.Status)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/accounts", map[string]string{
		"phoneNumber": "junk", "name": "Bad",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/accounts/wa1/disconnect", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/accounts/wa1/reconnect", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/accounts/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/accounts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &accounts)
	assert.Len(t, accounts, 2)
}

func TestPairingEndpoints(t *testing.T) {
	s := setupTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/pairing/code", map[string]string{
		"phoneNumber": "+1 555 000 0000",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var code map[string]string
	decodeBody(t, rec, &code)
	assert.Equal(t, "ABC-123-XYZ", code["code"])

	// The QR path applies the same name validation as direct pairing
	rec = doJSON(t, s, http.MethodPost, "/api/v1/pairing/qr", map[string]string{
		"phoneNumber": "+1 555 111 2222",
		"name":        "bad\nname",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/pairing/qr", map[string]string{
		"phoneNumber": "+1 555 111 2222",
		"name":        "QR Line",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var qr struct {
		Account models.WhatsAppAccount `json:"account"`
		Pairing models.QRPairing       `json:"pairing"`
	}
	decodeBody(t, rec, &qr)
	assert.Equal(t, models.AccountStatusQRReady, qr.Account.Status)
	assert.NotEmpty(t, qr.Pairing.QRCodePNG)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/accounts/"+qr.Account.ID+"/pair", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var paired models.WhatsAppAccount
	decodeBody(t, rec, &paired)
	assert.Equal(t, models.AccountStatusConnected, paired.Status)

	// Second completion finds no pending pairing
	rec = doJSON(t, s, http.MethodPost, "/api/v1/accounts/"+qr.Account.ID+"/pair", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatEndpoints(t *testing.T) {
	s := setupTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/chats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var chats []models.ChatSession
	decodeBody(t, rec, &chats)
	assert.Len(t, chats, 3)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/chats?accountId=wa2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &chats)
	require.Len(t, chats, 1)
	assert.Equal(t, "c2", chats[0].ID)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/chats/c1/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var messages []models.Message
	decodeBody(t, rec, &messages)
	assert.Len(t, messages, 6)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/chats/c1/messages", map[string]string{
		"text": "Sure, sending it over now.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var sent models.Message
	decodeBody(t, rec, &sent)
	assert.Equal(t, models.SenderMe, sent.Sender)
	assert.Equal(t, models.DeliveryPending, sent.Status)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/chats/unknown/messages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &messages)
	assert.Empty(t, messages)
}

func TestWebhookEndpoints(t *testing.T) {
	s := setupTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/webhooks", map[string]string{
		"url":  "https://n8n.example.com/webhook/leads",
		"name": "Lead Capture",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var hook models.Webhook
	decodeBody(t, rec, &hook)
	assert.True(t, hook.IsActive)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/webhooks", map[string]string{
		"url": "not a url", "name": "Broken",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/webhooks/"+hook.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/webhooks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var hooks []models.Webhook
	decodeBody(t, rec, &hooks)
	assert.Len(t, hooks, 1)
}

func TestTemplateEndpoints(t *testing.T) {
	s := setupTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/templates", map[string]string{
		"shortcut": "/hours",
		"content":  "We are open 9-18 on weekdays.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var tpl models.QuickReplyTemplate
	decodeBody(t, rec, &tpl)
	assert.Equal(t, "/hours", tpl.Shortcut)

	rec = doJSON(t, s, http.MethodPost, "/api/v1/templates", map[string]string{
		"shortcut": "no-slash", "content": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/templates/"+tpl.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestBlogEndpoints(t *testing.T) {
	s := setupTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/blog", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []models.BlogPost
	decodeBody(t, rec, &posts)
	assert.Len(t, posts, 3)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/blog/"+posts[0].Slug, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var post models.BlogPost
	decodeBody(t, rec, &post)
	assert.Equal(t, posts[0].Slug, post.Slug)

	rec = doJSON(t, s, http.MethodGet, "/api/v1/blog/nonexistent-slug", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
