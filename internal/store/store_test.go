package store

import (
	"context"
	"path/filepath"
	"testing"

	"whalink/internal/database"
	"whalink/internal/errors"
	"whalink/internal/models"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	subscribed []string
	canceled   int
}

func (s *stubSource) Subscribe(chatID string, handler func(models.Message)) func() {
	s.subscribed = append(s.subscribed, chatID)
	return func() { s.canceled++ }
}

func setupTestStore(t *testing.T) (*Store, *database.Database) {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "whalink.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	s, err := New(db, &stubSource{}, logger, models.LatencyConfig{Multiplier: 0})
	require.NoError(t, err)
	return s, db
}

func TestLoginValidCredentials(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	user, err := s.Login(ctx, "demo@example.com", "password")
	require.NoError(t, err)
	require.NotNil(t, user)

	want := canonicalUser()
	assert.Equal(t, want, *user)

	// Login persists the record into the durable slot
	stored, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, want, *stored)
}

func TestLoginInvalidCredentials(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "demo@example.com", "nope"},
		{"wrong email", "other@example.com", "password"},
		{"both wrong", "other@example.com", "nope"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := s.Login(ctx, tt.email, tt.password)
			assert.Nil(t, user)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidCredentials))
		})
	}

	// A failed login must not persist anything
	stored, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestRegisterAlwaysSucceeds(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	user, err := s.Register(ctx, RegisterInput{
		Name:        "New Person",
		Email:       "new@corp.example",
		Password:    "whatever",
		IsCorporate: true,
		CompanyName: "Corp Inc",
		TaxID:       "TX42",
	})
	require.NoError(t, err)
	require.NotNil(t, user)

	// Plan is downgraded to the entry tier regardless of input
	assert.Equal(t, models.PlanStarter, user.Subscription.PlanName)
	assert.Equal(t, "New Person", user.Name)
	assert.Equal(t, "new@corp.example", user.Email)
	assert.True(t, user.BillingInfo.IsCorporate)
	assert.Equal(t, "Corp Inc", user.BillingInfo.CompanyName)
	assert.Equal(t, "TX42", user.BillingInfo.TaxID)
	assert.Empty(t, user.BillingInfo.City)

	// Registration resets accounts to the onboarding state
	accounts, err := s.Accounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestLogoutClearsUser(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "demo@example.com", "password")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))

	user, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	// Logging out twice is harmless
	require.NoError(t, s.Logout(ctx))
}

func TestUpdateProfilePatchSemantics(t *testing.T) {
	s, _ := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Login(ctx, "demo@example.com", "password")
	require.NoError(t, err)

	name := "Renamed Admin"
	city := "Ankara"
	err = s.UpdateProfile(ctx, models.UserPatch{
		Name: &name,
		BillingInfo: &models.BillingInfoPatch{
			City: &city,
		},
	})
	require.NoError(t, err)

	user, err := s.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "Renamed Admin", user.Name)
	// Billing sub-record merges field by field; untouched fields survive
	assert.Equal(t, "Ankara", user.BillingInfo.City)
	assert.Equal(t, "Whalink Tech Ltd.", user.BillingInfo.CompanyName)
	assert.Equal(t, "Turkey", user.BillingInfo.Country)
	// Email was not in the patch
	assert.Equal(t, "demo@example.com", user.Email)
}

func TestUpdateProfileNoUserIsNoOp(t *testing.T) {
	s, _ := setupTestStore(t)
	name := "Ghost"
	err := s.UpdateProfile(context.Background(), models.UserPatch{Name: &name})
	require.NoError(t, err)
}

func TestAuthLogsMaskEmail(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()

	db, err := database.New(filepath.Join(t.TempDir(), "whalink.db"))
	require.NoError(t, err)
	defer db.Close()

	s, err := New(db, &stubSource{}, logger, models.LatencyConfig{Multiplier: 0})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Login(ctx, "demo@example.com", "wrong")
	require.Error(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "d***@example.com", entry.Data["email"])

	hook.Reset()
	_, err = s.Register(ctx, RegisterInput{Name: "N", Email: "new@example.com", Password: "p"})
	require.NoError(t, err)

	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "n***@example.com", entry.Data["email"])
}

func TestSubscribeChatDelegatesToSource(t *testing.T) {
	src := &stubSource{}
	db, err := database.New(filepath.Join(t.TempDir(), "whalink.db"))
	require.NoError(t, err)
	defer db.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	s, err := New(db, src, logger, models.LatencyConfig{Multiplier: 0})
	require.NoError(t, err)

	cancel := s.SubscribeChat("c1", func(models.Message) {})
	assert.Equal(t, []string{"c1"}, src.subscribed)

	cancel()
	assert.Equal(t, 1, src.canceled)
}

func TestOperationsRespectContextCancellation(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "whalink.db"))
	require.NoError(t, err)
	defer db.Close()

	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)

	// Real latency so the delay point is actually reachable
	s, err := New(db, &stubSource{}, logger, models.LatencyConfig{Multiplier: 1})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Accounts(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
