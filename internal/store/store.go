package store

import (
	"context"
	"sync"
	"time"

	"whalink/internal/constants"
	"whalink/internal/database"
	"whalink/internal/errors"
	"whalink/internal/feed"
	"whalink/internal/models"
	"whalink/internal/privacy"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// The demo tenant ships with exactly one valid credential pair. The
// password is hashed once at startup so Login exercises the normal
// comparison path.
const (
	demoEmail    = "demo@example.com"
	demoPassword = "password"
)

// Store is the single point of truth for all simulated server state.
// Every operation sleeps a configured latency before touching state and
// returns copies only, never live references. The latency happens
// outside the lock, so two unsequenced callers interleave exactly like
// the independent timers they model: last writer wins.
type Store struct {
	mu sync.RWMutex

	db     *database.Database
	source feed.Source
	logger *logrus.Logger

	// latency scales every simulated delay; 0 disables them
	latency float64

	accounts  []models.WhatsAppAccount
	chats     []models.ChatSession
	messages  map[string][]models.Message
	webhooks  []models.Webhook
	templates []models.QuickReplyTemplate
	pairings  map[string]models.QRPairing

	demoHash []byte
	now      func() time.Time
}

// New creates a store seeded with the demo tenant's data.
func New(db *database.Database, source feed.Source, logger *logrus.Logger, latency models.LatencyConfig) (*Store, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to hash demo credential")
	}

	s := &Store{
		db:       db,
		source:   source,
		logger:   logger,
		latency:  latency.Multiplier,
		messages: make(map[string][]models.Message),
		pairings: make(map[string]models.QRPairing),
		demoHash: hash,
		now:      time.Now,
	}
	s.seed()

	return s, nil
}

// simulate models network latency for one operation. It respects context
// cancellation, which is the only way a non-login operation can fail.
func (s *Store) simulate(ctx context.Context, d time.Duration) error {
	scaled := time.Duration(float64(d) * s.latency)
	if scaled <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(scaled):
		return nil
	}
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}

// Login validates the fixed demo credential pair. On success the
// canonical user record is persisted and returned; on mismatch the
// single invalid-credentials error kind surfaces.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := s.simulate(ctx, constants.LoginDelay); err != nil {
		return nil, err
	}

	if email != demoEmail || bcrypt.CompareHashAndPassword(s.demoHash, []byte(password)) != nil {
		s.logger.WithField("email", privacy.MaskEmail(email)).Warn("Login rejected")
		return nil, errors.New(errors.ErrCodeInvalidCredentials, "invalid credentials").
			WithUserMessage("Invalid credentials (try demo@example.com / password)")
	}

	user := canonicalUser()
	if err := s.db.SaveUser(ctx, &user); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseQuery, "failed to persist user record")
	}

	s.logger.WithField("userId", user.ID).Info("User logged in")
	return &user, nil
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	IsCorporate bool
	CompanyName string
	TaxID       string
}

// Register always succeeds. The new user is seeded from the canonical
// template with the plan downgraded to the entry tier, and the account
// collection resets to empty so the dashboard shows onboarding.
func (s *Store) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := s.simulate(ctx, constants.RegisterDelay); err != nil {
		return nil, err
	}

	user := canonicalUser()
	user.Name = in.Name
	user.Email = in.Email
	user.Subscription.PlanName = models.PlanStarter
	user.BillingInfo = models.BillingInfo{
		IsCorporate: in.IsCorporate,
		CompanyName: in.CompanyName,
		TaxID:       in.TaxID,
	}

	s.mu.Lock()
	s.accounts = nil
	s.mu.Unlock()

	if err := s.db.SaveUser(ctx, &user); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseQuery, "failed to persist user record")
	}

	s.logger.WithField("email", privacy.MaskEmail(in.Email)).Info("User registered")
	return &user, nil
}

// Logout clears the persisted user record.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.db.ClearUser(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseQuery, "failed to clear user record")
	}
	s.logger.Info("User logged out")
	return nil
}

// CurrentUser is the only synchronous operation: a direct read of the
// durable slot, used as the gate for route protection. A nil user with a
// nil error means nobody is logged in.
func (s *Store) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := s.db.GetUser(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseQuery, "failed to read user record")
	}
	return user, nil
}

// UpdateProfile merges the typed patch into the stored user and persists
// the result. With nobody logged in it is a silent no-op.
func (s *Store) UpdateProfile(ctx context.Context, patch models.UserPatch) error {
	if err := s.simulate(ctx, constants.ProfileUpdateDelay); err != nil {
		return err
	}

	user, err := s.db.GetUser(ctx)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseQuery, "failed to read user record")
	}
	if user == nil {
		return nil
	}

	patch.Apply(user)
	if err := s.db.SaveUser(ctx, user); err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseQuery, "failed to persist user record")
	}

	s.logger.WithField("userId", user.ID).Info("Profile updated")
	return nil
}

// SubscribeChat registers a handler for simulated inbound messages on
// the given chat and returns the cancellation handle. Subscriptions are
// independent; subscribing twice starts two timers.
func (s *Store) SubscribeChat(chatID string, handler func(models.Message)) func() {
	return s.source.Subscribe(chatID, handler)
}
