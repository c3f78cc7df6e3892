package store

import (
	"context"
	"encoding/base64"
	"fmt"

	"whalink/internal/constants"
	"whalink/internal/errors"
	"whalink/internal/models"
	"whalink/internal/privacy"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	qrcode "github.com/skip2/go-qrcode"
)

// Accounts returns a snapshot copy of the account collection.
func (s *Store) Accounts(ctx context.Context) ([]models.WhatsAppAccount, error) {
	if err := s.simulate(ctx, constants.AccountListDelay); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.WhatsAppAccount, len(s.accounts))
	copy(out, s.accounts)
	return out, nil
}

// AddAccount links a new device. The pairing handshake passes through
// CONNECTING before the account settles into CONNECTED; by the time the
// call returns the account is connected. A caller that abandons the
// wait mid-handshake leaves the account in CONNECTING; ReconnectAccount
// recovers it.
func (s *Store) AddAccount(ctx context.Context, phoneNumber, name string) (models.WhatsAppAccount, error) {
	if err := s.simulate(ctx, constants.AccountPairDelay); err != nil {
		return models.WhatsAppAccount{}, err
	}

	account := models.WhatsAppAccount{
		ID:          newID("wa"),
		PhoneNumber: phoneNumber,
		Name:        name,
		Status:      models.AccountStatusConnecting,
		LastActive:  s.now(),
		AvatarURL:   fmt.Sprintf("https://picsum.photos/200?random=%s", uuid.NewString()[:8]),
	}

	s.mu.Lock()
	s.accounts = append(s.accounts, account)
	s.mu.Unlock()

	if err := s.simulate(ctx, constants.ConnectingSettle); err != nil {
		return models.WhatsAppAccount{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == account.ID {
			s.accounts[i].Status = models.AccountStatusConnected
			s.accounts[i].LastActive = s.now()
			account = s.accounts[i]
			break
		}
	}

	s.logger.WithFields(logrus.Fields{
		"accountId": account.ID,
		"phone":     privacy.MaskPhoneNumber(phoneNumber),
	}).Info("Account paired")

	return account, nil
}

// DeleteAccount removes the matching account. Unknown ids are a silent
// no-op.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	if err := s.simulate(ctx, constants.AccountDeleteDelay); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.accounts[:0]
	for _, a := range s.accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.accounts = kept
	delete(s.pairings, id)
	return nil
}

// DisconnectAccount flips the matching account to DISCONNECTED. Unknown
// ids are a silent no-op.
func (s *Store) DisconnectAccount(ctx context.Context, id string) error {
	if err := s.simulate(ctx, constants.DisconnectDelay); err != nil {
		return err
	}
	s.setStatus(id, models.AccountStatusDisconnected)
	return nil
}

// ReconnectAccount flips the matching account back to CONNECTED. Unknown
// ids are a silent no-op.
func (s *Store) ReconnectAccount(ctx context.Context, id string) error {
	if err := s.simulate(ctx, constants.ReconnectDelay); err != nil {
		return err
	}
	s.setStatus(id, models.AccountStatusConnected)
	return nil
}

func (s *Store) setStatus(id string, status models.AccountStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].ID == id {
			s.accounts[i].Status = status
			s.accounts[i].LastActive = s.now()
			return
		}
	}
}

// GeneratePairingCode returns the demo pairing code. The code is not
// correlated with any account state.
func (s *Store) GeneratePairingCode(ctx context.Context, phoneNumber string) (string, error) {
	if err := s.simulate(ctx, constants.PairingCodeDelay); err != nil {
		return "", err
	}
	return constants.DemoPairingCode, nil
}

// BeginQRPairing creates an account in QR_READY together with a QR code
// the device would scan to link.
func (s *Store) BeginQRPairing(ctx context.Context, phoneNumber, name string) (models.WhatsAppAccount, models.QRPairing, error) {
	if err := s.simulate(ctx, constants.PairingCodeDelay); err != nil {
		return models.WhatsAppAccount{}, models.QRPairing{}, err
	}

	account := models.WhatsAppAccount{
		ID:          newID("wa"),
		PhoneNumber: phoneNumber,
		Name:        name,
		Status:      models.AccountStatusQRReady,
		LastActive:  s.now(),
		AvatarURL:   fmt.Sprintf("https://picsum.photos/200?random=%s", uuid.NewString()[:8]),
	}

	png, err := qrcode.Encode("whalink://pair/"+uuid.NewString(), qrcode.Medium, constants.QRCodeSizePx)
	if err != nil {
		return models.WhatsAppAccount{}, models.QRPairing{}, errors.Wrap(err, errors.ErrCodeInternalError, "failed to render pairing QR code")
	}

	pairing := models.QRPairing{
		AccountID: account.ID,
		QRCodePNG: base64.StdEncoding.EncodeToString(png),
		ExpiresAt: s.now().Add(constants.QRPairingTTL),
	}

	s.mu.Lock()
	s.accounts = append(s.accounts, account)
	s.pairings[account.ID] = pairing
	s.mu.Unlock()

	s.logger.WithField("accountId", account.ID).Info("QR pairing started")
	return account, pairing, nil
}

// CompletePairing finishes a QR link: the account moves through
// CONNECTING and settles into CONNECTED. Unknown or non-pending ids fail
// with NOT_FOUND. The pairing is consumed as soon as the handshake
// starts; abandoning the wait leaves the account in CONNECTING, which
// ReconnectAccount recovers.
func (s *Store) CompletePairing(ctx context.Context, accountID string) (models.WhatsAppAccount, error) {
	s.mu.Lock()
	if _, ok := s.pairings[accountID]; !ok {
		s.mu.Unlock()
		return models.WhatsAppAccount{}, errors.New(errors.ErrCodeNotFound, "no pending pairing for account").
			WithContext("accountId", accountID)
	}
	delete(s.pairings, accountID)
	s.mu.Unlock()

	s.setStatus(accountID, models.AccountStatusConnecting)

	if err := s.simulate(ctx, constants.ConnectingSettle); err != nil {
		return models.WhatsAppAccount{}, err
	}

	s.setStatus(accountID, models.AccountStatusConnected)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.ID == accountID {
			s.logger.WithField("accountId", accountID).Info("QR pairing completed")
			return a, nil
		}
	}
	return models.WhatsAppAccount{}, errors.New(errors.ErrCodeNotFound, "account removed during pairing")
}
