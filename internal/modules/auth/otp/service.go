// Package otp implements the OTP-based password-reset flow: request, verify,
// reset, and the periodic sweep of abandoned requests.
package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/subkart/core/internal/pkg/kv"
	"github.com/subkart/core/internal/pkg/rejection"
)

const (
	keyPrefix = "subkart:otp:"

	// TTL is the validity window of a code.
	TTL = 10 * time.Minute

	// SweepInterval bounds how long an expired record can linger. Store
	// entries are kept for TTL+SweepInterval so a just-expired record still
	// answers EXPIRED instead of UNKNOWN_REQUEST.
	SweepInterval = time.Hour
)

// GenerateCode draws a uniform 6-digit code in [100000, 999999].
func GenerateCode() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return 0, err
	}
	return 100000 + int(n.Int64()), nil
}

// Service owns OTP records and performs the terminal password mutation.
type Service struct {
	store  kv.Store
	mailer Mailer
	users  UserStore
	logger *zap.Logger

	genCode func() (int, error)
	now     func() time.Time

	// per-record locks: verify-then-mark and check-then-consume must not
	// interleave for the same otpID on a multi-threaded runtime. Entries are
	// refcounted and exist only while a call holds or waits for them, so
	// probing with bogus identifiers cannot grow the map.
	mu    sync.Mutex
	locks map[string]*recordLock
}

type recordLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(store kv.Store, mailer Mailer, users UserStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		mailer:  mailer,
		users:   users,
		logger:  logger.Named("OTPService"),
		genCode: GenerateCode,
		now:     time.Now,
		locks:   make(map[string]*recordLock),
	}
}

// acquire takes the per-record lock, creating it on first use.
func (s *Service) acquire(otpID string) *recordLock {
	s.mu.Lock()
	l, ok := s.locks[otpID]
	if !ok {
		l = &recordLock{}
		s.locks[otpID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return l
}

// release unlocks and removes the entry once the last waiter is gone. A
// blocked waiter keeps the entry alive, so two goroutines can never hold
// distinct locks for the same otpID.
func (s *Service) release(otpID string, l *recordLock) {
	l.mu.Unlock()

	s.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(s.locks, otpID)
	}
	s.mu.Unlock()
}

func key(otpID string) string { return keyPrefix + otpID }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RequestReset creates a reset request for email and mails the code. It
// returns the opaque request identifier; the code itself travels only inside
// the delivered message. A delivery failure removes the record and surfaces
// EMAIL_SEND_FAILED.
func (s *Service) RequestReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)

	code, err := s.genCode()
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}

	otpID := uuid.New().String()
	rec := Record{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(TTL),
	}
	if err := s.put(ctx, otpID, &rec); err != nil {
		return "", err
	}

	if err := s.mailer.SendPasswordResetOTP(ctx, email, code); err != nil {
		s.logger.Warn("otp delivery failed", zap.String("otp_id", otpID), zap.Error(err))
		_ = s.store.Delete(ctx, key(otpID))
		return "", rejection.EmailSendFailed
	}

	s.logger.Info("otp issued", zap.String("otp_id", otpID))
	return otpID, nil
}

// Verify checks code and email against the record. Success marks the record
// verified but keeps it: the subsequent ResetPassword still needs it. An
// expired record is deleted on sight.
func (s *Service) Verify(ctx context.Context, otpID string, code int, email string) error {
	l := s.acquire(otpID)
	defer s.release(otpID, l)

	rec, err := s.get(ctx, otpID)
	if err != nil {
		return err
	}
	if rec == nil {
		return rejection.UnknownOTPRequest
	}
	if rec.expired(s.now()) {
		_ = s.store.Delete(ctx, key(otpID))
		return rejection.OTPExpired
	}
	if rec.Code != code {
		return rejection.OTPCodeMismatch
	}
	if rec.Email != normalizeEmail(email) {
		return rejection.OTPEmailMismatch
	}

	rec.Verified = true
	return s.put(ctx, otpID, rec)
}

// ResetPassword consumes a verified record and rewrites the user's credential
// hash. The record is single-use: it is deleted on success, so a repeat call
// fails with UNKNOWN_REQUEST.
func (s *Service) ResetPassword(ctx context.Context, otpID, email, newPassword string) error {
	l := s.acquire(otpID)
	defer s.release(otpID, l)

	rec, err := s.get(ctx, otpID)
	if err != nil {
		return err
	}
	if rec == nil {
		return rejection.UnknownOTPRequest
	}
	if rec.expired(s.now()) {
		_ = s.store.Delete(ctx, key(otpID))
		return rejection.OTPExpired
	}
	if !rec.Verified {
		return rejection.OTPNotVerified
	}
	if rec.Email != normalizeEmail(email) {
		return rejection.OTPEmailMismatch
	}

	user, err := s.users.FindByEmail(ctx, rec.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return rejection.UserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.users.SetPassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, key(otpID)); err != nil {
		return err
	}
	s.logger.Info("password reset completed", zap.String("otp_id", otpID))
	return nil
}

// Sweep deletes every record whose expiry has passed and reports the count.
// Registered as an hourly job; on Redis it is mostly a no-op because keys
// self-expire shortly after their grace window.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	keys, err := s.store.Scan(ctx, keyPrefix)
	if err != nil {
		return 0, err
	}

	removed := 0
	now := s.now()
	for _, k := range keys {
		raw, found, err := s.store.Get(ctx, k)
		if err != nil || !found {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			_ = s.store.Delete(ctx, k)
			removed++
			continue
		}
		if rec.expired(now) {
			_ = s.store.Delete(ctx, k)
			removed++
		}
	}
	return removed, nil
}

func (s *Service) get(ctx context.Context, otpID string) (*Record, error) {
	raw, found, err := s.store.Get(ctx, key(otpID))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode otp record: %w", err)
	}
	return &rec, nil
}

func (s *Service) put(ctx context.Context, otpID string, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	ttl := rec.ExpiresAt.Sub(s.now()) + SweepInterval
	return s.store.Put(ctx, key(otpID), string(data), ttl)
}
