// Package login implements the code-based login state machine. A visitor
// is anonymous until an allow-listed phone requests a code; the session
// then holds the pending code until it is verified or the session ends.
package login

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"sync"
	"time"

	"github.com/sgs-events/eventdesk/internal/allowlist"
	"github.com/sgs-events/eventdesk/internal/delivery"
	"github.com/sgs-events/eventdesk/internal/dependencies/clock"
	"github.com/sgs-events/eventdesk/internal/dependencies/random"
	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/phone"
	"github.com/sgs-events/eventdesk/internal/services/admin"
)

// State is a session's position in the login flow
type State string

const (
	// StateCodeIssued means a code has been generated and delivered but
	// not yet verified. Anonymous visitors have no session at all.
	StateCodeIssued State = "code_issued"
	// StateAuthenticated means the code was verified
	StateAuthenticated State = "authenticated"
)

// Session tracks one visitor through the login flow. Sessions live only in
// memory; they are never written to durable storage.
type Session struct {
	Token     string
	State     State
	Phone     string // normalized 10-digit key
	IsAdmin   bool
	CreatedAt time.Time
	ExpiresAt time.Time

	pendingCode    string
	failedAttempts int
	lockedUntil    time.Time
}

// Config holds configuration for the login service
type Config struct {
	SessionDuration time.Duration
	CodeLength      int
	// MaxAttempts failed verifications (or admin password attempts) lock
	// the session for LockoutWindow. The pending code itself survives a
	// lockout; only the retry is delayed.
	MaxAttempts   int
	LockoutWindow time.Duration
}

// DefaultConfig returns default login configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 12 * time.Hour,
		CodeLength:      6,
		MaxAttempts:     5,
		LockoutWindow:   15 * time.Minute,
	}
}

// Service handles login sessions and admin authorization
type Service struct {
	allowList *allowlist.Service
	gate      *admin.Gate
	delivery  delivery.CodeDelivery
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	cfg Config
}

// New creates a new login Service
func New(
	allowList *allowlist.Service,
	gate *admin.Gate,
	codeDelivery delivery.CodeDelivery,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.SessionDuration == 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		allowList: allowList,
		gate:      gate,
		delivery:  codeDelivery,
		clock:     clk,
		random:    rnd,
		logger:    logger,
		sessions:  make(map[string]*Session),
		cfg:       cfg,
	}
}

// RequestCode starts (or restarts) a login. The phone is normalized and
// checked against the allow-list; non-members get ErrNotRegistered and no
// session. For members a fresh code is generated and handed to the
// delivery channel. If existingToken names a live session still awaiting
// verification, that session is reused and its pending code overwritten;
// otherwise a new session is created.
func (s *Service) RequestCode(ctx context.Context, existingToken, rawPhone string) (*Session, error) {
	normalized := phone.Normalize(rawPhone)

	member, err := s.allowList.IsMember(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, model.ErrNotRegistered
	}

	code := s.random.Digits(s.cfg.CodeLength)
	now := s.clock.Now()

	s.mu.Lock()
	session := s.liveLocked(existingToken)
	if session == nil || session.State != StateCodeIssued {
		session = &Session{
			Token:     generateToken(),
			CreatedAt: now,
		}
		s.sessions[session.Token] = session
	}
	session.State = StateCodeIssued
	session.Phone = normalized
	session.pendingCode = code
	session.failedAttempts = 0
	session.ExpiresAt = now.Add(s.cfg.SessionDuration)
	snapshot := *session
	s.mu.Unlock()

	if err := s.delivery.Send(ctx, normalized, code); err != nil {
		s.logger.Error("code delivery failed",
			slog.String("phone", normalized),
			slog.String("error", err.Error()),
		)
		s.mu.Lock()
		delete(s.sessions, snapshot.Token)
		s.mu.Unlock()
		return nil, err
	}

	return &snapshot, nil
}

// Verify checks the submitted code against the session's pending code.
// A match authenticates the session and clears the code (one-shot); a
// mismatch leaves the pending code in place so the user may retry, up to
// the attempt limit.
func (s *Service) Verify(ctx context.Context, token, code string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.liveLocked(token)
	if session == nil {
		return nil, model.ErrInvalidSession
	}
	if session.State != StateCodeIssued {
		return nil, model.ErrNoPendingCode
	}

	now := s.clock.Now()
	if now.Before(session.lockedUntil) {
		return nil, model.ErrTooManyAttempts
	}

	if code != session.pendingCode {
		session.failedAttempts++
		if session.failedAttempts >= s.cfg.MaxAttempts {
			session.lockedUntil = now.Add(s.cfg.LockoutWindow)
			session.failedAttempts = 0
			s.logger.Warn("session locked after repeated wrong codes",
				slog.String("phone", session.Phone),
				slog.Time("locked_until", session.lockedUntil),
			)
		}
		return nil, model.ErrWrongCode
	}

	session.pendingCode = ""
	session.failedAttempts = 0
	session.State = StateAuthenticated

	snapshot := *session
	return &snapshot, nil
}

// AuthorizeAdmin upgrades an authenticated session to admin if the shared
// secret matches. Authorization is session-scoped: it lasts until logout
// or expiry, not per action. Wrong attempts count toward the same lockout
// as wrong codes.
func (s *Service) AuthorizeAdmin(ctx context.Context, token, password string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.liveLocked(token)
	if session == nil {
		return nil, model.ErrInvalidSession
	}
	if session.State != StateAuthenticated {
		return nil, model.ErrUnauthenticated
	}

	now := s.clock.Now()
	if now.Before(session.lockedUntil) {
		return nil, model.ErrTooManyAttempts
	}

	if err := s.gate.Authorize(password); err != nil {
		session.failedAttempts++
		if session.failedAttempts >= s.cfg.MaxAttempts {
			session.lockedUntil = now.Add(s.cfg.LockoutWindow)
			session.failedAttempts = 0
			s.logger.Warn("session locked after repeated admin password failures",
				slog.String("phone", session.Phone),
				slog.Time("locked_until", session.lockedUntil),
			)
		}
		return nil, err
	}

	session.failedAttempts = 0
	session.IsAdmin = true

	snapshot := *session
	return &snapshot, nil
}

// ValidateSession checks a token and returns the session in any state
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session := s.liveLocked(token)
	var snapshot Session
	if session != nil {
		snapshot = *session
	}
	s.mu.RUnlock()

	if session == nil {
		// Drop it if it exists but has expired
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, model.ErrInvalidSession
	}

	return &snapshot, nil
}

// Logout destroys the session, clearing phone, pending code and admin flag
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// liveLocked returns the session for token if it exists and has not
// expired. Callers must hold s.mu.
func (s *Service) liveLocked(token string) *Session {
	if token == "" {
		return nil
	}
	session, ok := s.sessions[token]
	if !ok {
		return nil
	}
	if s.clock.Now().After(session.ExpiresAt) {
		return nil
	}
	return session
}

// generateToken generates an opaque session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
