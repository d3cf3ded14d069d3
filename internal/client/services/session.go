// Package services contains the application services of the Vilarbucks
// client: the session synchronizer that owns "who is logged in", and the
// task service built on top of it.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vilarbucks/vilarbucks/internal/client/client"
	"github.com/vilarbucks/vilarbucks/internal/client/models"
	"github.com/vilarbucks/vilarbucks/internal/client/storage"
	"github.com/vilarbucks/vilarbucks/internal/logging"
)

// logoutTimeout bounds the best-effort server notification on logout.
const logoutTimeout = 5 * time.Second

// Session keeps the in-memory user projection and its persisted mirror in
// step with each other and with the remote profile.
//
// Every mutating operation runs under one lock, and the in-memory state is
// replaced only after the persisted write succeeded, so the two copies never
// disagree. Reads (CurrentUser, Token) do not wait for in-flight operations.
type Session struct {
	client client.Client
	store  storage.SessionStore
	log    logging.Logger
	now    func() time.Time

	opMu sync.Mutex

	stateMu sync.RWMutex
	token   string
	user    *models.User

	hydrateOnce sync.Once
	ready       chan struct{}
}

type Option func(*Session)

// WithClock overrides the clock used for JoinedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func NewSession(c client.Client, store storage.SessionStore, log logging.Logger, opts ...Option) *Session {
	s := &Session{
		client: c,
		store:  store,
		log:    log.With("component", "session"),
		now:    time.Now,
		ready:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loading reports whether hydration has not finished yet. Until it has, the
// session is not authoritative.
func (s *Session) Loading() bool {
	select {
	case <-s.ready:
		return false
	default:
		return true
	}
}

// Ready is closed once hydration has finished.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// CurrentUser returns a copy of the projection, or nil when logged out.
func (s *Session) CurrentUser() *models.User {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.user.Clone()
}

// Token returns the credential token, or "" when logged out.
func (s *Session) Token() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// Hydrate restores the session from the persisted token. Any failure
// leaves the session logged out with the persisted mirror cleared; it is
// logged and never returned. Only the first call does any work.
func (s *Session) Hydrate(ctx context.Context) {
	s.hydrateOnce.Do(func() {
		defer close(s.ready)

		s.opMu.Lock()
		defer s.opMu.Unlock()

		s.hydrate(ctx)
	})
}

func (s *Session) hydrate(ctx context.Context) {
	token, _, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error(ctx, "session store unreadable", "error", err)
		s.discard(ctx)
		return
	}
	if token == "" {
		s.log.Debug(ctx, "no stored session")
		return
	}

	if exp, ok := tokenExpiry(token); ok {
		if exp.Before(s.now()) {
			s.log.Warn(ctx, "stored token looks expired", "expires_at", exp)
		} else {
			s.log.Debug(ctx, "stored token", "expires_at", exp)
		}
	}

	profile, err := s.client.GetCurrentProfile(ctx, token)
	if err != nil {
		s.log.Warn(ctx, "failed to restore session", "error", err)
		s.discard(ctx)
		return
	}

	user := buildUser(profile, models.DefaultDisplayName, s.now().UTC())
	if err := s.commit(ctx, token, user); err != nil {
		s.log.Error(ctx, "failed to persist restored session", "error", err)
		s.discard(ctx)
		return
	}

	s.log.Info(ctx, "session restored", "user_id", user.ID)
}

// Login authenticates against the server. On failure nothing changes,
// locally or in the store, and false is returned.
func (s *Session) Login(ctx context.Context, email, password string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.log.Warn(ctx, "login failed", "email", email, "error", err)
		return false
	}

	user := buildUser(&res.User, models.DefaultDisplayName, s.now().UTC())
	if err := s.commit(ctx, res.Token, user); err != nil {
		s.log.Error(ctx, "failed to persist session", "op", "login", "error", err)
		return false
	}

	s.log.Info(ctx, "logged in", "user_id", user.ID)
	return true
}

// Register creates a customer account named displayName and logs into it.
// A new account has no earnings, whatever its starting balance.
func (s *Session) Register(ctx context.Context, email, password, displayName string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	res, err := s.client.Register(ctx, models.RegisterRequest{
		Email:     email,
		Password:  password,
		Username:  displayName,
		FirstName: displayName,
		Role:      models.RoleCustomer,
	})
	if err != nil {
		s.log.Warn(ctx, "registration failed", "email", email, "error", err)
		return false
	}

	user := buildUser(&res.User, displayName, s.now().UTC())
	user.TotalEarned = decimal.Zero
	if err := s.commit(ctx, res.Token, user); err != nil {
		s.log.Error(ctx, "failed to persist session", "op", "register", "error", err)
		return false
	}

	s.log.Info(ctx, "registered", "user_id", user.ID)
	return true
}

// Logout forgets the session locally and then tells the server on a best
// effort basis. It cannot fail.
func (s *Session) Logout(ctx context.Context) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	token := s.Token()
	s.discard(ctx)

	if token == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutTimeout)
	defer cancel()
	if err := s.client.Logout(ctx, token); err != nil {
		s.log.Debug(ctx, "server logout failed", "error", err)
	}
}

// AdjustBalance adds amount to the local balance without contacting the
// server; the caller must already have settled the change server-side.
// Positive amounts also count towards TotalEarned and TasksCompleted.
// It does nothing when logged out.
func (s *Session) AdjustBalance(ctx context.Context, amount decimal.Decimal) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	current := s.CurrentUser()
	if current == nil {
		return
	}

	next := applyAdjustment(current, amount)
	if err := s.commit(ctx, s.Token(), next); err != nil {
		s.log.Error(ctx, "failed to persist balance adjustment", "amount", amount, "error", err)
	}
}

// Refresh re-reads the profile from the server and takes its balance,
// email and name, keeping the locally tracked counters. A rejected token
// logs the session out; other failures leave it untouched.
func (s *Session) Refresh(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	current := s.CurrentUser()
	if current == nil {
		return ErrNotAuthenticated
	}
	token := s.Token()

	profile, err := s.client.GetCurrentProfile(ctx, token)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			s.log.Warn(ctx, "session rejected by server", "error", err)
			s.discard(ctx)
		}
		return fmt.Errorf("refresh profile: %w", err)
	}

	next := current.Clone()
	next.Email = profile.Email
	next.Name = displayName(profile, current.Name)
	next.Balance = profile.WalletBalance

	if err := s.commit(ctx, token, next); err != nil {
		return fmt.Errorf("persist refreshed profile: %w", err)
	}

	if !current.Balance.Equal(next.Balance) {
		s.log.Info(ctx, "balance reconciled", "local", current.Balance, "server", next.Balance)
	}
	return nil
}

// commit writes token and user to the store and, only if that worked,
// makes them the in-memory state. Callers hold opMu.
func (s *Session) commit(ctx context.Context, token string, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Save(ctx, token, data); err != nil {
		return err
	}

	s.stateMu.Lock()
	s.token, s.user = token, user
	s.stateMu.Unlock()
	return nil
}

// discard drops the in-memory session and clears the store. Callers hold
// opMu.
func (s *Session) discard(ctx context.Context) {
	s.stateMu.Lock()
	s.token, s.user = "", nil
	s.stateMu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear session store", "error", err)
	}
}
