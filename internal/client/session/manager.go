package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/legalwriter/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/legalwriter/internal/common"
	"github.com/dmitrijs2005/legalwriter/internal/logging"
)

// DefaultRefreshTokenTTL mirrors the one-day lifetime of the refresh cookie.
const DefaultRefreshTokenTTL = 24 * time.Hour

// ExpiryChecker reports whether an access token should no longer be sent.
type ExpiryChecker interface {
	IsExpired(token string) bool
}

type Manager struct {
	mu             sync.RWMutex
	access         string
	refresh        string
	refreshExpires time.Time

	store      tokens.Repository
	checker    ExpiryChecker
	logger     logging.Logger
	refreshTTL time.Duration
	now        func() time.Time

	hooksMu sync.Mutex
	onClear []func()
}

type Option func(*Manager)

func WithRefreshTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.refreshTTL = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager builds an empty, unauthenticated Manager. Call Init to load a
// previously persisted session.
func NewManager(store tokens.Repository, checker ExpiryChecker, opts ...Option) *Manager {
	m := &Manager{
		store:      store,
		checker:    checker,
		logger:     logging.Discard(),
		refreshTTL: DefaultRefreshTokenTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init hydrates the manager from the persistent store. An expired refresh
// record is deleted rather than loaded.
func (m *Manager) Init(ctx context.Context) error {
	accessRec, err := m.store.Get(ctx, common.AccessTokenName)
	if err != nil {
		return fmt.Errorf("load access token: %w", err)
	}
	refreshRec, err := m.store.Get(ctx, common.RefreshTokenName)
	if err != nil {
		return fmt.Errorf("load refresh token: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if accessRec != nil {
		m.access = accessRec.Value
	}

	if refreshRec != nil {
		if refreshRec.ExpiresAt != nil && !refreshRec.ExpiresAt.After(m.now()) {
			m.logger.Info(ctx, "persisted refresh token expired, discarding")
			if err := m.store.Delete(ctx, common.RefreshTokenName); err != nil {
				return fmt.Errorf("discard refresh token: %w", err)
			}
		} else {
			m.refresh = refreshRec.Value
			if refreshRec.ExpiresAt != nil {
				m.refreshExpires = *refreshRec.ExpiresAt
			}
		}
	}

	m.logger.Debug(ctx, "session hydrated", "has_access", m.access != "", "has_refresh", m.refresh != "")
	return nil
}

// SetTokens stores a fresh token pair. No validation is performed.
func (m *Manager) SetTokens(ctx context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	expires := m.now().Add(m.refreshTTL)
	// the pair is written together so a restart never hydrates a mixed session
	if err := m.store.PutAll(ctx,
		tokens.Record{Name: common.AccessTokenName, Value: access},
		tokens.Record{Name: common.RefreshTokenName, Value: refresh, ExpiresAt: &expires},
	); err != nil {
		return err
	}

	m.access = access
	m.refresh = refresh
	m.refreshExpires = expires
	return nil
}

// SetAccessToken replaces only the access token; the refresh token and its
// expiry are left alone.
func (m *Manager) SetAccessToken(ctx context.Context, access string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Put(ctx, tokens.Record{Name: common.AccessTokenName, Value: access}); err != nil {
		return err
	}
	m.access = access
	return nil
}

// AccessToken returns the current access token. ok is false when absent.
func (m *Manager) AccessToken() (token string, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access, m.access != ""
}

// RefreshToken returns the refresh token unless it is absent or past its
// stored expiry.
func (m *Manager) RefreshToken() (token string, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.refresh == "" {
		return "", false
	}
	if !m.refreshExpires.IsZero() && !m.refreshExpires.After(m.now()) {
		return "", false
	}
	return m.refresh, true
}

// IsAuthenticated reports whether an unexpired access token is held.
func (m *Manager) IsAuthenticated() bool {
	access, ok := m.AccessToken()
	return ok && !m.checker.IsExpired(access)
}

// Clear removes both tokens unconditionally, in memory first so the
// session is unusable even if the store fails, then runs OnClear hooks.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.access = ""
	m.refresh = ""
	m.refreshExpires = time.Time{}
	err := m.store.Clear(ctx)
	m.mu.Unlock()

	m.logger.Info(ctx, "session cleared")

	m.hooksMu.Lock()
	hooks := append([]func(){}, m.onClear...)
	m.hooksMu.Unlock()
	for _, fn := range hooks {
		fn()
	}

	if err != nil {
		return fmt.Errorf("clear persisted tokens: %w", err)
	}
	return nil
}

// OnClear registers fn to run after every Clear.
func (m *Manager) OnClear(fn func()) {
	m.hooksMu.Lock()
	defer m.hooksMu.Unlock()
	m.onClear = append(m.onClear, fn)
}
