// Package session owns the authentication state of the client: establishing
// a session after login, restoring and validating it at startup, and tearing
// it down on logout, expiry, or corruption. The Manager is the single writer
// of the persistent session keys; other components observe state changes
// through Subscribe.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/agroscanai/agroscan-cli/internal/client/alerts"
	"github.com/agroscanai/agroscan-cli/internal/client/models"
	"github.com/agroscanai/agroscan-cli/internal/client/repositories/state"
	"github.com/agroscanai/agroscan-cli/internal/dbx"
	"github.com/agroscanai/agroscan-cli/internal/logging"
)

// Persistent store keys. All four are written together on login and cleared
// together on logout; a token without a login instant is corruption.
const (
	KeyToken     = "userToken"
	KeyUserID    = "userId"
	KeyUserEmail = "userEmail"
	KeyLoginTime = "login_time"
)

// DefaultTimeout is the absolute-idle threshold applied when restoring a
// stored session.
const DefaultTimeout = 5 * time.Minute

const (
	MsgLoggedOut = "You have been successfully logged out."
	MsgExpired   = "Your session has expired due to inactivity. Please log in again."
	MsgCorrupted = "Session data corrupted. Please log in again."
)

type EventKind int

const (
	// EventLogin fires when a session becomes active, either through Login
	// or by being restored during Initialize.
	EventLogin EventKind = iota

	// EventLogout fires when the session is cleared by any path. Readers
	// should return to the unauthenticated entry point.
	EventLogout
)

// Event describes a session state transition.
type Event struct {
	Kind    EventKind
	Session models.Session
	Reason  string
}

// Manager is the session controller. Auth-state failures never propagate as
// errors; every failure path resolves into a Logout with a descriptive
// reason.
type Manager struct {
	db      *sql.DB
	alerts  *alerts.Center
	logger  logging.Logger
	timeout time.Duration
	now     func() time.Time

	mu      sync.Mutex
	session models.Session
	subs    map[int]func(Event)
	nextSub int
}

func NewManager(db *sql.DB, center *alerts.Center, logger logging.Logger, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		db:      db,
		alerts:  center,
		logger:  logger,
		timeout: timeout,
		now:     time.Now,
		subs:    make(map[int]func(Event)),
	}
}

func (m *Manager) repo() state.Repository {
	return state.NewSQLiteRepository(m.db)
}

// Initialize restores the session from the persistent store. A token with a
// missing or unreadable login instant forces a logout with a corruption
// notice; a login instant older than the idle threshold forces a logout with
// an expiry notice. Otherwise the stored values are adopted as the active
// session.
func (m *Manager) Initialize(ctx context.Context) {
	repo := m.repo()

	token := m.readKey(ctx, repo, KeyToken)
	userID := m.readKey(ctx, repo, KeyUserID)
	email := m.readKey(ctx, repo, KeyUserEmail)
	loginRaw := m.readKey(ctx, repo, KeyLoginTime)

	if token == "" {
		// Leftover identity fields without a token are harmless; the
		// session stays unauthenticated.
		m.mu.Lock()
		m.session = models.Session{UserID: userID, UserEmail: email}
		m.mu.Unlock()
		return
	}

	if loginRaw == "" {
		m.Logout(ctx, MsgCorrupted)
		return
	}

	ms, err := strconv.ParseInt(loginRaw, 10, 64)
	if err != nil {
		m.logger.Warn(ctx, "unreadable login instant in store", "value", loginRaw)
		m.Logout(ctx, MsgCorrupted)
		return
	}

	instant := time.UnixMilli(ms)
	if m.now().Sub(instant) > m.timeout {
		m.Logout(ctx, MsgExpired)
		return
	}

	m.mu.Lock()
	m.session = models.Session{Token: token, UserID: userID, UserEmail: email, LoginInstant: instant}
	sess := m.session
	m.mu.Unlock()

	m.logger.Info(ctx, "session restored", "user_id", userID)
	m.notify(Event{Kind: EventLogin, Session: sess})
}

// Login activates a session for the given identity and persists it. The
// token is written only when provided; re-authentication flows may omit it
// while the previous token is still held.
func (m *Manager) Login(ctx context.Context, userID, email, token string) {
	now := m.now()

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := state.NewSQLiteRepository(tx)
		if token != "" {
			if err := repo.Set(ctx, KeyToken, token); err != nil {
				return err
			}
		}
		if err := repo.Set(ctx, KeyUserID, userID); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyUserEmail, email); err != nil {
			return err
		}
		return repo.Set(ctx, KeyLoginTime, strconv.FormatInt(now.UnixMilli(), 10))
	})
	if err != nil {
		m.logger.Error(ctx, "failed to persist session", "error", err)
	}

	m.mu.Lock()
	kept := m.session.Token
	if token != "" {
		kept = token
	}
	m.session = models.Session{Token: kept, UserID: userID, UserEmail: email, LoginInstant: now}
	sess := m.session
	m.mu.Unlock()

	m.alerts.Publish(fmt.Sprintf("Login successful. Welcome back, user %s!", userID), models.AlertSuccess)
	m.notify(Event{Kind: EventLogin, Session: sess})
}

// Logout clears the persisted and in-memory session regardless of current
// state. Idempotent: a second call only re-emits the notice.
func (m *Manager) Logout(ctx context.Context, reason string) {
	if reason == "" {
		reason = MsgLoggedOut
	}

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := state.NewSQLiteRepository(tx)
		for _, key := range []string{KeyToken, KeyUserID, KeyUserEmail, KeyLoginTime} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		m.logger.Error(ctx, "failed to clear persisted session", "error", err)
	}

	m.mu.Lock()
	m.session = models.Session{}
	m.mu.Unlock()

	m.logger.Info(ctx, "session ended", "reason", reason)
	m.alerts.Publish(reason, models.AlertSuccess)
	m.notify(Event{Kind: EventLogout, Reason: reason})
}

// IsAuthenticated reports whether both token and user id are held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.IsAuthenticated()
}

// Current returns a copy of the active session.
func (m *Manager) Current() models.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

// Subscribe registers fn for session events and returns the matching
// unsubscribe function. Callbacks run outside the manager's lock.
func (m *Manager) Subscribe(fn func(Event)) func() {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) readKey(ctx context.Context, repo state.Repository, key string) string {
	v, err := repo.Get(ctx, key)
	if err != nil {
		m.logger.Warn(ctx, "failed to read state key", "key", key, "error", err)
		return ""
	}
	return v
}

func (m *Manager) notify(e Event) {
	m.mu.Lock()
	fns := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
