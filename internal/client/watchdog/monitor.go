package watchdog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agroscanai/agroscan-cli/internal/client/session"
	"github.com/agroscanai/agroscan-cli/internal/logging"
)

// sessionController is the slice of the session manager the monitor needs.
type sessionController interface {
	Logout(ctx context.Context, reason string)
	Subscribe(fn func(session.Event)) func()
	IsAuthenticated() bool
}

// Monitor is a two-state machine: Armed while a session is active (signals
// subscribed, one countdown running) and Disarmed otherwise. Every arm has
// exactly one matching disarm, including the self-terminating transition
// where the countdown itself ends the session.
type Monitor struct {
	session sessionController
	source  SignalSource
	timeout time.Duration
	logger  logging.Logger
	ctx     context.Context

	mu           sync.Mutex
	armed        bool
	closed       bool
	timer        *time.Timer
	unsubSignals func()
	unsubSession func()
}

func NewMonitor(sc sessionController, source SignalSource, timeout time.Duration, logger logging.Logger) *Monitor {
	if timeout <= 0 {
		timeout = session.DefaultTimeout
	}
	return &Monitor{session: sc, source: source, timeout: timeout, logger: logger}
}

// Start begins observing session transitions. If a session is already
// active, the monitor arms immediately.
func (m *Monitor) Start(ctx context.Context) {
	m.ctx = ctx
	m.unsubSession = m.session.Subscribe(func(e session.Event) {
		switch e.Kind {
		case session.EventLogin:
			m.arm()
		case session.EventLogout:
			m.disarm()
		}
	})

	if m.session.IsAuthenticated() {
		m.arm()
	}
}

// Close tears the monitor down: no timer may fire and no subscription may
// survive after it returns.
func (m *Monitor) Close() {
	m.mu.Lock()
	m.closed = true
	unsubSession := m.unsubSession
	m.unsubSession = nil
	m.mu.Unlock()

	if unsubSession != nil {
		unsubSession()
	}
	m.disarm()
}

func (m *Monitor) arm() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.armed {
		return
	}
	m.armed = true
	m.unsubSignals = m.source.Subscribe(m.onSignal)
	m.timer = time.AfterFunc(m.timeout, m.expire)
}

// disarm is safe to call in any state, so the logout triggered by expire
// cannot double-cancel or double-unsubscribe.
func (m *Monitor) disarm() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.armed {
		return
	}
	m.armed = false
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.unsubSignals != nil {
		m.unsubSignals()
		m.unsubSignals = nil
	}
}

// onSignal restarts the countdown. Only the most recent restart matters;
// the previous timer is cancelled before the new one is scheduled.
func (m *Monitor) onSignal(Signal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.armed {
		return
	}
	m.timer.Stop()
	m.timer = time.AfterFunc(m.timeout, m.expire)
}

func (m *Monitor) expire() {
	m.mu.Lock()
	if !m.armed {
		m.mu.Unlock()
		return
	}
	ctx := m.ctx
	m.mu.Unlock()

	m.logger.Info(ctx, "idle timeout reached, ending session")
	// The logout notification transitions the monitor to Disarmed.
	m.session.Logout(ctx, m.timeoutReason())
}

func (m *Monitor) timeoutReason() string {
	if m.timeout%time.Minute == 0 {
		return fmt.Sprintf("You were logged out after %d minutes of inactivity.", int(m.timeout.Minutes()))
	}
	return fmt.Sprintf("You were logged out after %s of inactivity.", m.timeout)
}
