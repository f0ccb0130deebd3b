package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/kataras/go-events"
	log "github.com/sirupsen/logrus"
)

const changeEvent events.EventName = "session.change"

// Manager is the process-wide session holder: current session (nullable), a
// session-change stream, and sign-out. It is passed to consumers as a
// context object rather than reached for as a global.
type Manager struct {
	client AuthClient

	mu      sync.Mutex
	current *Session

	emitter events.EventEmmiter
}

func NewManager(client AuthClient) *Manager {
	return &Manager{
		client:  client,
		emitter: events.New(),
	}
}

// Current returns the active session, or nil when signed out.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current
}

// SetSession installs a new session (or nil on sign-out) and notifies every
// change listener.
func (m *Manager) SetSession(s *Session) {
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	m.emitter.Emit(changeEvent, s)
}

// OnChange subscribes to session transitions. The listener receives the new
// session, nil meaning signed out. The returned function removes the
// listener.
func (m *Manager) OnChange(fn func(*Session)) func() {
	listener := func(payload ...interface{}) {
		if len(payload) == 0 {
			fn(nil)
			return
		}

		s, ok := payload[0].(*Session)
		if !ok {
			fn(nil)
			return
		}

		fn(s)
	}

	m.emitter.AddListener(changeEvent, listener)

	return func() {
		m.emitter.RemoveListener(changeEvent, listener)
	}
}

// SignIn authenticates against the hosted auth service and installs the
// resulting session.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	s, err := m.client.SignIn(ctx, email, password)
	if err != nil {
		return fmt.Errorf("SignIn: %w", err)
	}

	m.SetSession(s)

	return nil
}

// SignOut revokes the current session. The local session is cleared even
// when revocation fails, so the app never stays signed in against the
// user's intent; the error is still returned for surfacing.
func (m *Manager) SignOut(ctx context.Context) error {
	current := m.Current()
	if current == nil {
		return nil
	}

	err := m.client.SignOut(ctx, current.AccessToken)
	if err != nil {
		log.Errorf("SignOut: failed to revoke session: %v", err)
	}

	m.SetSession(nil)

	if err != nil {
		return fmt.Errorf("SignOut: %w", err)
	}

	return nil
}

// Teardown removes every change listener. Called on app shutdown.
func (m *Manager) Teardown() {
	m.emitter.RemoveAllListeners(changeEvent)
}
