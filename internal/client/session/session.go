// Package session holds the process-wide authentication state: the current
// user, the derived authentication flag, and the operations that move the
// state machine between Unknown, Unauthenticated and Authenticated.
//
// The manager is an explicit service with injected dependencies rather than
// ambient framework state. Interested components subscribe to snapshots and
// re-render on change.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/gmubooktrade/booktrade/internal/client/api"
	"github.com/gmubooktrade/booktrade/internal/client/models"
	"github.com/gmubooktrade/booktrade/internal/client/validate"
	"github.com/gmubooktrade/booktrade/internal/logging"
)

// State is the coarse authentication state of this process.
type State int

const (
	// StateUnknown means silent re-authentication has not finished yet.
	// Nothing gated on authentication may be shown in this state.
	StateUnknown State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "invalid"
	}
}

// Snapshot is an immutable view of the session handed to subscribers.
type Snapshot struct {
	State State
	User  *models.User
	// LoginPromptOpen mirrors the decoupled "auth modal" flag: any component
	// may request the login UI without threading state through the call tree.
	LoginPromptOpen bool
}

func (s Snapshot) IsAuthenticated() bool {
	return s.State == StateAuthenticated
}

// Credentials is the slice of the token store the session needs.
type Credentials interface {
	Token(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error
	SetSignupEmail(ctx context.Context, email string) error
}

// Manager owns the session state machine. All mutation happens under one
// mutex; subscribers are notified outside of it.
type Manager struct {
	api   api.Client
	creds Credentials
	log   logging.Logger

	mu         sync.Mutex
	user       *models.User
	loading    bool
	promptOpen bool
	subs       map[int]func(Snapshot)
	nextSub    int
}

func NewManager(apiClient api.Client, creds Credentials, log logging.Logger) *Manager {
	return &Manager{
		api:     apiClient,
		creds:   creds,
		log:     log.With("component", "session"),
		loading: true,
		subs:    make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current session view.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	state := StateUnknown
	if !m.loading {
		if m.user != nil {
			state = StateAuthenticated
		} else {
			state = StateUnauthenticated
		}
	}
	return Snapshot{State: state, User: m.user, LoginPromptOpen: m.promptOpen}
}

// Subscribe registers fn to be called after every state change. The returned
// function cancels the subscription.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
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

// setState applies fn under the lock and notifies subscribers with the
// resulting snapshot.
func (m *Manager) setState(fn func()) {
	m.mu.Lock()
	fn()
	snap := m.snapshotLocked()
	listeners := make([]func(Snapshot), 0, len(m.subs))
	for _, s := range m.subs {
		listeners = append(listeners, s)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

// Initialize performs silent re-authentication at startup. A stored token is
// exchanged for the current user; when that fails the token is cleared along
// with the user, so no dead credential lingers. Failures are not surfaced to
// the user, the session just resolves to Unauthenticated. The Unknown state
// always ends here.
func (m *Manager) Initialize(ctx context.Context) {
	token, err := m.creds.Token(ctx)
	if err != nil {
		m.log.Error(ctx, "reading stored token", "error", err)
	}
	if token == "" {
		m.setState(func() { m.loading = false })
		return
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.log.Info(ctx, "silent re-authentication failed", "error", err)
		if clearErr := m.creds.ClearToken(ctx); clearErr != nil {
			m.log.Error(ctx, "clearing stale token", "error", clearErr)
		}
		m.setState(func() {
			m.user = nil
			m.loading = false
		})
		return
	}

	m.log.Info(ctx, "session restored", "email", user.Email)
	m.setState(func() {
		m.user = user
		m.loading = false
	})
}

// Login authenticates with the backend. The email domain is gated
// client-side first: a non-GMU address fails without any network traffic.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if err := validate.Email(email); err != nil {
		return err
	}

	if _, err := m.api.Login(ctx, email, password); err != nil {
		return err
	}

	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		return err
	}

	m.log.Info(ctx, "login successful", "email", user.Email)
	m.setState(func() {
		m.user = user
		m.loading = false
		m.promptOpen = false
	})
	return nil
}

// Signup creates an account. It never authenticates: the account must verify
// its email first, so the session stays Unauthenticated. The signed-up email
// is remembered for the verification flow.
func (m *Manager) Signup(ctx context.Context, email, password, confirm, fullName string) (*api.SignupResult, error) {
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if err := validate.SignupPassword(password, confirm); err != nil {
		return nil, err
	}

	res, err := m.api.Signup(ctx, api.SignupRequest{Email: email, Password: password, FullName: fullName})
	if err != nil {
		return nil, err
	}

	if err := m.creds.SetSignupEmail(ctx, email); err != nil {
		m.log.Error(ctx, "remembering signup email", "error", err)
	}
	return res, nil
}

// Logout ends the session. The local token is cleared even when the backend
// call fails; the error is still returned so the caller can report it.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.api.Logout(ctx)

	m.setState(func() {
		m.user = nil
		m.loading = false
	})
	if err != nil {
		m.log.Warn(ctx, "logout request failed, local session cleared anyway", "error", err)
	}
	return err
}

// RefreshUser re-fetches the current user. On an authentication rejection
// the stored token is cleared too; on transient failures it is kept so a
// later retry can succeed.
func (m *Manager) RefreshUser(ctx context.Context) error {
	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			if clearErr := m.creds.ClearToken(ctx); clearErr != nil {
				m.log.Error(ctx, "clearing rejected token", "error", clearErr)
			}
		}
		m.setState(func() {
			m.user = nil
			m.loading = false
		})
		return err
	}

	m.setState(func() {
		m.user = user
		m.loading = false
	})
	return nil
}

// RequestLogin raises the login-prompt flag.
func (m *Manager) RequestLogin() {
	m.setState(func() { m.promptOpen = true })
}

// DismissLogin lowers the login-prompt flag.
func (m *Manager) DismissLogin() {
	m.setState(func() { m.promptOpen = false })
}
