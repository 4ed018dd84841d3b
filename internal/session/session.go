package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/repository"
)

// Session is the explicit viewer identity handed to every service call.
// It replaces ambient current-user lookup: whoever needs to know who is
// acting receives a Session as an argument.
type Session struct {
	AgentID string
	Role    domain.Role
}

// CanReadAllAgents reports whether the viewer may read rows across agents.
func (s Session) CanReadAllAgents() bool {
	return s.Role.CanReadAllAgents()
}

// CanActFor reports whether the viewer may mutate rows owned by agentID.
func (s Session) CanActFor(agentID string) bool {
	return s.AgentID == agentID || s.Role.CanReadAllAgents()
}

var (
	// ErrNotSignedIn is returned when no session has been initialized.
	ErrNotSignedIn = errors.New("no active session")
	// ErrForbidden is returned when the viewer may not act on the target rows.
	ErrForbidden = errors.New("not allowed for this agent")
)

// Store owns the session lifecycle for one process: initialized once at
// startup, torn down on sign-out.
type Store struct {
	mu      sync.Mutex
	current *Session
}

func NewStore() *Store {
	return &Store{}
}

// Init installs the signed-in viewer. Re-initializing replaces the session.
func (st *Store) Init(s Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = &s
}

// Current returns the active session.
func (st *Store) Current() (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.current == nil {
		return Session{}, ErrNotSignedIn
	}
	return *st.current, nil
}

// Teardown clears the session.
func (st *Store) Teardown() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = nil
}

// Resolve looks up the signed-in agent by email and builds its session.
func Resolve(ctx context.Context, agents repository.AgentRepo, email string) (Session, error) {
	if email == "" {
		return Session{}, fmt.Errorf("resolving session: no agent email configured")
	}
	agent, err := agents.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("resolving session for %s: %w", email, err)
	}
	return Session{AgentID: agent.ID, Role: agent.Role}, nil
}
