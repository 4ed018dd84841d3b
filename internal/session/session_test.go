package session

import (
	"context"
	"testing"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/repository"
	"github.com/mvaldelvira/corredor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Lifecycle(t *testing.T) {
	st := NewStore()

	_, err := st.Current()
	assert.ErrorIs(t, err, ErrNotSignedIn)

	st.Init(Session{AgentID: "a1", Role: domain.RoleAgent})
	s, err := st.Current()
	require.NoError(t, err)
	assert.Equal(t, "a1", s.AgentID)

	st.Teardown()
	_, err = st.Current()
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestSession_Scoping(t *testing.T) {
	agent := Session{AgentID: "a1", Role: domain.RoleAgent}
	assert.False(t, agent.CanReadAllAgents())
	assert.True(t, agent.CanActFor("a1"))
	assert.False(t, agent.CanActFor("a2"))

	coord := Session{AgentID: "c1", Role: domain.RoleCoordinator}
	assert.True(t, coord.CanReadAllAgents())
	assert.True(t, coord.CanActFor("a2"))
}

func TestResolve(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	agents := repository.NewSQLiteAgentRepo(database)
	a := testutil.NewTestAgent("Marta López",
		testutil.WithAgentEmail("marta@agency.test"),
		testutil.WithRole(domain.RoleCoordinator))
	require.NoError(t, agents.Create(ctx, a))

	s, err := Resolve(ctx, agents, "marta@agency.test")
	require.NoError(t, err)
	assert.Equal(t, a.ID, s.AgentID)
	assert.Equal(t, domain.RoleCoordinator, s.Role)

	_, err = Resolve(ctx, agents, "nobody@agency.test")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = Resolve(ctx, agents, "")
	assert.Error(t, err)
}
