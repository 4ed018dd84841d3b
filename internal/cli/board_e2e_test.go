package cli

import (
	"context"
	"testing"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/pipeline"
	"github.com/mvaldelvira/corredor/internal/repository"
	"github.com/mvaldelvira/corredor/internal/service"
	"github.com/mvaldelvira/corredor/internal/session"
	"github.com/mvaldelvira/corredor/internal/teatest"
	"github.com/mvaldelvira/corredor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBoardApp wires the board against a real in-memory database.
func newBoardApp(t *testing.T) (*App, repository.ContactRepo, *domain.Agent) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	agents := repository.NewSQLiteAgentRepo(database)
	agent := testutil.NewTestAgent("Marta López")
	require.NoError(t, agents.Create(ctx, agent))

	contacts := repository.NewSQLiteContactRepo(database)
	app := &App{
		Contacts: service.NewContactService(contacts),
		Pipeline: service.NewPipelineService(contacts),
		Session:  session.Session{AgentID: agent.ID, Role: agent.Role},
	}
	return app, contacts, agent
}

func TestBoard_EndToEndMovePersists(t *testing.T) {
	app, contacts, agent := newBoardApp(t)
	ctx := context.Background()

	c := testutil.NewTestContact(agent.ID, "Ana Pérez")
	require.NoError(t, contacts.Create(ctx, c))

	m := newBoardModel(app, pipeline.NewColumnPrefs(), "")
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	view := d.View()
	assert.Contains(t, view, "Ana Pérez")
	assert.Contains(t, view, "ACTIVO (1)")

	// Grab the card, move it one column right, drop it. The persist Cmd
	// runs synchronously inside the driver.
	d.PressEnter()
	d.PressRight()
	d.PressEnter()

	got, err := contacts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageFollowUp, got.Status)

	view = d.View()
	assert.Contains(t, view, "SEGUIMIENTO (1)")
	assert.Contains(t, view, "ACTIVO (0)")
}

func TestBoard_EndToEndSearch(t *testing.T) {
	app, contacts, agent := newBoardApp(t)
	ctx := context.Background()

	require.NoError(t, contacts.Create(ctx, testutil.NewTestContact(agent.ID, "Ana Pérez")))
	require.NoError(t, contacts.Create(ctx, testutil.NewTestContact(agent.ID, "Bruno Ruiz")))

	m := newBoardModel(app, pipeline.NewColumnPrefs(), "")
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	// The debounce timer Cmd is skipped by the driver; fire it by hand.
	d.PressKey('/')
	d.Type("bruno")
	d.Send(searchDebounceMsg{seq: m.searchSeq})

	view := d.View()
	assert.Contains(t, view, "Bruno Ruiz")
	assert.NotContains(t, view, "Ana Pérez")

	d.PressEsc()
	assert.Contains(t, d.View(), "Ana Pérez")
}

func TestBoard_QuitKey(t *testing.T) {
	app, _, _ := newBoardApp(t)

	m := newBoardModel(app, pipeline.NewColumnPrefs(), "")
	d := teatest.New(t, m)
	d.DrainInit()

	d.PressKey('q')
	assert.True(t, d.Quitting)
}
