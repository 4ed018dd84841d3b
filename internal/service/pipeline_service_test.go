package service

import (
	"context"
	"testing"
	"time"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/pipeline"
	"github.com/mvaldelvira/corredor/internal/repository"
	"github.com/mvaldelvira/corredor/internal/session"
	"github.com/mvaldelvira/corredor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPipelineService(t *testing.T) (PipelineService, repository.ContactRepo, *domain.Agent) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	agents := repository.NewSQLiteAgentRepo(database)
	agent := testutil.NewTestAgent("Carlos Ruiz")
	require.NoError(t, agents.Create(ctx, agent))

	contacts := repository.NewSQLiteContactRepo(database)
	return NewPipelineService(contacts), contacts, agent
}

func TestPipelineService_Move(t *testing.T) {
	svc, contacts, agent := setupPipelineService(t)
	ctx := context.Background()
	sess := ownSession(agent)

	c := testutil.NewTestContact(agent.ID, "Pedro Santos")
	require.NoError(t, contacts.Create(ctx, c))

	tr, ok := pipeline.NewTransition(c, domain.StageFollowUp)
	require.True(t, ok)
	movedAt := time.Date(2025, 5, 1, 10, 30, 0, 0, time.UTC)
	require.NoError(t, svc.Move(ctx, sess, tr, movedAt))

	got, err := contacts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageFollowUp, got.Status)
	assert.Equal(t, movedAt, got.UpdatedAt)
	// Only the stage moved; the rest of the record is untouched.
	assert.Equal(t, c.FullName, got.FullName)
	assert.WithinDuration(t, c.CreatedAt, got.CreatedAt, time.Second)
}

func TestPipelineService_MoveSameStageNoOp(t *testing.T) {
	svc, contacts, agent := setupPipelineService(t)
	ctx := context.Background()

	c := testutil.NewTestContact(agent.ID, "Pedro Santos")
	require.NoError(t, contacts.Create(ctx, c))
	before, err := contacts.GetByID(ctx, c.ID)
	require.NoError(t, err)

	tr := pipeline.Transition{ContactID: c.ID, From: domain.StageActive, To: domain.StageActive}
	require.NoError(t, svc.Move(ctx, ownSession(agent), tr, time.Now()))

	after, err := contacts.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestPipelineService_MoveMissingContact(t *testing.T) {
	svc, _, agent := setupPipelineService(t)

	tr := pipeline.Transition{ContactID: "ghost", From: domain.StageActive, To: domain.StageClosed}
	err := svc.Move(context.Background(), ownSession(agent), tr, time.Now())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPipelineService_MoveForbidden(t *testing.T) {
	svc, contacts, agent := setupPipelineService(t)
	ctx := context.Background()

	c := testutil.NewTestContact(agent.ID, "Pedro Santos")
	require.NoError(t, contacts.Create(ctx, c))

	stranger := session.Session{AgentID: "other", Role: domain.RoleAgent}
	tr := pipeline.Transition{ContactID: c.ID, From: domain.StageActive, To: domain.StageClosed}
	assert.ErrorIs(t, svc.Move(ctx, stranger, tr, time.Now()), session.ErrForbidden)
}
