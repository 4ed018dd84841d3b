package repository

import (
	"context"
	"testing"

	"github.com/mvaldelvira/corredor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectiveRepo_CreateGetUpdate(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	agentRepo := NewSQLiteAgentRepo(database)
	repo := NewSQLiteObjectiveRepo(database)

	agent := testutil.NewTestAgent("Marta López")
	require.NoError(t, agentRepo.Create(ctx, agent))

	o := testutil.NewTestObjective(agent.ID, 2025, 120000,
		testutil.WithQuarterGoals(20000, 30000, 30000, 40000))
	require.NoError(t, repo.Create(ctx, o))

	fetched, err := repo.GetByYear(ctx, agent.ID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 120000.0, fetched.AnnualGoal)
	assert.Equal(t, 30000.0, fetched.Q2Goal)

	// Quarterly goals are free-standing; no sum constraint applies.
	fetched.Q4Goal = 99999
	require.NoError(t, repo.Update(ctx, fetched))

	again, err := repo.GetByYear(ctx, agent.ID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 99999.0, again.Q4Goal)
}

func TestObjectiveRepo_GetByYear_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteObjectiveRepo(database)

	_, err := repo.GetByYear(context.Background(), "nobody", 2025)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestObjectiveRepo_ListByAgent(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	agentRepo := NewSQLiteAgentRepo(database)
	repo := NewSQLiteObjectiveRepo(database)

	agent := testutil.NewTestAgent("Marta López")
	require.NoError(t, agentRepo.Create(ctx, agent))

	require.NoError(t, repo.Create(ctx, testutil.NewTestObjective(agent.ID, 2025, 100000)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestObjective(agent.ID, 2024, 90000)))

	list, err := repo.ListByAgent(ctx, agent.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2024, list[0].Year)
	assert.Equal(t, 2025, list[1].Year)
}
