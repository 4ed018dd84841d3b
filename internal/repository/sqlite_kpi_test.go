package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/kpi"
	"github.com/mvaldelvira/corredor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kpiTestSetup(t *testing.T) (*SQLiteKpiRepo, *domain.Agent) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	agentRepo := NewSQLiteAgentRepo(database)
	kpiRepo := NewSQLiteKpiRepo(database)

	agent := testutil.NewTestAgent("Marta López")
	require.NoError(t, agentRepo.Create(ctx, agent))
	return kpiRepo, agent
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestKpiRepo_CreateAndGetByPeriod(t *testing.T) {
	repo, agent := kpiTestSetup(t)
	ctx := context.Background()

	rec := testutil.NewTestKpiRecord(agent.ID, domain.PeriodDaily, day(2025, 3, 10),
		testutil.WithValues(map[string]float64{"llamadas": 4, "facturacion_venta": 1200.50}))
	require.NoError(t, repo.Create(ctx, rec))

	fetched, err := repo.GetByPeriod(ctx, agent.ID, domain.PeriodDaily, day(2025, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, 4.0, fetched.Values["llamadas"])
	assert.Equal(t, 1200.50, fetched.Values["facturacion_venta"])
	// Every schema key is present, zero when never written.
	assert.Len(t, fetched.Values, len(kpi.Schema))
	assert.Equal(t, 0.0, fetched.Values["referidos"])
}

func TestKpiRepo_GetByPeriod_NotFound(t *testing.T) {
	repo, agent := kpiTestSetup(t)

	_, err := repo.GetByPeriod(context.Background(), agent.ID, domain.PeriodWeekly, day(2025, 3, 10))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKpiRepo_Update(t *testing.T) {
	repo, agent := kpiTestSetup(t)
	ctx := context.Background()

	rec := testutil.NewTestKpiRecord(agent.ID, domain.PeriodWeekly, day(2025, 3, 10),
		testutil.WithValues(map[string]float64{"ventas": 1}))
	require.NoError(t, repo.Create(ctx, rec))

	rec.Values["ventas"] = 3
	rec.Values["alquileres"] = 2
	rec.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, rec))

	fetched, err := repo.GetByPeriod(ctx, agent.ID, domain.PeriodWeekly, day(2025, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, 3.0, fetched.Values["ventas"])
	assert.Equal(t, 2.0, fetched.Values["alquileres"])
}

func TestKpiRepo_ListDailyInWindow(t *testing.T) {
	repo, agent := kpiTestSetup(t)
	ctx := context.Background()

	// Monday-week window: 2025-03-10 .. 2025-03-16.
	inside1 := testutil.NewTestKpiRecord(agent.ID, domain.PeriodDaily, day(2025, 3, 10))
	inside2 := testutil.NewTestKpiRecord(agent.ID, domain.PeriodDaily, day(2025, 3, 16))
	before := testutil.NewTestKpiRecord(agent.ID, domain.PeriodDaily, day(2025, 3, 9))
	after := testutil.NewTestKpiRecord(agent.ID, domain.PeriodDaily, day(2025, 3, 17))
	// Weekly records never appear in the daily window scan.
	weekly := testutil.NewTestKpiRecord(agent.ID, domain.PeriodWeekly, day(2025, 3, 10))

	for _, rec := range []*domain.KpiRecord{inside1, inside2, before, after, weekly} {
		require.NoError(t, repo.Create(ctx, rec))
	}

	list, err := repo.ListDailyInWindow(ctx, agent.ID, day(2025, 3, 10), day(2025, 3, 17))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, day(2025, 3, 10), list[0].PeriodDate)
	assert.Equal(t, day(2025, 3, 16), list[1].PeriodDate)
}

func TestKpiRepo_ListDailyInWindow_ScopedByAgent(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	agentRepo := NewSQLiteAgentRepo(database)
	repo := NewSQLiteKpiRepo(database)

	a1 := testutil.NewTestAgent("Uno")
	a2 := testutil.NewTestAgent("Dos")
	require.NoError(t, agentRepo.Create(ctx, a1))
	require.NoError(t, agentRepo.Create(ctx, a2))

	require.NoError(t, repo.Create(ctx, testutil.NewTestKpiRecord(a1.ID, domain.PeriodDaily, day(2025, 3, 11))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestKpiRecord(a2.ID, domain.PeriodDaily, day(2025, 3, 11))))

	list, err := repo.ListDailyInWindow(ctx, a1.ID, day(2025, 3, 10), day(2025, 3, 17))
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, a1.ID, list[0].AgentID)
}

func TestKpiRepo_Delete(t *testing.T) {
	repo, agent := kpiTestSetup(t)
	ctx := context.Background()

	rec := testutil.NewTestKpiRecord(agent.ID, domain.PeriodDaily, day(2025, 3, 10))
	require.NoError(t, repo.Create(ctx, rec))
	require.NoError(t, repo.Delete(ctx, rec.ID))

	_, err := repo.GetByPeriod(ctx, agent.ID, domain.PeriodDaily, day(2025, 3, 10))
	assert.ErrorIs(t, err, ErrNotFound)
}
