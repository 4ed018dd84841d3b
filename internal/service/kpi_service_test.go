package service

import (
	"context"
	"testing"
	"time"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/repository"
	"github.com/mvaldelvira/corredor/internal/session"
	"github.com/mvaldelvira/corredor/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupKpiService(t *testing.T) (KpiService, repository.KpiRepo, *domain.Agent) {
	t.Helper()
	database := testutil.NewTestDB(t)
	agents := repository.NewSQLiteAgentRepo(database)
	kpis := repository.NewSQLiteKpiRepo(database)

	agent := testutil.NewTestAgent("Carlos Ruiz")
	require.NoError(t, agents.Create(context.Background(), agent))

	svc := NewKpiService(kpis, testutil.NewTestUoW(database))
	return svc, kpis, agent
}

func ownSession(a *domain.Agent) session.Session {
	return session.Session{AgentID: a.ID, Role: a.Role}
}

func TestKpiService_ResolveDaily(t *testing.T) {
	svc, kpis, agent := setupKpiService(t)
	ctx := context.Background()
	sess := ownSession(agent)
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	// No record yet: all zeros, neither manual nor synthesized.
	res, err := svc.Resolve(ctx, sess, agent.ID, domain.PeriodDaily, day)
	require.NoError(t, err)
	assert.False(t, res.Manual)
	assert.Zero(t, res.Values["llamadas"])

	rec := testutil.NewTestKpiRecord(agent.ID, domain.PeriodDaily, day,
		testutil.WithValues(map[string]float64{"llamadas": 4, "visitas": 1}))
	require.NoError(t, kpis.Create(ctx, rec))

	res, err = svc.Resolve(ctx, sess, agent.ID, domain.PeriodDaily, day)
	require.NoError(t, err)
	assert.True(t, res.Manual)
	assert.Equal(t, 4.0, res.Values["llamadas"])
	assert.Equal(t, 1.0, res.Values["visitas"])
}

func TestKpiService_ResolveWeekly_Synthesized(t *testing.T) {
	svc, kpis, agent := setupKpiService(t)
	ctx := context.Background()
	sess := ownSession(agent)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for i, calls := range []float64{2, 3, 5} {
		rec := testutil.NewTestKpiRecord(agent.ID, domain.PeriodDaily, monday.AddDate(0, 0, i),
			testutil.WithValues(map[string]float64{"llamadas": calls}))
		require.NoError(t, kpis.Create(ctx, rec))
	}
	// A daily record in the following week must not leak in.
	outside := testutil.NewTestKpiRecord(agent.ID, domain.PeriodDaily, monday.AddDate(0, 0, 7),
		testutil.WithValues(map[string]float64{"llamadas": 100}))
	require.NoError(t, kpis.Create(ctx, outside))

	// Resolving from mid-week aligns back to Monday.
	res, err := svc.Resolve(ctx, sess, agent.ID, domain.PeriodWeekly, monday.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.True(t, res.Synthesized)
	assert.False(t, res.Manual)
	assert.Equal(t, monday, res.PeriodDate)
	assert.Equal(t, 10.0, res.Values["llamadas"])
	assert.Equal(t, 10.0, res.DailySum["llamadas"])
}

func TestKpiService_ResolveWeekly_OverrideWins(t *testing.T) {
	svc, kpis, agent := setupKpiService(t)
	ctx := context.Background()
	sess := ownSession(agent)

	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	daily := testutil.NewTestKpiRecord(agent.ID, domain.PeriodDaily, monday,
		testutil.WithValues(map[string]float64{"llamadas": 3}))
	require.NoError(t, kpis.Create(ctx, daily))

	manual := testutil.NewTestKpiRecord(agent.ID, domain.PeriodWeekly, monday,
		testutil.WithValues(map[string]float64{"llamadas": 20}))
	require.NoError(t, kpis.Create(ctx, manual))

	res, err := svc.Resolve(ctx, sess, agent.ID, domain.PeriodWeekly, monday)
	require.NoError(t, err)
	assert.True(t, res.Manual)
	assert.Equal(t, 20.0, res.Values["llamadas"])
	assert.Equal(t, 3.0, res.DailySum["llamadas"])
	assert.True(t, res.Diverged())
}

func TestKpiService_SaveUpserts(t *testing.T) {
	svc, _, agent := setupKpiService(t)
	ctx := context.Background()
	sess := ownSession(agent)
	day := time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)

	first, err := svc.Save(ctx, sess, agent.ID, domain.PeriodDaily, day,
		map[string]float64{"reuniones": 2})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := svc.Save(ctx, sess, agent.ID, domain.PeriodDaily, day,
		map[string]float64{"reuniones": 5})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	res, err := svc.Resolve(ctx, sess, agent.ID, domain.PeriodDaily, day)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Values["reuniones"])
	// Unwritten fields are stored as zero, not left missing.
	assert.Zero(t, res.Values["ventas"])
}

func TestKpiService_SaveAlignsPeriodDate(t *testing.T) {
	svc, _, agent := setupKpiService(t)
	ctx := context.Background()
	sess := ownSession(agent)

	// A Wednesday reference date lands on that week's Monday.
	wednesday := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	rec, err := svc.Save(ctx, sess, agent.ID, domain.PeriodWeekly, wednesday,
		map[string]float64{"contactos_nuevos": 7})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), rec.PeriodDate)

	// Monthly save aligns to the first of the month.
	rec, err = svc.Save(ctx, sess, agent.ID, domain.PeriodMonthly, wednesday,
		map[string]float64{"contactos_nuevos": 7})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), rec.PeriodDate)
}

func TestKpiService_ForbiddenAcrossAgents(t *testing.T) {
	svc, _, agent := setupKpiService(t)
	ctx := context.Background()
	other := session.Session{AgentID: "someone-else", Role: domain.RoleAgent}

	_, err := svc.Resolve(ctx, other, agent.ID, domain.PeriodDaily, time.Now())
	assert.ErrorIs(t, err, session.ErrForbidden)

	_, err = svc.Save(ctx, other, agent.ID, domain.PeriodDaily, time.Now(), nil)
	assert.ErrorIs(t, err, session.ErrForbidden)

	// Coordinators may act for any agent.
	coord := session.Session{AgentID: "someone-else", Role: domain.RoleCoordinator}
	_, err = svc.Resolve(ctx, coord, agent.ID, domain.PeriodDaily, time.Now())
	assert.NoError(t, err)
}
