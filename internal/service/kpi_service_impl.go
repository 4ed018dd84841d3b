package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mvaldelvira/corredor/internal/db"
	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/kpi"
	"github.com/mvaldelvira/corredor/internal/repository"
	"github.com/mvaldelvira/corredor/internal/session"
	"golang.org/x/sync/errgroup"
)

type kpiService struct {
	kpis repository.KpiRepo
	uow  db.UnitOfWork
}

func NewKpiService(kpis repository.KpiRepo, uow db.UnitOfWork) KpiService {
	return &kpiService{kpis: kpis, uow: uow}
}

func (s *kpiService) Resolve(ctx context.Context, sess session.Session, agentID string, periodType domain.PeriodType, refDate time.Time) (*kpi.Result, error) {
	if !sess.CanActFor(agentID) {
		return nil, session.ErrForbidden
	}

	aligned := kpi.AlignPeriod(periodType, refDate)
	result := &kpi.Result{
		AgentID:    agentID,
		PeriodType: periodType,
		PeriodDate: aligned,
	}

	if periodType == domain.PeriodDaily {
		rec, err := s.kpis.GetByPeriod(ctx, agentID, periodType, aligned)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				result.Values = kpi.ZeroValues()
				result.DailySum = kpi.ZeroValues()
				return result, nil
			}
			return nil, err
		}
		result.Values = kpi.Normalize(rec.Values)
		result.DailySum = kpi.Normalize(rec.Values)
		result.Manual = true
		return result, nil
	}

	// Weekly and monthly: fetch the manual record at this exact granularity
	// and the daily records inside the window concurrently.
	start, end := kpi.PeriodWindow(periodType, aligned)

	var manual *domain.KpiRecord
	var dailies []*domain.KpiRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rec, err := s.kpis.GetByPeriod(gctx, agentID, periodType, aligned)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		manual = rec
		return nil
	})
	g.Go(func() error {
		recs, err := s.kpis.ListDailyInWindow(gctx, agentID, start, end)
		if err != nil {
			return err
		}
		dailies = recs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.DailySum = kpi.SumDailies(dailies)
	if manual != nil {
		// A saved override wins at read time; the synthesized sum rides
		// along so the caller can show the divergence.
		result.Values = kpi.Normalize(manual.Values)
		result.Manual = true
	} else {
		result.Values = result.DailySum
		result.Synthesized = true
	}
	return result, nil
}

func (s *kpiService) Save(ctx context.Context, sess session.Session, agentID string, periodType domain.PeriodType, refDate time.Time, values map[string]float64) (*domain.KpiRecord, error) {
	if !sess.CanActFor(agentID) {
		return nil, session.ErrForbidden
	}

	aligned := kpi.AlignPeriod(periodType, refDate)
	now := time.Now().UTC()

	var saved *domain.KpiRecord
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteKpiRepo(tx)

		existing, err := repo.GetByPeriod(ctx, agentID, periodType, aligned)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if existing != nil {
			existing.Values = kpi.Normalize(values)
			existing.UpdatedAt = now
			if err := repo.Update(ctx, existing); err != nil {
				return err
			}
			saved = existing
			return nil
		}

		rec := &domain.KpiRecord{
			ID:         uuid.New().String(),
			AgentID:    agentID,
			PeriodType: periodType,
			PeriodDate: aligned,
			Values:     kpi.Normalize(values),
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := repo.Create(ctx, rec); err != nil {
			return err
		}
		saved = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
