package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mvaldelvira/corredor/internal/db"
	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/repository"
	"github.com/mvaldelvira/corredor/internal/session"
)

type objectiveService struct {
	objectives repository.ObjectiveRepo
	uow        db.UnitOfWork
}

func NewObjectiveService(objectives repository.ObjectiveRepo, uow db.UnitOfWork) ObjectiveService {
	return &objectiveService{objectives: objectives, uow: uow}
}

func (s *objectiveService) Get(ctx context.Context, sess session.Session, agentID string, year int) (*domain.AgentObjective, error) {
	if !sess.CanActFor(agentID) {
		return nil, session.ErrForbidden
	}
	o, err := s.objectives.GetByYear(ctx, agentID, year)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.AgentObjective{AgentID: agentID, Year: year}, nil
		}
		return nil, err
	}
	return o, nil
}

func (s *objectiveService) Save(ctx context.Context, sess session.Session, o *domain.AgentObjective) error {
	if !sess.CanActFor(o.AgentID) {
		return session.ErrForbidden
	}
	if o.Year < 2000 || o.Year > 2100 {
		return fmt.Errorf("invalid year %d", o.Year)
	}

	now := time.Now().UTC()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteObjectiveRepo(tx)

		existing, err := repo.GetByYear(ctx, o.AgentID, o.Year)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if existing != nil {
			o.ID = existing.ID
			o.CreatedAt = existing.CreatedAt
			o.UpdatedAt = now
			return repo.Update(ctx, o)
		}

		o.ID = uuid.New().String()
		o.CreatedAt = now
		o.UpdatedAt = now
		return repo.Create(ctx, o)
	})
}

func (s *objectiveService) ListByAgent(ctx context.Context, sess session.Session, agentID string) ([]*domain.AgentObjective, error) {
	if !sess.CanActFor(agentID) {
		return nil, session.ErrForbidden
	}
	return s.objectives.ListByAgent(ctx, agentID)
}
