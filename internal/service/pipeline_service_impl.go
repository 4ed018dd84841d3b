package service

import (
	"context"
	"time"

	"github.com/mvaldelvira/corredor/internal/pipeline"
	"github.com/mvaldelvira/corredor/internal/repository"
	"github.com/mvaldelvira/corredor/internal/session"
)

type pipelineService struct {
	contacts repository.ContactRepo
}

func NewPipelineService(contacts repository.ContactRepo) PipelineService {
	return &pipelineService{contacts: contacts}
}

func (s *pipelineService) Move(ctx context.Context, sess session.Session, t pipeline.Transition, movedAt time.Time) error {
	if t.From == t.To {
		return nil
	}

	c, err := s.contacts.GetByID(ctx, t.ContactID)
	if err != nil {
		return err
	}
	if !sess.CanActFor(c.AgentID) {
		return session.ErrForbidden
	}

	return s.contacts.UpdateStage(ctx, t.ContactID, t.To, movedAt.UTC())
}
