package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/repository"
	"github.com/mvaldelvira/corredor/internal/session"
)

type contactService struct {
	contacts repository.ContactRepo
}

func NewContactService(contacts repository.ContactRepo) ContactService {
	return &contactService{contacts: contacts}
}

func (s *contactService) Create(ctx context.Context, sess session.Session, c *domain.Contact) error {
	if c.FullName == "" {
		return fmt.Errorf("contact name is required")
	}
	if c.AgentID == "" {
		c.AgentID = sess.AgentID
	}
	if !sess.CanActFor(c.AgentID) {
		return session.ErrForbidden
	}
	if c.Status == "" {
		c.Status = domain.DefaultStage
	}
	if !domain.ValidStage(c.Status) {
		return fmt.Errorf("invalid stage %q", c.Status)
	}

	c.ID = uuid.New().String()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.contacts.Create(ctx, c)
}

func (s *contactService) GetByID(ctx context.Context, sess session.Session, id string) (*domain.Contact, error) {
	c, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.CanActFor(c.AgentID) {
		return nil, session.ErrForbidden
	}
	return c, nil
}

func (s *contactService) List(ctx context.Context, sess session.Session) ([]*domain.Contact, error) {
	if sess.CanReadAllAgents() {
		return s.contacts.ListAll(ctx)
	}
	return s.contacts.ListByAgent(ctx, sess.AgentID)
}

func (s *contactService) Update(ctx context.Context, sess session.Session, c *domain.Contact) error {
	existing, err := s.contacts.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if !sess.CanActFor(existing.AgentID) {
		return session.ErrForbidden
	}
	if !domain.ValidStage(c.Status) {
		return fmt.Errorf("invalid stage %q", c.Status)
	}

	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	return s.contacts.Update(ctx, c)
}

func (s *contactService) Delete(ctx context.Context, sess session.Session, id string) error {
	existing, err := s.contacts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !sess.CanActFor(existing.AgentID) {
		return session.ErrForbidden
	}
	return s.contacts.Delete(ctx, id)
}
