package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/repository"
)

type agentService struct {
	agents repository.AgentRepo
}

func NewAgentService(agents repository.AgentRepo) AgentService {
	return &agentService{agents: agents}
}

func (s *agentService) Create(ctx context.Context, a *domain.Agent) error {
	if a.FullName == "" || a.Email == "" {
		return fmt.Errorf("agent name and email are required")
	}
	if a.Role == "" {
		a.Role = domain.RoleAgent
	}

	a.ID = uuid.New().String()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.agents.Create(ctx, a)
}

func (s *agentService) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	return s.agents.GetByID(ctx, id)
}

func (s *agentService) List(ctx context.Context) ([]*domain.Agent, error) {
	return s.agents.List(ctx)
}
