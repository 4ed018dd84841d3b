package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mvaldelvira/corredor/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type AgentRepo interface {
	Create(ctx context.Context, a *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
	List(ctx context.Context) ([]*domain.Agent, error)
	Update(ctx context.Context, a *domain.Agent) error
	Delete(ctx context.Context, id string) error
}

type ContactRepo interface {
	Create(ctx context.Context, c *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	// ListByAgent returns the contacts owned by one agent; ListAll returns
	// every contact and is reserved for coordinator/admin viewers.
	ListByAgent(ctx context.Context, agentID string) ([]*domain.Contact, error)
	ListAll(ctx context.Context) ([]*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) error
	// UpdateStage writes only status and updated_at for one contact.
	UpdateStage(ctx context.Context, id string, stage domain.Stage, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type KpiRepo interface {
	Create(ctx context.Context, rec *domain.KpiRecord) error
	Update(ctx context.Context, rec *domain.KpiRecord) error
	// GetByPeriod fetches the record at the exact (agent, type, date) tuple.
	GetByPeriod(ctx context.Context, agentID string, periodType domain.PeriodType, periodDate time.Time) (*domain.KpiRecord, error)
	// ListDailyInWindow returns the agent's daily records with
	// start <= period_date < end, ordered by period_date.
	ListDailyInWindow(ctx context.Context, agentID string, start, end time.Time) ([]*domain.KpiRecord, error)
	Delete(ctx context.Context, id string) error
}

type ObjectiveRepo interface {
	Create(ctx context.Context, o *domain.AgentObjective) error
	Update(ctx context.Context, o *domain.AgentObjective) error
	GetByYear(ctx context.Context, agentID string, year int) (*domain.AgentObjective, error)
	ListByAgent(ctx context.Context, agentID string) ([]*domain.AgentObjective, error)
}
