package service

import (
	"context"
	"time"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/mvaldelvira/corredor/internal/kpi"
	"github.com/mvaldelvira/corredor/internal/pipeline"
	"github.com/mvaldelvira/corredor/internal/session"
)

// KpiService resolves and persists performance records at the exact period
// granularity the viewer has selected.
type KpiService interface {
	// Resolve returns the figures for one agent and period. Weekly and
	// monthly periods without a stored record are synthesized by summing
	// the daily records inside the period window.
	Resolve(ctx context.Context, sess session.Session, agentID string, periodType domain.PeriodType, refDate time.Time) (*kpi.Result, error)
	// Save upserts the record at the exact (agent, period type, aligned
	// date) tuple. Exactly one stored record exists for the tuple afterward.
	Save(ctx context.Context, sess session.Session, agentID string, periodType domain.PeriodType, refDate time.Time, values map[string]float64) (*domain.KpiRecord, error)
}

type ContactService interface {
	Create(ctx context.Context, sess session.Session, c *domain.Contact) error
	GetByID(ctx context.Context, sess session.Session, id string) (*domain.Contact, error)
	// List returns the contacts visible to the viewer: their own for
	// agents, everyone's for coordinators and admins.
	List(ctx context.Context, sess session.Session) ([]*domain.Contact, error)
	Update(ctx context.Context, sess session.Session, c *domain.Contact) error
	Delete(ctx context.Context, sess session.Session, id string) error
}

// PipelineService persists board stage transitions.
type PipelineService interface {
	// Move writes the transition's target stage and timestamp for one
	// contact. A transition whose target equals its origin is a no-op.
	Move(ctx context.Context, sess session.Session, t pipeline.Transition, movedAt time.Time) error
}

type ObjectiveService interface {
	// Get returns the objective for (agent, year), or a zero-valued
	// objective when none is stored.
	Get(ctx context.Context, sess session.Session, agentID string, year int) (*domain.AgentObjective, error)
	// Save upserts by (agent, year).
	Save(ctx context.Context, sess session.Session, o *domain.AgentObjective) error
	ListByAgent(ctx context.Context, sess session.Session, agentID string) ([]*domain.AgentObjective, error)
}

type AgentService interface {
	Create(ctx context.Context, a *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	List(ctx context.Context) ([]*domain.Agent, error)
}
