package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/mvaldelvira/corredor/internal/domain"
)

// Agent options
type AgentOption func(*domain.Agent)

func WithRole(r domain.Role) AgentOption {
	return func(a *domain.Agent) {
		a.Role = r
	}
}

func WithAgentEmail(email string) AgentOption {
	return func(a *domain.Agent) {
		a.Email = email
	}
}

func NewTestAgent(name string, opts ...AgentOption) *domain.Agent {
	now := time.Now().UTC()
	a := &domain.Agent{
		ID:        uuid.New().String(),
		FullName:  name,
		Email:     name + "@agency.test",
		Role:      domain.RoleAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Contact options
type ContactOption func(*domain.Contact)

func WithStage(s domain.Stage) ContactOption {
	return func(c *domain.Contact) {
		c.Status = s
	}
}

func WithNeed(n domain.NeedType) ContactOption {
	return func(c *domain.Contact) {
		c.Need = n
	}
}

func WithSource(s domain.Source) ContactOption {
	return func(c *domain.Contact) {
		c.Source = s
	}
}

func WithClassification(cl domain.Classification) ContactOption {
	return func(c *domain.Contact) {
		c.Classification = cl
	}
}

func WithContactInfo(email, phone, address string) ContactOption {
	return func(c *domain.Contact) {
		c.Email = email
		c.Phone = phone
		c.Address = address
	}
}

func WithCreatedAt(t time.Time) ContactOption {
	return func(c *domain.Contact) {
		c.CreatedAt = t
		c.UpdatedAt = t
	}
}

func NewTestContact(agentID, name string, opts ...ContactOption) *domain.Contact {
	now := time.Now().UTC()
	c := &domain.Contact{
		ID:             uuid.New().String(),
		AgentID:        agentID,
		FullName:       name,
		Status:         domain.StageActive,
		Need:           domain.NeedBuy,
		Source:         domain.SourceWeb,
		Classification: domain.ClassWarm,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// KPI record options
type KpiOption func(*domain.KpiRecord)

func WithValues(values map[string]float64) KpiOption {
	return func(r *domain.KpiRecord) {
		for k, v := range values {
			r.Values[k] = v
		}
	}
}

func NewTestKpiRecord(agentID string, periodType domain.PeriodType, periodDate time.Time, opts ...KpiOption) *domain.KpiRecord {
	now := time.Now().UTC()
	r := &domain.KpiRecord{
		ID:         uuid.New().String(),
		AgentID:    agentID,
		PeriodType: periodType,
		PeriodDate: periodDate,
		Values:     make(map[string]float64),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Objective options
type ObjectiveOption func(*domain.AgentObjective)

func WithQuarterGoals(q1, q2, q3, q4 float64) ObjectiveOption {
	return func(o *domain.AgentObjective) {
		o.Q1Goal, o.Q2Goal, o.Q3Goal, o.Q4Goal = q1, q2, q3, q4
	}
}

func NewTestObjective(agentID string, year int, annual float64, opts ...ObjectiveOption) *domain.AgentObjective {
	now := time.Now().UTC()
	o := &domain.AgentObjective{
		ID:         uuid.New().String(),
		AgentID:    agentID,
		Year:       year,
		AnnualGoal: annual,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
