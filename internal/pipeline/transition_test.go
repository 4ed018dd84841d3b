package pipeline

import (
	"testing"
	"time"

	"github.com/mvaldelvira/corredor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contact(id string, stage domain.Stage) *domain.Contact {
	created := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	return &domain.Contact{
		ID:        id,
		AgentID:   "agent-1",
		FullName:  "Contacto " + id,
		Status:    stage,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestNewTransition_SelfDropIsNoOp(t *testing.T) {
	c := contact("c1", domain.StageActive)
	before := c.UpdatedAt

	_, ok := NewTransition(c, domain.StageActive)
	assert.False(t, ok, "dropping onto the current stage must not produce a command")
	assert.Equal(t, before, c.UpdatedAt)
}

func TestNewTransition_UnknownTargetRejected(t *testing.T) {
	c := contact("c1", domain.StageActive)
	_, ok := NewTransition(c, domain.Stage("limbo"))
	assert.False(t, ok)
}

func TestTransition_ApplyRefreshesStageAndTimestamp(t *testing.T) {
	c := contact("c1", domain.StageActive)
	list := []*domain.Contact{c, contact("c2", domain.StageFollowUp)}

	tr, ok := NewTransition(c, domain.StageClosed)
	require.True(t, ok)

	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	require.True(t, tr.Apply(list, now))

	assert.Equal(t, domain.StageClosed, c.Status)
	assert.Equal(t, now, c.UpdatedAt)
	// The other contact is untouched.
	assert.Equal(t, domain.StageFollowUp, list[1].Status)
}

func TestTransition_RollbackRestoresPriorState(t *testing.T) {
	c := contact("c1", domain.StageFollowUp)
	list := []*domain.Contact{c}
	beforeStage := c.Status
	beforeUpdated := c.UpdatedAt

	tr, ok := NewTransition(c, domain.StageArchived)
	require.True(t, ok)
	require.True(t, tr.Apply(list, time.Now().UTC()))
	require.Equal(t, domain.StageArchived, c.Status)

	// Remote write failed: the displayed stage must equal the stage before
	// the attempt began.
	require.True(t, tr.Rollback(list))
	assert.Equal(t, beforeStage, c.Status)
	assert.Equal(t, beforeUpdated, c.UpdatedAt)
}

func TestTransition_ApplyMissingContact(t *testing.T) {
	tr := Transition{ContactID: "ghost", From: domain.StageActive, To: domain.StageClosed}
	assert.False(t, tr.Apply(nil, time.Now()))
	assert.False(t, tr.Rollback(nil))
}

func TestGroupByStage(t *testing.T) {
	list := []*domain.Contact{
		contact("c1", domain.StageActive),
		contact("c2", domain.StageActive),
		contact("c3", domain.StageArchived),
		contact("c4", ""), // absent status defaults to the first stage
	}

	columns := GroupByStage(list)
	assert.Len(t, columns[domain.StageActive], 3)
	assert.Len(t, columns[domain.StageArchived], 1)
	assert.Empty(t, columns[domain.StageClosed])
}
