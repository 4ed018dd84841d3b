package pipeline

import (
	"time"

	"github.com/mvaldelvira/corredor/internal/domain"
)

// Transition is the command produced by dropping a contact onto a stage
// column. It carries enough state to be applied optimistically to the local
// contact set and reversed if the remote write fails.
type Transition struct {
	ContactID string
	From      domain.Stage
	To        domain.Stage

	// prevUpdatedAt restores the contact's timestamp on rollback.
	prevUpdatedAt time.Time
}

// NewTransition builds the transition for moving contact to target.
// Returns ok=false when the drop is a no-op (target equals the current
// stage) or the target is not a declared stage; no command should be
// applied and no remote write issued in that case.
func NewTransition(contact *domain.Contact, target domain.Stage) (Transition, bool) {
	if !domain.ValidStage(target) || contact.Status == target {
		return Transition{}, false
	}
	return Transition{
		ContactID:     contact.ID,
		From:          contact.Status,
		To:            target,
		prevUpdatedAt: contact.UpdatedAt,
	}, true
}

// Invert returns the command that undoes t, including the timestamp the
// contact carried before the optimistic update.
func (t Transition) Invert() Transition {
	return Transition{
		ContactID:     t.ContactID,
		From:          t.To,
		To:            t.From,
		prevUpdatedAt: t.prevUpdatedAt,
	}
}

// Apply mutates the matching contact in the local list: stage set to t.To,
// UpdatedAt refreshed to now. Returns false when the contact is absent.
func (t Transition) Apply(contacts []*domain.Contact, now time.Time) bool {
	for _, c := range contacts {
		if c.ID == t.ContactID {
			c.Status = t.To
			c.UpdatedAt = now
			return true
		}
	}
	return false
}

// Rollback restores the stage and timestamp the contact had before the
// transition was applied.
func (t Transition) Rollback(contacts []*domain.Contact) bool {
	inv := t.Invert()
	for _, c := range contacts {
		if c.ID == inv.ContactID {
			c.Status = inv.To
			c.UpdatedAt = inv.prevUpdatedAt
			return true
		}
	}
	return false
}

// GroupByStage buckets contacts into board columns. Contacts with an
// unknown or empty status land in the default stage column.
func GroupByStage(contacts []*domain.Contact) map[domain.Stage][]*domain.Contact {
	columns := make(map[domain.Stage][]*domain.Contact, len(domain.Stages))
	for _, s := range domain.Stages {
		columns[s] = nil
	}
	for _, c := range contacts {
		stage := c.Status
		if !domain.ValidStage(stage) {
			stage = domain.DefaultStage
		}
		columns[stage] = append(columns[stage], c)
	}
	return columns
}
