package pipeline

import (
	"strings"
	"time"

	"github.com/mvaldelvira/corredor/internal/domain"
)

// Filter is a read-side projection over the contact set. Zero-valued fields
// are inactive; active criteria compose with logical AND.
type Filter struct {
	// Search matches case-insensitive substrings of name, email, phone
	// and address.
	Search string

	Status         domain.Stage
	Need           domain.NeedType
	Source         domain.Source
	Classification domain.Classification

	// CreatedFrom/CreatedTo bound the creation date, both ends inclusive,
	// compared at day granularity.
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// Match reports whether the contact satisfies every active criterion.
func (f Filter) Match(c *domain.Contact) bool {
	if f.Search != "" && !matchesSearch(c, f.Search) {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Need != "" && c.Need != f.Need {
		return false
	}
	if f.Source != "" && c.Source != f.Source {
		return false
	}
	if f.Classification != "" && c.Classification != f.Classification {
		return false
	}
	created := truncateDay(c.CreatedAt)
	if f.CreatedFrom != nil && created.Before(truncateDay(*f.CreatedFrom)) {
		return false
	}
	if f.CreatedTo != nil && created.After(truncateDay(*f.CreatedTo)) {
		return false
	}
	return true
}

// Apply returns the contacts matching the filter, preserving input order.
func (f Filter) Apply(contacts []*domain.Contact) []*domain.Contact {
	var out []*domain.Contact
	for _, c := range contacts {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

func matchesSearch(c *domain.Contact, term string) bool {
	needle := strings.ToLower(term)
	for _, hay := range []string{c.FullName, c.Email, c.Phone, c.Address} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
