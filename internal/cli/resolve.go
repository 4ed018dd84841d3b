package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvaldelvira/corredor/internal/domain"
)

// resolveContactID accepts a full UUID or a unique prefix and returns the
// matching contact's ID.
func resolveContactID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("contact ID is required")
	}

	contacts, err := app.Contacts.List(ctx, app.Session)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, c := range contacts {
		if c.ID == input {
			return c.ID, nil
		}
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("contact not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("contact ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveAgentID maps the --agent flag to an agent ID: empty means the
// signed-in viewer, otherwise an email or ID/prefix of a known agent.
func resolveAgentID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return app.Session.AgentID, nil
	}

	agents, err := app.Agents.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, a := range agents {
		if a.ID == input || strings.EqualFold(a.Email, input) {
			return a.ID, nil
		}
		if strings.HasPrefix(a.ID, input) {
			matches = append(matches, a.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("agent not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("agent %q is ambiguous (%d matches)", input, len(matches))
	}
}

// parsePeriodType maps the --period flag to a domain period type.
func parsePeriodType(s string) (domain.PeriodType, error) {
	if s == "" {
		return domain.PeriodDaily, nil
	}
	if !domain.ValidPeriodTypes[s] {
		return "", fmt.Errorf("invalid period %q (daily|weekly|monthly)", s)
	}
	return domain.PeriodType(s), nil
}
