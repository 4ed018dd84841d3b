package formatter

import (
	"fmt"
	"strings"

	"github.com/mvaldelvira/corredor/internal/domain"
)

// FormatContactList renders contacts as a table: short id, name, stage,
// need, classification and phone.
func FormatContactList(contacts []*domain.Contact) string {
	headers := []string{"ID", "Name", "Stage", "Need", "Class", "Phone"}
	rows := make([][]string, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, []string{
			ShortID(c.ID),
			c.FullName,
			StageColor(c.Status).Render(string(c.Status)),
			string(c.Need),
			ClassificationIndicator(c.Classification),
			c.Phone,
		})
	}
	return RenderTable(headers, rows)
}

// FormatContactInspect renders the full detail view for one contact.
func FormatContactInspect(c *domain.Contact) string {
	var b strings.Builder
	b.WriteString(Header(c.FullName))
	b.WriteString("\n\n")

	pairs := [][2]string{
		{"ID", c.ID},
		{"Stage", StageColor(c.Status).Render(string(c.Status))},
		{"Need", string(c.Need)},
		{"Source", string(c.Source)},
		{"Class", ClassificationIndicator(c.Classification)},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Address", c.Address},
		{"Created", c.CreatedAt.Format("2006-01-02")},
		{"Updated", c.UpdatedAt.Format("2006-01-02")},
	}
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-8s", p[0])), p[1])
	}

	if c.Notes != "" {
		b.WriteString("\n" + Dim("Notes") + "\n" + c.Notes + "\n")
	}
	return b.String()
}

// ShortID truncates a UUID to its first 8 characters for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
