package repository

import (
	"fmt"
	"time"
)

// dateLayout stores period anchors as plain dates; full timestamps use
// RFC 3339.
const dateLayout = "2006-01-02"

func parseTime(s, layout, field string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", field, err)
	}
	return t, nil
}
