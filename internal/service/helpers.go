package service

import (
	"fmt"
	"time"
)

// parseDate parses a validated "2006-01-02" or RFC3339 date into UTC.
func parseDate(str string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", str)
	if err != nil {
		t, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date %q: %w", str, err)
		}
	}
	return t.UTC(), nil
}
