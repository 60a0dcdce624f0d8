// internal/domain/models/duration.go
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDurationSeconds reads an author-supplied lecture duration string as
// a number of seconds. Non-numeric values count as zero so one bad lecture
// record cannot break a whole course view.
func ParseDurationSeconds(s string) int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return int(v)
}

// FormatDuration renders a second count as "2h 5m", "4m 10s", or "45s".
func FormatDuration(total int) string {
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
