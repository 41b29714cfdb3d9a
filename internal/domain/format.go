package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Shared display formatting. Monetary values are advisory until the core API
// persists them, so float64 with two-decimal display formatting is the
// contract here, not integer cents.

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatMoney renders a monetary value with exactly two decimal places.
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", Round2(v))
}

// FormatDate renders a timestamp the way the dashboards display submission
// dates ("Jan 2, 2006").
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDateString parses an ISO date or RFC3339 timestamp and renders it
// for display. Unparseable or empty input yields "TBD".
func FormatDateString(s string) string {
	if s == "" {
		return "TBD"
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return FormatDate(t)
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return FormatDate(t)
	}
	return "TBD"
}

// apiVersionSuffix is the path suffix the core API mounts its REST routes
// under. Static files are served from the bare origin.
const apiVersionSuffix = "/api/v1"

// FileURL builds an absolute URL for a server-relative file path returned in
// asset and proposal records: the configured API base loses its version
// suffix, Windows path separators are normalized, and the two halves are
// joined with a single slash.
func FileURL(apiBase, filePath string) string {
	base := strings.TrimSuffix(strings.TrimRight(apiBase, "/"), apiVersionSuffix)
	clean := strings.ReplaceAll(filePath, `\`, "/")
	return base + "/" + strings.TrimPrefix(clean, "/")
}
