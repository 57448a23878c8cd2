package storage

import (
	"strings"

	"github.com/avolkov/skyfare/internal/domain"
)

// MatchesFilter reports whether a flight satisfies the listing filter.
// Origin and destination use case-insensitive substring matching, the date
// an exact match. Shared by the adapters that filter in process.
func MatchesFilter(f domain.Flight, filter domain.FlightFilter) bool {
	if filter.Origin != "" && !containsFold(f.Origin, filter.Origin) {
		return false
	}
	if filter.Destination != "" && !containsFold(f.Destination, filter.Destination) {
		return false
	}
	if filter.Date != "" && f.Date != filter.Date {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
