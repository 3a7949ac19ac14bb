// Package cache holds the per-domain stores the sync layer reads and
// writes. A store is a single replaceable slot (or keyed map of slots) with
// a fetch timestamp; staleness is the only policy it knows. Stores never
// fail and never evict: entries live for the lifetime of the process, and
// invalidation clears the timestamp while keeping the value so consumers can
// render stale data while a refresh is in flight.
package cache

import "time"

// Domain names one category of cached data. Used for metrics labels and for
// the orchestrator's per-screen domain sets.
type Domain string

const (
	DomainStats         Domain = "stats"
	DomainComplaints    Domain = "complaints"
	DomainDetail        Domain = "complaint_detail"
	DomainUsers         Domain = "users"
	DomainReference     Domain = "reference"
	DomainNotifications Domain = "notifications"
)

// TTLs carries the per-domain freshness windows. Dashboard aggregates,
// complaint lists and detail entries share the 5 minute default; the
// notification feed churns faster and reference lookups barely change.
type TTLs struct {
	Stats         time.Duration
	Complaints    time.Duration
	Detail        time.Duration
	Users         time.Duration
	Reference     time.Duration
	Notifications time.Duration
}

// DefaultTTLs returns the production freshness windows.
func DefaultTTLs() TTLs {
	return TTLs{
		Stats:         5 * time.Minute,
		Complaints:    5 * time.Minute,
		Detail:        5 * time.Minute,
		Users:         5 * time.Minute,
		Reference:     10 * time.Minute,
		Notifications: 2 * time.Minute,
	}
}
