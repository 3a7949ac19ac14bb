package cache

import (
	"redress/internal/portal/models"
	"redress/pkg/platform/clock"
)

// Service bundles one store per domain. It is constructed explicitly and
// injected wherever caching is needed; there is no shared global state, so
// each test builds an isolated instance.
type Service struct {
	Stats         *Store[models.Stats]
	Complaints    *Store[[]models.Complaint]
	Details       DetailStore
	Users         *Store[[]models.User]
	Reference     *Store[models.Reference]
	Notifications *Store[[]models.Notification]
}

// Option configures a Service.
type Option func(*Service, TTLs, clock.Clock)

// WithDetailStore swaps the complaint-detail backend, e.g. for the
// Redis-backed variant.
func WithDetailStore(ds DetailStore) Option {
	return func(s *Service, _ TTLs, _ clock.Clock) {
		s.Details = ds
	}
}

// NewService creates the full set of domain stores. A nil clock defaults to
// the wall clock.
func NewService(ttl TTLs, clk clock.Clock, opts ...Option) *Service {
	if clk == nil {
		clk = clock.New()
	}
	s := &Service{
		Stats:         NewStore[models.Stats](DomainStats, ttl.Stats, clk),
		Complaints:    NewStore[[]models.Complaint](DomainComplaints, ttl.Complaints, clk),
		Details:       NewMemoryDetailStore(ttl, clk),
		Users:         NewStore[[]models.User](DomainUsers, ttl.Users, clk),
		Reference:     NewStore[models.Reference](DomainReference, ttl.Reference, clk),
		Notifications: NewStore[[]models.Notification](DomainNotifications, ttl.Notifications, clk),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s, ttl, clk)
		}
	}
	return s
}
