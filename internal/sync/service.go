package sync

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"redress/internal/cache"
	"redress/internal/portal/models"
	"redress/internal/portal/normalize"
)

// Service is the fetch orchestrator.
type Service struct {
	caches    *cache.Service
	upstream  Upstream
	normalize *normalize.Normalizer
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New creates the orchestrator.
func New(caches *cache.Service, up Upstream, norm *normalize.Normalizer, opts ...Option) (*Service, error) {
	if caches == nil {
		return nil, fmt.Errorf("cache service is required")
	}
	if up == nil {
		return nil, fmt.Errorf("upstream client is required")
	}
	if norm == nil {
		return nil, fmt.Errorf("normalizer is required")
	}
	s := &Service{
		caches:    caches,
		upstream:  up,
		normalize: norm,
		logger:    slog.Default(),
		tracer:    otel.Tracer("redress/sync"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Result reports what one refresh pass did. A pass is "ready" when it
// returns, regardless of per-domain failures: the UI renders whatever is
// available and stale values stay visible until a later pass succeeds.
type Result struct {
	PassID  string
	Loading bool
	Fetched []cache.Domain
	Skipped []cache.Domain
	Failed  map[cache.Domain]error
}

type refreshOptions struct {
	complaintID string
	filter      models.ListFilter
	force       bool
	background  bool
}

// RefreshOption tunes one refresh pass.
type RefreshOption func(*refreshOptions)

// WithComplaintID selects the detail entry a detail screen needs.
func WithComplaintID(id string) RefreshOption {
	return func(o *refreshOptions) { o.complaintID = id }
}

// WithFilter applies a complaint list filter.
func WithFilter(f models.ListFilter) RefreshOption {
	return func(o *refreshOptions) { o.filter = f }
}

// Forced skips the staleness check and refetches every domain of the
// screen.
func Forced() RefreshOption {
	return func(o *refreshOptions) { o.force = true }
}

// Background marks the pass as a filter-driven re-fetch: staleness is not
// consulted and the loading transition is suppressed so the table does not
// flicker while the stored value is replaced.
func Background() RefreshOption {
	return func(o *refreshOptions) { o.background = true }
}

// Refresh brings the screen's stale domains up to date. Batched requests
// run concurrently; a failing domain is logged and reported in the result
// without aborting its siblings, and its store keeps the previous value.
// Overlapping passes for the same domain are not sequenced: whichever
// response settles last wins the slot.
func (s *Service) Refresh(ctx context.Context, screen Screen, opts ...RefreshOption) Result {
	var o refreshOptions
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{
		PassID:  uuid.NewString(),
		Loading: !o.background,
		Failed:  make(map[cache.Domain]error),
	}

	ctx, span := s.tracer.Start(ctx, "sync.refresh",
		trace.WithAttributes(
			attribute.String("screen", screen.Name),
			attribute.String("pass_id", res.PassID),
		))
	defer span.End()

	var batch []cache.Domain
	for _, domain := range screen.Domains {
		if o.force || o.background || s.isStale(ctx, domain, o) {
			batch = append(batch, domain)
		} else {
			res.Skipped = append(res.Skipped, domain)
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, domain := range batch {
		g.Go(func() error {
			err := s.fetch(gctx, domain, o)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.WarnContext(gctx, "domain fetch failed",
					"pass_id", res.PassID,
					"screen", screen.Name,
					"domain", string(domain),
					"error", err,
				)
				res.Failed[domain] = err
				return nil
			}
			res.Fetched = append(res.Fetched, domain)
			return nil
		})
	}
	// Workers only return nil; Wait is a join point, not an error source.
	_ = g.Wait()

	span.SetAttributes(
		attribute.Int("fetched", len(res.Fetched)),
		attribute.Int("skipped", len(res.Skipped)),
		attribute.Int("failed", len(res.Failed)),
	)
	return res
}

func (s *Service) isStale(ctx context.Context, domain cache.Domain, o refreshOptions) bool {
	switch domain {
	case cache.DomainStats:
		return s.caches.Stats.IsStale()
	case cache.DomainComplaints:
		return s.caches.Complaints.IsStale()
	case cache.DomainDetail:
		return s.caches.Details.IsStale(ctx, o.complaintID)
	case cache.DomainUsers:
		return s.caches.Users.IsStale()
	case cache.DomainReference:
		return s.caches.Reference.IsStale()
	case cache.DomainNotifications:
		return s.caches.Notifications.IsStale()
	default:
		return false
	}
}

// fetch retrieves one domain, normalizes it, and replaces the store slot.
// On error the store is left untouched so the stale value remains readable.
func (s *Service) fetch(ctx context.Context, domain cache.Domain, o refreshOptions) error {
	observe := startFetch(domain)
	err := s.fetchDomain(ctx, domain, o)
	observe(err)
	return err
}

func (s *Service) fetchDomain(ctx context.Context, domain cache.Domain, o refreshOptions) error {
	switch domain {
	case cache.DomainStats:
		raw, err := s.upstream.GetDashboardStats(ctx)
		if err != nil {
			return err
		}
		s.caches.Stats.Set(s.normalize.Stats(raw))
	case cache.DomainComplaints:
		raw, err := s.upstream.ListComplaints(ctx, o.filter)
		if err != nil {
			return err
		}
		s.caches.Complaints.Set(s.normalize.Complaints(raw))
	case cache.DomainDetail:
		if o.complaintID == "" {
			return fmt.Errorf("complaint id is required for the detail domain")
		}
		raw, err := s.upstream.GetComplaint(ctx, o.complaintID)
		if err != nil {
			return err
		}
		detail, ok := s.normalize.ComplaintDetail(raw)
		if !ok {
			return fmt.Errorf("complaint %s: unrecognized payload shape", o.complaintID)
		}
		s.caches.Details.Set(ctx, o.complaintID, detail)
	case cache.DomainUsers:
		raw, err := s.upstream.ListUsers(ctx)
		if err != nil {
			return err
		}
		s.caches.Users.Set(s.normalize.Users(raw))
	case cache.DomainReference:
		ref, err := s.fetchReference(ctx)
		if err != nil {
			return err
		}
		s.caches.Reference.Set(ref)
	case cache.DomainNotifications:
		raw, err := s.upstream.ListNotifications(ctx)
		if err != nil {
			return err
		}
		s.caches.Notifications.Set(s.normalize.Notifications(raw))
	default:
		return fmt.Errorf("unknown domain %q", domain)
	}
	return nil
}

// fetchReference gathers the six lookup lists concurrently. The bundle is
// only stamped fresh when every lookup succeeds; a partial bundle would
// silently blank form dropdowns for ten minutes.
func (s *Service) fetchReference(ctx context.Context) (models.Reference, error) {
	var statuses, types, priorities, workers, clients, sorts any

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(dst *any, call func(context.Context) (any, error)) func() error {
		return func() error {
			raw, err := call(gctx)
			if err != nil {
				return err
			}
			*dst = raw
			return nil
		}
	}
	g.Go(fetch(&statuses, s.upstream.ListStatuses))
	g.Go(fetch(&types, s.upstream.ListTypes))
	g.Go(fetch(&priorities, s.upstream.ListPriorities))
	g.Go(fetch(&workers, s.upstream.ListWorkers))
	g.Go(fetch(&clients, s.upstream.ListClients))
	g.Go(fetch(&sorts, s.upstream.ListSortOptions))
	if err := g.Wait(); err != nil {
		return models.Reference{}, err
	}
	return s.normalize.Reference(statuses, types, priorities, workers, clients, sorts), nil
}
