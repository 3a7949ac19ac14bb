package sync

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"redress/internal/cache"
	"redress/internal/portal/models"
	"redress/internal/portal/normalize"
	"redress/internal/sync/mocks"
	"redress/pkg/platform/clock"
	"redress/pkg/platform/sentinel"
)

// =============================================================================
// Fetch Orchestrator Test Suite
// =============================================================================
// Justification for unit tests: the freshness-skip and partial-failure paths
// are the contract every screen depends on, and they are only observable
// through upstream call counts, which the mock records precisely.

type SyncServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	upstream *mocks.MockUpstream
	clock    *clock.Fake
	caches   *cache.Service
	service  *Service
}

func TestSyncServiceSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceSuite))
}

func (s *SyncServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.upstream = mocks.NewMockUpstream(s.ctrl)
	s.clock = clock.NewFake(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	s.caches = cache.NewService(cache.DefaultTTLs(), s.clock)

	var err error
	s.service, err = New(s.caches, s.upstream, normalize.New(s.clock))
	s.Require().NoError(err)
}

func complaintsPayload(ids ...string) any {
	list := make([]any, 0, len(ids))
	for _, id := range ids {
		list = append(list, map[string]any{"id": id, "complainant": "Ada", "status": "open"})
	}
	return map[string]any{"complaints": list}
}

func (s *SyncServiceSuite) expectDashboard() {
	s.upstream.EXPECT().GetDashboardStats(gomock.Any()).Return(map[string]any{"open": float64(3)}, nil)
	s.upstream.EXPECT().ListComplaints(gomock.Any(), gomock.Any()).Return(complaintsPayload("c1"), nil)
	s.upstream.EXPECT().ListNotifications(gomock.Any()).Return([]any{}, nil)
}

// =============================================================================
// Constructor Tests (Invariant Enforcement)
// =============================================================================

func (s *SyncServiceSuite) TestNew() {
	s.Run("nil cache service returns error", func() {
		_, err := New(nil, s.upstream, normalize.New(s.clock))
		s.Error(err)
	})

	s.Run("nil upstream returns error", func() {
		_, err := New(s.caches, nil, normalize.New(s.clock))
		s.Error(err)
	})

	s.Run("nil normalizer returns error", func() {
		_, err := New(s.caches, s.upstream, nil)
		s.Error(err)
	})
}

// =============================================================================
// Freshness Skip
// =============================================================================

func (s *SyncServiceSuite) TestFreshDomainsAreSkipped() {
	s.expectDashboard()
	first := s.service.Refresh(context.Background(), ScreenDashboard)
	s.Len(first.Fetched, 3)
	s.Empty(first.Failed)

	// No further EXPECTs: a second pass inside the TTL window must not
	// touch the network at all.
	second := s.service.Refresh(context.Background(), ScreenDashboard)
	s.Empty(second.Fetched)
	s.Len(second.Skipped, 3)
}

func (s *SyncServiceSuite) TestInvalidationTriggersExactlyOneRefetch() {
	s.expectDashboard()
	s.service.Refresh(context.Background(), ScreenDashboard)

	s.caches.Stats.Invalidate()

	// Only the invalidated domain may hit the network.
	s.upstream.EXPECT().GetDashboardStats(gomock.Any()).Return(map[string]any{"open": float64(4)}, nil).Times(1)
	res := s.service.Refresh(context.Background(), ScreenDashboard)

	s.Equal([]cache.Domain{cache.DomainStats}, res.Fetched)
	stats, _ := s.caches.Stats.Get()
	s.Equal(4, stats.Open)
}

func (s *SyncServiceSuite) TestTTLExpiryTriggersRefetch() {
	s.expectDashboard()
	s.service.Refresh(context.Background(), ScreenDashboard)

	s.clock.Advance(cache.DefaultTTLs().Notifications)

	// Only notifications (2m TTL) has expired; stats and complaints (5m)
	// are still fresh.
	s.upstream.EXPECT().ListNotifications(gomock.Any()).Return([]any{}, nil)
	res := s.service.Refresh(context.Background(), ScreenDashboard)

	s.Equal([]cache.Domain{cache.DomainNotifications}, res.Fetched)
}

// =============================================================================
// Partial Failure
// =============================================================================

func (s *SyncServiceSuite) TestFailedDomainDoesNotAbortSiblings() {
	s.upstream.EXPECT().GetDashboardStats(gomock.Any()).Return(nil, sentinel.ErrUnavailable)
	s.upstream.EXPECT().ListComplaints(gomock.Any(), gomock.Any()).Return(complaintsPayload("c1", "c2"), nil)
	s.upstream.EXPECT().ListNotifications(gomock.Any()).Return([]any{}, nil)

	res := s.service.Refresh(context.Background(), ScreenDashboard)

	s.Contains(res.Failed, cache.DomainStats)
	s.ElementsMatch([]cache.Domain{cache.DomainComplaints, cache.DomainNotifications}, res.Fetched)

	complaints, _ := s.caches.Complaints.Get()
	s.Len(complaints, 2, "sibling results land despite the failure")
}

func (s *SyncServiceSuite) TestFailureRetainsStaleValue() {
	s.expectDashboard()
	s.service.Refresh(context.Background(), ScreenDashboard)
	s.caches.Stats.Invalidate()

	s.upstream.EXPECT().GetDashboardStats(gomock.Any()).Return(nil, sentinel.ErrUnavailable)
	s.service.Refresh(context.Background(), ScreenDashboard)

	stats, populated := s.caches.Stats.Get()
	s.True(populated, "the stale value stays readable after a failed refetch")
	s.Equal(3, stats.Open)
	s.True(s.caches.Stats.IsStale(), "a failed fetch must not restamp freshness")
}

// =============================================================================
// Background / Filter Refresh
// =============================================================================

func (s *SyncServiceSuite) TestBackgroundRefreshBypassesStaleness() {
	s.upstream.EXPECT().ListComplaints(gomock.Any(), gomock.Any()).Return(complaintsPayload("c1"), nil)
	first := s.service.Refresh(context.Background(), ScreenComplaintList)
	s.True(first.Loading)

	filter := models.ListFilter{Status: "open"}
	s.upstream.EXPECT().ListComplaints(gomock.Any(), filter).Return(complaintsPayload("c2"), nil)
	res := s.service.Refresh(context.Background(), ScreenComplaintList, WithFilter(filter), Background())

	s.False(res.Loading, "filter refreshes suppress the loading transition")
	s.Equal([]cache.Domain{cache.DomainComplaints}, res.Fetched)

	complaints, _ := s.caches.Complaints.Get()
	s.Require().Len(complaints, 1)
	s.Equal("c2", complaints[0].ID)
}

func (s *SyncServiceSuite) TestOverlappingRefreshesLastWriteWins() {
	// Rapid filter changes are not sequenced: the slot holds whichever
	// response's write lands last, an accepted last-write-wins race.
	a := models.ListFilter{Status: "open"}
	b := models.ListFilter{Status: "closed"}

	s.upstream.EXPECT().ListComplaints(gomock.Any(), b).Return(complaintsPayload("cb"), nil)
	s.upstream.EXPECT().ListComplaints(gomock.Any(), a).Return(complaintsPayload("ca"), nil)

	// B's response settles before A's write executes.
	s.service.Refresh(context.Background(), ScreenComplaintList, WithFilter(b), Background())
	s.service.Refresh(context.Background(), ScreenComplaintList, WithFilter(a), Background())

	complaints, _ := s.caches.Complaints.Get()
	s.Require().Len(complaints, 1)
	s.Equal("ca", complaints[0].ID, "the later-settling write owns the slot")
}

// =============================================================================
// Complaint Detail
// =============================================================================

func (s *SyncServiceSuite) TestDetailRefreshByKey() {
	payload := map[string]any{"complaint": map[string]any{"id": "c9", "complainant": "Grace"}}
	s.upstream.EXPECT().GetComplaint(gomock.Any(), "c9").Return(payload, nil)

	res := s.service.Refresh(context.Background(), ScreenComplaintDetail, WithComplaintID("c9"))
	s.Equal([]cache.Domain{cache.DomainDetail}, res.Fetched)

	got, ok := s.caches.Details.Get(context.Background(), "c9")
	s.True(ok)
	s.Equal("Grace", got.Requester)

	// A second pass inside the TTL stays local.
	second := s.service.Refresh(context.Background(), ScreenComplaintDetail, WithComplaintID("c9"))
	s.Empty(second.Fetched)
}

func (s *SyncServiceSuite) TestMutationForcesDetailRefetchDespiteFreshTTL() {
	payload := map[string]any{"id": "c9", "complainant": "Grace"}
	s.upstream.EXPECT().GetComplaint(gomock.Any(), "c9").Return(payload, nil).Times(2)

	s.service.Refresh(context.Background(), ScreenComplaintDetail, WithComplaintID("c9"))

	inv, err := NewInvalidator(s.caches)
	s.Require().NoError(err)
	inv.ComplaintUpdated(context.Background(), "c9")

	res := s.service.Refresh(context.Background(), ScreenComplaintDetail, WithComplaintID("c9"))
	s.Equal([]cache.Domain{cache.DomainDetail}, res.Fetched,
		"a successful update forces a real fetch before the TTL elapses")
}

func (s *SyncServiceSuite) TestDetailWithoutIDFails() {
	res := s.service.Refresh(context.Background(), ScreenComplaintDetail, Forced())
	s.Contains(res.Failed, cache.DomainDetail)
}

// =============================================================================
// Reference Bundle
// =============================================================================

func (s *SyncServiceSuite) TestReferenceBundleFetchesAllLookups() {
	s.upstream.EXPECT().ListStatuses(gomock.Any()).Return([]any{map[string]any{"id": "1", "name": "Open"}}, nil)
	s.upstream.EXPECT().ListTypes(gomock.Any()).Return([]any{}, nil)
	s.upstream.EXPECT().ListPriorities(gomock.Any()).Return([]any{}, nil)
	s.upstream.EXPECT().ListWorkers(gomock.Any()).Return([]any{}, nil)
	s.upstream.EXPECT().ListClients(gomock.Any()).Return([]any{}, nil)
	s.upstream.EXPECT().ListSortOptions(gomock.Any()).Return([]any{"newest"}, nil)

	res := s.service.Refresh(context.Background(), ScreenComplaintForm)
	s.Equal([]cache.Domain{cache.DomainReference}, res.Fetched)

	ref, _ := s.caches.Reference.Get()
	s.Require().Len(ref.Statuses, 1)
	s.Equal("Open", ref.Statuses[0].Label)
	s.Require().Len(ref.SortOrders, 1)
}

func (s *SyncServiceSuite) TestReferenceBundleNotStampedOnPartialFailure() {
	s.upstream.EXPECT().ListStatuses(gomock.Any()).Return(nil, sentinel.ErrUnavailable)
	s.upstream.EXPECT().ListTypes(gomock.Any()).Return([]any{}, nil).AnyTimes()
	s.upstream.EXPECT().ListPriorities(gomock.Any()).Return([]any{}, nil).AnyTimes()
	s.upstream.EXPECT().ListWorkers(gomock.Any()).Return([]any{}, nil).AnyTimes()
	s.upstream.EXPECT().ListClients(gomock.Any()).Return([]any{}, nil).AnyTimes()
	s.upstream.EXPECT().ListSortOptions(gomock.Any()).Return([]any{}, nil).AnyTimes()

	res := s.service.Refresh(context.Background(), ScreenComplaintForm)

	s.Contains(res.Failed, cache.DomainReference)
	s.True(s.caches.Reference.IsStale(), "a half-fetched bundle must not look fresh")
}
