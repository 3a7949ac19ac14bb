package sync

import "redress/internal/cache"

// Screen names a portal page and the cache domains it reads. The
// orchestrator refreshes exactly the stale subset of those domains.
type Screen struct {
	Name    string
	Domains []cache.Domain
}

var (
	// ScreenDashboard backs the landing page of all three roles.
	ScreenDashboard = Screen{
		Name:    "dashboard",
		Domains: []cache.Domain{cache.DomainStats, cache.DomainComplaints, cache.DomainNotifications},
	}

	// ScreenComplaintList backs the filterable complaint table.
	ScreenComplaintList = Screen{
		Name:    "complaint_list",
		Domains: []cache.Domain{cache.DomainComplaints},
	}

	// ScreenComplaintDetail backs the single-complaint view. Requires
	// WithComplaintID.
	ScreenComplaintDetail = Screen{
		Name:    "complaint_detail",
		Domains: []cache.Domain{cache.DomainDetail},
	}

	// ScreenComplaintForm backs the create/update forms, which only need
	// the reference lookups.
	ScreenComplaintForm = Screen{
		Name:    "complaint_form",
		Domains: []cache.Domain{cache.DomainReference},
	}

	// ScreenNotifications backs the notification dropdown, which polls on
	// its own cadence.
	ScreenNotifications = Screen{
		Name:    "notifications",
		Domains: []cache.Domain{cache.DomainNotifications},
	}

	// ScreenUserAdmin backs the administrator's user-management page.
	ScreenUserAdmin = Screen{
		Name:    "user_admin",
		Domains: []cache.Domain{cache.DomainUsers, cache.DomainReference},
	}
)
