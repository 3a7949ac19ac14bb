//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks Upstream

// Package sync decides which cache domains a screen needs refreshed, issues
// the minimal batch of upstream requests concurrently, normalizes the
// responses, and writes them into the domain stores. It also hosts the
// invalidation coordinator that mutating flows call after a successful
// write, decoupling "who mutated" from "who must refresh".
package sync

import (
	"context"

	"redress/internal/portal/models"
)

// Upstream is the slice of the portal API the orchestrator reads from.
// Payloads are decoded but un-normalized.
type Upstream interface {
	ListComplaints(ctx context.Context, filter models.ListFilter) (any, error)
	GetComplaint(ctx context.Context, id string) (any, error)
	ListUsers(ctx context.Context) (any, error)
	ListStatuses(ctx context.Context) (any, error)
	ListTypes(ctx context.Context) (any, error)
	ListPriorities(ctx context.Context) (any, error)
	ListWorkers(ctx context.Context) (any, error)
	ListClients(ctx context.Context) (any, error)
	ListSortOptions(ctx context.Context) (any, error)
	GetDashboardStats(ctx context.Context) (any, error)
	ListNotifications(ctx context.Context) (any, error)
}
