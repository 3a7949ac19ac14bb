package upstream

import "context"

// Reference lookup endpoints. Each returns its raw payload; the backend
// wraps these lists inconsistently and normalization handles that.

func (c *Client) ListStatuses(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/api/statuses", nil)
}

func (c *Client) ListTypes(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/api/types", nil)
}

func (c *Client) ListPriorities(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/api/priorities", nil)
}

func (c *Client) ListWorkers(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/api/workers", nil)
}

func (c *Client) ListClients(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/api/clients", nil)
}

func (c *Client) ListSortOptions(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/api/sort-options", nil)
}

// GetDashboardStats fetches the aggregate counters for the dashboard.
func (c *Client) GetDashboardStats(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/api/dashboard/stats", nil)
}

// ListNotifications fetches the notification feed.
func (c *Client) ListNotifications(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/api/notifications", nil)
}
