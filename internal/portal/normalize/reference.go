package normalize

import "redress/internal/portal/models"

// Reference normalizes the lookup bundle used by complaint forms and
// filters. Each list tolerates its own envelope independently, since the
// backend serves them from separate endpoints with separate wrapping habits.
func (n *Normalizer) Reference(statuses, types, priorities, workers, clients, sorts any) models.Reference {
	return models.Reference{
		Statuses:   n.Options(statuses, "statuses"),
		Types:      n.Options(types, "types"),
		Priorities: n.Options(priorities, "priorities"),
		Workers:    n.Options(workers, "workers"),
		Clients:    n.Options(clients, "clients"),
		SortOrders: n.Options(sorts, "sorts", "sort_options"),
	}
}

// Options normalizes one lookup list. Entries that are bare strings become
// options whose id and label are the string itself.
func (n *Normalizer) Options(raw any, names ...string) []models.Option {
	list := unwrapList(raw, names...)
	out := make([]models.Option, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case string:
			out = append(out, models.Option{ID: v, Label: v})
		case map[string]any:
			opt := models.Option{
				ID:    firstString(v, "id", "value", "key"),
				Label: firstString(v, "label", "name", "title"),
			}
			if opt.Label == "" {
				opt.Label = opt.ID
			}
			out = append(out, opt)
		}
	}
	return out
}

// Notifications normalizes the notification feed.
func (n *Normalizer) Notifications(raw any) []models.Notification {
	list := unwrapList(raw, "notifications")
	now := n.clock.Now()
	out := make([]models.Notification, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		note := models.Notification{
			ID:      firstString(obj, "id", "notification_id"),
			Message: firstString(obj, "message", "text", "body"),
		}
		if read, ok := obj["read"].(bool); ok {
			note.Read = read
		} else if seen, ok := obj["seen"].(bool); ok {
			note.Read = seen
		}
		note.CreatedAt = firstDate(obj, now, "created_at", "date", "at")
		out = append(out, note)
	}
	return out
}
