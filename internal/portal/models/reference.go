package models

import "time"

// Option is one selectable entry of a reference lookup (statuses, types,
// priorities, workers, clients, sort orders).
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Reference bundles the rarely-changing lookup data that complaint forms
// and filters render. It is cached as a single domain.
type Reference struct {
	Statuses   []Option `json:"statuses"`
	Types      []Option `json:"types"`
	Priorities []Option `json:"priorities"`
	Workers    []Option `json:"workers"`
	Clients    []Option `json:"clients"`
	SortOrders []Option `json:"sort_orders"`
}

// Notification is a portal notification for the signed-in user.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
