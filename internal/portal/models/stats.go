package models

// Stats holds the dashboard aggregate counters. Raw retains the backend
// payload for counters not yet modeled (admin/provider head-counts and the
// like) so the transport can expose them without another fetch.
type Stats struct {
	Open     int            `json:"open"`
	Pending  int            `json:"pending"`
	Resolved int            `json:"resolved"`
	Refused  int            `json:"refused"`
	Raw      map[string]any `json:"raw,omitempty"`
}
