package models

import "time"

// ListFilter narrows a complaint list request. Zero values mean "no
// constraint"; the upstream client only sends parameters that are set.
type ListFilter struct {
	Status   string
	Kind     string
	Priority string
	From     time.Time
	To       time.Time
	Query    string
	Sort     string
}

// IsZero reports whether the filter carries no constraints at all.
func (f ListFilter) IsZero() bool {
	return f.Status == "" && f.Kind == "" && f.Priority == "" &&
		f.From.IsZero() && f.To.IsZero() && f.Query == "" && f.Sort == ""
}
