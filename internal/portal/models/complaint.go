// Package models defines the canonical domain model shared by the cache,
// sync, and transport layers. Every backend payload is reconciled into
// these shapes exactly once, by internal/portal/normalize; nothing else in
// the process reads raw payloads.
package models

import "time"

// Status is the canonical complaint status. The numeric values form a total
// order used for sorting: Open < InProgress < Closed < Refused.
type Status int

const (
	StatusOpen Status = iota
	StatusInProgress
	StatusClosed
	StatusRefused
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusClosed:
		return "closed"
	case StatusRefused:
		return "refused"
	default:
		return "open"
	}
}

// MarshalText makes Status render as its canonical name in JSON responses.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Kind is the canonical problem type.
type Kind int

const (
	KindOther Kind = iota
	KindLateArrival
	KindBehavior
	KindMissedService
)

func (k Kind) String() string {
	switch k {
	case KindLateArrival:
		return "late_arrival"
	case KindBehavior:
		return "behavior"
	case KindMissedService:
		return "missed_service"
	default:
		return "other"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Priority is the canonical complaint priority.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	default:
		return "medium"
	}
}

func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Attachment is a file attached to a complaint.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TimelineEntry is one step of a complaint's history. The backend appends
// entries chronologically; the canonical status of a complaint is derived
// from the last entry, never recomputed from other fields.
type TimelineEntry struct {
	Status string    `json:"status"`
	Note   string    `json:"note,omitempty"`
	Actor  string    `json:"actor,omitempty"`
	At     time.Time `json:"at"`
}

// Complaint is the canonical complaint entity.
type Complaint struct {
	ID          string          `json:"id"`
	DisplayCode string          `json:"code"`
	Requester   string          `json:"requester"`
	Kind        Kind            `json:"kind"`
	Description string          `json:"description"`
	Status      Status          `json:"status"`
	Priority    Priority        `json:"priority"`
	SubmittedAt time.Time       `json:"submitted_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Assignee    string          `json:"assignee,omitempty"`
	Attachments []Attachment    `json:"attachments,omitempty"`
	Timeline    []TimelineEntry `json:"timeline,omitempty"`
}
