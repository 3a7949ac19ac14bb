package normalize

import (
	"strings"

	"redress/internal/portal/models"
	"redress/pkg/platform/clock"
)

// Normalizer converts raw backend payloads into canonical entities. It holds
// only a clock, used as the terminal fallback for unparseable dates.
type Normalizer struct {
	clock clock.Clock
}

// New creates a Normalizer. A nil clock defaults to the wall clock.
func New(clk clock.Clock) *Normalizer {
	if clk == nil {
		clk = clock.New()
	}
	return &Normalizer{clock: clk}
}

// Complaints extracts and normalizes a complaint list from any of the
// envelope shapes the backend emits. A shape mismatch yields an empty list.
func (n *Normalizer) Complaints(raw any) []models.Complaint {
	list := unwrapList(raw, "complaints")
	out := make([]models.Complaint, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, n.Complaint(obj))
	}
	return out
}

// ComplaintDetail normalizes a single-complaint payload.
func (n *Normalizer) ComplaintDetail(raw any) (models.Complaint, bool) {
	obj := unwrapObject(raw, "complaint")
	if obj == nil {
		return models.Complaint{}, false
	}
	c := n.Complaint(obj)
	if c.ID == "" {
		return models.Complaint{}, false
	}
	return c, true
}

// Complaint maps one complaint object. Field resolution follows fallback
// chains that start at the canonical names, so re-normalizing a canonical
// complaint is a no-op.
func (n *Normalizer) Complaint(obj map[string]any) models.Complaint {
	now := n.clock.Now()

	c := models.Complaint{
		ID:          firstString(obj, "id", "ID", "complaint_id"),
		DisplayCode: firstString(obj, "code", "complaint_no", "number", "reference"),
		Requester:   firstString(obj, "requester", "Complainant", "complainant", "caretaker_name", "client_name"),
		Kind:        parseKind(firstString(obj, "kind", "type", "complaint_type", "problem_type")),
		Description: firstString(obj, "description", "details", "complaint_text", "text"),
		Priority:    parsePriority(firstString(obj, "priority", "urgency")),
		Assignee:    firstString(obj, "assignee", "assigned_to", "worker_name"),
	}
	if c.Requester == "" {
		c.Requester = "Unknown"
	}
	c.SubmittedAt = firstDate(obj, now, "submitted_at", "created_at", "date")
	c.UpdatedAt = firstDate(obj, c.SubmittedAt, "updated_at", "modified_at", "last_update")
	c.Attachments = n.attachments(obj)
	c.Timeline = n.timeline(obj)

	// Status comes from the last history entry when a history exists; the
	// flat status field is only trusted for complaints without one.
	if len(c.Timeline) > 0 {
		c.Status = ParseStatus(c.Timeline[len(c.Timeline)-1].Status)
	} else {
		c.Status = ParseStatus(firstString(obj, "status", "state"))
	}
	return c
}

func (n *Normalizer) attachments(obj map[string]any) []models.Attachment {
	var list []any
	for _, key := range []string{"attachments", "files", "documents"} {
		if l, ok := obj[key].([]any); ok {
			list = l
			break
		}
	}
	if len(list) == 0 {
		return nil
	}
	out := make([]models.Attachment, 0, len(list))
	for _, item := range list {
		a, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, models.Attachment{
			ID:   firstString(a, "id", "attachment_id"),
			Name: firstString(a, "name", "file_name", "filename"),
			URL:  firstString(a, "url", "file_url", "path"),
		})
	}
	return out
}

func (n *Normalizer) timeline(obj map[string]any) []models.TimelineEntry {
	var list []any
	for _, key := range []string{"timeline", "history", "complaint_history", "status_history"} {
		if l, ok := obj[key].([]any); ok {
			list = l
			break
		}
	}
	if len(list) == 0 {
		return nil
	}
	now := n.clock.Now()
	out := make([]models.TimelineEntry, 0, len(list))
	for _, item := range list {
		e, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, models.TimelineEntry{
			Status: firstString(e, "status", "state", "title"),
			Note:   firstString(e, "note", "comment", "remark"),
			Actor:  firstString(e, "actor", "by", "user"),
			At:     firstDate(e, now, "at", "created_at", "date"),
		})
	}
	return out
}

// ParseStatus buckets arbitrary status text into the four canonical values.
// Matching is lower-cased substring search in a fixed priority order; text
// that matches nothing (including empty text) defaults to Open.
func ParseStatus(s string) models.Status {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "open"):
		return models.StatusOpen
	case strings.Contains(s, "progress"), strings.Contains(s, "pending"):
		return models.StatusInProgress
	case strings.Contains(s, "closed"), strings.Contains(s, "resolved"):
		return models.StatusClosed
	case strings.Contains(s, "refused"), strings.Contains(s, "rejected"):
		return models.StatusRefused
	default:
		return models.StatusOpen
	}
}

func parseKind(s string) models.Kind {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "late"):
		return models.KindLateArrival
	case strings.Contains(s, "behav"):
		return models.KindBehavior
	case strings.Contains(s, "miss"):
		return models.KindMissedService
	default:
		return models.KindOther
	}
}

func parsePriority(s string) models.Priority {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "low"):
		return models.PriorityLow
	case strings.Contains(s, "high"):
		return models.PriorityHigh
	case strings.Contains(s, "urg"):
		return models.PriorityUrgent
	default:
		return models.PriorityMedium
	}
}
