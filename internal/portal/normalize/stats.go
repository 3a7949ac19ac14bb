package normalize

import "redress/internal/portal/models"

// Stats normalizes the dashboard aggregate payload. The backend names the
// stats object "states", "payload" or "data" and the inner counter keys vary
// per deployment; every counter falls back to zero.
func (n *Normalizer) Stats(raw any) models.Stats {
	obj := unwrapObject(raw, "states", "stats")
	if obj == nil {
		return models.Stats{}
	}
	s := models.Stats{Raw: obj}
	// A "raw" key means we are looking at an already-canonical Stats; keep
	// the original backend payload instead of nesting another level.
	if r, ok := obj["raw"].(map[string]any); ok {
		s.Raw = r
	}
	if v, ok := firstInt(obj, "open", "open_complaints", "open_count"); ok {
		s.Open = v
	}
	if v, ok := firstInt(obj, "pending", "pending_complaints", "in_progress"); ok {
		s.Pending = v
	}
	if v, ok := firstInt(obj, "resolved", "resolved_this_month", "closed"); ok {
		s.Resolved = v
	}
	if v, ok := firstInt(obj, "refused", "refused_complaints", "rejected"); ok {
		s.Refused = v
	}
	return s
}
