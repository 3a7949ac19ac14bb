// Package normalize reconciles the backend's inconsistently shaped payloads
// into the canonical domain model. Every function here is pure given the
// injected clock, tolerates any input shape without returning an error, and
// is idempotent: feeding an already-canonical entity back through produces
// the same entity.
package normalize

// unwrapList locates the entity array inside an arbitrarily wrapped payload.
// Resolution order: the domain-specific named fields, then the generic
// "payload" and "data" wrappers, then the top-level value itself. Anything
// that is not an array resolves to nil, never an error.
func unwrapList(raw any, names ...string) []any {
	if list, ok := raw.([]any); ok {
		return list
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	keys := append(append([]string{}, names...), "payload", "data")
	for _, key := range keys {
		if list, ok := obj[key].([]any); ok {
			return list
		}
	}
	return nil
}

// unwrapObject locates a single entity object inside a wrapped payload using
// the same resolution order as unwrapList. A bare object with none of the
// wrapper keys is returned as-is.
func unwrapObject(raw any, names ...string) map[string]any {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	keys := append(append([]string{}, names...), "payload", "data")
	for _, key := range keys {
		if inner, ok := obj[key].(map[string]any); ok {
			return inner
		}
	}
	return obj
}
