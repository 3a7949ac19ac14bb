package normalize

import (
	"strconv"
	"strings"
	"time"
)

// firstString walks a fallback chain of field names and returns the first
// non-empty string value. Numbers are rendered as strings so numeric IDs
// survive the trip through JSON.
func firstString(obj map[string]any, names ...string) string {
	for _, name := range names {
		switch v := obj[name].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int:
			return strconv.Itoa(v)
		}
	}
	return ""
}

// firstInt walks a fallback chain of field names and returns the first
// numeric value, accepting JSON numbers and numeric strings.
func firstInt(obj map[string]any, names ...string) (int, bool) {
	for _, name := range names {
		switch v := obj[name].(type) {
		case float64:
			return int(v), true
		case int:
			return v, true
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// dateLayouts are the formats the backend has been observed to emit.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// parseDate attempts each known layout. Returns the zero time on failure;
// callers decide the fallback.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// firstDate resolves a date through a field fallback chain, then through the
// layout list, and finally degrades to fallback so callers always get a
// sortable value. An unparseable date is never an error.
func firstDate(obj map[string]any, fallback time.Time, names ...string) time.Time {
	for _, name := range names {
		if s, ok := obj[name].(string); ok {
			if t := parseDate(s); !t.IsZero() {
				return t
			}
		}
	}
	return fallback
}
