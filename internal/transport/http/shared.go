package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	derrors "redress/pkg/domain-errors"
)

// parseQueryDate accepts the date-only format the portal's pickers emit.
// A bad value means "no constraint" rather than a request failure.
func parseQueryDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// writeJSON encodes v with the given status. Encoding failures are ignored;
// by then the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates a coded domain error into a consistent JSON error
// envelope. Only the code and safe message are exposed; causes stay in logs.
func writeError(w http.ResponseWriter, err error) {
	code := derrors.CodeOf(err)
	message := "internal error"
	var de *derrors.Error
	if errors.As(err, &de) {
		message = de.Message
	}
	writeJSON(w, derrors.ToHTTPStatus(code), map[string]string{
		"error":   string(code),
		"message": message,
	})
}
