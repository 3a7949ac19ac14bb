// Package httptransport is the thin HTTP layer over the sync core. Read
// endpoints run a refresh pass and serve whatever the caches hold; mutation
// endpoints proxy upstream and invalidate on success only. No business
// logic lives here.
package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"redress/internal/cache"
	"redress/internal/portal/models"
	"redress/internal/sync"
	"redress/internal/upstream"
	derrors "redress/pkg/domain-errors"
	"redress/pkg/platform/sentinel"
	"redress/pkg/requestcontext"
)

// Syncer runs cache-aware refresh passes.
type Syncer interface {
	Refresh(ctx context.Context, screen sync.Screen, opts ...sync.RefreshOption) sync.Result
}

// Mutator is the slice of the upstream API that writes.
type Mutator interface {
	CreateComplaint(ctx context.Context, draft upstream.ComplaintDraft) (any, error)
	UpdateComplaint(ctx context.Context, id string, draft upstream.ComplaintDraft) (any, error)
	UpdateUser(ctx context.Context, user models.User) (any, error)
}

// Invalidator marks caches stale after successful mutations.
type Invalidator interface {
	ComplaintCreated(ctx context.Context)
	ComplaintUpdated(ctx context.Context, id string)
	UserUpdated(ctx context.Context)
}

// Handler serves the portal BFF endpoints.
type Handler struct {
	logger      *slog.Logger
	caches      *cache.Service
	syncer      Syncer
	mutator     Mutator
	invalidator Invalidator
}

// New creates a Handler.
func New(caches *cache.Service, syncer Syncer, mutator Mutator, invalidator Invalidator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:      logger,
		caches:      caches,
		syncer:      syncer,
		mutator:     mutator,
		invalidator: invalidator,
	}
}

// Register mounts the portal routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/dashboard", h.handleDashboard)
	r.Get("/api/complaints", h.handleListComplaints)
	r.Post("/api/complaints", h.handleCreateComplaint)
	r.Get("/api/complaints/{id}", h.handleGetComplaint)
	r.Put("/api/complaints/{id}", h.handleUpdateComplaint)
	r.Get("/api/users", h.handleListUsers)
	r.Put("/api/users/{id}", h.handleUpdateUser)
	r.Get("/api/reference", h.handleReference)
	r.Get("/api/notifications", h.handleNotifications)
}

// refreshMeta is attached to read responses so clients can tell a full
// refresh from a partial one served stale.
type refreshMeta struct {
	PassID  string   `json:"pass_id"`
	Partial []string `json:"partial,omitempty"`
}

func meta(res sync.Result) refreshMeta {
	m := refreshMeta{PassID: res.PassID}
	for domain := range res.Failed {
		m.Partial = append(m.Partial, string(domain))
	}
	return m
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	res := h.syncer.Refresh(r.Context(), sync.ScreenDashboard)

	stats, _ := h.caches.Stats.Get()
	complaints, _ := h.caches.Complaints.Get()
	notifications, _ := h.caches.Notifications.Get()
	writeJSON(w, http.StatusOK, map[string]any{
		"stats":         stats,
		"complaints":    complaints,
		"notifications": notifications,
		"meta":          meta(res),
	})
}

func (h *Handler) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	opts := []sync.RefreshOption{sync.WithFilter(filter)}
	if !filter.IsZero() {
		// Filter changes bypass staleness and swap the slot quietly.
		opts = append(opts, sync.Background())
	}
	res := h.syncer.Refresh(r.Context(), sync.ScreenComplaintList, opts...)

	complaints, _ := h.caches.Complaints.Get()
	writeJSON(w, http.StatusOK, map[string]any{
		"complaints": complaints,
		"meta":       meta(res),
	})
}

func (h *Handler) handleGetComplaint(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res := h.syncer.Refresh(r.Context(), sync.ScreenComplaintDetail, sync.WithComplaintID(id))

	complaint, ok := h.caches.Details.Get(r.Context(), id)
	if !ok {
		writeError(w, derrors.New(derrors.CodeNotFound, "complaint not found"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"complaint": complaint,
		"meta":      meta(res),
	})
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	res := h.syncer.Refresh(r.Context(), sync.ScreenUserAdmin)

	users, _ := h.caches.Users.Get()
	reference, _ := h.caches.Reference.Get()
	writeJSON(w, http.StatusOK, map[string]any{
		"users":     users,
		"reference": reference,
		"meta":      meta(res),
	})
}

func (h *Handler) handleReference(w http.ResponseWriter, r *http.Request) {
	res := h.syncer.Refresh(r.Context(), sync.ScreenComplaintForm)

	reference, _ := h.caches.Reference.Get()
	writeJSON(w, http.StatusOK, map[string]any{
		"reference": reference,
		"meta":      meta(res),
	})
}

func (h *Handler) handleNotifications(w http.ResponseWriter, r *http.Request) {
	res := h.syncer.Refresh(r.Context(), sync.ScreenNotifications)

	notifications, _ := h.caches.Notifications.Get()
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"meta":          meta(res),
	})
}

func (h *Handler) handleCreateComplaint(w http.ResponseWriter, r *http.Request) {
	draft, err := draftFromRequest(r)
	if err != nil {
		writeError(w, derrors.Wrap(err, derrors.CodeBadRequest, "invalid complaint form"))
		return
	}

	payload, err := h.mutator.CreateComplaint(r.Context(), draft)
	if err != nil {
		h.logMutationFailure(r, "create complaint", err)
		writeError(w, mutationError(err, "failed to create complaint"))
		return
	}

	// Invalidation happens only after the backend confirmed the write.
	h.invalidator.ComplaintCreated(r.Context())
	writeJSON(w, http.StatusCreated, payload)
}

func (h *Handler) handleUpdateComplaint(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	draft, err := draftFromRequest(r)
	if err != nil {
		writeError(w, derrors.Wrap(err, derrors.CodeBadRequest, "invalid complaint form"))
		return
	}

	payload, err := h.mutator.UpdateComplaint(r.Context(), id, draft)
	if err != nil {
		h.logMutationFailure(r, "update complaint", err)
		writeError(w, mutationError(err, "failed to update complaint"))
		return
	}

	h.invalidator.ComplaintUpdated(r.Context(), id)
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email  string `json:"email"`
		Name   string `json:"name"`
		Role   string `json:"role"`
		RoleID int    `json:"role_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, derrors.New(derrors.CodeBadRequest, "invalid request body"))
		return
	}

	user := models.User{
		ID:     chi.URLParam(r, "id"),
		Email:  body.Email,
		Name:   body.Name,
		RoleID: body.RoleID,
	}
	if body.Role == "admin" {
		user.Role = models.RoleAdmin
	}

	payload, err := h.mutator.UpdateUser(r.Context(), user)
	if err != nil {
		h.logMutationFailure(r, "update user", err)
		writeError(w, mutationError(err, "failed to update user"))
		return
	}

	h.invalidator.UserUpdated(r.Context())
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) logMutationFailure(r *http.Request, op string, err error) {
	h.logger.ErrorContext(r.Context(), "mutation failed",
		"request_id", requestcontext.RequestID(r.Context()),
		"operation", op,
		"error", err,
	)
}

// mutationError maps upstream failures onto coded errors. Mutation failures
// must reach the caller: swallowing them here would be silent data loss from
// the user's point of view.
func mutationError(err error, message string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return derrors.Wrap(err, derrors.CodeNotFound, message)
	case errors.Is(err, sentinel.ErrUnavailable):
		return derrors.Wrap(err, derrors.CodeUpstream, message)
	default:
		return derrors.Wrap(err, derrors.CodeInternal, message)
	}
}

func filterFromQuery(r *http.Request) models.ListFilter {
	q := r.URL.Query()
	filter := models.ListFilter{
		Status:   q.Get("status"),
		Kind:     q.Get("type"),
		Priority: q.Get("priority"),
		Query:    q.Get("q"),
		Sort:     q.Get("sort"),
	}
	if from := q.Get("from"); from != "" {
		filter.From = parseQueryDate(from)
	}
	if to := q.Get("to"); to != "" {
		filter.To = parseQueryDate(to)
	}
	return filter
}

const maxUploadBytes = 32 << 20

func draftFromRequest(r *http.Request) (upstream.ComplaintDraft, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return upstream.ComplaintDraft{}, err
	}
	draft := upstream.ComplaintDraft{
		Requester:   r.FormValue("requester"),
		Kind:        r.FormValue("type"),
		Description: r.FormValue("description"),
		Priority:    r.FormValue("priority"),
		Assignee:    r.FormValue("assignee"),
	}
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["attachments"] {
			file, err := header.Open()
			if err != nil {
				return upstream.ComplaintDraft{}, err
			}
			content, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return upstream.ComplaintDraft{}, err
			}
			draft.Attachments = append(draft.Attachments, upstream.FileUpload{
				Name:    header.Filename,
				Content: content,
			})
		}
	}
	return draft, nil
}
