package upstream

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"redress/internal/portal/models"
)

// FileUpload is one attachment sent with a complaint create or update.
type FileUpload struct {
	Name    string
	Content []byte
}

// ComplaintDraft carries the writable complaint fields. The backend's
// create and update endpoints both take multipart form data so attachments
// can ride along.
type ComplaintDraft struct {
	Requester   string
	Kind        string
	Description string
	Priority    string
	Assignee    string
	Attachments []FileUpload
}

// ListComplaints fetches the complaint list, optionally filtered and
// sorted. Only parameters that are set are sent.
func (c *Client) ListComplaints(ctx context.Context, filter models.ListFilter) (any, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Kind != "" {
		query.Set("type", filter.Kind)
	}
	if filter.Priority != "" {
		query.Set("priority", filter.Priority)
	}
	if !filter.From.IsZero() {
		query.Set("from", filter.From.Format(time.DateOnly))
	}
	if !filter.To.IsZero() {
		query.Set("to", filter.To.Format(time.DateOnly))
	}
	if filter.Query != "" {
		query.Set("q", filter.Query)
	}
	if filter.Sort != "" {
		query.Set("sort", filter.Sort)
	}
	return c.getJSON(ctx, "/api/complaints", query)
}

// GetComplaint fetches one complaint by id.
func (c *Client) GetComplaint(ctx context.Context, id string) (any, error) {
	return c.getJSON(ctx, "/api/complaints/"+url.PathEscape(id), nil)
}

// CreateComplaint submits a new complaint as multipart form data.
func (c *Client) CreateComplaint(ctx context.Context, draft ComplaintDraft) (any, error) {
	return c.submitMultipart(ctx, http.MethodPost, "/api/complaints", draft)
}

// UpdateComplaint updates an existing complaint as multipart form data.
func (c *Client) UpdateComplaint(ctx context.Context, id string, draft ComplaintDraft) (any, error) {
	return c.submitMultipart(ctx, http.MethodPut, "/api/complaints/"+url.PathEscape(id), draft)
}

func (c *Client) submitMultipart(ctx context.Context, method, path string, draft ComplaintDraft) (any, error) {
	build := func() (*http.Request, error) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)

		fields := map[string]string{
			"requester":   draft.Requester,
			"type":        draft.Kind,
			"description": draft.Description,
			"priority":    draft.Priority,
			"assignee":    draft.Assignee,
		}
		for name, value := range fields {
			if value == "" {
				continue
			}
			if err := writer.WriteField(name, value); err != nil {
				return nil, fmt.Errorf("write field %s: %w", name, err)
			}
		}
		for _, file := range draft.Attachments {
			part, err := writer.CreateFormFile("attachments", file.Name)
			if err != nil {
				return nil, fmt.Errorf("attach %s: %w", file.Name, err)
			}
			if _, err := part.Write(file.Content); err != nil {
				return nil, fmt.Errorf("attach %s: %w", file.Name, err)
			}
		}
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("finalize multipart body: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &body)
		if err != nil {
			return nil, fmt.Errorf("build request %s: %w", path, err)
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	req, err := build()
	if err != nil {
		return nil, err
	}
	return c.doJSON(req, build)
}
