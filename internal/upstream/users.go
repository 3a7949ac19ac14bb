package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"redress/internal/portal/models"
)

// ListUsers fetches the managed-user list.
func (c *Client) ListUsers(ctx context.Context) (any, error) {
	return c.getJSON(ctx, "/api/users", nil)
}

// UpdateUser updates a managed user. The numeric role id is round-tripped
// when the backend originally supplied one; otherwise the role name is sent.
func (c *Client) UpdateUser(ctx context.Context, user models.User) (any, error) {
	body := map[string]any{
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role.String(),
	}
	if user.RoleID != 0 {
		body["role_id"] = user.RoleID
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode user update: %w", err)
	}

	build := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPut,
			c.baseURL+"/api/users/"+url.PathEscape(user.ID), bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("build user update: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	req, err := build()
	if err != nil {
		return nil, err
	}
	return c.doJSON(req, build)
}
