package normalize

import (
	"strings"

	"redress/internal/portal/models"
)

// Users extracts and normalizes the managed-user list.
func (n *Normalizer) Users(raw any) []models.User {
	list := unwrapList(raw, "users")
	out := make([]models.User, 0, len(list))
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, n.User(obj))
	}
	return out
}

// User maps one user object. The numeric role id is kept when present so
// updates can round-trip it to the backend unchanged.
func (n *Normalizer) User(obj map[string]any) models.User {
	u := models.User{
		ID:    firstString(obj, "id", "user_id"),
		Email: firstString(obj, "email", "user_email", "mail"),
		Name:  firstString(obj, "name", "full_name", "username"),
	}
	if u.Name == "" {
		u.Name = "Unknown"
	}
	u.Role = parseRole(firstString(obj, "role", "role_name", "user_role"))
	if roleID, ok := firstInt(obj, "role_id"); ok {
		u.RoleID = roleID
	}
	return u
}

func parseRole(s string) models.Role {
	if strings.Contains(strings.ToLower(s), "admin") {
		return models.RoleAdmin
	}
	return models.RoleProvider
}
